package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/service"
)

type orderItemRequest struct {
	ProductID           string          `json:"product_id" binding:"required"`
	SizeID              int             `json:"size_id" binding:"required"`
	Quantity            int             `json:"quantity" binding:"required,gt=0"`
	UnitPriceAtPurchase decimal.Decimal `json:"unit_price_at_purchase"`
}

type createOrderRequest struct {
	ClientID string             `json:"client_id" binding:"required"`
	Items    []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateOrderRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		if !item.UnitPriceAtPurchase.IsPositive() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unit_price_at_purchase must be greater than zero"})
			return
		}
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			SizeID:    item.SizeID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPriceAtPurchase,
		})
	}

	order, err := s.orders.Place(c.Request.Context(), service.PlaceOrderInput{
		ClientID: req.ClientID,
		Items:    items,
	})
	if err != nil {
		s.orderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	filters := service.OrderFilters{
		ClientID:   c.Query("client_id"),
		Status:     c.Query("status"),
		Skip:       intQuery(c, "skip", 0),
		Limit:      intQuery(c, "limit", service.MaxPageSize),
		CategoryID: intQuery(c, "category_id", 0),
		GenderID:   intQuery(c, "gender_id", 0),
	}

	for param, dest := range map[string]**time.Time{
		"start_date": &filters.StartDate,
		"end_date":   &filters.EndDate,
	} {
		if raw := c.Query(param); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": param + " must be RFC 3339 formatted"})
				return
			}
			*dest = &t
		}
	}

	orders, err := s.orders.List(c.Request.Context(), filters)
	if err != nil {
		s.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	order, err := s.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		s.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	orderID := c.Param("id")

	actor := ""
	if user := currentUser(c); user != nil {
		actor = user.Email
	}

	if err := s.orders.Delete(c.Request.Context(), orderID, actor); err != nil {
		s.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order " + orderID + " deleted"})
}

func (s *Server) getOrderAudit(c *gin.Context) {
	logs, err := s.orders.AuditTrail(c.Request.Context(), c.Param("id"), int64(intQuery(c, "limit", service.MaxPageSize)))
	if err != nil {
		s.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) orderError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var stock *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("order request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
