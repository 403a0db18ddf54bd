package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/service"
)

type productImageRequest struct {
	URL         string `json:"url" binding:"required,max=500"`
	Description string `json:"description" binding:"max=255"`
	IsMain      bool   `json:"is_main"`
}

type createProductRequest struct {
	Name        string                `json:"name" binding:"required,max=255"`
	Description string                `json:"description" binding:"required"`
	Price       decimal.Decimal       `json:"price"`
	Inventory   int                   `json:"inventory" binding:"gte=0"`
	SizeID      int                   `json:"size_id" binding:"required"`
	CategoryID  int                   `json:"category_id" binding:"required"`
	GenderID    int                   `json:"gender_id" binding:"required"`
	Images      []productImageRequest `json:"images" binding:"omitempty,dive"`
}

type updateProductRequest struct {
	Name        *string               `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string               `json:"description" binding:"omitempty,min=1"`
	Price       *decimal.Decimal      `json:"price"`
	Inventory   *int                  `json:"inventory" binding:"omitempty,gte=0"`
	SizeID      *int                  `json:"size_id"`
	CategoryID  *int                  `json:"category_id"`
	GenderID    *int                  `json:"gender_id"`
	Images      []productImageRequest `json:"images" binding:"omitempty,dive"`
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "price must be greater than zero"})
		return
	}

	product, err := s.products.Create(c.Request.Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
		SizeID:      req.SizeID,
		CategoryID:  req.CategoryID,
		GenderID:    req.GenderID,
		Images:      toImageInputs(req.Images),
	})
	if err != nil {
		s.productError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) listProducts(c *gin.Context) {
	filters := service.ProductFilters{
		CategoryID:    intQuery(c, "category_id", 0),
		GenderID:      intQuery(c, "gender_id", 0),
		AvailableOnly: c.Query("available_only") == "true",
		Skip:          intQuery(c, "skip", 0),
		Limit:         intQuery(c, "limit", service.MaxPageSize),
	}
	for param, dest := range map[string]**decimal.Decimal{
		"min_price": &filters.MinPrice,
		"max_price": &filters.MaxPrice,
	} {
		if raw := c.Query(param); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": param + " must be a decimal number"})
				return
			}
			*dest = &d
		}
	}

	products, err := s.products.List(c.Request.Context(), filters)
	if err != nil {
		s.productError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.productError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if req.Price != nil && !req.Price.IsPositive() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "price must be greater than zero"})
		return
	}

	var images []service.ProductImageInput
	if req.Images != nil {
		images = toImageInputs(req.Images)
	}

	product, err := s.products.Update(c.Request.Context(), c.Param("id"), service.ProductUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
		SizeID:      req.SizeID,
		CategoryID:  req.CategoryID,
		GenderID:    req.GenderID,
		Images:      images,
	})
	if err != nil {
		s.productError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	productID := c.Param("id")
	if err := s.products.Delete(c.Request.Context(), productID); err != nil {
		s.productError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product " + productID + " deleted"})
}

func (s *Server) productError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSizeNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("product request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toImageInputs(reqs []productImageRequest) []service.ProductImageInput {
	images := make([]service.ProductImageInput, 0, len(reqs))
	for _, r := range reqs {
		images = append(images, service.ProductImageInput{
			URL:         r.URL,
			Description: r.Description,
			IsMain:      r.IsMain,
		})
	}
	return images
}
