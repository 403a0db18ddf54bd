package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/backoffice/pkg/models"
	"github.com/example/backoffice/pkg/repository"
)

// MaxPageSize caps the limit accepted by List.
const MaxPageSize = 100

// OrderCache is the slice of the Redis repository the order service uses.
type OrderCache interface {
	CacheOrder(ctx context.Context, order *models.Order) error
	GetOrderCache(ctx context.Context, orderID string) (*models.Order, error)
	InvalidateOrder(ctx context.Context, orderID string) error
}

// AuditSink receives best-effort audit entries for order mutations and
// serves them back for the admin audit trail.
type AuditSink interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
	GetAuditLogs(ctx context.Context, entityID string, limit int64) ([]*repository.AuditLog, error)
}

type OrderService struct {
	db     *gorm.DB
	cache  OrderCache
	audit  AuditSink
	logger *zap.Logger
}

func NewOrderService(db *gorm.DB, cache OrderCache, audit AuditSink, logger *zap.Logger) *OrderService {
	return &OrderService{
		db:     db,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

type OrderItemInput struct {
	ProductID string
	SizeID    int
	Quantity  int
	UnitPrice decimal.Decimal
}

type PlaceOrderInput struct {
	ClientID string
	Items    []OrderItemInput
}

type OrderFilters struct {
	ClientID   string
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID int
	GenderID   int
	Skip       int
	Limit      int
}

// Place validates the request against the client, product and size tables,
// reserves inventory and persists the order with its items as one
// transaction. The stock check and decrement are a single conditional
// UPDATE, so two concurrent orders can never both take the last unit.
func (s *OrderService) Place(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	order := models.Order{
		ID:       uuid.NewString(),
		ClientID: in.ClientID,
		Status:   models.OrderStatusPending,
		Subtotal: decimal.Zero,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, "id = ?", in.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("load client: %w", err)
		}

		for _, item := range in.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Kind: "product", ID: item.ProductID}
				}
				return fmt.Errorf("load product: %w", err)
			}

			if product.Inventory < item.Quantity {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Inventory,
					Requested:   item.Quantity,
				}
			}

			var sizeCount int64
			if err := tx.Model(&models.Size{}).Where("id = ?", item.SizeID).Count(&sizeCount).Error; err != nil {
				return fmt.Errorf("load size: %w", err)
			}
			if sizeCount == 0 {
				return &NotFoundError{Kind: "size", ID: fmt.Sprintf("%d", item.SizeID)}
			}

			// Check-and-decrement in one statement. Zero rows affected
			// means another transaction took the stock after the snapshot
			// read above; the whole order rolls back.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND inventory >= ?", item.ProductID, item.Quantity).
				UpdateColumn("inventory", gorm.Expr("inventory - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("reserve inventory: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				// The snapshot count is stale at this point; a locking
				// read sees the committed value the UPDATE compared
				// against.
				var current models.Product
				err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Select("inventory").
					First(&current, "id = ?", item.ProductID).Error
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return &NotFoundError{Kind: "product", ID: item.ProductID}
					}
					return fmt.Errorf("reload inventory: %w", err)
				}
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   current.Inventory,
					Requested:   item.Quantity,
				}
			}

			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			order.Subtotal = order.Subtotal.Add(lineTotal)
			order.Items = append(order.Items, models.OrderItem{
				ID:                  uuid.NewString(),
				OrderID:             order.ID,
				ProductID:           item.ProductID,
				SizeID:              item.SizeID,
				Quantity:            item.Quantity,
				UnitPriceAtPurchase: item.UnitPrice,
				TotalPrice:          lineTotal,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("client_id", order.ClientID),
		zap.Int("items", len(order.Items)),
		zap.String("subtotal", order.Subtotal.String()))

	s.cache.CacheOrder(ctx, &order)

	go s.audit.CreateAuditLog(context.Background(), &repository.AuditLog{
		Service:  "order-service",
		Action:   "create_order",
		EntityID: order.ID,
		Data:     bson.M{"client_id": order.ClientID, "subtotal": order.Subtotal.String()},
	})

	return &order, nil
}

// List returns orders matching the filters in creation order. The section
// filters match orders where any item's product belongs to the category or
// gender, hence the join plus DISTINCT.
func (s *OrderService) List(ctx context.Context, f OrderFilters) ([]models.Order, error) {
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}

	query := s.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")
	if f.ClientID != "" {
		query = query.Where("orders.client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		query = query.Where("orders.status = ?", f.Status)
	}
	if f.StartDate != nil {
		query = query.Where("orders.created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("orders.created_at <= ?", *f.EndDate)
	}
	if f.CategoryID != 0 || f.GenderID != 0 {
		query = query.
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Distinct("orders.*")
		if f.CategoryID != 0 {
			query = query.Where("products.category_id = ?", f.CategoryID)
		}
		if f.GenderID != 0 {
			query = query.Where("products.gender_id = ?", f.GenderID)
		}
	}

	var orders []models.Order
	err := query.Order("orders.created_at, orders.id").
		Offset(f.Skip).Limit(f.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get loads an order with its items, serving from the Redis cache when
// possible.
func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	if cached, err := s.cache.GetOrderCache(ctx, orderID); err == nil {
		return cached, nil
	}

	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	s.cache.CacheOrder(ctx, &order)
	return &order, nil
}

// UpdateStatus changes the order status. Any non-empty string is accepted;
// there is deliberately no transition state machine.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	// Update first and trust the row count, so a concurrently deleted
	// order reports not-found instead of a stale success.
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	s.cache.InvalidateOrder(ctx, orderID)

	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}

// Delete removes an order and returns every item's quantity to its
// product's inventory, atomically. Products deleted since the order was
// placed are skipped; there is nothing left to credit. The actor is the
// admin performing the deletion, recorded in the audit trail.
func (s *OrderService) Delete(ctx context.Context, orderID, actor string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("load order: %w", err)
		}

		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("inventory", gorm.Expr("inventory + ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("restore inventory: %w", res.Error)
			}
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if err := tx.Delete(&models.Order{}, "id = ?", orderID).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("order deleted", zap.String("order_id", orderID))

	s.cache.InvalidateOrder(ctx, orderID)

	go s.audit.CreateAuditLog(context.Background(), &repository.AuditLog{
		Service:  "order-service",
		Action:   "delete_order",
		EntityID: orderID,
		Actor:    actor,
		Data:     bson.M{},
	})

	return nil
}

// AuditTrail returns the most recent audit entries recorded for an order.
func (s *OrderService) AuditTrail(ctx context.Context, orderID string, limit int64) ([]*repository.AuditLog, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	logs, err := s.audit.GetAuditLogs(ctx, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("load audit trail: %w", err)
	}
	return logs, nil
}
