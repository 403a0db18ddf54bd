package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusPending = "pending"

type Order struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClientID  string          `gorm:"type:varchar(36);not null;index" json:"client_id"`
	Status    string          `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID                  string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID             string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ProductID           string          `gorm:"type:varchar(36);not null;index" json:"product_id"`
	SizeID              int             `gorm:"not null" json:"size_id"`
	Quantity            int             `gorm:"not null" json:"quantity"`
	UnitPriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price_at_purchase"`
	TotalPrice          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
