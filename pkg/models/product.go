package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Inventory   int             `gorm:"not null;default:0" json:"inventory"`
	SizeID      int             `gorm:"not null;index" json:"size_id"`
	CategoryID  int             `gorm:"not null;index" json:"category_id"`
	GenderID    int             `gorm:"not null;index" json:"gender_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Images      []ProductImage  `gorm:"foreignKey:ProductID" json:"images"`
}

func (Product) TableName() string {
	return "products"
}

type ProductImage struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ProductID   string    `gorm:"type:varchar(36);not null;index" json:"product_id"`
	URL         string    `gorm:"type:varchar(500);not null" json:"url"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	IsMain      bool      `gorm:"not null;default:false" json:"is_main"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
