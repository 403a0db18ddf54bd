package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/backoffice/pkg/models"
)

type ProductService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProductService(db *gorm.DB, logger *zap.Logger) *ProductService {
	return &ProductService{db: db, logger: logger}
}

type ProductImageInput struct {
	URL         string
	Description string
	IsMain      bool
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Inventory   int
	SizeID      int
	CategoryID  int
	GenderID    int
	Images      []ProductImageInput
}

type ProductUpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Inventory   *int
	SizeID      *int
	CategoryID  *int
	GenderID    *int
	Images      []ProductImageInput
}

type ProductFilters struct {
	CategoryID    int
	GenderID      int
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	AvailableOnly bool
	Skip          int
	Limit         int
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("name = ?", in.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	if err := s.checkReferences(ctx, in.SizeID, in.CategoryID, in.GenderID); err != nil {
		return nil, err
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Inventory:   in.Inventory,
		SizeID:      in.SizeID,
		CategoryID:  in.CategoryID,
		GenderID:    in.GenderID,
		Images:      buildImages("", in.Images),
	}
	for i := range product.Images {
		product.Images[i].ProductID = product.ID
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return &product, nil
}

func (s *ProductService) List(ctx context.Context, f ProductFilters) ([]models.Product, error) {
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}

	query := s.db.WithContext(ctx).Model(&models.Product{}).Preload("Images")
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.GenderID != 0 {
		query = query.Where("gender_id = ?", f.GenderID)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.AvailableOnly {
		query = query.Where("inventory > 0")
	}

	var products []models.Product
	if err := query.Order("created_at, id").Offset(f.Skip).Limit(f.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Images").First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &product, nil
}

// Update mutates product fields; a non-nil Images slice replaces the
// product's image set wholesale.
func (s *ProductService) Update(ctx context.Context, productID string, in ProductUpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil && *in.Name != product.Name {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("name = ? AND id <> ?", *in.Name, productID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check name: %w", err)
		}
		if count > 0 {
			return nil, ErrNameTaken
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Inventory != nil {
		updates["inventory"] = *in.Inventory
	}
	if in.SizeID != nil {
		updates["size_id"] = *in.SizeID
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if in.GenderID != nil {
		updates["gender_id"] = *in.GenderID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(product).Updates(updates).Error; err != nil {
				return fmt.Errorf("update product: %w", err)
			}
		}
		if in.Images != nil {
			if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
				return fmt.Errorf("clear images: %w", err)
			}
			images := buildImages(productID, in.Images)
			if len(images) > 0 {
				if err := tx.Create(&images).Error; err != nil {
					return fmt.Errorf("create images: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, productID)
}

func (s *ProductService) Delete(ctx context.Context, productID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", productID)
		if res.Error != nil {
			return fmt.Errorf("delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("delete images: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", productID))
	return nil
}

func (s *ProductService) checkReferences(ctx context.Context, sizeID, categoryID, genderID int) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Size{}).Where("id = ?", sizeID).Count(&count).Error; err != nil {
		return fmt.Errorf("check size: %w", err)
	}
	if count == 0 {
		return ErrSizeNotFound
	}
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	if err := s.db.WithContext(ctx).Model(&models.Gender{}).Where("id = ?", genderID).Count(&count).Error; err != nil {
		return fmt.Errorf("check gender: %w", err)
	}
	if count == 0 {
		return ErrGenderNotFound
	}
	return nil
}

func buildImages(productID string, inputs []ProductImageInput) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(inputs))
	for _, in := range inputs {
		images = append(images, models.ProductImage{
			ID:          uuid.NewString(),
			ProductID:   productID,
			URL:         in.URL,
			Description: in.Description,
			IsMain:      in.IsMain,
		})
	}
	return images
}
