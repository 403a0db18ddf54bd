package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/backoffice/pkg/models"
)

// ProductImageService manages product images independently of the product
// endpoints, so single images can be added, corrected or removed without
// resubmitting the whole image set.
type ProductImageService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProductImageService(db *gorm.DB, logger *zap.Logger) *ProductImageService {
	return &ProductImageService{db: db, logger: logger}
}

type ImageInput struct {
	ProductID   string
	URL         string
	Description string
	IsMain      bool
}

type ImageUpdateInput struct {
	URL         *string
	Description *string
	IsMain      *bool
}

type ImageFilters struct {
	ProductID string
	Skip      int
	Limit     int
}

func (s *ProductImageService) Create(ctx context.Context, in ImageInput) (*models.ProductImage, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", in.ProductID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if count == 0 {
		return nil, ErrProductNotFound
	}

	image := models.ProductImage{
		ID:          uuid.NewString(),
		ProductID:   in.ProductID,
		URL:         in.URL,
		Description: in.Description,
		IsMain:      in.IsMain,
	}
	if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, fmt.Errorf("create product image: %w", err)
	}

	s.logger.Info("product image created",
		zap.String("image_id", image.ID),
		zap.String("product_id", image.ProductID))
	return &image, nil
}

func (s *ProductImageService) List(ctx context.Context, f ImageFilters) ([]models.ProductImage, error) {
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}

	query := s.db.WithContext(ctx).Model(&models.ProductImage{})
	if f.ProductID != "" {
		query = query.Where("product_id = ?", f.ProductID)
	}

	var images []models.ProductImage
	if err := query.Order("created_at, id").Offset(f.Skip).Limit(f.Limit).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	return images, nil
}

func (s *ProductImageService) Get(ctx context.Context, imageID string) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := s.db.WithContext(ctx).First(&image, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("load product image: %w", err)
	}
	return &image, nil
}

func (s *ProductImageService) Update(ctx context.Context, imageID string, in ImageUpdateInput) (*models.ProductImage, error) {
	image, err := s.Get(ctx, imageID)
	if err != nil {
		return nil, err
	}

	if in.URL != nil {
		image.URL = *in.URL
	}
	if in.Description != nil {
		image.Description = *in.Description
	}
	if in.IsMain != nil {
		image.IsMain = *in.IsMain
	}

	if err := s.db.WithContext(ctx).Save(image).Error; err != nil {
		return nil, fmt.Errorf("update product image: %w", err)
	}
	return image, nil
}

func (s *ProductImageService) Delete(ctx context.Context, imageID string) error {
	res := s.db.WithContext(ctx).Delete(&models.ProductImage{}, "id = ?", imageID)
	if res.Error != nil {
		return fmt.Errorf("delete product image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrImageNotFound
	}

	s.logger.Info("product image deleted", zap.String("image_id", imageID))
	return nil
}
