package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/backoffice/pkg/models"
)

// CatalogService manages the reference tables products point at:
// categories, genders and sizes.
type CatalogService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCatalogService(db *gorm.DB, logger *zap.Logger) *CatalogService {
	return &CatalogService{db: db, logger: logger}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if err := s.nameFree(ctx, &models.Category{}, name, 0); err != nil {
		return nil, err
	}
	category := models.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, skip, limit int) ([]models.Category, error) {
	var categories []models.Category
	if err := s.page(ctx, skip, limit).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("load category: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int, name string) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != category.Name {
		if err := s.nameFree(ctx, &models.Category{}, name, id); err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(category).Update("name", name).Error; err != nil {
			return nil, fmt.Errorf("update category: %w", err)
		}
		category.Name = name
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	return s.deleteByID(ctx, &models.Category{}, id, ErrCategoryNotFound)
}

func (s *CatalogService) CreateGender(ctx context.Context, name, longName string) (*models.Gender, error) {
	if err := s.nameFree(ctx, &models.Gender{}, name, 0); err != nil {
		return nil, err
	}
	gender := models.Gender{Name: name, LongName: longName}
	if err := s.db.WithContext(ctx).Create(&gender).Error; err != nil {
		return nil, fmt.Errorf("create gender: %w", err)
	}
	return &gender, nil
}

func (s *CatalogService) ListGenders(ctx context.Context, skip, limit int) ([]models.Gender, error) {
	var genders []models.Gender
	if err := s.page(ctx, skip, limit).Find(&genders).Error; err != nil {
		return nil, fmt.Errorf("list genders: %w", err)
	}
	return genders, nil
}

func (s *CatalogService) GetGender(ctx context.Context, id int) (*models.Gender, error) {
	var gender models.Gender
	if err := s.db.WithContext(ctx).First(&gender, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenderNotFound
		}
		return nil, fmt.Errorf("load gender: %w", err)
	}
	return &gender, nil
}

func (s *CatalogService) UpdateGender(ctx context.Context, id int, name, longName *string) (*models.Gender, error) {
	gender, err := s.GetGender(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if name != nil && *name != gender.Name {
		if err := s.nameFree(ctx, &models.Gender{}, *name, id); err != nil {
			return nil, err
		}
		updates["name"] = *name
	}
	if longName != nil {
		updates["long_name"] = *longName
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(gender).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update gender: %w", err)
		}
	}
	return s.GetGender(ctx, id)
}

func (s *CatalogService) DeleteGender(ctx context.Context, id int) error {
	return s.deleteByID(ctx, &models.Gender{}, id, ErrGenderNotFound)
}

func (s *CatalogService) CreateSize(ctx context.Context, name, longName string) (*models.Size, error) {
	if err := s.nameFree(ctx, &models.Size{}, name, 0); err != nil {
		return nil, err
	}
	size := models.Size{Name: name, LongName: longName}
	if err := s.db.WithContext(ctx).Create(&size).Error; err != nil {
		return nil, fmt.Errorf("create size: %w", err)
	}
	return &size, nil
}

func (s *CatalogService) ListSizes(ctx context.Context, skip, limit int) ([]models.Size, error) {
	var sizes []models.Size
	if err := s.page(ctx, skip, limit).Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	return sizes, nil
}

func (s *CatalogService) GetSize(ctx context.Context, id int) (*models.Size, error) {
	var size models.Size
	if err := s.db.WithContext(ctx).First(&size, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, fmt.Errorf("load size: %w", err)
	}
	return &size, nil
}

func (s *CatalogService) UpdateSize(ctx context.Context, id int, name, longName *string) (*models.Size, error) {
	size, err := s.GetSize(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if name != nil && *name != size.Name {
		if err := s.nameFree(ctx, &models.Size{}, *name, id); err != nil {
			return nil, err
		}
		updates["name"] = *name
	}
	if longName != nil {
		updates["long_name"] = *longName
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(size).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update size: %w", err)
		}
	}
	return s.GetSize(ctx, id)
}

func (s *CatalogService) DeleteSize(ctx context.Context, id int) error {
	return s.deleteByID(ctx, &models.Size{}, id, ErrSizeNotFound)
}

func (s *CatalogService) page(ctx context.Context, skip, limit int) *gorm.DB {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	if skip < 0 {
		skip = 0
	}
	return s.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit)
}

func (s *CatalogService) nameFree(ctx context.Context, model interface{}, name string, excludeID int) error {
	query := s.db.WithContext(ctx).Model(model).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if count > 0 {
		return ErrNameTaken
	}
	return nil
}

func (s *CatalogService) deleteByID(ctx context.Context, model interface{}, id int, notFound error) error {
	res := s.db.WithContext(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}
