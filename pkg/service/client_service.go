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

type ClientService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewClientService(db *gorm.DB, logger *zap.Logger) *ClientService {
	return &ClientService{db: db, logger: logger}
}

type ClientInput struct {
	Name    string
	Email   string
	CPF     string
	Address string
}

type ClientUpdateInput struct {
	Name    *string
	Email   *string
	CPF     *string
	Address *string
}

type ClientFilters struct {
	Name  string
	Email string
	Skip  int
	Limit int
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	if taken, err := s.emailTaken(ctx, in.Email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.cpfTaken(ctx, in.CPF, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrCPFTaken
	}

	client := models.Client{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Email:   in.Email,
		CPF:     in.CPF,
		Address: in.Address,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info("client created", zap.String("client_id", client.ID))
	return &client, nil
}

func (s *ClientService) List(ctx context.Context, f ClientFilters) ([]models.Client, error) {
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}

	query := s.db.WithContext(ctx).Model(&models.Client{})
	if f.Name != "" {
		query = query.Where("name LIKE ?", "%"+f.Name+"%")
	}
	if f.Email != "" {
		query = query.Where("email LIKE ?", "%"+f.Email+"%")
	}

	var clients []models.Client
	if err := query.Order("created_at, id").Offset(f.Skip).Limit(f.Limit).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, clientID string) (*models.Client, error) {
	var client models.Client
	err := s.db.WithContext(ctx).First(&client, "id = ?", clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("load client: %w", err)
	}
	return &client, nil
}

func (s *ClientService) Update(ctx context.Context, clientID string, in ClientUpdateInput) (*models.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil && *in.Email != client.Email {
		if taken, err := s.emailTaken(ctx, *in.Email, clientID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailTaken
		}
		updates["email"] = *in.Email
	}
	if in.CPF != nil && *in.CPF != client.CPF {
		if taken, err := s.cpfTaken(ctx, *in.CPF, clientID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrCPFTaken
		}
		updates["cpf"] = *in.CPF
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(client).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update client: %w", err)
		}
	}
	return s.Get(ctx, clientID)
}

func (s *ClientService) Delete(ctx context.Context, clientID string) error {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", clientID)
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrClientNotFound
	}
	s.logger.Info("client deleted", zap.String("client_id", clientID))
	return nil
}

func (s *ClientService) emailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Client{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

func (s *ClientService) cpfTaken(ctx context.Context, cpf, excludeID string) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Client{}).Where("cpf = ?", cpf)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check cpf: %w", err)
	}
	return count > 0, nil
}
