package models

import (
	"time"
)

type Client struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	CPF       string    `gorm:"column:cpf;type:varchar(11);uniqueIndex;not null" json:"cpf"`
	Address   string    `gorm:"type:varchar(500)" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
