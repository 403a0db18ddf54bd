package service

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserInactive     = errors.New("user is inactive")
	ErrEmailTaken       = errors.New("email already registered")
	ErrCPFTaken         = errors.New("cpf already registered")
	ErrNameTaken        = errors.New("name already in use")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenderNotFound   = errors.New("gender not found")
	ErrSizeNotFound     = errors.New("size not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrImageNotFound    = errors.New("product image not found")
)

// NotFoundError identifies which referenced entity was missing during
// order placement, so the handler can report the offending id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}
