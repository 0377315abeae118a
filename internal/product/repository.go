package product

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned when a product record is not found.
var ErrProductNotFound = errors.New("product not found")

// Repository provides operations on the products table.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	ListByUser(ctx context.Context, userID string) ([]Product, error)
	ListToday(ctx context.Context, userID string) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Delete(ctx context.Context, id int64) error
}
