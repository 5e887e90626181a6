package repository

import (
	"context"

	"github.com/NBNEORIGIN/signmaker/models"
)

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	GetByMNumber(ctx context.Context, mNumber string) (*models.Product, error)
	GetByMNumbers(ctx context.Context, mNumbers []string) ([]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, mNumber string) error
}
