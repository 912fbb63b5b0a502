package product

import (
	"context"

	"sareemart/internal/domain"
)

type BrowseUseCase interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

type Repository interface {
	FindActive(ctx context.Context, category string) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}
