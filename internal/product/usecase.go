package product

import (
	"context"

	"sareemart/internal/domain"
)

type browseUseCase struct {
	repo Repository
}

func NewBrowseUseCase(repo Repository) BrowseUseCase {
	return &browseUseCase{repo: repo}
}

func (uc *browseUseCase) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	return uc.repo.FindActive(ctx, category)
}

func (uc *browseUseCase) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return uc.repo.FindByID(ctx, id)
}
