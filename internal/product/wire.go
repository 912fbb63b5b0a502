package product

import (
	"database/sql"

	"go.uber.org/zap"

	"sareemart/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLProductRepository(db)
	useCase := NewBrowseUseCase(repo)
	return NewController(useCase, logger)
}
