package order

import (
	"database/sql"

	"go.uber.org/zap"

	"sareemart/internal/order/controller"
	orderrepo "sareemart/internal/order/repository"
	"sareemart/internal/order/usecase"
	productrepo "sareemart/internal/product/repository"
)

type Module struct {
	Admin    *controller.AdminOrdersController
	Checkout *controller.CheckoutController
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)

	manageUC := usecase.NewManageOrdersUseCase(orderRepo, logger)
	placeUC := usecase.NewPlaceOrderUseCase(orderRepo, productRepo, logger)

	return &Module{
		Admin:    controller.NewAdminOrdersController(manageUC, logger),
		Checkout: controller.NewCheckoutController(placeUC, manageUC, logger),
	}
}
