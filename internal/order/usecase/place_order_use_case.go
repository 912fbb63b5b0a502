package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sareemart/internal/domain"
	"sareemart/internal/dto"
	apperrors "sareemart/internal/errors"
)

type OrderCreator interface {
	Create(ctx context.Context, order *domain.Order) error
}

type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error)
}

// PlaceOrderUseCase is the checkout entry point for an authenticated
// customer. Prices always come from the Product table, never from the client.
type PlaceOrderUseCase struct {
	orders   OrderCreator
	products ProductFinder
	logger   *zap.Logger
}

func NewPlaceOrderUseCase(orders OrderCreator, products ProductFinder, logger *zap.Logger) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, customerID string, req dto.PlaceOrderRequest) (*domain.Order, error) {
	method, err := domain.ParseDeliveryMethod(req.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(req.Items))
	seen := make(map[int]bool, len(req.Items))
	for i, item := range req.Items {
		if seen[item.ProductID] {
			return nil, apperrors.NewValidationError("duplicate product in order", apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(i) + "].productId",
				Message: "productId must not be duplicated",
			})
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}

	products, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := &domain.Order{
		ID:             uuid.New().String(),
		CustomerID:     customerID,
		Status:         domain.OrderStatusPending,
		PaymentStatus:  domain.PaymentStatusPending,
		DeliveryMethod: method,
	}

	for i, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("product %d is not available", item.ProductID), apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(i) + "].productId",
				Message: "product does not exist or is inactive",
			})
		}

		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		order.TotalPrice += product.Price * float64(item.Quantity)
	}

	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("order placed",
		zap.String("orderId", order.ID),
		zap.String("customerId", customerID),
		zap.Int("itemCount", len(order.Items)),
		zap.Float64("totalPrice", order.TotalPrice),
	)

	return order, nil
}
