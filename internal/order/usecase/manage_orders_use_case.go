package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sareemart/internal/domain"
	"sareemart/internal/dto"
	apperrors "sareemart/internal/errors"
	"sareemart/internal/order/repository"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, expected, next domain.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id string, expected, next domain.PaymentStatus) error
}

// ManageOrdersUseCase is the admin console's order service. It holds no state
// between calls; every mutation re-reads the record and writes with a
// compare-and-swap so concurrent admins cannot both win.
type ManageOrdersUseCase struct {
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewManageOrdersUseCase(orderRepo OrderRepository, logger *zap.Logger) *ManageOrdersUseCase {
	return &ManageOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *ManageOrdersUseCase) ListOrders(ctx context.Context, req dto.ListOrdersRequest) ([]domain.Order, error) {
	filter := repository.ListFilter{CustomerID: req.CustomerID}

	if req.Status != "" {
		status, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date filter", apperrors.ValidationDetail{
				Field:   "from",
				Message: "from must be an RFC 3339 timestamp",
			})
		}
		filter.From = from
	}

	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date filter", apperrors.ValidationDetail{
				Field:   "to",
				Message: "to must be an RFC 3339 timestamp",
			})
		}
		filter.To = to
	}

	return uc.orderRepo.List(ctx, filter)
}

func (uc *ManageOrdersUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orderRepo.FindByID(ctx, id)
}

func (uc *ManageOrdersUseCase) ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return uc.orderRepo.List(ctx, repository.ListFilter{CustomerID: customerID})
}

// UpdateStatus moves an order along the lifecycle graph. The current status
// is re-read immediately before validation, and the write lands only if no
// concurrent writer changed it in between.
func (uc *ManageOrdersUseCase) UpdateStatus(ctx context.Context, id string, newStatus string) (*domain.Order, error) {
	next, err := domain.ParseOrderStatus(newStatus)
	if err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.NewIllegalTransitionError(string(order.Status), string(next))
	}

	if err := uc.orderRepo.UpdateStatus(ctx, id, order.Status, next); err != nil {
		return nil, err
	}

	updated, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.RefundDue() {
		uc.logger.Warn("order closed while payment is still captured, refund required",
			zap.String("orderId", updated.ID),
			zap.String("status", string(updated.Status)),
			zap.String("paymentStatus", string(updated.PaymentStatus)),
		)
	}

	uc.logger.Info("order status updated",
		zap.String("orderId", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
	)

	return updated, nil
}

func (uc *ManageOrdersUseCase) UpdatePaymentStatus(ctx context.Context, id string, newStatus string) (*domain.Order, error) {
	next, err := domain.ParsePaymentStatus(newStatus)
	if err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.PaymentStatus.CanTransitionTo(next) {
		return nil, apperrors.NewIllegalTransitionError(string(order.PaymentStatus), string(next))
	}

	if err := uc.orderRepo.UpdatePaymentStatus(ctx, id, order.PaymentStatus, next); err != nil {
		return nil, err
	}

	updated, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order payment status updated",
		zap.String("orderId", id),
		zap.String("from", string(order.PaymentStatus)),
		zap.String("to", string(next)),
	)

	return updated, nil
}
