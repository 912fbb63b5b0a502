package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"sareemart/internal/domain"
	"sareemart/internal/dto"
	apperrors "sareemart/internal/errors"
	"sareemart/internal/order/repository"
)

type mockOrderRepository struct {
	FindByIDFunc            func(ctx context.Context, id string) (*domain.Order, error)
	ListFunc                func(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error)
	UpdateStatusFunc        func(ctx context.Context, id string, expected, next domain.OrderStatus) error
	UpdatePaymentStatusFunc func(ctx context.Context, id string, expected, next domain.PaymentStatus) error
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, expected, next domain.OrderStatus) error {
	return m.UpdateStatusFunc(ctx, id, expected, next)
}

func (m *mockOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, expected, next domain.PaymentStatus) error {
	return m.UpdatePaymentStatusFunc(ctx, id, expected, next)
}

func orderFixture(status domain.OrderStatus, payment domain.PaymentStatus) *domain.Order {
	return &domain.Order{
		ID:             "o-1",
		CustomerID:     "c-1",
		Status:         status,
		PaymentStatus:  payment,
		DeliveryMethod: domain.DeliveryHomeDelivery,
		TotalPrice:     1899.00,
		CreatedAt:      time.Now().Add(-time.Hour),
		UpdatedAt:      time.Now().Add(-time.Hour),
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.GetOrder(ctx, "missing")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	ctx := context.Background()

	casCalled := false
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return orderFixture(domain.OrderStatusPending, domain.PaymentStatusPending), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, expected, next domain.OrderStatus) error {
			casCalled = true
			return nil
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.UpdateStatus(ctx, "o-1", "ARCHIVED")
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.False(t, casCalled, "no write may happen for an out-of-set status")
}

func TestUpdateStatus_PendingCannotJumpToShipped(t *testing.T) {
	ctx := context.Background()

	casCalled := false
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return orderFixture(domain.OrderStatusPending, domain.PaymentStatusPending), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, expected, next domain.OrderStatus) error {
			casCalled = true
			return nil
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.UpdateStatus(ctx, "o-1", "SHIPPED")
	ite, ok := apperrors.IsIllegalTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, "PENDING", ite.From)
	assert.Equal(t, "SHIPPED", ite.To)
	assert.False(t, casCalled, "illegal transitions must fail without mutating")
}

func TestUpdateStatus_NoOpTransitionRejected(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return orderFixture(domain.OrderStatusProcessing, domain.PaymentStatusPaid), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, expected, next domain.OrderStatus) error {
			t.Fatal("no write expected")
			return nil
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	// Self-loops are not edges of the lifecycle graph.
	_, err := uc.UpdateStatus(ctx, "o-1", "PROCESSING")
	_, ok := apperrors.IsIllegalTransitionError(err)
	assert.True(t, ok)
}

func TestUpdateStatus_Success(t *testing.T) {
	ctx := context.Background()

	stored := orderFixture(domain.OrderStatusPending, domain.PaymentStatusPending)
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			copy := *stored
			return &copy, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, expected, next domain.OrderStatus) error {
			assert.Equal(t, domain.OrderStatusPending, expected, "CAS must use the re-read status")
			stored.Status = next
			stored.UpdatedAt = time.Now()
			return nil
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	updated, err := uc.UpdateStatus(ctx, "o-1", "PROCESSING")
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateStatus_ConflictSurfaced(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return orderFixture(domain.OrderStatusPending, domain.PaymentStatusPending), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, expected, next domain.OrderStatus) error {
			return apperrors.NewConflictError("order o-1 was modified by a concurrent update")
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.UpdateStatus(ctx, "o-1", "CANCELLED")
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

// casOrderRepository is an in-memory repository with real compare-and-swap
// semantics, used to exercise two writers racing on one order. When barrier
// is set, the first two reads rendezvous so both writers validate against the
// same snapshot before either write lands.
type casOrderRepository struct {
	mu       sync.Mutex
	order    domain.Order
	barrier  chan struct{}
	arrivals int
}

func (r *casOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if r.barrier != nil {
		r.mu.Lock()
		r.arrivals++
		if r.arrivals == 2 {
			close(r.barrier)
		}
		r.mu.Unlock()
		<-r.barrier
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	copy := r.order
	return &copy, nil
}

func (r *casOrderRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
	return nil, nil
}

func (r *casOrderRepository) UpdateStatus(ctx context.Context, id string, expected, next domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.order.Status != expected {
		return apperrors.NewConflictError("order was modified by a concurrent update")
	}
	r.order.Status = next
	r.order.UpdatedAt = time.Now()
	return nil
}

func (r *casOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, expected, next domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.order.PaymentStatus != expected {
		return apperrors.NewConflictError("order was modified by a concurrent update")
	}
	r.order.PaymentStatus = next
	return nil
}

func TestUpdateStatus_ConcurrentWritersExactlyOneWins(t *testing.T) {
	ctx := context.Background()

	repo := &casOrderRepository{
		order:   *orderFixture(domain.OrderStatusPending, domain.PaymentStatusPending),
		barrier: make(chan struct{}),
	}
	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	var wg sync.WaitGroup
	results := make([]error, 2)
	targets := []string{"PROCESSING", "CANCELLED"}

	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.UpdateStatus(ctx, "o-1", targets[i])
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		if _, ok := apperrors.IsConflictError(err); ok {
			conflicts++
		}
	}

	assert.Equal(t, 1, successes, "exactly one writer may win")
	assert.Equal(t, 1, conflicts, "the loser must receive Conflict")
}

func TestUpdateStatus_ReturnedWhilePaidFlagsRefund(t *testing.T) {
	ctx := context.Background()

	repo := &casOrderRepository{order: *orderFixture(domain.OrderStatusShipped, domain.PaymentStatusPaid)}
	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	updated, err := uc.UpdateStatus(ctx, "o-1", "RETURNED")
	assert.NoError(t, err, "refund coupling warns, it never blocks")
	assert.True(t, updated.RefundDue())

	// The refund itself then flows through the payment status machine.
	updated, err = uc.UpdatePaymentStatus(ctx, "o-1", "REFUNDED")
	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, updated.PaymentStatus)
	assert.False(t, updated.RefundDue())
}

func TestUpdatePaymentStatus_RefundRequiresPaid(t *testing.T) {
	ctx := context.Background()

	repo := &casOrderRepository{order: *orderFixture(domain.OrderStatusPending, domain.PaymentStatusPending)}
	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.UpdatePaymentStatus(ctx, "o-1", "REFUNDED")
	ite, ok := apperrors.IsIllegalTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, "PENDING", ite.From)
	assert.Equal(t, "REFUNDED", ite.To)
}

func TestUpdatePaymentStatus_UnknownValueRejected(t *testing.T) {
	ctx := context.Background()

	repo := &casOrderRepository{order: *orderFixture(domain.OrderStatusPending, domain.PaymentStatusPending)}
	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.UpdatePaymentStatus(ctx, "o-1", "CHARGED")
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		ListFunc: func(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
			t.Fatal("no query expected for an invalid filter")
			return nil, nil
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.ListOrders(ctx, dto.ListOrdersRequest{Status: "EN_ROUTE"})
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestListOrders_FilterPassedThrough(t *testing.T) {
	ctx := context.Background()

	var gotFilter repository.ListFilter
	repo := &mockOrderRepository{
		ListFunc: func(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
			gotFilter = filter
			return []domain.Order{}, nil
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.ListOrders(ctx, dto.ListOrdersRequest{
		Status:     "SHIPPED",
		CustomerID: "c-9",
		From:       "2026-08-01T00:00:00Z",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, gotFilter.Status)
	assert.Equal(t, "c-9", gotFilter.CustomerID)
	assert.Equal(t, 2026, gotFilter.From.Year())
	assert.True(t, gotFilter.To.IsZero())
}

func TestListOrders_InvalidDateFilter(t *testing.T) {
	ctx := context.Background()

	repo := &mockOrderRepository{
		ListFunc: func(ctx context.Context, filter repository.ListFilter) ([]domain.Order, error) {
			t.Fatal("no query expected")
			return nil, nil
		},
	}

	uc := NewManageOrdersUseCase(repo, zap.NewNop())

	_, err := uc.ListOrders(ctx, dto.ListOrdersRequest{From: "yesterday"})
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}
