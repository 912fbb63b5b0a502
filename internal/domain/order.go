package domain

import (
	"fmt"
	"time"

	apperrors "sareemart/internal/errors"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusReturned   OrderStatus = "RETURNED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type DeliveryMethod string

const (
	DeliveryHomeDelivery DeliveryMethod = "HOME_DELIVERY"
	DeliveryStorePickup  DeliveryMethod = "STORE_PICKUP"
)

// orderStatusTransitions is the only source of legal status edges. Statuses
// absent from the map (CANCELLED, RETURNED) accept no outbound transition.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusReturned},
	OrderStatusDelivered:  {OrderStatusReturned},
}

var paymentStatusTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusFailed:  {PaymentStatusPaid},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturned
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return OrderStatus(s), nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown order status %q", s), apperrors.ValidationDetail{
		Field:   "status",
		Message: "status must be one of PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED, RETURNED",
	})
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return PaymentStatus(s), nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown payment status %q", s), apperrors.ValidationDetail{
		Field:   "paymentStatus",
		Message: "paymentStatus must be one of PENDING, PAID, FAILED, REFUNDED",
	})
}

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case DeliveryHomeDelivery, DeliveryStorePickup:
		return DeliveryMethod(s), nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown delivery method %q", s), apperrors.ValidationDetail{
		Field:   "deliveryMethod",
		Message: "deliveryMethod must be one of HOME_DELIVERY, STORE_PICKUP",
	})
}

type OrderItem struct {
	ID        uint
	OrderID   string
	ProductID int
	Quantity  int
	UnitPrice float64
}

type Order struct {
	ID             string
	CustomerID     string
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	DeliveryMethod DeliveryMethod
	Items          []OrderItem
	TotalPrice     float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RefundDue reports whether an order ended up cancelled or returned while the
// customer's payment is still captured. Refund execution belongs to the
// payment gateway; callers surface this as a warning only.
func (o *Order) RefundDue() bool {
	return (o.Status == OrderStatusCancelled || o.Status == OrderStatusReturned) &&
		o.PaymentStatus == PaymentStatusPaid
}
