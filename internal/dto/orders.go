package dto

import "time"

// ListOrdersRequest carries the admin console's listing filters; all fields
// are optional. Dates use RFC 3339.
type ListOrdersRequest struct {
	Status     string `json:"status"`
	CustomerID string `json:"customerId"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

type PlaceOrderItemRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0,lte=100"`
}

type PlaceOrderRequest struct {
	DeliveryMethod string                  `json:"deliveryMethod" validate:"required"`
	Items          []PlaceOrderItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

type OrderItemDTO struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type OrderDTO struct {
	ID             string         `json:"id"`
	CustomerID     string         `json:"customerId"`
	Status         string         `json:"status"`
	PaymentStatus  string         `json:"paymentStatus"`
	DeliveryMethod string         `json:"deliveryMethod"`
	Items          []OrderItemDTO `json:"items,omitempty"`
	TotalPrice     float64        `json:"totalPrice"`
	RefundDue      bool           `json:"refundDue"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// OrderSummaryDTO is the listing row shape: no line items.
type OrderSummaryDTO struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customerId"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryMethod string    `json:"deliveryMethod"`
	TotalPrice     float64   `json:"totalPrice"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
