package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sareemart/internal/domain"
	"sareemart/internal/dto"
	apperrors "sareemart/internal/errors"
)

type ManageOrdersUseCase interface {
	ListOrders(ctx context.Context, req dto.ListOrdersRequest) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, newStatus string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, newStatus string) (*domain.Order, error)
}

type AdminOrdersController struct {
	useCase ManageOrdersUseCase
	logger  *zap.Logger
}

func NewAdminOrdersController(useCase ManageOrdersUseCase, logger *zap.Logger) *AdminOrdersController {
	return &AdminOrdersController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *AdminOrdersController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	q := r.URL.Query()
	req := dto.ListOrdersRequest{
		Status:     q.Get("status"),
		CustomerID: q.Get("customerId"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}

	orders, err := c.useCase.ListOrders(r.Context(), req)
	if err != nil {
		handleOrderError(c.logger, w, traceID, err)
		return
	}

	summaries := make([]dto.OrderSummaryDTO, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, toSummaryDTO(o))
	}

	logger.Debug("orders listed", zap.Int("count", len(summaries)))
	writeJSON(c.logger, w, http.StatusOK, map[string]interface{}{
		"traceId": traceID,
		"orders":  summaries,
	})
}

func (c *AdminOrdersController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	orderID := chi.URLParam(r, "orderId")
	order, err := c.useCase.GetOrder(r.Context(), orderID)
	if err != nil {
		handleOrderError(c.logger, w, traceID, err)
		return
	}

	writeJSON(c.logger, w, http.StatusOK, orderResponse{TraceID: traceID, Order: toOrderDTO(order)})
}

func (c *AdminOrdersController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(c.logger, w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.useCase.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		handleOrderError(c.logger, w, traceID, err)
		return
	}

	writeJSON(c.logger, w, http.StatusOK, orderResponse{TraceID: traceID, Order: toOrderDTO(order)})
}

func (c *AdminOrdersController) HandleUpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")

	var req dto.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeValidationError(c.logger, w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.useCase.UpdatePaymentStatus(r.Context(), orderID, req.PaymentStatus)
	if err != nil {
		handleOrderError(c.logger, w, traceID, err)
		return
	}

	writeJSON(c.logger, w, http.StatusOK, orderResponse{TraceID: traceID, Order: toOrderDTO(order)})
}
