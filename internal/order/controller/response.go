package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sareemart/internal/domain"
	"sareemart/internal/dto"
	apperrors "sareemart/internal/errors"
)

func toSummaryDTO(o domain.Order) dto.OrderSummaryDTO {
	return dto.OrderSummaryDTO{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		DeliveryMethod: string(o.DeliveryMethod),
		TotalPrice:     o.TotalPrice,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toOrderDTO(o *domain.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return dto.OrderDTO{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		DeliveryMethod: string(o.DeliveryMethod),
		Items:          items,
		TotalPrice:     o.TotalPrice,
		RefundDue:      o.RefundDue(),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

type orderResponse struct {
	TraceID string       `json:"traceId"`
	Order   dto.OrderDTO `json:"order"`
}

type errorResponse struct {
	TraceID   string    `json:"traceId"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func handleOrderError(logger *zap.Logger, w http.ResponseWriter, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeValidationError(logger, w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeError(logger, w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsIllegalTransitionError(err); ok {
		writeError(logger, w, traceID, http.StatusUnprocessableEntity, "ILLEGAL_TRANSITION", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		writeError(logger, w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	writeError(logger, w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func writeError(logger *zap.Logger, w http.ResponseWriter, traceID string, status int, code, message string) {
	writeJSON(logger, w, status, errorResponse{
		TraceID:   traceID,
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func writeValidationError(logger *zap.Logger, w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	writeJSON(logger, w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
