package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sareemart/internal/domain"
	"sareemart/internal/dto"
	apperrors "sareemart/internal/errors"
	"sareemart/internal/guard"
)

type PlaceOrderUseCase interface {
	PlaceOrder(ctx context.Context, customerID string, req dto.PlaceOrderRequest) (*domain.Order, error)
}

type CustomerOrdersUseCase interface {
	ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error)
}

// CheckoutController serves the storefront side of orders: placing one and
// listing the signed-in customer's own. Both routes sit behind the CUSTOMER
// guard, so a principal is always present in the context.
type CheckoutController struct {
	placeOrder PlaceOrderUseCase
	myOrders   CustomerOrdersUseCase
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewCheckoutController(placeOrder PlaceOrderUseCase, myOrders CustomerOrdersUseCase, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		placeOrder: placeOrder,
		myOrders:   myOrders,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (c *CheckoutController) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := guard.PrincipalFromContext(r.Context())
	if !ok {
		logger.Error("checkout reached without a guarded principal")
		writeError(c.logger, w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
		return
	}

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(c.logger, w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validate.Struct(req); err != nil {
		writeValidationError(c.logger, w, "validation failed", validationDetails(err)...)
		return
	}

	order, err := c.placeOrder.PlaceOrder(r.Context(), principal.ID, req)
	if err != nil {
		handleOrderError(c.logger, w, traceID, err)
		return
	}

	writeJSON(c.logger, w, http.StatusCreated, orderResponse{TraceID: traceID, Order: toOrderDTO(order)})
}

func (c *CheckoutController) HandleListMyOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	principal, ok := guard.PrincipalFromContext(r.Context())
	if !ok {
		c.logger.Error("account orders reached without a guarded principal")
		writeError(c.logger, w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
		return
	}

	orders, err := c.myOrders.ListCustomerOrders(r.Context(), principal.ID)
	if err != nil {
		handleOrderError(c.logger, w, traceID, err)
		return
	}

	summaries := make([]dto.OrderSummaryDTO, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, toSummaryDTO(o))
	}

	writeJSON(c.logger, w, http.StatusOK, map[string]interface{}{
		"traceId": traceID,
		"orders":  summaries,
	})
}

func validationDetails(err error) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details = append(details, apperrors.ValidationDetail{
				Field:   fe.Field(),
				Message: "failed " + fe.Tag() + " validation",
			})
		}
	}
	return details
}
