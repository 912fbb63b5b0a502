package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"sareemart/internal/domain"
	apperrors "sareemart/internal/errors"
)

type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AuthController struct {
	authSvc    AuthService
	tokens     TokenIssuer
	validate   *validator.Validate
	tokenTTL   time.Duration
	cookieName string
	logger     *zap.Logger
}

func NewAuthController(authSvc AuthService, tokens TokenIssuer, tokenTTL time.Duration, cookieName string, logger *zap.Logger) *AuthController {
	return &AuthController{
		authSvc:    authSvc,
		tokens:     tokens,
		validate:   validator.New(),
		tokenTTL:   tokenTTL,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (c *AuthController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validate.Struct(req); err != nil {
		c.writeValidationError(w, "validation failed", validationDetails(err)...)
		return
	}

	user, err := c.authSvc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.issueSession(w, user)
}

func (c *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validate.Struct(req); err != nil {
		c.writeValidationError(w, "validation failed", validationDetails(err)...)
		return
	}

	user, err := c.authSvc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.issueSession(w, user)
}

func (c *AuthController) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (c *AuthController) issueSession(w http.ResponseWriter, user *domain.User) {
	token, err := c.tokens.Issue(user)
	if err != nil {
		c.logger.Error("failed to issue session token", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(c.tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.writeJSON(w, http.StatusOK, SessionResponse{
		Token: token,
		User: UserDTO{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	})
}

func (c *AuthController) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsUnauthenticatedError(err); ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHENTICATED",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CONFLICT",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("unexpected auth error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
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

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *AuthController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *AuthController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
