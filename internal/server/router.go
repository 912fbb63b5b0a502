package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sareemart/internal/auth"
	"sareemart/internal/domain"
	"sareemart/internal/guard"
	"sareemart/internal/order"
	"sareemart/internal/product"
	"sareemart/internal/server/middleware"
)

func NewRouter(
	authModule *auth.Module,
	orderModule *order.Module,
	productCtrl *product.Controller,
	allowedOrigins []string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public storefront.
	r.Post("/auth/register", authModule.Controller.HandleRegister)
	r.Post("/auth/login", authModule.Controller.HandleLogin)
	r.Post("/auth/logout", authModule.Controller.HandleLogout)
	r.Get("/products", productCtrl.HandleListProducts)
	r.Get("/products/{productId}", productCtrl.HandleGetProduct)

	// Customer-only area: checkout and own order history.
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireRole(authModule.Tokens, domain.RoleCustomer, guard.AreaAccount))
		r.Post("/orders", orderModule.Checkout.HandlePlaceOrder)
		r.Get("/account/orders", orderModule.Checkout.HandleListMyOrders)
	})

	// Admin console: order management.
	r.Route("/admin/orders", func(r chi.Router) {
		r.Use(guard.RequireRole(authModule.Tokens, domain.RoleAdmin, guard.AreaAdmin))
		r.Get("/", orderModule.Admin.HandleListOrders)
		r.Get("/{orderId}", orderModule.Admin.HandleGetOrder)
		r.Patch("/{orderId}/status", orderModule.Admin.HandleUpdateStatus)
		r.Patch("/{orderId}/payment-status", orderModule.Admin.HandleUpdatePaymentStatus)
	})

	return r
}
