package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"sareemart/internal/auth/controller"
	"sareemart/internal/auth/repository"
	"sareemart/internal/auth/service"
	"sareemart/internal/config"
)

type Module struct {
	Controller *controller.AuthController
	Tokens     *service.TokenService
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	userRepo := repository.NewMySQLUserRepository(db)
	tokens := service.NewTokenService(cfg.Auth)
	authSvc := service.NewAuthService(userRepo, cfg.Auth.BcryptCost)

	ctrl := controller.NewAuthController(authSvc, tokens, cfg.Auth.TokenTTL, service.SessionCookie, logger)

	return &Module{
		Controller: ctrl,
		Tokens:     tokens,
	}
}
