package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sareemart/internal/domain"
	apperrors "sareemart/internal/errors"
)

type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	userRepo   UserRepository
	bcryptCost int
}

func NewAuthService(userRepo UserRepository, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a CUSTOMER account. Admin and staff accounts are
// provisioned out of band, never through this endpoint.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("hashing password", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}

	if err := s.userRepo.Insert(ctx, user); err != nil {
		if isDuplicateEntryError(err) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("email %s is already registered", email))
		}
		return nil, err
	}

	return user, nil
}

func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthenticatedError("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, apperrors.NewUnauthenticatedError("invalid email or password")
	}

	return user, nil
}
