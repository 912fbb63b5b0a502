package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"sareemart/internal/domain"
	apperrors "sareemart/internal/errors"
)

type mockUserRepository struct {
	InsertFunc      func(ctx context.Context, user *domain.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepository) Insert(ctx context.Context, user *domain.User) error {
	return m.InsertFunc(ctx, user)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func TestRegister_CreatesCustomer(t *testing.T) {
	ctx := context.Background()

	var inserted *domain.User
	repo := &mockUserRepository{
		InsertFunc: func(ctx context.Context, user *domain.User) error {
			inserted = user
			return nil
		},
	}

	svc := NewAuthService(repo, bcrypt.MinCost)

	user, err := svc.Register(ctx, "priya@example.com", "Priya", "s3cret-password")
	assert.NoError(t, err)
	assert.NotNil(t, inserted)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("s3cret-password")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	// ER_DUP_ENTRY on the Users.email unique key, wrapped the way the
	// repository wraps driver errors.
	repo := &mockUserRepository{
		InsertFunc: func(ctx context.Context, user *domain.User) error {
			return fmt.Errorf("inserting user: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'priya@example.com' for key 'Users.email'"})
		},
	}

	svc := NewAuthService(repo, bcrypt.MinCost)

	_, err := svc.Register(ctx, "priya@example.com", "Priya", "s3cret-password")
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Contains(t, err.Error(), "priya@example.com")
}

func TestRegister_OtherInsertErrorPassesThrough(t *testing.T) {
	ctx := context.Background()

	repo := &mockUserRepository{
		InsertFunc: func(ctx context.Context, user *domain.User) error {
			return fmt.Errorf("inserting user: %w", &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
		},
	}

	svc := NewAuthService(repo, bcrypt.MinCost)

	_, err := svc.Register(ctx, "priya@example.com", "Priya", "s3cret-password")
	assert.Error(t, err)
	_, ok := apperrors.IsConflictError(err)
	assert.False(t, ok)
}

func TestAuthenticate_Success(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: email, PasswordHash: hash, Role: domain.RoleAdmin}, nil
		},
	}

	svc := NewAuthService(repo, bcrypt.MinCost)

	user, err := svc.Authenticate(ctx, "admin@sareemart.in", "correct-horse")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-1", Email: email, PasswordHash: hash, Role: domain.RoleCustomer}, nil
		},
	}

	svc := NewAuthService(repo, bcrypt.MinCost)

	_, err := svc.Authenticate(ctx, "priya@example.com", "wrong")
	_, ok := apperrors.IsUnauthenticatedError(err)
	assert.True(t, ok)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, apperrors.NewNotFoundError("user not found")
		},
	}

	svc := NewAuthService(repo, bcrypt.MinCost)

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := svc.Authenticate(ctx, "nobody@example.com", "whatever")
	_, ok := apperrors.IsUnauthenticatedError(err)
	assert.True(t, ok)
}
