package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sareemart/internal/domain"
	apperrors "sareemart/internal/errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) Insert(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO Users (id, email, name, passwordHash, role) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash, string(user.Role))
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func (r *MySQLUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, passwordHash, role, createdAt, updatedAt
		FROM Users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email), fmt.Sprintf("user with email %s not found", email))
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, passwordHash, role, createdAt, updatedAt
		FROM Users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id), fmt.Sprintf("user with id %s not found", id))
}

func (r *MySQLUserRepository) scanUser(row *sql.Row, notFoundMsg string) (*domain.User, error) {
	var user domain.User
	var role string

	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user.Role = parsed

	return &user, nil
}
