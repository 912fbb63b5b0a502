package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sareemart/internal/domain"
	apperrors "sareemart/internal/errors"
)

// ListFilter narrows an order listing. Zero values mean "no constraint".
type ListFilter struct {
	Status     domain.OrderStatus
	CustomerID string
	From       time.Time
	To         time.Time
}

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO Orders (id, customerId, status, paymentStatus, deliveryMethod, totalPrice)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		order.ID, order.CustomerID, string(order.Status), string(order.PaymentStatus),
		string(order.DeliveryMethod), order.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	itemQuery := `INSERT INTO OrderItems (orderId, productId, quantity, unitPrice) VALUES (?, ?, ?, ?)`
	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, order.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, customerId, status, paymentStatus, deliveryMethod, totalPrice, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`

	order, err := r.scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	query := `
		SELECT id, customerId, status, paymentStatus, deliveryMethod, totalPrice, createdAt, updatedAt
		FROM Orders
	`

	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.CustomerID != "" {
		conditions = append(conditions, "customerId = ?")
		args = append(args, filter.CustomerID)
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, "createdAt >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, "createdAt <= ?")
		args = append(args, filter.To)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY createdAt DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus performs a compare-and-swap on the status column. The write
// only lands if the row still holds the expected status; a lost race
// surfaces as a ConflictError so the caller can re-read and retry.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, expected, next domain.OrderStatus) error {
	query := `UPDATE Orders SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`
	return r.compareAndSwap(ctx, query, id, string(next), string(expected))
}

func (r *MySQLOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, expected, next domain.PaymentStatus) error {
	query := `UPDATE Orders SET paymentStatus = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ? AND paymentStatus = ?`
	return r.compareAndSwap(ctx, query, id, string(next), string(expected))
}

func (r *MySQLOrderRepository) compareAndSwap(ctx context.Context, query, id, next, expected string) error {
	result, err := r.db.ExecContext(ctx, query, next, id, expected)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Zero rows: either the order vanished or another writer changed the
	// column between our read and this write.
	var current string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM Orders WHERE id = ?`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return fmt.Errorf("re-reading order: %w", err)
	}

	return apperrors.NewConflictError(fmt.Sprintf("order %s was modified by a concurrent update", id))
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT id, orderId, productId, quantity, unitPrice
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *MySQLOrderRepository) scanOrder(row *sql.Row) (*domain.Order, error) {
	return scanOrderFrom(row)
}

func (r *MySQLOrderRepository) scanOrderRow(rows *sql.Rows) (*domain.Order, error) {
	return scanOrderFrom(rows)
}

func scanOrderFrom(s rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status, paymentStatus, deliveryMethod string

	err := s.Scan(
		&order.ID, &order.CustomerID, &status, &paymentStatus, &deliveryMethod,
		&order.TotalPrice, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Persisted values outside the closed sets are invalid input, not
	// something to coerce.
	order.Status, err = domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	order.PaymentStatus, err = domain.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return nil, err
	}
	order.DeliveryMethod, err = domain.ParseDeliveryMethod(deliveryMethod)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
