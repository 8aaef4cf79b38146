package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the referenced order does not exist.
var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Create(ctx context.Context, order Order) error
	FindByID(ctx context.Context, id string) (Order, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed order repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new order.
func (r *PostgresRepository) Create(ctx context.Context, order Order) error {
	orderID, err := uuid.Parse(order.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(order.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO orders (id, user_id, total_amount, currency, payment_status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, orderID, userID, order.TotalAmount, order.Currency, order.PaymentStatus, order.CreatedAt.UTC())
	return err
}

// FindByID fetches an order by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return Order{}, ErrNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT id, user_id, total_amount, currency, payment_status, created_at FROM orders WHERE id = $1`, orderID)

	var (
		oid       uuid.UUID
		userID    uuid.UUID
		createdAt time.Time
		order     Order
	)
	if err := row.Scan(&oid, &userID, &order.TotalAmount, &order.Currency, &order.PaymentStatus, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	order.ID = oid.String()
	order.UserID = userID.String()
	order.CreatedAt = createdAt.UTC()
	return order, nil
}

// UpdatePaymentStatus sets the payment status in a single-row write.
func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
