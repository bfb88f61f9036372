package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals that the order does not exist.
var ErrNotFound = errors.New("order: not found")

// CreateParams contains the write parameters for a new order.
type CreateParams struct {
	FirstName string
	LastName  string
	Document  string
	Email     string
	ItemID    string
	ItemTitle string
	Price     float64
}

// Repository handles order persistence.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	SetPreferenceID(ctx context.Context, id, preferenceID string) error
	UpdatePayment(ctx context.Context, id, paymentID string, status Status) error
	SetStatus(ctx context.Context, id string, status Status) error
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed order repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const orderColumns = `id, first_name, last_name, document, email, item_id, item_title, price,
	COALESCE(payment_id, ''), COALESCE(preference_id, ''), status, created_at, updated_at`

// Create inserts a new pending order.
func (r *PGRepository) Create(ctx context.Context, params CreateParams) (Order, error) {
	insertSQL := fmt.Sprintf(`
		INSERT INTO orders (id, first_name, last_name, document, email, item_id, item_title, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, orderColumns)

	id := uuid.New().String()
	row := r.pool.QueryRow(ctx, insertSQL,
		id, params.FirstName, params.LastName, params.Document, params.Email,
		params.ItemID, params.ItemTitle, params.Price, StatusPending)

	o, err := scanOrder(row)
	if err != nil {
		return Order{}, fmt.Errorf("order: create: %w", err)
	}
	return o, nil
}

// GetByID retrieves an order by its id.
func (r *PGRepository) GetByID(ctx context.Context, id string) (Order, error) {
	selectSQL := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	o, err := scanOrder(r.pool.QueryRow(ctx, selectSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("order: get by id: %w", err)
	}
	return o, nil
}

// SetPreferenceID records the Mercado Pago preference created for the order.
func (r *PGRepository) SetPreferenceID(ctx context.Context, id, preferenceID string) error {
	const updateSQL = `
		UPDATE orders SET preference_id = $2, updated_at = now() WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, updateSQL, id, preferenceID)
	if err != nil {
		return fmt.Errorf("order: set preference id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePayment records the payment id and the reconciled status.
func (r *PGRepository) UpdatePayment(ctx context.Context, id, paymentID string, status Status) error {
	const updateSQL = `
		UPDATE orders SET payment_id = $2, status = $3, updated_at = now() WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, updateSQL, id, paymentID, status)
	if err != nil {
		return fmt.Errorf("order: update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus updates only the lifecycle status.
func (r *PGRepository) SetStatus(ctx context.Context, id string, status Status) error {
	const updateSQL = `
		UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, updateSQL, id, status)
	if err != nil {
		return fmt.Errorf("order: set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.FirstName, &o.LastName, &o.Document, &o.Email,
		&o.ItemID, &o.ItemTitle, &o.Price,
		&o.PaymentID, &o.PreferenceID, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}
