package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/order"
)

const (
	createOrderSQL = `INSERT INTO orders
		(id, items, subtotal, shipping, discount, grand_total, coupon_code, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	getOrderByIDSQL = `SELECT id, items, subtotal, shipping, discount, grand_total, coupon_code, payment_method, status, created_at, updated_at
		FROM orders WHERE id = $1`

	updateOrderStatusSQL = `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. The item
// snapshot is serialized to a JSONB column; totals live in NUMERIC columns so
// reporting queries can aggregate without unpacking JSON.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, itemsJSON,
		o.Totals.Subtotal, o.Totals.Shipping, o.Totals.Discount, o.Totals.GrandTotal,
		o.CouponCode, string(o.PaymentMethod), string(o.Status),
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// GetByID loads an order. Returns order.ErrNotFound when it does not exist.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var (
		o             order.Order
		itemsJSON     []byte
		paymentMethod string
		status        string
	)
	err := r.pool.QueryRow(ctx, getOrderByIDSQL, id).Scan(
		&o.ID, &itemsJSON,
		&o.Totals.Subtotal, &o.Totals.Shipping, &o.Totals.Discount, &o.Totals.GrandTotal,
		&o.CouponCode, &paymentMethod, &status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshaling items of order %q: %w", id, err)
	}
	o.PaymentMethod = order.PaymentMethod(paymentMethod)
	o.Status = order.Status(status)
	return &o, nil
}

// UpdateStatus persists a status change. Returns order.ErrNotFound when the
// order does not exist.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, string(status))
	if err != nil {
		return fmt.Errorf("updating status of order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}
