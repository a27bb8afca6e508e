package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/cart"
)

const (
	createCartSQL = `INSERT INTO carts (id, coupon_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	getCartSQL = `SELECT id, coupon_code, created_at, updated_at
		FROM carts WHERE id = $1`

	getCartEntriesSQL = `SELECT id, product_id, quantity, selected_color, selected_size, blouse_option, price, added_at
		FROM cart_entries WHERE cart_id = $1 ORDER BY added_at, id`

	insertCartEntrySQL = `INSERT INTO cart_entries
		(id, cart_id, product_id, quantity, selected_color, selected_size, blouse_option, price, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	updateCartEntryQuantitySQL = `UPDATE cart_entries SET quantity = $3
		WHERE cart_id = $1 AND id = $2`

	deleteCartEntrySQL = `DELETE FROM cart_entries WHERE cart_id = $1 AND id = $2`

	setCartCouponSQL = `UPDATE carts SET coupon_code = $2, updated_at = NOW() WHERE id = $1`

	clearCartEntriesSQL = `DELETE FROM cart_entries WHERE cart_id = $1`

	touchCartSQL = `UPDATE carts SET updated_at = NOW() WHERE id = $1`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Create persists a new, empty cart.
func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	_, err := r.pool.Exec(ctx, createCartSQL, c.ID, c.CouponCode, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating cart %q: %w", c.ID, err)
	}
	return nil
}

// Get loads a cart and its entries. Returns cart.ErrNotFound when the cart
// does not exist.
func (r *CartRepository) Get(ctx context.Context, id string) (*cart.Cart, error) {
	var c cart.Cart
	err := r.pool.QueryRow(ctx, getCartSQL, id).
		Scan(&c.ID, &c.CouponCode, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cart.ErrNotFound
		}
		return nil, fmt.Errorf("getting cart %q: %w", id, err)
	}

	rows, err := r.pool.Query(ctx, getCartEntriesSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting cart entries for %q: %w", id, err)
	}
	c.Entries, err = pgx.CollectRows(rows, scanCartEntry)
	if err != nil {
		return nil, fmt.Errorf("scanning cart entries for %q: %w", id, err)
	}
	return &c, nil
}

// InsertEntry appends an entry to the cart.
func (r *CartRepository) InsertEntry(ctx context.Context, cartID string, e *cart.Entry) error {
	_, err := r.pool.Exec(ctx, insertCartEntrySQL,
		e.ID, cartID, e.ProductID, e.Quantity,
		e.SelectedColor, e.SelectedSize, e.BlouseOption, e.Price, e.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting cart entry %q: %w", e.ID, err)
	}
	_, err = r.pool.Exec(ctx, touchCartSQL, cartID)
	if err != nil {
		return fmt.Errorf("touching cart %q: %w", cartID, err)
	}
	return nil
}

// UpdateEntryQuantity sets the quantity of an existing entry. Returns
// cart.ErrEntryNotFound when the entry does not exist.
func (r *CartRepository) UpdateEntryQuantity(ctx context.Context, cartID, entryID string, quantity int) error {
	tag, err := r.pool.Exec(ctx, updateCartEntryQuantitySQL, cartID, entryID, quantity)
	if err != nil {
		return fmt.Errorf("updating quantity for entry %q: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrEntryNotFound
	}
	return nil
}

// DeleteEntry removes an entry from the cart. Returns cart.ErrEntryNotFound
// when the entry does not exist.
func (r *CartRepository) DeleteEntry(ctx context.Context, cartID, entryID string) error {
	tag, err := r.pool.Exec(ctx, deleteCartEntrySQL, cartID, entryID)
	if err != nil {
		return fmt.Errorf("deleting cart entry %q: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrEntryNotFound
	}
	return nil
}

// SetCoupon attaches or clears the cart's coupon code.
func (r *CartRepository) SetCoupon(ctx context.Context, cartID, code string) error {
	tag, err := r.pool.Exec(ctx, setCartCouponSQL, cartID, code)
	if err != nil {
		return fmt.Errorf("setting coupon on cart %q: %w", cartID, err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrNotFound
	}
	return nil
}

// Clear removes all entries and the coupon from the cart.
func (r *CartRepository) Clear(ctx context.Context, cartID string) error {
	if _, err := r.pool.Exec(ctx, clearCartEntriesSQL, cartID); err != nil {
		return fmt.Errorf("clearing cart %q: %w", cartID, err)
	}
	if err := r.SetCoupon(ctx, cartID, ""); err != nil {
		return err
	}
	return nil
}

func scanCartEntry(row pgx.CollectableRow) (cart.Entry, error) {
	var e cart.Entry
	err := row.Scan(
		&e.ID, &e.ProductID, &e.Quantity,
		&e.SelectedColor, &e.SelectedSize, &e.BlouseOption,
		&e.Price, &e.AddedAt,
	)
	return e, err
}
