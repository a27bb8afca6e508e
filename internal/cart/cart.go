// Package cart holds shopper carts and guards their mutations. The pricing
// of cart contents lives in the pricing package; this package owns entry
// lifecycle (add, quantity change, remove), coupon attachment, and the
// double-submission guarantees around them.
package cart

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the requested cart does not exist.
	ErrNotFound = errors.New("cart not found")
	// ErrEntryNotFound is returned when the requested cart entry does not exist.
	ErrEntryNotFound = errors.New("cart entry not found")
	// ErrProductUnavailable is returned when an add references an unknown product.
	ErrProductUnavailable = errors.New("product unavailable")
)

// Entry is one item in a cart: a product reference, the shopper's
// color/size/blouse selection, a positive quantity, and the price captured
// when the item was added. The captured price is authoritative for display
// and totals until the entry is removed: the shopper keeps the price they
// agreed to even if the catalog changes.
type Entry struct {
	ID            string
	ProductID     string
	Quantity      int
	SelectedColor string
	SelectedSize  string
	BlouseOption  string
	Price         *decimal.Decimal
	AddedAt       time.Time
}

// Cart is a shopper's cart snapshot: its entries plus an optionally applied
// coupon code. At most one coupon is attached at a time; applying a new one
// replaces the previous code atomically.
type Cart struct {
	ID         string
	Entries    []Entry
	CouponCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Entry returns a pointer to the entry with the given id, or nil.
func (c *Cart) Entry(entryID string) *Entry {
	for i := range c.Entries {
		if c.Entries[i].ID == entryID {
			return &c.Entries[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the cart. Mutations are applied to clones so
// a failed persistence call can discard the optimistic state wholesale.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Entries = make([]Entry, len(c.Entries))
	copy(cp.Entries, c.Entries)
	for i := range cp.Entries {
		if p := c.Entries[i].Price; p != nil {
			v := *p
			cp.Entries[i].Price = &v
		}
	}
	return &cp
}

// Repository defines persistence operations for carts and their entries.
type Repository interface {
	Create(ctx context.Context, c *Cart) error
	Get(ctx context.Context, id string) (*Cart, error)
	InsertEntry(ctx context.Context, cartID string, e *Entry) error
	UpdateEntryQuantity(ctx context.Context, cartID, entryID string, quantity int) error
	DeleteEntry(ctx context.Context, cartID, entryID string) error
	SetCoupon(ctx context.Context, cartID, code string) error
	Clear(ctx context.Context, cartID string) error
}
