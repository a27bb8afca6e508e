package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage applies a percentage-based discount to the subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed applies a fixed rupee discount capped at the subtotal.
	DiscountFixed DiscountType = "fixed"
)

var (
	// ErrInvalidCoupon is returned when a coupon code is not found. This is a
	// user-visible validation failure, distinct from transport errors: the
	// caller must surface "invalid code", never a silent zero discount.
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrEmptyCode is returned for a blank code before any lookup happens.
	ErrEmptyCode = errors.New("coupon code required")
	// ErrCouponExpired is returned when a coupon is outside its valid time window.
	ErrCouponExpired = errors.New("coupon expired")
	// ErrCouponUsageLimitReached is returned when a coupon has exhausted its allowed uses.
	ErrCouponUsageLimitReached = errors.New("coupon usage limit reached")
)

// Rule defines a coupon's discount behaviour and eligibility constraints.
// Codes are unique case-insensitively; at most one coupon applies per order
// computation (no stacking).
type Rule struct {
	Code         string
	DiscountType DiscountType
	Value        decimal.Decimal
	Description  string
	ValidFrom    *time.Time
	ValidUntil   *time.Time
	MaxUses      int
	Uses         int
}

// Discount holds the computed discount amount and a human-readable description.
type Discount struct {
	Code        string
	Amount      decimal.Decimal
	Description string
}

// Repository provides lookup and mutation of coupon rules. Lookups are
// case-insensitive on the code.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Rule, error)
	IncrementUses(ctx context.Context, code string) error
}
