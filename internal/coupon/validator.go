package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Validator validates a coupon code against an order subtotal and returns the
// computed discount. It is the injected lookup capability: the engine does
// not care whether rules come from a table, a remote service, or a fixture.
type Validator interface {
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*Discount, error)
}

// RepoValidator implements Validator by looking up coupon rules from a
// Repository and applying them via Apply.
type RepoValidator struct {
	repo Repository
	now  func() time.Time
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{repo: repo, now: time.Now}
}

// Normalize upper-cases and trims a coupon code. All lookups go through this
// so "welcome10" and "WELCOME10" resolve to the same rule.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate normalizes the code, looks up the rule, checks temporal validity
// and usage limits, and applies it to the subtotal. It has no side effects,
// so cart display and checkout can both call it freely; the usage counter is
// incremented by the checkout service once an order is actually placed.
// A blank code fails fast with ErrEmptyCode; an unknown code yields
// ErrInvalidCoupon.
func (v *RepoValidator) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*Discount, error) {
	code = Normalize(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	rule, err := v.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCoupon) {
			return nil, ErrInvalidCoupon
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}

	now := v.now()
	if rule.ValidFrom != nil && now.Before(*rule.ValidFrom) {
		return nil, ErrCouponExpired
	}
	if rule.ValidUntil != nil && now.After(*rule.ValidUntil) {
		return nil, ErrCouponExpired
	}

	if rule.MaxUses > 0 && rule.Uses >= rule.MaxUses {
		return nil, ErrCouponUsageLimitReached
	}

	d, err := Apply(rule, subtotal)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
