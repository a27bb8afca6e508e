package coupon

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Apply calculates the discount for the given rule against an order subtotal.
// Percentage discounts are rounded to whole rupees; fixed discounts are
// capped at the subtotal so the caller can never end up with a negative
// total. The returned amount is never negative.
func Apply(rule *Rule, subtotal decimal.Decimal) (Discount, error) {
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}

	var amount decimal.Decimal
	switch rule.DiscountType {
	case DiscountPercentage:
		amount = subtotal.Mul(rule.Value).Div(hundred).Round(0)
	case DiscountFixed:
		amount = decimal.Min(rule.Value, subtotal)
	default:
		return Discount{}, errors.Errorf("unsupported discount type: %q", rule.DiscountType)
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return Discount{
		Code:        rule.Code,
		Amount:      amount,
		Description: rule.Description,
	}, nil
}
