package pricing

import "github.com/shopspring/decimal"

// ShippingPolicy controls the flat shipping fee and the subtotal level above
// which it is waived. Values come from configuration, not constants.
type ShippingPolicy struct {
	FreeAbove decimal.Decimal
	FlatFee   decimal.Decimal
}

// DefaultShippingPolicy returns the store's standard policy: free shipping
// above 999, otherwise a flat 99 fee.
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeAbove: decimal.NewFromInt(999),
		FlatFee:   decimal.NewFromInt(99),
	}
}

// Totals is the order total breakdown. All components are non-negative and
// GrandTotal = Subtotal + Shipping - Discount, clamped at zero.
type Totals struct {
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals assembles order totals from priced lines and an
// already-computed coupon discount amount. It is a pure function of its
// inputs: recomputing over an unchanged snapshot yields identical totals, so
// it is safe to call on every render.
//
// Shipping is zero when the subtotal exceeds the policy threshold or the
// cart is empty (a zero subtotal must not attract a fee). The discount is
// capped at the subtotal and the grand total never goes negative, no matter
// how large the coupon.
func ComputeTotals(lines []Line, discount decimal.Decimal, policy ShippingPolicy) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(l.Subtotal)
	}

	shipping := policy.FlatFee
	if subtotal.GreaterThan(policy.FreeAbove) || subtotal.IsZero() {
		shipping = decimal.Zero
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	grand := subtotal.Add(shipping).Sub(discount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Discount:   discount,
		GrandTotal: grand,
	}
}
