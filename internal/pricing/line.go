package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
)

var hundred = decimal.NewFromInt(100)

// Entry is the engine's view of a cart entry: the shopper's selection plus an
// optional price captured when the item was added. A captured price is
// authoritative: it bypasses live resolution so the cart keeps showing what
// the shopper agreed to even if the catalog price moves underneath.
type Entry struct {
	ID            string
	ProductID     string
	Quantity      int
	SelectedColor string
	SelectedSize  string
	BlouseOption  string
	Price         *decimal.Decimal
}

// Line is a fully priced cart entry. It is derived data, recomputed on every
// request and never cached beyond a single totals computation.
type Line struct {
	EntryID   string
	ProductID string
	// UnitPrice is the effective per-unit price used for totals.
	UnitPrice decimal.Decimal
	// ListPrice is the undiscounted reference price (base price, or the
	// variant override when one matched).
	ListPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
	// Savings is (ListPrice - UnitPrice) * Quantity, clamped at zero.
	Savings decimal.Decimal
	// DisplayImage is the image resolved for the entry's selection.
	DisplayImage string
}

// PriceEntry prices a single cart entry against its product.
//
// Effective unit price precedence, highest first:
//  1. the entry's captured add-time price;
//  2. the product's server-side precomputed final price;
//  3. the resolved unit price with the product discount applied, rounded to
//     whole rupees.
//
// A nil product degrades to a zero-priced line rather than failing; the
// catalog is allowed to be incomplete and display surfaces must keep working.
func PriceEntry(e Entry, p *catalog.Product) Line {
	res := Resolve(p, e.SelectedColor, e.SelectedSize)

	qty := e.Quantity
	if qty < 0 {
		qty = 0
	}

	effective := effectiveUnitPrice(e, p, res)

	savings := res.UnitPrice.Sub(effective)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	qtyDec := decimal.NewFromInt(int64(qty))
	return Line{
		EntryID:      e.ID,
		ProductID:    e.ProductID,
		UnitPrice:    effective,
		ListPrice:    res.UnitPrice,
		Quantity:     qty,
		Subtotal:     effective.Mul(qtyDec),
		Savings:      savings.Mul(qtyDec),
		DisplayImage: res.DisplayImage,
	}
}

func effectiveUnitPrice(e Entry, p *catalog.Product, res Resolution) decimal.Decimal {
	if e.Price != nil {
		return *e.Price
	}
	if p == nil {
		return res.UnitPrice
	}
	if p.FinalPrice != nil {
		return *p.FinalPrice
	}
	return ApplyDiscountPct(res.UnitPrice, p.DiscountPct)
}

// ApplyDiscountPct returns price reduced by pct percent, rounded to whole
// rupees. Out-of-range percentages are clamped to [0, 100].
func ApplyDiscountPct(price decimal.Decimal, pct int) decimal.Decimal {
	if pct <= 0 {
		return price
	}
	if pct >= 100 {
		return decimal.Zero
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(pct)))
	return price.Mul(factor).Div(hundred).Round(0)
}
