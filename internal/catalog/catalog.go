package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a saree listed in the catalog. BasePrice is the
// undiscounted list price in whole rupees. DiscountPct is the storewide
// product discount (0-100). FinalPrice, when present, is a server-side
// precomputed discounted price that takes precedence over recomputing
// the discount locally.
type Product struct {
	ID           string
	Name         string
	BasePrice    decimal.Decimal
	DiscountPct  int
	FinalPrice   *decimal.Decimal
	Stock        int
	DefaultImage string
	Variants     []Variant
}

// Variant is a specific (color, size) SKU of a product. Price, when set to a
// positive value, fully replaces the product base price; PriceAdjustment is
// never added on top of an override. Images hold the gallery for the
// variant's color.
type Variant struct {
	SKU             string
	ColorCode       string
	ColorName       string
	Size            string
	Stock           int
	Price           *decimal.Decimal
	PriceAdjustment decimal.Decimal
	Images          []string
}

// HasOverride reports whether the variant carries a positive price override.
func (v *Variant) HasOverride() bool {
	return v.Price != nil && v.Price.IsPositive()
}

// Repository defines read operations for the product catalog. Variants are
// loaded together with their product.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
}
