// Package pricing implements the storefront pricing engine: variant
// resolution, line-item pricing, and order total assembly. Every function is
// pure and synchronous; callers own all I/O. Cart display, checkout summary,
// and the persisted order record all go through this package so the numbers
// can never drift apart.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
)

// PlaceholderImage is served when neither the selected variant nor the
// product itself carries an image. Catalog data is allowed to be incomplete.
const PlaceholderImage = "/images/placeholder.jpg"

// Resolution is the outcome of resolving a product against a shopper's
// color/size selection.
type Resolution struct {
	// UnitPrice is the undiscounted unit price for the selection: the variant
	// override when one matched with a positive override, the base price plus
	// the variant adjustment when a variant matched without an override, and
	// the plain base price otherwise.
	UnitPrice decimal.Decimal
	// Variant is the matched variant, or nil when resolution fell back to the
	// base product.
	Variant *catalog.Variant
	// DisplayImage is the image to show for the selection.
	DisplayImage string
}

// Resolve determines the applicable unit price and display image for the
// given selection. It never fails: a nil product resolves to a zero price and
// the placeholder image, and any gap in the variant data degrades to the
// product defaults.
func Resolve(p *catalog.Product, selectedColor, selectedSize string) Resolution {
	if p == nil {
		return Resolution{UnitPrice: decimal.Zero, DisplayImage: PlaceholderImage}
	}

	res := Resolution{
		UnitPrice:    p.BasePrice,
		DisplayImage: resolveImage(p, selectedColor),
	}

	if selectedSize == "" || len(p.Variants) == 0 {
		return res
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		if !strings.EqualFold(v.Size, selectedSize) {
			continue
		}
		if !colorMatches(v, selectedColor) {
			continue
		}

		res.Variant = v
		if v.HasOverride() {
			res.UnitPrice = *v.Price
		} else if !v.PriceAdjustment.IsZero() {
			res.UnitPrice = p.BasePrice.Add(v.PriceAdjustment)
		}
		return res
	}

	return res
}

// sentinelColorCode reports whether the code carries no distinguishing color
// information. Some products register size-only variants without a color
// axis; those variants must match any selected color. Do not tighten this
// check without migrating such products first.
func sentinelColorCode(code string) bool {
	switch strings.TrimSpace(code) {
	case "", "-", "NA", "na", "N/A":
		return true
	}
	return false
}

// colorMatches implements the permissive color match: no color selected, a
// sentinel variant color code, or a code/name match all count as a match.
func colorMatches(v *catalog.Variant, selectedColor string) bool {
	if selectedColor == "" {
		return true
	}
	if sentinelColorCode(v.ColorCode) {
		return true
	}
	return strings.EqualFold(v.ColorCode, selectedColor) ||
		strings.EqualFold(v.ColorName, selectedColor)
}

// resolveImage picks the first image of any variant whose color strictly
// matches the selection, falling back to the product default and finally the
// placeholder. Unlike price matching, image matching requires a real color
// match: a sentinel-coded variant never lends its gallery to other colors.
func resolveImage(p *catalog.Product, selectedColor string) string {
	if selectedColor != "" {
		for i := range p.Variants {
			v := &p.Variants[i]
			if len(v.Images) == 0 || sentinelColorCode(v.ColorCode) {
				continue
			}
			if strings.EqualFold(v.ColorCode, selectedColor) ||
				strings.EqualFold(v.ColorName, selectedColor) {
				return v.Images[0]
			}
		}
	}
	if p.DefaultImage != "" {
		return p.DefaultImage
	}
	return PlaceholderImage
}
