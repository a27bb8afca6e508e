package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/varalakshmimaha/Mahafashion-sub003/internal/catalog"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestResolve(t *testing.T) {
	base := catalog.Product{
		ID:           "saree-1",
		Name:         "Kanchipuram Silk",
		BasePrice:    dec(1000),
		DefaultImage: "/images/saree-1/main.jpg",
		Variants: []catalog.Variant{
			{
				SKU:       "S1-RED-M",
				ColorCode: "#c0392b",
				ColorName: "Red",
				Size:      "M",
				Images:    []string{"/images/saree-1/red-1.jpg"},
			},
			{
				SKU:             "S1-RED-L",
				ColorCode:       "#c0392b",
				ColorName:       "Red",
				Size:            "L",
				Price:           decPtr(1200),
				PriceAdjustment: dec(50),
				Images:          []string{"/images/saree-1/red-1.jpg"},
			},
			{
				SKU:             "S1-BLU-M",
				ColorCode:       "#2980b9",
				ColorName:       "Blue",
				Size:            "M",
				PriceAdjustment: dec(150),
				Images:          []string{"/images/saree-1/blue-1.jpg"},
			},
		},
	}

	tests := []struct {
		name        string
		product     *catalog.Product
		color, size string
		wantPrice   decimal.Decimal
		wantVariant string
		wantImage   string
	}{
		{
			name:      "nil product degrades to zero price and placeholder",
			product:   nil,
			color:     "Red",
			size:      "M",
			wantPrice: decimal.Zero,
			wantImage: PlaceholderImage,
		},
		{
			name:      "no size selected returns base price",
			product:   &base,
			color:     "",
			size:      "",
			wantPrice: dec(1000),
			wantImage: "/images/saree-1/main.jpg",
		},
		{
			name: "product without variants returns base price regardless of selection",
			product: &catalog.Product{
				BasePrice:    dec(700),
				DefaultImage: "/images/x.jpg",
			},
			color:     "Red",
			size:      "XL",
			wantPrice: dec(700),
			wantImage: "/images/x.jpg",
		},
		{
			name:        "variant match without override adds adjustment",
			product:     &base,
			color:       "Blue",
			size:        "M",
			wantPrice:   dec(1150),
			wantVariant: "S1-BLU-M",
			wantImage:   "/images/saree-1/blue-1.jpg",
		},
		{
			name:        "positive override replaces base, adjustment ignored",
			product:     &base,
			color:       "Red",
			size:        "L",
			wantPrice:   dec(1200),
			wantVariant: "S1-RED-L",
			wantImage:   "/images/saree-1/red-1.jpg",
		},
		{
			name:        "color match by name is case-insensitive",
			product:     &base,
			color:       "red",
			size:        "m",
			wantPrice:   dec(1000),
			wantVariant: "S1-RED-M",
			wantImage:   "/images/saree-1/red-1.jpg",
		},
		{
			name:        "no color selected matches first size match",
			product:     &base,
			color:       "",
			size:        "L",
			wantPrice:   dec(1200),
			wantVariant: "S1-RED-L",
			wantImage:   "/images/saree-1/main.jpg",
		},
		{
			name:      "unmatched size falls back to base price",
			product:   &base,
			color:     "Red",
			size:      "XXL",
			wantPrice: dec(1000),
			wantImage: "/images/saree-1/red-1.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.product, tt.color, tt.size)

			assert.True(t, tt.wantPrice.Equal(got.UnitPrice),
				"expected price %s, got %s", tt.wantPrice, got.UnitPrice)
			assert.Equal(t, tt.wantImage, got.DisplayImage)

			if tt.wantVariant == "" {
				assert.Nil(t, got.Variant)
			} else {
				if assert.NotNil(t, got.Variant) {
					assert.Equal(t, tt.wantVariant, got.Variant.SKU)
				}
			}
		})
	}
}

func TestResolve_SentinelColorVariant(t *testing.T) {
	// A size-only variant with a sentinel color code must match any selected
	// color for pricing, but must never lend its images to other colors.
	p := &catalog.Product{
		BasePrice:    dec(899),
		DefaultImage: "/images/cotton/main.jpg",
		Variants: []catalog.Variant{
			{
				SKU:             "CTN-NA-FREE",
				ColorCode:       "NA",
				Size:            "Free Size",
				PriceAdjustment: dec(100),
				Images:          []string{"/images/cotton/na-1.jpg"},
			},
		},
	}

	got := Resolve(p, "Indigo", "Free Size")

	assert.True(t, dec(999).Equal(got.UnitPrice), "got %s", got.UnitPrice)
	assert.Equal(t, "/images/cotton/main.jpg", got.DisplayImage,
		"sentinel variant must not win strict image match")
}

func TestResolve_ImageFallsBackToPlaceholder(t *testing.T) {
	p := &catalog.Product{BasePrice: dec(100)}

	got := Resolve(p, "Green", "")

	assert.Equal(t, PlaceholderImage, got.DisplayImage)
}
