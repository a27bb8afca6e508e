package coupon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		subtotal decimal.Decimal
		want     decimal.Decimal
		wantErr  bool
	}{
		{
			name:     "percentage rounds to whole rupees",
			rule:     Rule{Code: "WELCOME10", DiscountType: DiscountPercentage, Value: dec(10)},
			subtotal: dec(1805),
			want:     dec(181),
		},
		{
			name:     "percentage of round subtotal",
			rule:     Rule{Code: "FESTIVE15", DiscountType: DiscountPercentage, Value: dec(15)},
			subtotal: dec(1800),
			want:     dec(270),
		},
		{
			name:     "fixed discount below subtotal",
			rule:     Rule{Code: "FLAT500", DiscountType: DiscountFixed, Value: dec(500)},
			subtotal: dec(1800),
			want:     dec(500),
		},
		{
			name:     "fixed discount capped at subtotal",
			rule:     Rule{Code: "FLAT500", DiscountType: DiscountFixed, Value: dec(500)},
			subtotal: dec(300),
			want:     dec(300),
		},
		{
			name:     "negative subtotal treated as zero",
			rule:     Rule{Code: "FLAT500", DiscountType: DiscountFixed, Value: dec(500)},
			subtotal: dec(-100),
			want:     decimal.Zero,
		},
		{
			name:     "unsupported type is an error",
			rule:     Rule{Code: "WEIRD", DiscountType: "free_lowest", Value: dec(1)},
			subtotal: dec(100),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(&tt.rule, tt.subtotal)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.rule.Code, got.Code)
			assert.True(t, tt.want.Equal(got.Amount),
				"expected amount %s, got %s", tt.want, got.Amount)
		})
	}
}
