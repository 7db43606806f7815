package totals

import (
	"math"
	"testing"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		name    string
		items   []domain.LineItem
		taxRate float64
		want    Totals
	}{
		{
			name:    "two_items_with_tax",
			items:   []domain.LineItem{{Quantity: 2, Rate: 50}, {Quantity: 1, Rate: 25}},
			taxRate: 10,
			want:    Totals{Subtotal: 125, TaxAmount: 12.5, Total: 137.5},
		},
		{
			name:    "zero_tax",
			items:   []domain.LineItem{{Quantity: 3, Rate: 10}},
			taxRate: 0,
			want:    Totals{Subtotal: 30, TaxAmount: 0, Total: 30},
		},
		{
			name:    "no_items",
			items:   nil,
			taxRate: 8.5,
			want:    Totals{},
		},
		{
			name:    "non_finite_quantity",
			items:   []domain.LineItem{{Quantity: math.NaN(), Rate: 10}, {Quantity: 1, Rate: 5}},
			taxRate: 0,
			want:    Totals{Subtotal: 5, Total: 5},
		},
		{
			name:    "non_finite_tax_rate",
			items:   []domain.LineItem{{Quantity: 1, Rate: 100}},
			taxRate: math.Inf(1),
			want:    Totals{Subtotal: 100, Total: 100},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.items, tc.taxRate)
			assert.InDelta(t, tc.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tc.want.TaxAmount, got.TaxAmount, 1e-9)
			assert.InDelta(t, tc.want.Total, got.Total, 1e-9)
		})
	}
}

func TestTotalIsSubtotalPlusTax(t *testing.T) {
	items := []domain.LineItem{{Quantity: 1.5, Rate: 33.33}, {Quantity: 7, Rate: 0.1}}
	got := Compute(items, 8.5)
	assert.Equal(t, got.Subtotal+got.TaxAmount, got.Total)
	assert.Equal(t, got.Subtotal*8.5/100, got.TaxAmount)
}

func TestOf(t *testing.T) {
	inv := domain.Invoice{Details: domain.Details{
		TaxRate: 20,
		Items:   []domain.LineItem{{Quantity: 1, Rate: 10}},
	}}
	assert.Equal(t, Totals{Subtotal: 10, TaxAmount: 2, Total: 12}, Of(inv))
}
