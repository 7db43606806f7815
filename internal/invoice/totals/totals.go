// Package totals derives line amounts, subtotal, tax and total from an
// invoice's items and tax rate. Nothing here is ever persisted.
package totals

import (
	"math"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
)

// Totals is the derived money breakdown of an invoice.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// LineAmount is quantity × rate, with non-finite operands treated as 0.
func LineAmount(item domain.LineItem) float64 {
	return finite(item.Quantity) * finite(item.Rate)
}

// Subtotal sums the line amounts. Empty input yields 0.
func Subtotal(items []domain.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineAmount(item)
	}
	return finite(sum)
}

// TaxAmount is subtotal × rate / 100.
func TaxAmount(subtotal, taxRate float64) float64 {
	rate := finite(taxRate)
	if rate == 0 {
		return 0
	}
	return finite(finite(subtotal) * rate / 100)
}

// Total is subtotal + tax.
func Total(subtotal, tax float64) float64 {
	return finite(subtotal) + finite(tax)
}

// Compute derives the full breakdown for items at taxRate.
func Compute(items []domain.LineItem, taxRate float64) Totals {
	subtotal := Subtotal(items)
	tax := TaxAmount(subtotal, taxRate)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     Total(subtotal, tax),
	}
}

// Of derives the breakdown of a stored invoice.
func Of(inv domain.Invoice) Totals {
	return Compute(inv.Items, inv.TaxRate)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
