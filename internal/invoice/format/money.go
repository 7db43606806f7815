package format

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders amount as symbol followed by the amount fixed to
// two decimals. Halves round away from zero on the shortest decimal
// representation of amount, so 12.345 renders as 12.35. Non-finite
// amounts render as 0.00.
func FormatCurrency(amount float64, symbol string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return symbol + decimal.NewFromFloat(amount).StringFixed(2)
}
