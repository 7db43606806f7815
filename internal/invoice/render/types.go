// Package render turns a finalized invoice into printable HTML.
package render

import (
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/totals"
)

// RegionID is the element id exporters capture.
const RegionID = "invoice-template"

// Input is everything a skin needs. Totals are computed by the caller and
// shown as given.
type Input struct {
	Invoice  domain.Details
	Template domain.Template
	Totals   totals.Totals
	Symbol   string
	// Print adds a script that opens the browser print dialog on load.
	Print bool
}

type Renderer interface {
	RenderHTML(input Input) (string, error)
}

// NewInput builds an Input for a stored invoice.
func NewInput(inv domain.Invoice) Input {
	symbol := inv.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}
	return Input{
		Invoice:  inv.Details.Clone(),
		Template: inv.Template,
		Totals:   totals.Of(inv),
		Symbol:   symbol,
	}
}
