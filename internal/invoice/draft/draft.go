// Package draft models the invoice being edited before it is saved.
package draft

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/currency"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/format"
	"github.com/smallbiznis/invoicely/internal/invoice/totals"
)

const logoPrefix = "data:image/"

// Draft is an editable invoice. It is not safe for concurrent use.
type Draft struct {
	details domain.Details
}

// New builds a draft from defaults, dated today, numbered with seq.
func New(defaults config.InvoiceDefaults, today time.Time, seq int64) *Draft {
	number, err := format.FormatInvoiceNumber(defaults.NumberTemplate, today, seq)
	if err != nil {
		number, _ = format.FormatInvoiceNumber(format.DefaultInvoiceNumberTemplate, today, max(seq, 1))
	}
	indicator, err := domain.ParsePaidIndicator(defaults.PaidIndicator)
	if err != nil {
		indicator = domain.PaidIndicatorStamp
	}

	items := make([]domain.LineItem, 0, len(defaults.Items))
	for _, item := range defaults.Items {
		items = append(items, domain.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		})
	}
	if len(items) == 0 {
		items = append(items, emptyItem())
	}

	d := &Draft{details: domain.Details{
		InvoiceNumber:  number,
		InvoiceDate:    domain.StringPtr(today.Format(domain.DateLayout)),
		DueDate:        domain.StringPtr(today.AddDate(0, 0, defaults.DueInDays).Format(domain.DateLayout)),
		TaxRate:        defaults.TaxRate,
		CompanyName:    defaults.Company.Name,
		CompanyAddress: defaults.Company.Address,
		CompanyCity:    defaults.Company.City,
		CompanyEmail:   defaults.Company.Email,
		CompanyPhone:   defaults.Company.Phone,
		ClientName:     defaults.Client.Name,
		ClientAddress:  defaults.Client.Address,
		ClientCity:     defaults.Client.City,
		ClientEmail:    defaults.Client.Email,
		ClientPhone:    defaults.Client.Phone,
		Items:          items,
		Notes:          defaults.Notes,
		Terms:          defaults.Terms,
		PaidIndicator:  indicator,
	}}
	d.SetCurrency(defaults.Currency)
	return d
}

// FromDetails wraps existing details, e.g. to re-edit a saved invoice.
func FromDetails(details domain.Details) *Draft {
	d := &Draft{}
	d.Replace(details)
	return d
}

// Record returns a copy of the current draft content.
func (d *Draft) Record() domain.Details {
	return d.details.Clone()
}

// Replace swaps in a full new draft value, keeping the symbol in sync and
// coercing numbers the way form inputs are coerced.
func (d *Draft) Replace(details domain.Details) {
	next := details.Clone()
	next.TaxRate = coerce(next.TaxRate)
	for i := range next.Items {
		next.Items[i].Quantity = coerce(next.Items[i].Quantity)
		next.Items[i].Rate = coerce(next.Items[i].Rate)
	}
	if len(next.Items) == 0 {
		next.Items = []domain.LineItem{emptyItem()}
	}
	if next.PaidIndicator == "" {
		next.PaidIndicator = domain.PaidIndicatorStamp
	}
	d.details = next
	d.SetCurrency(next.Currency)
}

// SetCurrency sets the code and the matching symbol. Unknown codes keep
// the code but display "$".
func (d *Draft) SetCurrency(code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = currency.DefaultCode
	}
	d.details.Currency = code
	d.details.CurrencySymbol = currency.Symbol(code)
}

// SetTaxRate parses a form value; invalid input becomes 0.
func (d *Draft) SetTaxRate(raw string) {
	d.details.TaxRate = parseNumber(raw)
}

// AddItem appends an empty row with quantity 1.
func (d *Draft) AddItem() {
	d.details.Items = append(d.details.Items, emptyItem())
}

// RemoveItem deletes row i. The last remaining row cannot be removed.
func (d *Draft) RemoveItem(i int) error {
	if i < 0 || i >= len(d.details.Items) {
		return domain.ErrItemOutOfRange
	}
	if len(d.details.Items) == 1 {
		return domain.ErrLastItem
	}
	d.details.Items = append(d.details.Items[:i], d.details.Items[i+1:]...)
	return nil
}

// SetItem replaces row i.
func (d *Draft) SetItem(i int, item domain.LineItem) error {
	if i < 0 || i >= len(d.details.Items) {
		return domain.ErrItemOutOfRange
	}
	item.Quantity = coerce(item.Quantity)
	item.Rate = coerce(item.Rate)
	d.details.Items[i] = item
	return nil
}

// SetItemField updates one field of row i from raw form input.
func (d *Draft) SetItemField(i int, field, raw string) error {
	if i < 0 || i >= len(d.details.Items) {
		return domain.ErrItemOutOfRange
	}
	item := &d.details.Items[i]
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "description":
		item.Description = raw
	case "quantity":
		item.Quantity = parseNumber(raw)
	case "rate":
		item.Rate = parseNumber(raw)
	default:
		return domain.ErrUnknownItemField
	}
	return nil
}

// SetLogo stores an embedded image. Empty input removes the logo.
func (d *Draft) SetLogo(dataURI string) error {
	dataURI = strings.TrimSpace(dataURI)
	if dataURI == "" {
		d.details.CompanyLogo = nil
		return nil
	}
	if !strings.HasPrefix(dataURI, logoPrefix) {
		return domain.ErrInvalidLogo
	}
	d.details.CompanyLogo = domain.StringPtr(dataURI)
	return nil
}

// Totals derives the money breakdown of the current content.
func (d *Draft) Totals() totals.Totals {
	return totals.Compute(d.details.Items, d.details.TaxRate)
}

func emptyItem() domain.LineItem {
	return domain.LineItem{Description: "", Quantity: 1, Rate: 0}
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return coerce(v)
}

func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
