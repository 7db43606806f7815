// Package domain contains the invoice record model and its value types.
package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// Template names one of the visual skins an invoice is rendered with.
type Template string

const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateMinimal Template = "minimal"
	TemplateBold    Template = "bold"
	TemplateElegant Template = "elegant"
)

// Templates lists the supported skins in display order.
var Templates = []Template{
	TemplateModern,
	TemplateClassic,
	TemplateMinimal,
	TemplateBold,
	TemplateElegant,
}

// ParseTemplate normalizes a template name. Empty input yields modern.
func ParseTemplate(raw string) (Template, error) {
	value := Template(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return TemplateModern, nil
	}
	for _, t := range Templates {
		if t == value {
			return t, nil
		}
	}
	return "", ErrInvalidTemplate
}

// PaidIndicator selects how a paid invoice is marked.
type PaidIndicator string

const (
	PaidIndicatorStamp PaidIndicator = "stamp"
	PaidIndicatorText  PaidIndicator = "text"
)

// ParsePaidIndicator normalizes an indicator. Empty input yields stamp.
func ParsePaidIndicator(raw string) (PaidIndicator, error) {
	switch PaidIndicator(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PaidIndicatorStamp:
		return PaidIndicatorStamp, nil
	case PaidIndicatorText:
		return PaidIndicatorText, nil
	default:
		return "", ErrInvalidPaidIndicator
	}
}

// LineItem is a single billable row. Its amount is always derived.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Details holds every user-editable field of an invoice.
type Details struct {
	InvoiceNumber  string        `json:"invoiceNumber"`
	InvoiceDate    *string       `json:"invoiceDate"`
	DueDate        *string       `json:"dueDate"`
	PaidDate       *string       `json:"paidDate"`
	TaxRate        float64       `json:"taxRate"`
	Currency       string        `json:"currency"`
	CurrencySymbol string        `json:"currencySymbol"`
	CompanyLogo    *string       `json:"companyLogo"`
	CompanyName    string        `json:"companyName"`
	CompanyAddress string        `json:"companyAddress"`
	CompanyCity    string        `json:"companyCity"`
	CompanyEmail   string        `json:"companyEmail"`
	CompanyPhone   string        `json:"companyPhone"`
	ClientName     string        `json:"clientName"`
	ClientAddress  string        `json:"clientAddress"`
	ClientCity     string        `json:"clientCity"`
	ClientEmail    string        `json:"clientEmail"`
	ClientPhone    string        `json:"clientPhone"`
	Items          []LineItem    `json:"items"`
	Notes          string        `json:"notes"`
	Terms          string        `json:"terms"`
	IsPaid         bool          `json:"isPaid"`
	PaidIndicator  PaidIndicator `json:"paidIndicator"`
}

// Invoice is a finalized invoice record as held by the store.
type Invoice struct {
	ID int64 `json:"id"`
	Details
	Template  Template `json:"template"`
	CreatedAt string   `json:"createdAt"`
}

// Clone returns a deep copy of the details.
func (d Details) Clone() Details {
	out := d
	out.InvoiceDate = cloneString(d.InvoiceDate)
	out.DueDate = cloneString(d.DueDate)
	out.PaidDate = cloneString(d.PaidDate)
	out.CompanyLogo = cloneString(d.CompanyLogo)
	if d.Items != nil {
		out.Items = make([]LineItem, len(d.Items))
		copy(out.Items, d.Items)
	}
	return out
}

// Clone returns a deep copy of the invoice.
func (i Invoice) Clone() Invoice {
	out := i
	out.Details = i.Details.Clone()
	return out
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
