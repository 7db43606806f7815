package draft

import (
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

func TestNewUsesDefaults(t *testing.T) {
	d := New(config.DefaultInvoiceDefaults(), today, 1)
	rec := d.Record()

	assert.Equal(t, "INV-001", rec.InvoiceNumber)
	assert.Equal(t, "2024-01-15", domain.Deref(rec.InvoiceDate))
	assert.Equal(t, "2024-02-14", domain.Deref(rec.DueDate))
	assert.Nil(t, rec.PaidDate)
	assert.Equal(t, "USD", rec.Currency)
	assert.Equal(t, "$", rec.CurrencySymbol)
	assert.Equal(t, 8.5, rec.TaxRate)
	assert.Len(t, rec.Items, 3)
	assert.False(t, rec.IsPaid)
	assert.Equal(t, domain.PaidIndicatorStamp, rec.PaidIndicator)

	tot := d.Totals()
	assert.InDelta(t, 3800, tot.Subtotal, 1e-9)
	assert.InDelta(t, 323, tot.TaxAmount, 1e-9)
	assert.InDelta(t, 4123, tot.Total, 1e-9)
}

func TestNewFallsBackOnBadNumberTemplate(t *testing.T) {
	defaults := config.DefaultInvoiceDefaults()
	defaults.NumberTemplate = "INV-{NOPE}"
	defaults.Items = nil

	rec := New(defaults, today, 7).Record()
	assert.Equal(t, "INV-007", rec.InvoiceNumber)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, domain.LineItem{Quantity: 1}, rec.Items[0])
}

func TestSetCurrencySyncsSymbol(t *testing.T) {
	d := New(config.DefaultInvoiceDefaults(), today, 1)

	d.SetCurrency("jpy")
	assert.Equal(t, "JPY", d.Record().Currency)
	assert.Equal(t, "¥", d.Record().CurrencySymbol)

	d.SetCurrency("XXX")
	assert.Equal(t, "XXX", d.Record().Currency)
	assert.Equal(t, "$", d.Record().CurrencySymbol)
}

func TestItemOperations(t *testing.T) {
	d := New(config.DefaultInvoiceDefaults(), today, 1)

	d.AddItem()
	rec := d.Record()
	require.Len(t, rec.Items, 4)
	assert.Equal(t, domain.LineItem{Description: "", Quantity: 1, Rate: 0}, rec.Items[3])

	require.NoError(t, d.RemoveItem(0))
	assert.Equal(t, "Logo Design", d.Record().Items[0].Description)

	require.NoError(t, d.SetItemField(0, "quantity", "3"))
	require.NoError(t, d.SetItemField(0, "rate", "abc"))
	require.NoError(t, d.SetItemField(0, "description", "Logo"))
	assert.Equal(t, domain.LineItem{Description: "Logo", Quantity: 3, Rate: 0}, d.Record().Items[0])

	require.NoError(t, d.SetItemField(1, "rate", "-5"))
	assert.Zero(t, d.Record().Items[1].Rate)

	assert.ErrorIs(t, d.SetItemField(0, "amount", "1"), domain.ErrUnknownItemField)
	assert.ErrorIs(t, d.SetItemField(9, "rate", "1"), domain.ErrItemOutOfRange)
	assert.ErrorIs(t, d.RemoveItem(-1), domain.ErrItemOutOfRange)

	require.NoError(t, d.SetItem(2, domain.LineItem{Description: "X", Quantity: 2, Rate: 10}))
	assert.Equal(t, 20.0, d.Record().Items[2].Quantity*d.Record().Items[2].Rate)
}

func TestRemoveLastItemIsRefused(t *testing.T) {
	d := FromDetails(domain.Details{Currency: "USD", Items: []domain.LineItem{{Quantity: 1, Rate: 5}}})

	err := d.RemoveItem(0)
	assert.ErrorIs(t, err, domain.ErrLastItem)
	assert.Len(t, d.Record().Items, 1)
}

func TestReplaceCoercesAndSyncs(t *testing.T) {
	d := New(config.DefaultInvoiceDefaults(), today, 1)
	next := d.Record()
	next.Currency = "EUR"
	next.CurrencySymbol = "?"
	next.TaxRate = -3
	next.Items = nil

	d.Replace(next)
	rec := d.Record()
	assert.Equal(t, "€", rec.CurrencySymbol)
	assert.Zero(t, rec.TaxRate)
	require.Len(t, rec.Items, 1)

	next.InvoiceNumber = "changed"
	assert.NotEqual(t, "changed", d.Record().InvoiceNumber)
}

func TestSetLogo(t *testing.T) {
	d := New(config.DefaultInvoiceDefaults(), today, 1)

	assert.ErrorIs(t, d.SetLogo("https://example.com/logo.png"), domain.ErrInvalidLogo)
	require.NoError(t, d.SetLogo("data:image/png;base64,AAAA"))
	assert.Equal(t, "data:image/png;base64,AAAA", domain.Deref(d.Record().CompanyLogo))

	require.NoError(t, d.SetLogo(""))
	assert.Nil(t, d.Record().CompanyLogo)
}

func TestSetTaxRate(t *testing.T) {
	d := New(config.DefaultInvoiceDefaults(), today, 1)
	d.SetTaxRate("12.5")
	assert.Equal(t, 12.5, d.Record().TaxRate)
	d.SetTaxRate("NaN")
	assert.Zero(t, d.Record().TaxRate)
}

func TestValidate(t *testing.T) {
	d := New(config.DefaultInvoiceDefaults(), today, 1)
	require.NoError(t, d.Validate())

	rec := d.Record()
	rec.Currency = "XXX"
	rec.DueDate = domain.StringPtr("14/02/2024")
	rec.ClientEmail = "not-an-email"
	rec.PaidIndicator = "banner"

	err := ValidateDetails(rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDraft))

	fields := map[string]string{}
	for _, fe := range FieldErrors(err) {
		fields[fe.Field] = fe.Reason
	}
	assert.Equal(t, map[string]string{
		"currency":      "supported_currency",
		"dueDate":       "datetime",
		"clientEmail":   "email",
		"paidIndicator": "oneof",
	}, fields)
}

func TestValidateReportsItemPath(t *testing.T) {
	rec := New(config.DefaultInvoiceDefaults(), today, 1).Record()
	rec.Items[1].Rate = -1

	fes := FieldErrors(ValidateDetails(rec))
	require.Len(t, fes, 1)
	assert.Equal(t, FieldError{Field: "items[1].rate", Reason: "gte"}, fes[0])
}
