package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	got, err := ParseTemplate("")
	require.NoError(t, err)
	assert.Equal(t, TemplateModern, got)

	got, err = ParseTemplate(" Elegant ")
	require.NoError(t, err)
	assert.Equal(t, TemplateElegant, got)

	_, err = ParseTemplate("neon")
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestParsePaidIndicator(t *testing.T) {
	got, err := ParsePaidIndicator("")
	require.NoError(t, err)
	assert.Equal(t, PaidIndicatorStamp, got)

	got, err = ParsePaidIndicator("TEXT")
	require.NoError(t, err)
	assert.Equal(t, PaidIndicatorText, got)

	_, err = ParsePaidIndicator("banner")
	assert.ErrorIs(t, err, ErrInvalidPaidIndicator)
}

func TestCloneDoesNotAlias(t *testing.T) {
	inv := Invoice{
		ID: 1,
		Details: Details{
			DueDate: StringPtr("2024-02-01"),
			Items:   []LineItem{{Description: "A", Quantity: 1, Rate: 10}},
		},
	}
	cp := inv.Clone()
	cp.Items[0].Rate = 99
	*cp.DueDate = "2030-01-01"

	assert.Equal(t, 10.0, inv.Items[0].Rate)
	assert.Equal(t, "2024-02-01", *inv.DueDate)
}

func TestPatchApply(t *testing.T) {
	d := Details{
		InvoiceNumber: "INV-1",
		DueDate:       StringPtr("2024-02-01"),
		Notes:         "keep",
	}
	number := "INV-2"
	var cleared *string
	p := Patch{InvoiceNumber: &number, DueDate: &cleared}
	assert.False(t, p.Empty())

	p.Apply(&d)
	assert.Equal(t, "INV-2", d.InvoiceNumber)
	assert.Nil(t, d.DueDate)
	assert.Equal(t, "keep", d.Notes)
	assert.True(t, Patch{}.Empty())
}

func TestInvoiceJSONShape(t *testing.T) {
	inv := Invoice{
		ID: 1700000000000,
		Details: Details{
			InvoiceNumber:  "INV-001",
			InvoiceDate:    StringPtr("2024-01-01"),
			Currency:       "EUR",
			CurrencySymbol: "€",
			Items:          []LineItem{{Description: "A", Quantity: 2, Rate: 50}},
			PaidIndicator:  PaidIndicatorStamp,
		},
		Template:  TemplateClassic,
		CreatedAt: "2024-01-01T00:00:00Z",
	}

	raw, err := json.Marshal(inv)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"id", "invoiceNumber", "invoiceDate", "dueDate", "paidDate", "currencySymbol", "companyLogo", "items", "isPaid", "paidIndicator", "template", "createdAt"} {
		assert.Contains(t, fields, key)
	}
	assert.Nil(t, fields["paidDate"])
	assert.NotContains(t, fields, "Details")
}
