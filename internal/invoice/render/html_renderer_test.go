package render

import (
	"strings"
	"testing"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() domain.Invoice {
	return domain.Invoice{
		ID:       1,
		Template: domain.TemplateModern,
		Details: domain.Details{
			InvoiceNumber:  "INV-001",
			InvoiceDate:    domain.StringPtr("2024-01-15"),
			DueDate:        domain.StringPtr("2024-02-14"),
			TaxRate:        10,
			Currency:       "EUR",
			CurrencySymbol: "€",
			CompanyName:    "Acme <Studio>",
			ClientName:     "Globex",
			Items: []domain.LineItem{
				{Description: "Design", Quantity: 2, Rate: 50},
				{Description: "Hosting", Quantity: 1.5, Rate: 10},
			},
			PaidIndicator: domain.PaidIndicatorStamp,
		},
	}
}

func render(t *testing.T, in Input) string {
	t.Helper()
	out, err := NewRenderer().RenderHTML(in)
	require.NoError(t, err)
	return out
}

func TestRenderAllSkins(t *testing.T) {
	for _, tpl := range domain.Templates {
		t.Run(string(tpl), func(t *testing.T) {
			inv := sampleInvoice()
			inv.Template = tpl
			out := render(t, NewInput(inv))

			assert.Contains(t, out, `id="invoice-template"`)
			assert.Contains(t, out, "skin-"+string(tpl))
			assert.Contains(t, out, string(ThemeFor(tpl).Accent))
			assert.Contains(t, out, "INV-001")
			assert.Contains(t, out, "€100.00")
			assert.Contains(t, out, "€115.00")
			assert.Contains(t, out, "€11.50")
			assert.Contains(t, out, "€126.50")
			assert.Contains(t, out, "Feb 14, 2024")
			assert.NotContains(t, out, "ZgotmplZ")
			assert.NotContains(t, out, "window.print")
		})
	}
}

func TestRenderEscapesContent(t *testing.T) {
	out := render(t, NewInput(sampleInvoice()))
	assert.Contains(t, out, "Acme &lt;Studio&gt;")
}

func TestRenderUsesGivenTotals(t *testing.T) {
	in := NewInput(sampleInvoice())
	in.Totals.Total = 999

	assert.Contains(t, render(t, in), "€999.00")
}

func TestPaidStampHidesDueDate(t *testing.T) {
	inv := sampleInvoice()
	inv.IsPaid = true
	inv.PaidDate = domain.StringPtr("2024-03-05")

	out := render(t, NewInput(inv))
	assert.Contains(t, out, `class="stamp"`)
	assert.Contains(t, out, "05-03-2024")
	assert.NotContains(t, out, "Due Date")
	assert.NotContains(t, out, "PAID on")
}

func TestPaidTextBanner(t *testing.T) {
	inv := sampleInvoice()
	inv.IsPaid = true
	inv.PaidDate = domain.StringPtr("2024-03-05")
	inv.PaidIndicator = domain.PaidIndicatorText

	out := render(t, NewInput(inv))
	assert.Contains(t, out, "PAID on Mar 5, 2024")
	assert.NotContains(t, out, `class="stamp"`)
}

func TestLogoOnlyForDataImages(t *testing.T) {
	inv := sampleInvoice()
	inv.CompanyLogo = domain.StringPtr("data:image/png;base64,AAAA")
	assert.Contains(t, render(t, NewInput(inv)), `src="data:image/png;base64,AAAA"`)

	inv.CompanyLogo = domain.StringPtr("javascript:alert(1)")
	out := render(t, NewInput(inv))
	assert.NotContains(t, out, "javascript:")
	assert.False(t, strings.Contains(out, `class="logo"`))
}

func TestPrintAddsScript(t *testing.T) {
	in := NewInput(sampleInvoice())
	in.Print = true
	assert.Contains(t, render(t, in), "window.print()")
}

func TestThemeForUnknownFallsBack(t *testing.T) {
	assert.Equal(t, domain.TemplateModern, ThemeFor("neon").Name)
}
