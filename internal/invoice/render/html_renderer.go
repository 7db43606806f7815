package render

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/format"
	"github.com/smallbiznis/invoicely/internal/invoice/totals"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Number}}</title>
  <style>
    :root {
      --accent: {{.Theme.Accent}};
      --accent-end: {{.Theme.AccentEnd}};
      --paid: #22c55e;
    }
    * { box-sizing: border-box; }
    body { margin: 0; padding: 40px; background: #f3f4f6; color: #111827; font-family: {{.Theme.Font}}; }
    #invoice-template { position: relative; background: #ffffff; max-width: 896px; margin: 0 auto; box-shadow: 0 10px 15px rgba(0,0,0,0.1); overflow: visible; }
    .body { padding: 48px; }
    .header { display: flex; justify-content: space-between; align-items: flex-start; padding: 48px 48px 0; }
    .header h1 { margin: 0 0 8px; font-size: 40px; color: var(--accent); }
    .header-centered { display: block; text-align: center; border-bottom: 4px solid var(--accent); margin: 0 48px; padding: 48px 0 24px; }
    .header-centered h1 { color: #111827; }
    .header-banner { color: #ffffff; padding: 48px; background: linear-gradient(to right, var(--accent), var(--accent-end)); }
    .header-banner h1 { color: #ffffff; }
    .logo { height: 64px; width: auto; object-fit: contain; margin-bottom: 16px; }
    .parties { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; margin-bottom: 32px; }
    .label { font-size: 12px; text-transform: uppercase; letter-spacing: 0.05em; font-weight: 700; color: var(--accent); margin-bottom: 8px; }
    .name { font-weight: 700; font-size: 18px; margin-bottom: 4px; }
    .muted { font-size: 14px; color: #4b5563; margin: 0; }
    .dates { display: flex; justify-content: space-between; background: #f9fafb; padding: 16px; margin-bottom: 32px; font-size: 14px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 32px; }
    th { background: var(--accent); color: #ffffff; text-transform: uppercase; font-size: 13px; padding: 12px 16px; text-align: left; }
    td { padding: 16px; border-bottom: 1px solid #e5e7eb; font-size: 14px; }
    .num { text-align: right; }
    .qty { text-align: center; }
    .totals { margin-left: auto; width: 320px; }
    .row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #e5e7eb; }
    .grand { color: #ffffff; font-weight: 700; font-size: 18px; padding: 16px; margin-top: 8px; border: 0; background: linear-gradient(to right, var(--accent), var(--accent-end)); }
    .paid-banner { display: flex; justify-content: space-between; padding: 12px 16px; margin-top: 8px; border: 1px solid #bbf7d0; background: #f0fdf4; color: #15803d; font-weight: 700; }
    .notes { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; padding-top: 32px; border-top: 1px solid #e5e7eb; }
    .stamp { position: absolute; top: {{.Theme.StampTop}}; right: {{.Theme.StampRight}}; z-index: 1000; pointer-events: none; }
    .stamp-ring { width: 160px; height: 160px; border-radius: 50%; border: 6px solid var(--paid); display: flex; align-items: center; justify-content: center; transform: rotate(-15deg); position: relative; }
    .stamp-ring::before { content: ""; position: absolute; width: 140px; height: 140px; border-radius: 50%; border: 3px solid var(--paid); top: 50%; left: 50%; transform: translate(-50%, -50%); }
    .stamp-text { text-align: center; color: var(--paid); }
    .stamp-word { font-size: 36px; font-weight: 900; letter-spacing: 6px; line-height: 1; font-family: "Arial Black", "Arial Bold", sans-serif; }
    .stamp-date { font-size: 14px; font-weight: 700; letter-spacing: 1px; margin-top: 6px; }
    @media print { body { padding: 0; background: #ffffff; } #invoice-template { box-shadow: none; } }
  </style>
</head>
<body>
  <div id="invoice-template" class="skin-{{.Theme.Name}}">
    {{if .ShowStamp}}
    <div class="stamp"><div class="stamp-ring"><div class="stamp-text">
      <div class="stamp-word">PAID</div>
      <div class="stamp-date">{{.StampDate}}</div>
    </div></div></div>
    {{end}}

    <div class="{{headerClass .Theme.Header}}">
      <div>
        {{if .Logo}}<img class="logo" src="{{.Logo}}" alt="Company Logo">{{end}}
        <h1>{{.Theme.Title}}</h1>
        <p>Invoice Number: {{.Number}}</p>
      </div>
    </div>

    <div class="body">
      <div class="parties">
        <div>
          <div class="label">From</div>
          <div class="name">{{.Company.Name}}</div>
          <p class="muted">{{.Company.Address}}</p>
          <p class="muted">{{.Company.City}}</p>
          <p class="muted">{{.Company.Email}}</p>
          <p class="muted">{{.Company.Phone}}</p>
        </div>
        <div>
          <div class="label">Bill To</div>
          <div class="name">{{.Client.Name}}</div>
          <p class="muted">{{.Client.Address}}</p>
          <p class="muted">{{.Client.City}}</p>
          <p class="muted">{{.Client.Email}}</p>
          <p class="muted">{{.Client.Phone}}</p>
        </div>
      </div>

      <div class="dates">
        <div>Invoice Date: <strong>{{.InvoiceDate}}</strong></div>
        {{if .DueDate}}<div class="due-date">Due Date: <strong>{{.DueDate}}</strong></div>{{end}}
      </div>

      <table>
        <thead>
          <tr><th>Description</th><th class="qty">Qty</th><th class="num">Rate</th><th class="num">Amount</th></tr>
        </thead>
        <tbody>
          {{range .Items}}
          <tr>
            <td>{{.Description}}</td>
            <td class="qty">{{.Quantity}}</td>
            <td class="num">{{.Rate}}</td>
            <td class="num">{{.Amount}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>

      <div class="totals">
        <div class="row"><span>Subtotal</span><span class="subtotal">{{.Subtotal}}</span></div>
        <div class="row"><span>Tax ({{.TaxRate}}%)</span><span class="tax">{{.Tax}}</span></div>
        <div class="row grand"><span>{{.TotalLabel}}</span><span class="total">{{.Total}}</span></div>
        {{if .ShowPaidText}}
        <div class="paid-banner"><span>PAID on {{.PaidDate}}</span><span>&#10003;</span></div>
        {{end}}
      </div>

      {{if or .Notes .Terms}}
      <div class="notes">
        {{if .Notes}}<div><div class="label">Notes</div><p class="muted">{{.Notes}}</p></div>{{end}}
        {{if .Terms}}<div><div class="label">Terms &amp; Conditions</div><p class="muted">{{.Terms}}</p></div>{{end}}
      </div>
      {{end}}
    </div>
  </div>
  {{if .Print}}
  <script>window.onload = function () { window.print(); };</script>
  {{end}}
</body>
</html>
`

const logoPrefix = "data:image/"

type party struct {
	Name, Address, City, Email, Phone string
}

type itemView struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

type view struct {
	Theme        Theme
	Number       string
	Logo         template.URL
	Company      party
	Client       party
	InvoiceDate  string
	DueDate      string
	ShowStamp    bool
	ShowPaidText bool
	StampDate    string
	PaidDate     string
	Items        []itemView
	TaxRate      string
	Subtotal     string
	Tax          string
	Total        string
	TotalLabel   string
	Notes        string
	Terms        string
	Print        bool
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"headerClass": headerClass,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input Input) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, buildView(input)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildView(input Input) view {
	inv := input.Invoice
	theme := ThemeFor(input.Template)
	symbol := input.Symbol
	if symbol == "" {
		symbol = "$"
	}
	money := func(v float64) string { return format.FormatCurrency(v, symbol) }

	v := view{
		Theme:       theme,
		Number:      inv.InvoiceNumber,
		Company:     party{inv.CompanyName, inv.CompanyAddress, inv.CompanyCity, inv.CompanyEmail, inv.CompanyPhone},
		Client:      party{inv.ClientName, inv.ClientAddress, inv.ClientCity, inv.ClientEmail, inv.ClientPhone},
		InvoiceDate: format.FormatDisplayDate(domain.Deref(inv.InvoiceDate)),
		TaxRate:     formatNumber(inv.TaxRate),
		Subtotal:    money(input.Totals.Subtotal),
		Tax:         money(input.Totals.TaxAmount),
		Total:       money(input.Totals.Total),
		TotalLabel:  theme.TotalsLabel,
		Notes:       inv.Notes,
		Terms:       inv.Terms,
		Print:       input.Print,
		Items:       make([]itemView, 0, len(inv.Items)),
	}

	if logo := domain.Deref(inv.CompanyLogo); strings.HasPrefix(logo, logoPrefix) {
		// The prefix check is what makes the URL safe to emit unescaped.
		v.Logo = template.URL(logo)
	}

	for _, item := range inv.Items {
		v.Items = append(v.Items, itemView{
			Description: item.Description,
			Quantity:    formatNumber(item.Quantity),
			Rate:        money(item.Rate),
			Amount:      money(totals.LineAmount(item)),
		})
	}

	if inv.IsPaid {
		paid := domain.Deref(inv.PaidDate)
		v.StampDate = format.FormatStampDate(paid)
		v.PaidDate = format.FormatDisplayDate(paid)
		v.ShowStamp = inv.PaidIndicator != domain.PaidIndicatorText
		v.ShowPaidText = inv.PaidIndicator == domain.PaidIndicatorText
		v.TotalLabel = "Total"
	} else {
		v.DueDate = format.FormatDisplayDate(domain.Deref(inv.DueDate))
	}
	return v
}

func headerClass(style HeaderStyle) string {
	switch style {
	case HeaderCentered:
		return "header-centered"
	case HeaderBanner:
		return "header header-banner"
	default:
		return "header"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
