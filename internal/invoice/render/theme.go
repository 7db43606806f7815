package render

import (
	"html/template"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
)

type HeaderStyle string

const (
	HeaderPlain    HeaderStyle = "plain"
	HeaderCentered HeaderStyle = "centered"
	HeaderBanner   HeaderStyle = "banner"
)

// Theme is the per-skin look. Layout and content are shared. CSS fields
// are trusted constants.
type Theme struct {
	Name        domain.Template
	Accent      template.CSS
	AccentEnd   template.CSS
	Font        template.CSS
	Header      HeaderStyle
	Title       string
	StampTop    template.CSS
	StampRight  template.CSS
	TotalsLabel string
}

var themes = map[domain.Template]Theme{
	domain.TemplateModern: {
		Name: domain.TemplateModern, Accent: "#2563eb", AccentEnd: "#2563eb",
		Font: `-apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif`,
		Header: HeaderPlain, Title: "INVOICE", StampTop: "180px", StampRight: "60px",
		TotalsLabel: "Total",
	},
	domain.TemplateClassic: {
		Name: domain.TemplateClassic, Accent: "#1f2937", AccentEnd: "#1f2937",
		Font:   `Georgia, "Times New Roman", serif`,
		Header: HeaderCentered, Title: "INVOICE", StampTop: "10px", StampRight: "80px",
		TotalsLabel: "TOTAL DUE",
	},
	domain.TemplateMinimal: {
		Name: domain.TemplateMinimal, Accent: "#9ca3af", AccentEnd: "#9ca3af",
		Font:   `"Helvetica Neue", Helvetica, Arial, sans-serif`,
		Header: HeaderPlain, Title: "Invoice", StampTop: "60px", StampRight: "80px",
		TotalsLabel: "Total Due",
	},
	domain.TemplateBold: {
		Name: domain.TemplateBold, Accent: "#f97316", AccentEnd: "#ef4444",
		Font:   `"Arial Black", Arial, sans-serif`,
		Header: HeaderBanner, Title: "INVOICE", StampTop: "140px", StampRight: "40px",
		TotalsLabel: "TOTAL",
	},
	domain.TemplateElegant: {
		Name: domain.TemplateElegant, Accent: "#9333ea", AccentEnd: "#ec4899",
		Font:   `"Playfair Display", Georgia, serif`,
		Header: HeaderBanner, Title: "Invoice", StampTop: "180px", StampRight: "60px",
		TotalsLabel: "Total Amount Due",
	},
}

// ThemeFor returns the theme of a skin; unknown skins use modern.
func ThemeFor(t domain.Template) Theme {
	if theme, ok := themes[t]; ok {
		return theme
	}
	return themes[domain.TemplateModern]
}
