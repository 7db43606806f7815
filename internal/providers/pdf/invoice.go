package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/format"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"github.com/smallbiznis/invoicely/internal/invoice/totals"
)

var (
	white    = &props.Color{Red: 255, Green: 255, Blue: 255}
	muted    = &props.Color{Red: 75, Green: 85, Blue: 99}
	paidTint = &props.Color{Red: 34, Green: 197, Blue: 94}
	stripe   = &props.Color{Red: 249, Green: 250, Blue: 251}
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

// GenerateInvoice draws the invoice on A4. Colors follow the skin's accent.
func (p *PDFProvider) GenerateInvoice(ctx context.Context, in render.Input) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inv := in.Invoice
	theme := render.ThemeFor(in.Template)
	accent := hexColor(string(theme.Accent))
	symbol := in.Symbol
	if symbol == "" {
		symbol = "$"
	}
	money := func(v float64) string { return format.FormatCurrency(v, symbol) }

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	if logo, ext, ok := decodeLogo(domain.Deref(inv.CompanyLogo)); ok {
		m.AddRow(20,
			image.NewFromBytesCol(3, logo, ext, props.Rect{Percent: 80}),
			col.New(9),
		)
	}

	m.AddRow(16,
		text.NewCol(8, theme.Title, props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: headerText(theme, accent),
			Top:   3,
			Left:  2,
		}),
		text.NewCol(4, "Invoice Number: "+inv.InvoiceNumber, props.Text{
			Size:  10,
			Align: align.Right,
			Color: headerText(theme, nil),
			Top:   6,
			Right: 2,
		}),
	).WithStyle(headerCell(theme, accent))

	m.AddRow(6)

	m.AddRow(36,
		partyCol("FROM", accent, inv.CompanyName, inv.CompanyAddress, inv.CompanyCity, inv.CompanyEmail, inv.CompanyPhone),
		partyCol("BILL TO", accent, inv.ClientName, inv.ClientAddress, inv.ClientCity, inv.ClientEmail, inv.ClientPhone),
	)

	dates := []core.Col{
		text.NewCol(6, "Invoice Date: "+format.FormatDisplayDate(domain.Deref(inv.InvoiceDate)), props.Text{Size: 9, Top: 2, Left: 2}),
	}
	if inv.IsPaid {
		dates = append(dates, paidCol(inv))
	} else if due := format.FormatDisplayDate(domain.Deref(inv.DueDate)); due != "" {
		dates = append(dates, text.NewCol(6, "Due Date: "+due, props.Text{Size: 9, Top: 2, Align: align.Right, Right: 2}))
	} else {
		dates = append(dates, col.New(6))
	}
	m.AddRow(10, dates...).WithStyle(&props.Cell{BackgroundColor: stripe})

	m.AddRow(4)

	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: white, Top: 2}
	m.AddRow(8,
		text.NewCol(6, "DESCRIPTION", withLeft(header, 2)),
		text.NewCol(2, "QTY", withAlign(header, align.Center)),
		text.NewCol(2, "RATE", withAlign(header, align.Right)),
		text.NewCol(2, "AMOUNT", withRight(withAlign(header, align.Right), 2)),
	).WithStyle(&props.Cell{BackgroundColor: accent})

	for _, item := range inv.Items {
		cell := props.Text{Size: 9, Top: 2}
		m.AddRow(8,
			text.NewCol(6, item.Description, withLeft(cell, 2)),
			text.NewCol(2, strconv.FormatFloat(item.Quantity, 'f', -1, 64), withAlign(cell, align.Center)),
			text.NewCol(2, money(item.Rate), withAlign(cell, align.Right)),
			text.NewCol(2, money(totals.LineAmount(item)), withRight(withAlign(cell, align.Right), 2)),
		)
	}

	m.AddRow(4)
	totalRow(m, "Subtotal", money(in.Totals.Subtotal), false)
	totalRow(m, "Tax ("+strconv.FormatFloat(inv.TaxRate, 'f', -1, 64)+"%)", money(in.Totals.TaxAmount), false)
	label := theme.TotalsLabel
	if inv.IsPaid {
		label = "Total"
	}
	totalRow(m, label, money(in.Totals.Total), true).WithStyle(&props.Cell{BackgroundColor: accent})

	if inv.Notes != "" || inv.Terms != "" {
		m.AddRow(10)
		m.AddRow(24,
			noteCol("Notes", inv.Notes, accent),
			noteCol("Terms & Conditions", inv.Terms, accent),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func partyCol(title string, accent *props.Color, name, address, city, email, phone string) core.Col {
	line := props.Text{Size: 9, Color: muted}
	return col.New(6).Add(
		text.New(title, props.Text{Size: 9, Style: fontstyle.Bold, Color: accent}),
		text.New(name, props.Text{Size: 11, Style: fontstyle.Bold, Top: 5}),
		text.New(address, withTop(line, 11)),
		text.New(city, withTop(line, 16)),
		text.New(email, withTop(line, 21)),
		text.New(phone, withTop(line, 26)),
	)
}

// paidCol draws the paid marker: a "PAID" stamp or a "PAID on" line.
func paidCol(inv domain.Details) core.Col {
	paid := domain.Deref(inv.PaidDate)
	marker := "PAID  " + format.FormatStampDate(paid)
	if inv.PaidIndicator == domain.PaidIndicatorText {
		marker = "PAID on " + format.FormatDisplayDate(paid)
	}
	return text.NewCol(6, marker, props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Color: paidTint,
		Align: align.Right,
		Top:   2,
		Right: 2,
	})
}

func totalRow(m core.Maroto, label, value string, grand bool) core.Row {
	style := props.Text{Size: 9, Top: 2}
	if grand {
		style = props.Text{Size: 11, Style: fontstyle.Bold, Color: white, Top: 2}
	}
	return m.AddRow(8,
		col.New(7),
		text.NewCol(3, label, withLeft(style, 2)),
		text.NewCol(2, value, withRight(withAlign(style, align.Right), 2)),
	)
}

func noteCol(title, body string, accent *props.Color) core.Col {
	if body == "" {
		return col.New(6)
	}
	return col.New(6).Add(
		text.New(title, props.Text{Size: 9, Style: fontstyle.Bold, Color: accent}),
		text.New(body, props.Text{Size: 8, Color: muted, Top: 5}),
	)
}

func headerCell(theme render.Theme, accent *props.Color) *props.Cell {
	if theme.Header != render.HeaderBanner {
		return nil
	}
	return &props.Cell{BackgroundColor: accent}
}

func headerText(theme render.Theme, fallback *props.Color) *props.Color {
	if theme.Header == render.HeaderBanner {
		return white
	}
	return fallback
}

func withTop(t props.Text, top float64) props.Text { t.Top = top; return t }

func withLeft(t props.Text, left float64) props.Text { t.Left = left; return t }

func withRight(t props.Text, right float64) props.Text { t.Right = right; return t }

func withAlign(t props.Text, a align.Type) props.Text { t.Align = a; return t }

// hexColor parses "#rrggbb". Anything else yields dark gray.
func hexColor(s string) *props.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return &props.Color{Red: 31, Green: 41, Blue: 55}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return &props.Color{Red: 31, Green: 41, Blue: 55}
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}
}

// decodeLogo extracts a PNG or JPEG from a base64 data URI.
func decodeLogo(uri string) ([]byte, extension.Type, bool) {
	meta, payload, found := strings.Cut(uri, ",")
	if !found || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}

	var ext extension.Type
	switch strings.TrimSuffix(strings.TrimPrefix(meta, "data:image/"), ";base64") {
	case "png":
		ext = extension.Png
	case "jpeg", "jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, "", false
	}
	return data, ext, true
}
