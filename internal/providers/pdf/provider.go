package pdf

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"go.uber.org/fx"
)

const ContentType = "application/pdf"

type Provider interface {
	GenerateInvoice(ctx context.Context, in render.Input) (io.Reader, error)
}

// Filename is the download name of an invoice, e.g. "Invoice-inv-001.pdf".
func Filename(invoiceNumber string) string {
	name := slug.Make(strings.TrimSpace(invoiceNumber))
	if name == "" {
		name = "invoice"
	}
	return "Invoice-" + name + ".pdf"
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateInvoice(context.Context, render.Input) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

var Module = fx.Module("pdf",
	fx.Provide(New),
)
