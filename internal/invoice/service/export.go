package service

import (
	"context"
	"io"
	"strings"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
	"go.uber.org/zap"
)

const (
	FormatPDF   = "pdf"
	FormatHTML  = "html"
	FormatPrint = "print"
)

const htmlContentType = "text/html; charset=utf-8"

// Export is a rendered document ready to be served or written to disk.
type Export struct {
	Filename    string
	ContentType string
	// Inline documents are shown rather than downloaded.
	Inline bool
	Body   []byte
}

// Export renders a stored invoice in the requested format.
func (s *Service) Export(ctx context.Context, rawID, format string) (Export, error) {
	inv, err := s.Get(ctx, rawID)
	if err != nil {
		return Export{}, err
	}
	return s.ExportInvoice(ctx, inv, format)
}

func (s *Service) ExportInvoice(ctx context.Context, inv domain.Invoice, format string) (Export, error) {
	format = normalizeFormat(format)
	in := render.NewInput(inv)

	var out Export
	switch format {
	case FormatPDF:
		r, err := s.pdf.GenerateInvoice(ctx, in)
		if err != nil {
			s.log.Error("pdf generation failed", zap.Int64("invoice_id", inv.ID), zap.Error(err))
			return Export{}, err
		}
		body, err := io.ReadAll(r)
		if err != nil {
			return Export{}, err
		}
		out = Export{Filename: pdf.Filename(inv.InvoiceNumber), ContentType: pdf.ContentType, Body: body}
	case FormatHTML, FormatPrint:
		in.Print = format == FormatPrint
		html, err := s.renderer.RenderHTML(in)
		if err != nil {
			return Export{}, err
		}
		out = Export{
			Filename:    htmlFilename(inv.InvoiceNumber),
			ContentType: htmlContentType,
			Inline:      in.Print,
			Body:        []byte(html),
		}
	default:
		return Export{}, domain.ErrInvalidExportFormat
	}

	s.metrics.RecordExport(ctx, format, string(inv.Template))
	return out, nil
}

func htmlFilename(number string) string {
	return strings.TrimSuffix(pdf.Filename(number), ".pdf") + ".html"
}
