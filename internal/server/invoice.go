package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/payment"
	"github.com/smallbiznis/invoicely/internal/invoice/service"
	"github.com/smallbiznis/invoicely/internal/invoice/totals"
)

type createInvoiceRequest struct {
	domain.Details
	Template string `json:"template"`
}

func (s *Server) ListInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.invoice.ListGrouped(c.Request.Context())})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inv, err := s.invoice.Create(c.Request.Context(), req.Details, req.Template)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	annotateInvoice(c, inv.ID)
	c.JSON(http.StatusCreated, gin.H{"data": inv})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	inv, err := s.invoice.Get(c.Request.Context(), invoiceID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": service.Entry{Invoice: inv, Totals: totals.Of(inv)}})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoice.Delete(c.Request.Context(), invoiceID(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) MarkInvoicePaid(c *gin.Context) {
	var req payment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	inv, err := s.invoice.MarkPaid(c.Request.Context(), invoiceID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

// DuplicateInvoice opens an editor session pre-filled from a saved
// invoice. The copy starts unpaid.
func (s *Server) DuplicateInvoice(c *gin.Context) {
	inv, err := s.invoice.Get(c.Request.Context(), invoiceID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	inv.IsPaid = false
	inv.PaidDate = nil

	sess := s.drafts.OpenFrom(inv)
	c.Set("session_id", sess.ID)
	preview, err := s.drafts.Preview(sess.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": preview})
}

func (s *Server) RenderInvoice(c *gin.Context) {
	printMode, err := parseOptionalBool(c.Query("print"))
	if err != nil {
		AbortWithError(c, newValidationError("print", "invalid_print", "print must be a boolean"))
		return
	}
	format := service.FormatHTML
	if printMode != nil && *printMode {
		format = service.FormatPrint
	}
	s.export(c, format, false)
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	s.export(c, service.FormatPDF, true)
}

func (s *Server) ExportInvoice(c *gin.Context) {
	format := strings.TrimSpace(c.DefaultQuery("format", service.FormatPDF))
	s.export(c, format, true)
}

func (s *Server) export(c *gin.Context, format string, download bool) {
	c.Set("export_format", format)
	out, err := s.invoice.Export(c.Request.Context(), invoiceID(c), format)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if download && !out.Inline {
		c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	}
	c.Data(http.StatusOK, out.ContentType, out.Body)
}

func invoiceID(c *gin.Context) string {
	raw := strings.TrimSpace(c.Param("id"))
	c.Set("invoice_id", raw)
	return raw
}

func annotateInvoice(c *gin.Context, id int64) {
	c.Set("invoice_id", strconv.FormatInt(id, 10))
}
