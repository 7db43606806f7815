package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/draft"
	"github.com/smallbiznis/invoicely/internal/invoice/payment"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"github.com/smallbiznis/invoicely/internal/invoice/store"
	"github.com/smallbiznis/invoicely/internal/observability/metrics"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Store    domain.Store
	Drafts   *draft.Registry
	Renderer render.Renderer
	PDF      pdf.Provider
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	store    domain.Store
	drafts   *draft.Registry
	renderer render.Renderer
	pdf      pdf.Provider
	metrics  *metrics.Metrics
}

func NewService(p ServiceParam) *Service {
	return &Service{
		log:      p.Log.Named("invoice.service"),
		store:    p.Store,
		drafts:   p.Drafts,
		renderer: p.Renderer,
		pdf:      p.PDF,
		metrics:  p.Metrics,
	}
}

// Create stores details directly, bypassing the editor.
func (s *Service) Create(ctx context.Context, details domain.Details, rawTemplate string) (domain.Invoice, error) {
	template, err := domain.ParseTemplate(rawTemplate)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := draft.ValidateDetails(details); err != nil {
		return domain.Invoice{}, err
	}

	inv := s.store.Create(ctx, details, template)
	s.metrics.RecordInvoiceCreated(ctx, string(template))
	return inv, nil
}

// CommitDraft saves the draft of an editor session.
func (s *Service) CommitDraft(ctx context.Context, sessionID string) (domain.Invoice, error) {
	inv, err := s.drafts.Commit(ctx, sessionID)
	if err != nil {
		return domain.Invoice{}, err
	}
	s.metrics.RecordDraftCommitted(ctx)
	s.metrics.RecordInvoiceCreated(ctx, string(inv.Template))
	return inv, nil
}

// Get resolves a route id to an invoice.
func (s *Service) Get(ctx context.Context, rawID string) (domain.Invoice, error) {
	if _, ok := store.ParseID(rawID); !ok {
		return domain.Invoice{}, domain.ErrInvalidID
	}
	inv, ok := s.store.FindByID(ctx, rawID)
	if !ok {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return inv, nil
}

// Delete removes an invoice. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, ok := store.ParseID(rawID)
	if !ok {
		return domain.ErrInvalidID
	}
	if _, found := s.store.Get(ctx, id); !found {
		return nil
	}
	s.store.Delete(ctx, id)
	s.metrics.RecordInvoiceDeleted(ctx)
	s.log.Info("invoice deleted", zap.Int64("invoice_id", id))
	return nil
}

// MarkPaid records a payment. A paid invoice cannot be paid again.
func (s *Service) MarkPaid(ctx context.Context, rawID string, req payment.Request) (domain.Invoice, error) {
	inv, err := s.Get(ctx, rawID)
	if err != nil {
		return domain.Invoice{}, err
	}

	patch, err := payment.MarkPaid(ctx, inv, req)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := s.store.Update(ctx, inv.ID, patch); err != nil {
		return domain.Invoice{}, err
	}

	updated, ok := s.store.Get(ctx, inv.ID)
	if !ok {
		return domain.Invoice{}, domain.ErrNotFound
	}
	s.metrics.RecordInvoicePaid(ctx, string(updated.PaidIndicator))
	s.log.Info("invoice marked paid",
		zap.Int64("invoice_id", updated.ID),
		zap.String("paid_date", domain.Deref(updated.PaidDate)),
	)
	return updated, nil
}

// RenderDraft renders the live preview of an editor session.
func (s *Service) RenderDraft(sessionID string) (string, error) {
	sess, err := s.drafts.Get(sessionID)
	if err != nil {
		return "", err
	}
	inv := domain.Invoice{Details: sess.Draft, Template: sess.Template}
	return s.renderer.RenderHTML(render.NewInput(inv))
}

func normalizeFormat(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
