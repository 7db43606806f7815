package draft

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/totals"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultSessionTTL = 2 * time.Hour

// Session is one editor: a draft plus the selected skin.
type Session struct {
	ID        string          `json:"id"`
	Template  domain.Template `json:"template"`
	Draft     domain.Details  `json:"draft"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Preview is what the editor shows next to the form after each change.
type Preview struct {
	SessionID      string          `json:"sessionId"`
	Template       domain.Template `json:"template"`
	Draft          domain.Details  `json:"draft"`
	CurrencySymbol string          `json:"currencySymbol"`
	Totals         totals.Totals   `json:"totals"`
}

type entry struct {
	template  domain.Template
	draft     *Draft
	expiresAt time.Time
}

type RegistryParams struct {
	fx.In

	Log      *zap.Logger
	Config   config.Config
	Clock    clock.Clock
	Defaults *config.DefaultsHolder
	Store    domain.Store
}

// Registry keeps open editor sessions in memory. Idle sessions expire.
type Registry struct {
	log      *zap.Logger
	clock    clock.Clock
	defaults *config.DefaultsHolder
	store    domain.Store
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(p RegistryParams) *Registry {
	ttl := p.Config.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Registry{
		log:      p.Log.Named("draft"),
		clock:    p.Clock,
		defaults: p.Defaults,
		store:    p.Store,
		ttl:      ttl,
		sessions: make(map[string]*entry),
	}
}

// Open starts a session from the current defaults.
func (r *Registry) Open(ctx context.Context) Session {
	defaults := r.defaults.Get()
	now := r.clock.Now()
	seq := int64(len(r.store.List(ctx))) + 1

	template, err := domain.ParseTemplate(defaults.Template)
	if err != nil {
		template = domain.TemplateModern
	}
	return r.add(now, template, New(defaults, now, seq))
}

// OpenFrom starts a session pre-filled from a saved invoice.
func (r *Registry) OpenFrom(inv domain.Invoice) Session {
	return r.add(r.clock.Now(), inv.Template, FromDetails(inv.Details))
}

func (r *Registry) add(now time.Time, template domain.Template, d *Draft) Session {
	id := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)
	e := &entry{template: template, draft: d, expiresAt: now.Add(r.ttl)}
	r.sessions[id] = e
	r.log.Debug("session opened", zap.String("session_id", id), zap.String("template", string(template)))
	return snapshot(id, e, now)
}

// Get returns the session without extending its lifetime.
func (r *Registry) Get(id string) (Session, error) {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookupLocked(id, now)
	if err != nil {
		return Session{}, err
	}
	return snapshot(id, e, e.expiresAt.Add(-r.ttl)), nil
}

// OnDraftChange replaces the whole draft and returns the refreshed preview.
func (r *Registry) OnDraftChange(id string, next domain.Details) (Preview, error) {
	return r.mutate(id, func(e *entry) error {
		e.draft.Replace(next)
		return nil
	})
}

// SelectTemplate switches the skin of the session.
func (r *Registry) SelectTemplate(id, raw string) (Preview, error) {
	template, err := domain.ParseTemplate(raw)
	if err != nil {
		return Preview{}, err
	}
	return r.mutate(id, func(e *entry) error {
		e.template = template
		return nil
	})
}

func (r *Registry) SetCurrency(id, code string) (Preview, error) {
	return r.mutate(id, func(e *entry) error {
		e.draft.SetCurrency(code)
		return nil
	})
}

func (r *Registry) AddItem(id string) (Preview, error) {
	return r.mutate(id, func(e *entry) error {
		e.draft.AddItem()
		return nil
	})
}

func (r *Registry) RemoveItem(id string, index int) (Preview, error) {
	return r.mutate(id, func(e *entry) error {
		return e.draft.RemoveItem(index)
	})
}

func (r *Registry) SetItemField(id string, index int, field, raw string) (Preview, error) {
	return r.mutate(id, func(e *entry) error {
		return e.draft.SetItemField(index, field, raw)
	})
}

func (r *Registry) SetLogo(id, dataURI string) (Preview, error) {
	return r.mutate(id, func(e *entry) error {
		return e.draft.SetLogo(dataURI)
	})
}

// Preview returns the current preview of a session.
func (r *Registry) Preview(id string) (Preview, error) {
	return r.mutate(id, func(*entry) error { return nil })
}

// Commit validates the draft and saves it with the session's skin. The
// session is closed once the invoice is stored.
func (r *Registry) Commit(ctx context.Context, id string) (domain.Invoice, error) {
	now := r.clock.Now()

	r.mu.Lock()
	e, err := r.lookupLocked(id, now)
	if err != nil {
		r.mu.Unlock()
		return domain.Invoice{}, err
	}
	if err := e.draft.Validate(); err != nil {
		e.expiresAt = now.Add(r.ttl)
		r.mu.Unlock()
		return domain.Invoice{}, err
	}
	details, template := e.draft.Record(), e.template
	delete(r.sessions, id)
	r.mu.Unlock()

	inv := r.store.Create(ctx, details, template)
	r.log.Info("draft committed",
		zap.String("session_id", id),
		zap.Int64("invoice_id", inv.ID),
		zap.String("template", string(template)),
	)
	return inv, nil
}

// Discard drops a session. Unknown ids are ignored.
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)
	return len(r.sessions)
}

func (r *Registry) mutate(id string, fn func(*entry) error) (Preview, error) {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookupLocked(id, now)
	if err != nil {
		return Preview{}, err
	}
	if err := fn(e); err != nil {
		return Preview{}, err
	}
	e.expiresAt = now.Add(r.ttl)
	return preview(id, e), nil
}

func (r *Registry) lookupLocked(id string, now time.Time) (*entry, error) {
	e, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !now.Before(e.expiresAt) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}

func (r *Registry) sweepLocked(now time.Time) {
	for id, e := range r.sessions {
		if !now.Before(e.expiresAt) {
			delete(r.sessions, id)
		}
	}
}

func snapshot(id string, e *entry, updatedAt time.Time) Session {
	return Session{
		ID:        id,
		Template:  e.template,
		Draft:     e.draft.Record(),
		UpdatedAt: updatedAt,
	}
}

func preview(id string, e *entry) Preview {
	record := e.draft.Record()
	return Preview{
		SessionID:      id,
		Template:       e.template,
		Draft:          record,
		CurrencySymbol: record.CurrencySymbol,
		Totals:         e.draft.Totals(),
	}
}
