package draft

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/store"
	"github.com/smallbiznis/invoicely/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type registryFixture struct {
	registry *Registry
	store    *store.Store
	clock    *clock.FakeClock
}

func newRegistry(t *testing.T) registryFixture {
	t.Helper()
	c := clock.NewFakeClock(today)
	s := store.New(store.Params{
		Log:   zap.NewNop(),
		Slot:  storage.NewMemory(),
		IDs:   store.ClockIDs{Clock: c},
		Clock: c,
	})
	r := NewRegistry(RegistryParams{
		Log:      zap.NewNop(),
		Config:   config.Config{SessionTTL: time.Hour},
		Clock:    c,
		Defaults: config.NewStaticDefaultsHolder(config.DefaultInvoiceDefaults()),
		Store:    s,
	})
	return registryFixture{registry: r, store: s, clock: c}
}

func TestOpenAndGet(t *testing.T) {
	f := newRegistry(t)

	sess := f.registry.Open(context.Background())
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.TemplateModern, sess.Template)
	assert.Equal(t, "INV-001", sess.Draft.InvoiceNumber)

	got, err := f.registry.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Draft, got.Draft)

	_, err = f.registry.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestOnDraftChangeReturnsPreview(t *testing.T) {
	f := newRegistry(t)
	sess := f.registry.Open(context.Background())

	next := sess.Draft
	next.Currency = "GBP"
	next.TaxRate = 10
	next.Items = []domain.LineItem{{Description: "A", Quantity: 2, Rate: 50}}

	p, err := f.registry.OnDraftChange(sess.ID, next)
	require.NoError(t, err)
	assert.Equal(t, "£", p.CurrencySymbol)
	assert.InDelta(t, 100, p.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 10, p.Totals.TaxAmount, 1e-9)
	assert.InDelta(t, 110, p.Totals.Total, 1e-9)
}

func TestSelectTemplate(t *testing.T) {
	f := newRegistry(t)
	sess := f.registry.Open(context.Background())

	p, err := f.registry.SelectTemplate(sess.ID, "elegant")
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateElegant, p.Template)

	_, err = f.registry.SelectTemplate(sess.ID, "neon")
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestItemEditsThroughRegistry(t *testing.T) {
	f := newRegistry(t)
	sess := f.registry.Open(context.Background())

	p, err := f.registry.AddItem(sess.ID)
	require.NoError(t, err)
	require.Len(t, p.Draft.Items, 4)

	p, err = f.registry.SetItemField(sess.ID, 3, "rate", "100")
	require.NoError(t, err)
	assert.InDelta(t, 3900, p.Totals.Subtotal, 1e-9)

	for range 3 {
		_, err = f.registry.RemoveItem(sess.ID, 0)
		require.NoError(t, err)
	}
	_, err = f.registry.RemoveItem(sess.ID, 0)
	assert.ErrorIs(t, err, domain.ErrLastItem)
}

func TestCommitStoresAndClosesSession(t *testing.T) {
	f := newRegistry(t)
	ctx := context.Background()
	sess := f.registry.Open(ctx)
	_, err := f.registry.SelectTemplate(sess.ID, "bold")
	require.NoError(t, err)

	inv, err := f.registry.Commit(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotZero(t, inv.ID)
	assert.Equal(t, domain.TemplateBold, inv.Template)
	assert.Equal(t, 1, f.store.Len())

	_, err = f.registry.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	next := f.registry.Open(ctx)
	assert.Equal(t, "INV-002", next.Draft.InvoiceNumber)
}

func TestCommitRejectsInvalidDraft(t *testing.T) {
	f := newRegistry(t)
	ctx := context.Background()
	sess := f.registry.Open(ctx)

	bad := sess.Draft
	bad.InvoiceDate = domain.StringPtr("yesterday")
	_, err := f.registry.OnDraftChange(sess.ID, bad)
	require.NoError(t, err)

	_, err = f.registry.Commit(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Zero(t, f.store.Len())

	_, err = f.registry.Get(sess.ID)
	assert.NoError(t, err)
}

func TestSessionsExpireWhenIdle(t *testing.T) {
	f := newRegistry(t)
	sess := f.registry.Open(context.Background())

	f.clock.Advance(59 * time.Minute)
	_, err := f.registry.Preview(sess.ID)
	require.NoError(t, err)

	f.clock.Advance(58 * time.Minute)
	_, err = f.registry.Get(sess.ID)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Minute)
	_, err = f.registry.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Zero(t, f.registry.Len())
}

func TestOpenFromInvoice(t *testing.T) {
	f := newRegistry(t)
	inv := domain.Invoice{
		ID:       42,
		Template: domain.TemplateClassic,
		Details: domain.Details{
			InvoiceNumber: "INV-042",
			Currency:      "CHF",
			Items:         []domain.LineItem{{Description: "A", Quantity: 1, Rate: 9}},
		},
	}

	sess := f.registry.OpenFrom(inv)
	assert.Equal(t, domain.TemplateClassic, sess.Template)
	assert.Equal(t, "Fr", sess.Draft.CurrencySymbol)
	assert.Equal(t, domain.PaidIndicatorStamp, sess.Draft.PaidIndicator)
}
