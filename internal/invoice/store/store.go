// Package store holds the in-memory invoice collection and mirrors it
// into a durable slot after every mutation.
package store

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/currency"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/observability/metrics"
	"github.com/smallbiznis/invoicely/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// CreatedAtLayout matches the millisecond ISO-8601 instants already found
// in persisted collections.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

type Params struct {
	fx.In

	Log     *zap.Logger
	Slot    storage.Slot
	IDs     IDSource
	Clock   clock.Clock
	Metrics *metrics.StoreMetrics `optional:"true"`
}

// Store is safe for concurrent use. Memory is authoritative: slot write
// failures are logged and counted but never surfaced to callers.
type Store struct {
	log     *zap.Logger
	slot    storage.Slot
	ids     IDSource
	clock   clock.Clock
	metrics *metrics.StoreMetrics

	mu       sync.RWMutex
	invoices []domain.Invoice
	lastID   int64
}

var _ domain.Store = (*Store)(nil)

// New builds the store and loads the existing collection. Load problems
// leave the store empty; they never fail construction.
func New(p Params) *Store {
	s := &Store{
		log:     p.Log.Named("invoice.store"),
		slot:    p.Slot,
		ids:     p.IDs,
		clock:   p.Clock,
		metrics: p.Metrics,
	}
	s.load(context.Background())
	return s
}

func (s *Store) load(ctx context.Context) {
	driver := s.slot.Driver()

	payload, ok, err := s.slot.Read(ctx)
	if err != nil {
		s.log.Warn("read invoice slot failed, starting empty", zap.String("driver", driver), zap.Error(err))
		s.metrics.RecordLoadFailure(driver, "read")
		return
	}
	if !ok {
		s.log.Info("invoice slot empty", zap.String("driver", driver))
		return
	}

	var loaded []domain.Invoice
	if err := json.Unmarshal(payload, &loaded); err != nil {
		s.log.Warn("invoice slot malformed, starting empty", zap.String("driver", driver), zap.Error(err))
		s.metrics.RecordLoadFailure(driver, "decode")
		return
	}

	for _, inv := range loaded {
		if inv.ID > s.lastID {
			s.lastID = inv.ID
		}
	}
	s.invoices = loaded
	s.metrics.SetInvoiceCount(len(loaded))
	s.log.Info("invoices loaded", zap.String("driver", driver), zap.Int("count", len(loaded)))
}

// Create finalizes details into a new unpaid record and persists the
// collection.
func (s *Store) Create(ctx context.Context, details domain.Details, template domain.Template) domain.Invoice {
	tpl, err := domain.ParseTemplate(string(template))
	if err != nil {
		tpl = domain.TemplateModern
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv := domain.Invoice{
		ID:        s.nextIDLocked(),
		Details:   normalize(details.Clone()),
		Template:  tpl,
		CreatedAt: s.clock.Now().UTC().Format(CreatedAtLayout),
	}
	inv.IsPaid = false
	inv.PaidDate = nil

	s.invoices = append(s.invoices, inv)
	s.persistLocked(ctx)

	s.log.Debug("invoice created", zap.Int64("invoice_id", inv.ID), zap.String("template", string(tpl)))
	return inv.Clone()
}

// Update merges patch into the record with id. Unknown ids are a no-op.
// A paid record can never return to unpaid, and a record is paid exactly
// when it carries a paid date.
func (s *Store) Update(ctx context.Context, id int64, patch domain.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 || patch.Empty() {
		return nil
	}

	current := s.invoices[idx]
	next := current.Clone()
	patch.Apply(&next.Details)

	if current.IsPaid && !next.IsPaid {
		return domain.ErrPaidIsTerminal
	}
	if patch.IsPaid != nil || patch.PaidDate != nil {
		paidDate := strings.TrimSpace(domain.Deref(next.PaidDate))
		if next.IsPaid && paidDate == "" {
			return domain.ErrPaidDateRequired
		}
		if !next.IsPaid && paidDate != "" {
			return domain.ErrPaidDateWithoutPayment
		}
	}

	next.Details = normalize(next.Details)
	s.invoices[idx] = next
	s.persistLocked(ctx)
	return nil
}

// Delete removes the record with id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	s.invoices = append(s.invoices[:idx], s.invoices[idx+1:]...)
	s.persistLocked(ctx)
}

// Get returns a copy of the record with id.
func (s *Store) Get(_ context.Context, id int64) (domain.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Invoice{}, false
	}
	return s.invoices[idx].Clone(), true
}

// FindByID resolves an identifier taken from a path or query string.
// Leading whitespace, an optional sign and trailing garbage are tolerated,
// so "123abc" finds 123.
func (s *Store) FindByID(ctx context.Context, raw string) (domain.Invoice, bool) {
	id, ok := ParseID(raw)
	if !ok {
		return domain.Invoice{}, false
	}
	return s.Get(ctx, id)
}

// List returns copies of every record in creation order.
func (s *Store) List(context.Context) []domain.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Invoice, len(s.invoices))
	for i, inv := range s.invoices {
		out[i] = inv.Clone()
	}
	return out
}

// Len returns the number of held records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}

// ParseID reads the leading integer of raw.
func ParseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	id, err := strconv.ParseInt(raw[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *Store) nextIDLocked() int64 {
	id := s.ids.Next()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) {
	driver := s.slot.Driver()
	start := time.Now()

	var err error
	if len(s.invoices) == 0 {
		err = s.slot.Clear(ctx)
	} else {
		var payload []byte
		payload, err = json.Marshal(s.invoices)
		if err == nil {
			err = s.slot.Write(ctx, payload)
		}
	}

	s.metrics.ObserveSlotWrite(driver, time.Since(start), err)
	s.metrics.SetInvoiceCount(len(s.invoices))
	if err != nil {
		s.log.Warn("persist invoices failed, keeping in-memory state",
			zap.String("driver", driver),
			zap.Int("count", len(s.invoices)),
			zap.Error(err),
		)
	}
}

// normalize enforces the value invariants every stored record holds.
func normalize(d domain.Details) domain.Details {
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if d.Currency == "" {
		d.Currency = currency.DefaultCode
	}
	d.CurrencySymbol = currency.Symbol(d.Currency)
	d.TaxRate = finite(d.TaxRate)
	if d.Items == nil {
		d.Items = []domain.LineItem{}
	}
	for i := range d.Items {
		d.Items[i].Quantity = finite(d.Items[i].Quantity)
		d.Items[i].Rate = finite(d.Items[i].Rate)
	}
	if indicator, err := domain.ParsePaidIndicator(string(d.PaidIndicator)); err == nil {
		d.PaidIndicator = indicator
	} else {
		d.PaidIndicator = domain.PaidIndicatorStamp
	}
	return d
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
