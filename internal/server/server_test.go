package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/draft"
	"github.com/smallbiznis/invoicely/internal/invoice/render"
	"github.com/smallbiznis/invoicely/internal/invoice/service"
	"github.com/smallbiznis/invoicely/internal/invoice/store"
	"github.com/smallbiznis/invoicely/internal/observability"
	obsmetrics "github.com/smallbiznis/invoicely/internal/observability/metrics"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
	"github.com/smallbiznis/invoicely/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	server *Server
	store  *store.Store
	clock  *clock.FakeClock
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	c := clock.NewFakeClock(time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	s := store.New(store.Params{Log: log, Slot: storage.NewMemory(), IDs: store.ClockIDs{Clock: c}, Clock: c})
	drafts := draft.NewRegistry(draft.RegistryParams{
		Log:      log,
		Config:   config.Config{SessionTTL: time.Hour},
		Clock:    c,
		Defaults: config.NewStaticDefaultsHolder(config.DefaultInvoiceDefaults()),
		Store:    s,
	})
	svc := service.NewService(service.ServiceParam{
		Log:      log,
		Store:    s,
		Drafts:   drafts,
		Renderer: render.NewRenderer(),
		PDF:      pdf.New(),
	})
	engine := NewEngine(observability.Config{Environment: "test"}, obsmetrics.NewHTTPMetrics(prometheus.NewRegistry()))
	srv := NewServer(ServerParams{Gin: engine, Cfg: config.Config{}, Log: log, InvoiceSvc: svc, Drafts: drafts})
	return testServer{server: srv, store: s, clock: c}
}

func (ts testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.server.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var out errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Error
}

func (ts testServer) commitDraft(t *testing.T) domain.Invoice {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[draft.Preview](t, w)

	w = ts.do(t, http.MethodPost, "/api/drafts/"+p.SessionID+"/commit", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ts.clock.Advance(time.Second)
	return decode[domain.Invoice](t, w)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogRoutes(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/currencies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	currencies := decode[[]map[string]string](t, w)
	require.Len(t, currencies, 20)
	assert.Equal(t, "USD", currencies[0]["code"])

	w = ts.do(t, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	templates := decode[[]templateView](t, w)
	require.Len(t, templates, 5)
	assert.Equal(t, domain.TemplateModern, templates[0].Name)
}

func TestDraftLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[draft.Preview](t, w)
	base := "/api/drafts/" + p.SessionID
	assert.InDelta(t, 4123, p.Totals.Total, 1e-9)

	next := p.Draft
	next.Currency = "EUR"
	next.Items = []domain.LineItem{{Description: "A", Quantity: 2, Rate: 10}}
	w = ts.do(t, http.MethodPut, base, next)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p = decode[draft.Preview](t, w)
	assert.Equal(t, "€", p.CurrencySymbol)
	assert.InDelta(t, 21.7, p.Totals.Total, 1e-9)

	w = ts.do(t, http.MethodDelete, base+"/items/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "last_item", decodeError(t, w).Errors[0].Code)

	w = ts.do(t, http.MethodPost, base+"/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodPatch, base+"/items/1", updateItemRequest{Field: "rate", Value: "5"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[draft.Preview](t, w).Draft.Items, 2)

	w = ts.do(t, http.MethodPut, base+"/template", selectTemplateRequest{Template: "neon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodPut, base+"/template", selectTemplateRequest{Template: "elegant"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, base+"/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "skin-elegant")

	w = ts.do(t, http.MethodPost, base+"/commit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	inv := decode[domain.Invoice](t, w)
	assert.Equal(t, domain.TemplateElegant, inv.Template)
	assert.Equal(t, "EUR", inv.Currency)

	w = ts.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommitInvalidDraft(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/drafts", nil)
	p := decode[draft.Preview](t, w)

	bad := p.Draft
	bad.ClientEmail = "nope"
	w = ts.do(t, http.MethodPut, "/api/drafts/"+p.SessionID, bad)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/drafts/"+p.SessionID+"/commit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeError(t, w)
	assert.Equal(t, "validation_error", payload.Type)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "clientEmail", payload.Errors[0].Field)
}

func TestInvoiceRoutes(t *testing.T) {
	ts := newTestServer(t)
	inv := ts.commitDraft(t)
	path := "/api/invoices/" + strconv.FormatInt(inv.ID, 10)

	w := ts.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entry := decode[service.Entry](t, w)
	assert.Equal(t, inv.ID, entry.ID)
	assert.InDelta(t, 4123, entry.Totals.Total, 1e-9)

	w = ts.do(t, http.MethodGet, "/api/invoices/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(t, http.MethodGet, "/api/invoices/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, path+"/paid", map[string]string{"paidDate": "2024-02-01", "paidIndicator": "text"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[domain.Invoice](t, w).IsPaid)

	w = ts.do(t, http.MethodPost, path+"/paid", map[string]string{"paidDate": "2024-02-02"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/api/invoices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	grouped := decode[service.Grouped](t, w)
	assert.Equal(t, 1, grouped.Counts.Paid)
	assert.Empty(t, grouped.Pending)

	w = ts.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, ts.store.Len())
	w = ts.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMarkPaidRequiresDate(t *testing.T) {
	ts := newTestServer(t)
	inv := ts.commitDraft(t)

	w := ts.do(t, http.MethodPost, "/api/invoices/"+strconv.FormatInt(inv.ID, 10)+"/paid", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "paidDate", decodeError(t, w).Errors[0].Field)
}

func TestRenderAndExport(t *testing.T) {
	ts := newTestServer(t)
	inv := ts.commitDraft(t)
	path := "/api/invoices/" + strconv.FormatInt(inv.ID, 10)

	w := ts.do(t, http.MethodGet, path+"/render", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.NotContains(t, w.Body.String(), "window.print")

	w = ts.do(t, http.MethodGet, path+"/render?print=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "window.print")

	w = ts.do(t, http.MethodGet, path+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice-inv-001.pdf"`, w.Header().Get("Content-Disposition"))

	w = ts.do(t, http.MethodGet, path+"/export?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicateInvoiceStartsUnpaid(t *testing.T) {
	ts := newTestServer(t)
	inv := ts.commitDraft(t)
	path := "/api/invoices/" + strconv.FormatInt(inv.ID, 10)
	ts.do(t, http.MethodPost, path+"/paid", map[string]string{"paidDate": "2024-02-01"})

	w := ts.do(t, http.MethodPost, path+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[draft.Preview](t, w)
	assert.False(t, p.Draft.IsPaid)
	assert.Nil(t, p.Draft.PaidDate)
	assert.Equal(t, inv.InvoiceNumber, p.Draft.InvoiceNumber)
}

func TestMapErrorFallsBackToInternal(t *testing.T) {
	status, payload := mapError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)

	typ, code := classifyErrorForLog(domain.ErrAlreadyPaid)
	assert.Equal(t, "conflict", typ)
	assert.Equal(t, "already_paid", code)
}
