package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("template", "modern"),
		attribute.String("client_email", "client@company.com"),
		attribute.String("format", "pdf"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "template" && attrs[1].Key != "template" {
		t.Fatalf("expected template to be retained")
	}
	if attrs[0].Key != "format" && attrs[1].Key != "format" {
		t.Fatalf("expected format to be retained")
	}
}

func TestNoopMetricsRecord(t *testing.T) {
	m := Noop()
	m.RecordInvoiceCreated(context.Background(), "modern")
	m.RecordExport(context.Background(), "pdf", "bold")

	var nilMetrics *Metrics
	nilMetrics.RecordInvoicePaid(context.Background(), "stamp")
}

func TestStoreMetricsCountsPersistFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg, Config{ServiceName: "test"})

	m.ObserveSlotWrite("file", time.Millisecond, nil)
	m.ObserveSlotWrite("file", time.Millisecond, errors.New("disk full"))
	m.SetInvoiceCount(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures.WithLabelValues("file")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotWrites.WithLabelValues("file", SlotResultOK)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.invoices))
}

func TestStoreMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewStoreMetrics(reg, Config{})
	second := NewStoreMetrics(reg, Config{})

	first.ObserveSlotWrite("redis", 0, errors.New("down"))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.persistFailures.WithLabelValues("redis")))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/currencies", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/currencies", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/currencies", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unknown", "404")))
}
