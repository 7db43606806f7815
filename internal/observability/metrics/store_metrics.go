package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	SlotResultOK    = "ok"
	SlotResultError = "error"
)

// StoreMetrics tracks durability of the invoice collection. Persist
// failures are swallowed by the store, so these counters are the only
// place they surface besides the logs.
type StoreMetrics struct {
	slotWrites      *prometheus.CounterVec
	slotWriteTime   *prometheus.HistogramVec
	persistFailures *prometheus.CounterVec
	loadFailures    *prometheus.CounterVec
	invoices        prometheus.Gauge
}

// NewStoreMetrics registers the store collectors on registerer, reusing
// collectors that are already registered.
func NewStoreMetrics(registerer prometheus.Registerer, cfg Config) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "invoicely"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	return &StoreMetrics{
		slotWrites: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoicely_slot_writes_total",
			Help:        "Whole-collection slot writes by driver and result.",
			ConstLabels: constLabels,
		}, []string{"driver", "result"})),
		slotWriteTime: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "invoicely_slot_write_duration_seconds",
			Help:        "Latency of whole-collection slot writes.",
			Buckets:     []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"driver"})),
		persistFailures: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoicely_store_persist_failures_total",
			Help:        "Mutations whose slot write failed; memory stayed authoritative.",
			ConstLabels: constLabels,
		}, []string{"driver"})),
		loadFailures: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoicely_store_load_failures_total",
			Help:        "Startup loads that fell back to an empty collection.",
			ConstLabels: constLabels,
		}, []string{"driver", "reason"})),
		invoices: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "invoicely_store_invoices",
			Help:        "Invoices currently held by the store.",
			ConstLabels: constLabels,
		})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, c T) T {
	if err := registerer.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *StoreMetrics) ObserveSlotWrite(driver string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := SlotResultOK
	if err != nil {
		result = SlotResultError
		m.persistFailures.WithLabelValues(driver).Inc()
	}
	m.slotWrites.WithLabelValues(driver, result).Inc()
	m.slotWriteTime.WithLabelValues(driver).Observe(elapsed.Seconds())
}

func (m *StoreMetrics) RecordLoadFailure(driver, reason string) {
	if m == nil {
		return
	}
	m.loadFailures.WithLabelValues(driver, reason).Inc()
}

func (m *StoreMetrics) SetInvoiceCount(n int) {
	if m == nil {
		return
	}
	m.invoices.Set(float64(n))
}
