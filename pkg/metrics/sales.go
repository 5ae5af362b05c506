package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sale failure reasons used as the "reason" label.
const (
	ReasonNotFound          = "not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonInvalidInput      = "invalid_input"
	ReasonTransaction       = "transaction"
)

// SalesMetrics records the outcome of every sale transaction.
type SalesMetrics struct {
	created  prometheus.Counter
	failed   *prometheus.CounterVec
	units    prometheus.Counter
	duration prometheus.Histogram
}

// NewSalesMetrics registers the sales metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_created_total",
		Help: "Sales committed successfully.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_failed_total",
		Help: "Sales rejected or rolled back, by reason.",
	}, []string{"reason"})
	units := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_units_sold_total",
		Help: "Units removed from inventory by committed sales.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sales_transaction_duration_seconds",
		Help:    "Duration of the sale unit of work in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(created, failed, units, duration)
	return &SalesMetrics{
		created:  created,
		failed:   failed,
		units:    units,
		duration: duration,
	}
}

// ObserveSuccess records a committed sale of the given quantity.
func (m *SalesMetrics) ObserveSuccess(quantity int, elapsed time.Duration) {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
	m.units.Add(float64(quantity))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveFailure records a rejected sale.
func (m *SalesMetrics) ObserveFailure(reason string, elapsed time.Duration) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(reason)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
