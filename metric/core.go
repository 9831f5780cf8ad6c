package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values shared by the recorders.
const (
	DirectionDecode = "decode"
	DirectionEncode = "encode"

	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the process-wide conversion and store metrics.
type Metrics struct {
	ConversionsTotal   *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
	StoreOperations    *prometheus.CounterVec
	BatchItems         *prometheus.CounterVec
}

// NewMetrics creates unregistered metrics; NewMetricsRegistry registers them.
func NewMetrics() *Metrics {
	return &Metrics{
		ConversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "enola",
				Name:      "conversions_total",
				Help:      "Conversions between Things and another representation",
			},
			[]string{"codec", "direction", "status"},
		),

		ConversionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "enola",
				Name:      "conversion_duration_seconds",
				Help:      "Time spent in a single conversion",
				Buckets:   []float64{.00001, .0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"codec", "direction"},
		),

		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "enola",
				Name:      "store_operations_total",
				Help:      "Thing store operations",
			},
			[]string{"backend", "operation", "status"},
		),

		BatchItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "enola",
				Subsystem: "pipeline",
				Name:      "items_total",
				Help:      "Items handled by batch conversions (ok, failed, skipped)",
			},
			[]string{"pipeline", "outcome"},
		),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.ConversionsTotal, m.ConversionDuration, m.StoreOperations, m.BatchItems}
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

// RecordConversion counts one conversion and observes its duration. A nil
// receiver records nothing, so callers can hold an optional *Metrics.
func (m *Metrics) RecordConversion(codec, direction string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(codec, direction, status(err)).Inc()
	m.ConversionDuration.WithLabelValues(codec, direction).Observe(time.Since(started).Seconds())
}

// RecordStoreOperation counts one store call.
func (m *Metrics) RecordStoreOperation(backend, operation string, err error) {
	if m == nil {
		return
	}
	m.StoreOperations.WithLabelValues(backend, operation, status(err)).Inc()
}

// RecordBatchItems adds n items with the given outcome.
func (m *Metrics) RecordBatchItems(pipeline, outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.BatchItems.WithLabelValues(pipeline, outcome).Add(float64(n))
}
