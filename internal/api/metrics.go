package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Conversion outcomes by status ("ok", "bad_request", "error")
	Conversions *prometheus.CounterVec

	// Request latency by route pattern and status code
	RequestDuration *prometheus.HistogramVec

	// Time spent computing and storing uncovered years
	PrecomputeDuration prometheus.Histogram
}

// NewMetrics creates and registers all API metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Conversions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lunisolar_conversions_total",
			Help: "Total lunisolar conversions by outcome",
		}, []string{"status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lunisolar_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),

		PrecomputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lunisolar_precompute_duration_seconds",
			Help:    "Duration of event precompute runs",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// IncrementConversion records a conversion outcome.
func (m *Metrics) IncrementConversion(status string) {
	if m != nil {
		m.Conversions.WithLabelValues(status).Inc()
	}
}

// ObserveRequest records one request's duration.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// ObservePrecompute records the duration of a precompute run.
func (m *Metrics) ObservePrecompute(d time.Duration) {
	if m != nil {
		m.PrecomputeDuration.Observe(d.Seconds())
	}
}
