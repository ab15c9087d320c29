package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the API server. A dedicated
// registry keeps the handler free of the default global collectors.
type Metrics struct {
	registry *prometheus.Registry

	CalculationsTotal  prometheus.Counter
	CalculationErrors  prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
	ActiveSessionsSeen prometheus.Gauge
}

// NewMetrics creates and registers the server instruments.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		CalculationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abacus_calculations_total",
			Help: "Total number of expressions evaluated.",
		}),
		CalculationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abacus_calculation_errors_total",
			Help: "Total number of evaluations that failed.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "abacus_http_request_duration_seconds",
			Help:    "Latency of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		ActiveSessionsSeen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "abacus_sessions_active",
			Help: "Number of sessions currently stored.",
		}),
	}

	registry.MustRegister(
		m.CalculationsTotal,
		m.CalculationErrors,
		m.RequestDuration,
		m.ActiveSessionsSeen,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
