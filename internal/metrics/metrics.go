package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight board
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Upstream Metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamFailuresTotal   *prometheus.CounterVec

	// Cache Metrics
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	CacheEvictionsTotal *prometheus.CounterVec
	CacheEntries        *prometheus.GaugeVec

	// Business Metrics
	FlightsReconciledTotal *prometheus.CounterVec
	ReconcileDuration      prometheus.Histogram
}

var (
	defaultOnce     sync.Once
	defaultRegistry *MetricsRegistry
)

// Default returns the process-wide registry registered with the default Prometheus registerer
func Default() *MetricsRegistry {
	defaultOnce.Do(func() {
		defaultRegistry = NewMetricsRegistry(prometheus.DefaultRegisterer)
	})
	return defaultRegistry
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightboard_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightboard_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Upstream Metrics
		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_upstream_requests_total",
				Help: "Total calls to the airport flight status API by airport and outcome",
			},
			[]string{"airport", "outcome"},
		),
		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightboard_upstream_request_duration_seconds",
				Help:    "Airport flight status API latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
			},
			[]string{"airport"},
		),
		UpstreamFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_upstream_failures_total",
				Help: "Upstream failures degraded to empty feeds, by airport and error code",
			},
			[]string{"airport", "error_code"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_cache_hits_total",
				Help: "Total cache hits by cache layer",
			},
			[]string{"layer"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_cache_misses_total",
				Help: "Total cache misses by cache layer",
			},
			[]string{"layer"},
		),
		CacheEvictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_cache_evictions_total",
				Help: "Total LRU evictions by cache layer",
			},
			[]string{"layer"},
		),
		CacheEntries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightboard_cache_entries",
				Help: "Current number of cached feeds",
			},
			[]string{"layer"},
		),

		// Business Metrics
		FlightsReconciledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_flights_reconciled_total",
				Help: "Total flight records reconciled by resulting lifecycle state",
			},
			[]string{"state"},
		),
		ReconcileDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flightboard_reconcile_duration_seconds",
				Help:    "Time spent fetching and reconciling one board",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
		),
	}
}
