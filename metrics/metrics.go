// Package metrics provides Prometheus metrics for the HTTP server and the
// interaction queries it serves:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - rate_limiter_buckets_total: Gauge of tracked rate limit clients
//   - query_total: Counter with operation and outcome labels
//   - catalog_entries: Gauge with kind label (drugs, symptoms)
//   - health_status: Gauge, 1 healthy, 0.5 degraded, 0 unhealthy
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (clients currently tracked)",
		},
	)

	QueryTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_total",
			Help: "Interaction engine queries by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CatalogEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_entries",
			Help: "Number of catalog records by kind",
		},
		[]string{"kind"},
	)

	HealthStatus = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "health_status",
			Help: "Last health snapshot: 1 healthy, 0.5 degraded, 0 unhealthy",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(QueryTotals)
	prometheus.MustRegister(CatalogEntries)
	prometheus.MustRegister(HealthStatus)
}

// RecordQuery counts one engine query
func RecordQuery(operation, outcome string) {
	QueryTotals.WithLabelValues(operation, outcome).Inc()
}

// SetCatalogSize publishes the catalog record counts
func SetCatalogSize(drugs, symptoms int) {
	CatalogEntries.WithLabelValues("drugs").Set(float64(drugs))
	CatalogEntries.WithLabelValues("symptoms").Set(float64(symptoms))
}

// SetHealthStatus mirrors a health status label to the gauge
func SetHealthStatus(status string) {
	switch status {
	case "healthy":
		HealthStatus.Set(1)
	case "degraded":
		HealthStatus.Set(0.5)
	default:
		HealthStatus.Set(0)
	}
}
