// Package metrics exposes Prometheus instrumentation for the API client.
// Recording is observational only and never influences request handling.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts completed API calls by method and HTTP status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opca_api_requests_total",
			Help: "Total OPCA API requests by method and status code",
		},
		[]string{"method", "status"},
	)

	// APIRequestDuration tracks API call latency in seconds.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opca_api_request_duration_seconds",
			Help:    "OPCA API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	// APIRequestFailures counts calls that never produced a response,
	// by failure class (connectivity, construction).
	APIRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opca_api_request_failures_total",
			Help: "OPCA API requests that produced no response, by failure class",
		},
		[]string{"reason"},
	)
)

// ObserveRequest records one completed request that received a response.
func ObserveRequest(method string, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, status).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
