// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the aibackend service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for completion latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method, status class, and route pattern.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aibackend_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "route"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route pattern.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aibackend_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "route"},
	)

	// RequestsInFlight tracks the number of requests currently being served.
	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "aibackend_requests_in_flight",
			Help: "Requests in flight",
		},
	)

	// ProviderRequestsTotal counts requests sent to the completion backend.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aibackend_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	// ProviderLatency records completion backend latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aibackend_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// ProviderTokensTotal counts tokens processed by direction (input/output).
	ProviderTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aibackend_provider_tokens_total",
			Help: "Token count",
		},
		[]string{"provider", "model", "direction"},
	)

	// AIOperationsTotal counts AI endpoint operations by name and outcome.
	AIOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aibackend_ai_operations_total",
			Help: "AI operations",
		},
		[]string{"operation", "outcome"},
	)

	// ItemsStored reports the number of items currently held in the item store.
	ItemsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "aibackend_items_stored",
			Help: "Items currently stored",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		RequestsInFlight,
		ProviderRequestsTotal,
		ProviderLatency,
		ProviderTokensTotal,
		AIOperationsTotal,
		ItemsStored,
	)
}
