// Package metrics defines Prometheus metrics for property-search.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "psw"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Search metrics.
var (
	SearchValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_validation_failures_total",
		Help:      "Search requests rejected before reaching the upstream, by reason.",
	}, []string{"reason"})

	MockModeSearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mock_mode_searches_total",
		Help:      "Searches answered with the mock result because no credentials are configured.",
	})
)

// Boom API metrics.
var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boom_requests_total",
		Help:      "Boom listings requests by outcome.",
	}, []string{"outcome"})

	UpstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "boom_request_duration_seconds",
		Help:      "Duration of Boom listings requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boom_token_refreshes_total",
		Help:      "Boom access token requests by result.",
	}, []string{"result"})

	TokenInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boom_token_invalidations_total",
		Help:      "Boom access tokens dropped, by reason (unauthorized, expired).",
	}, []string{"reason"})
)
