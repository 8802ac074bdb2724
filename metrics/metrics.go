package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "package_browser"

var (
	// HTTP API
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	}, []string{"method", "route", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Upstream packages API
	PackageFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "package_fetches_total",
		Help:      "Count of packages API calls by outcome.",
	}, []string{"outcome"})

	PackageFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "package_fetch_duration_seconds",
		Help:      "Latency of packages API calls.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	PackagesReturned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "packages_returned_total",
		Help:      "Number of packages returned by successful packages API calls.",
	})

	// Registry
	ApplicationsRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "applications_registered",
		Help:      "Number of applications currently registered.",
	})
)

// Fetch outcomes
const (
	OutcomeSuccess      = "success"
	OutcomeUnauthorized = "unauthorized"
	OutcomeForbidden    = "forbidden"
	OutcomeNotFound     = "not_found"
	OutcomeAPIError     = "api_error"
	OutcomeError        = "error"
)
