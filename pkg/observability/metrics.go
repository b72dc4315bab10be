// Package observability exposes the Prometheus metrics of the admin backend.
package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Form and submission metrics
	SubmissionsTotal   *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	EmptyChangesets    prometheus.Counter

	// Upstream metrics
	UpstreamCalls *prometheus.CounterVec
}

// NewCollector creates the metrics collector for the given namespace. A
// process-wide singleton avoids duplicate registration in tests.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	submissionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Total number of form submissions by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	validationFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_validation_failures_total",
			Help:      "Total number of form submissions rejected by validation",
		},
		[]string{"entity"},
	)

	emptyChangesets := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_changesets_total",
			Help:      "Edit submissions short-circuited because nothing changed",
		},
	)

	upstreamCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Total number of municipal API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	registry.MustRegister(httpRequests, httpDuration, submissionsTotal,
		validationFailures, emptyChangesets, upstreamCalls)

	globalCollector = &Collector{
		registry:           registry,
		HTTPRequests:       httpRequests,
		HTTPDuration:       httpDuration,
		SubmissionsTotal:   submissionsTotal,
		ValidationFailures: validationFailures,
		EmptyChangesets:    emptyChangesets,
		UpstreamCalls:      upstreamCalls,
	}
	return globalCollector
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordSubmission counts one submission outcome for an entity.
func (c *Collector) RecordSubmission(entity, outcome string) {
	c.SubmissionsTotal.WithLabelValues(entity, outcome).Inc()
}

// RecordValidationFailure counts one validation rejection for an entity.
func (c *Collector) RecordValidationFailure(entity string) {
	c.ValidationFailures.WithLabelValues(entity).Inc()
}
