// Package metrics exposes the Prometheus collectors shared across the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agripoulet_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agripoulet_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// DocumentSavesTotal counts persistence flushes by outcome.
	DocumentSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agripoulet_document_saves_total",
		Help: "Document persistence flushes by outcome (ok|error).",
	}, []string{"outcome"})

	// DocumentMutationsTotal counts applied in-memory mutations.
	DocumentMutationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agripoulet_document_mutations_total",
		Help: "Total number of applied document mutations.",
	})
)
