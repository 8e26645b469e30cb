// Package metrics holds Prometheus instruments that are used across the
// runtime.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for AdapterRequestsTotal.
const (
	OutcomeRendered = "rendered"
	OutcomeStatic   = "static"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	AdapterRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_requests_total",
			Help: "Platform invocations handled, by adapter and outcome.",
		}, []string{"adapter", "outcome"})

	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adapter_render_duration_seconds",
			Help:    "Time spent in match + render + cookie reconciliation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"adapter"})

	MarkdownRendersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "markdown_renders_total",
			Help: "Markdown documents converted (cache misses).",
		})

	MarkdownCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "markdown_cache_hits_total",
			Help: "Markdown documents served from the output cache.",
		})
)

func init() {
	prometheus.MustRegister(
		AdapterRequestsTotal,
		RenderDuration,
		MarkdownRendersTotal,
		MarkdownCacheHitsTotal,
	)
}
