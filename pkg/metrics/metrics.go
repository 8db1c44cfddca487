// Package metrics provides Prometheus instrumentation for LuxeWheels.
//
// It pre-defines the counters and histograms the fleet engine reports and
// gives you helpers to register your own custom metrics. The scrape
// endpoint is served by the schedule:run worker:
//
//	mux.Handle("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in fleet metrics
// ─────────────────────────────────────────────

var (
	// FleetWrites counts vehicle columns rewritten by a refresh pass,
	// broken down by which field changed.
	FleetWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "luxewheels",
			Subsystem: "fleet",
			Name:      "writes_total",
			Help:      "Vehicle fields rewritten during availability refresh.",
		},
		[]string{"field"}, // "available" | "category"
	)

	// RefreshRuns counts refresh passes by outcome.
	RefreshRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "luxewheels",
			Subsystem: "fleet",
			Name:      "refresh_runs_total",
			Help:      "Total availability refresh passes.",
		},
		[]string{"status"}, // "success" | "failed"
	)

	// RefreshDuration tracks how long a full refresh pass takes.
	RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "luxewheels",
			Subsystem: "fleet",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of availability refresh passes in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ListingDuration tracks catalogue query latency by tier.
	ListingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "luxewheels",
			Subsystem: "listing",
			Name:      "browse_duration_seconds",
			Help:      "Duration of catalogue browse queries in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"tier"},
	)

	// RentalActions counts booking lifecycle operations by outcome.
	RentalActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "luxewheels",
			Subsystem: "rental",
			Name:      "actions_total",
			Help:      "Total booking lifecycle operations.",
		},
		[]string{"action", "status"}, // action: "book" | "alter" | "cancel"
	)

	// CacheHits / CacheMisses track facet cache effectiveness.
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "luxewheels",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "luxewheels",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by LuxeWheels.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		FleetWrites,
		RefreshRuns,
		RefreshDuration,
		ListingDuration,
		RentalActions,
		CacheHits,
		CacheMisses,
	)
}

// Register adds your own prometheus.Collector to the LuxeWheels registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// Custom metric constructors
// ─────────────────────────────────────────────

// NewCounter creates and registers a Counter with the given name and labels.
func NewCounter(namespace, name, help string, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	DefaultRegistry.MustRegister(c)
	return c
}

// NewHistogram creates and registers a Histogram with the given name and labels.
func NewHistogram(namespace, name, help string, buckets []float64, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	DefaultRegistry.MustRegister(h)
	return h
}

// NewGauge creates and registers a Gauge.
func NewGauge(namespace, name, help string, labels []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	DefaultRegistry.MustRegister(g)
	return g
}

// ─────────────────────────────────────────────
// /metrics endpoint handler
// ─────────────────────────────────────────────

// Handler exposes the Prometheus metrics page. The worker mounts it on
// GET /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ─────────────────────────────────────────────
// Helpers for app code
// ─────────────────────────────────────────────

// ObserveRefresh records a refresh pass with a simple timer:
//
//	defer metrics.ObserveRefresh(time.Now())
func ObserveRefresh(start time.Time) {
	RefreshDuration.Observe(time.Since(start).Seconds())
}

// RecordRental records a booking lifecycle outcome.
func RecordRental(action, status string) {
	RentalActions.WithLabelValues(action, status).Inc()
}
