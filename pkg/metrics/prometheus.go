// Package metrics provides Prometheus metrics for the tabulator service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  prometheus.Registerer

	// Submission pipeline
	submissionsTotal  *prometheus.CounterVec
	submissionErrors  *prometheus.CounterVec
	malformedRowsSkip *prometheus.CounterVec

	// Recompute pipeline
	recomputeRuns     prometheus.Counter
	recomputeFailures prometheus.Counter
	recomputeDuration prometheus.Histogram
	lastRecomputeUnix prometheus.Gauge
	recomputeDropped  prometheus.Counter

	// Store state
	tableRows *prometheus.GaugeVec

	// Recompute queue
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager backed by a custom registry so default Go collectors
// do not leak into /healthz output.
var (
	globalManager  *Manager               //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry backing the singleton
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "tabulator",
		subsystem: "scoring",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.register()
	return m
}

func (m *Manager) register() {
	factory := promauto.With(m.registry)

	m.submissionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Score submissions accepted, by category.",
	}, []string{"category"})

	m.submissionErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submission_errors_total",
		Help:      "Score submissions rejected, by reason.",
	}, []string{"reason"})

	m.malformedRowsSkip = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_rows_skipped_total",
		Help:      "Stored rows skipped during aggregation, by category.",
	}, []string{"category"})

	m.recomputeRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_runs_total",
		Help:      "Completed overall recompute runs.",
	})

	m.recomputeFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_failures_total",
		Help:      "Failed overall recompute runs.",
	})

	m.recomputeDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_duration_seconds",
		Help:      "Wall time of a full overall rebuild.",
		Buckets:   m.buckets,
	})

	m.lastRecomputeUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_last_unix",
		Help:      "Unix time of the last successful overall rebuild.",
	})

	m.recomputeDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_requests_dropped_total",
		Help:      "Recompute requests dropped due to queue backpressure.",
	})

	m.tableRows = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_rows",
		Help:      "Data rows currently stored, by category table.",
	}, []string{"category"})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_queue_size",
		Help:      "Recompute requests waiting in the queue.",
	})

	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_queue_capacity",
		Help:      "Configured capacity of the recompute queue.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by endpoint and method.",
		Buckets:   m.buckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the registry backing the global manager for
// serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

func RecordSubmission(category string) {
	globalManager.submissionsTotal.WithLabelValues(category).Inc()
}

func RecordSubmissionError(reason string) {
	globalManager.submissionErrors.WithLabelValues(reason).Inc()
}

func RecordMalformedRow(category string) {
	globalManager.malformedRowsSkip.WithLabelValues(category).Inc()
}

func RecordRecomputeRun(seconds float64) {
	globalManager.recomputeRuns.Inc()
	globalManager.recomputeDuration.Observe(seconds)
}

func RecordRecomputeFailure() {
	globalManager.recomputeFailures.Inc()
}

func UpdateLastRecompute(unix float64) {
	globalManager.lastRecomputeUnix.Set(unix)
}

func RecordRecomputeDropped() {
	globalManager.recomputeDropped.Inc()
}

func UpdateTableRows(category string, n int) {
	globalManager.tableRows.WithLabelValues(category).Set(float64(n))
}

func UpdateQueueSize(n int) {
	globalManager.queueSize.Set(float64(n))
}

func UpdateQueueCapacity(n int) {
	globalManager.queueCapacity.Set(float64(n))
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}
