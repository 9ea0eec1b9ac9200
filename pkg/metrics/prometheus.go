// Package metrics provides Prometheus metrics for the pick'em scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pick submission metrics
	picksAccepted  prometheus.Counter
	picksRejected  prometheus.Counter
	picksLocked    prometheus.Counter
	recalcDupes    prometheus.Counter

	// Scoring metrics
	scoresComputed prometheus.Counter
	scoringErrors  prometheus.Counter
	scoringLatency prometheus.Histogram

	// Store gauges
	trackedEvents prometheus.Gauge
	trackedPicks  prometheus.Gauge
	trackedScores prometheus.Gauge

	// Queue metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueEnqueueErrs prometheus.Counter

	// Worker metrics
	workerCount   prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager on a custom registry so /healthz only exposes our
// own metrics.
var (
	globalManager  *Manager             //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rumble",
		subsystem:        "pickem",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.picksAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "picks_accepted_total",
		Help:      "Total number of pick payloads accepted and stored",
	})
	m.picksRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "picks_rejected_total",
		Help:      "Total number of pick payloads rejected by validation",
	})
	m.picksLocked = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "picks_locked_total",
		Help:      "Total number of pick submissions refused because the event was locked",
	})
	m.recalcDupes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recalc_duplicate_total",
		Help:      "Total number of recalculation requests collapsed as already queued",
	})

	m.scoresComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_computed_total",
		Help:      "Total number of score rows computed and upserted",
	})
	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of failed score computations",
	})
	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of score computation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.trackedEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_events",
		Help:      "Number of events currently stored",
	})
	m.trackedPicks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_picks",
		Help:      "Number of pick payloads currently stored",
	})
	m.trackedScores = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_scores",
		Help:      "Number of score rows currently stored",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of queued recalculation jobs",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Capacity of the recalculation job queue",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization",
		Help:      "Queue utilization ratio (0.0 to 1.0)",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_total",
		Help:      "Total number of jobs enqueued",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeue_total",
		Help:      "Total number of jobs dequeued",
	})
	m.queueEnqueueErrs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Total number of failed enqueue attempts",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of recalculation workers",
	})
	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Histogram of per-job worker processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of worker processing errors",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level recording helpers on the global manager.

func RecordPickAccepted() { globalManager.picksAccepted.Inc() }
func RecordPickRejected() { globalManager.picksRejected.Inc() }
func RecordPickLocked()   { globalManager.picksLocked.Inc() }

func RecordRecalcDuplicate() { globalManager.recalcDupes.Inc() }

func RecordScoreComputed() { globalManager.scoresComputed.Inc() }
func RecordScoringError()  { globalManager.scoringErrors.Inc() }

func RecordScoringLatency(ms float64) { globalManager.scoringLatency.Observe(ms) }

func UpdateTrackedEvents(n int) { globalManager.trackedEvents.Set(float64(n)) }
func UpdateTrackedPicks(n int)  { globalManager.trackedPicks.Set(float64(n)) }
func UpdateTrackedScores(n int) { globalManager.trackedScores.Set(float64(n)) }

func UpdateQueueSize(n int)            { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)        { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64) { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueue()              { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueErrs.Inc() }

func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerProcessingLatency(ms float64) {
	globalManager.workerLatency.Observe(ms)
}
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordHTTPRequest increments the request counter for an endpoint.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes the request duration for an endpoint.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
