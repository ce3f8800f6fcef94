// Package metrics provides Prometheus metrics for the community site service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Dataset loading
	datasetLoads       *prometheus.CounterVec
	datasetLoadLatency *prometheus.HistogramVec
	datasetRecords     *prometheus.GaugeVec
	bootstrapDuration  prometheus.Histogram
	bootstrapLastUnix  prometheus.Gauge

	// Donations
	donationsAccepted   prometheus.Counter
	donationsRejected   *prometheus.CounterVec
	donationsDuplicate  prometheus.Counter
	donationRaisedTotal prometheus.Gauge
	donationDonorCount  prometheus.Gauge
	leaderboardSize     prometheus.Gauge

	// Countdown
	countdownTicks       prometheus.Counter
	countdownRestarts    prometheus.Counter
	countdownSubscribers prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByComponent   *prometheus.CounterVec

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton manager used by package-level recorders

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "aikyam",
		subsystem:        "site",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.datasetLoads = m.counterVec("dataset_loads_total", "Dataset load attempts by dataset and outcome", "dataset", "outcome")
	m.datasetLoadLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_latency_milliseconds",
		Help:        "Dataset fetch and decode latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"dataset"})
	m.datasetRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_records",
		Help:        "Number of records currently served per dataset",
		ConstLabels: m.customLabels,
	}, []string{"dataset"})
	m.bootstrapDuration = m.histogram("bootstrap_duration_milliseconds", "Time until every dataset load settled", m.histogramBuckets)
	m.bootstrapLastUnix = m.gauge("bootstrap_last_unix", "Unix timestamp of the last completed bootstrap")

	m.donationsAccepted = m.counter("donations_accepted_total", "Donations applied to the ledger")
	m.donationsRejected = m.counterVec("donations_rejected_total", "Donations rejected before reaching the ledger", "reason")
	m.donationsDuplicate = m.counter("donations_duplicate_total", "Donation resubmissions ignored by idempotency key")
	m.donationRaisedTotal = m.gauge("donation_raised_total", "Amount raised in this session")
	m.donationDonorCount = m.gauge("donation_donor_count", "Number of donors in this session")
	m.leaderboardSize = m.gauge("leaderboard_size", "Entries on the donor leaderboard")

	m.countdownTicks = m.counter("countdown_ticks_total", "Countdown ticks published")
	m.countdownRestarts = m.counter("countdown_restarts_total", "Countdown timer (re)starts")
	m.countdownSubscribers = m.gauge("countdown_subscribers", "Open countdown stream connections")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint", "endpoint", "method", "error_type")
	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")

	m.queueSize = m.gauge("queue_size", "Donations waiting to be applied")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum donation queue capacity")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Donations enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Donations dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Donations refused by the queue")

	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time to apply one donation", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Donations the worker failed to apply")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "Average GC pause in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100})
}

// Dataset metrics.

// RecordDatasetLoad counts a load attempt; outcome is "ok" or "fallback".
func RecordDatasetLoad(dataset, outcome string) {
	globalManager.datasetLoads.WithLabelValues(dataset, outcome).Inc()
}

// RecordDatasetLoadLatency observes fetch+decode latency.
func RecordDatasetLoadLatency(dataset string, latencyMs float64) {
	globalManager.datasetLoadLatency.WithLabelValues(dataset).Observe(latencyMs)
}

// UpdateDatasetRecords sets the record count currently served for dataset.
func UpdateDatasetRecords(dataset string, count int) {
	globalManager.datasetRecords.WithLabelValues(dataset).Set(float64(count))
}

// RecordBootstrap observes a completed bootstrap.
func RecordBootstrap(duration time.Duration) {
	globalManager.bootstrapDuration.Observe(float64(duration.Milliseconds()))
	globalManager.bootstrapLastUnix.Set(float64(time.Now().Unix()))
}

// Donation metrics.

// RecordDonationAccepted counts a donation applied to the ledger.
func RecordDonationAccepted() { globalManager.donationsAccepted.Inc() }

// RecordDonationRejected counts a rejected donation by reason.
func RecordDonationRejected(reason string) {
	globalManager.donationsRejected.WithLabelValues(reason).Inc()
}

// RecordDonationDuplicate counts an ignored resubmission.
func RecordDonationDuplicate() { globalManager.donationsDuplicate.Inc() }

// UpdateDonationTotals mirrors the ledger totals.
func UpdateDonationTotals(raised float64, donors int) {
	globalManager.donationRaisedTotal.Set(raised)
	globalManager.donationDonorCount.Set(float64(donors))
}

// UpdateLeaderboardSize sets the number of leaderboard entries.
func UpdateLeaderboardSize(n int) { globalManager.leaderboardSize.Set(float64(n)) }

// Countdown metrics.

// RecordCountdownTick counts one published countdown display.
func RecordCountdownTick() { globalManager.countdownTicks.Inc() }

// RecordCountdownRestart counts a timer (re)start.
func RecordCountdownRestart() { globalManager.countdownRestarts.Inc() }

// AddCountdownSubscribers adjusts the open stream gauge by delta.
func AddCountdownSubscribers(delta int) {
	globalManager.countdownSubscribers.Add(float64(delta))
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByComponent records an error raised inside a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// Queue metrics.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// Worker metrics.

// RecordWorkerProcessingLatency records how long one donation took to apply.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// System metrics.

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
