package service

import (
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mindbuilders/dtmms/internal/store"
)

// MetricsSnapshot is a JSON friendly summary of the collected metrics.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	StorageOpsTotal          uint64    `json:"storageOpsTotal"`
	StorageErrorsTotal       uint64    `json:"storageErrorsTotal"`
	CorruptReadsTotal        uint64    `json:"corruptReadsTotal"`
	AverageStorageDurationMs float64   `json:"averageStorageDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// MetricsService owns the Prometheus registry. It records HTTP traffic and,
// as a store.Observer, every storage read and write.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storageDuration *prometheus.HistogramVec
	storageErrors   *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	storageCount         uint64
	storageDurationTotal uint64
	storageErrorCount    uint64
	corruptCount         uint64
}

var _ store.Observer = (*MetricsService)(nil)

func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dtmms_storage_operation_duration_seconds",
		Help:    "Duration of key-value storage operations",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"op", "key"})

	storageErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dtmms_storage_errors_total",
		Help: "Failed storage operations by kind",
	}, []string{"op", "key", "kind"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storageDuration, storageErrors, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storageDuration: storageDuration,
		storageErrors:   storageErrors,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveStorage implements store.Observer.
func (m *MetricsService) ObserveStorage(op, key string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storageDuration.WithLabelValues(op, key).Observe(duration.Seconds())
	atomic.AddUint64(&m.storageCount, 1)
	atomic.AddUint64(&m.storageDurationTotal, uint64(duration.Nanoseconds()))
	if err == nil {
		return
	}

	kind := "medium"
	var corrupt *store.CorruptDataError
	if errors.As(err, &corrupt) {
		kind = "corrupt"
		atomic.AddUint64(&m.corruptCount, 1)
	}
	m.storageErrors.WithLabelValues(op, key, kind).Inc()
	atomic.AddUint64(&m.storageErrorCount, 1)
}

// Snapshot returns aggregated metrics suitable for the health endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	ops := atomic.LoadUint64(&m.storageCount)
	opsDuration := atomic.LoadUint64(&m.storageDurationTotal)

	snapshot := MetricsSnapshot{
		RequestsTotal:      requests,
		StorageOpsTotal:    ops,
		StorageErrorsTotal: atomic.LoadUint64(&m.storageErrorCount),
		CorruptReadsTotal:  atomic.LoadUint64(&m.corruptCount),
		Goroutines:         runtime.NumGoroutine(),
		GeneratedAt:        time.Now().UTC(),
	}
	if requests > 0 {
		snapshot.AverageRequestDurationMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	if ops > 0 {
		snapshot.AverageStorageDurationMs = float64(opsDuration) / float64(ops) / float64(time.Millisecond)
	}
	return snapshot
}
