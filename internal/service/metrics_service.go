package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the viewer.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	catalogLookups  *prometheus.CounterVec
	catalogHitRatio prometheus.Gauge
	catalogLoad     *prometheus.HistogramVec
	catalogRows     prometheus.Gauge
	snapshotLatency *prometheus.HistogramVec
	filterResults   prometheus.Histogram
	exportTotal     *prometheus.CounterVec

	catalogHitCount  uint64
	catalogMissCount uint64
}

// MetricsSnapshot is a point-in-time summary of catalog cache behaviour.
type MetricsSnapshot struct {
	CatalogHits     uint64    `json:"catalog_hits"`
	CatalogMisses   uint64    `json:"catalog_misses"`
	CatalogHitRatio float64   `json:"catalog_hit_ratio"`
	Goroutines      int       `json:"goroutines"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// NewMetricsService registers the viewer's Prometheus collectors.
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

	catalogLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_lookups_total",
		Help: "Catalog cache lookups by result",
	}, []string{"result"})

	catalogHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_cache_hit_ratio",
		Help: "Ratio of catalog cache hits to total lookups",
	})

	catalogLoad := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of catalog loads from their source",
		Buckets: prometheus.DefBuckets,
	}, []string{"source", "outcome"})

	catalogRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_rows",
		Help: "Number of courses in the most recently loaded catalog",
	})

	snapshotLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_snapshot_lookup_seconds",
		Help:    "Latency of shared snapshot lookups",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})

	filterResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_filter_result_rows",
		Help:    "Number of rows returned by catalog filters",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	exportTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_exports_total",
		Help: "Rendered catalog downloads by format",
	}, []string{"format"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, catalogLookups, catalogHitRatio, catalogLoad, catalogRows, snapshotLatency, filterResults, exportTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		catalogLookups:  catalogLookups,
		catalogHitRatio: catalogHitRatio,
		catalogLoad:     catalogLoad,
		catalogRows:     catalogRows,
		snapshotLatency: snapshotLatency,
		filterResults:   filterResults,
		exportTotal:     exportTotal,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCatalogLookup records an in-process cache hit or miss and updates the hit ratio.
func (m *MetricsService) RecordCatalogLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.catalogLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.catalogHitCount, 1)
	} else {
		m.catalogLookups.WithLabelValues("miss").Inc()
		atomic.AddUint64(&m.catalogMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.catalogHitCount)
	total := hits + atomic.LoadUint64(&m.catalogMissCount)
	if total > 0 {
		m.catalogHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCatalogLoad records one source load.
func (m *MetricsService) ObserveCatalogLoad(source string, rows int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	} else {
		m.catalogRows.Set(float64(rows))
	}
	m.catalogLoad.WithLabelValues(source, outcome).Observe(duration.Seconds())
}

// ObserveSnapshotLookup records a shared snapshot lookup.
func (m *MetricsService) ObserveSnapshotLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.snapshotLatency.WithLabelValues(result).Observe(duration.Seconds())
}

// ObserveFilterResult records the size of a filtered view.
func (m *MetricsService) ObserveFilterResult(rows int) {
	if m == nil {
		return
	}
	m.filterResults.Observe(float64(rows))
}

// RecordExport counts a rendered download.
func (m *MetricsService) RecordExport(format string) {
	if m == nil {
		return
	}
	m.exportTotal.WithLabelValues(format).Inc()
}

// Snapshot returns aggregated catalog cache counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.catalogHitCount)
	misses := atomic.LoadUint64(&m.catalogMissCount)
	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	return MetricsSnapshot{
		CatalogHits:     hits,
		CatalogMisses:   misses,
		CatalogHitRatio: ratio,
		Goroutines:      runtime.NumGoroutine(),
		GeneratedAt:     time.Now().UTC(),
	}
}
