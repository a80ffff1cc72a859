package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reports_computed_total",
		Help: "Total number of analytics reports computed",
	})

	ReportsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_failed_total",
		Help: "Total number of failed report runs",
	}, []string{"reason"})

	ReportComputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_compute_latency_seconds",
		Help:    "Latency of full report computation runs",
		Buckets: prometheus.DefBuckets,
	})

	SnapshotLoadLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snapshot_load_latency_seconds",
		Help:    "Latency of ledger snapshot loads",
		Buckets: prometheus.DefBuckets,
	})

	SnapshotRowsLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "snapshot_rows_loaded",
		Help: "Rows loaded from the ledger per table in the last snapshot",
	}, []string{"table"})

	RecordsExcludedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "records_excluded_total",
		Help: "Raw records excluded during normalization, by reason",
	}, []string{"reason"})

	ReportCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_cache_hits_total",
		Help: "Report lookups served from the result cache",
	})

	ReportCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_cache_misses_total",
		Help: "Report lookups that required a fresh computation",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
