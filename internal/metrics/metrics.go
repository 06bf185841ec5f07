package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the ingest pipeline. These complement the JSON
// snapshot served by /api/metrics; the Counters struct remains the source of
// truth for that endpoint.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_http_requests_total",
		Help: "Total HTTP requests by method, path, and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dataset_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	RecordsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_records_received_total",
		Help: "Records that reached the normalization stage, valid or not",
	})

	RecordsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_records_saved_total",
		Help: "Records successfully appended to the dataset log",
	})

	RecordsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_records_skipped_total",
		Help: "Records skipped as recent duplicates",
	})

	RecordsInvalidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_records_invalid_total",
		Help: "Records rejected by validation",
	})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter",
	})

	WriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_write_errors_total",
		Help: "Failed appends to the dataset log",
	})

	DedupCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_dedup_cache_entries",
		Help: "Current number of entries in the dedup cache",
	})
)
