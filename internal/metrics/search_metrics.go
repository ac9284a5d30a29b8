package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Batch Search Metrics
// =============================================================================

var (
	// BatchKeysTotal counts keys searched through the checked entry points
	BatchKeysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "branchless_batch_keys_total",
			Help: "Total number of keys searched by strategy",
		},
		[]string{"strategy"},
	)

	// BatchHitsTotal counts keys that were found
	BatchHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "branchless_batch_hits_total",
			Help: "Total number of keys found by strategy",
		},
		[]string{"strategy"},
	)

	// BatchDurationSeconds measures end-to-end batch latency
	BatchDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "branchless_batch_duration_seconds",
			Help:    "Latency of batch searches by strategy",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
		[]string{"strategy"},
	)

	// ParallelPartitionsTotal counts key partitions handed to workers
	ParallelPartitionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "branchless_parallel_partitions_total",
			Help: "Total number of key partitions searched by parallel workers",
		},
	)

	// ValidationErrorsTotal counts rejected calls by operation
	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "branchless_validation_errors_total",
			Help: "Total number of calls rejected by input validation",
		},
		[]string{"operation"},
	)

	// ResultsPoolOperations counts result buffer pool gets by outcome
	ResultsPoolOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "branchless_results_pool_operations_total",
			Help: "Total number of result buffer pool gets by outcome (reuse, grow)",
		},
		[]string{"outcome"},
	)
)
