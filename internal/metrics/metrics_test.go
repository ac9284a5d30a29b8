package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsInitialization(t *testing.T) {
	assert.NotNil(t, DispatchTotal)
	assert.NotNil(t, VectorWidthBits)
	assert.NotNil(t, BatchKeysTotal)
	assert.NotNil(t, BatchHitsTotal)
	assert.NotNil(t, BatchDurationSeconds)
	assert.NotNil(t, ParallelPartitionsTotal)
	assert.NotNil(t, ValidationErrorsTotal)
	assert.NotNil(t, ResultsPoolOperations)
}

func TestBatchKeysCounter(t *testing.T) {
	before := testutil.ToFloat64(BatchKeysTotal.WithLabelValues("metrics_test"))
	BatchKeysTotal.WithLabelValues("metrics_test").Add(42)
	assert.Equal(t, before+42, testutil.ToFloat64(BatchKeysTotal.WithLabelValues("metrics_test")))
}
