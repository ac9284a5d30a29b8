// Package column runs the batch kernels over Arrow integer columns, the
// layout columnar engines hand to a lookup: a sorted dictionary or index
// column and a column of probe keys.
package column

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/23skdu/branchless/internal/bsearch"
	"github.com/23skdu/branchless/internal/errors"
	"github.com/23skdu/branchless/internal/metrics"
	"github.com/23skdu/branchless/internal/pool"
)

// Options controls a column lookup.
type Options struct {
	Strategy bsearch.Strategy
	// VerifySorted checks the sorted column before searching. It costs one
	// pass over the column.
	VerifySorted bool
}

// SearchInt32 searches sorted for every value of keys. The result has one
// entry per key: the position in sorted, ^insertionPoint when absent, or
// null when the key is null. sorted must not contain nulls.
func SearchInt32(mem memory.Allocator, sorted, keys *array.Int32, opts Options) (*array.Int64, error) {
	return search(mem, "column.SearchInt32", sorted, sorted.Int32Values(), keys, keys.Int32Values(), opts)
}

// SearchInt64 is SearchInt32 for int64 columns.
func SearchInt64(mem memory.Allocator, sorted, keys *array.Int64, opts Options) (*array.Int64, error) {
	return search(mem, "column.SearchInt64", sorted, sorted.Int64Values(), keys, keys.Int64Values(), opts)
}

func search[T bsearch.Signed](mem memory.Allocator, op string, sortedArr arrow.Array, sorted []T, keysArr arrow.Array, keys []T, opts Options) (*array.Int64, error) {
	if n := sortedArr.NullN(); n > 0 {
		metrics.ValidationErrorsTotal.WithLabelValues(op).Inc()
		return nil, errors.NewValidationError(op, fmt.Sprintf("sorted column has %d nulls", n))
	}
	if opts.VerifySorted {
		if i := unsortedAt(sorted); i >= 0 {
			metrics.ValidationErrorsTotal.WithLabelValues(op).Inc()
			return nil, errors.NewValidationError(op, "sorted column is not ascending").
				WithContext("index", i)
		}
	}

	strategy := opts.Strategy.Resolve()
	buf := pool.GetResults(len(keys))
	defer pool.PutResults(buf)
	results := *buf
	bsearch.SearchAll(strategy, sorted, 0, len(sorted), keys, 0, len(keys), results)

	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.Reserve(len(results))
	hits := 0
	for i, r := range results {
		if keysArr.IsNull(i) {
			b.AppendNull()
			continue
		}
		if r >= 0 {
			hits++
		}
		b.UnsafeAppend(int64(r))
	}

	label := strategy.String()
	metrics.BatchKeysTotal.WithLabelValues(label).Add(float64(len(keys)))
	metrics.BatchHitsTotal.WithLabelValues(label).Add(float64(hits))
	return b.NewInt64Array(), nil
}

// unsortedAt returns the first index i with a[i-1] > a[i], or -1.
func unsortedAt[T bsearch.Signed](a []T) int {
	for i := 1; i < len(a); i++ {
		if a[i-1] > a[i] {
			return i
		}
	}
	return -1
}
