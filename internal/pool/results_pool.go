// Package pool recycles result buffers between batch searches.
package pool

import (
	"sync"

	"github.com/23skdu/branchless/internal/metrics"
)

// ResultsPool pools []int result buffers for callers that need a scratch
// buffer per batch and copy the results out afterwards.
type ResultsPool struct {
	pool sync.Pool
}

var globalResultsPool = NewResultsPool()

// NewResultsPool creates an empty pool.
func NewResultsPool() *ResultsPool {
	return &ResultsPool{
		pool: sync.Pool{
			New: func() any {
				return new([]int)
			},
		},
	}
}

// GetResults retrieves a buffer of length n from the global pool.
func GetResults(n int) *[]int {
	return globalResultsPool.Get(n)
}

// PutResults returns a buffer to the global pool.
func PutResults(buf *[]int) {
	globalResultsPool.Put(buf)
}

// Get retrieves a buffer of length n. Its contents are unspecified.
func (p *ResultsPool) Get(n int) *[]int {
	buf := p.pool.Get().(*[]int)
	if cap(*buf) < n {
		metrics.ResultsPoolOperations.WithLabelValues("grow").Inc()
		*buf = make([]int, n)
	} else {
		metrics.ResultsPoolOperations.WithLabelValues("reuse").Inc()
		*buf = (*buf)[:n]
	}
	return buf
}

// Put returns a buffer to the pool.
func (p *ResultsPool) Put(buf *[]int) {
	if buf == nil {
		return
	}
	*buf = (*buf)[:0]
	p.pool.Put(buf)
}
