package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsPoolLength(t *testing.T) {
	p := NewResultsPool()

	buf := p.Get(100)
	require.Len(t, *buf, 100)
	p.Put(buf)

	small := p.Get(10)
	assert.Len(t, *small, 10)
	p.Put(small)

	big := p.Get(1000)
	assert.Len(t, *big, 1000)
	p.Put(big)
}

func TestResultsPoolPutNil(t *testing.T) {
	p := NewResultsPool()
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestGlobalResults(t *testing.T) {
	buf := GetResults(8)
	assert.Len(t, *buf, 8)
	(*buf)[7] = 1
	PutResults(buf)
}

func BenchmarkResultsPool(b *testing.B) {
	p := NewResultsPool()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := p.Get(1024)
		p.Put(buf)
	}
}
