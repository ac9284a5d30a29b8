package bsearch

import (
	"fmt"
	"strings"

	"github.com/23skdu/branchless/internal/metrics"
)

// Strategy selects a batch kernel.
type Strategy int

const (
	StrategyAuto Strategy = iota
	StrategyScalar
	StrategyUnrolled
	StrategyVectorized
	StrategyMasked
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyScalar:
		return "scalar"
	case StrategyUnrolled:
		return "unrolled"
	case StrategyVectorized:
		return "vectorized"
	case StrategyMasked:
		return "masked"
	default:
		return "unknown"
	}
}

// Strategies lists the concrete kernels, in the order the benchmark harness
// reports them.
var Strategies = []Strategy{StrategyScalar, StrategyUnrolled, StrategyVectorized, StrategyMasked}

// ParseStrategy maps a name as printed by String back to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return StrategyAuto, nil
	case "scalar":
		return StrategyScalar, nil
	case "unrolled":
		return StrategyUnrolled, nil
	case "vectorized", "vector":
		return StrategyVectorized, nil
	case "masked", "predicate":
		return StrategyMasked, nil
	default:
		return StrategyAuto, fmt.Errorf("bsearch: unknown strategy %q", name)
	}
}

// preferred is resolved once at init from the detected implementation.
var preferred Strategy

// initializeDispatch picks the kernel StrategyAuto resolves to.
func initializeDispatch() {
	switch implementation {
	case "avx512", "sve":
		preferred = StrategyMasked
	case "avx2", "neon":
		preferred = StrategyVectorized
	default:
		preferred = StrategyUnrolled
	}
	metrics.DispatchTotal.WithLabelValues(implementation, preferred.String()).Inc()
	metrics.VectorWidthBits.Set(float64(VectorBits()))
}

// Preferred returns the strategy StrategyAuto resolves to on this CPU.
func Preferred() Strategy {
	return preferred
}

// Resolve maps StrategyAuto to the preferred kernel and leaves other values
// untouched.
func (s Strategy) Resolve() Strategy {
	if s == StrategyAuto {
		return preferred
	}
	return s
}

// BatchFunc is the shared signature of the batch kernels.
type BatchFunc[T Signed] func(a []T, from, to int, keys []T, keysFrom, keysTo int, results []int)

// Kernel returns the batch kernel for s.
func Kernel[T Signed](s Strategy) BatchFunc[T] {
	switch s.Resolve() {
	case StrategyScalar:
		return searchAllScalar[T]
	case StrategyVectorized:
		return SearchAllVectorized[T]
	case StrategyMasked:
		return SearchAllMasked[T]
	default:
		return SearchAllUnrolled[T]
	}
}

// SearchAll runs the kernel selected by s. All kernels fill results
// identically; they differ only in speed.
func SearchAll[T Signed](s Strategy, a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	Kernel[T](s)(a, from, to, keys, keysFrom, keysTo, results)
}

func searchAllScalar[T Signed](a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	if to-from <= 0 {
		fillAbsent(results[:max(keysTo-keysFrom, 0)], from)
		return
	}
	searchEach(a, from, to, keys, keysFrom, keysTo, results)
}
