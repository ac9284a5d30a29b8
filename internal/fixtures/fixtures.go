// Package fixtures generates sorted arrays and hit/miss key sets for tests
// and benchmarks. Every generator is deterministic for a given seed.
package fixtures

import (
	"math/rand/v2"
	"slices"
)

// Int is the set of element types fixtures can produce.
type Int interface {
	~int8 | ~int16 | ~int32 | ~int64
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Distinct returns n distinct values drawn from [0, bound) in random order.
// It panics if bound < n or if bound-1 does not fit in T.
func Distinct[T Int](n int, bound int64, seed uint64) []T {
	if int64(n) > bound {
		panic("fixtures: bound smaller than n")
	}
	if bound > 0 && int64(T(bound-1)) != bound-1 {
		panic("fixtures: bound exceeds the range of the element type")
	}
	rng := newRand(seed)
	out := make([]T, 0, n)
	seen := make(map[int64]struct{}, n)
	for len(out) < n {
		v := rng.Int64N(bound)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, T(v))
	}
	return out
}

// DistinctSorted returns Distinct(n, bound, seed) sorted ascending.
func DistinctSorted[T Int](n int, bound int64, seed uint64) []T {
	out := Distinct[T](n, bound, seed)
	slices.Sort(out)
	return out
}

// Hits returns n keys drawn with replacement from a.
func Hits[T Int](n int, a []T, seed uint64) []T {
	if len(a) == 0 {
		return nil
	}
	rng := newRand(seed)
	out := make([]T, n)
	for i := range out {
		out[i] = a[rng.IntN(len(a))]
	}
	return out
}

// Misses returns n keys from [0, bound) none of which occur in a.
// It panics if a covers the whole interval.
func Misses[T Int](n int, a []T, bound int64, seed uint64) []T {
	present := make(map[T]struct{}, len(a))
	for _, v := range a {
		if int64(v) >= 0 && int64(v) < bound {
			present[v] = struct{}{}
		}
	}
	if int64(len(present)) >= bound {
		panic("fixtures: no room for misses")
	}
	rng := newRand(seed)
	out := make([]T, 0, n)
	for len(out) < n {
		v := T(rng.Int64N(bound))
		if _, hit := present[v]; hit {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Mix shuffles hits and misses together and returns the first len(hits)
// keys, so roughly half of the result are hits.
func Mix[T Int](hits, misses []T, seed uint64) []T {
	all := make([]T, 0, len(hits)+len(misses))
	all = append(all, hits...)
	all = append(all, misses...)
	rng := newRand(seed)
	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all[:len(hits)]
}

// WithDuplicates returns a sorted slice of n values where each value is
// repeated between 1 and maxRun times.
func WithDuplicates[T Int](n, maxRun int, seed uint64) []T {
	rng := newRand(seed)
	out := make([]T, 0, n)
	var v int64
	for len(out) < n {
		v += 1 + rng.Int64N(3)
		run := 1 + rng.IntN(max(maxRun, 1))
		for r := 0; r < run && len(out) < n; r++ {
			out = append(out, T(v))
		}
	}
	return out
}
