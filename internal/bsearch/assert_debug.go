//go:build bsearchdebug

package bsearch

import "fmt"

const debugChecks = true

// assertSearchRange panics when a[from:to] is not a valid ascending range.
func assertSearchRange[T Signed](a []T, from, to int) {
	if from < 0 || to > len(a) || from > to {
		panic(fmt.Sprintf("bsearch: range [%d, %d) out of bounds for length %d", from, to, len(a)))
	}
	for i := from + 1; i < to; i++ {
		if a[i-1] > a[i] {
			panic(fmt.Sprintf("bsearch: range [%d, %d) not sorted at index %d: %d > %d", from, to, i, a[i-1], a[i]))
		}
	}
}

func assertBatchRange[T Signed](a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	assertSearchRange(a, from, to)
	if keysFrom < 0 || keysTo > len(keys) || keysFrom > keysTo {
		panic(fmt.Sprintf("bsearch: key range [%d, %d) out of bounds for length %d", keysFrom, keysTo, len(keys)))
	}
	if n := keysTo - keysFrom; len(results) < n {
		panic(fmt.Sprintf("bsearch: results length %d < key count %d", len(results), n))
	}
}
