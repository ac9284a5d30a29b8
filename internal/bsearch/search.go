// Package bsearch implements branch-reduced binary search over sorted
// signed integer slices.
//
// Every search over a range of length n performs exactly bits.Len(n)
// halving steps regardless of the data, and each step picks its direction
// with a select rather than a branch. Because the trip count depends only
// on n, many keys can be searched in lock-step: four at a time in
// SearchAllUnrolled, or one vector of keys at a time in SearchAllVectorized
// and SearchAllMasked.
//
// All functions return the index of key if present (any matching index when
// there are duplicates) and ^insertionPoint otherwise.
package bsearch

import "math/bits"

// Search searches a[from:to] for key. The range must be sorted ascending.
//
// If a[from:to] has no duplicates the result equals the one of a textbook
// binary search. With duplicates any index holding key may be returned.
// An empty or inverted range yields ^from without touching a.
func Search[T Signed](a []T, from, to int, key T) int {
	size := to - from
	if size <= 0 {
		return ^from
	}
	assertSearchRange(a, from, to)

	index := from
	for n := bits.Len(uint(size)); n > 0; n-- {
		half := size >> 1
		mid := index + half
		if key >= a[mid] {
			index = mid
		}
		size -= half
	}
	return classify(a[index], key, index)
}

// classify turns the converged index into the result. a[index] is the
// greatest element <= key, or the first element of the range when every
// element is greater than key.
func classify[T Signed](value, key T, index int) int {
	switch {
	case value == key:
		return index
	case value < key:
		return ^index - 1
	default:
		return ^index
	}
}

// searchEach runs Search once per key.
func searchEach[T Signed](a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	for offset := keysFrom; offset < keysTo; offset++ {
		results[offset-keysFrom] = Search(a, from, to, keys[offset])
	}
}

// fillAbsent marks every result as absent from an empty range.
func fillAbsent(results []int, from int) {
	for i := range results {
		results[i] = ^from
	}
}
