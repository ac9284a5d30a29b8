package bsearch

import "math/bits"

// OffsetSearch is Cannizzo's offset binary search ("A Fast and Vectorizable
// Alternative to Binary Search", 2017). It tracks the candidate as an offset
// relative to from and peels the first halving step out of the loop.
// The contract is the same as Search.
func OffsetSearch[T Signed](a []T, from, to int, key T) int {
	size := to - from
	if size <= 0 {
		return ^from
	}
	assertSearchRange(a, from, to)

	// at least one step
	mid0 := size >> 1
	i := 0
	if key >= a[from+mid0] {
		i = mid0
	}
	sz := size - mid0
	for n := bits.Len(uint(size)) - 1; n > 0; n-- {
		h := sz >> 1
		mid := i + h
		if key >= a[from+mid] {
			i = mid
		}
		sz -= h
	}

	low := from + i
	return classify(a[low], key, low)
}
