package bsearch

import "sort"

// Reference is a textbook lower-bound binary search with the same result
// encoding as Search. With duplicates it returns the first occurrence.
func Reference[T Signed](a []T, from, to int, key T) int {
	if to-from <= 0 {
		return ^from
	}
	i := from + sort.Search(to-from, func(i int) bool {
		return a[from+i] >= key
	})
	if i < to && a[i] == key {
		return i
	}
	return ^i
}
