package bsearch

import "math/bits"

// SearchAllUnrolled searches a[from:to] for keys[keysFrom:keysTo] and writes
// the result for keys[offset] to results[offset-keysFrom].
//
// Keys are processed four at a time. The four searches share one trip count
// and carry independent (index, size) state, so the loads and compares of
// one lane overlap with those of the other three. The last len%4 keys fall
// back to Search.
//
// Only results[:keysTo-keysFrom] is written, also for an empty or inverted
// array range, where every slot gets ^from. Trailing slots of a longer
// results slice are left untouched.
func SearchAllUnrolled[T Signed](a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	size := to - from
	if size <= 0 {
		fillAbsent(results[:max(keysTo-keysFrom, 0)], from)
		return
	}
	assertBatchRange(a, from, to, keys, keysFrom, keysTo, results)

	iterations := bits.Len(uint(size))
	offset := keysFrom
	upper := keysFrom + (keysTo-keysFrom)&^3
	for ; offset < upper; offset += 4 {
		index0, index1, index2, index3 := from, from, from, from
		k := keys[offset : offset+4 : offset+4]
		key0, key1, key2, key3 := k[0], k[1], k[2], k[3]

		sz := size
		for n := iterations; n > 0; n-- {
			half := sz >> 1
			mid0 := index0 + half
			if key0 >= a[mid0] {
				index0 = mid0
			}
			mid1 := index1 + half
			if key1 >= a[mid1] {
				index1 = mid1
			}
			mid2 := index2 + half
			if key2 >= a[mid2] {
				index2 = mid2
			}
			mid3 := index3 + half
			if key3 >= a[mid3] {
				index3 = mid3
			}
			sz -= half
		}

		r := results[offset-keysFrom : offset-keysFrom+4 : offset-keysFrom+4]
		r[0] = classify(a[index0], key0, index0)
		r[1] = classify(a[index1], key1, index1)
		r[2] = classify(a[index2], key2, index2)
		r[3] = classify(a[index3], key3, index3)
	}

	searchEach(a, from, to, keys, offset, keysTo, results[offset-keysFrom:])
}
