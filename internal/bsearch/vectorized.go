package bsearch

import "math/bits"

// SearchAllVectorized has the contract of SearchAllUnrolled but advances one
// vector of keys per step: every lane computes its midpoint, gathers the
// probed values, compares and blends its index without a per-lane branch.
// Keys left over after the last full vector go through Search.
//
// With a lane count of 1 (no vector unit detected) it is a plain loop over
// Search.
func SearchAllVectorized[T Signed](a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	SearchAllVectorizedWith(SpeciesOf[T](), a, from, to, keys, keysFrom, keysTo, results)
}

// SearchAllVectorizedWith is SearchAllVectorized with an explicit shape.
func SearchAllVectorizedWith[T Signed](s Species, a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	size := to - from
	if size <= 0 {
		fillAbsent(results[:max(keysTo-keysFrom, 0)], from)
		return
	}
	assertBatchRange(a, from, to, keys, keysFrom, keysTo, results)

	if s.Length() == 1 {
		searchEach(a, from, to, keys, keysFrom, keysTo, results)
		return
	}

	var (
		key, value             Vec[T]
		index, mid, inv, invm1 Vec[int]
		ge, ne, lt             Mask
	)
	iterations := bits.Len(uint(size))
	w := s.Length()
	offset := keysFrom
	upper := keysFrom + s.LoopBound(keysTo-keysFrom)
	for ; offset < upper; offset += w {
		key.Load(s, keys, offset)
		index.Broadcast(s, from)

		sz := size
		for n := iterations; n > 0; n-- {
			half := sz >> 1
			mid.AddScalar(&index, half)
			Gather(&value, a, &mid)
			CompareGE(&ge, &key, &value)
			index.Blend(&mid, &ge)
			sz -= half
		}

		// found: index; a[index] < key: ^index-1; otherwise ^index
		Gather(&value, a, &index)
		CompareNE(&ne, &value, &key)
		CompareLT(&lt, &value, &key)
		inv.Not(&index)
		invm1.AddScalar(&inv, -1)
		index.Blend(&inv, &ne)
		index.Blend(&invm1, &lt)
		index.Store(results, offset-keysFrom)
	}

	searchEach(a, from, to, keys, offset, keysTo, results[offset-keysFrom:])
}
