package bsearch

import "math/bits"

// SearchAllMasked has the contract of SearchAllVectorized but covers the
// final partial vector inside the vector loop: lanes past keysTo are
// disabled by a mask, load a don't-care key and never store a result.
// This is the shape that suits CPUs with predicate registers (AVX-512, SVE).
func SearchAllMasked[T Signed](a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
	SearchAllMaskedWith(SpeciesOf[T](), a, from, to, keys, keysFrom, keysTo, results)
}

// SearchAllMaskedWith is SearchAllMasked with an explicit shape.
func SearchAllMaskedWith[T Signed](s Species, a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {
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
		active, ge, gt, lt     Mask
	)
	iterations := bits.Len(uint(size))
	w := s.Length()
	for offset := keysFrom; offset < keysTo; offset += w {
		s.IndexInRange(&active, offset, keysTo)
		key.LoadMasked(s, keys, offset, &active)
		index.Broadcast(s, from)

		// Inactive lanes still walk valid indices of a, so the gathers
		// need no mask.
		sz := size
		for n := iterations; n > 0; n-- {
			half := sz >> 1
			mid.AddScalar(&index, half)
			Gather(&value, a, &mid)
			CompareGE(&ge, &key, &value)
			index.Blend(&mid, &ge)
			sz -= half
		}

		Gather(&value, a, &index)
		CompareGT(&gt, &key, &value)
		CompareLT(&lt, &key, &value)
		inv.Not(&index)
		invm1.AddScalar(&inv, -1)
		index.Blend(&invm1, &gt)
		index.Blend(&inv, &lt)
		index.StoreMasked(results, offset-keysFrom, &active)
	}
}
