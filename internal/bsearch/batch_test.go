package bsearch

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/branchless/internal/fixtures"
)

type batchKernel struct {
	name string
	fn   BatchFunc[int32]
}

// batchKernels covers every kernel, and the vector kernels at every shape
// from scalar up to 512-bit int8.
func batchKernels() []batchKernel {
	kernels := []batchKernel{
		{"scalar", Kernel[int32](StrategyScalar)},
		{"unrolled", SearchAllUnrolled[int32]},
		{"vectorized/detected", SearchAllVectorized[int32]},
		{"masked/detected", SearchAllMasked[int32]},
	}
	for _, n := range []int{1, 2, 3, 4, 8, 16, MaxLanes} {
		s := NewSpecies(n)
		kernels = append(kernels,
			batchKernel{fmt.Sprintf("vectorized/%d", n), func(a []int32, from, to int, keys []int32, kf, kt int, r []int) {
				SearchAllVectorizedWith(s, a, from, to, keys, kf, kt, r)
			}},
			batchKernel{fmt.Sprintf("masked/%d", n), func(a []int32, from, to int, keys []int32, kf, kt int, r []int) {
				SearchAllMaskedWith(s, a, from, to, keys, kf, kt, r)
			}},
		)
	}
	return kernels
}

func expectedResults(a []int32, from, to int, keys []int32, keysFrom, keysTo int) []int {
	want := make([]int, keysTo-keysFrom)
	for i := range want {
		want[i] = Search(a, from, to, keys[keysFrom+i])
	}
	return want
}

func TestSearchAllEveryValue(t *testing.T) {
	for _, k := range batchKernels() {
		for _, tc := range distinctCases() {
			t.Run(k.name+"/"+tc.name, func(t *testing.T) {
				got := make([]int, tc.to-tc.from)
				k.fn(tc.a, tc.from, tc.to, tc.a, tc.from, tc.to, got)
				for i := tc.from; i < tc.to; i++ {
					assert.Equal(t, Reference(tc.a, tc.from, tc.to, tc.a[i]), got[i-tc.from], "key=%d", tc.a[i])
				}
			})
		}
	}
}

func TestSearchAllMatchesScalar(t *testing.T) {
	a := fixtures.DistinctSorted[int32](1023, 1023*3, 0)
	hits := fixtures.Hits(1000, a, 1)
	misses := fixtures.Misses(1000, a, 1023*3, 2)
	mixed := fixtures.Mix(hits, misses, 3)
	dups := fixtures.WithDuplicates[int32](333, 4, 4)
	extremes := []int32{math.MinInt32, math.MinInt32 + 1, -1, 0, 1, math.MaxInt32 - 1, math.MaxInt32}
	extremeKeys := []int32{
		math.MinInt32, math.MinInt32 + 1, math.MinInt32 + 2, -2, -1, 0, 1, 2,
		math.MaxInt32 - 2, math.MaxInt32 - 1, math.MaxInt32,
		math.MaxInt32, math.MinInt32, 0, math.MaxInt32 - 2, math.MinInt32 + 2, -2,
	}

	scenarios := []struct {
		name     string
		a        []int32
		from, to int
		keys     []int32
	}{
		{"hits", a, 0, len(a), hits},
		{"misses", a, 0, len(a), misses},
		{"mixed", a, 0, len(a), mixed},
		{"sub-range", a, 100, 900, mixed},
		{"duplicates", dups, 0, len(dups), probeKeys(dups)},
		{"single element", a, 5, 6, mixed},
		{"below and above", a, 0, len(a), []int32{-5, -1, 0, 1023 * 3, 1 << 30}},
		{"integer extremes", extremes, 0, len(extremes), extremeKeys},
		{"extremes near max", extremes, 5, 7, extremeKeys},
		{"extremes near min", extremes, 0, 2, extremeKeys},
	}
	for _, k := range batchKernels() {
		for _, sc := range scenarios {
			// every key count modulo the widest shape exercises each tail length
			for _, n := range []int{0, 1, 3, 4, 5, 7, 17, 63, 64, 65, len(sc.keys)} {
				n = min(n, len(sc.keys))
				t.Run(fmt.Sprintf("%s/%s/%d", k.name, sc.name, n), func(t *testing.T) {
					got := make([]int, n)
					k.fn(sc.a, sc.from, sc.to, sc.keys, 0, n, got)
					require.Equal(t, expectedResults(sc.a, sc.from, sc.to, sc.keys, 0, n), got)
				})
			}
		}
	}
}

// Results are indexed by offset-keysFrom in every loop of every kernel, also
// when the key window does not start where the array window starts.
func TestSearchAllKeyWindowOffset(t *testing.T) {
	a := fixtures.DistinctSorted[int32](200, 600, 8)
	keys := fixtures.Mix(fixtures.Hits(150, a, 9), fixtures.Misses(150, a, 600, 10), 11)

	windows := []struct{ from, to, keysFrom, keysTo int }{
		{0, 200, 3, 150},
		{10, 190, 0, 149},
		{10, 190, 7, 140},
		{50, 60, 1, 2},
		{0, 200, 149, 150},
	}
	for _, k := range batchKernels() {
		for _, w := range windows {
			t.Run(fmt.Sprintf("%s/%+v", k.name, w), func(t *testing.T) {
				got := make([]int, w.keysTo-w.keysFrom)
				k.fn(a, w.from, w.to, keys, w.keysFrom, w.keysTo, got)
				require.Equal(t, expectedResults(a, w.from, w.to, keys, w.keysFrom, w.keysTo), got)
			})
		}
	}
}

func TestSearchAllEmptyRange(t *testing.T) {
	a := []int32{0, 1, 2, 3, 40, 50, 60}
	keys := []int32{-1, 0, 2, 3, 41, 60, 99}
	for _, k := range batchKernels() {
		t.Run(k.name, func(t *testing.T) {
			got := make([]int, len(keys))
			k.fn(a, 2, 2, keys, 0, len(keys), got)
			for i, r := range got {
				assert.Equal(t, ^2, r, "key index %d", i)
			}

			got = make([]int, len(keys))
			k.fn(a, 4, 3, keys, 0, len(keys), got)
			for _, r := range got {
				assert.Equal(t, ^4, r)
			}
		})
	}
}

func TestSearchAllLeavesTrailingResultsUntouched(t *testing.T) {
	a := []int32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	keys := []int32{2, 4, 6, 8, 10}
	for _, k := range batchKernels() {
		t.Run(k.name, func(t *testing.T) {
			got := []int{-99, -99, -99, -99, -99, -99, -99}
			k.fn(a, 0, len(a), keys, 0, len(keys), got)
			assert.Equal(t, []int{1, 3, 5, 7, ^9, -99, -99}, got)

			got = []int{-99, -99, -99, -99, -99, -99, -99}
			k.fn(a, 0, 0, keys, 0, len(keys), got)
			assert.Equal(t, []int{^0, ^0, ^0, ^0, ^0, -99, -99}, got)
		})
	}
}

func TestSearchAllOtherWidths(t *testing.T) {
	a8 := []int8{-100, -50, -1, 0, 7, 9, 100, 127}
	keys8 := make([]int8, 0, 256)
	for k := -128; k < 128; k++ {
		keys8 = append(keys8, int8(k))
	}
	a64 := fixtures.DistinctSorted[int64](500, 1<<40, 12)
	keys64 := fixtures.Mix(fixtures.Hits(300, a64, 13), fixtures.Misses(300, a64, 1<<40, 14), 15)

	for _, s := range append([]Strategy{StrategyAuto}, Strategies...) {
		t.Run("int8/"+s.String(), func(t *testing.T) {
			got := make([]int, len(keys8))
			SearchAll(s, a8, 0, len(a8), keys8, 0, len(keys8), got)
			for i, key := range keys8 {
				require.Equal(t, Reference(a8, 0, len(a8), key), got[i], "key=%d", key)
			}
		})
		t.Run("int64/"+s.String(), func(t *testing.T) {
			got := make([]int, len(keys64))
			SearchAll(s, a64, 0, len(a64), keys64, 0, len(keys64), got)
			for i, key := range keys64 {
				require.Equal(t, Reference(a64, 0, len(a64), key), got[i], "key=%d", key)
			}
		})
	}
}

func TestSearchAllDoesNotAllocate(t *testing.T) {
	a := fixtures.DistinctSorted[int32](1023, 1023*3, 0)
	keys := fixtures.Hits(257, a, 1)
	results := make([]int, len(keys))
	for _, s := range Strategies {
		fn := Kernel[int32](s)
		allocs := testing.AllocsPerRun(10, func() {
			fn(a, 0, len(a), keys, 0, len(keys), results)
		})
		assert.Zero(t, allocs, s.String())
	}
}
