package column

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Hits returns the key positions whose lookup found a match: the selection
// vector of a semi-join of keys against the sorted column.
func Hits(results *array.Int64) *roaring.Bitmap {
	bm := roaring.New()
	values := results.Int64Values()
	for i, r := range values {
		if r >= 0 && results.IsValid(i) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Matched returns the positions of the sorted column that at least one key
// matched. With duplicates in the sorted column only the position the
// kernel returned is included.
func Matched(results *array.Int64) *roaring.Bitmap {
	bm := roaring.New()
	values := results.Int64Values()
	for i, r := range values {
		if r >= 0 && results.IsValid(i) {
			bm.Add(uint32(r))
		}
	}
	return bm
}

// InsertionPoints returns, for every absent non-null key, the position it
// would be inserted at, as a bitmap over the sorted column positions
// (0 through len inclusive).
func InsertionPoints(results *array.Int64) *roaring.Bitmap {
	bm := roaring.New()
	values := results.Int64Values()
	for i, r := range values {
		if r < 0 && results.IsValid(i) {
			bm.Add(uint32(^r))
		}
	}
	return bm
}
