package fixtures

import (
	"fmt"
	"slices"

	"github.com/parquet-go/parquet-go"

	"github.com/23skdu/branchless/internal/errors"
)

// Fixture is one benchmark scenario: a sorted array and the keys searched
// against it.
type Fixture struct {
	Sorted []int32
	Hits   []int32
	Misses []int32
}

const (
	setSorted = "sorted"
	setHits   = "hits"
	setMisses = "misses"
)

// row is the on-disk layout: one value per row, tagged with its set.
// Row order within a set is preserved.
type row struct {
	Set   string `parquet:"set,dict"`
	Value int32  `parquet:"value"`
}

// NewFixture builds the standard scenario of the benchmark suite: n distinct
// sorted values from [0, 3n) with n hit keys and n miss keys.
func NewFixture(n int, seed uint64) Fixture {
	keys := Distinct[int32](n, int64(3*max(n, 1)), seed)
	sorted := append([]int32(nil), keys...)
	slices.Sort(sorted)
	return Fixture{
		Sorted: sorted,
		Hits:   keys,
		Misses: Misses(n, sorted, int64(3*max(n, 1)), seed+1),
	}
}

// Save writes f to a parquet file at path.
func Save(path string, f Fixture) error {
	rows := make([]row, 0, len(f.Sorted)+len(f.Hits)+len(f.Misses))
	rows = appendRows(rows, setSorted, f.Sorted)
	rows = appendRows(rows, setHits, f.Hits)
	rows = appendRows(rows, setMisses, f.Misses)
	if err := parquet.WriteFile(path, rows); err != nil {
		return errors.WrapStorageError(err, "fixtures.Save", "write parquet fixture").
			WithContext("path", path)
	}
	return nil
}

// Load reads a fixture written by Save.
func Load(path string) (Fixture, error) {
	rows, err := parquet.ReadFile[row](path)
	if err != nil {
		return Fixture{}, errors.WrapStorageError(err, "fixtures.Load", "read parquet fixture").
			WithContext("path", path)
	}
	var f Fixture
	for _, r := range rows {
		switch r.Set {
		case setSorted:
			f.Sorted = append(f.Sorted, r.Value)
		case setHits:
			f.Hits = append(f.Hits, r.Value)
		case setMisses:
			f.Misses = append(f.Misses, r.Value)
		default:
			return Fixture{}, errors.WrapStorageError(fmt.Errorf("unknown set %q", r.Set), "fixtures.Load", "read parquet fixture").
				WithContext("path", path)
		}
	}
	return f, nil
}

func appendRows(rows []row, set string, values []int32) []row {
	for _, v := range values {
		rows = append(rows, row{Set: set, Value: v})
	}
	return rows
}
