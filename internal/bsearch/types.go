package bsearch

// Signed is the set of element types the kernels search over.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Lane is the set of types a Vec can hold: element types plus the
// native int used for index lanes.
type Lane interface {
	Signed | ~int
}
