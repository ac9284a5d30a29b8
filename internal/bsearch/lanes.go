package bsearch

import "unsafe"

// MaxLanes is the widest vector shape supported: 512 bits of int8.
const MaxLanes = 64

// Species describes a vector shape: how many lanes of one element type fit
// into the preferred vector register.
type Species struct {
	n int
}

// SpeciesOf returns the preferred shape for T on the running CPU.
func SpeciesOf[T Signed]() Species {
	return Species{n: Lanes[T]()}
}

// NewSpecies returns a shape with n lanes, clamped to [1, MaxLanes].
func NewSpecies(n int) Species {
	return Species{n: min(max(n, 1), MaxLanes)}
}

// Length is the lane count.
func (s Species) Length() int {
	return s.n
}

// LoopBound returns the largest multiple of the lane count <= length.
func (s Species) LoopBound(length int) int {
	return length - length%s.n
}

// IndexInRange sets m so that lane i is active iff offset+i < limit.
func (s Species) IndexInRange(m *Mask, offset, limit int) {
	m.n = s.n
	for i := 0; i < s.n; i++ {
		m.bits[i] = offset+i < limit
	}
}

// Lanes returns the lane count for element type T: the detected vector
// width divided by the width of T, never less than 1.
func Lanes[T Signed]() int {
	var zero T
	vb := VectorBits()
	if vb == 0 {
		return 1
	}
	n := vb / (8 * int(unsafe.Sizeof(zero)))
	return min(max(n, 1), MaxLanes)
}

// Vec is a portable vector register. Lanes live in a fixed array so a Vec
// declared in a function stays on that function's stack frame.
type Vec[E Lane] struct {
	lanes [MaxLanes]E
	n     int
}

// Mask is a per-lane predicate.
type Mask struct {
	bits [MaxLanes]bool
	n    int
}

// Len is the number of active lanes in the shape.
func (v *Vec[E]) Len() int { return v.n }

// Lane returns lane i.
func (v *Vec[E]) Lane(i int) E { return v.lanes[i] }

// Load reads s.Length() consecutive values from src starting at off.
func (v *Vec[E]) Load(s Species, src []E, off int) {
	v.n = s.n
	copy(v.lanes[:s.n], src[off:off+s.n])
}

// LoadMasked reads src[off+i] for active lanes; inactive lanes are zeroed
// and src is never touched past the last active lane.
func (v *Vec[E]) LoadMasked(s Species, src []E, off int, m *Mask) {
	v.n = s.n
	for i := 0; i < s.n; i++ {
		var x E
		if m.bits[i] {
			x = src[off+i]
		}
		v.lanes[i] = x
	}
}

// Broadcast fills every lane with x.
func (v *Vec[E]) Broadcast(s Species, x E) {
	v.n = s.n
	for i := 0; i < s.n; i++ {
		v.lanes[i] = x
	}
}

// AddScalar sets v = src + x lane-wise.
func (v *Vec[E]) AddScalar(src *Vec[E], x E) {
	v.n = src.n
	for i := 0; i < src.n; i++ {
		v.lanes[i] = src.lanes[i] + x
	}
}

// Not sets v = ^src lane-wise.
func (v *Vec[E]) Not(src *Vec[E]) {
	v.n = src.n
	for i := 0; i < src.n; i++ {
		v.lanes[i] = ^src.lanes[i]
	}
}

// Blend replaces lane i of v with other's lane i where m is set.
func (v *Vec[E]) Blend(other *Vec[E], m *Mask) {
	for i := 0; i < v.n; i++ {
		x := v.lanes[i]
		if m.bits[i] {
			x = other.lanes[i]
		}
		v.lanes[i] = x
	}
}

// Store writes every lane to dst starting at off.
func (v *Vec[E]) Store(dst []E, off int) {
	copy(dst[off:off+v.n], v.lanes[:v.n])
}

// StoreMasked writes only the active lanes.
func (v *Vec[E]) StoreMasked(dst []E, off int, m *Mask) {
	for i := 0; i < v.n; i++ {
		if m.bits[i] {
			dst[off+i] = v.lanes[i]
		}
	}
}

// Gather loads src[idx[i]] into lane i. The index register doubles as the
// scratch buffer of the gather, so repeated gathers never allocate.
func Gather[T Signed](v *Vec[T], src []T, idx *Vec[int]) {
	v.n = idx.n
	for i := 0; i < idx.n; i++ {
		v.lanes[i] = src[idx.lanes[i]]
	}
}

// CompareGE sets m[i] = a[i] >= b[i].
func CompareGE[T Signed](m *Mask, a, b *Vec[T]) {
	m.n = a.n
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.lanes[i] >= b.lanes[i]
	}
}

// CompareGT sets m[i] = a[i] > b[i].
func CompareGT[T Signed](m *Mask, a, b *Vec[T]) {
	m.n = a.n
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.lanes[i] > b.lanes[i]
	}
}

// CompareLT sets m[i] = a[i] < b[i].
func CompareLT[T Signed](m *Mask, a, b *Vec[T]) {
	m.n = a.n
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.lanes[i] < b.lanes[i]
	}
}

// CompareNE sets m[i] = a[i] != b[i].
func CompareNE[T Signed](m *Mask, a, b *Vec[T]) {
	m.n = a.n
	for i := 0; i < a.n; i++ {
		m.bits[i] = a.lanes[i] != b.lanes[i]
	}
}

// Len is the number of lanes in the shape.
func (m *Mask) Len() int { return m.n }

// IsSet reports whether lane i is active.
func (m *Mask) IsSet(i int) bool { return m.bits[i] }

// Count returns the number of active lanes.
func (m *Mask) Count() int {
	c := 0
	for i := 0; i < m.n; i++ {
		if m.bits[i] {
			c++
		}
	}
	return c
}
