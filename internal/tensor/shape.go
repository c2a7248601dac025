package tensor

import (
	"fmt"
	"slices"
)

// Shape lists the size of each axis, outermost first. An empty Shape is a
// scalar.
type Shape []int

// NumElements returns the element count: 1 for a scalar, 0 if any axis is 0.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate rejects negative dimensions.
func (s Shape) Validate() error {
	if i := slices.IndexFunc(s, func(d int) bool { return d < 0 }); i >= 0 {
		return fmt.Errorf("dimension %d is negative (%d)", i, s[i])
	}
	return nil
}

// Equal reports whether s and other have the same rank and sizes.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of s that never aliases it.
func (s Shape) Clone() Shape {
	return append(make(Shape, 0, len(s)), s...)
}

// ComputeStrides returns the row-major strides of s, in elements.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

// BroadcastShapes returns the NumPy broadcast of a and b. Shapes are aligned
// on their trailing axes; a missing axis counts as 1 and a size-1 axis
// stretches to the other operand's size. The bool reports whether either
// operand has to be stretched.
//
//	(3, 1) + (3, 5) -> (3, 5), true
//	(5)    + (3, 5) -> (3, 5), true
//	(3, 5) + (3, 5) -> (3, 5), false
//	(3, 4) + (3, 5) -> error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	stretched := len(a) != len(b)

	dimAt := func(s Shape, i int) int {
		if j := len(s) - rank + i; j >= 0 {
			return s[j]
		}
		return 1
	}
	for i := range out {
		da, db := dimAt(a, i), dimAt(b, i)
		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i], stretched = db, true
		case db == 1:
			out[i], stretched = da, true
		default:
			return nil, false, fmt.Errorf("cannot broadcast %v with %v: axis %d is %d vs %d", a, b, i, da, db)
		}
	}
	return out, stretched, nil
}

// broadcastStrides returns strides that read src as if it had shape dst:
// broadcast (size-1 or missing) axes get stride 0.
func broadcastStrides(src, dst Shape) []int {
	strides := make([]int, len(dst))
	srcStrides := src.ComputeStrides()
	diff := len(dst) - len(src)
	for i := range src {
		if src[i] != 1 || dst[diff+i] == 1 {
			strides[diff+i] = srcStrides[i]
		}
	}
	return strides
}

// splitAxis returns the element counts before, along and after axis.
func (s Shape) splitAxis(axis int) (outer, n, inner int) {
	outer, inner = 1, 1
	for i := 0; i < axis; i++ {
		outer *= s[i]
	}
	for i := axis + 1; i < len(s); i++ {
		inner *= s[i]
	}
	return outer, s[axis], inner
}

// normalizeAxis maps a possibly negative axis into [0, rank).
func normalizeAxis(axis, rank int) (int, bool) {
	if axis < 0 {
		axis += rank
	}
	return axis, axis >= 0 && axis < rank
}
