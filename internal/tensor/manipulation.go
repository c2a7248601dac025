package tensor

// Reshape returns a tensor with the given shape sharing t's data.
//
// One dimension may be -1; it is inferred from the element count.
// The element count must be unchanged.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3, 4}, tensor.Float32)
//	y, _ := x.Reshape(6, -1) // Shape: [6, 4]
func (t *Tensor) Reshape(newShape ...int) (*Tensor, error) {
	totalElements := t.NumElements()
	inferIdx := -1
	product := 1
	for i, dim := range newShape {
		switch {
		case dim == -1:
			if inferIdx >= 0 {
				return nil, shapeErrorf("reshape", t.shape, "can only have one -1 dimension in %v", newShape)
			}
			inferIdx = i
		case dim < 0:
			return nil, shapeErrorf("reshape", t.shape, "dimensions must be >= 0, got %d", dim)
		default:
			product *= dim
		}
	}

	actualShape := make(Shape, len(newShape))
	copy(actualShape, newShape)

	if inferIdx >= 0 {
		if product == 0 || totalElements%product != 0 {
			return nil, shapeErrorf("reshape", t.shape, "cannot infer dimension for %v from %d elements", newShape, totalElements)
		}
		actualShape[inferIdx] = totalElements / product
	}

	if actualShape.NumElements() != totalElements {
		return nil, shapeErrorf("reshape", t.shape, "cannot reshape %d elements to %v (%d elements)",
			totalElements, []int(actualShape), actualShape.NumElements())
	}

	return t.withShape(actualShape), nil
}

// Permute reorders the axes of t. axes must be a permutation of 0..rank-1
// (negative entries count from the end). The result owns a fresh contiguous
// buffer.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{224, 224, 3}, tensor.Float32)
//	y, _ := x.Permute(2, 0, 1) // Shape: [3, 224, 224]
func (t *Tensor) Permute(axes ...int) (*Tensor, error) {
	ndim := len(t.shape)
	if len(axes) != ndim {
		return nil, shapeErrorf("permute", t.shape, "axes length %d must match tensor rank %d", len(axes), ndim)
	}

	norm := make([]int, ndim)
	seen := make([]bool, ndim)
	newShape := make(Shape, ndim)
	for i, ax := range axes {
		a, ok := normalizeAxis(ax, ndim)
		if !ok {
			return nil, shapeErrorf("permute", t.shape, "axis %d out of range [0, %d)", ax, ndim)
		}
		if seen[a] {
			return nil, shapeErrorf("permute", t.shape, "axis %d repeated in %v", a, axes)
		}
		seen[a] = true
		norm[i] = a
		newShape[i] = t.shape[a]
	}

	result := Zeros(newShape, t.dtype)
	switch t.dtype {
	case Float32:
		permuteData(t.AsFloat32(), result.AsFloat32(), t.shape, newShape, norm)
	case Float64:
		permuteData(t.AsFloat64(), result.AsFloat64(), t.shape, newShape, norm)
	case Int32:
		permuteData(t.AsInt32(), result.AsInt32(), t.shape, newShape, norm)
	case Int64:
		permuteData(t.AsInt64(), result.AsInt64(), t.shape, newShape, norm)
	case Uint8:
		permuteData(t.AsUint8(), result.AsUint8(), t.shape, newShape, norm)
	case Bool:
		permuteData(t.AsBool(), result.AsBool(), t.shape, newShape, norm)
	}
	return result, nil
}

// permuteData writes in, laid out as oldShape, into out laid out as newShape
// where out axis j is in axis axes[j].
func permuteData[T DType](in, out []T, oldShape, newShape Shape, axes []int) {
	ndim := len(oldShape)
	if len(out) == 0 {
		return
	}
	if ndim == 0 {
		out[0] = in[0]
		return
	}
	oldStrides := oldShape.ComputeStrides()

	// Source stride for each destination axis.
	src := make([]int, ndim)
	for j := range axes {
		src[j] = oldStrides[axes[j]]
	}

	idx := make([]int, ndim)
	oldFlat := 0
	for i := range out {
		out[i] = in[oldFlat]

		// Odometer increment over newShape, tracking the source offset.
		for j := ndim - 1; j >= 0; j-- {
			idx[j]++
			oldFlat += src[j]
			if idx[j] < newShape[j] {
				break
			}
			oldFlat -= idx[j] * src[j]
			idx[j] = 0
		}
	}
}

// Unsqueeze adds a dimension of size 1 at the specified position.
//
// axis must lie in [0, rank]; negative values count from rank+1.
// This is a view operation (no data copy).
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
//	y, _ := x.Unsqueeze(1)  // Shape: [2, 1, 3]
//	z, _ := x.Unsqueeze(-1) // Shape: [2, 3, 1]
func (t *Tensor) Unsqueeze(axis int) (*Tensor, error) {
	ndim := len(t.shape)
	a, ok := normalizeAxis(axis, ndim+1)
	if !ok {
		return nil, shapeErrorf("unsqueeze", t.shape, "axis %d out of range [0, %d]", axis, ndim)
	}

	newShape := make(Shape, 0, ndim+1)
	newShape = append(newShape, t.shape[:a]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, t.shape[a:]...)
	return t.withShape(newShape), nil
}

// Squeeze removes the size-1 dimension at the specified position.
//
// Supports negative axis indexing.
// This is a view operation (no data copy).
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 1, 3}, tensor.Float32)
//	y, _ := x.Squeeze(1)  // Shape: [2, 3]
//	z, _ := x.Squeeze(-2) // Shape: [2, 3]
func (t *Tensor) Squeeze(axis int) (*Tensor, error) {
	ndim := len(t.shape)
	a, ok := normalizeAxis(axis, ndim)
	if !ok {
		return nil, shapeErrorf("squeeze", t.shape, "axis %d out of range [0, %d)", axis, ndim)
	}
	if t.shape[a] != 1 {
		return nil, shapeErrorf("squeeze", t.shape, "cannot squeeze axis %d with size %d (must be 1)", a, t.shape[a])
	}

	newShape := make(Shape, 0, ndim-1)
	newShape = append(newShape, t.shape[:a]...)
	newShape = append(newShape, t.shape[a+1:]...)
	return t.withShape(newShape), nil
}

// Flatten returns a rank-1 view of t.
func (t *Tensor) Flatten() *Tensor {
	return t.withShape(Shape{t.NumElements()})
}
