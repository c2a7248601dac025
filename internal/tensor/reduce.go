package tensor

import (
	"fmt"
	"math"
)

// All returns a rank-0 Bool tensor that is true iff every element is truthy
// (nonzero, true or NaN). All of an empty tensor is true.
func All(x *Tensor) *Tensor {
	mask := make([]bool, x.NumElements())
	truthy(x, mask)
	for _, v := range mask {
		if !v {
			return Scalar(false)
		}
	}
	return Scalar(true)
}

// Any returns a rank-0 Bool tensor that is true iff at least one element is
// truthy. Any of an empty tensor is false.
func Any(x *Tensor) *Tensor {
	return Scalar(anyTruthy(x))
}

// None returns the logical negation of Any.
func None(x *Tensor) *Tensor {
	return Scalar(!anyTruthy(x))
}

func anyTruthy(x *Tensor) bool {
	mask := make([]bool, x.NumElements())
	truthy(x, mask)
	for _, v := range mask {
		if v {
			return true
		}
	}
	return false
}

type reduceKind int

const (
	reduceSum reduceKind = iota
	reduceProd
	reduceMean
	reduceMax
	reduceMin
)

func (k reduceKind) String() string {
	switch k {
	case reduceSum:
		return "sum"
	case reduceProd:
		return "prod"
	case reduceMean:
		return "mean"
	case reduceMax:
		return "max"
	default:
		return "min"
	}
}

// reduce folds x over [outer, n, inner] blocks into a tensor of outShape.
func reduce(x *Tensor, kind reduceKind, outer, n, inner int, outShape Shape) (*Tensor, error) {
	name := kind.String()
	switch {
	case x.dtype == Bool:
		return nil, dtypeError(name, x.dtype)
	case kind == reduceMean && !x.dtype.IsFloat():
		return nil, &DTypeError{Op: name, DType: x.dtype, Details: "requires a floating dtype"}
	case (kind == reduceMax || kind == reduceMin) && n == 0:
		return nil, shapeErrorf(name, x.shape, "cannot reduce an empty axis")
	}

	out := Zeros(outShape, x.dtype)
	switch x.dtype {
	case Float32:
		reduceFloat(x.AsFloat32(), out.AsFloat32(), outer, n, inner, kind)
	case Float64:
		reduceFloat(x.AsFloat64(), out.AsFloat64(), outer, n, inner, kind)
	case Int32:
		reduceInt(x.AsInt32(), out.AsInt32(), outer, n, inner, kind)
	case Int64:
		reduceInt(x.AsInt64(), out.AsInt64(), outer, n, inner, kind)
	case Uint8:
		reduceInt(x.AsUint8(), out.AsUint8(), outer, n, inner, kind)
	}
	return out, nil
}

// reduceFloat accumulates in float64 and propagates NaN through max/min.
func reduceFloat[F floating](in, out []F, outer, n, inner int, kind reduceKind) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*n*inner + i
			var acc float64
			switch kind {
			case reduceProd:
				acc = 1
			case reduceMax:
				acc = math.Inf(-1)
			case reduceMin:
				acc = math.Inf(1)
			}
			for k := 0; k < n; k++ {
				v := float64(in[base+k*inner])
				switch kind {
				case reduceSum, reduceMean:
					acc += v
				case reduceProd:
					acc *= v
				case reduceMax:
					if v > acc || math.IsNaN(v) {
						acc = v
					}
				case reduceMin:
					if v < acc || math.IsNaN(v) {
						acc = v
					}
				}
				if math.IsNaN(acc) && (kind == reduceMax || kind == reduceMin) {
					break
				}
			}
			if kind == reduceMean {
				acc /= float64(n)
			}
			out[o*inner+i] = F(acc)
		}
	}
}

// reduceInt accumulates sums and products in int64 and wraps on store.
func reduceInt[I integer](in, out []I, outer, n, inner int, kind reduceKind) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*n*inner + i
			var acc int64
			if kind == reduceProd {
				acc = 1
			}
			for k := 0; k < n; k++ {
				v := int64(in[base+k*inner])
				switch kind {
				case reduceSum:
					acc += v
				case reduceProd:
					acc *= v
				case reduceMax:
					if k == 0 || v > acc {
						acc = v
					}
				case reduceMin:
					if k == 0 || v < acc {
						acc = v
					}
				}
			}
			out[o*inner+i] = I(acc)
		}
	}
}

func reduceAll(x *Tensor, kind reduceKind) (*Tensor, error) {
	return reduce(x, kind, 1, x.NumElements(), 1, Shape{})
}

func reduceAxis(x *Tensor, kind reduceKind, axis int, keepDim bool) (*Tensor, error) {
	ndim := len(x.shape)
	a, ok := normalizeAxis(axis, ndim)
	if !ok {
		return nil, shapeErrorf(kind.String(), x.shape, "axis %d out of range for %dD tensor", axis, ndim)
	}
	outer, n, inner := x.shape.splitAxis(a)

	var outShape Shape
	if keepDim {
		outShape = x.shape.Clone()
		outShape[a] = 1
	} else {
		outShape = make(Shape, 0, ndim-1)
		outShape = append(outShape, x.shape[:a]...)
		outShape = append(outShape, x.shape[a+1:]...)
	}
	return reduce(x, kind, outer, n, inner, outShape)
}

// Sum returns the rank-0 sum of all elements. Float sums accumulate in
// float64; integer sums accumulate in int64 and wrap to the dtype.
func (t *Tensor) Sum() (*Tensor, error) { return reduceAll(t, reduceSum) }

// Prod returns the rank-0 product of all elements. Prod of empty is 1.
func (t *Tensor) Prod() (*Tensor, error) { return reduceAll(t, reduceProd) }

// Mean returns the rank-0 mean of a floating tensor. Mean of empty is NaN.
func (t *Tensor) Mean() (*Tensor, error) { return reduceAll(t, reduceMean) }

// Max returns the rank-0 maximum. NaN propagates; empty input is a ShapeError.
func (t *Tensor) Max() (*Tensor, error) { return reduceAll(t, reduceMax) }

// Min returns the rank-0 minimum. NaN propagates; empty input is a ShapeError.
func (t *Tensor) Min() (*Tensor, error) { return reduceAll(t, reduceMin) }

// SumAxis sums along axis (negative counts from the end).
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3, 4}, tensor.Float32)
//	y, _ := x.SumAxis(-1, true)  // shape: [2, 3, 1]
//	z, _ := x.SumAxis(-1, false) // shape: [2, 3]
func (t *Tensor) SumAxis(axis int, keepDim bool) (*Tensor, error) {
	return reduceAxis(t, reduceSum, axis, keepDim)
}

// MeanAxis averages along axis.
func (t *Tensor) MeanAxis(axis int, keepDim bool) (*Tensor, error) {
	return reduceAxis(t, reduceMean, axis, keepDim)
}

// MaxAxis takes the maximum along axis.
func (t *Tensor) MaxAxis(axis int, keepDim bool) (*Tensor, error) {
	return reduceAxis(t, reduceMax, axis, keepDim)
}

// MinAxis takes the minimum along axis.
func (t *Tensor) MinAxis(axis int, keepDim bool) (*Tensor, error) {
	return reduceAxis(t, reduceMin, axis, keepDim)
}

// Softmax normalizes exp(x) along axis so each slice sums to 1.
// The maximum is subtracted first for numerical stability.
func (t *Tensor) Softmax(axis int) (*Tensor, error) {
	if !t.dtype.IsFloat() {
		return nil, &DTypeError{Op: "softmax", DType: t.dtype, Details: "requires a floating dtype"}
	}
	a, ok := normalizeAxis(axis, len(t.shape))
	if !ok {
		return nil, shapeErrorf("softmax", t.shape, "axis %d out of range for %dD tensor", axis, len(t.shape))
	}
	outer, n, inner := t.shape.splitAxis(a)
	out := Zeros(t.shape, t.dtype)
	switch t.dtype {
	case Float32:
		softmax(t.AsFloat32(), out.AsFloat32(), outer, n, inner)
	case Float64:
		softmax(t.AsFloat64(), out.AsFloat64(), outer, n, inner)
	default:
		panic(fmt.Sprintf("softmax: unreachable dtype %s", t.dtype))
	}
	return out, nil
}

func softmax[F floating](in, out []F, outer, n, inner int) {
	exps := make([]float64, n)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*n*inner + i
			maxVal := math.Inf(-1)
			for k := 0; k < n; k++ {
				maxVal = math.Max(maxVal, float64(in[base+k*inner]))
			}
			var sum float64
			for k := 0; k < n; k++ {
				exps[k] = math.Exp(float64(in[base+k*inner]) - maxVal)
				sum += exps[k]
			}
			for k := 0; k < n; k++ {
				out[base+k*inner] = F(exps[k] / sum)
			}
		}
	}
}
