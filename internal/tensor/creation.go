package tensor

import (
	"fmt"
	"math/rand"
)

// Ones creates a tensor filled with ones (true for Bool).
//
// Example:
//
//	t := tensor.Ones(tensor.Shape{2, 3}, tensor.Float64)
func Ones(shape Shape, dtype DataType) *Tensor {
	t := Zeros(shape, dtype)
	fillOne(t)
	return t
}

func fillOne(t *Tensor) {
	switch t.dtype {
	case Float32:
		fill(t.AsFloat32(), 1)
	case Float64:
		fill(t.AsFloat64(), 1)
	case Int32:
		fill(t.AsInt32(), 1)
	case Int64:
		fill(t.AsInt64(), 1)
	case Uint8:
		fill(t.AsUint8(), 1)
	case Bool:
		fill(t.AsBool(), true)
	}
}

func fill[T DType](data []T, v T) {
	for i := range data {
		data[i] = v
	}
}

// Arange creates a 1D tensor holding 0, 1, ..., n-1 in the given numeric type.
//
// Example:
//
//	t, _ := tensor.Arange(10, tensor.Int32) // [0, 1, 2, ..., 9]
func Arange(n int, dtype DataType) (*Tensor, error) {
	if n < 0 {
		return nil, shapeErrorf("arange", nil, "length must be >= 0, got %d", n)
	}
	t, err := New(Shape{n}, dtype)
	if err != nil {
		return nil, err
	}
	switch dtype {
	case Float32:
		ramp(t.AsFloat32())
	case Float64:
		ramp(t.AsFloat64())
	case Int32:
		ramp(t.AsInt32())
	case Int64:
		ramp(t.AsInt64())
	case Uint8:
		ramp(t.AsUint8())
	default:
		return nil, dtypeError("arange", dtype)
	}
	return t, nil
}

func ramp[N numeric](data []N) {
	for i := range data {
		data[i] = N(i)
	}
}

// Rand creates a float tensor with values uniformly distributed in [lo, hi).
// Note: Uses math/rand (not crypto/rand) - callers pass a seeded source for
// reproducible data.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	t, _ := tensor.Rand(tensor.Shape{10, 10}, tensor.Float32, 0, 1, rng)
func Rand(shape Shape, dtype DataType, lo, hi float64, rng *rand.Rand) (*Tensor, error) {
	if hi < lo {
		return nil, fmt.Errorf("rand: hi %v < lo %v", hi, lo)
	}
	t, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	span := hi - lo
	switch dtype {
	case Float32:
		data := t.AsFloat32()
		for i := range data {
			data[i] = float32(lo + span*rng.Float64())
		}
	case Float64:
		data := t.AsFloat64()
		for i := range data {
			data[i] = lo + span*rng.Float64()
		}
	default:
		return nil, dtypeError("rand", dtype)
	}
	return t, nil
}
