package tensor

import (
	"fmt"
	"math"
)

type arith int

const (
	arithAdd arith = iota
	arithSub
	arithMul
	arithDiv
)

func (a arith) String() string {
	switch a {
	case arithAdd:
		return "add"
	case arithSub:
		return "sub"
	case arithMul:
		return "mul"
	default:
		return "div"
	}
}

func applyArith[N numeric](op arith, a, b N) N {
	switch op {
	case arithAdd:
		return a + b
	case arithSub:
		return a - b
	case arithMul:
		return a * b
	default:
		return a / b
	}
}

// scalarValue widens any Go numeric value. ok is false for non-numeric input.
func scalarValue(s any) (f float64, i int64, isInt, ok bool) {
	switch v := s.(type) {
	case float32:
		return float64(v), 0, false, true
	case float64:
		return v, 0, false, true
	case int:
		return float64(v), int64(v), true, true
	case int8:
		return float64(v), int64(v), true, true
	case int16:
		return float64(v), int64(v), true, true
	case int32:
		return float64(v), int64(v), true, true
	case int64:
		return float64(v), v, true, true
	case uint:
		return float64(v), int64(v), v <= math.MaxInt64, true //nolint:gosec // G115: range checked in result
	case uint8:
		return float64(v), int64(v), true, true
	case uint16:
		return float64(v), int64(v), true, true
	case uint32:
		return float64(v), int64(v), true, true
	case uint64:
		return float64(v), int64(v), v <= math.MaxInt64, true //nolint:gosec // G115: range checked in result
	default:
		return 0, 0, false, false
	}
}

// scalarInt converts s to an integer of [lo, hi] without loss.
func scalarInt(op string, dt DataType, s any, lo, hi int64) (int64, error) {
	f, i, isInt, ok := scalarValue(s)
	if !ok {
		return 0, &DTypeError{Op: op, DType: dt, Details: fmt.Sprintf("scalar of type %T is not numeric", s)}
	}
	if !isInt {
		if f != math.Trunc(f) || f < float64(lo) || f > float64(hi) || math.Abs(f) >= 1<<63 {
			return 0, &DTypeError{Op: op, DType: dt, Details: fmt.Sprintf("scalar %v is not representable", s)}
		}
		i = int64(f)
	}
	if i < lo || i > hi {
		return 0, &DTypeError{Op: op, DType: dt, Details: fmt.Sprintf("scalar %v is not representable", s)}
	}
	return i, nil
}

func scalarFloat(op string, dt DataType, s any) (float64, error) {
	f, _, _, ok := scalarValue(s)
	if !ok {
		return 0, &DTypeError{Op: op, DType: dt, Details: fmt.Sprintf("scalar of type %T is not numeric", s)}
	}
	if dt == Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, &DTypeError{Op: op, DType: dt, Details: fmt.Sprintf("scalar %g overflows float32", f)}
	}
	return f, nil
}

func scalarLoop[N numeric](in, out []N, s N, op arith) {
	for i, v := range in {
		out[i] = applyArith(op, v, s)
	}
}

// scalarOp applies x <op> s element-wise. s is converted to x's dtype first.
func scalarOp(name string, x *Tensor, s any, op arith) (*Tensor, error) {
	var (
		iv  int64
		fv  float64
		err error
	)
	switch x.dtype {
	case Float32, Float64:
		fv, err = scalarFloat(name, x.dtype, s)
	case Int32:
		iv, err = scalarInt(name, x.dtype, s, math.MinInt32, math.MaxInt32)
	case Int64:
		iv, err = scalarInt(name, x.dtype, s, math.MinInt64, math.MaxInt64)
	case Uint8:
		iv, err = scalarInt(name, x.dtype, s, 0, math.MaxUint8)
	default:
		err = dtypeError(name, x.dtype)
	}
	if err != nil {
		return nil, err
	}
	if op == arithDiv && x.dtype.IsInteger() && iv == 0 {
		return nil, &DivideByZeroError{Op: name, Details: fmt.Sprintf("integer tensor of dtype %s", x.dtype)}
	}

	out := Zeros(x.shape, x.dtype)
	switch x.dtype {
	case Float32:
		scalarLoop(x.AsFloat32(), out.AsFloat32(), float32(fv), op)
	case Float64:
		scalarLoop(x.AsFloat64(), out.AsFloat64(), fv, op)
	case Int32:
		scalarLoop(x.AsInt32(), out.AsInt32(), int32(iv), op)
	case Int64:
		scalarLoop(x.AsInt64(), out.AsInt64(), iv, op)
	case Uint8:
		scalarLoop(x.AsUint8(), out.AsUint8(), uint8(iv), op)
	}
	return out, nil
}

// AddScalar adds a scalar value to each element of the tensor.
// The scalar may be any Go numeric type; it must be exactly representable in
// an integer dtype.
func (t *Tensor) AddScalar(s any) (*Tensor, error) {
	return scalarOp("addScalar", t, s, arithAdd)
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (t *Tensor) SubScalar(s any) (*Tensor, error) {
	return scalarOp("subScalar", t, s, arithSub)
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (t *Tensor) MulScalar(s any) (*Tensor, error) {
	return scalarOp("mulScalar", t, s, arithMul)
}

// DivScalar divides each element of the tensor by a scalar value.
//
// Floating dtypes follow IEEE 754 (x/0 is ±Inf, 0/0 is NaN). Integer dtypes
// truncate toward zero and reject a zero divisor with DivideByZeroError.
func (t *Tensor) DivScalar(s any) (*Tensor, error) {
	return scalarOp("divScalar", t, s, arithDiv)
}

// Clip limits every element to [lo, hi]. Integer dtypes clip to the integers
// inside the range, ceil(lo) and floor(hi).
func (t *Tensor) Clip(lo, hi float64) (*Tensor, error) {
	if lo > hi {
		return nil, fmt.Errorf("clip: lo %v > hi %v", lo, hi)
	}
	if t.dtype.IsInteger() {
		// Integer results must stay inside [lo, hi].
		lo, hi = math.Ceil(lo), math.Floor(hi)
		if lo > hi {
			return nil, &DTypeError{Op: "clip", DType: t.dtype, Details: "no integer lies in the clip range"}
		}
	}
	out := Zeros(t.shape, t.dtype)
	switch t.dtype {
	case Float32:
		clip(t.AsFloat32(), out.AsFloat32(), lo, hi)
	case Float64:
		clip(t.AsFloat64(), out.AsFloat64(), lo, hi)
	case Int32:
		clip(t.AsInt32(), out.AsInt32(), lo, hi)
	case Int64:
		clip(t.AsInt64(), out.AsInt64(), lo, hi)
	case Uint8:
		clip(t.AsUint8(), out.AsUint8(), lo, hi)
	default:
		return nil, dtypeError("clip", t.dtype)
	}
	return out, nil
}

func clip[N numeric](in, out []N, lo, hi float64) {
	for i, v := range in {
		switch f := float64(v); {
		case f < lo:
			out[i] = N(lo)
		case f > hi:
			out[i] = N(hi)
		default:
			out[i] = v
		}
	}
}
