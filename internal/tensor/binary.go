package tensor

import "fmt"

// binaryOp applies a <op> b with NumPy-style broadcasting.
// Both operands must share a numeric dtype.
func binaryOp(name string, a, b *Tensor, op arith) (*Tensor, error) {
	if a.dtype != b.dtype {
		return nil, &DTypeError{Op: name, DType: a.dtype, Details: fmt.Sprintf("operand dtypes differ (%s vs %s)", a.dtype, b.dtype)}
	}
	if a.dtype == Bool {
		return nil, dtypeError(name, a.dtype)
	}
	outShape, needsBroadcast, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, &ShapeError{Op: name, Shape: a.shape.Clone(), Details: err.Error()}
	}
	if op == arithDiv && a.dtype.IsInteger() && hasZero(b) {
		return nil, &DivideByZeroError{Op: name, Details: fmt.Sprintf("integer divisor of dtype %s contains zero", b.dtype)}
	}

	out := Zeros(outShape, a.dtype)
	switch a.dtype {
	case Float32:
		broadcastArith(a.AsFloat32(), b.AsFloat32(), out.AsFloat32(), a.shape, b.shape, outShape, needsBroadcast, op)
	case Float64:
		broadcastArith(a.AsFloat64(), b.AsFloat64(), out.AsFloat64(), a.shape, b.shape, outShape, needsBroadcast, op)
	case Int32:
		broadcastArith(a.AsInt32(), b.AsInt32(), out.AsInt32(), a.shape, b.shape, outShape, needsBroadcast, op)
	case Int64:
		broadcastArith(a.AsInt64(), b.AsInt64(), out.AsInt64(), a.shape, b.shape, outShape, needsBroadcast, op)
	case Uint8:
		broadcastArith(a.AsUint8(), b.AsUint8(), out.AsUint8(), a.shape, b.shape, outShape, needsBroadcast, op)
	}
	return out, nil
}

func broadcastArith[N numeric](a, b, out []N, aShape, bShape, outShape Shape, needsBroadcast bool, op arith) {
	if !needsBroadcast {
		// Fast path: same shape
		for i := range out {
			out[i] = applyArith(op, a[i], b[i])
		}
		return
	}
	forEachBroadcast(aShape, bShape, outShape, func(o, ia, ib int) {
		out[o] = applyArith(op, a[ia], b[ib])
	})
}

// forEachBroadcast calls fn(outIndex, aIndex, bIndex) for every element of
// outShape in row-major order.
func forEachBroadcast(aShape, bShape, outShape Shape, fn func(o, ia, ib int)) {
	total := outShape.NumElements()
	if total == 0 {
		return
	}
	ndim := len(outShape)
	if ndim == 0 {
		fn(0, 0, 0)
		return
	}
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)

	idx := make([]int, ndim)
	ia, ib := 0, 0
	for o := 0; o < total; o++ {
		fn(o, ia, ib)
		for j := ndim - 1; j >= 0; j-- {
			idx[j]++
			ia += aStrides[j]
			ib += bStrides[j]
			if idx[j] < outShape[j] {
				break
			}
			ia -= idx[j] * aStrides[j]
			ib -= idx[j] * bStrides[j]
			idx[j] = 0
		}
	}
}

func hasZero(t *Tensor) bool {
	switch t.dtype {
	case Int32:
		return containsZero(t.AsInt32())
	case Int64:
		return containsZero(t.AsInt64())
	case Uint8:
		return containsZero(t.AsUint8())
	default:
		return false
	}
}

func containsZero[I integer](data []I) bool {
	for _, v := range data {
		if v == 0 {
			return true
		}
	}
	return false
}

// Add performs element-wise addition with broadcasting.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	return binaryOp("add", t, other, arithAdd)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	return binaryOp("sub", t, other, arithSub)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	return binaryOp("mul", t, other, arithMul)
}

// Div performs element-wise division with broadcasting.
// Integer operands reject a zero anywhere in the divisor.
func (t *Tensor) Div(other *Tensor) (*Tensor, error) {
	return binaryOp("div", t, other, arithDiv)
}
