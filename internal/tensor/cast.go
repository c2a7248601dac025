package tensor

// Cast converts t to dtype. Float to integer conversion truncates toward
// zero; any nonzero value becomes true in Bool; true becomes 1.
// Casting to the same dtype returns a deep copy.
func (t *Tensor) Cast(dtype DataType) (*Tensor, error) {
	if !dtype.Valid() {
		return nil, dtypeError("cast", dtype)
	}
	if dtype == t.dtype {
		return t.Copy(), nil
	}
	out := Zeros(t.shape, dtype)
	switch dtype {
	case Float32:
		castInto(t, out.AsFloat32())
	case Float64:
		castInto(t, out.AsFloat64())
	case Int32:
		castInto(t, out.AsInt32())
	case Int64:
		castInto(t, out.AsInt64())
	case Uint8:
		castInto(t, out.AsUint8())
	case Bool:
		truthy(t, out.AsBool())
	}
	return out, nil
}

func castInto[D numeric](src *Tensor, out []D) {
	switch src.dtype {
	case Float32:
		convertSlice(src.AsFloat32(), out)
	case Float64:
		convertSlice(src.AsFloat64(), out)
	case Int32:
		convertSlice(src.AsInt32(), out)
	case Int64:
		convertSlice(src.AsInt64(), out)
	case Uint8:
		convertSlice(src.AsUint8(), out)
	case Bool:
		for i, v := range src.AsBool() {
			if v {
				out[i] = 1
			}
		}
	}
}

func convertSlice[S, D numeric](in []S, out []D) {
	for i, v := range in {
		out[i] = D(v)
	}
}

// truthy writes x != 0 (or the bool itself) for every element. NaN is truthy.
func truthy(src *Tensor, out []bool) {
	switch src.dtype {
	case Float32:
		nonZero(src.AsFloat32(), out)
	case Float64:
		nonZero(src.AsFloat64(), out)
	case Int32:
		nonZero(src.AsInt32(), out)
	case Int64:
		nonZero(src.AsInt64(), out)
	case Uint8:
		nonZero(src.AsUint8(), out)
	case Bool:
		copy(out, src.AsBool())
	}
}

func nonZero[N numeric](in []N, out []bool) {
	for i, v := range in {
		out[i] = v != 0
	}
}

// Not computes element-wise logical NOT of a Bool tensor.
func (t *Tensor) Not() (*Tensor, error) {
	if t.dtype != Bool {
		return nil, &DTypeError{Op: "not", DType: t.dtype, Details: "tensor must be bool dtype"}
	}
	out := Zeros(t.shape, Bool)
	dst := out.AsBool()
	for i, v := range t.AsBool() {
		dst[i] = !v
	}
	return out, nil
}

// ToFloat is the promotion used by image transforms: floating tensors pass
// through unchanged, integer tensors become a Float32 copy, Bool is a
// DTypeError reported under op.
func ToFloat(op string, t *Tensor) (*Tensor, error) {
	switch {
	case t.dtype.IsFloat():
		return t, nil
	case t.dtype.IsInteger():
		return t.Cast(Float32)
	default:
		return nil, dtypeError(op, t.dtype)
	}
}
