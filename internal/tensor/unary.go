package tensor

import "math"

// intRule says how a unary op treats integer dtypes.
type intRule int

const (
	intReject   intRule = iota // float-only op: DTypeError
	intIdentity                // floor/ceil/round/trunc on integers
	intAbs
	intNeg
	intSquare
)

type unaryOp struct {
	name string
	fn   func(float64) float64
	ints intRule
}

func square(x float64) float64 { return x * x }

func neg(x float64) float64 { return -x }

var (
	opAbs   = unaryOp{"abs", math.Abs, intAbs}
	opFloor = unaryOp{"floor", math.Floor, intIdentity}
	opCeil  = unaryOp{"ceil", math.Ceil, intIdentity}
	opRound = unaryOp{"round", math.RoundToEven, intIdentity}
	opTrunc = unaryOp{"trunc", math.Trunc, intIdentity}
	opNeg   = unaryOp{"neg", neg, intNeg}
	opSq    = unaryOp{"square", square, intSquare}

	opExp   = unaryOp{"exp", math.Exp, intReject}
	opLog   = unaryOp{"log", math.Log, intReject}
	opLog2  = unaryOp{"log2", math.Log2, intReject}
	opLog10 = unaryOp{"log10", math.Log10, intReject}
	opSqrt  = unaryOp{"sqrt", math.Sqrt, intReject}
	opCbrt  = unaryOp{"cbrt", math.Cbrt, intReject}
	opSin   = unaryOp{"sin", math.Sin, intReject}
	opCos   = unaryOp{"cos", math.Cos, intReject}
	opTan   = unaryOp{"tan", math.Tan, intReject}
	opAsin  = unaryOp{"asin", math.Asin, intReject}
	opAcos  = unaryOp{"acos", math.Acos, intReject}
	opAtan  = unaryOp{"atan", math.Atan, intReject}
	opSinh  = unaryOp{"sinh", math.Sinh, intReject}
	opCosh  = unaryOp{"cosh", math.Cosh, intReject}
	opTanh  = unaryOp{"tanh", math.Tanh, intReject}
	opAsinh = unaryOp{"asinh", math.Asinh, intReject}
	opAcosh = unaryOp{"acosh", math.Acosh, intReject}
	opAtanh = unaryOp{"atanh", math.Atanh, intReject}
)

// check reports whether op accepts dtype, before anything is allocated or written.
func (op unaryOp) check(dt DataType) error {
	switch {
	case dt.IsFloat():
		return nil
	case dt.IsInteger() && op.ints != intReject:
		return nil
	case dt.IsInteger():
		return &DTypeError{Op: op.name, DType: dt, Details: "requires a floating dtype"}
	default:
		return dtypeError(op.name, dt)
	}
}

// apply evaluates op over x into out, which may be x itself.
func (op unaryOp) apply(x, out *Tensor) {
	switch x.dtype {
	case Float32:
		mapFloat(x.AsFloat32(), out.AsFloat32(), op.fn)
	case Float64:
		mapFloat(x.AsFloat64(), out.AsFloat64(), op.fn)
	case Int32:
		mapInt(x.AsInt32(), out.AsInt32(), op.ints)
	case Int64:
		mapInt(x.AsInt64(), out.AsInt64(), op.ints)
	case Uint8:
		mapInt(x.AsUint8(), out.AsUint8(), op.ints)
	}
}

func (op unaryOp) run(x *Tensor) (*Tensor, error) {
	if err := op.check(x.dtype); err != nil {
		return nil, err
	}
	out := Zeros(x.shape, x.dtype)
	op.apply(x, out)
	return out, nil
}

// mapFloat evaluates fn in float64 and rounds once to F.
func mapFloat[F floating](in, out []F, fn func(float64) float64) {
	for i, v := range in {
		out[i] = F(fn(float64(v)))
	}
}

// mapInt applies an integer rule. Negation and abs wrap like Go arithmetic.
func mapInt[I integer](in, out []I, rule intRule) {
	switch rule {
	case intIdentity:
		copy(out, in)
	case intAbs:
		for i, v := range in {
			if v < 0 {
				v = -v
			}
			out[i] = v
		}
	case intNeg:
		for i, v := range in {
			out[i] = -v
		}
	case intSquare:
		for i, v := range in {
			out[i] = v * v
		}
	}
}

// Abs computes element-wise |x|. Integer dtypes are preserved.
func (t *Tensor) Abs() (*Tensor, error) { return opAbs.run(t) }

// Floor rounds toward negative infinity. Identity on integers.
func (t *Tensor) Floor() (*Tensor, error) { return opFloor.run(t) }

// Ceil rounds toward positive infinity. Identity on integers.
func (t *Tensor) Ceil() (*Tensor, error) { return opCeil.run(t) }

// Round rounds half to even. Identity on integers.
func (t *Tensor) Round() (*Tensor, error) { return opRound.run(t) }

// Trunc rounds toward zero. Identity on integers.
func (t *Tensor) Trunc() (*Tensor, error) { return opTrunc.run(t) }

// Neg computes element-wise -x into a new tensor. See Mut for the in-place form.
func (t *Tensor) Neg() (*Tensor, error) { return opNeg.run(t) }

// Square computes element-wise x*x.
func (t *Tensor) Square() (*Tensor, error) { return opSq.run(t) }

// Exp computes element-wise exponential: exp(x).
func (t *Tensor) Exp() (*Tensor, error) { return opExp.run(t) }

// Log computes element-wise natural logarithm: ln(x).
// Non-positive inputs follow IEEE semantics (-Inf, NaN).
func (t *Tensor) Log() (*Tensor, error) { return opLog.run(t) }

// Log2 computes element-wise base-2 logarithm.
func (t *Tensor) Log2() (*Tensor, error) { return opLog2.run(t) }

// Log10 computes element-wise base-10 logarithm.
func (t *Tensor) Log10() (*Tensor, error) { return opLog10.run(t) }

// Sqrt computes element-wise square root: sqrt(x).
func (t *Tensor) Sqrt() (*Tensor, error) { return opSqrt.run(t) }

// Cbrt computes element-wise cube root.
func (t *Tensor) Cbrt() (*Tensor, error) { return opCbrt.run(t) }

// Sin computes element-wise sine.
func (t *Tensor) Sin() (*Tensor, error) { return opSin.run(t) }

// Cos computes element-wise cosine.
func (t *Tensor) Cos() (*Tensor, error) { return opCos.run(t) }

// Tan computes element-wise tangent.
func (t *Tensor) Tan() (*Tensor, error) { return opTan.run(t) }

// Asin computes element-wise arcsine.
func (t *Tensor) Asin() (*Tensor, error) { return opAsin.run(t) }

// Acos computes element-wise arccosine.
func (t *Tensor) Acos() (*Tensor, error) { return opAcos.run(t) }

// Atan computes element-wise arctangent.
func (t *Tensor) Atan() (*Tensor, error) { return opAtan.run(t) }

// Sinh computes element-wise hyperbolic sine.
func (t *Tensor) Sinh() (*Tensor, error) { return opSinh.run(t) }

// Cosh computes element-wise hyperbolic cosine.
func (t *Tensor) Cosh() (*Tensor, error) { return opCosh.run(t) }

// Tanh computes element-wise hyperbolic tangent.
func (t *Tensor) Tanh() (*Tensor, error) { return opTanh.run(t) }

// Asinh computes element-wise inverse hyperbolic sine.
func (t *Tensor) Asinh() (*Tensor, error) { return opAsinh.run(t) }

// Acosh computes element-wise inverse hyperbolic cosine.
func (t *Tensor) Acosh() (*Tensor, error) { return opAcosh.run(t) }

// Atanh computes element-wise inverse hyperbolic tangent.
func (t *Tensor) Atanh() (*Tensor, error) { return opAtanh.run(t) }
