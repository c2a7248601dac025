package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnaryFloat(t *testing.T) {
	in := []float64{-2.5, -0.5, 0.5, 1.5, 2.5}
	x := mustFromSlice(t, in, Shape{5})

	tests := []struct {
		name string
		op   func(*Tensor) (*Tensor, error)
		fn   func(float64) float64
	}{
		{"abs", (*Tensor).Abs, math.Abs},
		{"floor", (*Tensor).Floor, math.Floor},
		{"ceil", (*Tensor).Ceil, math.Ceil},
		{"trunc", (*Tensor).Trunc, math.Trunc},
		{"neg", (*Tensor).Neg, func(v float64) float64 { return -v }},
		{"square", (*Tensor).Square, func(v float64) float64 { return v * v }},
		{"exp", (*Tensor).Exp, math.Exp},
		{"sin", (*Tensor).Sin, math.Sin},
		{"cos", (*Tensor).Cos, math.Cos},
		{"tan", (*Tensor).Tan, math.Tan},
		{"atan", (*Tensor).Atan, math.Atan},
		{"sinh", (*Tensor).Sinh, math.Sinh},
		{"cosh", (*Tensor).Cosh, math.Cosh},
		{"tanh", (*Tensor).Tanh, math.Tanh},
		{"cbrt", (*Tensor).Cbrt, math.Cbrt},
		{"asinh", (*Tensor).Asinh, math.Asinh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, err := tt.op(x)
			require.NoError(t, err)
			assert.Equal(t, x.Shape(), y.Shape())
			assert.Equal(t, Float64, y.DType())
			for i, v := range in {
				assert.Equal(t, tt.fn(v), y.AsFloat64()[i], "element %d", i)
			}
		})
	}

	// Input untouched.
	assert.Equal(t, in, x.AsFloat64())
}

func TestRoundHalfToEven(t *testing.T) {
	x := mustFromSlice(t, []float32{-2.5, -1.5, -0.5, 0.5, 1.5, 2.5, 2.6}, Shape{7})
	y, err := x.Round()
	require.NoError(t, err)
	assert.Equal(t, []float32{-2, -2, 0, 0, 2, 2, 3}, y.AsFloat32())
}

func TestUnaryDomain(t *testing.T) {
	x := mustFromSlice(t, []float64{-1, 0, 4}, Shape{3})

	y, err := x.Sqrt()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(y.AsFloat64()[0]))
	assert.Equal(t, []float64{0, 2}, y.AsFloat64()[1:])

	l, err := x.Log()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(l.AsFloat64()[0]))
	assert.True(t, math.IsInf(l.AsFloat64()[1], -1))

	p := mustFromSlice(t, []float64{8, 100}, Shape{2})
	l2, err := p.Log2()
	require.NoError(t, err)
	assert.Equal(t, 3.0, l2.AsFloat64()[0])
	l10, err := p.Log10()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, l10.AsFloat64()[1], 1e-12)

	u := mustFromSlice(t, []float64{0.5}, Shape{1})
	for _, op := range []func(*Tensor) (*Tensor, error){(*Tensor).Asin, (*Tensor).Acos, (*Tensor).Atanh} {
		r, err := op(u)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(r.AsFloat64()[0]))
	}
	a, err := mustFromSlice(t, []float64{1}, Shape{1}).Acosh()
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.AsFloat64()[0])
}

func TestUnaryFloat32RoundsOnce(t *testing.T) {
	v := float32(0.1)
	x := mustFromSlice(t, []float32{v}, Shape{1})
	y, err := x.Exp()
	require.NoError(t, err)
	assert.Equal(t, float32(math.Exp(float64(v))), y.AsFloat32()[0])
}

func TestUnaryIntegers(t *testing.T) {
	x := mustFromSlice(t, []int32{-3, 0, 7}, Shape{3})

	for _, op := range []func(*Tensor) (*Tensor, error){(*Tensor).Floor, (*Tensor).Ceil, (*Tensor).Round, (*Tensor).Trunc} {
		y, err := op(x)
		require.NoError(t, err)
		assert.Equal(t, Int32, y.DType())
		assert.Equal(t, []int32{-3, 0, 7}, y.AsInt32())
	}

	abs, err := x.Abs()
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 0, 7}, abs.AsInt32())

	neg, err := x.Neg()
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 0, -7}, neg.AsInt32())

	sq, err := mustFromSlice(t, []int64{-4, 5}, Shape{2}).Square()
	require.NoError(t, err)
	assert.Equal(t, []int64{16, 25}, sq.AsInt64())

	// uint8 negation wraps.
	u, err := mustFromSlice(t, []uint8{1, 0}, Shape{2}).Neg()
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 0}, u.AsUint8())
}

func TestUnaryDTypeErrors(t *testing.T) {
	ints := Zeros(Shape{2}, Int64)
	floatOnly := []func(*Tensor) (*Tensor, error){
		(*Tensor).Exp, (*Tensor).Log, (*Tensor).Log2, (*Tensor).Log10, (*Tensor).Sqrt,
		(*Tensor).Sin, (*Tensor).Cos, (*Tensor).Tan, (*Tensor).Asin, (*Tensor).Acos,
		(*Tensor).Atan, (*Tensor).Sinh, (*Tensor).Cosh, (*Tensor).Tanh,
	}
	for i, op := range floatOnly {
		_, err := op(ints)
		assert.ErrorIs(t, err, ErrDType, "float-only op %d on int64", i)
	}

	bools := Zeros(Shape{2}, Bool)
	for i, op := range []func(*Tensor) (*Tensor, error){(*Tensor).Abs, (*Tensor).Neg, (*Tensor).Floor, (*Tensor).Exp} {
		_, err := op(bools)
		assert.ErrorIs(t, err, ErrDType, "op %d on bool", i)
	}
}

func TestUnaryEmpty(t *testing.T) {
	x := Zeros(Shape{0, 3}, Float32)
	y, err := x.Tanh()
	require.NoError(t, err)
	assert.Equal(t, Shape{0, 3}, y.Shape())
}

func TestMutNeg(t *testing.T) {
	x := mustFromSlice(t, []float32{1, -2, 3}, Shape{3})
	clone := x.Clone()
	reshaped, err := x.Reshape(3, 1)
	require.NoError(t, err)

	y, err := x.Mut().Neg()
	require.NoError(t, err)
	assert.Same(t, x, y, "in-place neg returns the receiver")

	want := []float32{-1, 2, -3}
	assert.Equal(t, want, x.AsFloat32())
	assert.Equal(t, want, clone.AsFloat32(), "clones observe the mutation")
	assert.Equal(t, want, reshaped.AsFloat32(), "views observe the mutation")
}

func TestMutNegView(t *testing.T) {
	pixels := []int32{4, -5}
	v, err := View(pixels, Shape{2})
	require.NoError(t, err)

	m := v.Mut()
	assert.Same(t, v, m.Tensor())
	_, err = m.Neg()
	require.NoError(t, err)
	assert.Equal(t, []int32{-4, 5}, pixels)
}

func TestMutNegRejectsBool(t *testing.T) {
	x := mustFromSlice(t, []bool{true}, Shape{1})
	y, err := x.Mut().Neg()
	assert.Nil(t, y)
	assert.ErrorIs(t, err, ErrDType)
	assert.Equal(t, []bool{true}, x.AsBool())
}
