package tensor

// Mut is exclusive, mutating access to a tensor's buffer.
//
// Every tensor sharing the buffer observes writes made through Mut: the
// tensor itself, its Clones, and views from Reshape, Squeeze, Unsqueeze or
// Flatten. A View over caller memory writes straight into that memory.
// The engine does no locking; the caller must not read or write t from other
// goroutines while a Mut method runs.
type Mut struct {
	t *Tensor
}

// Mut returns mutating access to t.
func (t *Tensor) Mut() *Mut {
	return &Mut{t: t}
}

// Tensor returns the tensor being mutated.
func (m *Mut) Tensor() *Tensor {
	return m.t
}

// Neg negates every element in place and returns the same *Tensor it was
// obtained from. It fails before writing anything on unsupported dtypes.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{1, -2}, tensor.Shape{2})
//	y, _ := x.Mut().Neg() // y == x, x now holds [-1, 2]
func (m *Mut) Neg() (*Tensor, error) {
	if err := opNeg.check(m.t.dtype); err != nil {
		return nil, err
	}
	opNeg.apply(m.t, m.t)
	return m.t, nil
}
