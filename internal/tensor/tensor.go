package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// tensorBuffer is a reference-counted byte buffer shared by a tensor and its
// views (Clone, Reshape, Squeeze, Unsqueeze).
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
	external bool       // data is caller memory wrapped by View
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count.
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and drops the backing slice at 0.
// External memory is only dereferenced, never reused or freed.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (tb *tensorBuffer) isUnique() bool {
	return tb.refCount.Load() == 1
}

// Tensor is a dense N-dimensional array with a shape and element type fixed
// at construction. Storage is always contiguous and row-major.
//
// Tensors are values: every operation returns a new Tensor and leaves its
// inputs untouched. The only exception is Mut().Neg().
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y, _ := x.Exp()
//	z, _ := y.Permute(1, 0)
type Tensor struct {
	buffer *tensorBuffer // Shared reference-counted buffer
	shape  Shape         // Tensor dimensions
	stride []int         // Memory strides (row-major)
	dtype  DataType      // Runtime type information
}

// Zeros creates a zero-filled tensor. It panics on a negative dimension or an
// unknown dtype; use New when the shape comes from untrusted input.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float32)
func Zeros(shape Shape, dtype DataType) *Tensor {
	t, err := New(shape, dtype)
	if err != nil {
		panic(err)
	}
	return t
}

// New creates a zero-filled tensor with the given shape and type.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, &ShapeError{Op: "new", Shape: shape.Clone(), Details: err.Error()}
	}
	if !dtype.Valid() {
		return nil, dtypeError("new", dtype)
	}

	return &Tensor{
		buffer: newTensorBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType](data []T, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, &ShapeError{Op: "fromSlice", Shape: shape.Clone(), Details: err.Error()}
	}
	if shape.NumElements() != len(data) {
		return nil, shapeErrorf("fromSlice", shape, "requires %d elements, but got %d", shape.NumElements(), len(data))
	}

	var dummy T
	t, err := New(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	copy(Values[T](t), data)
	return t, nil
}

// View wraps caller-owned memory without copying it.
//
// The returned tensor holds a non-owning reference: the caller must keep data
// alive and unmodified by others for as long as the view (or anything derived
// from it by Reshape, Squeeze or Unsqueeze) is in use. This is how pixel
// buffers handed over a language boundary are ingested.
func View[T DType](data []T, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, &ShapeError{Op: "view", Shape: shape.Clone(), Details: err.Error()}
	}
	if shape.NumElements() != len(data) {
		return nil, shapeErrorf("view", shape, "requires %d elements, but got %d", shape.NumElements(), len(data))
	}

	var dummy T
	dtype := inferDataType(dummy)
	var raw []byte
	if len(data) > 0 {
		//nolint:gosec // unsafe.Slice for zero-copy ingestion, length derived from len(data)
		raw = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*dtype.Size())
	}

	buf := &tensorBuffer{data: raw, external: true}
	buf.refCount.Store(1)
	return &Tensor{
		buffer: buf,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(tensor.Shape{3, 3}, float32(3.14))
func Full[T DType](shape Shape, value T) (*Tensor, error) {
	var dummy T
	t, err := New(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}
	data := Values[T](t)
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// Scalar creates a rank-0 tensor holding v.
func Scalar[T DType](v T) *Tensor {
	var dummy T
	t := Zeros(Shape{}, inferDataType(dummy))
	Values[T](t)[0] = v
	return t
}

// Values returns a typed zero-copy view of t's elements.
// Panics if T does not match t's dtype.
//
// WARNING: Modifications to the returned slice modify the tensor.
func Values[T DType](t *Tensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(t.AsFloat32()).([]T)
	case float64:
		return any(t.AsFloat64()).([]T)
	case int32:
		return any(t.AsInt32()).([]T)
	case int64:
		return any(t.AsInt64()).([]T)
	case uint8:
		return any(t.AsUint8()).([]T)
	case bool:
		return any(t.AsBool()).([]T)
	default:
		panic("unsupported type")
	}
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Dim returns the rank of the tensor.
func (t *Tensor) Dim() int {
	return len(t.shape)
}

// Strides returns the tensor's memory strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// DType returns the tensor's data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (t *Tensor) ByteSize() int {
	return t.NumElements() * t.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (t *Tensor) Data() []byte {
	return t.buffer.data[:t.ByteSize()]
}

// IsView reports whether t wraps caller-owned memory.
func (t *Tensor) IsView() bool {
	return t.buffer.external
}

// IsUnique returns true if this tensor is the only reference to its buffer.
func (t *Tensor) IsUnique() bool {
	return t.buffer.isUnique()
}

// SharesBuffer reports whether t and other read the same memory.
func (t *Tensor) SharesBuffer(other *Tensor) bool {
	return t.buffer == other.buffer
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (t *Tensor) AsFloat32() []float32 {
	if t.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", t.dtype))
	}
	return typedSlice[float32](t)
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (t *Tensor) AsFloat64() []float64 {
	if t.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", t.dtype))
	}
	return typedSlice[float64](t)
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (t *Tensor) AsInt32() []int32 {
	if t.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", t.dtype))
	}
	return typedSlice[int32](t)
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (t *Tensor) AsInt64() []int64 {
	if t.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", t.dtype))
	}
	return typedSlice[int64](t)
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (t *Tensor) AsUint8() []uint8 {
	if t.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", t.dtype))
	}
	return t.buffer.data[:t.NumElements()] // Already []byte = []uint8
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (t *Tensor) AsBool() []bool {
	if t.dtype != Bool {
		panic(fmt.Sprintf("tensor dtype is %s, not bool", t.dtype))
	}
	return typedSlice[bool](t)
}

func typedSlice[T DType](t *Tensor) []T {
	n := t.NumElements()
	if n == 0 {
		return []T{}
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&t.buffer.data[0])), n)
}

// offset computes the flat index of indices, validating bounds.
func (t *Tensor) offset(indices []int) (int, error) {
	if len(indices) != len(t.shape) {
		return 0, shapeErrorf("at", t.shape, "expected %d indices, got %d", len(t.shape), len(indices))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			return 0, shapeErrorf("at", t.shape, "index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i])
		}
		off += idx * t.stride[i]
	}
	return off, nil
}

// At returns the element at the given indices as a Go value
// (float32, float64, int32, int64, uint8 or bool).
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float32)
//	v, _ := t.At(1, 2) // Row 1, column 2
func (t *Tensor) At(indices ...int) (any, error) {
	off, err := t.offset(indices)
	if err != nil {
		return nil, err
	}
	return t.elem(off), nil
}

// Float64At returns the element at the given indices widened to float64.
// Bool elements read as 0 or 1.
func (t *Tensor) Float64At(indices ...int) (float64, error) {
	off, err := t.offset(indices)
	if err != nil {
		return 0, err
	}
	return t.float64At(off), nil
}

// Item returns the value of a single-element tensor.
// Panics if the tensor does not hold exactly one element.
func (t *Tensor) Item() any {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.shape))
	}
	return t.elem(0)
}

func (t *Tensor) elem(i int) any {
	switch t.dtype {
	case Float32:
		return t.AsFloat32()[i]
	case Float64:
		return t.AsFloat64()[i]
	case Int32:
		return t.AsInt32()[i]
	case Int64:
		return t.AsInt64()[i]
	case Uint8:
		return t.AsUint8()[i]
	case Bool:
		return t.AsBool()[i]
	default:
		panic("unknown data type")
	}
}

func (t *Tensor) float64At(i int) float64 {
	switch t.dtype {
	case Float32:
		return float64(t.AsFloat32()[i])
	case Float64:
		return t.AsFloat64()[i]
	case Int32:
		return float64(t.AsInt32()[i])
	case Int64:
		return float64(t.AsInt64()[i])
	case Uint8:
		return float64(t.AsUint8()[i])
	case Bool:
		if t.AsBool()[i] {
			return 1
		}
		return 0
	default:
		panic("unknown data type")
	}
}

// Float64s returns a copy of all elements widened to float64.
func (t *Tensor) Float64s() []float64 {
	out := make([]float64, t.NumElements())
	for i := range out {
		out[i] = t.float64At(i)
	}
	return out
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.dtype, []int(t.shape))
}

// Clone creates a shallow copy of the Tensor (shares buffer with reference counting).
// A later in-place mutation through either tensor is visible through both.
func (t *Tensor) Clone() *Tensor {
	return t.withShape(t.shape.Clone())
}

// Copy creates a deep copy that owns fresh memory, even when t is a View.
func (t *Tensor) Copy() *Tensor {
	out := Zeros(t.shape, t.dtype)
	copy(out.buffer.data, t.Data())
	return out
}

// Release decrements the reference count and drops the buffer at 0.
func (t *Tensor) Release() {
	t.buffer.release()
}

// withShape returns a tensor sharing t's buffer under a new shape.
// The caller guarantees shape has t's element count.
func (t *Tensor) withShape(shape Shape) *Tensor {
	t.buffer.addRef()
	return &Tensor{
		buffer: t.buffer,
		shape:  shape,
		stride: shape.ComputeStrides(),
		dtype:  t.dtype,
	}
}
