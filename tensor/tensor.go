// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorkit/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense N-dimensional array.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
//	y, _ := x.AddScalar(1)
type Tensor = tensor.Tensor

// Mut is mutating access to a tensor, obtained from Tensor.Mut.
type Mut = tensor.Mut

// ParseDataType maps a dtype name ("float32", "uint8", ...) to its DataType.
func ParseDataType(name string) (DataType, bool) {
	return tensor.ParseDataType(name)
}

// BroadcastShapes returns the NumPy-style broadcast of a and b.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// Zeros creates a zero-filled tensor. It panics on an invalid shape or dtype.
func Zeros(shape Shape, dtype DataType) *Tensor {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *Tensor {
	return tensor.Ones(shape, dtype)
}

// New creates a zero-filled tensor, returning an error on an invalid shape or dtype.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	return tensor.New(shape, dtype)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice[T DType](data []T, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// View wraps data without copying. The caller must keep data alive and
// unmodified by others while the tensor is in use.
func View[T DType](data []T, shape Shape) (*Tensor, error) {
	return tensor.View(data, shape)
}

// Full creates a tensor filled with value.
func Full[T DType](shape Shape, value T) (*Tensor, error) {
	return tensor.Full(shape, value)
}

// Scalar creates a rank-0 tensor.
func Scalar[T DType](v T) *Tensor {
	return tensor.Scalar(v)
}

// Values returns a typed zero-copy view of t's elements.
func Values[T DType](t *Tensor) []T {
	return tensor.Values[T](t)
}

// Arange creates the 1D tensor 0, 1, ..., n-1.
func Arange(n int, dtype DataType) (*Tensor, error) {
	return tensor.Arange(n, dtype)
}

// All reports (as a rank-0 Bool tensor) whether every element is truthy.
func All(x *Tensor) *Tensor {
	return tensor.All(x)
}

// Any reports (as a rank-0 Bool tensor) whether some element is truthy.
func Any(x *Tensor) *Tensor {
	return tensor.Any(x)
}

// None is the negation of Any.
func None(x *Tensor) *Tensor {
	return tensor.None(x)
}
