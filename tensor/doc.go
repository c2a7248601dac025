// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense, CPU-resident tensor of tensorkit.
//
// # Overview
//
// A Tensor has a shape, an element type fixed at construction, and a
// contiguous row-major buffer. This package provides:
//   - Construction from Go slices (copy) or caller memory (View, no copy)
//   - Shape operations: Reshape, Permute, Squeeze, Unsqueeze
//   - Elementwise math with NumPy-style broadcasting
//   - Boolean and numeric reductions
//
// # Basic Usage
//
//	import "github.com/born-ml/tensorkit/tensor"
//
//	func main() {
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    y, _ := x.DivScalar(2)
//	    z, _ := y.Permute(1, 0)
//	    fmt.Println(z.AsFloat32()) // [0.5 1.5 1 2]
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
//
// # Errors
//
// Operations return *ShapeError, *DTypeError or *DivideByZeroError. Each
// matches its sentinel with errors.Is:
//
//	if _, err := x.Permute(0, 0); errors.Is(err, tensor.ErrShape) {
//	    // ...
//	}
//
// # Memory Management
//
// Every operation returns a new tensor. Reshape, Squeeze and Unsqueeze share
// the reference-counted buffer of their input; Permute copies. The one
// in-place operation, Mut().Neg(), is visible through every tensor sharing
// the buffer.
package tensor
