// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorkit/internal/tensor"
)

// Error kinds matched with errors.Is.
var (
	ErrShape        = tensor.ErrShape
	ErrDType        = tensor.ErrDType
	ErrDivideByZero = tensor.ErrDivideByZero
)

// ShapeError reports a rank, axis or size mismatch.
type ShapeError = tensor.ShapeError

// DTypeError reports an unsupported element type.
type DTypeError = tensor.DTypeError

// DivideByZeroError reports integer division by zero.
type DivideByZeroError = tensor.DivideByZeroError
