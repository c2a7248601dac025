package tensor

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below matches exactly one of these via errors.Is.
var (
	ErrShape        = errors.New("shape error")
	ErrDType        = errors.New("dtype error")
	ErrDivideByZero = errors.New("divide by zero")
)

// ShapeError reports a rank, axis or size mismatch.
type ShapeError struct {
	Op      string // Operation that rejected the input (e.g. "permute")
	Shape   Shape  // Offending shape, if any
	Details string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Shape != nil {
		return fmt.Sprintf("%s: shape %v: %s", e.Op, e.Shape, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Details)
}

// Is makes errors.Is(err, ErrShape) hold.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// DTypeError reports an operation applied to an unsupported element type.
type DTypeError struct {
	Op      string
	DType   DataType
	Details string
}

// Error implements the error interface.
func (e *DTypeError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: unsupported dtype %s", e.Op, e.DType)
	}
	return fmt.Sprintf("%s: dtype %s: %s", e.Op, e.DType, e.Details)
}

// Is makes errors.Is(err, ErrDType) hold.
func (e *DTypeError) Is(target error) bool {
	return target == ErrDType
}

// DivideByZeroError reports integer division by zero or a zero divisor in
// normalization.
type DivideByZeroError struct {
	Op      string
	Details string
}

// Error implements the error interface.
func (e *DivideByZeroError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: divide by zero", e.Op)
	}
	return fmt.Sprintf("%s: divide by zero: %s", e.Op, e.Details)
}

// Is makes errors.Is(err, ErrDivideByZero) hold.
func (e *DivideByZeroError) Is(target error) bool {
	return target == ErrDivideByZero
}

func shapeErrorf(op string, shape Shape, format string, args ...any) error {
	var s Shape
	if shape != nil {
		s = shape.Clone()
	}
	return &ShapeError{Op: op, Shape: s, Details: fmt.Sprintf(format, args...)}
}

func dtypeError(op string, dt DataType) error {
	return &DTypeError{Op: op, DType: dt}
}
