package vision

import (
	"fmt"

	"github.com/born-ml/tensorkit/internal/tensor"
)

// Channels is the number of color channels Normalize accepts (RGB).
const Channels = 3

// Normalize computes (x - mean) / std per channel on a channel-first tensor:
// (C, H, W) or (N, C, H, W), the layout ToTensor produces.
//
// The channel axis must have size 3 and mean and std must each hold 3 values.
// A zero std is a DivideByZeroError. Integer input is promoted to Float32;
// Float64 input stays Float64 but is normalized with mean and std widened
// from float32, so parameters like 0.485 carry float32 rounding.
func Normalize(x *tensor.Tensor, mean, std []float32) (*tensor.Tensor, error) {
	l, err := resolveLayout("normalize", x)
	if err != nil {
		return nil, err
	}
	axis := l.channelAxis()
	if got := x.Shape()[axis]; got != Channels {
		return nil, &tensor.ShapeError{
			Op:      "normalize",
			Shape:   x.Shape().Clone(),
			Details: fmt.Sprintf("channel axis %d has size %d, want %d", axis, got, Channels),
		}
	}
	if len(mean) != Channels || len(std) != Channels {
		return nil, &tensor.ShapeError{
			Op:      "normalize",
			Shape:   x.Shape().Clone(),
			Details: fmt.Sprintf("mean and std need %d values each, got %d and %d", Channels, len(mean), len(std)),
		}
	}
	for c, s := range std {
		if s == 0 {
			return nil, &tensor.DivideByZeroError{Op: "normalize", Details: fmt.Sprintf("std[%d] is zero", c)}
		}
	}

	xf, err := tensor.ToFloat("normalize", x)
	if err != nil {
		return nil, err
	}
	shape := tensor.Shape{Channels, 1, 1}
	if l == batched {
		shape = tensor.Shape{1, Channels, 1, 1}
	}
	m, err := channelTensor(mean, shape, xf.DType())
	if err != nil {
		return nil, err
	}
	s, err := channelTensor(std, shape, xf.DType())
	if err != nil {
		return nil, err
	}

	centered, err := xf.Sub(m)
	if err != nil {
		return nil, err
	}
	return centered.Div(s)
}

// channelTensor lays out per-channel values so they broadcast over H and W.
func channelTensor(values []float32, shape tensor.Shape, dtype tensor.DataType) (*tensor.Tensor, error) {
	t, err := tensor.FromSlice(values, shape)
	if err != nil {
		return nil, err
	}
	if dtype == tensor.Float32 {
		return t, nil
	}
	return t.Cast(dtype)
}
