// Package vision implements image preprocessing transforms over tensors:
// bilinear resize, per-channel normalization and pixel-to-float conversion.
//
// Inputs are either a single image or a batch. The layout is resolved once
// at entry; the transform body always works on the batched form.
package vision

import (
	"github.com/born-ml/tensorkit/internal/tensor"
)

// layout is the closed set of accepted input ranks.
type layout int

const (
	unbatched layout = iota // (H, W, C) or (C, H, W)
	batched                 // (N, H, W, C) or (N, C, H, W)
)

func resolveLayout(op string, x *tensor.Tensor) (layout, error) {
	switch x.Dim() {
	case 3:
		return unbatched, nil
	case 4:
		return batched, nil
	default:
		return 0, &tensor.ShapeError{
			Op:      op,
			Shape:   x.Shape().Clone(),
			Details: "expected a 3D (single image) or 4D (batch) tensor",
		}
	}
}

// batch adds the leading batch axis when x is a single image.
func (l layout) batch(x *tensor.Tensor) (*tensor.Tensor, error) {
	if l == batched {
		return x, nil
	}
	return x.Unsqueeze(0)
}

// unbatch removes the batch axis added by batch.
func (l layout) unbatch(x *tensor.Tensor) (*tensor.Tensor, error) {
	if l == batched {
		return x, nil
	}
	return x.Squeeze(0)
}

// channelAxis is the channel axis of a channel-first tensor in this layout.
func (l layout) channelAxis() int {
	if l == batched {
		return 1
	}
	return 0
}
