package vision

import (
	"github.com/born-ml/tensorkit/internal/tensor"
)

// PixelScale maps 8-bit pixel values onto [0, 1].
const PixelScale = 255

// ToTensor converts channel-last pixels, (H, W, C) or (N, H, W, C), into a
// channel-first float tensor scaled by 1/255: (C, H, W) or (N, C, H, W).
//
// The result is Float32, except Float64 input which stays Float64.
func ToTensor(x *tensor.Tensor) (*tensor.Tensor, error) {
	l, err := resolveLayout("toTensor", x)
	if err != nil {
		return nil, err
	}
	xf, err := tensor.ToFloat("toTensor", x)
	if err != nil {
		return nil, err
	}
	scaled, err := xf.DivScalar(PixelScale)
	if err != nil {
		return nil, err
	}
	nhwc, err := l.batch(scaled)
	if err != nil {
		return nil, err
	}
	nchw, err := nhwc.Permute(0, 3, 1, 2)
	if err != nil {
		return nil, err
	}
	return l.unbatch(nchw)
}
