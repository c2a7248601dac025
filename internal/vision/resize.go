package vision

import (
	"fmt"

	"github.com/born-ml/tensorkit/internal/parallel"
	"github.com/born-ml/tensorkit/internal/tensor"
)

// Options tunes how transforms execute. It never changes their results.
type Options struct {
	Parallel parallel.Config // Fan-out over (batch, channel) planes.
}

// DefaultOptions returns Options with parallel.DefaultConfig.
func DefaultOptions() Options {
	return Options{Parallel: parallel.DefaultConfig()}
}

// Resize bilinearly resamples x, a channel-last image (H, W, C) or batch
// (N, H, W, C), to size = [height, width].
//
// With alignCorners the corner pixels of input and output line up exactly;
// otherwise pixel centers are mapped (half-pixel offsets). Floating input
// keeps its dtype, integer input is resampled in and returned as Float32,
// Bool is rejected.
//
// Example:
//
//	img, _ := tensor.View(pixels, tensor.Shape{480, 640, 3}) // uint8
//	small, _ := vision.Resize(img, []int{224, 224}, false)   // float32 (224, 224, 3)
func Resize(x *tensor.Tensor, size []int, alignCorners bool) (*tensor.Tensor, error) {
	return ResizeWithOptions(x, size, alignCorners, DefaultOptions())
}

// ResizeWithOptions is Resize with explicit execution options.
func ResizeWithOptions(x *tensor.Tensor, size []int, alignCorners bool, opts Options) (*tensor.Tensor, error) {
	l, err := resolveLayout("resize", x)
	if err != nil {
		return nil, err
	}
	if len(size) != 2 || size[0] <= 0 || size[1] <= 0 {
		return nil, &tensor.ShapeError{
			Op:      "resize",
			Shape:   x.Shape().Clone(),
			Details: fmt.Sprintf("size must be two positive ints [height, width], got %v", size),
		}
	}
	xf, err := tensor.ToFloat("resize", x)
	if err != nil {
		return nil, err
	}

	nhwc, err := l.batch(xf)
	if err != nil {
		return nil, err
	}
	s := nhwc.Shape()
	if s[1] == 0 || s[2] == 0 {
		return nil, &tensor.ShapeError{Op: "resize", Shape: x.Shape().Clone(), Details: "cannot resample an image with zero height or width"}
	}
	nchw, err := nhwc.Permute(0, 3, 1, 2)
	if err != nil {
		return nil, err
	}

	n, c, inH, inW := s[0], s[3], s[1], s[2]
	outH, outW := size[0], size[1]
	out := tensor.Zeros(tensor.Shape{n, c, outH, outW}, nchw.DType())

	switch nchw.DType() {
	case tensor.Float32:
		bilinear(nchw.AsFloat32(), out.AsFloat32(), n, c, inH, inW, outH, outW, alignCorners, opts.Parallel)
	case tensor.Float64:
		bilinear(nchw.AsFloat64(), out.AsFloat64(), n, c, inH, inW, outH, outW, alignCorners, opts.Parallel)
	}

	back, err := out.Permute(0, 2, 3, 1)
	if err != nil {
		return nil, err
	}
	return l.unbatch(back)
}

// axisTaps holds, for every output index along one axis, the two source
// indices and their weights.
type axisTaps[F float32 | float64] struct {
	i0, i1 []int
	w0, w1 []F
}

// sourceScale is the output-to-input coordinate scale along one axis.
func sourceScale[F float32 | float64](in, out int, alignCorners bool) F {
	if alignCorners {
		if out > 1 {
			return F(in-1) / F(out-1)
		}
		return 0
	}
	return F(in) / F(out)
}

func computeTaps[F float32 | float64](in, out int, alignCorners bool) axisTaps[F] {
	taps := axisTaps[F]{
		i0: make([]int, out),
		i1: make([]int, out),
		w0: make([]F, out),
		w1: make([]F, out),
	}
	scale := sourceScale[F](in, out, alignCorners)
	for d := 0; d < out; d++ {
		var src F
		if alignCorners {
			src = scale * F(d)
		} else {
			src = scale*(F(d)+0.5) - 0.5
			if src < 0 {
				src = 0
			}
		}
		i0 := int(src)
		step := 0
		if i0 < in-1 {
			step = 1
		}
		lambda := min(max(src-F(i0), 0), 1)
		taps.i0[d] = i0
		taps.i1[d] = i0 + step
		taps.w1[d] = lambda
		taps.w0[d] = 1 - lambda
	}
	return taps
}

// bilinear resamples every NCHW plane of in into out.
func bilinear[F float32 | float64](in, out []F, n, c, inH, inW, outH, outW int, alignCorners bool, cfg parallel.Config) {
	rows := computeTaps[F](inH, outH, alignCorners)
	cols := computeTaps[F](inW, outW, alignCorners)
	inPlane, outPlane := inH*inW, outH*outW

	parallel.ForBatch(n, c, outPlane, func(b, ch int) {
		p := b*c + ch
		src := in[p*inPlane : (p+1)*inPlane]
		dst := out[p*outPlane : (p+1)*outPlane]
		for y := 0; y < outH; y++ {
			r0 := src[rows.i0[y]*inW:]
			r1 := src[rows.i1[y]*inW:]
			h0, h1 := rows.w0[y], rows.w1[y]
			for x := 0; x < outW; x++ {
				x0, x1 := cols.i0[x], cols.i1[x]
				w0, w1 := cols.w0[x], cols.w1[x]
				dst[y*outW+x] = h0*(w0*r0[x0]+w1*r0[x1]) + h1*(w0*r1[x0]+w1*r1[x1])
			}
		}
	}, cfg)
}
