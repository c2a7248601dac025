package pipeline

import (
	"fmt"
	"image"

	"github.com/born-ml/tensorkit/internal/tensor"
	"github.com/born-ml/tensorkit/internal/vision"
)

// Pipeline turns decoded images into normalized (3, H, W) Float32 tensors.
type Pipeline struct {
	cfg  Config
	opts vision.Options
}

// New validates cfg and builds a Pipeline.
func New(cfg Config, opts vision.Options) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, opts: opts}, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run shrinks, resizes, converts and normalizes img.
func (p *Pipeline) Run(img image.Image) (*tensor.Tensor, error) {
	x, err := ImageTensor(Shrink(img, p.cfg.MaxSide))
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return p.RunTensor(x)
}

// RunTensor runs the tensor stages on channel-last pixels, (H, W, 3) or
// (N, H, W, 3).
func (p *Pipeline) RunTensor(x *tensor.Tensor) (*tensor.Tensor, error) {
	resized, err := vision.ResizeWithOptions(x, p.cfg.Size, p.cfg.AlignCorners, p.opts)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	chw, err := vision.ToTensor(resized)
	if err != nil {
		return nil, fmt.Errorf("to tensor: %w", err)
	}
	out, err := vision.Normalize(chw, p.cfg.Mean, p.cfg.Std)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return out, nil
}

// ChannelStats summarizes one channel of a tensor.
type ChannelStats struct {
	Channel        int
	Min, Max, Mean float64
}

// Stats computes per-channel min, max and mean of a channel-first (C, H, W)
// tensor using the reduction engine.
func Stats(x *tensor.Tensor) ([]ChannelStats, error) {
	if x.Dim() != 3 {
		return nil, &tensor.ShapeError{Op: "stats", Shape: x.Shape().Clone(), Details: "expected (C, H, W)"}
	}
	xf, err := tensor.ToFloat("stats", x)
	if err != nil {
		return nil, err
	}
	flat, err := xf.Reshape(x.Shape()[0], -1)
	if err != nil {
		return nil, err
	}
	mins, err := flat.MinAxis(1, false)
	if err != nil {
		return nil, err
	}
	maxs, err := flat.MaxAxis(1, false)
	if err != nil {
		return nil, err
	}
	means, err := flat.MeanAxis(1, false)
	if err != nil {
		return nil, err
	}

	lo, hi, avg := mins.Float64s(), maxs.Float64s(), means.Float64s()
	stats := make([]ChannelStats, len(lo))
	for c := range stats {
		stats[c] = ChannelStats{Channel: c, Min: lo[c], Max: hi[c], Mean: avg[c]}
	}
	return stats, nil
}

// PixelSummary describes raw (H, W, C) pixels before preprocessing.
type PixelSummary struct {
	Height, Width int
	Min, Max      float64
	AllNonZero    bool // Every pixel component is nonzero
	AnyNonZero    bool // At least one component is nonzero
}

// Summarize inspects raw pixels with the boolean and numeric reductions.
func Summarize(x *tensor.Tensor) (PixelSummary, error) {
	if x.Dim() != 3 {
		return PixelSummary{}, &tensor.ShapeError{Op: "summarize", Shape: x.Shape().Clone(), Details: "expected (H, W, C)"}
	}
	s := PixelSummary{
		Height:     x.Shape()[0],
		Width:      x.Shape()[1],
		AllNonZero: tensor.All(x).Item().(bool),
		AnyNonZero: tensor.Any(x).Item().(bool),
	}
	if x.NumElements() == 0 {
		return s, nil
	}
	lo, err := x.Min()
	if err != nil {
		return PixelSummary{}, err
	}
	hi, err := x.Max()
	if err != nil {
		return PixelSummary{}, err
	}
	s.Min, _ = lo.Float64At()
	s.Max, _ = hi.Float64At()
	return s, nil
}
