// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vision provides image preprocessing transforms over tensors.
//
// A typical classification pipeline:
//
//	img, _ := tensor.View(pixels, tensor.Shape{h, w, 3})      // uint8, channel-last
//	x, _ := vision.Resize(img, []int{224, 224}, false)         // float32 (224, 224, 3)
//	x, _ = vision.ToTensor(x)                                  // float32 (3, 224, 224) in [0, 1]
//	x, _ = vision.Normalize(x, vision.ImageNetMean, vision.ImageNetStd)
package vision

import (
	"github.com/born-ml/tensorkit/internal/vision"
	"github.com/born-ml/tensorkit/tensor"
)

// ImageNet channel statistics, the usual Normalize arguments.
var (
	ImageNetMean = []float32{0.485, 0.456, 0.406}
	ImageNetStd  = []float32{0.229, 0.224, 0.225}
)

// Options tunes how transforms execute.
type Options = vision.Options

// DefaultOptions returns Options with a CPU-sized worker pool.
func DefaultOptions() Options {
	return vision.DefaultOptions()
}

// Resize bilinearly resamples an (H, W, C) image or (N, H, W, C) batch to
// size = [height, width].
func Resize(x *tensor.Tensor, size []int, alignCorners bool) (*tensor.Tensor, error) {
	return vision.Resize(x, size, alignCorners)
}

// ResizeWithOptions is Resize with explicit execution options.
func ResizeWithOptions(x *tensor.Tensor, size []int, alignCorners bool, opts Options) (*tensor.Tensor, error) {
	return vision.ResizeWithOptions(x, size, alignCorners, opts)
}

// Normalize computes (x - mean) / std per channel of a (C, H, W) or
// (N, C, H, W) tensor with 3 channels.
func Normalize(x *tensor.Tensor, mean, std []float32) (*tensor.Tensor, error) {
	return vision.Normalize(x, mean, std)
}

// ToTensor converts channel-last pixels to a channel-first float tensor in [0, 1].
func ToTensor(x *tensor.Tensor) (*tensor.Tensor, error) {
	return vision.ToTensor(x)
}
