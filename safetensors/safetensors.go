// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package safetensors saves and loads named tensors in the SafeTensors format
// used by HuggingFace.
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/tensorkit/safetensors"
//	    "github.com/born-ml/tensorkit/tensor"
//	)
//
//	err := safetensors.WriteFile("batch.safetensors",
//	    map[string]*tensor.Tensor{"image_000": x}, nil)
//
//	f, err := safetensors.ReadFile("batch.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Release()
//	x := f.Tensors["image_000"]
package safetensors

import (
	"io"

	"github.com/born-ml/tensorkit/internal/serialization"
	"github.com/born-ml/tensorkit/tensor"
)

// File is a fully loaded SafeTensors file: tensors by name plus metadata.
type File = serialization.File

// ValidationError describes a malformed header or tensor entry.
type ValidationError = serialization.ValidationError

// Errors matched by errors.Is on a ValidationError.
var (
	ErrOffsetOverlap     = serialization.ErrOffsetOverlap
	ErrOutOfBounds       = serialization.ErrOutOfBounds
	ErrInvalidTensorName = serialization.ErrInvalidTensorName
	ErrHeaderTooLarge    = serialization.ErrHeaderTooLarge
	ErrInvalidEntry      = serialization.ErrInvalidEntry
)

// Write encodes tensors, in name order, to w.
func Write(w io.Writer, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	return serialization.Write(w, tensors, metadata)
}

// WriteFile creates path and writes tensors to it.
func WriteFile(path string, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	return serialization.WriteFile(path, tensors, metadata)
}

// Read decodes a SafeTensors stream, validating the header first.
func Read(r io.Reader) (*File, error) {
	return serialization.Read(r)
}

// ReadFile opens and decodes path.
func ReadFile(path string) (*File, error) {
	return serialization.ReadFile(path)
}
