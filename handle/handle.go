// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package handle exposes tensors to foreign callers as opaque integer
// handles with explicit release.
//
// Example:
//
//	table := handle.NewTable(nil)
//	h := table.Put(x)
//	defer table.Release(h)
//	h2, err := table.Apply(h, func(t *tensor.Tensor) (*tensor.Tensor, error) {
//	    return t.Abs()
//	})
package handle

import (
	"github.com/sirupsen/logrus"

	"github.com/born-ml/tensorkit/internal/handle"
)

// Handle is an opaque tensor reference. The zero Handle is never valid.
type Handle = handle.Handle

// Table maps handles to tensors. It is safe for concurrent use.
type Table = handle.Table

// ErrInvalidHandle is returned for released, forged or zero handles.
var ErrInvalidHandle = handle.ErrInvalidHandle

// NewTable creates an empty table logging to log (nil for the standard logger).
func NewTable(log *logrus.Entry) *Table {
	return handle.NewTable(log)
}
