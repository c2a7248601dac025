// Package handle keeps tensors behind opaque integer handles for callers
// that cannot hold Go pointers (FFI and other language bridges).
//
// A Handle packs a slot index in the low 32 bits and the slot's generation in
// the high 32 bits. Releasing a slot bumps its generation, so a stale or
// forged handle is detected instead of resolving to whatever reuses the slot.
package handle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/born-ml/tensorkit/internal/tensor"
	"github.com/sirupsen/logrus"
)

// Handle is an opaque reference to a tensor stored in a Table.
// The zero Handle is never valid.
type Handle uint64

// ErrInvalidHandle is returned for released, forged or zero handles.
var ErrInvalidHandle = errors.New("invalid tensor handle")

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(index) | uint64(gen)<<32)
}

func (h Handle) index() uint32      { return uint32(h) }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

// String formats the handle as index@generation.
func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.index(), h.generation())
}

type slot struct {
	t   *tensor.Tensor
	gen uint32 // Current generation; live iff t != nil
}

// Table is an arena of tensors addressed by Handle. It is safe for
// concurrent use; the tensors themselves are not locked.
type Table struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32 // Released slot indices, reused LIFO
	live  int
	log   *logrus.Entry
}

// NewTable creates an empty table. log may be nil.
func NewTable(log *logrus.Entry) *Table {
	if log == nil {
		log = logrus.WithField("component", "handle")
	}
	return &Table{log: log}
}

// Put stores t and returns a fresh handle for it. The table takes over the
// caller's reference: Release on the handle releases t.
func (tb *Table) Put(t *tensor.Tensor) Handle {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	var idx uint32
	if n := len(tb.free); n > 0 {
		idx = tb.free[n-1]
		tb.free = tb.free[:n-1]
	} else {
		idx = uint32(len(tb.slots)) //nolint:gosec // G115: slot count stays far below 2^32
		tb.slots = append(tb.slots, slot{gen: 1})
	}
	s := &tb.slots[idx]
	s.t = t
	tb.live++

	h := makeHandle(idx, s.gen)
	tb.log.WithFields(logrus.Fields{"handle": h, "tensor": t}).Debug("tensor handle allocated")
	return h
}

// lookup resolves h. The caller holds tb.mu.
func (tb *Table) lookup(h Handle) (*slot, error) {
	idx := h.index()
	if int(idx) >= len(tb.slots) {
		return nil, tb.invalid(h)
	}
	s := &tb.slots[idx]
	if s.t == nil || s.gen != h.generation() {
		return nil, tb.invalid(h)
	}
	return s, nil
}

func (tb *Table) invalid(h Handle) error {
	tb.log.WithField("handle", h).Warn("stale or unknown tensor handle")
	return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
}

// Get returns the tensor behind h.
func (tb *Table) Get(h Handle) (*tensor.Tensor, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	s, err := tb.lookup(h)
	if err != nil {
		return nil, err
	}
	return s.t, nil
}

// Release drops h and the tensor reference it held. Using h afterwards
// returns ErrInvalidHandle, even once the slot has been reused.
func (tb *Table) Release(h Handle) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	s, err := tb.lookup(h)
	if err != nil {
		return err
	}
	s.t.Release()
	s.t = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	tb.free = append(tb.free, h.index())
	tb.live--

	tb.log.WithField("handle", h).Debug("tensor handle released")
	return nil
}

// Len returns the number of live handles.
func (tb *Table) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.live
}

// NegInPlace negates the tensor behind h in place and returns h itself.
// Every holder of the same buffer observes the change.
func (tb *Table) NegInPlace(h Handle) (Handle, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	s, err := tb.lookup(h)
	if err != nil {
		return 0, err
	}
	if _, err := s.t.Mut().Neg(); err != nil {
		return 0, err
	}
	return h, nil
}

// Apply runs fn on the tensor behind h and stores the result under a new
// handle. h stays valid.
//
// Example:
//
//	out, err := table.Apply(h, func(t *tensor.Tensor) (*tensor.Tensor, error) {
//		return t.Exp()
//	})
func (tb *Table) Apply(h Handle, fn func(*tensor.Tensor) (*tensor.Tensor, error)) (Handle, error) {
	t, err := tb.Get(h)
	if err != nil {
		return 0, err
	}
	out, err := fn(t)
	if err != nil {
		return 0, err
	}
	return tb.Put(out), nil
}
