package handle

import (
	"sync"
	"testing"

	"github.com/born-ml/tensorkit/internal/tensor"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable() (*Table, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewTable(logrus.NewEntry(logger)), hook
}

func TestPutGet(t *testing.T) {
	table, _ := newTestTable()
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)

	h := table.Put(x)
	assert.NotZero(t, h)
	assert.Equal(t, 1, table.Len())

	got, err := table.Get(h)
	require.NoError(t, err)
	assert.Same(t, x, got)
}

func TestZeroHandleInvalid(t *testing.T) {
	table, _ := newTestTable()
	table.Put(tensor.Zeros(tensor.Shape{1}, tensor.Float32))

	_, err := table.Get(0)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestReleaseInvalidatesHandle(t *testing.T) {
	table, hook := newTestTable()
	h := table.Put(tensor.Zeros(tensor.Shape{2}, tensor.Float32))

	require.NoError(t, table.Release(h))
	assert.Equal(t, 0, table.Len())

	_, err := table.Get(h)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	assert.ErrorIs(t, table.Release(h), ErrInvalidHandle)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)
}

func TestStaleHandleAfterReuse(t *testing.T) {
	table, _ := newTestTable()
	a := tensor.Zeros(tensor.Shape{1}, tensor.Float32)
	b := tensor.Zeros(tensor.Shape{1}, tensor.Int32)

	h1 := table.Put(a)
	require.NoError(t, table.Release(h1))
	h2 := table.Put(b)

	assert.Equal(t, h1.index(), h2.index(), "slot should be reused")
	assert.NotEqual(t, h1, h2)

	_, err := table.Get(h1)
	assert.ErrorIs(t, err, ErrInvalidHandle)

	got, err := table.Get(h2)
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestForgedHandle(t *testing.T) {
	table, _ := newTestTable()
	h := table.Put(tensor.Zeros(tensor.Shape{1}, tensor.Float32))

	forged := makeHandle(h.index(), h.generation()+7)
	_, err := table.Get(forged)
	assert.ErrorIs(t, err, ErrInvalidHandle)

	outOfRange := makeHandle(99, 1)
	_, err = table.Get(outOfRange)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestNegInPlace(t *testing.T) {
	table, _ := newTestTable()
	x, err := tensor.FromSlice([]float32{1, -2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	alias := x.Clone()

	h := table.Put(x)
	same, err := table.NegInPlace(h)
	require.NoError(t, err)
	assert.Equal(t, h, same)

	got, err := table.Get(h)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 2, -3}, got.AsFloat32())
	assert.Equal(t, []float32{-1, 2, -3}, alias.AsFloat32())
}

func TestNegInPlace_BoolFailsUntouched(t *testing.T) {
	table, _ := newTestTable()
	x, err := tensor.FromSlice([]bool{true, false}, tensor.Shape{2})
	require.NoError(t, err)

	h := table.Put(x)
	_, err = table.NegInPlace(h)
	assert.ErrorIs(t, err, tensor.ErrDType)
	assert.Equal(t, []bool{true, false}, x.AsBool())
}

func TestApply(t *testing.T) {
	table, _ := newTestTable()
	x, err := tensor.FromSlice([]float64{1, 4, 9}, tensor.Shape{3})
	require.NoError(t, err)
	h := table.Put(x)

	h2, err := table.Apply(h, func(t *tensor.Tensor) (*tensor.Tensor, error) {
		return t.Sqrt()
	})
	require.NoError(t, err)
	assert.NotEqual(t, h, h2)
	assert.Equal(t, 2, table.Len())

	out, err := table.Get(h2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, out.AsFloat64())

	// Errors from fn leave the table unchanged.
	_, err = table.Apply(h, func(t *tensor.Tensor) (*tensor.Tensor, error) {
		return t.Permute(0, 0)
	})
	assert.ErrorIs(t, err, tensor.ErrShape)
	assert.Equal(t, 2, table.Len())
}

func TestConcurrentPutRelease(t *testing.T) {
	table, _ := newTestTable()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h := table.Put(tensor.Zeros(tensor.Shape{4}, tensor.Float32))
				if _, err := table.Get(h); err != nil {
					t.Errorf("Get: %v", err)
				}
				if err := table.Release(h); err != nil {
					t.Errorf("Release: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, table.Len())
}
