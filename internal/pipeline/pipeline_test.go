package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/tensorkit/internal/parallel"
	"github.com/born-ml/tensorkit/internal/tensor"
	"github.com/born-ml/tensorkit/internal/vision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func sequential() vision.Options {
	return vision.Options{Parallel: parallel.Sequential()}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{224, 224}, cfg.Size)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
size: [32, 48]
align_corners: true
max_side: 512
`))
	require.NoError(t, err)
	assert.Equal(t, []int{32, 48}, cfg.Size)
	assert.True(t, cfg.AlignCorners)
	assert.Equal(t, 512, cfg.MaxSide)
	// Absent keys keep defaults.
	assert.Equal(t, DefaultConfig().Mean, cfg.Mean)
	assert.Equal(t, DefaultConfig().Std, cfg.Std)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"one size", "size: [32]"},
		{"zero size", "size: [0, 32]"},
		{"short mean", "mean: [0.5, 0.5]"},
		{"zero std", "std: [0.2, 0.0, 0.2]"},
		{"negative max side", "max_side: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse([]byte("size: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: [8, 8]\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 8}, cfg.Size)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeAndRGB(t *testing.T) {
	src := solidImage(3, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode(&buf)
	require.NoError(t, err)

	pixels, h, w := RGB(img)
	assert.Equal(t, 2, h)
	assert.Equal(t, 3, w)
	require.Len(t, pixels, 2*3*3)
	assert.Equal(t, []uint8{10, 20, 30}, pixels[:3])

	_, err = Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestShrink(t *testing.T) {
	img := solidImage(400, 200, color.RGBA{R: 255, A: 255})

	small := Shrink(img, 100)
	assert.Equal(t, 100, small.Bounds().Dx())
	assert.Equal(t, 50, small.Bounds().Dy())

	assert.Same(t, img, Shrink(img, 0))
	assert.Same(t, img, Shrink(img, 1000))
}

func TestPipelineRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = []int{4, 6}
	cfg.Mean = []float32{0.5, 0.5, 0.5}
	cfg.Std = []float32{0.5, 0.5, 0.5}
	p, err := New(cfg, sequential())
	require.NoError(t, err)

	// White red channel, black green, mid blue.
	img := solidImage(10, 8, color.RGBA{R: 255, G: 0, B: 51, A: 255})
	out, err := p.Run(img)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4, 6}, out.Shape())
	assert.Equal(t, tensor.Float32, out.DType())

	stats, err := Stats(out)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.InDelta(t, 1.0, stats[0].Mean, 1e-5)
	assert.InDelta(t, -1.0, stats[1].Mean, 1e-5)
	assert.InDelta(t, (0.2-0.5)/0.5, stats[2].Mean, 1e-5)
	assert.InDelta(t, stats[2].Min, stats[2].Max, 1e-5)
}

func TestPipelineBatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = []int{2, 2}
	p, err := New(cfg, sequential())
	require.NoError(t, err)

	x := tensor.Zeros(tensor.Shape{2, 5, 5, 3}, tensor.Uint8)
	out, err := p.RunTensor(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3, 2, 2}, out.Shape())
}

func TestNewRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Std = []float32{1, 1, 0}
	_, err := New(cfg, sequential())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSummarize(t *testing.T) {
	x, err := tensor.FromSlice([]uint8{0, 5, 9, 1, 2, 3}, tensor.Shape{1, 2, 3})
	require.NoError(t, err)

	s, err := Summarize(x)
	require.NoError(t, err)
	assert.Equal(t, PixelSummary{Height: 1, Width: 2, Min: 0, Max: 9, AllNonZero: false, AnyNonZero: true}, s)

	empty, err := Summarize(tensor.Zeros(tensor.Shape{0, 0, 3}, tensor.Uint8))
	require.NoError(t, err)
	assert.True(t, empty.AllNonZero)
	assert.False(t, empty.AnyNonZero)

	_, err = Summarize(tensor.Zeros(tensor.Shape{4}, tensor.Uint8))
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestStatsErrors(t *testing.T) {
	_, err := Stats(tensor.Zeros(tensor.Shape{3, 4}, tensor.Float32))
	assert.ErrorIs(t, err, tensor.ErrShape)
}
