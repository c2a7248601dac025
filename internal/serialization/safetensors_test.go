package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensorkit/internal/tensor"
)

func mustTensor[T tensor.DType](t *testing.T, data []T, shape tensor.Shape) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return x
}

func encode(t *testing.T, header string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(header))))
	buf.WriteString(header)
	buf.Write(data)
	return buf.Bytes()
}

func TestWriteRead_AllDTypes(t *testing.T) {
	tensors := map[string]*tensor.Tensor{
		"f32":  mustTensor(t, []float32{1, -2.5, 3}, tensor.Shape{3}),
		"f64":  mustTensor(t, []float64{0.125, 1e-9, -7, 8}, tensor.Shape{2, 2}),
		"i32":  mustTensor(t, []int32{-1, 2}, tensor.Shape{1, 2}),
		"i64":  mustTensor(t, []int64{1 << 40}, tensor.Shape{}),
		"u8":   mustTensor(t, []uint8{0, 128, 255}, tensor.Shape{3, 1}),
		"mask": mustTensor(t, []bool{true, false}, tensor.Shape{2}),
		"none": tensor.Zeros(tensor.Shape{0, 3}, tensor.Float32),
	}
	meta := map[string]string{"source": "unit"}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tensors, meta))

	f, err := Read(&buf)
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, meta, f.Metadata)
	assert.Equal(t, []string{"f32", "f64", "i32", "i64", "mask", "none", "u8"}, f.Names())
	for name, want := range tensors {
		got := f.Tensors[name]
		require.NotNil(t, got, name)
		assert.Equal(t, want.DType(), got.DType(), name)
		assert.Equal(t, want.Shape(), got.Shape(), name)
		assert.Equal(t, want.Data(), got.Data(), name)
		assert.False(t, got.SharesBuffer(want), name)
	}
	assert.Equal(t, float32(-2.5), tensor.Values[float32](f.Tensors["f32"])[1])
	assert.Equal(t, int64(1<<40), f.Tensors["i64"].Item())
}

func TestWrite_HeaderLayout(t *testing.T) {
	x := mustTensor(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	y := mustTensor(t, []uint8{9}, tensor.Shape{1})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]*tensor.Tensor{"b": x, "a": y}, nil))

	raw := buf.Bytes()
	size := binary.LittleEndian.Uint64(raw[:8])
	var header map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[8:8+size], &header))
	assert.NotContains(t, header, metadataKey)

	var a, b Entry
	require.NoError(t, json.Unmarshal(header["a"], &a))
	require.NoError(t, json.Unmarshal(header["b"], &b))
	assert.Equal(t, Entry{DType: "U8", Shape: []int64{1}, DataOffsets: [2]int64{0, 1}}, a)
	assert.Equal(t, Entry{DType: "F32", Shape: []int64{2, 3}, DataOffsets: [2]int64{1, 25}}, b)

	data := raw[8+size:]
	require.Len(t, data, 25)
	assert.Equal(t, byte(9), data[0])
	assert.Equal(t, uint32(0x3f800000), binary.LittleEndian.Uint32(data[1:5]))
}

func TestWrite_InvalidName(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]*tensor.Tensor{"../x": tensor.Scalar[float32](1)}, nil)
	assert.ErrorIs(t, err, ErrInvalidTensorName)
	assert.Zero(t, buf.Len())
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.safetensors")
	x := mustTensor(t, []float32{0.5, 0.25}, tensor.Shape{1, 2})
	require.NoError(t, WriteFile(path, map[string]*tensor.Tensor{"image_000": x}, map[string]string{"image_000": "a.png"}))

	f, err := ReadFile(path)
	require.NoError(t, err)
	defer f.Release()
	assert.Equal(t, "a.png", f.Metadata["image_000"])
	assert.Equal(t, []float32{0.5, 0.25}, tensor.Values[float32](f.Tensors["image_000"]))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.safetensors"))
	assert.Error(t, err)
}

func TestRead_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{
			name:  "truncated size",
			input: []byte{1, 2, 3},
		},
		{
			name:    "huge header",
			input:   binary.LittleEndian.AppendUint64(nil, MaxHeaderSize+1),
			wantErr: ErrHeaderTooLarge,
		},
		{
			name:  "truncated header",
			input: append(binary.LittleEndian.AppendUint64(nil, 64), '{'),
		},
		{
			name:  "not json",
			input: encode(t, "nope", nil),
		},
		{
			name:    "data too short",
			input:   encode(t, `{"a":{"dtype":"F32","shape":[2],"data_offsets":[0,8]}}`, make([]byte, 4)),
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "overlap",
			input:   encode(t, `{"a":{"dtype":"U8","shape":[2],"data_offsets":[0,2]},"b":{"dtype":"U8","shape":[2],"data_offsets":[1,3]}}`, make([]byte, 3)),
			wantErr: ErrOffsetOverlap,
		},
		{
			name:    "bad bool",
			input:   encode(t, `{"m":{"dtype":"BOOL","shape":[2],"data_offsets":[0,2]}}`, []byte{1, 7}),
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "unknown dtype",
			input:   encode(t, `{"a":{"dtype":"F16","shape":[1],"data_offsets":[0,2]}}`, make([]byte, 2)),
			wantErr: ErrInvalidEntry,
		},
		{
			name:    "negative offset",
			input:   encode(t, `{"a":{"dtype":"U8","shape":[0],"data_offsets":[-1,-1]}}`, nil),
			wantErr: ErrNegativeOffset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Read(bytes.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHeader_Metadata(t *testing.T) {
	var h Header
	require.NoError(t, json.Unmarshal([]byte(`{"__metadata__":{"k":"v"},"x":{"dtype":"I32","shape":[1],"data_offsets":[0,4]}}`), &h))
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
	assert.Equal(t, Entry{DType: "I32", Shape: []int64{1}, DataOffsets: [2]int64{0, 4}}, h.Tensors["x"])

	out, err := json.Marshal(h)
	require.NoError(t, err)
	var back Header
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, h, back)
}
