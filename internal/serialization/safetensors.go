package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/born-ml/tensorkit/internal/tensor"
)

const metadataKey = "__metadata__"

var dtypeCodes = map[tensor.DataType]string{
	tensor.Float32: "F32",
	tensor.Float64: "F64",
	tensor.Int32:   "I32",
	tensor.Int64:   "I64",
	tensor.Uint8:   "U8",
	tensor.Bool:    "BOOL",
}

// Entry is one tensor record in the header.
type Entry struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

func (e Entry) shape() (tensor.Shape, error) {
	s := make(tensor.Shape, len(e.Shape))
	n := int64(1)
	for i, d := range e.Shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension %d", d)
		}
		if d > 0 && n > math.MaxInt32/d {
			return nil, fmt.Errorf("shape %v too large", e.Shape)
		}
		n *= d
		s[i] = int(d)
	}
	return s, nil
}

// Header is the decoded JSON header: tensor entries plus free-form metadata.
type Header struct {
	Tensors  map[string]Entry
	Metadata map[string]string
}

// MarshalJSON flattens tensors and metadata into a single object.
func (h Header) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(h.Tensors)+1)
	if len(h.Metadata) > 0 {
		m[metadataKey] = h.Metadata
	}
	for name, e := range h.Tensors {
		m[name] = e
	}
	return json.Marshal(m)
}

// UnmarshalJSON splits the __metadata__ key out of the tensor entries.
func (h *Header) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	h.Tensors = make(map[string]Entry, len(raw))
	for key, value := range raw {
		if key == metadataKey {
			if err := json.Unmarshal(value, &h.Metadata); err != nil {
				return fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var e Entry
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("failed to parse tensor %s: %w", key, err)
		}
		h.Tensors[key] = e
	}
	return nil
}

// File is a fully loaded SafeTensors file.
type File struct {
	Tensors  map[string]*tensor.Tensor
	Metadata map[string]string
}

// Names returns the tensor names in file order.
func (f *File) Names() []string {
	return sortedNames(f.Tensors)
}

// Release drops the file's reference to every tensor.
func (f *File) Release() {
	for _, t := range f.Tensors {
		t.Release()
	}
}

// Write encodes tensors to w. Tensors are laid out in alphabetical order by
// name and every name must pass ValidateTensorName.
func Write(w io.Writer, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	names := sortedNames(tensors)

	h := Header{Tensors: make(map[string]Entry, len(names)), Metadata: metadata}
	var offset int64
	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		t := tensors[name]
		shape := t.Shape()
		dims := make([]int64, len(shape))
		for i, d := range shape {
			dims[i] = int64(d)
		}
		size := int64(t.ByteSize())
		h.Tensors[name] = Entry{
			DType:       dtypeCodes[t.DType()],
			Shape:       dims,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, name := range names {
		if _, err := w.Write(littleEndian(tensors[name])); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}
	return nil
}

// WriteFile creates path and writes tensors to it.
func WriteFile(path string, tensors map[string]*tensor.Tensor, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, tensors, metadata)
}

// Read decodes a SafeTensors stream. The header is validated in full before
// any tensor is allocated.
func Read(r io.Reader) (*File, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, &ValidationError{
			Type:    "header_too_large",
			Details: fmt.Sprintf("%d > max %d", headerSize, MaxHeaderSize),
		}
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(headerBytes, &h); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := ValidateHeader(&h, int64(len(data))); err != nil {
		return nil, err
	}

	f := &File{Tensors: make(map[string]*tensor.Tensor, len(h.Tensors)), Metadata: h.Metadata}
	for _, name := range sortedNames(h.Tensors) {
		e := h.Tensors[name]
		t, err := decodeTensor(name, e, data[e.DataOffsets[0]:e.DataOffsets[1]])
		if err != nil {
			f.Release()
			return nil, err
		}
		f.Tensors[name] = t
	}
	return f, nil
}

// ReadFile opens and decodes path.
func ReadFile(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// decodeTensor assumes e was accepted by ValidateHeader.
func decodeTensor(name string, e Entry, raw []byte) (*tensor.Tensor, error) {
	dt, _ := parseDType(e.DType)
	shape, _ := e.shape()
	t, err := tensor.New(shape, dt)
	if err != nil {
		return nil, err
	}

	switch dt {
	case tensor.Bool:
		for i, b := range raw {
			if b > 1 {
				t.Release()
				return nil, &ValidationError{
					Type:    "invalid_bool",
					Tensor:  name,
					Details: fmt.Sprintf("byte %d at element %d", b, i),
				}
			}
		}
		copy(t.Data(), raw)
	case tensor.Uint8:
		copy(t.Data(), raw)
	case tensor.Float32:
		out := t.AsFloat32()
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
		}
	case tensor.Float64:
		out := t.AsFloat64()
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		}
	case tensor.Int32:
		out := t.AsInt32()
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(raw[4*i:])) //nolint:gosec // bit reinterpretation
		}
	case tensor.Int64:
		out := t.AsInt64()
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(raw[8*i:])) //nolint:gosec // bit reinterpretation
		}
	}
	return t, nil
}

// littleEndian returns t's element bytes in little-endian order.
func littleEndian(t *tensor.Tensor) []byte {
	var buf bytes.Buffer
	buf.Grow(t.ByteSize())
	switch t.DType() {
	case tensor.Float32:
		_ = binary.Write(&buf, binary.LittleEndian, t.AsFloat32())
	case tensor.Float64:
		_ = binary.Write(&buf, binary.LittleEndian, t.AsFloat64())
	case tensor.Int32:
		_ = binary.Write(&buf, binary.LittleEndian, t.AsInt32())
	case tensor.Int64:
		_ = binary.Write(&buf, binary.LittleEndian, t.AsInt64())
	default:
		buf.Write(t.Data())
	}
	return buf.Bytes()
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
