package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// Safetensors layout:
// [8 bytes: header size (uint64 LE)]
// [header size bytes: JSON header]
// [raw payloads, offsets relative to the end of the header]
//
// The format has no axis names of its own. SaveSafetensors stores them
// as a JSON map under the SafetensorsAxesKey metadata key, which other
// safetensors tooling ignores; files written elsewhere read back as
// positional tensors through SafetensorsReader.

// SafetensorsAxesKey is the __metadata__ key holding the axis names of
// each entry, encoded as a JSON object mapping entry name to a list of
// axis names in dimension order.
const SafetensorsAxesKey = "axial_axes"

// Safetensors dtype codes.
const (
	stF16  = "F16"
	stBF16 = "BF16"
	stF32  = "F32"
	stF64  = "F64"
	stI32  = "I32"
	stI64  = "I64"
	stU8   = "U8"
	stBool = "BOOL"
)

// SafetensorsInfo describes one entry of a safetensors file.
type SafetensorsInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end) relative to the data section
}

// SafetensorsReader reads safetensors files.
type SafetensorsReader struct {
	file       *os.File
	tensors    map[string]SafetensorsInfo
	metadata   map[string]string
	axisNames  map[string][]string
	axes       map[string][]AxisMeta
	names      []string // sorted
	dataOffset int64
	dataSize   int64
	closed     bool
}

// NewSafetensorsReader opens a safetensors file and validates its
// entry table against the file size.
func NewSafetensorsReader(path string) (*SafetensorsReader, error) {
	//nolint:gosec // G304: callers choose the checkpoint path
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &SafetensorsReader{file: file}
	if err := r.parseHeader(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	if err := r.validate(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return r, nil
}

func (r *SafetensorsReader) parseHeader() error {
	var headerSize uint64
	if err := binary.Read(r.file, binary.LittleEndian, &headerSize); err != nil {
		return fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawMap); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r.tensors = make(map[string]SafetensorsInfo, len(rawMap))
	for name, value := range rawMap {
		if name == "__metadata__" {
			if err := json.Unmarshal(value, &r.metadata); err != nil {
				return fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var info SafetensorsInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to parse entry %q: %w", name, err)
		}
		r.tensors[name] = info
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	if s, ok := r.metadata[SafetensorsAxesKey]; ok {
		if err := json.Unmarshal([]byte(s), &r.axisNames); err != nil {
			return fmt.Errorf("failed to parse %s metadata: %w", SafetensorsAxesKey, err)
		}
	}

	r.dataOffset = 8 + int64(headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	info, err := r.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	r.dataSize = info.Size() - r.dataOffset
	if r.dataSize < 0 {
		return fmt.Errorf("header size %d exceeds file size %d", headerSize, info.Size())
	}
	return nil
}

// validate checks every entry's offsets against the data section and
// resolves the axis-name metadata against entry shapes. Entries with
// dtypes this library cannot hold still pass, so foreign files remain
// inspectable; they fail at LoadEntry instead.
func (r *SafetensorsReader) validate() error {
	if len(r.tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(r.tensors), MaxTensorCount),
		}
	}

	for _, name := range r.names {
		info := r.tensors[name]
		start, end := info.DataOffsets[0], info.DataOffsets[1]
		if start < 0 || end < start {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  name,
				Details: fmt.Sprintf("offsets [%d, %d]", start, end),
			}
		}
		if end > r.dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  name,
				Details: fmt.Sprintf("offsets [%d, %d] beyond data size %d", start, end, r.dataSize),
			}
		}

		elems := int64(1)
		for _, dim := range info.Shape {
			if dim < 0 {
				return &ValidationError{
					Type:    "invalid_shape",
					Tensor:  name,
					Details: fmt.Sprintf("negative dimension %d", dim),
				}
			}
			elems *= int64(dim)
		}
		if size, ok := safetensorsDTypeSize(info.DType); ok {
			if want := elems * int64(size); want != end-start {
				return &ValidationError{
					Type:    "size_mismatch",
					Tensor:  name,
					Details: fmt.Sprintf("shape implies %d bytes, offsets span %d", want, end-start),
				}
			}
		}
	}

	r.axes = make(map[string][]AxisMeta, len(r.axisNames))
	for name, axisNames := range r.axisNames {
		info, ok := r.tensors[name]
		if !ok {
			return &ValidationError{
				Type:    "axes_mismatch",
				Tensor:  name,
				Details: "axis names for an entry the file does not contain",
			}
		}
		if len(axisNames) != len(info.Shape) {
			return &ValidationError{
				Type:    "axes_mismatch",
				Tensor:  name,
				Details: fmt.Sprintf("entry has %d dimensions, metadata names %d axes", len(info.Shape), len(axisNames)),
			}
		}
		axes := make([]AxisMeta, len(axisNames))
		for i, axName := range axisNames {
			for _, prev := range axes[:i] {
				if prev.Name == axName {
					return &ValidationError{
						Type:    "invalid_axis",
						Tensor:  name,
						Details: fmt.Sprintf("duplicate axis name %q", axName),
					}
				}
			}
			axes[i] = AxisMeta{Name: axName, Size: info.Shape[i]}
		}
		r.axes[name] = axes
	}
	return nil
}

// Close closes the reader and the underlying file.
func (r *SafetensorsReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// Names returns the entry names in sorted order.
func (r *SafetensorsReader) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Metadata returns the __metadata__ map from the header.
func (r *SafetensorsReader) Metadata() map[string]string {
	return r.metadata
}

// Axes returns the stored axis names of an entry, sized from its
// shape, or nil when the file carries none for it.
func (r *SafetensorsReader) Axes(name string) []AxisMeta {
	return r.axes[name]
}

// EntryInfo returns the header record of a named entry.
// Returns ErrTensorNotFound when the file has no such entry.
func (r *SafetensorsReader) EntryInfo(name string) (*SafetensorsInfo, error) {
	info, ok := r.tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	return &info, nil
}

// ReadEntryData reads the raw payload bytes of a named entry.
func (r *SafetensorsReader) ReadEntryData(name string) ([]byte, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	info, err := r.EntryInfo(name)
	if err != nil {
		return nil, err
	}

	if _, err := r.file.Seek(r.dataOffset+info.DataOffsets[0], io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to entry data: %w", err)
	}
	data := make([]byte, info.DataOffsets[1]-info.DataOffsets[0])
	if _, err := io.ReadFull(r.file, data); err != nil {
		return nil, fmt.Errorf("failed to read entry data: %w", err)
	}
	return data, nil
}

// LoadEntry loads one entry as a raw tensor on the backend's device.
// F16 and BF16 entries return an error; read their bytes through
// ReadEntryData and convert manually.
func (r *SafetensorsReader) LoadEntry(name string, backend tensor.Backend) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	info, err := r.EntryInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, err := safetensorsToDtype(info.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}

	shape := tensor.Shape(info.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape for entry %s: %w", name, err)
	}

	data, err := r.ReadEntryData(name)
	if err != nil {
		return nil, err
	}

	raw, err := tensor.NewRaw(shape, dtype, backend.Device())
	if err != nil {
		return nil, fmt.Errorf("failed to create tensor: %w", err)
	}
	copy(raw.Data(), data)
	return raw, nil
}

// SaveSafetensors writes named arrays to path in safetensors format.
// Entries are laid out sorted by name. Axis names go into the
// SafetensorsAxesKey metadata entry so LoadSafetensors can restore
// them; other safetensors tooling reads the file as plain positional
// tensors.
func SaveSafetensors[T tensor.DType, B tensor.Backend](path string, arrays map[string]*named.NamedArray[T, B]) error {
	code, ok := dtypeToSafetensors(tensor.DataTypeOf[T]())
	if !ok {
		return fmt.Errorf("dtype %s has no safetensors encoding", tensor.DataTypeOf[T]())
	}

	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(arrays)+1)
	axisNames := make(map[string][]string, len(arrays))
	var offset int64
	for _, name := range names {
		raw := arrays[name].Inner().Raw()
		size := int64(raw.ByteSize())
		header[name] = SafetensorsInfo{
			DType:       code,
			Shape:       []int(raw.Shape()),
			DataOffsets: [2]int64{offset, offset + size},
		}
		axes := arrays[name].Axes()
		list := make([]string, len(axes))
		for i, ax := range axes {
			list[i] = ax.Name
		}
		axisNames[name] = list
		offset += size
	}

	axesJSON, err := json.Marshal(axisNames)
	if err != nil {
		return fmt.Errorf("failed to encode axis names: %w", err)
	}
	header["__metadata__"] = map[string]string{
		"format":           "axial",
		SafetensorsAxesKey: string(axesJSON),
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	// Space padding keeps the data section 8-byte aligned and stays
	// valid JSON whitespace.
	if rem := len(headerBytes) % 8; rem != 0 {
		headerBytes = append(headerBytes, bytes.Repeat([]byte(" "), 8-rem)...)
	}

	//nolint:gosec // G304: callers choose the checkpoint path
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint64(len(headerBytes))); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := f.Write(headerBytes); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, name := range names {
		if _, err := f.Write(arrays[name].Inner().Raw().Data()); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write entry %s: %w", name, err)
		}
	}
	return f.Close()
}

// LoadSafetensors reads every entry of a safetensors file as named
// arrays of element type T. Every entry must carry axis names under
// the SafetensorsAxesKey metadata key; files from other tooling have
// none and load positionally through SafetensorsReader instead.
func LoadSafetensors[T tensor.DType, B tensor.Backend](path string, backend B) (map[string]*named.NamedArray[T, B], error) {
	r, err := NewSafetensorsReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	want := tensor.DataTypeOf[T]()
	wantCode, ok := dtypeToSafetensors(want)
	if !ok {
		return nil, fmt.Errorf("dtype %s has no safetensors encoding", want)
	}

	out := make(map[string]*named.NamedArray[T, B], len(r.names))
	for _, name := range r.names {
		axes := r.axes[name]
		if axes == nil {
			return nil, fmt.Errorf("tensor %q carries no axis names; read it positionally with SafetensorsReader", name)
		}
		info := r.tensors[name]
		if info.DType != wantCode {
			return nil, fmt.Errorf("tensor %q holds %s, requested %s", name, info.DType, want)
		}

		raw, err := r.LoadEntry(name, backend)
		if err != nil {
			return nil, err
		}
		naxes := make([]named.Axis, len(axes))
		for i, ax := range axes {
			naxes[i] = named.Axis{Name: ax.Name, Size: ax.Size}
		}
		a, err := named.Named(tensor.New[T, B](raw, backend), naxes...)
		if err != nil {
			return nil, fmt.Errorf("tensor %q: %w", name, err)
		}
		out[name] = a
	}
	return out, nil
}

func dtypeToSafetensors(dt tensor.DataType) (string, bool) {
	switch dt {
	case tensor.Float32:
		return stF32, true
	case tensor.Float64:
		return stF64, true
	case tensor.Int32:
		return stI32, true
	case tensor.Int64:
		return stI64, true
	case tensor.Uint8:
		return stU8, true
	case tensor.Bool:
		return stBool, true
	default:
		return "", false
	}
}

// safetensorsToDtype maps a safetensors dtype code to the library's
// element types. F16 and BF16 have no native representation here.
func safetensorsToDtype(code string) (tensor.DataType, error) {
	switch code {
	case stF32:
		return tensor.Float32, nil
	case stF64:
		return tensor.Float64, nil
	case stI32:
		return tensor.Int32, nil
	case stI64:
		return tensor.Int64, nil
	case stU8:
		return tensor.Uint8, nil
	case stBool:
		return tensor.Bool, nil
	case stF16, stBF16:
		return 0, fmt.Errorf("dtype %s requires conversion", code)
	default:
		return 0, fmt.Errorf("unsupported dtype: %s", code)
	}
}

// safetensorsDTypeSize reports the element size of a dtype code,
// including the two half-precision codes the library cannot hold.
func safetensorsDTypeSize(code string) (int, bool) {
	switch code {
	case stF16, stBF16:
		return 2, true
	case stF32, stI32:
		return 4, true
	case stF64, stI64:
		return 8, true
	case stU8, stBool:
		return 1, true
	default:
		return 0, false
	}
}
