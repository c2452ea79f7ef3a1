package serialization

import (
	"time"

	"github.com/axial-ml/axial/internal/tensor"
)

// Format constants.
const (
	MagicBytes        = "AXLR"
	FormatVersion     = 1    // v1: plain container
	FormatVersionV2   = 2    // v2: adds a SHA-256 checksum over the data section
	HeaderAlignment   = 64   // payload offsets are 64-byte aligned
	FixedHeaderSizeV2 = 64   // v2 fixed header size (0x40 bytes)
	ChecksumSize      = 32   // SHA-256 digest size
	ChecksumOffsetV2  = 0x20 // checksum offset in the v2 fixed header
)

// Data type names used in headers.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
	DTypeInt32   = "int32"
	DTypeInt64   = "int64"
	DTypeUint8   = "uint8"
	DTypeBool    = "bool"
)

// Flags for the .axl format.
const (
	FlagHasMetadata uint32 = 1 << 0 // free-form metadata present in the header
)

// Header is the JSON header of an .axl file.
type Header struct {
	FormatVersion  int               `json:"format_version"` // container format version
	LibraryVersion string            `json:"axial_version"`  // axial version that wrote the file
	CreatedAt      time.Time         `json:"created_at"`     // write timestamp (UTC)
	Tensors        []TensorMeta      `json:"tensors"`        // entry table
	Metadata       map[string]string `json:"metadata"`       // free-form metadata
}

// TensorMeta describes one array entry. Axes carry the names, so arrays
// round-trip with their axis spec intact.
type TensorMeta struct {
	Name   string     `json:"name"`
	DType  string     `json:"dtype"`
	Axes   []AxisMeta `json:"axes"`
	Offset int64      `json:"offset"` // bytes from the start of the data section
	Size   int64      `json:"size"`   // payload size in bytes
}

// AxisMeta is one named dimension of an entry.
type AxisMeta struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Shape returns the positional shape behind the entry's axes.
func (m *TensorMeta) Shape() tensor.Shape {
	shape := make(tensor.Shape, len(m.Axes))
	for i, ax := range m.Axes {
		shape[i] = ax.Size
	}
	return shape
}

// NumElements returns the element count implied by the entry's axes.
func (m *TensorMeta) NumElements() int {
	n := 1
	for _, ax := range m.Axes {
		n *= ax.Size
	}
	return n
}

func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return DTypeFloat32
	case tensor.Float64:
		return DTypeFloat64
	case tensor.Int32:
		return DTypeInt32
	case tensor.Int64:
		return DTypeInt64
	case tensor.Uint8:
		return DTypeUint8
	case tensor.Bool:
		return DTypeBool
	default:
		return "unknown"
	}
}

func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat32:
		return tensor.Float32, true
	case DTypeFloat64:
		return tensor.Float64, true
	case DTypeInt32:
		return tensor.Int32, true
	case DTypeInt64:
		return tensor.Int64, true
	case DTypeUint8:
		return tensor.Uint8, true
	case DTypeBool:
		return tensor.Bool, true
	default:
		return 0, false
	}
}

// alignUp rounds n up to the next multiple of align.
func alignUp(n, align int64) int64 {
	return (n + align - 1) / align * align
}
