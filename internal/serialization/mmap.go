package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/axial-ml/axial/internal/tensor"
)

// MmapReader provides memory-mapped access to .axl files. Only the
// header is parsed up front; payload bytes are faulted in on demand
// through the OS page cache, which keeps opening large checkpoints
// cheap.
type MmapReader struct {
	file       *os.File
	data       []byte // mapped region (read-only)
	size       int64
	header     Header
	version    uint32
	flags      uint32
	dataOffset int64
	dataSize   int64
	checksum   [32]byte
	closed     bool
}

// NewMmapReader creates a memory-mapped reader for an .axl file.
//
// The v2 checksum is not verified on open, since that would touch
// every page and defeat lazy loading. Call VerifyChecksum for a full
// integrity pass.
//
// Always call Close to unmap the file (use defer).
func NewMmapReader(path string) (*MmapReader, error) {
	//nolint:gosec // G304: callers choose the checkpoint path
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	r := &MmapReader{
		file: file,
		data: data,
		size: stat.Size(),
	}

	if err := r.parseHeader(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	return r, nil
}

func (r *MmapReader) parseHeader() error {
	if r.size < 20 {
		return fmt.Errorf("file too small: %d bytes (minimum 20 bytes required)", r.size)
	}

	if string(r.data[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}

	r.version = binary.LittleEndian.Uint32(r.data[4:8])
	if r.version != FormatVersion && r.version != FormatVersionV2 {
		return fmt.Errorf("%w: got %d, expected %d or %d", ErrUnsupportedVersion, r.version, FormatVersion, FormatVersionV2)
	}

	r.flags = binary.LittleEndian.Uint32(r.data[8:12])

	var headerSize uint64
	var jsonOffset int64

	if r.version == FormatVersionV2 {
		if r.size < FixedHeaderSizeV2 {
			return fmt.Errorf("file too small for v2: %d bytes (minimum %d bytes required)", r.size, FixedHeaderSizeV2)
		}

		headerSize = binary.LittleEndian.Uint64(r.data[16:24])

		dataSize64 := binary.LittleEndian.Uint64(r.data[24:32])
		if dataSize64 > 1<<62 {
			return fmt.Errorf("data size too large: %d", dataSize64)
		}
		r.dataSize = int64(dataSize64) //nolint:gosec // G115: bounded above

		copy(r.checksum[:], r.data[ChecksumOffsetV2:ChecksumOffsetV2+ChecksumSize])

		jsonOffset = FixedHeaderSizeV2
	} else {
		headerSize = binary.LittleEndian.Uint64(r.data[12:20])
		jsonOffset = 20
	}

	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	headerEnd := jsonOffset + int64(headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	if headerEnd > r.size {
		return fmt.Errorf("header extends beyond file: header_end=%d, file_size=%d", headerEnd, r.size)
	}

	if err := json.Unmarshal(r.data[jsonOffset:headerEnd], &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r.dataOffset = alignUp(headerEnd, HeaderAlignment)

	if r.version == FormatVersion {
		r.dataSize = r.size - r.dataOffset
	} else if r.dataOffset+r.dataSize > r.size {
		return fmt.Errorf("data section extends beyond file: end=%d, file_size=%d", r.dataOffset+r.dataSize, r.size)
	}

	if err := ValidateHeader(&r.header, r.dataSize, ValidationStrict); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// Close unmaps and closes the file.
func (r *MmapReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.data != nil {
		err = munmapFile(r.data)
		r.data = nil
	}

	if closeErr := r.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// Header returns the file header.
func (r *MmapReader) Header() Header {
	return r.header
}

// Version returns the container format version (1 or 2).
func (r *MmapReader) Version() uint32 {
	return r.version
}

// Flags returns the flags bitfield.
func (r *MmapReader) Flags() uint32 {
	return r.flags
}

// Checksum returns the stored SHA-256 digest (all zeros for v1).
func (r *MmapReader) Checksum() [32]byte {
	return r.checksum
}

// VerifyChecksum hashes the mapped data section and compares it to the
// stored digest. v1 files carry no checksum, so verification fails for
// them.
func (r *MmapReader) VerifyChecksum() error {
	if r.closed {
		return fmt.Errorf("reader is closed")
	}
	if r.version != FormatVersionV2 {
		return fmt.Errorf("format version %d carries no checksum", r.version)
	}
	return ValidateChecksum(ComputeChecksum(r.data[r.dataOffset:r.dataOffset+r.dataSize]), r.checksum)
}

// Metadata returns the free-form metadata map from the header.
func (r *MmapReader) Metadata() map[string]string {
	return r.header.Metadata
}

// EntryNames returns the names of all entries in the file.
func (r *MmapReader) EntryNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// EntryInfo returns the metadata of a named entry.
// Returns ErrTensorNotFound when the file has no such entry.
func (r *MmapReader) EntryInfo(name string) (*TensorMeta, error) {
	for i := range r.header.Tensors {
		if r.header.Tensors[i].Name == name {
			return &r.header.Tensors[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
}

// EntryData returns a zero-copy slice into the mapped region.
// The slice is valid only while the reader is open, and writing to it
// is undefined behavior. Use EntryDataCopy for a mutable buffer.
func (r *MmapReader) EntryData(name string) ([]byte, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.EntryInfo(name)
	if err != nil {
		return nil, err
	}

	start := r.dataOffset + meta.Offset
	end := start + meta.Size
	if end > r.size {
		return nil, fmt.Errorf("%w: entry %q: offset %d + size %d > file_size %d",
			ErrOutOfBounds, name, start, meta.Size, r.size)
	}

	return r.data[start:end], nil
}

// EntryDataCopy returns a copy of an entry's payload bytes.
func (r *MmapReader) EntryDataCopy(name string) ([]byte, error) {
	data, err := r.EntryData(name)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// LoadEntry loads one entry as a raw tensor on the backend's device.
func (r *MmapReader) LoadEntry(name string, backend tensor.Backend) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.EntryInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, ok := stringToDtype(meta.DType)
	if !ok {
		return nil, fmt.Errorf("unsupported dtype: %s", meta.DType)
	}

	shape := meta.Shape()
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape for entry %s: %w", name, err)
	}

	data, err := r.EntryData(name)
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

// ReadAll loads every entry into a name-keyed map.
func (r *MmapReader) ReadAll(backend tensor.Backend) (map[string]*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	out := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		raw, err := r.LoadEntry(meta.Name, backend)
		if err != nil {
			return nil, fmt.Errorf("failed to load entry %s: %w", meta.Name, err)
		}
		out[meta.Name] = raw
	}
	return out, nil
}
