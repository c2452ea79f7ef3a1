package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/axial-ml/axial/internal/buildinfo"
	"github.com/axial-ml/axial/internal/tensor"
)

// Entry is one named array staged for writing.
type Entry struct {
	Raw  *tensor.RawTensor
	Axes []AxisMeta
}

// Writer writes .axl files.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates an .axl file at path, truncating any existing file.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: callers choose the checkpoint path
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{file: file}, nil
}

// WriteEntries writes entries in v1 format (no checksum).
func (w *Writer) WriteEntries(entries map[string]Entry, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	return writeContainer(w.file, entries, metadata, FormatVersion)
}

// WriteEntriesV2 writes entries in v2 format, with a SHA-256 checksum
// of the data section in the fixed header.
func (w *Writer) WriteEntriesV2(entries map[string]Entry, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	return writeContainer(w.file, entries, metadata, FormatVersionV2)
}

// Close closes the writer and the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// WriteTo writes entries in v1 format to an arbitrary writer. Useful
// for buffers or network connections.
func WriteTo(dst io.Writer, entries map[string]Entry, metadata map[string]string) error {
	return writeContainer(dst, entries, metadata, FormatVersion)
}

// writeContainer lays out and writes a whole .axl container. Entries
// are ordered by name so identical inputs produce identical files.
func writeContainer(dst io.Writer, entries map[string]Entry, metadata map[string]string, version int) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion:  version,
		LibraryVersion: buildinfo.Short(),
		CreatedAt:      time.Now().UTC(),
		Tensors:        make([]TensorMeta, 0, len(entries)),
		Metadata:       metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	var dataSize int64
	for _, name := range names {
		entry := entries[name]
		shape := entryShape(entry.Axes)
		if !shape.Equal(entry.Raw.Shape()) {
			return fmt.Errorf("entry %q: axes imply shape %v, tensor has %v", name, shape, entry.Raw.Shape())
		}

		offset := alignUp(dataSize, HeaderAlignment)
		size := int64(entry.Raw.NumElements() * entry.Raw.DType().Size())
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  dtypeToString(entry.Raw.DType()),
			Axes:   entry.Axes,
			Offset: offset,
			Size:   size,
		})
		dataSize = offset + size
	}

	// Assemble the data section; alignment gaps stay zero.
	data := make([]byte, dataSize)
	for _, meta := range header.Tensors {
		copy(data[meta.Offset:meta.Offset+meta.Size], entries[meta.Name].Raw.Data())
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	headerSize := uint64(len(headerJSON))

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}

	var headerEnd int64
	switch version {
	case FormatVersion:
		fixed := make([]byte, 20)
		copy(fixed[0:4], MagicBytes)
		binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersion))
		binary.LittleEndian.PutUint32(fixed[8:12], flags)
		binary.LittleEndian.PutUint64(fixed[12:20], headerSize)
		if _, err := dst.Write(fixed); err != nil {
			return fmt.Errorf("failed to write fixed header: %w", err)
		}
		headerEnd = int64(len(fixed)) + int64(headerSize) //nolint:gosec // G115: header size bounded by MaxHeaderSize
	case FormatVersionV2:
		checksum := ComputeChecksum(data)

		fixed := make([]byte, FixedHeaderSizeV2)
		copy(fixed[0:4], MagicBytes)
		binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersionV2))
		binary.LittleEndian.PutUint32(fixed[8:12], flags)
		// 0x0C-0x0F reserved, zero
		binary.LittleEndian.PutUint64(fixed[16:24], headerSize)
		binary.LittleEndian.PutUint64(fixed[24:32], uint64(dataSize)) //nolint:gosec // G115: dataSize is non-negative
		copy(fixed[ChecksumOffsetV2:ChecksumOffsetV2+ChecksumSize], checksum[:])
		if _, err := dst.Write(fixed); err != nil {
			return fmt.Errorf("failed to write fixed header: %w", err)
		}
		headerEnd = FixedHeaderSizeV2 + int64(headerSize) //nolint:gosec // G115: header size bounded by MaxHeaderSize
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	if _, err := dst.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if padding := alignUp(headerEnd, HeaderAlignment) - headerEnd; padding > 0 {
		if _, err := dst.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := dst.Write(data); err != nil {
		return fmt.Errorf("failed to write data section: %w", err)
	}

	return nil
}

func entryShape(axes []AxisMeta) tensor.Shape {
	shape := make(tensor.Shape, len(axes))
	for i, ax := range axes {
		shape[i] = ax.Size
	}
	return shape
}
