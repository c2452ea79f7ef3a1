package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits. Malformed files must fail fast instead of driving
// huge allocations or out-of-bounds reads.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // maximum JSON header size
	MaxTensorCount   = 100_000           // maximum entries per file
	MaxTensorNameLen = 4096              // maximum entry name length
)

// ValidationLevel controls how much of the entry table is checked.
type ValidationLevel int

const (
	// ValidationStrict runs every check, including the offset scan.
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names and axes but skips the offset scan.
	ValidationNormal
	// ValidationNone disables validation. Only for trusted input.
	ValidationNone
)

// ValidateTensorOffsets checks the entry table for negative ranges,
// reads beyond the data section, and overlapping payloads.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}

		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects names that could smuggle paths or bypass
// length checks when a name is used to build filenames downstream.
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}

	if strings.Contains(name, "..") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains '..'",
		}
	}

	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains path separator",
		}
	}

	if strings.Contains(name, "\x00") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains null byte",
		}
	}

	return nil
}

// ValidateEntryAxes checks that an entry's axes are well formed and
// account for exactly its payload size.
func ValidateEntryAxes(t *TensorMeta) error {
	for i, ax := range t.Axes {
		if ax.Size <= 0 {
			return &ValidationError{
				Type:    "invalid_axis",
				Tensor:  t.Name,
				Details: fmt.Sprintf("axis %q has non-positive size %d", ax.Name, ax.Size),
			}
		}
		for _, prev := range t.Axes[:i] {
			if prev.Name == ax.Name {
				return &ValidationError{
					Type:    "invalid_axis",
					Tensor:  t.Name,
					Details: fmt.Sprintf("duplicate axis name %q", ax.Name),
				}
			}
		}
	}

	dtype, ok := stringToDtype(t.DType)
	if !ok {
		return &ValidationError{
			Type:    "unknown_dtype",
			Tensor:  t.Name,
			Details: fmt.Sprintf("dtype %q", t.DType),
		}
	}
	if want := int64(t.NumElements() * dtype.Size()); want != t.Size {
		return &ValidationError{
			Type:    "axes_mismatch",
			Tensor:  t.Name,
			Details: fmt.Sprintf("axes imply %d bytes, entry declares %d", want, t.Size),
		}
	}

	return nil
}

// ValidateHeader checks the whole entry table at the given level.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	for i := range h.Tensors {
		if err := ValidateTensorName(h.Tensors[i].Name); err != nil {
			return err
		}
		if err := ValidateEntryAxes(&h.Tensors[i]); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		if err := ValidateTensorOffsets(h.Tensors, dataSize); err != nil {
			return err
		}
	}

	return nil
}
