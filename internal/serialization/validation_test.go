package serialization

import (
	"errors"
	"strings"
	"testing"
)

func wantValidationType(t *testing.T, err error, wantType string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T: %v", err, err)
	}
	if verr.Type != wantType {
		t.Errorf("Expected %s error, got %s", wantType, verr.Type)
	}
}

// TestValidateTensorOffsets_NoOverlap verifies that a well-formed entry
// table passes the offset scan.
func TestValidateTensorOffsets_NoOverlap(t *testing.T) {
	tensors := []TensorMeta{
		{Name: "a", Offset: 0, Size: 64},
		{Name: "b", Offset: 64, Size: 100},
		{Name: "c", Offset: 192, Size: 8},
	}

	if err := ValidateTensorOffsets(tensors, 200); err != nil {
		t.Errorf("Expected no error for valid tensors, got: %v", err)
	}
}

// TestValidateTensorOffsets_Overlap detects overlapping payload regions.
func TestValidateTensorOffsets_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		tensors  []TensorMeta
		dataSize int64
		wantErr  bool
	}{
		{
			name: "complete overlap",
			tensors: []TensorMeta{
				{Name: "a", Offset: 0, Size: 100},
				{Name: "b", Offset: 50, Size: 100},
			},
			dataSize: 200,
			wantErr:  true,
		},
		{
			name: "one byte overlap",
			tensors: []TensorMeta{
				{Name: "a", Offset: 0, Size: 100},
				{Name: "b", Offset: 99, Size: 100},
			},
			dataSize: 200,
			wantErr:  true,
		},
		{
			name: "exact boundary",
			tensors: []TensorMeta{
				{Name: "a", Offset: 0, Size: 100},
				{Name: "b", Offset: 100, Size: 100},
			},
			dataSize: 200,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.dataSize)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTensorOffsets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				wantValidationType(t, err, "offset_overlap")
			}
		})
	}
}

// TestValidateTensorOffsets_OutOfBounds detects entries extending past
// the data section.
func TestValidateTensorOffsets_OutOfBounds(t *testing.T) {
	tensors := []TensorMeta{
		{Name: "a", Offset: 0, Size: 100},
		{Name: "b", Offset: 100, Size: 200},
	}

	err := ValidateTensorOffsets(tensors, 250)
	if err == nil {
		t.Fatal("Expected error for out-of-bounds tensor")
	}
	wantValidationType(t, err, "out_of_bounds")
}

// TestValidateTensorOffsets_Negative detects negative offsets and sizes.
func TestValidateTensorOffsets_Negative(t *testing.T) {
	err := ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: -1, Size: 100}}, 200)
	if err == nil {
		t.Fatal("Expected error for negative offset")
	}
	wantValidationType(t, err, "negative_offset")

	err = ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: 0, Size: -5}}, 200)
	if err == nil {
		t.Fatal("Expected error for negative size")
	}
	wantValidationType(t, err, "negative_offset")
}

// TestValidateTensorName checks the filename-safety rules.
func TestValidateTensorName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType string // empty means valid
	}{
		{name: "simple", input: "weight"},
		{name: "dotted path", input: "encoder.layers.0.weight"},
		{name: "too long", input: strings.Repeat("x", MaxTensorNameLen+1), wantType: "name_too_long"},
		{name: "parent traversal", input: "../../../etc/passwd", wantType: "invalid_name"},
		{name: "forward slash", input: "dir/weight", wantType: "invalid_name"},
		{name: "backslash", input: "dir\\weight", wantType: "invalid_name"},
		{name: "null byte", input: "weight\x00", wantType: "invalid_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorName(tt.input)
			if tt.wantType == "" {
				if err != nil {
					t.Errorf("Expected valid name, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error")
			}
			wantValidationType(t, err, tt.wantType)
		})
	}
}

// TestValidateEntryAxes checks axis well-formedness and the size
// accounting between axes, dtype and payload.
func TestValidateEntryAxes(t *testing.T) {
	tests := []struct {
		name     string
		meta     TensorMeta
		wantType string // empty means valid
	}{
		{
			name: "valid",
			meta: TensorMeta{
				Name:  "w",
				DType: DTypeFloat32,
				Axes:  []AxisMeta{{Name: "Height", Size: 2}, {Name: "Width", Size: 3}},
				Size:  24,
			},
		},
		{
			name: "scalar",
			meta: TensorMeta{Name: "s", DType: DTypeFloat64, Axes: nil, Size: 8},
		},
		{
			name: "non-positive axis size",
			meta: TensorMeta{
				Name:  "w",
				DType: DTypeFloat32,
				Axes:  []AxisMeta{{Name: "Height", Size: 0}},
				Size:  0,
			},
			wantType: "invalid_axis",
		},
		{
			name: "duplicate axis name",
			meta: TensorMeta{
				Name:  "w",
				DType: DTypeFloat32,
				Axes:  []AxisMeta{{Name: "Height", Size: 2}, {Name: "Height", Size: 3}},
				Size:  24,
			},
			wantType: "invalid_axis",
		},
		{
			name: "unknown dtype",
			meta: TensorMeta{
				Name:  "w",
				DType: "float16",
				Axes:  []AxisMeta{{Name: "Height", Size: 2}},
				Size:  4,
			},
			wantType: "unknown_dtype",
		},
		{
			name: "size mismatch",
			meta: TensorMeta{
				Name:  "w",
				DType: DTypeFloat32,
				Axes:  []AxisMeta{{Name: "Height", Size: 2}, {Name: "Width", Size: 3}},
				Size:  16,
			},
			wantType: "axes_mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryAxes(&tt.meta)
			if tt.wantType == "" {
				if err != nil {
					t.Errorf("Expected valid axes, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error")
			}
			wantValidationType(t, err, tt.wantType)
		})
	}
}

// TestValidateHeader_Levels verifies which checks run at each level.
func TestValidateHeader_Levels(t *testing.T) {
	// Bad name, bad axes accounting, and overlapping offsets at once.
	header := Header{
		Tensors: []TensorMeta{
			{Name: "a", DType: DTypeFloat32, Axes: []AxisMeta{{Name: "N", Size: 4}}, Offset: 0, Size: 16},
			{Name: "b", DType: DTypeFloat32, Axes: []AxisMeta{{Name: "N", Size: 4}}, Offset: 8, Size: 16},
		},
	}

	if err := ValidateHeader(&header, 24, ValidationNone); err != nil {
		t.Errorf("ValidationNone should skip all checks, got: %v", err)
	}

	if err := ValidateHeader(&header, 24, ValidationNormal); err != nil {
		t.Errorf("ValidationNormal should skip the offset scan, got: %v", err)
	}

	err := ValidateHeader(&header, 24, ValidationStrict)
	if err == nil {
		t.Fatal("ValidationStrict should run the offset scan")
	}
	wantValidationType(t, err, "offset_overlap")

	// A bad name fails at Normal already.
	header.Tensors[0].Name = "a/b"
	err = ValidateHeader(&header, 24, ValidationNormal)
	if err == nil {
		t.Fatal("Expected error for bad name at ValidationNormal")
	}
	wantValidationType(t, err, "invalid_name")
}
