package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/axial-ml/axial/internal/backend/cpu"
	"github.com/axial-ml/axial/internal/named"
)

// TestSafetensorsRoundTrip saves named arrays as safetensors and loads
// them back with axis names restored from the metadata.
func TestSafetensorsRoundTrip(t *testing.T) {
	b := cpu.New()
	path := filepath.Join(t.TempDir(), "model.safetensors")

	weight, err := named.FromSlice(
		[]float32{1, 2, 3, 4, 5, 6},
		named.Axes(named.Axis{Name: "Out", Size: 2}, named.Axis{Name: "In", Size: 3}),
		b,
	)
	if err != nil {
		t.Fatalf("Failed to build weight: %v", err)
	}
	bias, err := named.FromSlice(
		[]float32{0.5, -0.5},
		named.Axes(named.Axis{Name: "Out", Size: 2}),
		b,
	)
	if err != nil {
		t.Fatalf("Failed to build bias: %v", err)
	}

	arrays := map[string]*named.NamedArray[float32, *cpu.CPUBackend]{
		"weight": weight,
		"bias":   bias,
	}
	if err := SaveSafetensors(path, arrays); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded, err := LoadSafetensors[float32](path, b)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 arrays, got %d", len(loaded))
	}

	gotWeight := loaded["weight"]
	wantAxes := []named.Axis{{Name: "Out", Size: 2}, {Name: "In", Size: 3}}
	if !reflect.DeepEqual(gotWeight.Axes(), wantAxes) {
		t.Errorf("Expected axes %v, got %v", wantAxes, gotWeight.Axes())
	}
	if !reflect.DeepEqual(gotWeight.Data(), []float32{1, 2, 3, 4, 5, 6}) {
		t.Errorf("weight data mismatch: %v", gotWeight.Data())
	}
	if !reflect.DeepEqual(loaded["bias"].Data(), []float32{0.5, -0.5}) {
		t.Errorf("bias data mismatch: %v", loaded["bias"].Data())
	}
}

// TestSafetensorsReader checks the header view of a written file: name
// order, metadata, axis records, and the 8-byte data alignment other
// safetensors tooling expects.
func TestSafetensorsReader(t *testing.T) {
	b := cpu.New()
	path := filepath.Join(t.TempDir(), "model.safetensors")

	scale, err := named.FromSlice(
		[]float32{2, 4, 8},
		named.Axes(named.Axis{Name: "Channel", Size: 3}),
		b,
	)
	if err != nil {
		t.Fatalf("Failed to build array: %v", err)
	}
	arrays := map[string]*named.NamedArray[float32, *cpu.CPUBackend]{"scale": scale}
	if err := SaveSafetensors(path, arrays); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	r, err := NewSafetensorsReader(path)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	defer r.Close()

	if got := r.Names(); !reflect.DeepEqual(got, []string{"scale"}) {
		t.Errorf("Expected names [scale], got %v", got)
	}
	if got := r.Metadata()["format"]; got != "axial" {
		t.Errorf("Expected format=axial metadata, got %q", got)
	}
	wantAxes := []AxisMeta{{Name: "Channel", Size: 3}}
	if got := r.Axes("scale"); !reflect.DeepEqual(got, wantAxes) {
		t.Errorf("Expected axes %v, got %v", wantAxes, got)
	}

	info, err := r.EntryInfo("scale")
	if err != nil {
		t.Fatalf("Failed to read entry info: %v", err)
	}
	if info.DType != "F32" || !reflect.DeepEqual(info.Shape, []int{3}) {
		t.Errorf("Unexpected entry info: %+v", info)
	}
	if _, err := r.EntryInfo("missing"); !errors.Is(err, ErrTensorNotFound) {
		t.Errorf("Expected ErrTensorNotFound, got: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file back: %v", err)
	}
	headerSize := binary.LittleEndian.Uint64(raw[:8])
	if headerSize%8 != 0 {
		t.Errorf("Expected 8-byte aligned header, got size %d", headerSize)
	}
}

// TestSafetensorsForeignFile reads a hand-built file without axis
// metadata, the shape files from other tooling arrive in.
func TestSafetensorsForeignFile(t *testing.T) {
	b := cpu.New()
	path := filepath.Join(t.TempDir(), "foreign.safetensors")

	payload := make([]byte, 16)
	for i, v := range []float32{1, 2, 3, 4} {
		binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(v))
	}
	header := `{"w":{"dtype":"F32","shape":[2,2],"data_offsets":[0,16]}}`
	writeSafetensorsFile(t, path, header, payload)

	r, err := NewSafetensorsReader(path)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	defer r.Close()

	if got := r.Axes("w"); got != nil {
		t.Errorf("Expected no axes for a foreign file, got %v", got)
	}

	raw, err := r.LoadEntry("w", b)
	if err != nil {
		t.Fatalf("Failed to load entry: %v", err)
	}
	if !reflect.DeepEqual(raw.AsFloat32(), []float32{1, 2, 3, 4}) {
		t.Errorf("Entry data mismatch: %v", raw.AsFloat32())
	}
	if !reflect.DeepEqual([]int(raw.Shape()), []int{2, 2}) {
		t.Errorf("Entry shape mismatch: %v", raw.Shape())
	}

	_, err = LoadSafetensors[float32](path, b)
	if err == nil || !strings.Contains(err.Error(), "carries no axis names") {
		t.Errorf("Expected missing axis names error, got: %v", err)
	}
}

// TestLoadSafetensorsDTypeMismatch rejects loading entries under the
// wrong element type instead of reinterpreting bytes.
func TestLoadSafetensorsDTypeMismatch(t *testing.T) {
	b := cpu.New()
	path := filepath.Join(t.TempDir(), "model.safetensors")

	weight, err := named.FromSlice(
		[]float64{1, 2},
		named.Axes(named.Axis{Name: "N", Size: 2}),
		b,
	)
	if err != nil {
		t.Fatalf("Failed to build array: %v", err)
	}
	arrays := map[string]*named.NamedArray[float64, *cpu.CPUBackend]{"weight": weight}
	if err := SaveSafetensors(path, arrays); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	_, err = LoadSafetensors[float32](path, b)
	if err == nil {
		t.Fatal("Expected dtype mismatch error")
	}
	if !strings.Contains(err.Error(), "holds F64, requested float32") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestSafetensorsHalfPrecision opens files holding F16 entries but
// refuses to load them without conversion.
func TestSafetensorsHalfPrecision(t *testing.T) {
	b := cpu.New()
	path := filepath.Join(t.TempDir(), "half.safetensors")

	header := `{"h":{"dtype":"F16","shape":[2],"data_offsets":[0,4]}}`
	writeSafetensorsFile(t, path, header, []byte{0, 0, 0, 60})

	r, err := NewSafetensorsReader(path)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	defer r.Close()

	data, err := r.ReadEntryData("h")
	if err != nil {
		t.Fatalf("Failed to read entry bytes: %v", err)
	}
	if len(data) != 4 {
		t.Errorf("Expected 4 payload bytes, got %d", len(data))
	}

	_, err = r.LoadEntry("h", b)
	if err == nil || !strings.Contains(err.Error(), "requires conversion") {
		t.Errorf("Expected conversion error, got: %v", err)
	}
}

// TestSafetensorsMalformed rejects corrupt or hostile files at open.
func TestSafetensorsMalformed(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		build   func(t *testing.T, path string)
		wantErr string
	}{
		{
			name: "truncated size field",
			build: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte{1, 2, 3}, 0o600); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
			},
			wantErr: "failed to read header size",
		},
		{
			name: "header size beyond file",
			build: func(t *testing.T, path string) {
				var buf bytes.Buffer
				if err := binary.Write(&buf, binary.LittleEndian, uint64(1024)); err != nil {
					t.Fatalf("Failed to encode size: %v", err)
				}
				buf.WriteString("{}")
				if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
					t.Fatalf("Failed to write file: %v", err)
				}
			},
			wantErr: "failed to read header",
		},
		{
			name: "invalid header JSON",
			build: func(t *testing.T, path string) {
				writeSafetensorsFile(t, path, `{"w": not json}`, nil)
			},
			wantErr: "failed to parse header JSON",
		},
		{
			name: "offsets beyond data",
			build: func(t *testing.T, path string) {
				header := `{"w":{"dtype":"F32","shape":[4],"data_offsets":[0,16]}}`
				writeSafetensorsFile(t, path, header, make([]byte, 8))
			},
			wantErr: "out_of_bounds",
		},
		{
			name: "negative offsets",
			build: func(t *testing.T, path string) {
				header := `{"w":{"dtype":"F32","shape":[1],"data_offsets":[8,4]}}`
				writeSafetensorsFile(t, path, header, make([]byte, 8))
			},
			wantErr: "negative_offset",
		},
		{
			name: "shape does not match payload",
			build: func(t *testing.T, path string) {
				header := `{"w":{"dtype":"F32","shape":[4],"data_offsets":[0,8]}}`
				writeSafetensorsFile(t, path, header, make([]byte, 8))
			},
			wantErr: "size_mismatch",
		},
		{
			name: "axis count does not match shape",
			build: func(t *testing.T, path string) {
				header := `{"__metadata__":{"axial_axes":"{\"w\":[\"A\",\"B\"]}"},` +
					`"w":{"dtype":"F32","shape":[2],"data_offsets":[0,8]}}`
				writeSafetensorsFile(t, path, header, make([]byte, 8))
			},
			wantErr: "axes_mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".safetensors")
			tt.build(t, path)

			_, err := NewSafetensorsReader(path)
			if err == nil {
				t.Fatal("Expected open to fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

// TestSafetensorsHeaderTooLarge stops before allocating a buffer for an
// absurd declared header size.
func TestSafetensorsHeaderTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.safetensors")

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint64(1<<40)); err != nil {
		t.Fatalf("Failed to encode size: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := NewSafetensorsReader(path)
	if !errors.Is(err, ErrHeaderTooLarge) {
		t.Errorf("Expected ErrHeaderTooLarge, got: %v", err)
	}
}

func writeSafetensorsFile(t *testing.T, path, header string, payload []byte) {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint64(len(header))); err != nil {
		t.Fatalf("Failed to encode header size: %v", err)
	}
	buf.WriteString(header)
	buf.Write(payload)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}
