//go:build windows

package webgpu

import (
	"testing"

	"github.com/axial-ml/axial/internal/backend/cpu"
	"github.com/axial-ml/axial/internal/tensor"
)

func newGPUBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(backend.Release)
	return backend
}

func float32Raw(t *testing.T, shape tensor.Shape, fill func(i int) float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		t.Fatalf("failed to create tensor: %v", err)
	}
	data := raw.AsFloat32()
	for i := range data {
		data[i] = fill(i)
	}
	return raw
}

func requireClose(t *testing.T, want, got *tensor.RawTensor, tolerance float32) {
	t.Helper()
	wantData := want.AsFloat32()
	gotData := got.AsFloat32()
	if len(wantData) != len(gotData) {
		t.Fatalf("length mismatch: want %d, got %d", len(wantData), len(gotData))
	}
	for i := range wantData {
		diff := wantData[i] - gotData[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			t.Fatalf("value mismatch at index %d: want %f, got %f", i, wantData[i], gotData[i])
		}
	}
}

func TestBinaryOpsMatchCPU(t *testing.T) {
	backend := newGPUBackend(t)
	reference := cpu.New()

	// Large enough to take the GPU path.
	shape := tensor.Shape{minGPUElements}
	a := float32Raw(t, shape, func(i int) float32 { return float32(i%17)*0.25 - 2 })
	b := float32Raw(t, shape, func(i int) float32 { return float32(i%13)*0.5 + 0.5 })

	tests := []struct {
		name string
		gpu  func(x, y *tensor.RawTensor) *tensor.RawTensor
		cpu  func(x, y *tensor.RawTensor) *tensor.RawTensor
	}{
		{"add", backend.Add, reference.Add},
		{"sub", backend.Sub, reference.Sub},
		{"mul", backend.Mul, reference.Mul},
		{"div", backend.Div, reference.Div},
		{"maximum", backend.Maximum, reference.Maximum},
		{"minimum", backend.Minimum, reference.Minimum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.gpu(a, b)
			want := tt.cpu(a, b)
			if got.Device() != tensor.WebGPU {
				t.Errorf("result device = %v, want %v", got.Device(), tensor.WebGPU)
			}
			requireClose(t, want, got, 1e-5)
		})
	}
}

func TestUnaryOpsMatchCPU(t *testing.T) {
	backend := newGPUBackend(t)
	reference := cpu.New()

	shape := tensor.Shape{minGPUElements}
	signed := float32Raw(t, shape, func(i int) float32 { return float32(i%19)*0.25 - 2 })
	positive := float32Raw(t, shape, func(i int) float32 { return float32(i%29)*0.1 + 0.1 })

	tests := []struct {
		name  string
		input *tensor.RawTensor
		gpu   func(x *tensor.RawTensor) *tensor.RawTensor
		cpu   func(x *tensor.RawTensor) *tensor.RawTensor
	}{
		{"neg", signed, backend.Neg, reference.Neg},
		{"abs", signed, backend.Abs, reference.Abs},
		{"exp", signed, backend.Exp, reference.Exp},
		{"log", positive, backend.Log, reference.Log},
		{"sqrt", positive, backend.Sqrt, reference.Sqrt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.gpu(tt.input)
			want := tt.cpu(tt.input)
			requireClose(t, want, got, 1e-4)
		})
	}
}

func TestSmallTensorFallsBackToCPU(t *testing.T) {
	backend := newGPUBackend(t)

	a := float32Raw(t, tensor.Shape{4}, func(i int) float32 { return float32(i + 1) })
	b := float32Raw(t, tensor.Shape{4}, func(i int) float32 { return float32(i + 5) })

	result := backend.Add(a, b)
	if result.Device() != tensor.CPU {
		t.Errorf("small op should run on CPU, got device %v", result.Device())
	}
	expected := []float32{6, 8, 10, 12}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("result[%d] = %f, want %f", i, v, expected[i])
		}
	}
}

func TestMixedDTypeFallsBackToCPU(t *testing.T) {
	backend := newGPUBackend(t)

	raw, err := tensor.NewRaw(tensor.Shape{minGPUElements}, tensor.Float64, tensor.WebGPU)
	if err != nil {
		t.Fatalf("failed to create tensor: %v", err)
	}
	data := raw.AsFloat64()
	for i := range data {
		data[i] = float64(i) * 0.5
	}

	result := backend.Add(raw, raw)
	if result.Device() != tensor.CPU {
		t.Errorf("float64 op should run on CPU, got device %v", result.Device())
	}
}

func TestMatMul(t *testing.T) {
	backend := newGPUBackend(t)
	reference := cpu.New()

	// 64x64 matrices clear the dispatch threshold.
	a := float32Raw(t, tensor.Shape{64, 64}, func(i int) float32 { return float32(i%23)*0.125 - 1 })
	b := float32Raw(t, tensor.Shape{64, 64}, func(i int) float32 { return float32(i%31)*0.0625 - 0.5 })

	got := backend.MatMul(a, b)
	want := reference.MatMul(a, b)

	if !got.Shape().Equal(tensor.Shape{64, 64}) {
		t.Fatalf("result shape = %v, want [64 64]", got.Shape())
	}
	// The K-loop accumulates 64 products, so allow a wider tolerance.
	requireClose(t, want, got, 1e-3)
}

func TestMatMulSmallFallsBack(t *testing.T) {
	backend := newGPUBackend(t)

	a := float32Raw(t, tensor.Shape{2, 3}, func(i int) float32 { return float32(i + 1) })
	b := float32Raw(t, tensor.Shape{3, 2}, func(i int) float32 { return float32(i + 1) })

	result := backend.MatMul(a, b)
	if result.Device() != tensor.CPU {
		t.Errorf("small matmul should run on CPU, got device %v", result.Device())
	}
	expected := []float32{22, 28, 49, 64}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("result[%d] = %f, want %f", i, v, expected[i])
		}
	}
}
