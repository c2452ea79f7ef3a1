package cpu

import (
	"testing"

	"github.com/axial-ml/axial/internal/tensor"
)

func TestCPUBackend_MatMul(t *testing.T) {
	backend := newTestBackend()
	a := rawFromFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := rawFromFloat32(t, tensor.Shape{3, 2}, []float32{7, 8, 9, 10, 11, 12})

	result := backend.MatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("Expected shape (2, 2), got %v", result.Shape())
	}
	expected := []float32{58, 64, 139, 154}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat32())
	}
}

func TestCPUBackend_MatMulIdentity(t *testing.T) {
	backend := newTestBackend()
	a := rawFromFloat32(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	eye := rawFromFloat32(t, tensor.Shape{2, 2}, []float32{1, 0, 0, 1})

	result := backend.MatMul(a, eye)

	if !float32SliceEqual(result.AsFloat32(), []float32{1, 2, 3, 4}) {
		t.Errorf("Expected identity product, got %v", result.AsFloat32())
	}
}

func TestCPUBackend_MatMulInt32(t *testing.T) {
	backend := newTestBackend()
	a := rawFromInt32(t, tensor.Shape{2, 2}, []int32{1, 2, 3, 4})
	b := rawFromInt32(t, tensor.Shape{2, 2}, []int32{5, 6, 7, 8})

	result := backend.MatMul(a, b)

	expected := []int32{19, 22, 43, 50}
	if !int32SliceEqual(result.AsInt32(), expected) {
		t.Errorf("Expected %v, got %v", expected, result.AsInt32())
	}
}

func TestCPUBackend_MatMulIncompatible(t *testing.T) {
	backend := newTestBackend()
	a := rawFromFloat32(t, tensor.Shape{2, 3}, make([]float32, 6))
	b := rawFromFloat32(t, tensor.Shape{2, 2}, make([]float32, 4))

	expectPanic(t, "matmul", func() { backend.MatMul(a, b) })
}

func TestCPUBackend_MatMulNon2D(t *testing.T) {
	backend := newTestBackend()
	a := rawFromFloat32(t, tensor.Shape{2, 2, 2}, make([]float32, 8))
	b := rawFromFloat32(t, tensor.Shape{2, 2}, make([]float32, 4))

	expectPanic(t, "matmul", func() { backend.MatMul(a, b) })
}

func TestCPUBackend_MatMulLarge(t *testing.T) {
	backend := newTestBackend()
	n := 64
	aData := make([]float32, n*n)
	bData := make([]float32, n*n)
	for i := 0; i < n; i++ {
		aData[i*n+i] = 2
		bData[i*n+i] = 3
	}
	a := rawFromFloat32(t, tensor.Shape{n, n}, aData)
	b := rawFromFloat32(t, tensor.Shape{n, n}, bData)

	result := backend.MatMul(a, b)

	got := result.AsFloat32()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := float32(0)
			if i == j {
				want = 6
			}
			if got[i*n+j] != want {
				t.Fatalf("At (%d, %d): expected %v, got %v", i, j, want, got[i*n+j])
			}
		}
	}
}

func TestCPUBackend_BatchMatMul(t *testing.T) {
	backend := newTestBackend()
	a := rawFromFloat32(t, tensor.Shape{2, 2, 2}, []float32{
		1, 2, 3, 4,
		1, 1, 1, 1,
	})
	b := rawFromFloat32(t, tensor.Shape{2, 2, 2}, []float32{
		1, 0, 0, 1,
		2, 2, 2, 2,
	})

	result := backend.BatchMatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("Expected shape (2, 2, 2), got %v", result.Shape())
	}
	expected := []float32{1, 2, 3, 4, 4, 4, 4, 4}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat32())
	}
}

func TestCPUBackend_BatchMatMulRectangular(t *testing.T) {
	backend := newTestBackend()
	// (1, 2, 3) x (1, 3, 2)
	a := rawFromFloat32(t, tensor.Shape{1, 2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := rawFromFloat32(t, tensor.Shape{1, 3, 2}, []float32{7, 8, 9, 10, 11, 12})

	result := backend.BatchMatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{1, 2, 2}) {
		t.Fatalf("Expected shape (1, 2, 2), got %v", result.Shape())
	}
	expected := []float32{58, 64, 139, 154}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat32())
	}
}

func TestCPUBackend_BatchMatMulBatchMismatch(t *testing.T) {
	backend := newTestBackend()
	a := rawFromFloat32(t, tensor.Shape{2, 2, 2}, make([]float32, 8))
	b := rawFromFloat32(t, tensor.Shape{3, 2, 2}, make([]float32, 12))

	expectPanic(t, "batchmatmul", func() { backend.BatchMatMul(a, b) })
}

func TestCPUBackend_BatchMatMul4D(t *testing.T) {
	backend := newTestBackend()
	// (2, 1, 2, 2): two stacked identity products.
	a := rawFromFloat32(t, tensor.Shape{2, 1, 2, 2}, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})
	b := rawFromFloat32(t, tensor.Shape{2, 1, 2, 2}, []float32{
		1, 0, 0, 1,
		1, 0, 0, 1,
	})

	result := backend.BatchMatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 1, 2, 2}) {
		t.Fatalf("Expected shape (2, 1, 2, 2), got %v", result.Shape())
	}
	expected := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("Expected %v, got %v", expected, result.AsFloat32())
	}
}
