package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// BatchMatMul multiplies matrices held in the last two dimensions, treating
// all leading dimensions as batch. The batch dimensions of a and b must
// match exactly.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) < 3 || len(bShape) < 3 {
		panic(fmt.Sprintf("batchmatmul: expected at least 3D tensors, got %dD and %dD", len(aShape), len(bShape)))
	}
	if len(aShape) != len(bShape) {
		panic(fmt.Sprintf("batchmatmul: rank mismatch %v vs %v", aShape, bShape))
	}
	batch := 1
	for i := 0; i < len(aShape)-2; i++ {
		if aShape[i] != bShape[i] {
			panic(fmt.Sprintf("batchmatmul: batch dimensions differ, %v vs %v", aShape, bShape))
		}
		batch *= aShape[i]
	}
	m, k := aShape[len(aShape)-2], aShape[len(aShape)-1]
	if bShape[len(bShape)-2] != k {
		panic(fmt.Sprintf("batchmatmul: incompatible shapes %v and %v", aShape, bShape))
	}
	n := bShape[len(bShape)-1]
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("batchmatmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	outShape := aShape.Clone()
	outShape[len(outShape)-1] = n
	result := newRaw("batchmatmul", outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		batchMatmulKernel(cpu, rawData[float32](result), rawData[float32](a), rawData[float32](b), batch, m, k, n)
	case tensor.Float64:
		batchMatmulKernel(cpu, rawData[float64](result), rawData[float64](a), rawData[float64](b), batch, m, k, n)
	default:
		panic(fmt.Sprintf("batchmatmul: unsupported dtype %s (only float32/float64 supported)", a.DType()))
	}
	return result
}

// batchMatmulKernel splits the batch across workers; each batch entry is an
// independent m×k by k×n product.
func batchMatmulKernel[T number](cpu *CPUBackend, c, a, b []T, batch, m, k, n int) {
	parallel.For(batch, func(lo, hi int) {
		for bi := lo; bi < hi; bi++ {
			matmulRows(c[bi*m*n:(bi+1)*m*n], a[bi*m*k:(bi+1)*m*k], b[bi*k*n:(bi+1)*k*n], k, n, 0, m)
		}
	}, cpu.par.Scaled(m*k*n))
}
