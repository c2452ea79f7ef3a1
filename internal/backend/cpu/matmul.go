package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// MatMul multiplies two 2-D matrices, contracting the last dimension of a
// with the first dimension of b.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %dD and %dD", len(aShape), len(bShape)))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: incompatible shapes %v and %v", aShape, bShape))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	result := newRaw("matmul", tensor.Shape{m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		matmulKernel(cpu, rawData[float32](result), rawData[float32](a), rawData[float32](b), m, k, n)
	case tensor.Float64:
		matmulKernel(cpu, rawData[float64](result), rawData[float64](a), rawData[float64](b), m, k, n)
	case tensor.Int32:
		matmulKernel(cpu, rawData[int32](result), rawData[int32](a), rawData[int32](b), m, k, n)
	case tensor.Int64:
		matmulKernel(cpu, rawData[int64](result), rawData[int64](a), rawData[int64](b), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return result
}

// matmulKernel computes c = a·b with rows of c split across workers.
func matmulKernel[T number](cpu *CPUBackend, c, a, b []T, m, k, n int) {
	parallel.For(m, func(lo, hi int) {
		matmulRows(c, a, b, k, n, lo, hi)
	}, cpu.par.Scaled(k*n))
}

// matmulRows computes rows [lo, hi) of c. The i-p-j loop order keeps the
// inner loop contiguous in both b and c.
func matmulRows[T number](c, a, b []T, k, n, lo, hi int) {
	for i := lo; i < hi; i++ {
		ci := c[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			bp := b[p*n : (p+1)*n]
			for j, bv := range bp {
				ci[j] += av * bv
			}
		}
	}
}
