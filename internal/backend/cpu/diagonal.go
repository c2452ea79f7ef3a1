package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// Diagonal extracts the offset diagonal of the last two dimensions as a
// trailing dimension. offset > 0 selects diagonals above the main one,
// offset < 0 below.
func (cpu *CPUBackend) Diagonal(x *tensor.RawTensor, offset int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("diagonal: expected at least 2D tensor, got %dD", len(shape)))
	}
	m, n := shape[len(shape)-2], shape[len(shape)-1]
	var k int
	if offset >= 0 {
		k = min(m, n-offset)
	} else {
		k = min(m+offset, n)
	}
	if k <= 0 {
		panic(fmt.Sprintf("diagonal: offset %d out of range for %dx%d matrix", offset, m, n))
	}

	outShape := append(shape[:len(shape)-2].Clone(), k)
	result := newRaw("diagonal", outShape, x.DType())
	batch := outShape.NumElements() / k

	switch x.DType() {
	case tensor.Float32:
		diagonalKernel(rawData[float32](result), rawData[float32](x), batch, m, n, k, offset)
	case tensor.Float64:
		diagonalKernel(rawData[float64](result), rawData[float64](x), batch, m, n, k, offset)
	case tensor.Int32:
		diagonalKernel(rawData[int32](result), rawData[int32](x), batch, m, n, k, offset)
	case tensor.Int64:
		diagonalKernel(rawData[int64](result), rawData[int64](x), batch, m, n, k, offset)
	case tensor.Uint8:
		diagonalKernel(rawData[uint8](result), rawData[uint8](x), batch, m, n, k, offset)
	case tensor.Bool:
		diagonalKernel(rawData[bool](result), rawData[bool](x), batch, m, n, k, offset)
	default:
		panic(fmt.Sprintf("diagonal: unsupported dtype %s", x.DType()))
	}
	return result
}

func diagonalKernel[T element](dst, src []T, batch, m, n, k, offset int) {
	row, col := 0, 0
	if offset >= 0 {
		col = offset
	} else {
		row = -offset
	}
	for b := 0; b < batch; b++ {
		srcBase := b * m * n
		dstBase := b * k
		for i := 0; i < k; i++ {
			dst[dstBase+i] = src[srcBase+(row+i)*n+col+i]
		}
	}
}

// Tril zeroes elements above the k-th diagonal of the last two dimensions.
func (cpu *CPUBackend) Tril(x *tensor.RawTensor, k int) *tensor.RawTensor {
	return cpu.triangle("tril", x, k, false)
}

// Triu zeroes elements below the k-th diagonal of the last two dimensions.
func (cpu *CPUBackend) Triu(x *tensor.RawTensor, k int) *tensor.RawTensor {
	return cpu.triangle("triu", x, k, true)
}

func (cpu *CPUBackend) triangle(op string, x *tensor.RawTensor, k int, upper bool) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("%s: expected at least 2D tensor, got %dD", op, len(shape)))
	}
	m, n := shape[len(shape)-2], shape[len(shape)-1]

	result := newRaw(op, shape, x.DType())
	switch x.DType() {
	case tensor.Float32:
		triangleKernel(cpu, rawData[float32](result), rawData[float32](x), m, n, k, upper)
	case tensor.Float64:
		triangleKernel(cpu, rawData[float64](result), rawData[float64](x), m, n, k, upper)
	case tensor.Int32:
		triangleKernel(cpu, rawData[int32](result), rawData[int32](x), m, n, k, upper)
	case tensor.Int64:
		triangleKernel(cpu, rawData[int64](result), rawData[int64](x), m, n, k, upper)
	case tensor.Uint8:
		triangleKernel(cpu, rawData[uint8](result), rawData[uint8](x), m, n, k, upper)
	case tensor.Bool:
		triangleKernel(cpu, rawData[bool](result), rawData[bool](x), m, n, k, upper)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}
	return result
}

// triangleKernel keeps elements with col-row <= k (lower) or col-row >= k
// (upper) and zeroes the rest.
func triangleKernel[T element](cpu *CPUBackend, dst, src []T, m, n, k int, upper bool) {
	var zero T
	mat := m * n
	parallel.For(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			pos := i % mat
			diff := pos%n - pos/n
			keep := diff <= k
			if upper {
				keep = diff >= k
			}
			if keep {
				dst[i] = src[i]
			} else {
				dst[i] = zero
			}
		}
	}, cpu.par)
}
