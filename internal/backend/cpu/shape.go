package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// Reshape returns a contiguous copy of t with the new shape. The element
// count must not change.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}
	result := newRaw("reshape", newShape, t.DType())
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes dimensions. With no axes given the dimension order is
// reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: expected %d axes, got %d", ndim, len(axes)))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	result := newRaw("transpose", shape.Permute(axes), t.DType())
	switch t.DType() {
	case tensor.Float32:
		transposeKernel(cpu, rawData[float32](result), rawData[float32](t), shape, axes)
	case tensor.Float64:
		transposeKernel(cpu, rawData[float64](result), rawData[float64](t), shape, axes)
	case tensor.Int32:
		transposeKernel(cpu, rawData[int32](result), rawData[int32](t), shape, axes)
	case tensor.Int64:
		transposeKernel(cpu, rawData[int64](result), rawData[int64](t), shape, axes)
	case tensor.Uint8:
		transposeKernel(cpu, rawData[uint8](result), rawData[uint8](t), shape, axes)
	case tensor.Bool:
		transposeKernel(cpu, rawData[bool](result), rawData[bool](t), shape, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	return result
}

// transposeKernel walks the source in order and scatters into the permuted
// layout using a per-source-dimension destination stride.
func transposeKernel[T element](cpu *CPUBackend, dst, src []T, shape tensor.Shape, axes []int) {
	srcStrides := shape.ComputeStrides()
	outStrides := shape.Permute(axes).ComputeStrides()
	dstStrideFor := make([]int, len(shape))
	for dstDim, srcDim := range axes {
		dstStrideFor[srcDim] = outStrides[dstDim]
	}
	parallel.For(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			rem := i
			di := 0
			for d := range srcStrides {
				di += (rem / srcStrides[d]) * dstStrideFor[d]
				rem %= srcStrides[d]
			}
			dst[di] = src[i]
		}
	}, cpu.par)
}

// Expand broadcasts size-1 dimensions up to the target shape, materializing
// the result. Existing dimensions are right-aligned against the target and
// must be equal or 1.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()
	if len(shape) < len(xShape) {
		panic(fmt.Sprintf("expand: target %v has fewer dimensions than %v", shape, xShape))
	}
	offset := len(shape) - len(xShape)
	for i, size := range xShape {
		if size != shape[offset+i] && size != 1 {
			panic(fmt.Sprintf("expand: cannot expand dimension %d from %d to %d", i, size, shape[offset+i]))
		}
	}

	result := newRaw("expand", shape, x.DType())
	switch x.DType() {
	case tensor.Float32:
		expandKernel(cpu, rawData[float32](result), rawData[float32](x), xShape, shape)
	case tensor.Float64:
		expandKernel(cpu, rawData[float64](result), rawData[float64](x), xShape, shape)
	case tensor.Int32:
		expandKernel(cpu, rawData[int32](result), rawData[int32](x), xShape, shape)
	case tensor.Int64:
		expandKernel(cpu, rawData[int64](result), rawData[int64](x), xShape, shape)
	case tensor.Uint8:
		expandKernel(cpu, rawData[uint8](result), rawData[uint8](x), xShape, shape)
	case tensor.Bool:
		expandKernel(cpu, rawData[bool](result), rawData[bool](x), xShape, shape)
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %s", x.DType()))
	}
	return result
}

func expandKernel[T element](cpu *CPUBackend, dst, src []T, from, to tensor.Shape) {
	outStrides := to.ComputeStrides()
	srcStrides := broadcastStrides(from, to)
	parallel.For(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = src[flatIndex(i, outStrides, srcStrides)]
		}
	}, cpu.par)
}
