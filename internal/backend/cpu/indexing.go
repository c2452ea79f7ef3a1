package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// IndexSelect gathers slices of x along dim at the positions given by
// index. index must be 1-D int32; negative entries wrap around dim's size.
func (cpu *CPUBackend) IndexSelect(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	d := normalizeDim("indexselect", dim, len(shape))
	if index.DType() != tensor.Int32 {
		panic(fmt.Sprintf("indexselect: index must be int32, got %s", index.DType()))
	}
	if len(index.Shape()) != 1 {
		panic(fmt.Sprintf("indexselect: index must be 1D, got %dD", len(index.Shape())))
	}

	idx := index.AsInt32()
	dimSize := shape[d]
	outShape := shape.Clone()
	outShape[d] = len(idx)
	result := newRaw("indexselect", outShape, x.DType())

	outer := 1
	for i := 0; i < d; i++ {
		outer *= shape[i]
	}
	innerBytes := x.DType().Size()
	for i := d + 1; i < len(shape); i++ {
		innerBytes *= shape[i]
	}

	src := x.Data()
	dst := result.Data()
	srcRow := dimSize * innerBytes
	dstRow := len(idx) * innerBytes
	for o := 0; o < outer; o++ {
		for j, iv := range idx {
			k := int(iv)
			if k < 0 {
				k += dimSize
			}
			if k < 0 || k >= dimSize {
				panic(fmt.Sprintf("indexselect: index %d out of range for dimension %d (size %d)", iv, d, dimSize))
			}
			copy(dst[o*dstRow+j*innerBytes:o*dstRow+(j+1)*innerBytes],
				src[o*srcRow+k*innerBytes:o*srcRow+(k+1)*innerBytes])
		}
	}
	return result
}

// Where selects x where condition holds and y elsewhere, broadcasting all
// three operands to a common shape.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %s", condition.DType()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: dtype mismatch %s vs %s", x.DType(), y.DType()))
	}
	pairShape, _, err := tensor.BroadcastShapes(condition.Shape(), x.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}
	outShape, _, err := tensor.BroadcastShapes(pairShape, y.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}

	result := newRaw("where", outShape, x.DType())
	switch x.DType() {
	case tensor.Float32:
		whereKernel(cpu, rawData[float32](result), condition, rawData[float32](x), rawData[float32](y), x.Shape(), y.Shape(), outShape)
	case tensor.Float64:
		whereKernel(cpu, rawData[float64](result), condition, rawData[float64](x), rawData[float64](y), x.Shape(), y.Shape(), outShape)
	case tensor.Int32:
		whereKernel(cpu, rawData[int32](result), condition, rawData[int32](x), rawData[int32](y), x.Shape(), y.Shape(), outShape)
	case tensor.Int64:
		whereKernel(cpu, rawData[int64](result), condition, rawData[int64](x), rawData[int64](y), x.Shape(), y.Shape(), outShape)
	case tensor.Uint8:
		whereKernel(cpu, rawData[uint8](result), condition, rawData[uint8](x), rawData[uint8](y), x.Shape(), y.Shape(), outShape)
	case tensor.Bool:
		whereKernel(cpu, rawData[bool](result), condition, rawData[bool](x), rawData[bool](y), x.Shape(), y.Shape(), outShape)
	default:
		panic(fmt.Sprintf("where: unsupported dtype %s", x.DType()))
	}
	return result
}

func whereKernel[T element](cpu *CPUBackend, dst []T, cond *tensor.RawTensor, xData, yData []T, xShape, yShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	condStrides := broadcastStrides(cond.Shape(), outShape)
	xStrides := broadcastStrides(xShape, outShape)
	yStrides := broadcastStrides(yShape, outShape)
	condData := cond.AsBool()
	parallel.For(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if condData[flatIndex(i, outStrides, condStrides)] {
				dst[i] = xData[flatIndex(i, outStrides, xStrides)]
			} else {
				dst[i] = yData[flatIndex(i, outStrides, yStrides)]
			}
		}
	}, cpu.par)
}

// NonzeroPad returns the coordinates of true elements of condition in
// row-major scan order as an (ndim, size) int32 tensor. Columns beyond the
// number of true elements are filled with fill; true elements beyond size
// are dropped.
func (cpu *CPUBackend) NonzeroPad(condition *tensor.RawTensor, size int, fill int32) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("nonzero: condition must be bool, got %s", condition.DType()))
	}
	shape := condition.Shape()
	ndim := len(shape)
	if ndim == 0 {
		panic("nonzero: scalar input not supported")
	}
	if size <= 0 {
		panic(fmt.Sprintf("nonzero: size must be positive, got %d", size))
	}

	result := newRaw("nonzero", tensor.Shape{ndim, size}, tensor.Int32)
	dst := result.AsInt32()
	for i := range dst {
		dst[i] = fill
	}

	strides := shape.ComputeStrides()
	col := 0
	for i, v := range condition.AsBool() {
		if !v {
			continue
		}
		if col >= size {
			break
		}
		rem := i
		for d := 0; d < ndim; d++ {
			dst[d*size+col] = int32(rem / strides[d]) //nolint:gosec // G115: coordinates stay well under 2^31
			rem %= strides[d]
		}
		col++
	}
	return result
}
