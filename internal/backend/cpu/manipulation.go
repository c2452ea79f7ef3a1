package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Cat concatenates tensors along dim. All inputs must share dtype, rank and
// every dimension except dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}
	first := tensors[0]
	shape := first.Shape()
	d := normalizeDim("cat", dim, len(shape))

	total := 0
	for _, t := range tensors {
		tShape := t.Shape()
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: dtype mismatch %s vs %s", first.DType(), t.DType()))
		}
		if len(tShape) != len(shape) {
			panic(fmt.Sprintf("cat: rank mismatch %v vs %v", shape, tShape))
		}
		for i := range tShape {
			if i != d && tShape[i] != shape[i] {
				panic(fmt.Sprintf("cat: shapes %v and %v differ outside dimension %d", shape, tShape, d))
			}
		}
		total += tShape[d]
	}

	outShape := shape.Clone()
	outShape[d] = total
	result := newRaw("cat", outShape, first.DType())

	outer := 1
	for i := 0; i < d; i++ {
		outer *= shape[i]
	}
	innerBytes := first.DType().Size()
	for i := d + 1; i < len(shape); i++ {
		innerBytes *= shape[i]
	}

	dst := result.Data()
	outRow := total * innerBytes
	offset := 0
	for _, t := range tensors {
		block := t.Shape()[d] * innerBytes
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*outRow+offset:o*outRow+offset+block], src[o*block:(o+1)*block])
		}
		offset += block
	}
	return result
}

// Narrow copies the slice [start, start+length) of dim.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	d := normalizeDim("narrow", dim, len(shape))
	if start < 0 || length <= 0 || start+length > shape[d] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension %d (size %d)",
			start, start+length, d, shape[d]))
	}

	outShape := shape.Clone()
	outShape[d] = length
	result := newRaw("narrow", outShape, x.DType())

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
	srcRow := shape[d] * innerBytes
	dstRow := length * innerBytes
	for o := 0; o < outer; o++ {
		copy(dst[o*dstRow:(o+1)*dstRow], src[o*srcRow+start*innerBytes:o*srcRow+(start+length)*innerBytes])
	}
	return result
}

// Unsqueeze inserts a size-1 dimension at dim. dim may be len(shape) (or
// -1 after wrapping) to append at the end.
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape) + 1
	}
	if dim < 0 || dim > len(shape) {
		panic(fmt.Sprintf("unsqueeze: invalid dimension %d for %dD tensor", dim, len(shape)))
	}
	newShape := make(tensor.Shape, 0, len(shape)+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return cpu.Reshape(x, newShape)
}

// Squeeze removes a size-1 dimension at dim.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	d := normalizeDim("squeeze", dim, len(shape))
	if shape[d] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, expected 1", d, shape[d]))
	}
	newShape := make(tensor.Shape, 0, len(shape)-1)
	newShape = append(newShape, shape[:d]...)
	newShape = append(newShape, shape[d+1:]...)
	return cpu.Reshape(x, newShape)
}
