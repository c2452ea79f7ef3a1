package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// Pad grows each dimension by (before, after) elements. Constant mode fills
// new elements with value, edge repeats the border element, and reflect
// mirrors the interior without repeating the border.
func (cpu *CPUBackend) Pad(x *tensor.RawTensor, widths [][2]int, mode tensor.PadMode, value any) *tensor.RawTensor {
	shape := x.Shape()
	if len(widths) != len(shape) {
		panic(fmt.Sprintf("pad: got %d width pairs for %dD tensor", len(widths), len(shape)))
	}
	outShape := make(tensor.Shape, len(shape))
	for i, w := range widths {
		if w[0] < 0 || w[1] < 0 {
			panic(fmt.Sprintf("pad: negative width %v for dimension %d", w, i))
		}
		outShape[i] = shape[i] + w[0] + w[1]
	}

	result := newRaw("pad", outShape, x.DType())
	switch x.DType() {
	case tensor.Float32:
		padKernel(cpu, rawData[float32](result), rawData[float32](x), shape, outShape, widths, mode, padFill[float32](value))
	case tensor.Float64:
		padKernel(cpu, rawData[float64](result), rawData[float64](x), shape, outShape, widths, mode, padFill[float64](value))
	case tensor.Int32:
		padKernel(cpu, rawData[int32](result), rawData[int32](x), shape, outShape, widths, mode, padFill[int32](value))
	case tensor.Int64:
		padKernel(cpu, rawData[int64](result), rawData[int64](x), shape, outShape, widths, mode, padFill[int64](value))
	case tensor.Uint8:
		padKernel(cpu, rawData[uint8](result), rawData[uint8](x), shape, outShape, widths, mode, padFill[uint8](value))
	case tensor.Bool:
		fill := false
		if b, ok := value.(bool); ok {
			fill = b
		}
		padKernel(cpu, rawData[bool](result), rawData[bool](x), shape, outShape, widths, mode, fill)
	default:
		panic(fmt.Sprintf("pad: unsupported dtype %s", x.DType()))
	}
	return result
}

func padFill[T number](value any) T {
	if value == nil {
		var zero T
		return zero
	}
	return scalarValue[T]("pad", value)
}

func padKernel[T element](cpu *CPUBackend, dst, src []T, from, to tensor.Shape, widths [][2]int, mode tensor.PadMode, fill T) {
	outStrides := to.ComputeStrides()
	srcStrides := from.ComputeStrides()
	parallel.For(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			rem := i
			srcIdx := 0
			inside := true
			for d := range to {
				c := rem/outStrides[d] - widths[d][0]
				rem %= outStrides[d]
				switch mode {
				case tensor.PadConstant:
					if c < 0 || c >= from[d] {
						inside = false
					}
				case tensor.PadEdge:
					c = min(max(c, 0), from[d]-1)
				case tensor.PadReflect:
					c = reflectIndex(c, from[d])
				}
				if !inside {
					break
				}
				srcIdx += c * srcStrides[d]
			}
			if inside {
				dst[i] = src[srcIdx]
			} else {
				dst[i] = fill
			}
		}
	}, cpu.par)
}

// reflectIndex mirrors an out-of-range coordinate back into [0, size)
// without repeating the border element.
func reflectIndex(c, size int) int {
	if size == 1 {
		return 0
	}
	period := 2 * (size - 1)
	c %= period
	if c < 0 {
		c += period
	}
	if c >= size {
		c = period - c
	}
	return c
}
