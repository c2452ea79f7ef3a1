package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// fullFold reduces every element into a scalar-shaped tensor, folding left
// to right from the first element.
func fullFold[T number](op string, x *tensor.RawTensor, fn func(T, T) T) *tensor.RawTensor {
	src := rawData[T](x)
	acc := src[0]
	for _, v := range src[1:] {
		acc = fn(acc, v)
	}
	result := newRaw(op, tensor.Shape{}, x.DType())
	rawData[T](result)[0] = acc
	return result
}

// reducedShape returns the shape left after reducing dim.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	out = append(out, shape[:dim]...)
	out = append(out, shape[dim+1:]...)
	return out
}

// groupBase maps a flat index of the reduced result to the offset of that
// group's first element in the source layout. Result indices run row-major,
// so coordinates are peeled from the last dimension up.
func groupBase(group int, shape tensor.Shape, strides []int, dim int) int {
	base := 0
	for i := len(shape) - 1; i >= 0; i-- {
		if i == dim {
			continue
		}
		base += (group % shape[i]) * strides[i]
		group /= shape[i]
	}
	return base
}

// dimFold reduces along one dimension, folding each group from its first
// element.
func dimFold[T number](cpu *CPUBackend, op string, x *tensor.RawTensor, dim int, keepDim bool, fn func(T, T) T) *tensor.RawTensor {
	shape := x.Shape()
	d := normalizeDim(op, dim, len(shape))
	result := newRaw(op, reducedShape(shape, d, keepDim), x.DType())

	src := rawData[T](x)
	dst := rawData[T](result)
	strides := shape.ComputeStrides()
	dimSize, dimStride := shape[d], strides[d]
	parallel.For(len(dst), func(lo, hi int) {
		for g := lo; g < hi; g++ {
			base := groupBase(g, shape, strides, d)
			acc := src[base]
			for k := 1; k < dimSize; k++ {
				acc = fn(acc, src[base+k*dimStride])
			}
			dst[g] = acc
		}
	}, cpu.par.Scaled(dimSize))
	return result
}

// argFold finds the position along dim where better first holds against all
// previous candidates. Ties resolve to the lowest index.
func argFold[T number](cpu *CPUBackend, op string, x *tensor.RawTensor, dim int, better func(v, best T) bool) *tensor.RawTensor {
	shape := x.Shape()
	d := normalizeDim(op, dim, len(shape))
	result := newRaw(op, reducedShape(shape, d, false), tensor.Int32)

	src := rawData[T](x)
	dst := result.AsInt32()
	strides := shape.ComputeStrides()
	dimSize, dimStride := shape[d], strides[d]
	parallel.For(len(dst), func(lo, hi int) {
		for g := lo; g < hi; g++ {
			base := groupBase(g, shape, strides, d)
			best := src[base]
			bestIdx := 0
			for k := 1; k < dimSize; k++ {
				if v := src[base+k*dimStride]; better(v, best) {
					best, bestIdx = v, k
				}
			}
			dst[g] = int32(bestIdx) //nolint:gosec // G115: dimension sizes stay well under 2^31
		}
	}, cpu.par.Scaled(dimSize))
	return result
}

// Sum reduces all elements to a scalar-shaped tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return fullFold("sum", x, func(a, v float32) float32 { return a + v })
	case tensor.Float64:
		return fullFold("sum", x, func(a, v float64) float64 { return a + v })
	case tensor.Int32:
		return fullFold("sum", x, func(a, v int32) int32 { return a + v })
	case tensor.Int64:
		return fullFold("sum", x, func(a, v int64) int64 { return a + v })
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
}

// SumDim sums along one dimension. With keepDim the reduced dimension stays
// as size 1.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return dimFold(cpu, "sumdim", x, dim, keepDim, func(a, v float32) float32 { return a + v })
	case tensor.Float64:
		return dimFold(cpu, "sumdim", x, dim, keepDim, func(a, v float64) float64 { return a + v })
	case tensor.Int32:
		return dimFold(cpu, "sumdim", x, dim, keepDim, func(a, v int32) int32 { return a + v })
	case tensor.Int64:
		return dimFold(cpu, "sumdim", x, dim, keepDim, func(a, v int64) int64 { return a + v })
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}
}

// Mean reduces all elements to their arithmetic mean.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		s := cpu.Sum(x)
		s.AsFloat32()[0] /= float32(x.NumElements())
		return s
	case tensor.Float64:
		s := cpu.Sum(x)
		s.AsFloat64()[0] /= float64(x.NumElements())
		return s
	default:
		panic(fmt.Sprintf("mean: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
}

// MeanDim averages along one dimension.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	d := normalizeDim("meandim", dim, len(x.Shape()))
	n := x.Shape()[d]
	switch x.DType() {
	case tensor.Float32:
		s := cpu.SumDim(x, d, keepDim)
		data := s.AsFloat32()
		for i := range data {
			data[i] /= float32(n)
		}
		return s
	case tensor.Float64:
		s := cpu.SumDim(x, d, keepDim)
		data := s.AsFloat64()
		for i := range data {
			data[i] /= float64(n)
		}
		return s
	default:
		panic(fmt.Sprintf("meandim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
}

// Max reduces all elements to their maximum.
func (cpu *CPUBackend) Max(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return fullFold("max", x, func(a, v float32) float32 { return max(a, v) })
	case tensor.Float64:
		return fullFold("max", x, func(a, v float64) float64 { return max(a, v) })
	case tensor.Int32:
		return fullFold("max", x, func(a, v int32) int32 { return max(a, v) })
	case tensor.Int64:
		return fullFold("max", x, func(a, v int64) int64 { return max(a, v) })
	default:
		panic(fmt.Sprintf("max: unsupported dtype %s", x.DType()))
	}
}

// MaxDim takes the maximum along one dimension.
func (cpu *CPUBackend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return dimFold(cpu, "maxdim", x, dim, keepDim, func(a, v float32) float32 { return max(a, v) })
	case tensor.Float64:
		return dimFold(cpu, "maxdim", x, dim, keepDim, func(a, v float64) float64 { return max(a, v) })
	case tensor.Int32:
		return dimFold(cpu, "maxdim", x, dim, keepDim, func(a, v int32) int32 { return max(a, v) })
	case tensor.Int64:
		return dimFold(cpu, "maxdim", x, dim, keepDim, func(a, v int64) int64 { return max(a, v) })
	default:
		panic(fmt.Sprintf("maxdim: unsupported dtype %s", x.DType()))
	}
}

// Min reduces all elements to their minimum.
func (cpu *CPUBackend) Min(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return fullFold("min", x, func(a, v float32) float32 { return min(a, v) })
	case tensor.Float64:
		return fullFold("min", x, func(a, v float64) float64 { return min(a, v) })
	case tensor.Int32:
		return fullFold("min", x, func(a, v int32) int32 { return min(a, v) })
	case tensor.Int64:
		return fullFold("min", x, func(a, v int64) int64 { return min(a, v) })
	default:
		panic(fmt.Sprintf("min: unsupported dtype %s", x.DType()))
	}
}

// MinDim takes the minimum along one dimension.
func (cpu *CPUBackend) MinDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return dimFold(cpu, "mindim", x, dim, keepDim, func(a, v float32) float32 { return min(a, v) })
	case tensor.Float64:
		return dimFold(cpu, "mindim", x, dim, keepDim, func(a, v float64) float64 { return min(a, v) })
	case tensor.Int32:
		return dimFold(cpu, "mindim", x, dim, keepDim, func(a, v int32) int32 { return min(a, v) })
	case tensor.Int64:
		return dimFold(cpu, "mindim", x, dim, keepDim, func(a, v int64) int64 { return min(a, v) })
	default:
		panic(fmt.Sprintf("mindim: unsupported dtype %s", x.DType()))
	}
}

// Prod reduces all elements to their product.
func (cpu *CPUBackend) Prod(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return fullFold("prod", x, func(a, v float32) float32 { return a * v })
	case tensor.Float64:
		return fullFold("prod", x, func(a, v float64) float64 { return a * v })
	case tensor.Int32:
		return fullFold("prod", x, func(a, v int32) int32 { return a * v })
	case tensor.Int64:
		return fullFold("prod", x, func(a, v int64) int64 { return a * v })
	default:
		panic(fmt.Sprintf("prod: unsupported dtype %s", x.DType()))
	}
}

// ProdDim multiplies along one dimension.
func (cpu *CPUBackend) ProdDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return dimFold(cpu, "proddim", x, dim, keepDim, func(a, v float32) float32 { return a * v })
	case tensor.Float64:
		return dimFold(cpu, "proddim", x, dim, keepDim, func(a, v float64) float64 { return a * v })
	case tensor.Int32:
		return dimFold(cpu, "proddim", x, dim, keepDim, func(a, v int32) int32 { return a * v })
	case tensor.Int64:
		return dimFold(cpu, "proddim", x, dim, keepDim, func(a, v int64) int64 { return a * v })
	default:
		panic(fmt.Sprintf("proddim: unsupported dtype %s", x.DType()))
	}
}

// Argmax returns the index of the maximum along dim as int32. Ties resolve
// to the lowest index.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return argFold(cpu, "argmax", x, dim, func(v, best float32) bool { return v > best })
	case tensor.Float64:
		return argFold(cpu, "argmax", x, dim, func(v, best float64) bool { return v > best })
	case tensor.Int32:
		return argFold(cpu, "argmax", x, dim, func(v, best int32) bool { return v > best })
	case tensor.Int64:
		return argFold(cpu, "argmax", x, dim, func(v, best int64) bool { return v > best })
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}
}

// Argmin returns the index of the minimum along dim as int32. Ties resolve
// to the lowest index.
func (cpu *CPUBackend) Argmin(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return argFold(cpu, "argmin", x, dim, func(v, best float32) bool { return v < best })
	case tensor.Float64:
		return argFold(cpu, "argmin", x, dim, func(v, best float64) bool { return v < best })
	case tensor.Int32:
		return argFold(cpu, "argmin", x, dim, func(v, best int32) bool { return v < best })
	case tensor.Int64:
		return argFold(cpu, "argmin", x, dim, func(v, best int64) bool { return v < best })
	default:
		panic(fmt.Sprintf("argmin: unsupported dtype %s", x.DType()))
	}
}
