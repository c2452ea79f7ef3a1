package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// scalarOp applies fn(element, scalar) element-wise into a fresh tensor.
func scalarOp[T number](cpu *CPUBackend, op string, x *tensor.RawTensor, scalar any, fn func(T, T) T) *tensor.RawTensor {
	s := scalarValue[T](op, scalar)
	result := newRaw(op, x.Shape(), x.DType())
	dst := rawData[T](result)
	src := rawData[T](x)
	parallel.For(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = fn(src[i], s)
		}
	}, cpu.par)
	return result
}

// AddScalar computes element-wise x + scalar.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return scalarOp(cpu, "addscalar", x, scalar, func(v, s float32) float32 { return v + s })
	case tensor.Float64:
		return scalarOp(cpu, "addscalar", x, scalar, func(v, s float64) float64 { return v + s })
	case tensor.Int32:
		return scalarOp(cpu, "addscalar", x, scalar, func(v, s int32) int32 { return v + s })
	case tensor.Int64:
		return scalarOp(cpu, "addscalar", x, scalar, func(v, s int64) int64 { return v + s })
	default:
		panic(fmt.Sprintf("addscalar: unsupported dtype %s", x.DType()))
	}
}

// SubScalar computes element-wise x - scalar.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return scalarOp(cpu, "subscalar", x, scalar, func(v, s float32) float32 { return v - s })
	case tensor.Float64:
		return scalarOp(cpu, "subscalar", x, scalar, func(v, s float64) float64 { return v - s })
	case tensor.Int32:
		return scalarOp(cpu, "subscalar", x, scalar, func(v, s int32) int32 { return v - s })
	case tensor.Int64:
		return scalarOp(cpu, "subscalar", x, scalar, func(v, s int64) int64 { return v - s })
	default:
		panic(fmt.Sprintf("subscalar: unsupported dtype %s", x.DType()))
	}
}

// MulScalar computes element-wise x * scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return scalarOp(cpu, "mulscalar", x, scalar, func(v, s float32) float32 { return v * s })
	case tensor.Float64:
		return scalarOp(cpu, "mulscalar", x, scalar, func(v, s float64) float64 { return v * s })
	case tensor.Int32:
		return scalarOp(cpu, "mulscalar", x, scalar, func(v, s int32) int32 { return v * s })
	case tensor.Int64:
		return scalarOp(cpu, "mulscalar", x, scalar, func(v, s int64) int64 { return v * s })
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}
}

// DivScalar computes element-wise x / scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return scalarOp(cpu, "divscalar", x, scalar, func(v, s float32) float32 { return v / s })
	case tensor.Float64:
		return scalarOp(cpu, "divscalar", x, scalar, func(v, s float64) float64 { return v / s })
	case tensor.Int32:
		return scalarOp(cpu, "divscalar", x, scalar, func(v, s int32) int32 { return v / s })
	case tensor.Int64:
		return scalarOp(cpu, "divscalar", x, scalar, func(v, s int64) int64 { return v / s })
	default:
		panic(fmt.Sprintf("divscalar: unsupported dtype %s", x.DType()))
	}
}
