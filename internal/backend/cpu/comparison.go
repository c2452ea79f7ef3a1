package cpu

import (
	"fmt"
	"math"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// compareOp applies a boolean predicate element-wise with positional
// broadcasting, producing a bool tensor.
func compareOp[T number](cpu *CPUBackend, op string, a, b *tensor.RawTensor, fn func(T, T) bool) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := newRaw(op, outShape, tensor.Bool)
	dst := result.AsBool()
	aData := rawData[T](a)
	bData := rawData[T](b)

	if !needsBroadcast {
		parallel.For(len(dst), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				dst[i] = fn(aData[i], bData[i])
			}
		}, cpu.par)
		return result
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	parallel.For(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = fn(aData[flatIndex(i, outStrides, aStrides)], bData[flatIndex(i, outStrides, bStrides)])
		}
	}, cpu.par)
	return result
}

// Greater computes element-wise a > b with broadcasting.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return compareOp(cpu, "greater", a, b, func(x, y float32) bool { return x > y })
	case tensor.Float64:
		return compareOp(cpu, "greater", a, b, func(x, y float64) bool { return x > y })
	case tensor.Int32:
		return compareOp(cpu, "greater", a, b, func(x, y int32) bool { return x > y })
	case tensor.Int64:
		return compareOp(cpu, "greater", a, b, func(x, y int64) bool { return x > y })
	default:
		panic(fmt.Sprintf("greater: unsupported dtype %s", a.DType()))
	}
}

// Lower computes element-wise a < b with broadcasting.
func (cpu *CPUBackend) Lower(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return compareOp(cpu, "lower", a, b, func(x, y float32) bool { return x < y })
	case tensor.Float64:
		return compareOp(cpu, "lower", a, b, func(x, y float64) bool { return x < y })
	case tensor.Int32:
		return compareOp(cpu, "lower", a, b, func(x, y int32) bool { return x < y })
	case tensor.Int64:
		return compareOp(cpu, "lower", a, b, func(x, y int64) bool { return x < y })
	default:
		panic(fmt.Sprintf("lower: unsupported dtype %s", a.DType()))
	}
}

// GreaterEqual computes element-wise a >= b with broadcasting.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return compareOp(cpu, "greaterequal", a, b, func(x, y float32) bool { return x >= y })
	case tensor.Float64:
		return compareOp(cpu, "greaterequal", a, b, func(x, y float64) bool { return x >= y })
	case tensor.Int32:
		return compareOp(cpu, "greaterequal", a, b, func(x, y int32) bool { return x >= y })
	case tensor.Int64:
		return compareOp(cpu, "greaterequal", a, b, func(x, y int64) bool { return x >= y })
	default:
		panic(fmt.Sprintf("greaterequal: unsupported dtype %s", a.DType()))
	}
}

// LowerEqual computes element-wise a <= b with broadcasting.
func (cpu *CPUBackend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return compareOp(cpu, "lowerequal", a, b, func(x, y float32) bool { return x <= y })
	case tensor.Float64:
		return compareOp(cpu, "lowerequal", a, b, func(x, y float64) bool { return x <= y })
	case tensor.Int32:
		return compareOp(cpu, "lowerequal", a, b, func(x, y int32) bool { return x <= y })
	case tensor.Int64:
		return compareOp(cpu, "lowerequal", a, b, func(x, y int64) bool { return x <= y })
	default:
		panic(fmt.Sprintf("lowerequal: unsupported dtype %s", a.DType()))
	}
}

// Equal computes element-wise a == b with broadcasting.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return compareOp(cpu, "equal", a, b, func(x, y float32) bool { return x == y })
	case tensor.Float64:
		return compareOp(cpu, "equal", a, b, func(x, y float64) bool { return x == y })
	case tensor.Int32:
		return compareOp(cpu, "equal", a, b, func(x, y int32) bool { return x == y })
	case tensor.Int64:
		return compareOp(cpu, "equal", a, b, func(x, y int64) bool { return x == y })
	case tensor.Bool:
		return boolBinaryOp(cpu, "equal", a, b, func(x, y bool) bool { return x == y })
	default:
		panic(fmt.Sprintf("equal: unsupported dtype %s", a.DType()))
	}
}

// NotEqual computes element-wise a != b with broadcasting.
func (cpu *CPUBackend) NotEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return compareOp(cpu, "notequal", a, b, func(x, y float32) bool { return x != y })
	case tensor.Float64:
		return compareOp(cpu, "notequal", a, b, func(x, y float64) bool { return x != y })
	case tensor.Int32:
		return compareOp(cpu, "notequal", a, b, func(x, y int32) bool { return x != y })
	case tensor.Int64:
		return compareOp(cpu, "notequal", a, b, func(x, y int64) bool { return x != y })
	case tensor.Bool:
		return boolBinaryOp(cpu, "notequal", a, b, func(x, y bool) bool { return x != y })
	default:
		panic(fmt.Sprintf("notequal: unsupported dtype %s", a.DType()))
	}
}

// IsClose reports |a-b| <= atol + rtol*|b| element-wise with broadcasting.
// NaN is never close to anything; equal infinities are close.
func (cpu *CPUBackend) IsClose(a, b *tensor.RawTensor, rtol, atol float64) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return compareOp(cpu, "isclose", a, b, func(x, y float32) bool {
			return isClose(float64(x), float64(y), rtol, atol)
		})
	case tensor.Float64:
		return compareOp(cpu, "isclose", a, b, func(x, y float64) bool {
			return isClose(x, y, rtol, atol)
		})
	default:
		panic(fmt.Sprintf("isclose: unsupported dtype %s (only float32/float64 supported)", a.DType()))
	}
}

func isClose(x, y, rtol, atol float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}
	return math.Abs(x-y) <= atol+rtol*math.Abs(y)
}
