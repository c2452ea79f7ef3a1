package cpu

import (
	"fmt"
	"math"

	"github.com/axial-ml/axial/internal/tensor"
)

// Neg computes element-wise negation.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "neg", x, func(v float32) float32 { return -v })
	case tensor.Float64:
		return unaryOp(cpu, "neg", x, func(v float64) float64 { return -v })
	case tensor.Int32:
		return unaryOp(cpu, "neg", x, func(v int32) int32 { return -v })
	case tensor.Int64:
		return unaryOp(cpu, "neg", x, func(v int64) int64 { return -v })
	default:
		panic(fmt.Sprintf("neg: unsupported dtype %s", x.DType()))
	}
}

// Abs computes the element-wise absolute value.
func (cpu *CPUBackend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "abs", x, func(v float32) float32 { return float32(math.Abs(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, "abs", x, math.Abs)
	case tensor.Int32:
		return unaryOp(cpu, "abs", x, func(v int32) int32 {
			if v < 0 {
				return -v
			}
			return v
		})
	case tensor.Int64:
		return unaryOp(cpu, "abs", x, func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		})
	default:
		panic(fmt.Sprintf("abs: unsupported dtype %s", x.DType()))
	}
}

// Exp computes the element-wise natural exponential.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "exp", x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, "exp", x, math.Exp)
	default:
		panic(fmt.Sprintf("exp: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
}

// Log computes the element-wise natural logarithm. IEEE semantics apply:
// log of zero is -Inf and log of a negative value is NaN.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "log", x, func(v float32) float32 { return float32(math.Log(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, "log", x, math.Log)
	default:
		panic(fmt.Sprintf("log: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
}

// Sqrt computes the element-wise square root. The square root of a negative
// value is NaN.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "sqrt", x, func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, "sqrt", x, math.Sqrt)
	default:
		panic(fmt.Sprintf("sqrt: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
}

// Pow raises every element to the given exponent.
func (cpu *CPUBackend) Pow(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "pow", x, func(v float32) float32 { return float32(math.Pow(float64(v), exponent)) })
	case tensor.Float64:
		return unaryOp(cpu, "pow", x, func(v float64) float64 { return math.Pow(v, exponent) })
	default:
		panic(fmt.Sprintf("pow: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
}
