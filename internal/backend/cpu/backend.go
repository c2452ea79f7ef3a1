// Package cpu implements the pure-Go compute backend. Kernels are generic
// over the element type and large loops are split across goroutines.
package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// CPUBackend executes tensor kernels on the host CPU.
type CPUBackend struct {
	par parallel.Config
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a CPU backend with parallelism settings detected for this
// machine.
func New() *CPUBackend {
	return &CPUBackend{par: parallel.DefaultConfig()}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the device this backend computes on.
func (cpu *CPUBackend) Device() tensor.Device {
	return tensor.CPU
}

// Add computes element-wise a + b with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "add", a, b, func(x, y float32) float32 { return x + y })
	case tensor.Float64:
		return binaryOp(cpu, "add", a, b, func(x, y float64) float64 { return x + y })
	case tensor.Int32:
		return binaryOp(cpu, "add", a, b, func(x, y int32) int32 { return x + y })
	case tensor.Int64:
		return binaryOp(cpu, "add", a, b, func(x, y int64) int64 { return x + y })
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}
}

// Sub computes element-wise a - b with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "sub", a, b, func(x, y float32) float32 { return x - y })
	case tensor.Float64:
		return binaryOp(cpu, "sub", a, b, func(x, y float64) float64 { return x - y })
	case tensor.Int32:
		return binaryOp(cpu, "sub", a, b, func(x, y int32) int32 { return x - y })
	case tensor.Int64:
		return binaryOp(cpu, "sub", a, b, func(x, y int64) int64 { return x - y })
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", a.DType()))
	}
}

// Mul computes element-wise a * b with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "mul", a, b, func(x, y float32) float32 { return x * y })
	case tensor.Float64:
		return binaryOp(cpu, "mul", a, b, func(x, y float64) float64 { return x * y })
	case tensor.Int32:
		return binaryOp(cpu, "mul", a, b, func(x, y int32) int32 { return x * y })
	case tensor.Int64:
		return binaryOp(cpu, "mul", a, b, func(x, y int64) int64 { return x * y })
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", a.DType()))
	}
}

// Div computes element-wise a / b with broadcasting. Integer division by
// zero panics; float division follows IEEE semantics.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "div", a, b, func(x, y float32) float32 { return x / y })
	case tensor.Float64:
		return binaryOp(cpu, "div", a, b, func(x, y float64) float64 { return x / y })
	case tensor.Int32:
		return binaryOp(cpu, "div", a, b, func(x, y int32) int32 { return x / y })
	case tensor.Int64:
		return binaryOp(cpu, "div", a, b, func(x, y int64) int64 { return x / y })
	default:
		panic(fmt.Sprintf("div: unsupported dtype %s", a.DType()))
	}
}

// Maximum computes the element-wise maximum of a and b with broadcasting.
// For floats the result is NaN if either operand is NaN.
func (cpu *CPUBackend) Maximum(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "maximum", a, b, func(x, y float32) float32 { return max(x, y) })
	case tensor.Float64:
		return binaryOp(cpu, "maximum", a, b, func(x, y float64) float64 { return max(x, y) })
	case tensor.Int32:
		return binaryOp(cpu, "maximum", a, b, func(x, y int32) int32 { return max(x, y) })
	case tensor.Int64:
		return binaryOp(cpu, "maximum", a, b, func(x, y int64) int64 { return max(x, y) })
	default:
		panic(fmt.Sprintf("maximum: unsupported dtype %s", a.DType()))
	}
}

// Minimum computes the element-wise minimum of a and b with broadcasting.
// For floats the result is NaN if either operand is NaN.
func (cpu *CPUBackend) Minimum(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "minimum", a, b, func(x, y float32) float32 { return min(x, y) })
	case tensor.Float64:
		return binaryOp(cpu, "minimum", a, b, func(x, y float64) float64 { return min(x, y) })
	case tensor.Int32:
		return binaryOp(cpu, "minimum", a, b, func(x, y int32) int32 { return min(x, y) })
	case tensor.Int64:
		return binaryOp(cpu, "minimum", a, b, func(x, y int64) int64 { return min(x, y) })
	default:
		panic(fmt.Sprintf("minimum: unsupported dtype %s", a.DType()))
	}
}
