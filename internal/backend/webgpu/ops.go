//go:build windows

package webgpu

import "github.com/axial-ml/axial/internal/tensor"

// minGPUElements is the size below which dispatch overhead exceeds the
// GPU win and ops run on the CPU path instead.
const minGPUElements = 4096

// binaryEligible reports whether a same-shape float32 pair is worth a
// GPU dispatch.
func binaryEligible(x, y *tensor.RawTensor) bool {
	return x.DType() == tensor.Float32 &&
		y.DType() == tensor.Float32 &&
		x.Shape().Equal(y.Shape()) &&
		x.NumElements() >= minGPUElements
}

func unaryEligible(x *tensor.RawTensor) bool {
	return x.DType() == tensor.Float32 && x.NumElements() >= minGPUElements
}

func (b *Backend) binary(op string, x, y *tensor.RawTensor, fallback func(a, b *tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	if !binaryEligible(x, y) {
		return fallback(x, y)
	}
	result, err := b.runBinary(op, x, y)
	if err != nil {
		panic("webgpu: " + op + ": " + err.Error())
	}
	return result
}

func (b *Backend) unary(op string, x *tensor.RawTensor, fallback func(x *tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	if !unaryEligible(x) {
		return fallback(x)
	}
	result, err := b.runUnary(op, x)
	if err != nil {
		panic("webgpu: " + op + ": " + err.Error())
	}
	return result
}

func (b *Backend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("add", x, y, b.CPUBackend.Add)
}

func (b *Backend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("sub", x, y, b.CPUBackend.Sub)
}

func (b *Backend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("mul", x, y, b.CPUBackend.Mul)
}

func (b *Backend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("div", x, y, b.CPUBackend.Div)
}

func (b *Backend) Maximum(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("maximum", x, y, b.CPUBackend.Maximum)
}

func (b *Backend) Minimum(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("minimum", x, y, b.CPUBackend.Minimum)
}

func (b *Backend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unary("neg", x, b.CPUBackend.Neg)
}

func (b *Backend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unary("abs", x, b.CPUBackend.Abs)
}

func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unary("exp", x, b.CPUBackend.Exp)
}

func (b *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unary("log", x, b.CPUBackend.Log)
}

func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unary("sqrt", x, b.CPUBackend.Sqrt)
}

// MatMul dispatches 2-D float32 matrix products to the GPU when the
// arithmetic volume justifies the transfer, delegating everything else
// (batched, mixed-dtype, small) to the CPU path.
func (b *Backend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 || y.DType() != tensor.Float32 ||
		len(x.Shape()) != 2 || len(y.Shape()) != 2 ||
		x.Shape()[1] != y.Shape()[0] {
		return b.CPUBackend.MatMul(x, y)
	}
	m, k, n := x.Shape()[0], x.Shape()[1], y.Shape()[1]
	if m*k*n < minGPUElements*64 {
		return b.CPUBackend.MatMul(x, y)
	}
	result, err := b.runMatMul(x, y)
	if err != nil {
		panic("webgpu: matmul: " + err.Error())
	}
	return result
}
