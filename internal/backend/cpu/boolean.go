package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// boolBinaryOp applies fn element-wise to two bool tensors with positional
// broadcasting.
func boolBinaryOp(cpu *CPUBackend, op string, a, b *tensor.RawTensor, fn func(bool, bool) bool) *tensor.RawTensor {
	if a.DType() != tensor.Bool || b.DType() != tensor.Bool {
		panic(fmt.Sprintf("%s: both tensors must be bool dtype", op))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := newRaw(op, outShape, tensor.Bool)
	dst := result.AsBool()
	aData := a.AsBool()
	bData := b.AsBool()

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

// Or computes element-wise logical OR of two bool tensors with
// broadcasting.
func (cpu *CPUBackend) Or(a, b *tensor.RawTensor) *tensor.RawTensor {
	return boolBinaryOp(cpu, "or", a, b, func(x, y bool) bool { return x || y })
}

// And computes element-wise logical AND of two bool tensors with
// broadcasting.
func (cpu *CPUBackend) And(a, b *tensor.RawTensor) *tensor.RawTensor {
	return boolBinaryOp(cpu, "and", a, b, func(x, y bool) bool { return x && y })
}

// Not computes element-wise logical NOT of a bool tensor.
func (cpu *CPUBackend) Not(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Bool {
		panic(fmt.Sprintf("not: tensor must be bool dtype, got %s", x.DType()))
	}
	result := newRaw("not", x.Shape(), tensor.Bool)
	dst := result.AsBool()
	src := x.AsBool()
	parallel.For(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = !src[i]
		}
	}, cpu.par)
	return result
}
