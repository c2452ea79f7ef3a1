package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/parallel"
	"github.com/axial-ml/axial/internal/tensor"
)

// number constrains kernels to the arithmetic element types.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// element additionally admits bool for kernels that only move values
// around.
type element interface {
	number | ~bool
}

// rawData returns the typed view of t's buffer.
func rawData[T element](t *tensor.RawTensor) []T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(t.AsFloat32()).([]T)
	case float64:
		return any(t.AsFloat64()).([]T)
	case int32:
		return any(t.AsInt32()).([]T)
	case int64:
		return any(t.AsInt64()).([]T)
	case uint8:
		return any(t.AsUint8()).([]T)
	case bool:
		return any(t.AsBool()).([]T)
	default:
		panic(fmt.Sprintf("no typed view for %T", zero))
	}
}

// newRaw allocates a zeroed CPU tensor, panicking with the op name on
// invalid shapes.
func newRaw(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	r, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return r
}

// normalizeDim resolves negative dimension indices and bounds-checks the
// result.
func normalizeDim(op string, dim, ndim int) int {
	d := dim
	if d < 0 {
		d += ndim
	}
	if d < 0 || d >= ndim {
		panic(fmt.Sprintf("%s: invalid dimension %d for %dD tensor", op, dim, ndim))
	}
	return d
}

// scalarValue converts a scalar operand of any supported Go type to the
// kernel element type.
func scalarValue[T number](op string, s any) T {
	switch v := s.(type) {
	case float32:
		return T(v)
	case float64:
		return T(v)
	case int:
		return T(v)
	case int32:
		return T(v)
	case int64:
		return T(v)
	case uint8:
		return T(v)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", op, s))
	}
}

// binaryOp applies fn element-wise with positional broadcasting. The result
// is always freshly allocated; operands are never written.
func binaryOp[T number](cpu *CPUBackend, op string, a, b *tensor.RawTensor, fn func(T, T) T) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := newRaw(op, outShape, a.DType())
	dst := rawData[T](result)
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

// unaryOp applies fn element-wise into a fresh tensor of the same shape.
func unaryOp[T number](cpu *CPUBackend, op string, x *tensor.RawTensor, fn func(T) T) *tensor.RawTensor {
	result := newRaw(op, x.Shape(), x.DType())
	dst := rawData[T](result)
	src := rawData[T](x)
	parallel.For(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = fn(src[i])
		}
	}, cpu.par)
	return result
}
