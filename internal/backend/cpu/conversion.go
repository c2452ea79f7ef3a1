package cpu

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Cast converts x to the target dtype. Casting to the same dtype returns x
// unchanged. Float to int truncates toward zero, bool maps to 0 and 1, and
// numeric to bool is a non-zero test.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}
	result := newRaw("cast", x.Shape(), dtype)
	switch dtype {
	case tensor.Float32:
		castNumeric(rawData[float32](result), x)
	case tensor.Float64:
		castNumeric(rawData[float64](result), x)
	case tensor.Int32:
		castNumeric(rawData[int32](result), x)
	case tensor.Int64:
		castNumeric(rawData[int64](result), x)
	case tensor.Uint8:
		castNumeric(rawData[uint8](result), x)
	case tensor.Bool:
		castToBool(result.AsBool(), x)
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dtype))
	}
	return result
}

//nolint:gosec // G115: truncation is the expected behavior for narrowing casts.
func castNumeric[D number](dst []D, x *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			dst[i] = D(v)
		}
	case tensor.Float64:
		for i, v := range x.AsFloat64() {
			dst[i] = D(v)
		}
	case tensor.Int32:
		for i, v := range x.AsInt32() {
			dst[i] = D(v)
		}
	case tensor.Int64:
		for i, v := range x.AsInt64() {
			dst[i] = D(v)
		}
	case tensor.Uint8:
		for i, v := range x.AsUint8() {
			dst[i] = D(v)
		}
	case tensor.Bool:
		for i, v := range x.AsBool() {
			if v {
				dst[i] = 1
			}
		}
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
}

func castToBool(dst []bool, x *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			dst[i] = v != 0
		}
	case tensor.Float64:
		for i, v := range x.AsFloat64() {
			dst[i] = v != 0
		}
	case tensor.Int32:
		for i, v := range x.AsInt32() {
			dst[i] = v != 0
		}
	case tensor.Int64:
		for i, v := range x.AsInt64() {
			dst[i] = v != 0
		}
	case tensor.Uint8:
		for i, v := range x.AsUint8() {
			dst[i] = v != 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
}
