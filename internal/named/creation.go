package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Zeros creates an array of zeros with the given axes.
func Zeros[T tensor.DType, B tensor.Backend](axes AxisSpec, b B) *NamedArray[T, B] {
	mustValidSpec("zeros", axes)
	return &NamedArray[T, B]{t: tensor.Zeros[T, B](shapeOf(axes), b), axes: cloneAxes(axes)}
}

// Ones creates an array of ones with the given axes.
func Ones[T tensor.DType, B tensor.Backend](axes AxisSpec, b B) *NamedArray[T, B] {
	mustValidSpec("ones", axes)
	return &NamedArray[T, B]{t: tensor.Ones[T, B](shapeOf(axes), b), axes: cloneAxes(axes)}
}

// Full creates an array filled with value.
func Full[T tensor.DType, B tensor.Backend](axes AxisSpec, value T, b B) *NamedArray[T, B] {
	mustValidSpec("full", axes)
	return &NamedArray[T, B]{t: tensor.Full[T, B](shapeOf(axes), value, b), axes: cloneAxes(axes)}
}

// Arange creates a 1-D array over ax holding start, start+step, ... for
// ax.Size elements.
func Arange[T tensor.DType, B tensor.Backend](ax Axis, start, step T, b B) *NamedArray[T, B] {
	mustValidSpec("arange", []Axis{ax})
	t := tensor.Zeros[T, B](tensor.Shape{ax.Size}, b)
	data := t.Data()

	var dummy T
	switch any(dummy).(type) {
	case float32:
		s, d := any(start).(float32), any(step).(float32)
		for i := range data {
			data[i] = any(s + float32(i)*d).(T)
		}
	case float64:
		s, d := any(start).(float64), any(step).(float64)
		for i := range data {
			data[i] = any(s + float64(i)*d).(T)
		}
	case int32:
		s, d := any(start).(int32), any(step).(int32)
		for i := range data {
			data[i] = any(s + int32(i)*d).(T)
		}
	case int64:
		s, d := any(start).(int64), any(step).(int64)
		for i := range data {
			data[i] = any(s + int64(i)*d).(T)
		}
	case uint8:
		s, d := any(start).(uint8), any(step).(uint8)
		for i := range data {
			data[i] = any(s + uint8(i)*d).(T)
		}
	default:
		panic("axial: arange: unsupported element type")
	}
	return &NamedArray[T, B]{t: t, axes: []Axis{ax}}
}

// Eye creates a 2-D identity array over the two axes.
func Eye[T tensor.DType, B tensor.Backend](ax1, ax2 Axis, b B) *NamedArray[T, B] {
	axes := []Axis{ax1, ax2}
	mustValidSpec("eye", axes)
	return &NamedArray[T, B]{t: tensor.Eye[T, B](ax1.Size, ax2.Size, b), axes: axes}
}

// FromSlice creates an array from row-major data, which must hold exactly
// one element per position of the axis spec.
func FromSlice[T tensor.DType, B tensor.Backend](data []T, axes AxisSpec, b B) (*NamedArray[T, B], error) {
	if err := validateSpec(axes); err != nil {
		return nil, err
	}
	shape := shapeOf(axes)
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("axes %v require %d elements, got %d", axes, shape.NumElements(), len(data))
	}
	t, err := tensor.FromSlice[T, B](data, shape, b)
	if err != nil {
		return nil, err
	}
	return &NamedArray[T, B]{t: t, axes: cloneAxes(axes)}, nil
}
