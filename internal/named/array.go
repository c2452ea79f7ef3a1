// Package named implements the axis algebra at the heart of axial: arrays
// whose dimensions carry names, and operations that align operands by those
// names instead of by position.
//
// A NamedArray pairs a positional tensor with an ordered axis spec; axis i
// describes dimension i and always matches it in size. Binary operations
// broadcast by name: the operand whose axes form a superset fixes the result
// layout, and the other operand is aligned to it. Axis errors panic with
// messages naming the axes involved; only data-dependent construction
// returns errors.
package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// NamedArray is a tensor whose dimensions are named axes.
type NamedArray[T tensor.DType, B tensor.Backend] struct {
	t    *tensor.Tensor[T, B]
	axes []Axis
}

// wrap binds a raw result to its axes. Callers guarantee the axes match the
// raw shape and that the slice is not shared with another array.
func wrap[T tensor.DType, B tensor.Backend](raw *tensor.RawTensor, axes []Axis, b B) *NamedArray[T, B] {
	return &NamedArray[T, B]{t: tensor.New[T, B](raw, b), axes: axes}
}

// Named wraps an existing positional tensor with axis names. The number of
// axes must match the tensor's rank and each axis size its dimension.
func Named[T tensor.DType, B tensor.Backend](t *tensor.Tensor[T, B], axes ...Axis) (*NamedArray[T, B], error) {
	if err := validateSpec(axes); err != nil {
		return nil, err
	}
	shape := t.Shape()
	if len(axes) != len(shape) {
		return nil, fmt.Errorf("expected %d axes for shape %v, got %d", len(shape), shape, len(axes))
	}
	for i, ax := range axes {
		if ax.Size != shape[i] {
			return nil, fmt.Errorf("axis %s does not match dimension %d of shape %v", ax, i, shape)
		}
	}
	return &NamedArray[T, B]{t: t, axes: cloneAxes(axes)}, nil
}

// Axes returns a copy of the array's axis spec.
func (a *NamedArray[T, B]) Axes() []Axis {
	return cloneAxes(a.axes)
}

// HasAxis reports whether the array has an axis with the selector's name.
func (a *NamedArray[T, B]) HasAxis(sel AxisSelector) bool {
	return indexOf(a.axes, sel.axisName()) >= 0
}

// AxisIndex returns the position of the selected axis.
// Panics if the array has no axis with that name.
func (a *NamedArray[T, B]) AxisIndex(sel AxisSelector) int {
	return a.mustAxisIndex("axisindex", sel)
}

// AxisSize returns the size of the selected axis.
// Panics if the array has no axis with that name.
func (a *NamedArray[T, B]) AxisSize(sel AxisSelector) int {
	return a.axes[a.mustAxisIndex("axissize", sel)].Size
}

// Inner returns the positional tensor beneath the names.
func (a *NamedArray[T, B]) Inner() *tensor.Tensor[T, B] {
	return a.t
}

// Backend returns the computation backend.
func (a *NamedArray[T, B]) Backend() B {
	return a.t.Backend()
}

// DType returns the runtime element type.
func (a *NamedArray[T, B]) DType() tensor.DataType {
	return a.t.DType()
}

// NumElements returns the total element count.
func (a *NamedArray[T, B]) NumElements() int {
	return a.t.NumElements()
}

// Data returns a typed view of the underlying memory (zero-copy).
func (a *NamedArray[T, B]) Data() []T {
	return a.t.Data()
}

// Scalar returns the value of a zero-axis array.
// Panics if the array has axes.
func (a *NamedArray[T, B]) Scalar() T {
	if len(a.axes) != 0 {
		panic(fmt.Sprintf("axial: Scalar called on array with axes %v", a.axes))
	}
	return a.t.Item()
}

// Clone returns an independent wrapper over copy-on-write shared data.
func (a *NamedArray[T, B]) Clone() *NamedArray[T, B] {
	return &NamedArray[T, B]{t: a.t.Clone(), axes: cloneAxes(a.axes)}
}

func (a *NamedArray[T, B]) mustAxisIndex(op string, sel AxisSelector) int {
	name := sel.axisName()
	i := indexOf(a.axes, name)
	if i < 0 {
		panic(fmt.Sprintf("axial: %s: axis %s not found (available: %v)", op, name, a.axes))
	}
	if ax, ok := sel.(Axis); ok && ax.Size != a.axes[i].Size {
		panic(fmt.Sprintf("axial: %s: axis %s does not match %s", op, ax, a.axes[i]))
	}
	return i
}
