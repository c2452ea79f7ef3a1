package named

import (
	"fmt"
	"sort"

	"github.com/axial-ml/axial/internal/tensor"
)

// reduceDims maps reduction selectors to dimension indices, ascending.
// No selectors means every axis.
func (a *NamedArray[T, B]) reduceDims(op string, sels []AxisSelector) []int {
	if len(sels) == 0 {
		dims := make([]int, len(a.axes))
		for i := range dims {
			dims[i] = i
		}
		return dims
	}
	dims := make([]int, 0, len(sels))
	for _, sel := range sels {
		d := a.mustAxisIndex(op, sel)
		for _, prev := range dims {
			if prev == d {
				panic(fmt.Sprintf("axial: %s: duplicate axis %s", op, sel.axisName()))
			}
		}
		dims = append(dims, d)
	}
	sort.Ints(dims)
	return dims
}

// reduceOver collapses the selected dimensions. Reducing every axis takes
// the full-tensor kernel and yields a scalar array; otherwise the
// per-dimension kernel runs highest dimension first so the remaining
// indices stay valid.
func reduceOver[T tensor.DType, B tensor.Backend](op string, a *NamedArray[T, B], sels []AxisSelector,
	full func(*tensor.RawTensor) *tensor.RawTensor,
	dim func(*tensor.RawTensor, int, bool) *tensor.RawTensor,
) *NamedArray[T, B] {
	dims := a.reduceDims(op, sels)
	b := a.t.Backend()
	if len(dims) == len(a.axes) {
		return wrap[T, B](full(a.t.Raw()), nil, b)
	}
	raw := a.t.Raw()
	axes := cloneAxes(a.axes)
	for i := len(dims) - 1; i >= 0; i-- {
		raw = dim(raw, dims[i], false)
		axes = without(axes, dims[i])
	}
	return wrap[T, B](raw, axes, b)
}

// Sum reduces the selected axes by summation. With no selectors the whole
// array collapses to a scalar.
func (a *NamedArray[T, B]) Sum(sels ...AxisSelector) *NamedArray[T, B] {
	b := a.t.Backend()
	return reduceOver("sum", a, sels, b.Sum, b.SumDim)
}

// Mean reduces the selected axes by arithmetic mean. With no selectors the
// whole array collapses to a scalar.
func (a *NamedArray[T, B]) Mean(sels ...AxisSelector) *NamedArray[T, B] {
	b := a.t.Backend()
	return reduceOver("mean", a, sels, b.Mean, b.MeanDim)
}

// Max reduces the selected axes by maximum. With no selectors the whole
// array collapses to a scalar.
func (a *NamedArray[T, B]) Max(sels ...AxisSelector) *NamedArray[T, B] {
	b := a.t.Backend()
	return reduceOver("max", a, sels, b.Max, b.MaxDim)
}

// Min reduces the selected axes by minimum. With no selectors the whole
// array collapses to a scalar.
func (a *NamedArray[T, B]) Min(sels ...AxisSelector) *NamedArray[T, B] {
	b := a.t.Backend()
	return reduceOver("min", a, sels, b.Min, b.MinDim)
}

// Prod reduces the selected axes by product. With no selectors the whole
// array collapses to a scalar.
func (a *NamedArray[T, B]) Prod(sels ...AxisSelector) *NamedArray[T, B] {
	b := a.t.Backend()
	return reduceOver("prod", a, sels, b.Prod, b.ProdDim)
}

// Argmax returns the position of the maximum along the selected axis. The
// result drops that axis and indexes into it.
func (a *NamedArray[T, B]) Argmax(sel AxisSelector) *NamedArray[int32, B] {
	d := a.mustAxisIndex("argmax", sel)
	b := a.t.Backend()
	return wrap[int32, B](b.Argmax(a.t.Raw(), d), without(a.axes, d), b)
}

// Argmin returns the position of the minimum along the selected axis. The
// result drops that axis and indexes into it.
func (a *NamedArray[T, B]) Argmin(sel AxisSelector) *NamedArray[int32, B] {
	d := a.mustAxisIndex("argmin", sel)
	b := a.t.Backend()
	return wrap[int32, B](b.Argmin(a.t.Raw(), d), without(a.axes, d), b)
}

// masked replaces elements where mask is false with zero, broadcasting the
// mask against the array by name.
func (a *NamedArray[T, B]) masked(op string, mask *NamedArray[bool, B]) *NamedArray[T, B] {
	spec := broadcastSpec(op, a.axes, mask.axes)
	b := a.t.Backend()
	var zero T
	raw := b.Where(alignRaw(mask, spec), alignRaw(a, spec), scalarRaw(zero, b))
	return wrap[T, B](raw, cloneAxes(spec), b)
}

// SumWhere sums the selected axes counting only elements where mask is
// true. The mask broadcasts against the array by name.
func (a *NamedArray[T, B]) SumWhere(mask *NamedArray[bool, B], sels ...AxisSelector) *NamedArray[T, B] {
	return a.masked("sum", mask).Sum(sels...)
}

// MeanWhere averages the selected axes counting only elements where mask
// is true. The divisor is the number of true elements after the mask
// broadcasts to the array's full spec, so a row mask on a matrix counts
// every element of the kept rows.
func (a *NamedArray[T, B]) MeanWhere(mask *NamedArray[bool, B], sels ...AxisSelector) *NamedArray[T, B] {
	spec := broadcastSpec("mean", a.axes, mask.axes)
	b := a.t.Backend()
	sum := a.masked("mean", mask).Sum(sels...)
	full := b.Expand(alignRaw(mask, spec), shapeOf(spec))
	count := wrap[T, B](b.Cast(full, tensor.DataTypeOf[T]()), cloneAxes(spec), b).Sum(sels...)
	return sum.Div(count)
}
