package named

import (
	"github.com/axial-ml/axial/internal/tensor"
)

// UniqueResult bundles the four views a Unique call produces. Values,
// FirstIndex, and Counts run over the new axis; Inverse runs over the
// input's own axes and maps every element back to its slot in Values.
type UniqueResult[T tensor.DType, B tensor.Backend] struct {
	Values     *NamedArray[T, B]
	FirstIndex *NamedArray[int32, B]
	Inverse    *NamedArray[int32, B]
	Counts     *NamedArray[int32, B]
}

// Unique returns the sorted distinct elements of the array over newAxis.
// Values are padded with the smallest distinct value up to newAxis.Size;
// FirstIndex and Counts pad with zero. When the distinct count exceeds
// newAxis.Size the extra values are dropped and their Inverse entries
// clamp to the last kept slot.
func (a *NamedArray[T, B]) Unique(newAxis Axis) UniqueResult[T, B] {
	mustValidSpec("unique", []Axis{newAxis})
	b := a.t.Backend()
	flat := b.Reshape(a.t.Raw(), tensor.Shape{a.t.NumElements()})
	values, first, inverse, counts := b.Unique(flat, newAxis.Size)
	return UniqueResult[T, B]{
		Values:     wrap[T, B](values, []Axis{newAxis}, b),
		FirstIndex: wrap[int32, B](first, []Axis{newAxis}, b),
		Inverse:    wrap[int32, B](b.Reshape(inverse, shapeOf(a.axes)), cloneAxes(a.axes), b),
		Counts:     wrap[int32, B](counts, []Axis{newAxis}, b),
	}
}

// UniqueSlices returns the distinct sub-slices along the selected axis,
// ordered lexicographically by their row-major elements, over newAxis.
// The selected axis of Values becomes newAxis; the remaining axes keep
// their order. Inverse runs over the selected axis alone. Padding and
// truncation follow Unique.
func (a *NamedArray[T, B]) UniqueSlices(newAxis Axis, sel AxisSelector) UniqueResult[T, B] {
	d := a.mustAxisIndex("uniqueslices", sel)
	mustValidSpec("uniqueslices", []Axis{newAxis})
	b := a.t.Backend()

	rest := without(a.axes, d)
	raw := a.t.Raw()
	if d != 0 {
		perm := make([]int, 0, len(a.axes))
		perm = append(perm, d)
		for i := range a.axes {
			if i != d {
				perm = append(perm, i)
			}
		}
		raw = b.Transpose(raw, perm...)
	}
	n := a.axes[d].Size
	mat := b.Reshape(raw, tensor.Shape{n, a.t.NumElements() / n})
	values, first, inverse, counts := b.UniqueRows(mat, newAxis.Size)

	valueAxes := append([]Axis{newAxis}, rest...)
	return UniqueResult[T, B]{
		Values:     wrap[T, B](b.Reshape(values, shapeOf(valueAxes)), valueAxes, b),
		FirstIndex: wrap[int32, B](first, []Axis{newAxis}, b),
		Inverse:    wrap[int32, B](inverse, []Axis{a.axes[d]}, b),
		Counts:     wrap[int32, B](counts, []Axis{newAxis}, b),
	}
}
