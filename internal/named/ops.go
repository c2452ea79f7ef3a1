package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Trace sums the offset diagonal over two axes of the array. The result
// drops both axes; a two-axis array collapses to a scalar.
func (a *NamedArray[T, B]) Trace(ax1, ax2 AxisSelector, offset int) *NamedArray[T, B] {
	i1 := a.mustAxisIndex("trace", ax1)
	i2 := a.mustAxisIndex("trace", ax2)
	if i1 == i2 {
		panic(fmt.Sprintf("axial: trace: axes %s and %s are the same", ax1.axisName(), ax2.axisName()))
	}

	others := make([]int, 0, len(a.axes)-2)
	axes := make([]Axis, 0, len(a.axes)-2)
	for d := range a.axes {
		if d != i1 && d != i2 {
			others = append(others, d)
			axes = append(axes, a.axes[d])
		}
	}
	perm := append(append(make([]int, 0, len(a.axes)), others...), i1, i2)

	b := a.t.Backend()
	raw := a.t.Raw()
	if !isIdentityPerm(perm) {
		raw = b.Transpose(raw, perm...)
	}
	diag := b.Diagonal(raw, offset)
	return wrap[T, B](b.SumDim(diag, len(others), false), axes, b)
}

// Where selects x where cond is true and y elsewhere, broadcasting all
// three by name left to right. A scalar cond picks one branch whole, still
// broadcast against the other.
func Where[T tensor.DType, B tensor.Backend](cond *NamedArray[bool, B], x, y *NamedArray[T, B]) *NamedArray[T, B] {
	b := x.t.Backend()
	if len(cond.axes) == 0 {
		spec := broadcastSpec("where", x.axes, y.axes)
		src := y
		if cond.Scalar() {
			src = x
		}
		return wrap[T, B](b.Expand(alignRaw(src, spec), shapeOf(spec)), cloneAxes(spec), b)
	}
	spec := broadcastSpec("where", cond.axes, x.axes)
	spec = broadcastSpec("where", spec, y.axes)
	raw := b.Where(alignRaw(cond, spec), alignRaw(x, spec), alignRaw(y, spec))
	return wrap[T, B](raw, cloneAxes(spec), b)
}

// WhereScalar selects between two scalar branches elementwise.
func WhereScalar[T tensor.DType, B tensor.Backend](cond *NamedArray[bool, B], xv, yv T) *NamedArray[T, B] {
	b := cond.t.Backend()
	raw := b.Where(cond.t.Raw(), scalarRaw(xv, b), scalarRaw(yv, b))
	return wrap[T, B](raw, cloneAxes(cond.axes), b)
}

// Nonzero returns the coordinates of cond's true elements in row-major
// order, one int32 array per axis of cond, each over newAxis. Slots past
// the true-count hold fill. Panics if cond is scalar; newAxis.Size fixes
// the output size regardless of how many elements are true.
func Nonzero[B tensor.Backend](cond *NamedArray[bool, B], newAxis Axis, fill int32) []*NamedArray[int32, B] {
	if len(cond.axes) == 0 {
		panic("axial: nonzero: condition must have at least one axis")
	}
	mustValidSpec("nonzero", []Axis{newAxis})
	b := cond.t.Backend()
	coords := b.NonzeroPad(cond.t.Raw(), newAxis.Size, fill)

	out := make([]*NamedArray[int32, B], len(cond.axes))
	for d := range cond.axes {
		raw := b.Squeeze(b.Narrow(coords, 0, d, 1), 0)
		out[d] = wrap[int32, B](raw, []Axis{newAxis}, b)
	}
	return out
}

// Clip bounds the array below by lo and above by hi, broadcasting all
// three by name left to right. Crossing bounds resolve in hi's favor.
func (a *NamedArray[T, B]) Clip(lo, hi *NamedArray[T, B]) *NamedArray[T, B] {
	spec := broadcastSpec("clip", a.axes, lo.axes)
	spec = broadcastSpec("clip", spec, hi.axes)
	b := a.t.Backend()
	raw := b.Minimum(b.Maximum(alignRaw(a, spec), alignRaw(lo, spec)), alignRaw(hi, spec))
	return wrap[T, B](raw, cloneAxes(spec), b)
}

// ClipScalar bounds the array into [lo, hi].
func (a *NamedArray[T, B]) ClipScalar(lo, hi T) *NamedArray[T, B] {
	b := a.t.Backend()
	raw := b.Minimum(b.Maximum(a.t.Raw(), scalarRaw(lo, b)), scalarRaw(hi, b))
	return wrap[T, B](raw, cloneAxes(a.axes), b)
}

// Tril zeroes the elements above the k-offset diagonal of the two selected
// axes. The selected axes move to the last two positions of the result.
func (a *NamedArray[T, B]) Tril(ax1, ax2 AxisSelector, k int) *NamedArray[T, B] {
	r := a.Rearrange(Ellipsis, ax1, ax2)
	b := a.t.Backend()
	return wrap[T, B](b.Tril(r.t.Raw(), k), r.axes, b)
}

// Triu zeroes the elements below the k-offset diagonal of the two selected
// axes. The selected axes move to the last two positions of the result.
func (a *NamedArray[T, B]) Triu(ax1, ax2 AxisSelector, k int) *NamedArray[T, B] {
	r := a.Rearrange(Ellipsis, ax1, ax2)
	b := a.t.Backend()
	return wrap[T, B](b.Triu(r.t.Raw(), k), r.axes, b)
}

// PadLeft grows the selected axis to to.Size by prepending value, renaming
// the axis to to.Name. Panics if the axis is already larger than the
// target.
func (a *NamedArray[T, B]) PadLeft(sel AxisSelector, to Axis, value T) *NamedArray[T, B] {
	d := a.mustAxisIndex("padleft", sel)
	pad := to.Size - a.axes[d].Size
	if pad < 0 {
		panic(fmt.Sprintf("axial: padleft: cannot pad %s to %s", a.axes[d], to))
	}
	widths := make([][2]int, len(a.axes))
	widths[d][0] = pad
	b := a.t.Backend()
	raw := b.Pad(a.t.Raw(), widths, tensor.PadConstant, value)
	axes := cloneAxes(a.axes)
	axes[d] = to
	return wrap[T, B](raw, axes, b)
}

// AxisPad names one axis of a Pad call and how many elements to add before
// and after it.
type AxisPad struct {
	Axis   AxisSelector
	Before int
	After  int
}

// Pad grows the named axes by the given widths. Unmentioned axes are left
// alone. Constant mode fills with value; edge repeats the border element;
// reflect mirrors the interior and needs the source axis to hold at least
// two elements.
func (a *NamedArray[T, B]) Pad(pads []AxisPad, mode tensor.PadMode, value T) *NamedArray[T, B] {
	widths := make([][2]int, len(a.axes))
	seen := make([]bool, len(a.axes))
	axes := cloneAxes(a.axes)
	for _, p := range pads {
		d := a.mustAxisIndex("pad", p.Axis)
		if seen[d] {
			panic(fmt.Sprintf("axial: pad: duplicate axis %s", p.Axis.axisName()))
		}
		seen[d] = true
		if p.Before < 0 || p.After < 0 {
			panic(fmt.Sprintf("axial: pad: negative widths (%d, %d) for axis %s", p.Before, p.After, a.axes[d]))
		}
		if mode == tensor.PadReflect && (p.Before > 0 || p.After > 0) && a.axes[d].Size < 2 {
			panic(fmt.Sprintf("axial: pad: reflect needs axis %s to hold at least 2 elements", a.axes[d]))
		}
		widths[d] = [2]int{p.Before, p.After}
		axes[d] = axes[d].Resized(a.axes[d].Size + p.Before + p.After)
	}
	b := a.t.Backend()
	return wrap[T, B](b.Pad(a.t.Raw(), widths, mode, value), axes, b)
}
