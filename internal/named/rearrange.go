package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Rearrange permutes the array's axes into selector order. One Ellipsis may
// stand for all unmentioned axes, keeping their current order; without it
// the selectors must cover every axis.
func (a *NamedArray[T, B]) Rearrange(sels ...AxisSelector) *NamedArray[T, B] {
	before := make([]int, 0, len(a.axes))
	after := make([]int, 0, len(a.axes))
	seen := make([]bool, len(a.axes))
	dst := &before
	for _, sel := range sels {
		if isEllipsis(sel) {
			if dst == &after {
				panic("axial: rearrange: multiple ellipses in selector list")
			}
			dst = &after
			continue
		}
		d := a.mustAxisIndex("rearrange", sel)
		if seen[d] {
			panic(fmt.Sprintf("axial: rearrange: duplicate axis %s", sel.axisName()))
		}
		seen[d] = true
		*dst = append(*dst, d)
	}
	named := len(before) + len(after)
	if dst == &before && named != len(a.axes) {
		panic(fmt.Sprintf("axial: rearrange: selectors cover %d of %d axes (use Ellipsis for the rest)", named, len(a.axes)))
	}

	perm := make([]int, 0, len(a.axes))
	perm = append(perm, before...)
	for d := range a.axes {
		if !seen[d] {
			perm = append(perm, d)
		}
	}
	perm = append(perm, after...)
	if isIdentityPerm(perm) {
		return a.Clone()
	}

	b := a.t.Backend()
	axes := make([]Axis, len(perm))
	for i, d := range perm {
		axes[i] = a.axes[d]
	}
	return wrap[T, B](b.Transpose(a.t.Raw(), perm...), axes, b)
}

// Rename gives the selected axis a new name, keeping data and axis order.
// The new name must not collide with another axis.
func (a *NamedArray[T, B]) Rename(sel AxisSelector, name string) *NamedArray[T, B] {
	d := a.mustAxisIndex("rename", sel)
	for j, ax := range a.axes {
		if j != d && ax.Name == name {
			panic(fmt.Sprintf("axial: rename: name %q collides with axis %s", name, ax))
		}
	}
	out := a.Clone()
	out.axes[d] = out.axes[d].Alias(name)
	return out
}

// Flatten merges the selected axes, row-major in selector order, into one
// new axis placed where the earliest of them sat. The new name must not
// collide with a retained axis.
func (a *NamedArray[T, B]) Flatten(name string, sels ...AxisSelector) *NamedArray[T, B] {
	if len(sels) == 0 {
		panic("axial: flatten: no axes given")
	}
	dims := make([]int, 0, len(sels))
	selected := make([]bool, len(a.axes))
	size := 1
	for _, sel := range sels {
		d := a.mustAxisIndex("flatten", sel)
		if selected[d] {
			panic(fmt.Sprintf("axial: flatten: duplicate axis %s", sel.axisName()))
		}
		selected[d] = true
		dims = append(dims, d)
		size *= a.axes[d].Size
	}
	insertAt := dims[0]
	for _, d := range dims[1:] {
		if d < insertAt {
			insertAt = d
		}
	}
	for d, ax := range a.axes {
		if !selected[d] && ax.Name == name {
			panic(fmt.Sprintf("axial: flatten: name %q collides with axis %s", name, ax))
		}
	}

	perm := make([]int, 0, len(a.axes))
	axes := make([]Axis, 0, len(a.axes)-len(dims)+1)
	shape := make(tensor.Shape, 0, len(a.axes)-len(dims)+1)
	for d := range a.axes {
		if d == insertAt {
			perm = append(perm, dims...)
			axes = append(axes, Axis{Name: name, Size: size})
			shape = append(shape, size)
		}
		if !selected[d] {
			perm = append(perm, d)
			axes = append(axes, a.axes[d])
			shape = append(shape, a.axes[d].Size)
		}
	}

	b := a.t.Backend()
	raw := a.t.Raw()
	if !isIdentityPerm(perm) {
		raw = b.Transpose(raw, perm...)
	}
	return wrap[T, B](b.Reshape(raw, shape), axes, b)
}

// Unflatten splits the selected axis into the given parts, whose sizes must
// multiply back to the axis size. Part names must not collide with each
// other or with the remaining axes.
func (a *NamedArray[T, B]) Unflatten(sel AxisSelector, parts ...Axis) *NamedArray[T, B] {
	d := a.mustAxisIndex("unflatten", sel)
	mustValidSpec("unflatten", parts)
	size := 1
	for _, p := range parts {
		size *= p.Size
		for j, ax := range a.axes {
			if j != d && ax.Name == p.Name {
				panic(fmt.Sprintf("axial: unflatten: name %q collides with axis %s", p.Name, ax))
			}
		}
	}
	if size != a.axes[d].Size {
		panic(fmt.Sprintf("axial: unflatten: axes %v hold %d elements, axis %s has %d", parts, size, a.axes[d], a.axes[d].Size))
	}

	axes := make([]Axis, 0, len(a.axes)+len(parts)-1)
	axes = append(axes, a.axes[:d]...)
	axes = append(axes, parts...)
	axes = append(axes, a.axes[d+1:]...)
	b := a.t.Backend()
	return wrap[T, B](b.Reshape(a.t.Raw(), shapeOf(axes)), axes, b)
}

// Slice picks one position along the selected axis and drops the axis.
// Negative indices count from the end.
func (a *NamedArray[T, B]) Slice(sel AxisSelector, i int) *NamedArray[T, B] {
	d := a.mustAxisIndex("slice", sel)
	size := a.axes[d].Size
	if i < 0 {
		i += size
	}
	if i < 0 || i >= size {
		panic(fmt.Sprintf("axial: slice: index %d out of range for axis %s", i, a.axes[d]))
	}
	b := a.t.Backend()
	raw := b.Squeeze(b.Narrow(a.t.Raw(), d, i, 1), d)
	return wrap[T, B](raw, without(a.axes, d), b)
}

// Narrow keeps a contiguous range [start, start+length) of the selected
// axis.
func (a *NamedArray[T, B]) Narrow(sel AxisSelector, start, length int) *NamedArray[T, B] {
	d := a.mustAxisIndex("narrow", sel)
	size := a.axes[d].Size
	if start < 0 || length <= 0 || start+length > size {
		panic(fmt.Sprintf("axial: narrow: range [%d:%d) out of bounds for axis %s", start, start+length, a.axes[d]))
	}
	b := a.t.Backend()
	axes := cloneAxes(a.axes)
	axes[d] = axes[d].Resized(length)
	return wrap[T, B](b.Narrow(a.t.Raw(), d, start, length), axes, b)
}
