package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Take gathers along the selected axis, replacing it with the index
// array's axes. A scalar index drops the axis. Negative indices count from
// the end; index axes must not collide with the array's remaining axes.
func (a *NamedArray[T, B]) Take(sel AxisSelector, idx *NamedArray[int32, B]) *NamedArray[T, B] {
	d := a.mustAxisIndex("take", sel)
	for _, ax := range idx.axes {
		if i := indexOf(a.axes, ax.Name); i >= 0 && i != d {
			panic(fmt.Sprintf("axial: take: index axis %s collides with array axis %s", ax, a.axes[i]))
		}
	}
	b := a.t.Backend()
	flat := b.Reshape(idx.t.Raw(), tensor.Shape{idx.t.NumElements()})
	raw := b.IndexSelect(a.t.Raw(), d, flat)
	if len(idx.axes) == 0 {
		return wrap[T, B](b.Squeeze(raw, d), without(a.axes, d), b)
	}

	axes := make([]Axis, 0, len(a.axes)+len(idx.axes)-1)
	axes = append(axes, a.axes[:d]...)
	axes = append(axes, idx.axes...)
	axes = append(axes, a.axes[d+1:]...)
	return wrap[T, B](b.Reshape(raw, shapeOf(axes)), axes, b)
}

// TakeMap gathers pointwise along several axes at once: every keyed axis
// is indexed by its array, and all index arrays must broadcast to one
// shared spec. The keyed axes are replaced by that spec, placed where the
// first of them sat; unkeyed axes keep their order. Negative indices count
// from the end.
func (a *NamedArray[T, B]) TakeMap(idxs map[string]*NamedArray[int32, B]) *NamedArray[T, B] {
	if len(idxs) == 0 {
		return a.Clone()
	}
	keyed := make([]int, 0, len(idxs))
	for d, ax := range a.axes {
		if _, ok := idxs[ax.Name]; ok {
			keyed = append(keyed, d)
		}
	}
	if len(keyed) != len(idxs) {
		for name := range idxs {
			a.mustAxisIndex("takemap", AxisName(name))
		}
	}

	var spec []Axis
	for _, d := range keyed {
		spec = broadcastSpec("takemap", spec, idxs[a.axes[d].Name].axes)
	}
	for _, ax := range spec {
		if i := indexOf(a.axes, ax.Name); i >= 0 {
			if _, ok := idxs[ax.Name]; !ok {
				panic(fmt.Sprintf("axial: takemap: index axis %s collides with array axis %s", ax, a.axes[i]))
			}
		}
	}

	// Fold the per-axis indices into one flat index over the keyed block,
	// row-major in the keyed axes' original order.
	var combined *NamedArray[int32, B]
	for _, d := range keyed {
		idx := idxs[a.axes[d].Name]
		size := int32(a.axes[d].Size) //nolint:gosec // G115: axis sizes stay well under 2^31
		wrapped := Where(idx.LessScalar(0), idx.AddScalar(size), idx)
		if combined == nil {
			combined = wrapped
		} else {
			combined = combined.MulScalar(size).Add(wrapped)
		}
	}

	b := a.t.Backend()
	isKeyed := make([]bool, len(a.axes))
	for _, d := range keyed {
		isKeyed[d] = true
	}
	perm := append(make([]int, 0, len(a.axes)), keyed...)
	unkeyed := make([]Axis, 0, len(a.axes)-len(keyed))
	for d := range a.axes {
		if !isKeyed[d] {
			perm = append(perm, d)
			unkeyed = append(unkeyed, a.axes[d])
		}
	}
	raw := a.t.Raw()
	if !isIdentityPerm(perm) {
		raw = b.Transpose(raw, perm...)
	}
	blockSize := 1
	for _, d := range keyed {
		blockSize *= a.axes[d].Size
	}
	mat := b.Reshape(raw, tensor.Shape{blockSize, a.t.NumElements() / blockSize})
	flat := b.Reshape(combined.t.Raw(), tensor.Shape{combined.t.NumElements()})

	gatheredAxes := append(cloneAxes(spec), unkeyed...)
	gathered := wrap[T, B](b.Reshape(b.IndexSelect(mat, 0, flat), shapeOf(gatheredAxes)), gatheredAxes, b)

	// Move the index block from the front to the first keyed position.
	if keyed[0] == 0 {
		return gathered
	}
	order := make([]AxisSelector, 0, len(gatheredAxes))
	for _, ax := range a.axes[:keyed[0]] {
		order = append(order, AxisName(ax.Name))
	}
	for _, ax := range spec {
		order = append(order, AxisName(ax.Name))
	}
	order = append(order, Ellipsis)
	return gathered.Rearrange(order...)
}
