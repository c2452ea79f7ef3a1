package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// broadcastSpec resolves the result layout of a binary operation. The
// operand whose axes form a superset (by name) fixes the result spec; when
// neither side contains the other the operation has no meaning and panics.
func broadcastSpec(op string, a, b []Axis) []Axis {
	for _, ax := range a {
		if i := indexOf(b, ax.Name); i >= 0 && b[i].Size != ax.Size {
			panic(fmt.Sprintf("axial: %s: axis %s does not match %s", op, ax, b[i]))
		}
	}
	if subsetOf(b, a) {
		return a
	}
	if subsetOf(a, b) {
		return b
	}
	panic(fmt.Sprintf("axial: %s: cannot broadcast %v with %v: neither axis set contains the other", op, a, b))
}

// alignRaw lays the array's data out for spec: its axes are permuted into
// their spec order and size-1 dimensions stand in for axes it lacks. The
// positional kernels stretch the size-1 dimensions, so no data is copied
// for the missing axes here.
func alignRaw[T tensor.DType, B tensor.Backend](a *NamedArray[T, B], spec []Axis) *tensor.RawTensor {
	if sameAxes(a.axes, spec) {
		return a.t.Raw()
	}
	b := a.t.Backend()

	perm := make([]int, 0, len(a.axes))
	for _, ax := range spec {
		if i := indexOf(a.axes, ax.Name); i >= 0 {
			perm = append(perm, i)
		}
	}
	raw := a.t.Raw()
	if !isIdentityPerm(perm) {
		raw = b.Transpose(raw, perm...)
	}
	if len(a.axes) < len(spec) {
		withOnes := make(tensor.Shape, len(spec))
		for i, ax := range spec {
			if indexOf(a.axes, ax.Name) >= 0 {
				withOnes[i] = ax.Size
			} else {
				withOnes[i] = 1
			}
		}
		raw = b.Reshape(raw, withOnes)
	}
	return raw
}

func isIdentityPerm(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}
	return true
}

// lift2 runs a positional binary kernel under name alignment.
func lift2[T tensor.DType, B tensor.Backend](op string, a, b *NamedArray[T, B], fn func(x, y *tensor.RawTensor) *tensor.RawTensor) *NamedArray[T, B] {
	spec := broadcastSpec(op, a.axes, b.axes)
	raw := fn(alignRaw(a, spec), alignRaw(b, spec))
	return wrap[T, B](raw, cloneAxes(spec), a.t.Backend())
}

// liftCompare is lift2 for kernels producing bool results.
func liftCompare[T tensor.DType, B tensor.Backend](op string, a, b *NamedArray[T, B], fn func(x, y *tensor.RawTensor) *tensor.RawTensor) *NamedArray[bool, B] {
	spec := broadcastSpec(op, a.axes, b.axes)
	raw := fn(alignRaw(a, spec), alignRaw(b, spec))
	return wrap[bool, B](raw, cloneAxes(spec), a.t.Backend())
}

// BroadcastTo returns the array materialized with exactly the target axes,
// in target order. Existing axes are matched by name; new axes stretch the
// data. Panics if one of the array's axes is missing from the target or
// disagrees in size.
func (a *NamedArray[T, B]) BroadcastTo(axes ...Axis) *NamedArray[T, B] {
	mustValidSpec("broadcastto", axes)
	for _, ax := range a.axes {
		i := indexOf(axes, ax.Name)
		if i < 0 {
			panic(fmt.Sprintf("axial: broadcastto: axis %s not present in target %v", ax, axes))
		}
		if axes[i].Size != ax.Size {
			panic(fmt.Sprintf("axial: broadcastto: axis %s does not match %s", ax, axes[i]))
		}
	}
	if sameAxes(a.axes, axes) {
		return a.Clone()
	}
	b := a.t.Backend()
	raw := b.Expand(alignRaw(a, axes), shapeOf(axes))
	return wrap[T, B](raw, cloneAxes(axes), b)
}

// BroadcastAxis returns the array with one new leading axis.
func (a *NamedArray[T, B]) BroadcastAxis(ax Axis) *NamedArray[T, B] {
	if a.HasAxis(ax) {
		panic(fmt.Sprintf("axial: broadcastaxis: axis %s already present in %v", ax, a.axes))
	}
	target := make([]Axis, 0, len(a.axes)+1)
	target = append(target, ax)
	target = append(target, a.axes...)
	return a.BroadcastTo(target...)
}
