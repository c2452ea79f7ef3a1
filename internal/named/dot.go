package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Dot contracts the two arrays over one shared axis. Axes the operands
// share beyond the contracted one act as batch axes, aligned by name in
// the receiver's order; the result lists batch axes, then the receiver's
// free axes, then the argument's. Contracting the only axes of both
// operands yields a scalar array.
func (a *NamedArray[T, B]) Dot(sel AxisSelector, other *NamedArray[T, B]) *NamedArray[T, B] {
	ca := a.mustAxisIndex("dot", sel)
	cb := other.mustAxisIndex("dot", sel)
	if a.axes[ca].Size != other.axes[cb].Size {
		panic(fmt.Sprintf("axial: dot: axis %s does not match %s", a.axes[ca], other.axes[cb]))
	}

	var batch, freeA, freeB []Axis
	var batchA, batchB, freeDimsA, freeDimsB []int
	for i, ax := range a.axes {
		if i == ca {
			continue
		}
		if j := indexOf(other.axes, ax.Name); j >= 0 {
			if other.axes[j].Size != ax.Size {
				panic(fmt.Sprintf("axial: dot: axis %s does not match %s", ax, other.axes[j]))
			}
			batch = append(batch, ax)
			batchA = append(batchA, i)
			batchB = append(batchB, j)
		} else {
			freeA = append(freeA, ax)
			freeDimsA = append(freeDimsA, i)
		}
	}
	for j, ax := range other.axes {
		if j != cb && indexOf(a.axes, ax.Name) < 0 {
			freeB = append(freeB, ax)
			freeDimsB = append(freeDimsB, j)
		}
	}

	nb, na, nn := prodSizes(batch), prodSizes(freeA), prodSizes(freeB)
	k := a.axes[ca].Size
	b := a.t.Backend()

	permA := append(append(append(make([]int, 0, len(a.axes)), batchA...), freeDimsA...), ca)
	lhs := a.t.Raw()
	if !isIdentityPerm(permA) {
		lhs = b.Transpose(lhs, permA...)
	}
	lhs = b.Reshape(lhs, tensor.Shape{nb, na, k})

	permB := append(append(append(make([]int, 0, len(other.axes)), batchB...), cb), freeDimsB...)
	rhs := other.t.Raw()
	if !isIdentityPerm(permB) {
		rhs = b.Transpose(rhs, permB...)
	}
	rhs = b.Reshape(rhs, tensor.Shape{nb, k, nn})

	axes := append(append(append(make([]Axis, 0, len(batch)+len(freeA)+len(freeB)), batch...), freeA...), freeB...)
	return wrap[T, B](b.Reshape(b.BatchMatMul(lhs, rhs), shapeOf(axes)), axes, b)
}

func prodSizes(axes []Axis) int {
	n := 1
	for _, ax := range axes {
		n *= ax.Size
	}
	return n
}
