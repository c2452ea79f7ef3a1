package named

import (
	"fmt"

	"github.com/axial-ml/axial/internal/tensor"
)

// Axis pairs an axis name with its size. Two axes sharing a name must agree
// on size wherever they meet; operations panic on a mismatch.
type Axis struct {
	Name string
	Size int
}

// String returns "Name=Size".
func (a Axis) String() string {
	return fmt.Sprintf("%s=%d", a.Name, a.Size)
}

// Resized returns a copy of the axis with a new size.
func (a Axis) Resized(size int) Axis {
	return Axis{Name: a.Name, Size: size}
}

// Alias returns a copy of the axis with a new name.
func (a Axis) Alias(name string) Axis {
	return Axis{Name: name, Size: a.Size}
}

func (a Axis) axisName() string { return a.Name }

// AxisName selects an axis by name alone. Operations that only need to
// locate an axis accept it in place of a full Axis value.
type AxisName string

func (n AxisName) axisName() string { return string(n) }

// AxisSelector is satisfied by Axis and AxisName.
type AxisSelector interface {
	axisName() string
}

// Ellipsis stands for every unmentioned axis, in current order, inside a
// Rearrange selector list.
var Ellipsis AxisSelector = ellipsis{}

type ellipsis struct{}

func (ellipsis) axisName() string { return "..." }

func isEllipsis(sel AxisSelector) bool {
	_, ok := sel.(ellipsis)
	return ok
}

// AxisSpec is a list of axes describing an array layout.
type AxisSpec = []Axis

// Axes builds an AxisSpec from its arguments.
func Axes(axes ...Axis) AxisSpec {
	return axes
}

// shapeOf returns the positional shape behind a spec.
func shapeOf(axes []Axis) tensor.Shape {
	shape := make(tensor.Shape, len(axes))
	for i, ax := range axes {
		shape[i] = ax.Size
	}
	return shape
}

// cloneAxes copies a spec so arrays never share axis slices.
func cloneAxes(axes []Axis) []Axis {
	out := make([]Axis, len(axes))
	copy(out, axes)
	return out
}

// indexOf returns the position of name in axes, or -1.
func indexOf(axes []Axis, name string) int {
	for i, ax := range axes {
		if ax.Name == name {
			return i
		}
	}
	return -1
}

// without returns axes with position i removed.
func without(axes []Axis, i int) []Axis {
	out := make([]Axis, 0, len(axes)-1)
	out = append(out, axes[:i]...)
	out = append(out, axes[i+1:]...)
	return out
}

// sameAxes reports whether two specs list the same axes in the same order.
func sameAxes(a, b []Axis) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// subsetOf reports whether every axis name of sub appears in super.
func subsetOf(sub, super []Axis) bool {
	for _, ax := range sub {
		if indexOf(super, ax.Name) < 0 {
			return false
		}
	}
	return true
}

// validateSpec checks a spec for duplicate names and non-positive sizes.
func validateSpec(axes []Axis) error {
	for i, ax := range axes {
		if ax.Size <= 0 {
			return fmt.Errorf("axis %s has non-positive size", ax)
		}
		for _, prev := range axes[:i] {
			if prev.Name == ax.Name {
				return fmt.Errorf("duplicate axis name %q", ax.Name)
			}
		}
	}
	return nil
}

// mustValidSpec is validateSpec for the panic-on-error creation paths.
func mustValidSpec(op string, axes []Axis) {
	if err := validateSpec(axes); err != nil {
		panic(fmt.Sprintf("axial: %s: %v", op, err))
	}
}
