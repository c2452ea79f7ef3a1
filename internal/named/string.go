package named

import (
	"strings"
)

// String renders the element type, axes, and device, for example
// "NamedArray[float32](Height=10, Width=3) on CPU".
func (a *NamedArray[T, B]) String() string {
	var sb strings.Builder
	sb.WriteString("NamedArray[")
	sb.WriteString(a.t.DType().String())
	sb.WriteString("](")
	for i, ax := range a.axes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ax.String())
	}
	sb.WriteString(") on ")
	sb.WriteString(a.t.Device().String())
	return sb.String()
}
