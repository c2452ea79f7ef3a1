package nn

import (
	"fmt"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/random"
	"github.com/axial-ml/axial/internal/tensor"
)

// Linear is a fully connected layer: y = x·W + b, contracted over the
// input axis. The input may carry any other axes; they pass through
// unchanged and the input axis is replaced by the output axis.
type Linear[B tensor.Backend] struct {
	Weight *named.NamedArray[float32, B] // (In, Out)
	Bias   *named.NamedArray[float32, B] // (Out); nil disables the bias
	In     named.Axis
	Out    named.Axis
}

// NewLinear creates a Linear layer with a Xavier-initialized weight and
// a zero bias. Set Bias to nil to drop the bias term.
func NewLinear[B tensor.Backend](in, out named.Axis, key random.Key, b B) *Linear[B] {
	return &Linear[B]{
		Weight: Xavier(key, in, out, b),
		Bias:   named.Zeros[float32](named.Axes(out), b),
		In:     in,
		Out:    out,
	}
}

// Forward contracts x with the weight over the input axis and adds the
// bias. Panics if x lacks the input axis or already carries the output
// axis.
func (l *Linear[B]) Forward(x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	if x.HasAxis(named.AxisName(l.Out.Name)) {
		panic(fmt.Sprintf("axial: linear: input already carries output axis %q", l.Out.Name))
	}
	y := x.Dot(named.AxisName(l.In.Name), l.Weight)
	if l.Bias != nil {
		y = y.Add(l.Bias)
	}
	return y
}

// StateDict returns the layer's parameters under "weight" and "bias".
func (l *Linear[B]) StateDict() StateDict[B] {
	sd := StateDict[B]{"weight": l.Weight}
	if l.Bias != nil {
		sd["bias"] = l.Bias
	}
	return sd
}

// LoadStateDict copies "weight" (and "bias", when the layer has one)
// from sd into the layer, aligning axes by name.
func (l *Linear[B]) LoadStateDict(sd StateDict[B]) error {
	if err := loadParam(sd, "weight", l.Weight); err != nil {
		return fmt.Errorf("linear: %w", err)
	}
	if l.Bias != nil {
		if err := loadParam(sd, "bias", l.Bias); err != nil {
			return fmt.Errorf("linear: %w", err)
		}
	}
	return nil
}
