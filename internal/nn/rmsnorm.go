package nn

import (
	"fmt"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// RMSNorm normalizes over one named axis without centering:
//
//	y = gamma * x / sqrt(mean(x^2) + eps)
//
// Cheaper than LayerNorm; the norm used by most recent LLM families.
type RMSNorm[B tensor.Backend] struct {
	Gamma   *named.NamedArray[float32, B] // scale, on Axis
	Axis    named.Axis
	Epsilon float32
}

// NewRMSNorm creates an RMSNorm over ax with gamma ones.
func NewRMSNorm[B tensor.Backend](ax named.Axis, epsilon float32, b B) *RMSNorm[B] {
	return &RMSNorm[B]{
		Gamma:   named.Ones[float32](named.Axes(ax), b),
		Axis:    ax,
		Epsilon: epsilon,
	}
}

// Forward normalizes x along the layer's axis. Panics if x lacks it.
func (r *RMSNorm[B]) Forward(x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	sel := named.AxisName(r.Axis.Name)
	meanSquare := x.Mul(x).Mean(sel)
	return x.Div(meanSquare.AddScalar(r.Epsilon).Sqrt()).Mul(r.Gamma)
}

// StateDict returns the scale under "gamma".
func (r *RMSNorm[B]) StateDict() StateDict[B] {
	return StateDict[B]{"gamma": r.Gamma}
}

// LoadStateDict copies "gamma" from sd.
func (r *RMSNorm[B]) LoadStateDict(sd StateDict[B]) error {
	if err := loadParam(sd, "gamma", r.Gamma); err != nil {
		return fmt.Errorf("rmsnorm: %w", err)
	}
	return nil
}
