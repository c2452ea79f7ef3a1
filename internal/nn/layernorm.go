package nn

import (
	"fmt"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// LayerNorm normalizes over one named axis:
//
//	y = gamma * (x - mean(x)) / sqrt(var(x) + eps) + beta
//
// with mean and variance taken along Axis. Gamma and Beta live on that
// axis and broadcast over the rest of the input by name.
type LayerNorm[B tensor.Backend] struct {
	Gamma   *named.NamedArray[float32, B] // scale, on Axis
	Beta    *named.NamedArray[float32, B] // shift, on Axis
	Axis    named.Axis
	Epsilon float32
}

// NewLayerNorm creates a LayerNorm over ax with gamma ones and beta
// zeros. Epsilon is typically 1e-5.
func NewLayerNorm[B tensor.Backend](ax named.Axis, epsilon float32, b B) *LayerNorm[B] {
	return &LayerNorm[B]{
		Gamma:   named.Ones[float32](named.Axes(ax), b),
		Beta:    named.Zeros[float32](named.Axes(ax), b),
		Axis:    ax,
		Epsilon: epsilon,
	}
}

// Forward normalizes x along the layer's axis. Panics if x lacks it.
func (l *LayerNorm[B]) Forward(x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	sel := named.AxisName(l.Axis.Name)
	centered := x.Sub(x.Mean(sel))
	variance := centered.Mul(centered).Mean(sel)
	norm := centered.Div(variance.AddScalar(l.Epsilon).Sqrt())
	return norm.Mul(l.Gamma).Add(l.Beta)
}

// StateDict returns the parameters under "gamma" and "beta".
func (l *LayerNorm[B]) StateDict() StateDict[B] {
	return StateDict[B]{"gamma": l.Gamma, "beta": l.Beta}
}

// LoadStateDict copies "gamma" and "beta" from sd.
func (l *LayerNorm[B]) LoadStateDict(sd StateDict[B]) error {
	if err := loadParam(sd, "gamma", l.Gamma); err != nil {
		return fmt.Errorf("layernorm: %w", err)
	}
	if err := loadParam(sd, "beta", l.Beta); err != nil {
		return fmt.Errorf("layernorm: %w", err)
	}
	return nil
}
