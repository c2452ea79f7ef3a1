package nn

import (
	"math"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// Activation functions. All of them are elementwise except Softmax and
// LogSoftmax, which reduce over the selected axes and broadcast the
// result back by name.

// Relu clamps negative values to zero: f(x) = max(0, x).
func Relu[B tensor.Backend](x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	return x.ClipScalar(0, float32(math.Inf(1)))
}

// Sigmoid squashes values into (0, 1): f(x) = 1 / (1 + exp(-x)).
func Sigmoid[B tensor.Backend](x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	return x.Neg().Exp().AddScalar(1).Pow(-1)
}

// Tanh squashes values into (-1, 1), computed as 2*sigmoid(2x) - 1 so
// large magnitudes saturate instead of overflowing.
func Tanh[B tensor.Backend](x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	return Sigmoid(x.MulScalar(2)).MulScalar(2).SubScalar(1)
}

// sqrt(2/pi), the constant of the tanh GELU approximation.
const geluCoeff = 0.7978845608028654

// Gelu is the tanh approximation of the Gaussian error linear unit:
//
//	f(x) = 0.5 * x * (1 + tanh(sqrt(2/pi) * (x + 0.044715*x^3)))
func Gelu[B tensor.Backend](x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	cube := x.Mul(x).Mul(x)
	inner := x.Add(cube.MulScalar(0.044715)).MulScalar(geluCoeff)
	return x.MulScalar(0.5).Mul(Tanh(inner).AddScalar(1))
}

// Silu is the sigmoid-weighted linear unit: f(x) = x * sigmoid(x).
func Silu[B tensor.Backend](x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	return x.Mul(Sigmoid(x))
}

// Softmax exponentiates and normalizes over the selected axes, shifted
// by the per-slice maximum for stability. With no selectors it
// normalizes over the whole array.
func Softmax[B tensor.Backend](x *named.NamedArray[float32, B], sels ...named.AxisSelector) *named.NamedArray[float32, B] {
	e := x.Sub(x.Max(sels...)).Exp()
	return e.Div(e.Sum(sels...))
}

// LogSoftmax is log(Softmax(x)) computed without the intermediate
// division.
func LogSoftmax[B tensor.Backend](x *named.NamedArray[float32, B], sels ...named.AxisSelector) *named.NamedArray[float32, B] {
	shifted := x.Sub(x.Max(sels...))
	return shifted.Sub(shifted.Exp().Sum(sels...).Log())
}
