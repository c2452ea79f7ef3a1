package named

import (
	"github.com/axial-ml/axial/internal/tensor"
)

// Add returns a + other under name alignment.
func (a *NamedArray[T, B]) Add(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("add", a, other, a.t.Backend().Add)
}

// Sub returns a - other under name alignment.
func (a *NamedArray[T, B]) Sub(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("sub", a, other, a.t.Backend().Sub)
}

// Mul returns the elementwise product under name alignment.
func (a *NamedArray[T, B]) Mul(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("mul", a, other, a.t.Backend().Mul)
}

// Div returns the elementwise quotient under name alignment.
func (a *NamedArray[T, B]) Div(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("div", a, other, a.t.Backend().Div)
}

// Maximum returns the elementwise maximum under name alignment.
func (a *NamedArray[T, B]) Maximum(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("maximum", a, other, a.t.Backend().Maximum)
}

// Minimum returns the elementwise minimum under name alignment.
func (a *NamedArray[T, B]) Minimum(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("minimum", a, other, a.t.Backend().Minimum)
}

// AddScalar adds scalar to every element.
func (a *NamedArray[T, B]) AddScalar(scalar T) *NamedArray[T, B] {
	b := a.t.Backend()
	return wrap[T, B](b.AddScalar(a.t.Raw(), scalar), cloneAxes(a.axes), b)
}

// SubScalar subtracts scalar from every element.
func (a *NamedArray[T, B]) SubScalar(scalar T) *NamedArray[T, B] {
	b := a.t.Backend()
	return wrap[T, B](b.SubScalar(a.t.Raw(), scalar), cloneAxes(a.axes), b)
}

// MulScalar multiplies every element by scalar.
func (a *NamedArray[T, B]) MulScalar(scalar T) *NamedArray[T, B] {
	b := a.t.Backend()
	return wrap[T, B](b.MulScalar(a.t.Raw(), scalar), cloneAxes(a.axes), b)
}

// DivScalar divides every element by scalar.
func (a *NamedArray[T, B]) DivScalar(scalar T) *NamedArray[T, B] {
	b := a.t.Backend()
	return wrap[T, B](b.DivScalar(a.t.Raw(), scalar), cloneAxes(a.axes), b)
}

func (a *NamedArray[T, B]) unary(fn func(x *tensor.RawTensor) *tensor.RawTensor) *NamedArray[T, B] {
	return wrap[T, B](fn(a.t.Raw()), cloneAxes(a.axes), a.t.Backend())
}

// Neg returns the elementwise negation.
func (a *NamedArray[T, B]) Neg() *NamedArray[T, B] { return a.unary(a.t.Backend().Neg) }

// Abs returns the elementwise absolute value.
func (a *NamedArray[T, B]) Abs() *NamedArray[T, B] { return a.unary(a.t.Backend().Abs) }

// Exp returns the elementwise exponential.
func (a *NamedArray[T, B]) Exp() *NamedArray[T, B] { return a.unary(a.t.Backend().Exp) }

// Log returns the elementwise natural logarithm.
func (a *NamedArray[T, B]) Log() *NamedArray[T, B] { return a.unary(a.t.Backend().Log) }

// Sqrt returns the elementwise square root.
func (a *NamedArray[T, B]) Sqrt() *NamedArray[T, B] { return a.unary(a.t.Backend().Sqrt) }

// Pow raises every element to the given power.
func (a *NamedArray[T, B]) Pow(exponent float64) *NamedArray[T, B] {
	b := a.t.Backend()
	return wrap[T, B](b.Pow(a.t.Raw(), exponent), cloneAxes(a.axes), b)
}
