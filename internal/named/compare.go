package named

import (
	"github.com/axial-ml/axial/internal/tensor"
)

// scalarRaw builds a zero-dimensional raw tensor holding v. Comparison and
// selection kernels broadcast it against any operand.
func scalarRaw[T tensor.DType, B tensor.Backend](v T, b B) *tensor.RawTensor {
	return tensor.Full[T, B](tensor.Shape{}, v, b).Raw()
}

// Greater returns a > other elementwise under name alignment.
func (a *NamedArray[T, B]) Greater(other *NamedArray[T, B]) *NamedArray[bool, B] {
	return liftCompare("greater", a, other, a.t.Backend().Greater)
}

// GreaterEqual returns a >= other elementwise under name alignment.
func (a *NamedArray[T, B]) GreaterEqual(other *NamedArray[T, B]) *NamedArray[bool, B] {
	return liftCompare("greaterequal", a, other, a.t.Backend().GreaterEqual)
}

// Less returns a < other elementwise under name alignment.
func (a *NamedArray[T, B]) Less(other *NamedArray[T, B]) *NamedArray[bool, B] {
	return liftCompare("less", a, other, a.t.Backend().Lower)
}

// LessEqual returns a <= other elementwise under name alignment.
func (a *NamedArray[T, B]) LessEqual(other *NamedArray[T, B]) *NamedArray[bool, B] {
	return liftCompare("lessequal", a, other, a.t.Backend().LowerEqual)
}

// Equal returns a == other elementwise under name alignment.
func (a *NamedArray[T, B]) Equal(other *NamedArray[T, B]) *NamedArray[bool, B] {
	return liftCompare("equal", a, other, a.t.Backend().Equal)
}

// NotEqual returns a != other elementwise under name alignment.
func (a *NamedArray[T, B]) NotEqual(other *NamedArray[T, B]) *NamedArray[bool, B] {
	return liftCompare("notequal", a, other, a.t.Backend().NotEqual)
}

// GreaterScalar returns a > v elementwise.
func (a *NamedArray[T, B]) GreaterScalar(v T) *NamedArray[bool, B] {
	b := a.t.Backend()
	return wrap[bool, B](b.Greater(a.t.Raw(), scalarRaw(v, b)), cloneAxes(a.axes), b)
}

// LessScalar returns a < v elementwise.
func (a *NamedArray[T, B]) LessScalar(v T) *NamedArray[bool, B] {
	b := a.t.Backend()
	return wrap[bool, B](b.Lower(a.t.Raw(), scalarRaw(v, b)), cloneAxes(a.axes), b)
}

// EqualScalar returns a == v elementwise.
func (a *NamedArray[T, B]) EqualScalar(v T) *NamedArray[bool, B] {
	b := a.t.Backend()
	return wrap[bool, B](b.Equal(a.t.Raw(), scalarRaw(v, b)), cloneAxes(a.axes), b)
}

// IsClose reports where a and other agree within rtol and atol, under name
// alignment.
func (a *NamedArray[T, B]) IsClose(other *NamedArray[T, B], rtol, atol float64) *NamedArray[bool, B] {
	return liftCompare("isclose", a, other, func(x, y *tensor.RawTensor) *tensor.RawTensor {
		return a.t.Backend().IsClose(x, y, rtol, atol)
	})
}

// Or returns the elementwise logical or of two bool arrays.
func (a *NamedArray[T, B]) Or(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("or", a, other, a.t.Backend().Or)
}

// And returns the elementwise logical and of two bool arrays.
func (a *NamedArray[T, B]) And(other *NamedArray[T, B]) *NamedArray[T, B] {
	return lift2("and", a, other, a.t.Backend().And)
}

// Not returns the elementwise logical negation of a bool array.
func (a *NamedArray[T, B]) Not() *NamedArray[T, B] {
	return a.unary(a.t.Backend().Not)
}
