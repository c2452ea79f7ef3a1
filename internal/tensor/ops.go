package tensor

// Positional operation wrappers. These delegate to the backend and re-wrap
// the result; axis-name aware variants live in the named layer.

// Add performs element-wise addition with positional broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Sub performs element-wise subtraction with positional broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Sub(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication with positional broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Div performs element-wise division with positional broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Div(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Maximum returns the element-wise maximum of two tensors.
func (t *Tensor[T, B]) Maximum(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Maximum(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Minimum returns the element-wise minimum of two tensors.
func (t *Tensor[T, B]) Minimum(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Minimum(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// AddScalar adds a scalar to each element.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	result := t.backend.AddScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// SubScalar subtracts a scalar from each element.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	result := t.backend.SubScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// MulScalar multiplies each element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	result := t.backend.MulScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// DivScalar divides each element by a scalar.
func (t *Tensor[T, B]) DivScalar(scalar T) *Tensor[T, B] {
	result := t.backend.DivScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// MatMul performs matrix multiplication.
//
// For 2-D tensors: (m, k) @ (k, n) -> (m, n).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.MatMul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Reshape returns a tensor with the same data and a new shape.
// The element count must be preserved.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	result := t.backend.Reshape(t.raw, Shape(newShape))
	return New[T, B](result, t.backend)
}

// Transpose permutes the tensor's dimensions.
// With no arguments the dimension order is reversed.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	result := t.backend.Transpose(t.raw, axes...)
	return New[T, B](result, t.backend)
}

// Neg negates each element.
func (t *Tensor[T, B]) Neg() *Tensor[T, B] {
	result := t.backend.Neg(t.raw)
	return New[T, B](result, t.backend)
}

// Abs returns the element-wise absolute value.
func (t *Tensor[T, B]) Abs() *Tensor[T, B] {
	result := t.backend.Abs(t.raw)
	return New[T, B](result, t.backend)
}

// Exp applies the element-wise exponential.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	result := t.backend.Exp(t.raw)
	return New[T, B](result, t.backend)
}

// Log applies the element-wise natural logarithm.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	result := t.backend.Log(t.raw)
	return New[T, B](result, t.backend)
}

// Sqrt applies the element-wise square root.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	result := t.backend.Sqrt(t.raw)
	return New[T, B](result, t.backend)
}

// Pow raises each element to the given power.
func (t *Tensor[T, B]) Pow(exponent float64) *Tensor[T, B] {
	result := t.backend.Pow(t.raw, exponent)
	return New[T, B](result, t.backend)
}

// Greater compares element-wise: t > other.
func (t *Tensor[T, B]) Greater(other *Tensor[T, B]) *Tensor[bool, B] {
	result := t.backend.Greater(t.raw, other.raw)
	return New[bool, B](result, t.backend)
}

// Less compares element-wise: t < other.
func (t *Tensor[T, B]) Less(other *Tensor[T, B]) *Tensor[bool, B] {
	result := t.backend.Lower(t.raw, other.raw)
	return New[bool, B](result, t.backend)
}

// GreaterEqual compares element-wise: t >= other.
func (t *Tensor[T, B]) GreaterEqual(other *Tensor[T, B]) *Tensor[bool, B] {
	result := t.backend.GreaterEqual(t.raw, other.raw)
	return New[bool, B](result, t.backend)
}

// LessEqual compares element-wise: t <= other.
func (t *Tensor[T, B]) LessEqual(other *Tensor[T, B]) *Tensor[bool, B] {
	result := t.backend.LowerEqual(t.raw, other.raw)
	return New[bool, B](result, t.backend)
}

// Equal compares element-wise: t == other.
func (t *Tensor[T, B]) Equal(other *Tensor[T, B]) *Tensor[bool, B] {
	result := t.backend.Equal(t.raw, other.raw)
	return New[bool, B](result, t.backend)
}

// NotEqual compares element-wise: t != other.
func (t *Tensor[T, B]) NotEqual(other *Tensor[T, B]) *Tensor[bool, B] {
	result := t.backend.NotEqual(t.raw, other.raw)
	return New[bool, B](result, t.backend)
}

// Sum reduces all elements to a scalar-shaped tensor.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	result := t.backend.Sum(t.raw)
	return New[T, B](result, t.backend)
}

// SumDim sums along a dimension. keepDim retains the reduced dimension
// with size 1.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	result := t.backend.SumDim(t.raw, dim, keepDim)
	return New[T, B](result, t.backend)
}

// Mean reduces all elements to their scalar-shaped mean.
func (t *Tensor[T, B]) Mean() *Tensor[T, B] {
	result := t.backend.Mean(t.raw)
	return New[T, B](result, t.backend)
}

// MeanDim averages along a dimension.
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	result := t.backend.MeanDim(t.raw, dim, keepDim)
	return New[T, B](result, t.backend)
}

// Argmax returns the int32 indices of the maximum along a dimension.
func (t *Tensor[T, B]) Argmax(dim int) *Tensor[int32, B] {
	result := t.backend.Argmax(t.raw, dim)
	return New[int32, B](result, t.backend)
}

// Argmin returns the int32 indices of the minimum along a dimension.
func (t *Tensor[T, B]) Argmin(dim int) *Tensor[int32, B] {
	result := t.backend.Argmin(t.raw, dim)
	return New[int32, B](result, t.backend)
}

// Max computes the maximum of all elements.
func (t *Tensor[T, B]) Max() *Tensor[T, B] {
	result := t.backend.Max(t.raw)
	return New[T, B](result, t.backend)
}

// MaxDim computes the maximum along a dimension.
func (t *Tensor[T, B]) MaxDim(dim int, keepDim bool) *Tensor[T, B] {
	result := t.backend.MaxDim(t.raw, dim, keepDim)
	return New[T, B](result, t.backend)
}

// Min computes the minimum of all elements.
func (t *Tensor[T, B]) Min() *Tensor[T, B] {
	result := t.backend.Min(t.raw)
	return New[T, B](result, t.backend)
}

// MinDim computes the minimum along a dimension.
func (t *Tensor[T, B]) MinDim(dim int, keepDim bool) *Tensor[T, B] {
	result := t.backend.MinDim(t.raw, dim, keepDim)
	return New[T, B](result, t.backend)
}

// Prod computes the product of all elements.
func (t *Tensor[T, B]) Prod() *Tensor[T, B] {
	result := t.backend.Prod(t.raw)
	return New[T, B](result, t.backend)
}

// ProdDim computes the product along a dimension.
func (t *Tensor[T, B]) ProdDim(dim int, keepDim bool) *Tensor[T, B] {
	result := t.backend.ProdDim(t.raw, dim, keepDim)
	return New[T, B](result, t.backend)
}

// BatchMatMul performs batched matrix multiplication on 3D tensors.
func (t *Tensor[T, B]) BatchMatMul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.BatchMatMul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// IsClose compares element-wise within relative and absolute tolerances.
func (t *Tensor[T, B]) IsClose(other *Tensor[T, B], rtol, atol float64) *Tensor[bool, B] {
	result := t.backend.IsClose(t.raw, other.raw, rtol, atol)
	return New[bool, B](result, t.backend)
}

// Or performs element-wise logical OR. Both tensors must be bool.
func (t *Tensor[T, B]) Or(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Or(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// And performs element-wise logical AND. Both tensors must be bool.
func (t *Tensor[T, B]) And(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.And(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Not performs element-wise logical NOT. The tensor must be bool.
func (t *Tensor[T, B]) Not() *Tensor[T, B] {
	result := t.backend.Not(t.raw)
	return New[T, B](result, t.backend)
}

// Float32 converts the tensor to float32.
func (t *Tensor[T, B]) Float32() *Tensor[float32, B] {
	result := t.backend.Cast(t.raw, Float32)
	return New[float32, B](result, t.backend)
}

// Float64 converts the tensor to float64.
func (t *Tensor[T, B]) Float64() *Tensor[float64, B] {
	result := t.backend.Cast(t.raw, Float64)
	return New[float64, B](result, t.backend)
}

// Int32 converts the tensor to int32.
func (t *Tensor[T, B]) Int32() *Tensor[int32, B] {
	result := t.backend.Cast(t.raw, Int32)
	return New[int32, B](result, t.backend)
}

// Int64 converts the tensor to int64.
func (t *Tensor[T, B]) Int64() *Tensor[int64, B] {
	result := t.backend.Cast(t.raw, Int64)
	return New[int64, B](result, t.backend)
}
