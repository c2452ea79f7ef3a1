package tensor

// PadMode selects how Pad fills the added border elements.
type PadMode int

// Padding modes.
const (
	// PadConstant fills with a constant value.
	PadConstant PadMode = iota
	// PadEdge repeats the border element.
	PadEdge
	// PadReflect mirrors the interior, excluding the border element.
	PadReflect
)

// String returns the padding mode name.
func (m PadMode) String() string {
	switch m {
	case PadConstant:
		return "constant"
	case PadEdge:
		return "edge"
	case PadReflect:
		return "reflect"
	default:
		return "unknown"
	}
}

// Backend is the contract compute implementations satisfy. The named layer
// resolves axis names to positions and then drives these positional kernels.
//
// Kernels panic with a short "op: detail" message on invalid input; the named
// layer validates axis-level preconditions before calling down, so a panic
// here indicates a bug in the caller rather than bad user input.
//
// Implementations:
//   - CPU: pure Go kernels, parallelized for large tensors
//   - WebGPU: float32 subset on GPU, delegating the rest to CPU
type Backend interface {
	// Element-wise binary operations with NumPy-style positional broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	Maximum(a, b *RawTensor) *RawTensor
	Minimum(a, b *RawTensor) *RawTensor

	// Matrix operations.
	// MatMul contracts the last dimension of a with the first of b for 2-D
	// inputs; BatchMatMul treats leading dimensions as batch.
	MatMul(a, b *RawTensor) *RawTensor
	BatchMatMul(a, b *RawTensor) *RawTensor

	// Shape operations. All results are materialized contiguous tensors.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor
	Narrow(x *RawTensor, dim, start, length int) *RawTensor

	// Scalar operations (element-wise with a scalar operand).
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise).
	Neg(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Pow(x *RawTensor, exponent float64) *RawTensor

	// Comparison operations (element-wise, broadcast, bool result).
	Greater(a, b *RawTensor) *RawTensor
	Lower(a, b *RawTensor) *RawTensor
	GreaterEqual(a, b *RawTensor) *RawTensor
	LowerEqual(a, b *RawTensor) *RawTensor
	Equal(a, b *RawTensor) *RawTensor
	NotEqual(a, b *RawTensor) *RawTensor

	// IsClose reports |a-b| <= atol + rtol*|b| element-wise with
	// broadcasting. NaN is never close to anything; float dtypes only.
	IsClose(a, b *RawTensor, rtol, atol float64) *RawTensor

	// Boolean operations (element-wise on bool tensors).
	Or(a, b *RawTensor) *RawTensor
	And(a, b *RawTensor) *RawTensor
	Not(x *RawTensor) *RawTensor

	// Reduction operations. Full reductions return scalar-shaped tensors.
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Mean(x *RawTensor) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Max(x *RawTensor) *RawTensor
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Min(x *RawTensor) *RawTensor
	MinDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Prod(x *RawTensor) *RawTensor
	ProdDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Argmax(x *RawTensor, dim int) *RawTensor
	Argmin(x *RawTensor, dim int) *RawTensor

	// Structural kernels over the last two dimensions.
	// Diagonal extracts the offset diagonal as a trailing dimension; Tril and
	// Triu zero out elements above or below the offset diagonal.
	Diagonal(x *RawTensor, offset int) *RawTensor
	Tril(x *RawTensor, k int) *RawTensor
	Triu(x *RawTensor, k int) *RawTensor

	// Pad adds (before, after) elements per dimension. value is used by
	// PadConstant and ignored by the other modes.
	Pad(x *RawTensor, widths [][2]int, mode PadMode, value any) *RawTensor

	// Indexing operations.
	// IndexSelect gathers slices along dim using a 1-D int32 index; negative
	// indices wrap. Where selects elements from x or y by a bool condition,
	// broadcasting all three operands. NonzeroPad returns a (ndim, size)
	// int32 tensor of coordinates of true elements in row-major order,
	// padded with fill.
	IndexSelect(x *RawTensor, dim int, index *RawTensor) *RawTensor
	Where(condition, x, y *RawTensor) *RawTensor
	NonzeroPad(condition *RawTensor, size int, fill int32) *RawTensor

	// Unique returns the sorted distinct elements of the flattened input,
	// padded with the smallest distinct value up to size. UniqueRows does
	// the same for rows of a 2-D input under lexicographic order.
	// firstIndex, inverse and counts are int32.
	Unique(x *RawTensor, size int) (values, firstIndex, inverse, counts *RawTensor)
	UniqueRows(x *RawTensor, size int) (values, firstIndex, inverse, counts *RawTensor)

	// Manipulation operations.
	Cat(tensors []*RawTensor, dim int) *RawTensor
	Unsqueeze(x *RawTensor, dim int) *RawTensor
	Squeeze(x *RawTensor, dim int) *RawTensor

	// Type conversion.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
