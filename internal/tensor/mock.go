package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing the wrapper layers without
// pulling in the real kernels. Operations are implemented naively; the ops
// only exercised through the CPU backend panic here.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// Maximum returns the element-wise maximum with broadcasting.
func (m *MockBackend) Maximum(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, math.Max)
}

// Minimum returns the element-wise minimum with broadcasting.
func (m *MockBackend) Minimum(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, math.Min)
}

// elementWise performs element-wise operations with broadcasting.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	numElements := outShape.NumElements()

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, numElements)

	for i := 0; i < numElements; i++ {
		aIdx := m.broadcastIndex(i, outShape, a.Shape())
		bIdx := m.broadcastIndex(i, outShape, b.Shape())

		resultData[i] = op(aData[aIdx], bData[bIdx])
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// compare performs element-wise comparison with broadcasting, bool result.
func (m *MockBackend) compare(a, b *RawTensor, op func(float64, float64) bool) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, Bool, m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	out := result.AsBool()

	for i := range out {
		aIdx := m.broadcastIndex(i, outShape, a.Shape())
		bIdx := m.broadcastIndex(i, outShape, b.Shape())
		out[i] = op(aData[aIdx], bData[bIdx])
	}

	return result
}

// unary applies a float op to each element.
func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	data := m.toFloat64Slice(x)
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = op(v)
	}

	m.fromFloat64Slice(out, result)
	return result
}

// MatMul performs matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic("MatMul only supports 2D tensors in mock backend")
	}

	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("incompatible shapes for MatMul: %v @ %v", aShape, bShape))
	}

	rows, inner := aShape[0], aShape[1]
	cols := bShape[1]

	result, err := NewRaw(Shape{rows, cols}, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, rows*cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum := 0.0
			for k := 0; k < inner; k++ {
				sum += aData[i*inner+k] * bData[k*cols+j]
			}
			resultData[i*cols+j] = sum
		}
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// BatchMatMul is not implemented in the mock backend.
func (m *MockBackend) BatchMatMul(a, b *RawTensor) *RawTensor {
	panic("BatchMatMul not implemented in mock backend")
}

// Reshape returns a copy of the tensor with a new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v", t.Shape(), newShape))
	}
	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes dimensions.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	newShape := shape.Permute(axes)
	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	src := m.toFloat64Slice(t)
	dst := make([]float64, len(src))

	srcStrides := shape.ComputeStrides()
	dstStrides := newShape.ComputeStrides()

	for i := range src {
		idx := i
		dstIdx := 0
		for dim := 0; dim < ndim; dim++ {
			coord := idx / srcStrides[dim]
			idx %= srcStrides[dim]
			for dstDim, srcDim := range axes {
				if srcDim == dim {
					dstIdx += coord * dstStrides[dstDim]
				}
			}
		}
		dst[dstIdx] = src[i]
	}

	m.fromFloat64Slice(dst, result)
	return result
}

// Expand broadcasts the tensor to a larger shape.
func (m *MockBackend) Expand(x *RawTensor, shape Shape) *RawTensor {
	result, err := NewRaw(shape, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	src := m.toFloat64Slice(x)
	dst := make([]float64, shape.NumElements())
	for i := range dst {
		dst[i] = src[m.broadcastIndex(i, shape, x.Shape())]
	}

	m.fromFloat64Slice(dst, result)
	return result
}

// Narrow copies a contiguous sub-range of one dimension.
func (m *MockBackend) Narrow(x *RawTensor, dim, start, length int) *RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("narrow: invalid dim %d for shape %v", dim, shape))
	}
	if start < 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for size %d", start, start+length, shape[dim]))
	}

	newShape := shape.Clone()
	newShape[dim] = length
	result, err := NewRaw(newShape, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	esize := x.DType().Size()
	inner := esize
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}

	src := x.Data()
	dst := result.Data()
	for o := 0; o < outer; o++ {
		srcOff := (o*shape[dim] + start) * inner
		dstOff := o * length * inner
		copy(dst[dstOff:dstOff+length*inner], src[srcOff:srcOff+length*inner])
	}

	return result
}

// AddScalar adds a scalar to each element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from each element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v - s })
}

// MulScalar multiplies each element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v * s })
}

// DivScalar divides each element by a scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	s := scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v / s })
}

// Neg negates each element.
func (m *MockBackend) Neg(x *RawTensor) *RawTensor {
	return m.unary(x, func(v float64) float64 { return -v })
}

// Abs returns the element-wise absolute value.
func (m *MockBackend) Abs(x *RawTensor) *RawTensor {
	return m.unary(x, math.Abs)
}

// Exp applies the element-wise exponential.
func (m *MockBackend) Exp(x *RawTensor) *RawTensor {
	return m.unary(x, math.Exp)
}

// Log applies the element-wise natural logarithm.
func (m *MockBackend) Log(x *RawTensor) *RawTensor {
	return m.unary(x, math.Log)
}

// Sqrt applies the element-wise square root.
func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	return m.unary(x, math.Sqrt)
}

// Pow raises each element to the given power.
func (m *MockBackend) Pow(x *RawTensor, exponent float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return math.Pow(v, exponent) })
}

// Greater compares element-wise: a > b.
func (m *MockBackend) Greater(a, b *RawTensor) *RawTensor {
	return m.compare(a, b, func(x, y float64) bool { return x > y })
}

// Lower compares element-wise: a < b.
func (m *MockBackend) Lower(a, b *RawTensor) *RawTensor {
	return m.compare(a, b, func(x, y float64) bool { return x < y })
}

// GreaterEqual compares element-wise: a >= b.
func (m *MockBackend) GreaterEqual(a, b *RawTensor) *RawTensor {
	return m.compare(a, b, func(x, y float64) bool { return x >= y })
}

// LowerEqual compares element-wise: a <= b.
func (m *MockBackend) LowerEqual(a, b *RawTensor) *RawTensor {
	return m.compare(a, b, func(x, y float64) bool { return x <= y })
}

// Equal compares element-wise: a == b.
func (m *MockBackend) Equal(a, b *RawTensor) *RawTensor {
	return m.compare(a, b, func(x, y float64) bool { return x == y })
}

// NotEqual compares element-wise: a != b.
func (m *MockBackend) NotEqual(a, b *RawTensor) *RawTensor {
	return m.compare(a, b, func(x, y float64) bool { return x != y })
}

// IsClose reports element-wise approximate equality.
func (m *MockBackend) IsClose(a, b *RawTensor, rtol, atol float64) *RawTensor {
	return m.compare(a, b, func(x, y float64) bool {
		if math.IsNaN(x) || math.IsNaN(y) {
			return false
		}
		return math.Abs(x-y) <= atol+rtol*math.Abs(y)
	})
}

// Or performs element-wise logical OR on bool tensors.
func (m *MockBackend) Or(a, b *RawTensor) *RawTensor {
	return m.boolBinary(a, b, func(x, y bool) bool { return x || y })
}

// And performs element-wise logical AND on bool tensors.
func (m *MockBackend) And(a, b *RawTensor) *RawTensor {
	return m.boolBinary(a, b, func(x, y bool) bool { return x && y })
}

// Not performs element-wise logical NOT on a bool tensor.
func (m *MockBackend) Not(x *RawTensor) *RawTensor {
	result, err := NewRaw(x.Shape(), Bool, m.Device())
	if err != nil {
		panic(err)
	}
	src := x.AsBool()
	dst := result.AsBool()
	for i, v := range src {
		dst[i] = !v
	}
	return result
}

func (m *MockBackend) boolBinary(a, b *RawTensor, op func(bool, bool) bool) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("bool op: shape mismatch: %v vs %v", a.Shape(), b.Shape()))
	}
	result, err := NewRaw(a.Shape(), Bool, m.Device())
	if err != nil {
		panic(err)
	}
	aData := a.AsBool()
	bData := b.AsBool()
	dst := result.AsBool()
	for i := range dst {
		dst[i] = op(aData[i], bData[i])
	}
	return result
}

// Sum reduces all elements to a scalar-shaped tensor.
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	return m.fullReduce(x, 0, func(acc, v float64) float64 { return acc + v })
}

// Mean reduces all elements to their scalar-shaped mean.
func (m *MockBackend) Mean(x *RawTensor) *RawTensor {
	sum := m.fullReduce(x, 0, func(acc, v float64) float64 { return acc + v })
	return m.DivScalar(sum, float64(x.NumElements()))
}

// Max reduces all elements to their scalar-shaped maximum.
func (m *MockBackend) Max(x *RawTensor) *RawTensor {
	return m.fullReduce(x, math.Inf(-1), math.Max)
}

// Min reduces all elements to their scalar-shaped minimum.
func (m *MockBackend) Min(x *RawTensor) *RawTensor {
	return m.fullReduce(x, math.Inf(1), math.Min)
}

// Prod reduces all elements to their scalar-shaped product.
func (m *MockBackend) Prod(x *RawTensor) *RawTensor {
	return m.fullReduce(x, 1, func(acc, v float64) float64 { return acc * v })
}

// ProdDim multiplies along a dimension.
func (m *MockBackend) ProdDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.dimReduce(x, dim, keepDim, 1, func(acc, v float64) float64 { return acc * v })
}

func (m *MockBackend) fullReduce(x *RawTensor, init float64, op func(acc, v float64) float64) *RawTensor {
	result, err := NewRaw(Shape{}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	acc := init
	for _, v := range m.toFloat64Slice(x) {
		acc = op(acc, v)
	}
	m.fromFloat64Slice([]float64{acc}, result)
	return result
}

// SumDim sums along a dimension.
func (m *MockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.dimReduce(x, dim, keepDim, 0, func(acc, v float64) float64 { return acc + v })
}

// MeanDim averages along a dimension.
func (m *MockBackend) MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	sum := m.dimReduce(x, dim, keepDim, 0, func(acc, v float64) float64 { return acc + v })
	dim = normalizeDim(dim, len(x.Shape()))
	return m.DivScalar(sum, float64(x.Shape()[dim]))
}

// MaxDim takes the maximum along a dimension.
func (m *MockBackend) MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.dimReduce(x, dim, keepDim, math.Inf(-1), math.Max)
}

// MinDim takes the minimum along a dimension.
func (m *MockBackend) MinDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.dimReduce(x, dim, keepDim, math.Inf(1), math.Min)
}

func (m *MockBackend) dimReduce(x *RawTensor, dim int, keepDim bool, init float64, op func(acc, v float64) float64) *RawTensor {
	shape := x.Shape()
	dim = normalizeDim(dim, len(shape))

	outShape := make(Shape, 0, len(shape))
	for i, d := range shape {
		if i == dim {
			if keepDim {
				outShape = append(outShape, 1)
			}
			continue
		}
		outShape = append(outShape, d)
	}

	result, err := NewRaw(outShape, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	inner := 1
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	n := shape[dim]

	src := m.toFloat64Slice(x)
	dst := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			acc := init
			for k := 0; k < n; k++ {
				acc = op(acc, src[(o*n+k)*inner+in])
			}
			dst[o*inner+in] = acc
		}
	}

	m.fromFloat64Slice(dst, result)
	return result
}

// Argmax returns indices of the maximum along a dimension.
func (m *MockBackend) Argmax(x *RawTensor, dim int) *RawTensor {
	return m.argReduce(x, dim, func(best, v float64) bool { return v > best })
}

// Argmin returns indices of the minimum along a dimension.
func (m *MockBackend) Argmin(x *RawTensor, dim int) *RawTensor {
	return m.argReduce(x, dim, func(best, v float64) bool { return v < best })
}

func (m *MockBackend) argReduce(x *RawTensor, dim int, better func(best, v float64) bool) *RawTensor {
	shape := x.Shape()
	dim = normalizeDim(dim, len(shape))

	outShape := make(Shape, 0, len(shape))
	for i, d := range shape {
		if i != dim {
			outShape = append(outShape, d)
		}
	}

	result, err := NewRaw(outShape, Int32, m.Device())
	if err != nil {
		panic(err)
	}

	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	inner := 1
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	n := shape[dim]

	src := m.toFloat64Slice(x)
	dst := result.AsInt32()
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			bestIdx := 0
			best := src[o*n*inner+in]
			for k := 1; k < n; k++ {
				v := src[(o*n+k)*inner+in]
				if better(best, v) {
					best = v
					bestIdx = k
				}
			}
			dst[o*inner+in] = int32(bestIdx)
		}
	}

	return result
}

// Diagonal is not implemented in the mock backend.
func (m *MockBackend) Diagonal(x *RawTensor, offset int) *RawTensor {
	panic("Diagonal not implemented in mock backend")
}

// Tril is not implemented in the mock backend.
func (m *MockBackend) Tril(x *RawTensor, k int) *RawTensor {
	panic("Tril not implemented in mock backend")
}

// Triu is not implemented in the mock backend.
func (m *MockBackend) Triu(x *RawTensor, k int) *RawTensor {
	panic("Triu not implemented in mock backend")
}

// Pad is not implemented in the mock backend.
func (m *MockBackend) Pad(x *RawTensor, widths [][2]int, mode PadMode, value any) *RawTensor {
	panic("Pad not implemented in mock backend")
}

// IndexSelect is not implemented in the mock backend.
func (m *MockBackend) IndexSelect(x *RawTensor, dim int, index *RawTensor) *RawTensor {
	panic("IndexSelect not implemented in mock backend")
}

// Where selects elements from x or y based on condition.
func (m *MockBackend) Where(condition, x, y *RawTensor) *RawTensor {
	outShape, _, err := BroadcastShapes(condition.Shape(), x.Shape())
	if err != nil {
		panic(err)
	}
	outShape, _, err = BroadcastShapes(outShape, y.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	cond := condition.AsBool()
	xData := m.toFloat64Slice(x)
	yData := m.toFloat64Slice(y)
	dst := make([]float64, outShape.NumElements())

	for i := range dst {
		cIdx := m.broadcastIndex(i, outShape, condition.Shape())
		if cond[cIdx] {
			dst[i] = xData[m.broadcastIndex(i, outShape, x.Shape())]
		} else {
			dst[i] = yData[m.broadcastIndex(i, outShape, y.Shape())]
		}
	}

	m.fromFloat64Slice(dst, result)
	return result
}

// NonzeroPad is not implemented in the mock backend.
func (m *MockBackend) NonzeroPad(condition *RawTensor, size int, fill int32) *RawTensor {
	panic("NonzeroPad not implemented in mock backend")
}

// Unique is not implemented in the mock backend.
func (m *MockBackend) Unique(x *RawTensor, size int) (values, firstIndex, inverse, counts *RawTensor) {
	panic("Unique not implemented in mock backend")
}

// UniqueRows is not implemented in the mock backend.
func (m *MockBackend) UniqueRows(x *RawTensor, size int) (values, firstIndex, inverse, counts *RawTensor) {
	panic("UniqueRows not implemented in mock backend")
}

// Cat concatenates tensors along a dimension.
func (m *MockBackend) Cat(tensors []*RawTensor, dim int) *RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}
	shape := tensors[0].Shape()
	dim = normalizeDim(dim, len(shape))

	total := 0
	for _, t := range tensors {
		total += t.Shape()[dim]
	}
	outShape := shape.Clone()
	outShape[dim] = total

	result, err := NewRaw(outShape, tensors[0].DType(), m.Device())
	if err != nil {
		panic(err)
	}

	esize := tensors[0].DType().Size()
	inner := esize
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}

	dst := result.Data()
	for o := 0; o < outer; o++ {
		dstOff := o * total * inner
		for _, t := range tensors {
			n := t.Shape()[dim]
			src := t.Data()
			copy(dst[dstOff:dstOff+n*inner], src[o*n*inner:(o+1)*n*inner])
			dstOff += n * inner
		}
	}

	return result
}

// Unsqueeze adds a dimension of size 1.
func (m *MockBackend) Unsqueeze(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape) + 1
	}
	newShape := make(Shape, 0, len(shape)+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return m.Reshape(x, newShape)
}

// Squeeze removes a dimension of size 1.
func (m *MockBackend) Squeeze(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	dim = normalizeDim(dim, len(shape))
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, not 1", dim, shape[dim]))
	}
	newShape := make(Shape, 0, len(shape)-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)
	return m.Reshape(x, newShape)
}

// Cast converts the tensor to a different data type.
func (m *MockBackend) Cast(x *RawTensor, dtype DataType) *RawTensor {
	result, err := NewRaw(x.Shape(), dtype, m.Device())
	if err != nil {
		panic(err)
	}

	if x.DType() == Bool {
		src := x.AsBool()
		data := make([]float64, len(src))
		for i, v := range src {
			if v {
				data[i] = 1
			}
		}
		m.fromFloat64Slice(data, result)
		return result
	}

	if dtype == Bool {
		src := m.toFloat64Slice(x)
		dst := result.AsBool()
		for i, v := range src {
			dst[i] = v != 0
		}
		return result
	}

	m.fromFloat64Slice(m.toFloat64Slice(x), result)
	return result
}

// broadcastIndex maps a flat index in the output shape to the flat index
// in an input shape, treating size-1 dimensions as broadcast.
func (m *MockBackend) broadcastIndex(flatIdx int, outShape, inShape Shape) int {
	outStrides := outShape.ComputeStrides()
	inStrides := inShape.ComputeStrides()
	offset := len(outShape) - len(inShape)

	inIdx := 0
	for dim := 0; dim < len(outShape); dim++ {
		coord := flatIdx / outStrides[dim]
		flatIdx %= outStrides[dim]

		inDim := dim - offset
		if inDim < 0 {
			continue
		}
		if inShape[inDim] == 1 {
			continue
		}
		inIdx += coord * inStrides[inDim]
	}
	return inIdx
}

// normalizeDim resolves negative dimension indices.
func normalizeDim(dim, ndim int) int {
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("invalid dimension %d for %dD tensor", dim, ndim))
	}
	return dim
}

// scalarToFloat64 converts any supported scalar type to float64.
func scalarToFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	case int32:
		return float64(s)
	case int64:
		return float64(s)
	case uint8:
		return float64(s)
	default:
		panic(fmt.Sprintf("unsupported scalar type: %T", scalar))
	}
}

func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Float64:
		src := t.AsFloat64()
		dst := make([]float64, len(src))
		copy(dst, src)
		return dst
	case Int32:
		src := t.AsInt32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Int64:
		src := t.AsInt64()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Uint8:
		src := t.AsUint8()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", t.DType()))
	}
}

func (m *MockBackend) fromFloat64Slice(data []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	case Int32:
		dst := t.AsInt32()
		for i, v := range data {
			dst[i] = int32(v)
		}
	case Int64:
		dst := t.AsInt64()
		for i, v := range data {
			dst[i] = int64(v)
		}
	case Uint8:
		dst := t.AsUint8()
		for i, v := range data {
			dst[i] = uint8(v)
		}
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", t.DType()))
	}
}
