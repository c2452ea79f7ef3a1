package tensor

import (
	"math"
	"testing"
)

// Helpers shared by the package tests. The scalar asserts keep the older
// call sites working; new tests prefer the whole-slice checks.

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if math.Abs(float64(expected-actual)) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func checkFloats(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func checkBools(t *testing.T, got, want []bool) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func checkInt32s(t *testing.T, got, want []int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func mustFromSlice[T DType](t *testing.T, b *MockBackend, data []T, shape Shape) *Tensor[T, *MockBackend] {
	t.Helper()
	ten, err := FromSlice(data, shape, b)
	if err != nil {
		t.Fatalf("FromSlice(%v): %v", shape, err)
	}
	return ten
}

func TestDataTypeProperties(t *testing.T) {
	tests := []struct {
		dtype   DataType
		size    int
		name    string
		isFloat bool
		isInt   bool
	}{
		{Float32, 4, "float32", true, false},
		{Float64, 8, "float64", true, false},
		{Int32, 4, "int32", false, true},
		{Int64, 8, "int64", false, true},
		{Uint8, 1, "uint8", false, false},
		{Bool, 1, "bool", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dtype.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.dtype.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.dtype.IsFloat(); got != tt.isFloat {
				t.Errorf("IsFloat() = %v, want %v", got, tt.isFloat)
			}
			if got := tt.dtype.IsInt(); got != tt.isInt {
				t.Errorf("IsInt() = %v, want %v", got, tt.isInt)
			}
		})
	}
}

func TestDataTypeOf(t *testing.T) {
	if got := DataTypeOf[float32](); got != Float32 {
		t.Errorf("DataTypeOf[float32]() = %v", got)
	}
	if got := DataTypeOf[float64](); got != Float64 {
		t.Errorf("DataTypeOf[float64]() = %v", got)
	}
	if got := DataTypeOf[int32](); got != Int32 {
		t.Errorf("DataTypeOf[int32]() = %v", got)
	}
	if got := DataTypeOf[int64](); got != Int64 {
		t.Errorf("DataTypeOf[int64]() = %v", got)
	}
	if got := DataTypeOf[uint8](); got != Uint8 {
		t.Errorf("DataTypeOf[uint8]() = %v", got)
	}
	if got := DataTypeOf[bool](); got != Bool {
		t.Errorf("DataTypeOf[bool]() = %v", got)
	}
}

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{7}, 7},
		{Shape{1, 9}, 9},
		{Shape{2, 2, 2}, 8},
		{Shape{3, 4, 5}, 60},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	for _, s := range []Shape{{}, {1}, {5, 3}, {2, 2, 2}} {
		if err := s.Validate(); err != nil {
			t.Errorf("%v.Validate() = %v, want nil", s, err)
		}
	}
	for _, s := range []Shape{{0}, {2, 0, 4}, {-3}, {6, -1}} {
		if err := s.Validate(); err == nil {
			t.Errorf("%v.Validate() = nil, want error", s)
		}
	}
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		a, b Shape
		want bool
	}{
		{Shape{2, 3}, Shape{2, 3}, true},
		{Shape{}, Shape{}, true},
		{Shape{2, 3}, Shape{3, 2}, false},
		{Shape{2, 3}, Shape{2, 3, 1}, false},
		{Shape{4}, Shape{}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestShapePermute(t *testing.T) {
	s := Shape{4, 2, 5}
	if got := s.Permute([]int{2, 0, 1}); !got.Equal(Shape{5, 4, 2}) {
		t.Errorf("Permute([2 0 1]) = %v, want [5 4 2]", got)
	}
	if got := s.Permute([]int{2, 1, 0}); !got.Equal(Shape{5, 2, 4}) {
		t.Errorf("Permute([2 1 0]) = %v, want [5 2 4]", got)
	}
}

func TestShapeComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{6}, []int{1}},
		{Shape{4, 5}, []int{5, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}
	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Shape
		want    Shape
		stretch bool
	}{
		{"same shape", Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{"scalar left", Shape{}, Shape{3, 2}, Shape{3, 2}, true},
		{"rank promotion", Shape{4, 3}, Shape{3}, Shape{4, 3}, true},
		{"column times row", Shape{4, 1}, Shape{1, 5}, Shape{4, 5}, true},
		{"middle one", Shape{3, 1, 6}, Shape{3, 4, 6}, Shape{3, 4, 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stretch, err := BroadcastShapes(tt.a, tt.b)
			if err != nil {
				t.Fatalf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			}
			assertEqualShape(t, tt.want, got, "broadcast shape")
			if stretch != tt.stretch {
				t.Errorf("needsBroadcast = %v, want %v", stretch, tt.stretch)
			}
		})
	}

	incompatible := []struct{ a, b Shape }{
		{Shape{3}, Shape{4}},
		{Shape{2, 5}, Shape{2, 4}},
	}
	for _, tt := range incompatible {
		if _, _, err := BroadcastShapes(tt.a, tt.b); err == nil {
			t.Errorf("BroadcastShapes(%v, %v) = nil error, want incompatibility", tt.a, tt.b)
		}
	}
}

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{3, 2}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	assertEqualShape(t, Shape{3, 2}, raw.Shape(), "shape")
	if raw.DType() != Float64 {
		t.Errorf("DType() = %v, want float64", raw.DType())
	}
	if raw.Device() != CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 48 {
		t.Errorf("ByteSize() = %d, want 48", raw.ByteSize())
	}
	if s := raw.Strides(); len(s) != 2 || s[0] != 2 || s[1] != 1 {
		t.Errorf("Strides() = %v, want [2 1]", s)
	}
	for i, v := range raw.AsFloat64() {
		if v != 0 {
			t.Fatalf("element %d = %v, fresh buffer should be zeroed", i, v)
		}
	}

	for _, s := range []Shape{{0}, {1, -1}} {
		if _, err := NewRaw(s, Float32, CPU); err == nil {
			t.Errorf("NewRaw(%v) succeeded, want invalid shape error", s)
		}
	}
}

func TestRawTensorTypedViews(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	view := raw.AsFloat32()
	view[0] = 1.5
	view[3] = -2.5

	// The view aliases the buffer, so a second view sees the writes.
	again := raw.AsFloat32()
	if again[0] != 1.5 || again[3] != -2.5 {
		t.Errorf("second view = %v, want writes from the first view", again)
	}
	if len(raw.Data()) != 16 {
		t.Errorf("Data() length = %d, want 16 bytes", len(raw.Data()))
	}

	defer func() {
		if recover() == nil {
			t.Error("AsInt64 on a float32 tensor should panic")
		}
	}()
	raw.AsInt64()
}

func TestRawTensorRefCounting(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Int32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if !raw.IsUnique() {
		t.Fatal("fresh tensor should own its buffer")
	}

	clone := raw.Clone()
	if raw.IsUnique() || clone.IsUnique() {
		t.Error("buffer is shared after Clone, neither side should be unique")
	}

	clone.AsInt32()[1] = 7
	if raw.AsInt32()[1] != 7 {
		t.Error("clone writes should be visible through the original")
	}

	clone.Release()
	if !raw.IsUnique() {
		t.Error("after releasing the clone the original should be unique again")
	}
}

func TestZerosOnesFull(t *testing.T) {
	b := NewMockBackend()

	z := Zeros[int64](Shape{2, 2}, b)
	if z.DType() != Int64 {
		t.Errorf("Zeros dtype = %v, want int64", z.DType())
	}
	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("Zeros element %d = %d", i, v)
		}
	}

	o := Ones[float32](Shape{3}, b)
	checkFloats(t, o.Data(), []float32{1, 1, 1})

	f := Full(Shape{2, 3}, float64(0.25), b)
	if f.DType() != Float64 {
		t.Errorf("Full dtype = %v, want float64", f.DType())
	}
	for i, v := range f.Data() {
		if v != 0.25 {
			t.Errorf("Full element %d = %v, want 0.25", i, v)
		}
	}
}

func TestArange(t *testing.T) {
	b := NewMockBackend()

	ints := Arange[int32](3, 9, b)
	assertEqualShape(t, Shape{6}, ints.Shape(), "Arange shape")
	checkInt32s(t, ints.Data(), []int32{3, 4, 5, 6, 7, 8})

	// A fractional span rounds the element count up.
	floats := Arange[float32](0, 2.5, b)
	checkFloats(t, floats.Data(), []float32{0, 1, 2})
}

func TestEye(t *testing.T) {
	b := NewMockBackend()

	square := Eye[int32](3, 3, b)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := int32(0)
			if i == j {
				want = 1
			}
			if got := square.At(i, j); got != want {
				t.Errorf("square[%d,%d] = %d, want %d", i, j, got, want)
			}
		}
	}

	wide := Eye[float32](2, 4, b)
	assertEqualShape(t, Shape{2, 4}, wide.Shape(), "Eye shape")
	checkFloats(t, wide.Data(), []float32{1, 0, 0, 0, 0, 1, 0, 0})
}

func TestFromSlice(t *testing.T) {
	b := NewMockBackend()

	got, err := FromSlice([]float32{2, 4, 8, 16, 32, 64}, Shape{3, 2}, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	assertEqualShape(t, Shape{3, 2}, got.Shape(), "shape")
	assertEqualFloat32(t, 16, got.At(1, 1), "At(1, 1)")

	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}, b); err == nil {
		t.Error("FromSlice with 3 elements for a 4-element shape should fail")
	}
}

func TestAtSetItem(t *testing.T) {
	b := NewMockBackend()
	grid := mustFromSlice(t, b, []int32{10, 11, 12, 20, 21, 22}, Shape{2, 3})

	if got := grid.At(1, 2); got != 22 {
		t.Errorf("At(1, 2) = %d, want 22", got)
	}
	grid.Set(99, 0, 1)
	if got := grid.At(0, 1); got != 99 {
		t.Errorf("At(0, 1) after Set = %d, want 99", got)
	}

	scalar := Full(Shape{2}, float32(3), b).Sum()
	assertEqualShape(t, Shape{}, scalar.Shape(), "Sum result shape")
	assertEqualFloat32(t, 6, scalar.Item(), "Item")

	defer func() {
		if recover() == nil {
			t.Error("Item on a non-scalar tensor should panic")
		}
	}()
	grid.Item()
}

func TestElementwiseArithmetic(t *testing.T) {
	b := NewMockBackend()
	x := mustFromSlice(t, b, []float32{3, 6, 9, 12}, Shape{2, 2})
	y := mustFromSlice(t, b, []float32{1, 2, 3, 4}, Shape{2, 2})

	checkFloats(t, x.Add(y).Data(), []float32{4, 8, 12, 16})
	checkFloats(t, x.Sub(y).Data(), []float32{2, 4, 6, 8})
	checkFloats(t, x.Mul(y).Data(), []float32{3, 12, 27, 48})
}

func TestBroadcasting(t *testing.T) {
	b := NewMockBackend()

	t.Run("row vector", func(t *testing.T) {
		m := mustFromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
		row := mustFromSlice(t, b, []float32{10, 20, 30}, Shape{3})

		sum := m.Add(row)
		assertEqualShape(t, Shape{2, 3}, sum.Shape(), "shape")
		checkFloats(t, sum.Data(), []float32{11, 22, 33, 14, 25, 36})
	})

	t.Run("column times row", func(t *testing.T) {
		col := mustFromSlice(t, b, []float32{1, 2, 3}, Shape{3, 1})
		row := mustFromSlice(t, b, []float32{10, 100}, Shape{1, 2})

		prod := col.Mul(row)
		assertEqualShape(t, Shape{3, 2}, prod.Shape(), "shape")
		checkFloats(t, prod.Data(), []float32{10, 100, 20, 200, 30, 300})
	})
}

func TestMatMul(t *testing.T) {
	b := NewMockBackend()
	lhs := mustFromSlice(t, b, []float32{1, 0, 2, 0, 3, 1}, Shape{2, 3})
	rhs := mustFromSlice(t, b, []float32{4, 1, 2, 2, 1, 3}, Shape{3, 2})

	out := lhs.MatMul(rhs)
	assertEqualShape(t, Shape{2, 2}, out.Shape(), "MatMul shape")
	checkFloats(t, out.Data(), []float32{6, 7, 7, 9})
}

func TestReshape(t *testing.T) {
	b := NewMockBackend()
	flat := mustFromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, Shape{6})

	grid := flat.Reshape(2, 3)
	assertEqualShape(t, Shape{2, 3}, grid.Shape(), "Reshape(2, 3)")
	assertEqualFloat32(t, 6, grid.At(1, 2), "At(1, 2)")

	// Reshaping a one-element tensor with no dims yields a scalar.
	one := mustFromSlice(t, b, []float32{8}, Shape{1})
	assertEqualFloat32(t, 8, one.Reshape().Item(), "scalar Item")
}

func TestTranspose(t *testing.T) {
	b := NewMockBackend()
	m := mustFromSlice(t, b, []float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	flipped := m.Transpose()
	assertEqualShape(t, Shape{3, 2}, flipped.Shape(), "Transpose()")
	checkFloats(t, flipped.Data(), []float32{1, 4, 2, 5, 3, 6})

	cube := mustFromSlice(t, b, []float32{1, 2, 3, 4, 5, 6, 7, 8}, Shape{2, 2, 2})
	swapped := cube.Transpose(0, 2, 1)
	assertEqualShape(t, Shape{2, 2, 2}, swapped.Shape(), "Transpose(0, 2, 1)")
	checkFloats(t, swapped.Data(), []float32{1, 3, 2, 4, 5, 7, 6, 8})
}

func TestCloneSharesBuffer(t *testing.T) {
	b := NewMockBackend()
	orig := mustFromSlice(t, b, []int32{5, 6, 7}, Shape{3})

	dup := orig.Clone()
	if orig.Raw().IsUnique() {
		t.Error("original should share its buffer after Clone")
	}

	dup.Set(42, 0)
	if got := orig.At(0); got != 42 {
		t.Errorf("At(0) = %d, clone writes should alias the original", got)
	}

	dup.Raw().Release()
	if !orig.Raw().IsUnique() {
		t.Error("original should be unique after the clone is released")
	}
}
