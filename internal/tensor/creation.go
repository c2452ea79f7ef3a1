package tensor

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	t := tensor.Ones[float64](Shape{2, 3}, backend)
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	var dummy T
	var one any
	switch any(dummy).(type) {
	case float32:
		one = float32(1)
	case float64:
		one = float64(1)
	case int32:
		one = int32(1)
	case int64:
		one = int64(1)
	case uint8:
		one = uint8(1)
	case bool:
		one = true
	}

	for i := range data {
		data[i] = one.(T)
	}
	return t
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, float32(3.14), backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Arange creates a 1-D tensor with evenly spaced values in [start, end).
// The step defaults to one; the element count is ceil((end-start)/step).
//
// Example:
//
//	t := tensor.Arange[int32](0, 10, backend) // [0, 1, ..., 9]
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	var dummy T
	count := 0
	switch any(dummy).(type) {
	case float32:
		count = int(any(end).(float32) - any(start).(float32))
		if float32(count) < any(end).(float32)-any(start).(float32) {
			count++
		}
	case float64:
		count = int(any(end).(float64) - any(start).(float64))
		if float64(count) < any(end).(float64)-any(start).(float64) {
			count++
		}
	case int32:
		count = int(any(end).(int32) - any(start).(int32))
	case int64:
		count = int(any(end).(int64) - any(start).(int64))
	case uint8:
		count = int(any(end).(uint8) - any(start).(uint8))
	default:
		panic("arange: unsupported type")
	}

	if count <= 0 {
		panic("arange: end must be greater than start")
	}

	t := Zeros[T, B](Shape{count}, b)
	data := t.Data()

	switch any(dummy).(type) {
	case float32:
		s := any(start).(float32)
		for i := range data {
			data[i] = any(s + float32(i)).(T)
		}
	case float64:
		s := any(start).(float64)
		for i := range data {
			data[i] = any(s + float64(i)).(T)
		}
	case int32:
		s := any(start).(int32)
		for i := range data {
			data[i] = any(s + int32(i)).(T)
		}
	case int64:
		s := any(start).(int64)
		for i := range data {
			data[i] = any(s + int64(i)).(T)
		}
	case uint8:
		s := any(start).(uint8)
		for i := range data {
			data[i] = any(s + uint8(i)).(T)
		}
	}

	return t
}

// Eye creates a 2-D identity tensor with n rows and m columns.
//
// Example:
//
//	t := tensor.Eye[float32](3, 3, backend)
func Eye[T DType, B Backend](n, m int, b B) *Tensor[T, B] {
	t := Zeros[T, B](Shape{n, m}, b)
	data := t.Data()

	var dummy T
	var one any
	switch any(dummy).(type) {
	case float32:
		one = float32(1)
	case float64:
		one = float64(1)
	case int32:
		one = int32(1)
	case int64:
		one = int64(1)
	case uint8:
		one = uint8(1)
	case bool:
		one = true
	}

	for i := 0; i < n && i < m; i++ {
		data[i*m+i] = one.(T)
	}
	return t
}
