package cpu

import (
	"fmt"
	"sort"

	"github.com/axial-ml/axial/internal/tensor"
)

// Unique returns the sorted distinct elements of the flattened input padded
// up to size, along with the first-occurrence index of each distinct value,
// the inverse mapping from input positions to distinct slots, and the count
// of each distinct value. Padding repeats the smallest value; index and
// count pads stay zero. Distinct values beyond size are dropped.
func (cpu *CPUBackend) Unique(x *tensor.RawTensor, size int) (values, firstIndex, inverse, counts *tensor.RawTensor) {
	if size <= 0 {
		panic(fmt.Sprintf("unique: size must be positive, got %d", size))
	}
	switch x.DType() {
	case tensor.Float32:
		return uniqueKernel(x, size, rawData[float32](x))
	case tensor.Float64:
		return uniqueKernel(x, size, rawData[float64](x))
	case tensor.Int32:
		return uniqueKernel(x, size, rawData[int32](x))
	case tensor.Int64:
		return uniqueKernel(x, size, rawData[int64](x))
	case tensor.Uint8:
		return uniqueKernel(x, size, rawData[uint8](x))
	default:
		panic(fmt.Sprintf("unique: unsupported dtype %s", x.DType()))
	}
}

func uniqueKernel[T number](x *tensor.RawTensor, size int, src []T) (values, firstIndex, inverse, counts *tensor.RawTensor) {
	n := len(src)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Ties break on the original index so the first element of each run of
	// equal values carries the first-occurrence index.
	sort.Slice(order, func(i, j int) bool {
		a, b := src[order[i]], src[order[j]]
		if a != b {
			return a < b
		}
		return order[i] < order[j]
	})

	values = newRaw("unique", tensor.Shape{size}, x.DType())
	firstIndex = newRaw("unique", tensor.Shape{size}, tensor.Int32)
	inverse = newRaw("unique", tensor.Shape{n}, tensor.Int32)
	counts = newRaw("unique", tensor.Shape{size}, tensor.Int32)
	vals := rawData[T](values)
	first := firstIndex.AsInt32()
	inv := inverse.AsInt32()
	cnt := counts.AsInt32()

	distinct := -1
	for k, idx := range order {
		if k == 0 || src[idx] != src[order[k-1]] {
			distinct++
			if distinct < size {
				vals[distinct] = src[idx]
				first[distinct] = int32(idx) //nolint:gosec // G115: element counts stay well under 2^31
			}
		}
		slot := min(distinct, size-1)
		inv[idx] = int32(slot) //nolint:gosec // G115: size stays well under 2^31
		if distinct < size {
			cnt[distinct]++
		}
	}

	for k := distinct + 1; k < size; k++ {
		vals[k] = vals[0]
	}
	return values, firstIndex, inverse, counts
}

// UniqueRows is Unique over the rows of a 2-D input, ordered
// lexicographically. values has shape (size, width); row pads repeat the
// smallest row.
func (cpu *CPUBackend) UniqueRows(x *tensor.RawTensor, size int) (values, firstIndex, inverse, counts *tensor.RawTensor) {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("uniquerows: expected 2D tensor, got %dD", len(shape)))
	}
	if size <= 0 {
		panic(fmt.Sprintf("uniquerows: size must be positive, got %d", size))
	}
	switch x.DType() {
	case tensor.Float32:
		return uniqueRowsKernel(x, size, rawData[float32](x), shape[0], shape[1])
	case tensor.Float64:
		return uniqueRowsKernel(x, size, rawData[float64](x), shape[0], shape[1])
	case tensor.Int32:
		return uniqueRowsKernel(x, size, rawData[int32](x), shape[0], shape[1])
	case tensor.Int64:
		return uniqueRowsKernel(x, size, rawData[int64](x), shape[0], shape[1])
	case tensor.Uint8:
		return uniqueRowsKernel(x, size, rawData[uint8](x), shape[0], shape[1])
	default:
		panic(fmt.Sprintf("uniquerows: unsupported dtype %s", x.DType()))
	}
}

func uniqueRowsKernel[T number](x *tensor.RawTensor, size int, src []T, rows, width int) (values, firstIndex, inverse, counts *tensor.RawTensor) {
	row := func(i int) []T { return src[i*width : (i+1)*width] }
	cmpRows := func(a, b []T) int {
		for c := range a {
			if a[c] != b[c] {
				if a[c] < b[c] {
					return -1
				}
				return 1
			}
		}
		return 0
	}

	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		if c := cmpRows(row(order[i]), row(order[j])); c != 0 {
			return c < 0
		}
		return order[i] < order[j]
	})

	values = newRaw("uniquerows", tensor.Shape{size, width}, x.DType())
	firstIndex = newRaw("uniquerows", tensor.Shape{size}, tensor.Int32)
	inverse = newRaw("uniquerows", tensor.Shape{rows}, tensor.Int32)
	counts = newRaw("uniquerows", tensor.Shape{size}, tensor.Int32)
	vals := rawData[T](values)
	first := firstIndex.AsInt32()
	inv := inverse.AsInt32()
	cnt := counts.AsInt32()

	distinct := -1
	for k, idx := range order {
		if k == 0 || cmpRows(row(idx), row(order[k-1])) != 0 {
			distinct++
			if distinct < size {
				copy(vals[distinct*width:(distinct+1)*width], row(idx))
				first[distinct] = int32(idx) //nolint:gosec // G115: row counts stay well under 2^31
			}
		}
		slot := min(distinct, size-1)
		inv[idx] = int32(slot) //nolint:gosec // G115: size stays well under 2^31
		if distinct < size {
			cnt[distinct]++
		}
	}

	for k := distinct + 1; k < size; k++ {
		copy(vals[k*width:(k+1)*width], vals[:width])
	}
	return values, firstIndex, inverse, counts
}
