package cpu

import "github.com/axial-ml/axial/internal/tensor"

// broadcastStrides returns strides for reading a tensor of shape from as if
// it had shape to. Size-1 dimensions and missing leading dimensions get
// stride 0 so every output index maps onto the single stored element.
func broadcastStrides(from, to tensor.Shape) []int {
	fromStrides := from.ComputeStrides()
	strides := make([]int, len(to))
	offset := len(to) - len(from)
	for i := range to {
		fi := i - offset
		if fi < 0 || from[fi] == 1 {
			strides[i] = 0
		} else {
			strides[i] = fromStrides[fi]
		}
	}
	return strides
}

// flatIndex converts a flat index in the output layout into a flat index in
// a broadcast operand layout. Both stride slices must have the same length.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	idx := 0
	for d := range outStrides {
		coord := outIdx / outStrides[d]
		outIdx %= outStrides[d]
		idx += coord * inStrides[d]
	}
	return idx
}
