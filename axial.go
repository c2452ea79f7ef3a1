// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package axial is a named-tensor library: every array axis carries a name
// and a size, and operations resolve axes by name instead of position.
//
// # Overview
//
// Positional tensor code breaks silently when dimension order changes.
// Axial makes the axis the unit of meaning:
//   - NamedArray[T, B] pairs a dense tensor with an ordered axis spec
//   - binary operations align and broadcast operands by axis name
//   - reductions, indexing and reshaping take axis names, not integers
//
// # Basic Usage
//
//	import (
//	    "github.com/axial-ml/axial"
//	    "github.com/axial-ml/axial/backend/cpu"
//	    "github.com/axial-ml/axial/random"
//	)
//
//	func main() {
//	    b := cpu.New()
//	    batch := axial.Axis{Name: "Batch", Size: 32}
//	    feature := axial.Axis{Name: "Feature", Size: 128}
//
//	    x := random.Normal[float32](random.Key(0), axial.Axes(batch, feature), b)
//	    mean := x.Mean(feature)    // axes: (Batch)
//	    centered := x.Sub(mean)    // mean broadcasts back by name
//	    _ = centered
//	}
//
// Axis order never has to be remembered: x.Sum(batch) and x.Sum(feature)
// are both valid, and x.Rearrange(feature, batch) moves axes by naming
// them.
//
// # Errors
//
// Construction and IO return errors; operations on mismatched axes panic
// with messages naming the offending axes, since they indicate program
// bugs rather than runtime conditions.
//
// # Backends
//
// Compute is pluggable through the tensor.Backend interface; backend/cpu
// is the reference implementation and backend/webgpu accelerates a
// float32 subset on the GPU.
package axial

import (
	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/tensor"
)

// Axis names one dimension of an array and fixes its size.
//
// Example:
//
//	batch := axial.Axis{Name: "Batch", Size: 32}
//	hidden := batch.Alias("Hidden").Resized(256)
type Axis = named.Axis

// AxisName selects an existing axis by name alone.
type AxisName = named.AxisName

// AxisSelector is satisfied by Axis and AxisName; operations taking a
// selector accept either an axis value or its bare name.
type AxisSelector = named.AxisSelector

// AxisSpec is an ordered axis list describing the layout of an array.
type AxisSpec = named.AxisSpec

// Ellipsis stands for "all remaining axes" in Rearrange.
//
// Example:
//
//	moved := x.Rearrange(axial.AxisName("Batch"), axial.Ellipsis)
var Ellipsis = named.Ellipsis

// NamedArray is a dense array whose dimensions are named axes. Axis i of
// the axis list always matches dimension i of the underlying tensor.
//
// Example:
//
//	x := axial.Zeros[float32](axial.Axes(batch, feature), b)
//	total := x.Sum(axial.AxisName("Feature"))
type NamedArray[T tensor.DType, B tensor.Backend] = named.NamedArray[T, B]

// AxisPad names one axis of a Pad call and the element counts to add
// before and after it.
type AxisPad = named.AxisPad

// UniqueResult bundles the views a Unique call produces.
type UniqueResult[T tensor.DType, B tensor.Backend] = named.UniqueResult[T, B]

// Axes builds an AxisSpec from axes in order.
func Axes(axes ...Axis) AxisSpec {
	return named.Axes(axes...)
}

// Named wraps a positional tensor with axis names. The axes must match
// the tensor's shape dimension by dimension.
func Named[T tensor.DType, B tensor.Backend](t *tensor.Tensor[T, B], axes ...Axis) (*NamedArray[T, B], error) {
	return named.Named[T, B](t, axes...)
}

// Zeros creates an array of zeros with the given axes.
func Zeros[T tensor.DType, B tensor.Backend](axes AxisSpec, b B) *NamedArray[T, B] {
	return named.Zeros[T, B](axes, b)
}

// Ones creates an array of ones with the given axes.
func Ones[T tensor.DType, B tensor.Backend](axes AxisSpec, b B) *NamedArray[T, B] {
	return named.Ones[T, B](axes, b)
}

// Full creates an array filled with value.
func Full[T tensor.DType, B tensor.Backend](axes AxisSpec, value T, b B) *NamedArray[T, B] {
	return named.Full[T, B](axes, value, b)
}

// Arange creates a 1-axis array counting from start in steps of step.
//
// Example:
//
//	idx := axial.Arange[int32](axial.Axis{Name: "Pos", Size: 8}, 0, 1, b)
func Arange[T tensor.DType, B tensor.Backend](ax Axis, start, step T, b B) *NamedArray[T, B] {
	return named.Arange[T, B](ax, start, step, b)
}

// Eye creates a 2-axis array with ones where the positions along ax1 and
// ax2 agree.
func Eye[T tensor.DType, B tensor.Backend](ax1, ax2 Axis, b B) *NamedArray[T, B] {
	return named.Eye[T, B](ax1, ax2, b)
}

// FromSlice creates an array from data laid out row-major over the axes.
//
// Example:
//
//	x, err := axial.FromSlice([]float32{1, 2, 3, 4, 5, 6}, axial.Axes(row, col), b)
func FromSlice[T tensor.DType, B tensor.Backend](data []T, axes AxisSpec, b B) (*NamedArray[T, B], error) {
	return named.FromSlice[T, B](data, axes, b)
}

// Where selects from x where cond holds and from y elsewhere, aligning
// all three operands by axis name.
func Where[T tensor.DType, B tensor.Backend](cond *NamedArray[bool, B], x, y *NamedArray[T, B]) *NamedArray[T, B] {
	return named.Where[T, B](cond, x, y)
}

// WhereScalar selects xv where cond holds and yv elsewhere.
func WhereScalar[T tensor.DType, B tensor.Backend](cond *NamedArray[bool, B], xv, yv T) *NamedArray[T, B] {
	return named.WhereScalar[T, B](cond, xv, yv)
}

// Nonzero returns, per axis of cond, the coordinates of the true
// elements along newAxis, padding with fill past the hit count.
func Nonzero[B tensor.Backend](cond *NamedArray[bool, B], newAxis Axis, fill int32) []*NamedArray[int32, B] {
	return named.Nonzero[B](cond, newAxis, fill)
}
