package named

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd_AlignsByName(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, H, W)
	// Same data transposed: alignment must happen by name, not position.
	y := mk(t, []float64{10, 40, 20, 50, 30, 60}, W, H)

	sum := x.Add(y)
	assert.Equal(t, []Axis{H, W}, sum.Axes(), "left operand fixes the layout")
	assert.Equal(t, []float64{11, 22, 33, 44, 55, 66}, sum.Data())
}

func TestAdd_BroadcastsSubset(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, H, W)
	row := mk(t, []float64{100, 200, 300}, W)

	sum := x.Add(row)
	assert.Equal(t, []Axis{H, W}, sum.Axes())
	assert.Equal(t, []float64{101, 202, 303, 104, 205, 306}, sum.Data())

	// The superset operand names the result even from the right.
	flipped := row.Add(x)
	assert.Equal(t, []Axis{H, W}, flipped.Axes())
	assert.Equal(t, sum.Data(), flipped.Data())
}

func TestAdd_ScalarOperandBroadcasts(t *testing.T) {
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3}, W)
	one := mk(t, []float64{10})

	sum := x.Add(one)
	assert.Equal(t, []Axis{W}, sum.Axes())
	assert.Equal(t, []float64{11, 12, 13}, sum.Data())
}

func TestAdd_DisjointPanics(t *testing.T) {
	x := mk(t, []float64{1, 2}, Axis{Name: "Height", Size: 2})
	y := mk(t, []float64{1, 2, 3}, Axis{Name: "Width", Size: 3})

	assert.PanicsWithValue(t,
		"axial: add: cannot broadcast [Height=2] with [Width=3]: neither axis set contains the other",
		func() { x.Add(y) })
}

func TestAdd_SizeMismatchPanics(t *testing.T) {
	x := mk(t, []float64{1, 2}, Axis{Name: "Height", Size: 2})
	y := mk(t, []float64{1, 2, 3}, Axis{Name: "Height", Size: 3})

	assert.PanicsWithValue(t,
		"axial: add: axis Height=2 does not match Height=3",
		func() { x.Add(y) })
}

func TestBroadcastTo(t *testing.T) {
	H := Axis{Name: "Height", Size: 3}
	W := Axis{Name: "Width", Size: 2}
	x := mk(t, []float64{1, 2}, W)

	out := x.BroadcastTo(H, W)
	assert.Equal(t, []Axis{H, W}, out.Axes())
	assert.Equal(t, []float64{1, 2, 1, 2, 1, 2}, out.Data())
}

func TestBroadcastTo_ReordersExisting(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 2}
	x := mk(t, []float64{1, 2, 3, 4}, H, W)

	out := x.BroadcastTo(W, H)
	assert.Equal(t, []Axis{W, H}, out.Axes())
	assert.Equal(t, []float64{1, 3, 2, 4}, out.Data())
}

func TestBroadcastTo_Errors(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	x := mk(t, []float64{1, 2}, H)

	t.Run("missing axis", func(t *testing.T) {
		assert.Panics(t, func() { x.BroadcastTo(Axis{Name: "Width", Size: 3}) })
	})
	t.Run("size mismatch", func(t *testing.T) {
		assert.Panics(t, func() { x.BroadcastTo(Axis{Name: "Height", Size: 4}) })
	})
}

func TestBroadcastAxis(t *testing.T) {
	W := Axis{Name: "Width", Size: 2}
	B := Axis{Name: "Batch", Size: 3}
	x := mk(t, []float64{1, 2}, W)

	out := x.BroadcastAxis(B)
	assert.Equal(t, []Axis{B, W}, out.Axes())
	assert.Equal(t, []float64{1, 2, 1, 2, 1, 2}, out.Data())

	assert.Panics(t, func() { x.BroadcastAxis(W) }, "existing axis cannot be added again")
}
