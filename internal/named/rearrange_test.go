package named

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRearrange(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, H, W)

	got := x.Rearrange(W, H)
	assert.Equal(t, []Axis{W, H}, got.Axes())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got.Data())

	same := x.Rearrange(H, W)
	assert.Equal(t, x.Data(), same.Data())
}

func TestRearrange_Ellipsis(t *testing.T) {
	A := Axis{Name: "A", Size: 2}
	B := Axis{Name: "B", Size: 2}
	C := Axis{Name: "C", Size: 2}
	x := mk(t, []float64{0, 1, 2, 3, 4, 5, 6, 7}, A, B, C)

	front := x.Rearrange(C, Ellipsis)
	assert.Equal(t, []Axis{C, A, B}, front.Axes())
	assert.Equal(t, []float64{0, 2, 4, 6, 1, 3, 5, 7}, front.Data())

	back := x.Rearrange(Ellipsis, AxisName("A"))
	assert.Equal(t, []Axis{B, C, A}, back.Axes())
	assert.Equal(t, []float64{0, 4, 1, 5, 2, 6, 3, 7}, back.Data())

	identity := x.Rearrange(Ellipsis)
	assert.Equal(t, x.Axes(), identity.Axes())
	assert.Equal(t, x.Data(), identity.Data())
}

func TestRearrange_Errors(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 2}
	x := mk(t, []float64{1, 2, 3, 4}, H, W)

	t.Run("double ellipsis", func(t *testing.T) {
		assert.Panics(t, func() { x.Rearrange(Ellipsis, H, Ellipsis) })
	})
	t.Run("duplicate axis", func(t *testing.T) {
		assert.Panics(t, func() { x.Rearrange(H, AxisName("Height")) })
	})
	t.Run("unknown axis", func(t *testing.T) {
		assert.Panics(t, func() { x.Rearrange(AxisName("Depth"), Ellipsis) })
	})
	t.Run("incomplete without ellipsis", func(t *testing.T) {
		assert.PanicsWithValue(t,
			"axial: rearrange: selectors cover 1 of 2 axes (use Ellipsis for the rest)",
			func() { x.Rearrange(H) })
	})
}

func TestRename(t *testing.T) {
	Pos := Axis{Name: "Pos", Size: 2}
	Embed := Axis{Name: "Embed", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, Pos, Embed)

	got := x.Rename(Pos, "KeyPos")
	assert.Equal(t, []Axis{{Name: "KeyPos", Size: 2}, Embed}, got.Axes())
	assert.Equal(t, x.Data(), got.Data())

	// The receiver keeps its original name.
	assert.Equal(t, []Axis{Pos, Embed}, x.Axes())
}

func TestRename_Errors(t *testing.T) {
	Pos := Axis{Name: "Pos", Size: 2}
	Embed := Axis{Name: "Embed", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, Pos, Embed)

	t.Run("unknown axis", func(t *testing.T) {
		assert.Panics(t, func() { x.Rename(AxisName("Depth"), "KeyPos") })
	})
	t.Run("collision", func(t *testing.T) {
		assert.Panics(t, func() { x.Rename(Pos, "Embed") })
	})
}

func TestFlatten(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, H, W)

	flat := x.Flatten("Pixel", H, W)
	assert.Equal(t, []Axis{{Name: "Pixel", Size: 6}}, flat.Axes())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, flat.Data())

	// Selector order fixes the element order inside the merged axis.
	swapped := x.Flatten("Pixel", W, H)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, swapped.Data())
}

func TestFlatten_NonAdjacentAxes(t *testing.T) {
	A := Axis{Name: "A", Size: 2}
	B := Axis{Name: "B", Size: 2}
	C := Axis{Name: "C", Size: 2}
	x := mk(t, []float64{0, 1, 2, 3, 4, 5, 6, 7}, A, B, C)

	got := x.Flatten("AC", A, C)
	assert.Equal(t, []Axis{{Name: "AC", Size: 4}, B}, got.Axes(), "merged axis sits where the earliest input axis sat")
	assert.Equal(t, []float64{0, 2, 1, 3, 4, 6, 5, 7}, got.Data())
}

func TestFlatten_NameCollisionPanics(t *testing.T) {
	A := Axis{Name: "A", Size: 2}
	B := Axis{Name: "B", Size: 2}
	C := Axis{Name: "C", Size: 2}
	x := mk(t, []float64{0, 1, 2, 3, 4, 5, 6, 7}, A, B, C)

	assert.Panics(t, func() { x.Flatten("B", A, C) })

	// Reusing one of the merged names is allowed.
	reused := x.Flatten("A", A, C)
	assert.Equal(t, []Axis{{Name: "A", Size: 4}, B}, reused.Axes())
}

func TestUnflatten(t *testing.T) {
	P := Axis{Name: "Pixel", Size: 6}
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, P)

	got := x.Unflatten(P, H, W)
	assert.Equal(t, []Axis{H, W}, got.Axes())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got.Data())
}

func TestFlattenUnflatten_RoundTrip(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, H, W)

	back := x.Flatten("Pixel", H, W).Unflatten(AxisName("Pixel"), H, W)
	assert.Equal(t, x.Axes(), back.Axes())
	assert.Equal(t, x.Data(), back.Data())
}

func TestUnflatten_Errors(t *testing.T) {
	P := Axis{Name: "Pixel", Size: 6}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, P)

	t.Run("size mismatch", func(t *testing.T) {
		assert.Panics(t, func() {
			x.Unflatten(P, Axis{Name: "H", Size: 2}, Axis{Name: "W", Size: 2})
		})
	})
	t.Run("duplicate part names", func(t *testing.T) {
		assert.Panics(t, func() {
			x.Unflatten(P, Axis{Name: "Q", Size: 2}, Axis{Name: "Q", Size: 3})
		})
	})
	t.Run("collision with remaining axis", func(t *testing.T) {
		H := Axis{Name: "Height", Size: 2}
		W := Axis{Name: "Width", Size: 4}
		y := mk(t, []float64{0, 1, 2, 3, 4, 5, 6, 7}, H, W)
		assert.Panics(t, func() {
			y.Unflatten(W, Axis{Name: "Height", Size: 2}, Axis{Name: "Rest", Size: 2})
		})
	})
}

func TestSlice(t *testing.T) {
	H := Axis{Name: "Height", Size: 3}
	W := Axis{Name: "Width", Size: 2}
	x := mk(t, []float64{1, 2, 3, 4, 5, 6}, H, W)

	row := x.Slice(H, 1)
	assert.Equal(t, []Axis{W}, row.Axes())
	assert.Equal(t, []float64{3, 4}, row.Data())

	last := x.Slice(H, -1)
	assert.Equal(t, []float64{5, 6}, last.Data(), "negative index counts from the end")

	col := x.Slice(W, 0)
	assert.Equal(t, []Axis{H}, col.Axes())
	assert.Equal(t, []float64{1, 3, 5}, col.Data())

	assert.Panics(t, func() { x.Slice(H, 3) })
	assert.Panics(t, func() { x.Slice(H, -4) })
}

func TestNarrow(t *testing.T) {
	W := Axis{Name: "Width", Size: 5}
	x := mk(t, []float64{1, 2, 3, 4, 5}, W)

	got := x.Narrow(W, 1, 3)
	assert.Equal(t, []Axis{{Name: "Width", Size: 3}}, got.Axes())
	assert.Equal(t, []float64{2, 3, 4}, got.Data())

	assert.Panics(t, func() { x.Narrow(W, 3, 3) })
	assert.Panics(t, func() { x.Narrow(W, -1, 2) })
}
