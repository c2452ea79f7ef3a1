package named

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryOps(t *testing.T) {
	H := Axis{Name: "Height", Size: 2}
	W := Axis{Name: "Width", Size: 2}
	x := mk(t, []float64{1, 2, 3, 4}, H, W)
	y := mk(t, []float64{4, 3, 2, 1}, H, W)

	t.Run("sub", func(t *testing.T) {
		assert.Equal(t, []float64{-3, -1, 1, 3}, x.Sub(y).Data())
	})
	t.Run("mul", func(t *testing.T) {
		assert.Equal(t, []float64{4, 6, 6, 4}, x.Mul(y).Data())
	})
	t.Run("div", func(t *testing.T) {
		assert.Equal(t, []float64{0.25, 2.0 / 3.0, 1.5, 4}, x.Div(y).Data())
	})
	t.Run("maximum", func(t *testing.T) {
		assert.Equal(t, []float64{4, 3, 3, 4}, x.Maximum(y).Data())
	})
	t.Run("minimum", func(t *testing.T) {
		assert.Equal(t, []float64{1, 2, 2, 1}, x.Minimum(y).Data())
	})
}

func TestScalarOps(t *testing.T) {
	W := Axis{Name: "Width", Size: 3}
	x := mk(t, []float64{1, 2, 3}, W)

	assert.Equal(t, []float64{11, 12, 13}, x.AddScalar(10).Data())
	assert.Equal(t, []float64{0, 1, 2}, x.SubScalar(1).Data())
	assert.Equal(t, []float64{2, 4, 6}, x.MulScalar(2).Data())
	assert.Equal(t, []float64{0.5, 1, 1.5}, x.DivScalar(2).Data())
	assert.Equal(t, []Axis{W}, x.AddScalar(10).Axes())
}

func TestUnaryOps(t *testing.T) {
	W := Axis{Name: "Width", Size: 3}

	t.Run("neg abs", func(t *testing.T) {
		x := mk(t, []float64{1, -2, 3}, W)
		assert.Equal(t, []float64{-1, 2, -3}, x.Neg().Data())
		assert.Equal(t, []float64{1, 2, 3}, x.Abs().Data())
	})

	t.Run("exp log", func(t *testing.T) {
		x := mk(t, []float64{0, 1, 2}, W)
		got := x.Exp().Data()
		assert.InDelta(t, 1, got[0], 1e-12)
		assert.InDelta(t, math.E, got[1], 1e-12)

		back := x.Exp().Log().Data()
		for i, v := range x.Data() {
			assert.InDelta(t, v, back[i], 1e-12)
		}
	})

	t.Run("sqrt pow", func(t *testing.T) {
		x := mk(t, []float64{1, 4, 9}, W)
		assert.Equal(t, []float64{1, 2, 3}, x.Sqrt().Data())
		assert.Equal(t, []float64{1, 16, 81}, x.Pow(2).Data())
	})
}
