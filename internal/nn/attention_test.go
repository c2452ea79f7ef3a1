package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axial-ml/axial/internal/backend/cpu"
	"github.com/axial-ml/axial/internal/named"
)

var (
	qPosAx = named.Axis{Name: "Pos", Size: 2}
	kPosAx = named.Axis{Name: "KeyPos", Size: 2}
	dimAx  = named.Axis{Name: "Head", Size: 2}
	valAx  = named.Axis{Name: "Value", Size: 2}
)

// A zero query scores every key equally, so attention averages the
// values. That keeps the expected outputs exact.
func TestDotProductAttention_UniformWeights(t *testing.T) {
	q := named.Zeros[float32](named.Axes(qPosAx, dimAx), cpu.New())
	k := mkf(t, []float32{1, 0, 0, 1}, kPosAx, dimAx)
	v := mkf(t, []float32{1, 2, 3, 4}, kPosAx, valAx)

	out, weights := DotProductAttention(named.AxisName("KeyPos"), named.AxisName("Head"), q, k, v, nil)

	assert.Equal(t, []named.Axis{qPosAx, kPosAx}, weights.Axes())
	requireClose(t, []float32{0.5, 0.5, 0.5, 0.5}, weights.Data(), 1e-6)

	assert.Equal(t, []named.Axis{qPosAx, valAx}, out.Axes())
	requireClose(t, []float32{2, 3, 2, 3}, out.Data(), 1e-6)
}

func TestDotProductAttention_CausalMask(t *testing.T) {
	b := cpu.New()
	q := named.Zeros[float32](named.Axes(qPosAx, dimAx), b)
	k := mkf(t, []float32{1, 0, 0, 1}, kPosAx, dimAx)
	v := mkf(t, []float32{1, 2, 3, 4}, kPosAx, valAx)
	mask := CausalMask(qPosAx, kPosAx, b)

	out, weights := DotProductAttention(named.AxisName("KeyPos"), named.AxisName("Head"), q, k, v, mask)

	// Position 0 sees only key 0; position 1 averages both.
	requireClose(t, []float32{1, 0, 0.5, 0.5}, weights.Rearrange(qPosAx, kPosAx).Data(), 1e-6)
	requireClose(t, []float32{1, 2, 2, 3}, out.Rearrange(qPosAx, valAx).Data(), 1e-6)
}

func TestDotProductAttention_BatchAxes(t *testing.T) {
	b := cpu.New()
	batch := named.Axis{Name: "Batch", Size: 2}
	dim := named.Axis{Name: "Head", Size: 1}
	val := named.Axis{Name: "Value", Size: 1}

	q := named.Zeros[float32](named.Axes(batch, qPosAx, dim), b)
	k := named.Zeros[float32](named.Axes(batch, kPosAx, dim), b)
	v := mkf(t, []float32{10, 20, 30, 50}, batch, kPosAx, val)

	out, _ := DotProductAttention(named.AxisName("KeyPos"), named.AxisName("Head"), q, k, v, nil)

	flat := out.Rearrange(batch, qPosAx, val)
	requireClose(t, []float32{15, 15, 40, 40}, flat.Data(), 1e-5)
}

func TestDotProductAttention_SharedPositionPanics(t *testing.T) {
	b := cpu.New()
	q := named.Zeros[float32](named.Axes(qPosAx, dimAx), b)
	k := named.Zeros[float32](named.Axes(qPosAx, dimAx), b)
	v := named.Zeros[float32](named.Axes(qPosAx, valAx), b)

	require.Panics(t, func() {
		DotProductAttention(named.AxisName("Pos"), named.AxisName("Head"), q, k, v, nil)
	})
}

func TestCausalMask(t *testing.T) {
	mask := CausalMask(qPosAx, kPosAx, cpu.New())

	grid := mask.Rearrange(qPosAx, kPosAx)
	assert.Equal(t, []bool{true, false, true, true}, grid.Data())
}
