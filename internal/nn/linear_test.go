package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axial-ml/axial/internal/backend/cpu"
	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/random"
)

var (
	batchAx   = named.Axis{Name: "Batch", Size: 2}
	featureAx = named.Axis{Name: "Feature", Size: 3}
	hiddenAx  = named.Axis{Name: "Hidden", Size: 2}
)

func testLinear(t *testing.T) *Linear[*cpu.CPUBackend] {
	t.Helper()
	return &Linear[*cpu.CPUBackend]{
		Weight: mkf(t, []float32{1, 0, 0, 1, 1, 1}, featureAx, hiddenAx),
		Bias:   mkf(t, []float32{0.5, -0.5}, hiddenAx),
		In:     featureAx,
		Out:    hiddenAx,
	}
}

func TestLinear_Forward(t *testing.T) {
	l := testLinear(t)
	x := mkf(t, []float32{1, 2, 3, 4, 5, 6}, batchAx, featureAx)

	y := l.Forward(x)
	assert.Equal(t, []named.Axis{batchAx, hiddenAx}, y.Axes())
	requireClose(t, []float32{4.5, 4.5, 10.5, 10.5}, y.Data(), 1e-6)
}

func TestLinear_AxisOrderIndependent(t *testing.T) {
	l := testLinear(t)
	x := mkf(t, []float32{1, 2, 3, 4, 5, 6}, batchAx, featureAx)

	flipped := l.Forward(x.Rearrange(featureAx, batchAx))
	assert.Equal(t, []named.Axis{batchAx, hiddenAx}, flipped.Axes())
	requireClose(t, l.Forward(x).Data(), flipped.Data(), 1e-6)
}

func TestLinear_NoBias(t *testing.T) {
	l := testLinear(t)
	l.Bias = nil
	x := mkf(t, []float32{1, 2, 3, 4, 5, 6}, batchAx, featureAx)

	requireClose(t, []float32{4, 5, 10, 11}, l.Forward(x).Data(), 1e-6)
}

func TestLinear_OutputAxisCollisionPanics(t *testing.T) {
	l := testLinear(t)
	x := mkf(t, []float32{1, 2, 3, 4, 5, 6}, hiddenAx, featureAx)

	require.Panics(t, func() { l.Forward(x) })
}

func TestNewLinear_Deterministic(t *testing.T) {
	b := cpu.New()
	key := random.Key(7)

	l1 := NewLinear(featureAx, hiddenAx, key, b)
	l2 := NewLinear(featureAx, hiddenAx, key, b)
	assert.Equal(t, l1.Weight.Data(), l2.Weight.Data())
	assert.Equal(t, []float32{0, 0}, l1.Bias.Data())
	assert.Equal(t, []named.Axis{featureAx, hiddenAx}, l1.Weight.Axes())
}

func TestLinear_LoadStateDict(t *testing.T) {
	fresh := NewLinear(featureAx, hiddenAx, random.Key(1), cpu.New())

	// The weight entry carries transposed axes; loading aligns by name.
	sd := StateDict[*cpu.CPUBackend]{
		"weight": mkf(t, []float32{1, 0, 1, 0, 1, 1}, hiddenAx, featureAx),
		"bias":   mkf(t, []float32{0.5, -0.5}, hiddenAx),
	}
	require.NoError(t, fresh.LoadStateDict(sd))

	x := mkf(t, []float32{1, 2, 3, 4, 5, 6}, batchAx, featureAx)
	requireClose(t, []float32{4.5, 4.5, 10.5, 10.5}, fresh.Forward(x).Data(), 1e-6)
}

func TestLinear_LoadStateDict_Errors(t *testing.T) {
	l := NewLinear(featureAx, hiddenAx, random.Key(1), cpu.New())

	t.Run("missing weight", func(t *testing.T) {
		err := l.LoadStateDict(StateDict[*cpu.CPUBackend]{})
		require.ErrorContains(t, err, "missing")
	})
	t.Run("size mismatch", func(t *testing.T) {
		short := named.Axis{Name: "Feature", Size: 2}
		err := l.LoadStateDict(StateDict[*cpu.CPUBackend]{
			"weight": mkf(t, []float32{1, 2, 3, 4}, short, hiddenAx),
		})
		require.ErrorContains(t, err, "axes mismatch")
	})
}

func TestLinear_StateDictRoundTrip(t *testing.T) {
	b := cpu.New()
	src := NewLinear(featureAx, hiddenAx, random.Key(3), b)
	dst := NewLinear(featureAx, hiddenAx, random.Key(4), b)
	require.NoError(t, dst.LoadStateDict(src.StateDict()))

	x := mkf(t, []float32{1, 2, 3, 4, 5, 6}, batchAx, featureAx)
	assert.Equal(t, src.Forward(x).Data(), dst.Forward(x).Data())
}
