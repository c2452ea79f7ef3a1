package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axial-ml/axial/internal/named"
)

var actF = named.Axis{Name: "Feature", Size: 3}

func TestRelu(t *testing.T) {
	out := Relu(mkf(t, []float32{-1, 0, 2}, actF))
	assert.Equal(t, []float32{0, 0, 2}, out.Data())
}

func TestSigmoid(t *testing.T) {
	out := Sigmoid(mkf(t, []float32{0, 2, -20}, actF))
	requireClose(t, []float32{0.5, 0.880797, 0}, out.Data(), 1e-4)
}

func TestTanh(t *testing.T) {
	f := named.Axis{Name: "Feature", Size: 4}
	out := Tanh(mkf(t, []float32{0, 1, -1, 20}, f))
	requireClose(t, []float32{0, 0.76159, -0.76159, 1}, out.Data(), 1e-4)
}

func TestGelu(t *testing.T) {
	out := Gelu(mkf(t, []float32{0, 1, -1}, actF))
	requireClose(t, []float32{0, 0.84119, -0.15881}, out.Data(), 1e-3)
}

func TestSilu(t *testing.T) {
	out := Silu(mkf(t, []float32{0, 1, -1}, actF))
	requireClose(t, []float32{0, 0.73106, -0.26894}, out.Data(), 1e-4)
}

func TestSoftmax(t *testing.T) {
	x := mkf(t, []float32{1, 2, 3}, actF)
	out := Softmax(x, named.AxisName("Feature"))
	requireClose(t, []float32{0.090031, 0.244728, 0.665241}, out.Data(), 1e-4)

	sum := out.Sum(named.AxisName("Feature")).Scalar()
	assert.InDelta(t, 1.0, float64(sum), 1e-5)
}

func TestSoftmax_ShiftInvariant(t *testing.T) {
	x := mkf(t, []float32{1, 2, 3}, actF)
	requireClose(t, Softmax(x, named.AxisName("Feature")).Data(),
		Softmax(x.AddScalar(100), named.AxisName("Feature")).Data(), 1e-5)
}

func TestSoftmax_PerRow(t *testing.T) {
	batch := named.Axis{Name: "Batch", Size: 2}
	f := named.Axis{Name: "Feature", Size: 2}
	x := mkf(t, []float32{0, 0, 1, 3}, batch, f)

	out := Softmax(x, named.AxisName("Feature"))
	assert.Equal(t, []named.Axis{batch, f}, out.Axes())
	requireClose(t, []float32{0.5, 0.5, 0.119203, 0.880797}, out.Data(), 1e-4)
}

func TestSoftmax_AllAxesByDefault(t *testing.T) {
	batch := named.Axis{Name: "Batch", Size: 2}
	f := named.Axis{Name: "Feature", Size: 2}
	x := mkf(t, []float32{1, 1, 1, 1}, batch, f)

	out := Softmax(x)
	requireClose(t, []float32{0.25, 0.25, 0.25, 0.25}, out.Data(), 1e-6)
}

func TestLogSoftmax(t *testing.T) {
	x := mkf(t, []float32{1, 2, 3}, actF)
	out := LogSoftmax(x, named.AxisName("Feature"))
	requireClose(t, []float32{-2.407606, -1.407606, -0.407606}, out.Data(), 1e-3)
}
