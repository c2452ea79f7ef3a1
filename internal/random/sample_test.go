package random

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axial-ml/axial/internal/backend/cpu"
	"github.com/axial-ml/axial/internal/named"
)

func TestUniform_Deterministic(t *testing.T) {
	H := named.Axis{Name: "Height", Size: 2}
	W := named.Axis{Name: "Width", Size: 2}

	got := Uniform[float64](Key(7), named.Axes(H, W), cpu.New())
	assert.Equal(t, []named.Axis{H, W}, got.Axes())
	assert.Equal(t, []float64{
		0.3898297483912715, 0.01678829452815611, 0.9007606806068834, 0.5829302930280781,
	}, got.Data())

	again := Uniform[float64](Key(7), named.Axes(H, W), cpu.New())
	assert.Equal(t, got.Data(), again.Data())

	other := Uniform[float64](Key(8), named.Axes(H, W), cpu.New())
	assert.NotEqual(t, got.Data(), other.Data())
}

func TestUniform_Float32(t *testing.T) {
	N := named.Axis{Name: "N", Size: 4}
	got := Uniform[float32](Key(7), named.Axes(N), cpu.New())
	assert.Equal(t, []float32{
		0.38982969522476196, 0.016788244247436523, 0.9007606506347656, 0.5829302668571472,
	}, got.Data())
}

func TestUniform_Range(t *testing.T) {
	N := named.Axis{Name: "N", Size: 2048}
	got := Uniform[float64](Key(123), named.Axes(N), cpu.New())

	sum := 0.0
	for _, v := range got.Data() {
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
		sum += v
	}
	mean := sum / float64(N.Size)
	assert.InDelta(t, 0.5, mean, 0.05)
}

func TestUniform_ScalarAxes(t *testing.T) {
	got := Uniform[float64](Key(7), nil, cpu.New())
	assert.Empty(t, got.Axes())
	assert.Equal(t, 0.3898297483912715, got.Scalar())
}

func TestUniform_Errors(t *testing.T) {
	t.Run("integer element type", func(t *testing.T) {
		assert.PanicsWithValue(t,
			"axial: uniform: unsupported element type (only float32/float64 supported)",
			func() { Uniform[int32](Key(1), named.Axes(named.Axis{Name: "N", Size: 2}), cpu.New()) })
	})
	t.Run("duplicate axis name", func(t *testing.T) {
		dup := named.Axes(named.Axis{Name: "N", Size: 2}, named.Axis{Name: "N", Size: 2})
		assert.PanicsWithValue(t, `axial: uniform: duplicate axis name "N"`, func() {
			Uniform[float64](Key(1), dup, cpu.New())
		})
	})
}

func TestUniformRange(t *testing.T) {
	N := named.Axis{Name: "N", Size: 3}
	got := UniformRange(Key(11), named.Axes(N), -1.0, 3.0, cpu.New())
	assert.Equal(t, []float64{
		0.2649775716836329, 0.04946060709487288, 1.5521693680733941,
	}, got.Data())

	assert.PanicsWithValue(t, "axial: uniformrange: empty range [3, -1)", func() {
		UniformRange(Key(11), named.Axes(N), 3.0, -1.0, cpu.New())
	})
}

func TestNormal_Deterministic(t *testing.T) {
	N := named.Axis{Name: "N", Size: 4}
	got := Normal[float64](Key(5), named.Axes(N), cpu.New())

	want := []float64{0.01997910663403584, -1.378209380083188, 1.3856395252820701, 0.9979653040576734}
	require.Len(t, got.Data(), 4)
	for i, v := range got.Data() {
		assert.InDelta(t, want[i], v, 1e-12)
	}
}

func TestNormal_Moments(t *testing.T) {
	N := named.Axis{Name: "N", Size: 2048}
	got := Normal[float64](Key(123), named.Axes(N), cpu.New())

	mean := got.Mean().Scalar()
	assert.InDelta(t, 0.0, mean, 0.1)

	variance := 0.0
	for _, v := range got.Data() {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(N.Size)
	assert.InDelta(t, 1.0, variance, 0.1)
}

func TestBernoulli(t *testing.T) {
	N := named.Axis{Name: "N", Size: 6}
	got := Bernoulli(Key(9), 0.5, named.Axes(N), cpu.New())
	assert.Equal(t, []bool{false, false, true, false, true, true}, got.Data())

	zero := Bernoulli(Key(9), 0, named.Axes(N), cpu.New())
	assert.Equal(t, []bool{false, false, false, false, false, false}, zero.Data())

	one := Bernoulli(Key(9), 1, named.Axes(N), cpu.New())
	assert.Equal(t, []bool{true, true, true, true, true, true}, one.Data())

	assert.PanicsWithValue(t, "axial: bernoulli: probability 1.5 outside [0, 1]", func() {
		Bernoulli(Key(9), 1.5, named.Axes(N), cpu.New())
	})
}

func TestBernoulli_Fraction(t *testing.T) {
	N := named.Axis{Name: "N", Size: 2048}
	got := Bernoulli(Key(77), 0.25, named.Axes(N), cpu.New())

	hits := 0
	for _, v := range got.Data() {
		if v {
			hits++
		}
	}
	assert.InDelta(t, 0.25, float64(hits)/float64(N.Size), 0.05)
}

func TestPermutation(t *testing.T) {
	N := named.Axis{Name: "N", Size: 5}
	got := Permutation(Key(3), N, cpu.New())
	assert.Equal(t, []named.Axis{N}, got.Axes())
	assert.Equal(t, []int32{3, 4, 1, 2, 0}, got.Data())

	again := Permutation(Key(3), N, cpu.New())
	assert.Equal(t, got.Data(), again.Data())

	other := Permutation(Key(4), N, cpu.New())
	assert.Equal(t, []int32{1, 0, 4, 3, 2}, other.Data())
}

func TestPermutation_CoversRange(t *testing.T) {
	N := named.Axis{Name: "N", Size: 100}
	got := Permutation(Key(21), N, cpu.New())

	sorted := append([]int32(nil), got.Data()...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, v := range sorted {
		require.Equal(t, int32(i), v) //nolint:gosec // G115: loop bound is 100
	}

	single := Permutation(Key(21), named.Axis{Name: "N", Size: 1}, cpu.New())
	assert.Equal(t, []int32{0}, single.Data())
}
