package random

import (
	"fmt"
	"math"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// Uniform samples values in [0, 1) over the given axes.
func Uniform[T tensor.DType, B tensor.Backend](key Key, axes named.AxisSpec, b B) *named.NamedArray[T, B] {
	return materialize[T, B]("uniform", key, axes, b, func(s *stream, data []T) {
		switch data := any(data).(type) {
		case []float32:
			for i := range data {
				data[i] = s.float32()
			}
		case []float64:
			for i := range data {
				data[i] = s.float64()
			}
		default:
			panic("axial: uniform: unsupported element type (only float32/float64 supported)")
		}
	})
}

// UniformRange samples values in [lo, hi) over the given axes.
func UniformRange[T tensor.DType, B tensor.Backend](key Key, axes named.AxisSpec, lo, hi T, b B) *named.NamedArray[T, B] {
	return materialize[T, B]("uniformrange", key, axes, b, func(s *stream, data []T) {
		switch data := any(data).(type) {
		case []float32:
			l, h := any(lo).(float32), any(hi).(float32)
			if h < l {
				panic(fmt.Sprintf("axial: uniformrange: empty range [%v, %v)", l, h))
			}
			for i := range data {
				data[i] = l + s.float32()*(h-l)
			}
		case []float64:
			l, h := any(lo).(float64), any(hi).(float64)
			if h < l {
				panic(fmt.Sprintf("axial: uniformrange: empty range [%v, %v)", l, h))
			}
			for i := range data {
				data[i] = l + s.float64()*(h-l)
			}
		default:
			panic("axial: uniformrange: unsupported element type (only float32/float64 supported)")
		}
	})
}

// Normal samples from the standard normal distribution over the given
// axes, using the Box-Muller transform.
func Normal[T tensor.DType, B tensor.Backend](key Key, axes named.AxisSpec, b B) *named.NamedArray[T, B] {
	return materialize[T, B]("normal", key, axes, b, func(s *stream, data []T) {
		switch data := any(data).(type) {
		case []float32:
			for i := 0; i < len(data); i += 2 {
				r := math.Sqrt(-2 * math.Log(s.float64Pos()))
				theta := 2 * math.Pi * s.float64()
				data[i] = float32(r * math.Cos(theta))
				if i+1 < len(data) {
					data[i+1] = float32(r * math.Sin(theta))
				}
			}
		case []float64:
			for i := 0; i < len(data); i += 2 {
				r := math.Sqrt(-2 * math.Log(s.float64Pos()))
				theta := 2 * math.Pi * s.float64()
				data[i] = r * math.Cos(theta)
				if i+1 < len(data) {
					data[i+1] = r * math.Sin(theta)
				}
			}
		default:
			panic("axial: normal: unsupported element type (only float32/float64 supported)")
		}
	})
}

// Bernoulli samples booleans that are true with probability p.
func Bernoulli[B tensor.Backend](key Key, p float64, axes named.AxisSpec, b B) *named.NamedArray[bool, B] {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("axial: bernoulli: probability %v outside [0, 1]", p))
	}
	return materialize[bool, B]("bernoulli", key, axes, b, func(s *stream, data []bool) {
		for i := range data {
			data[i] = s.float64() < p
		}
	})
}

// Permutation samples a shuffle of [0, ax.Size) over the axis.
func Permutation[B tensor.Backend](key Key, ax named.Axis, b B) *named.NamedArray[int32, B] {
	return materialize[int32, B]("permutation", key, named.Axes(ax), b, func(s *stream, data []int32) {
		for i := range data {
			data[i] = int32(i) //nolint:gosec // G115: axis sizes stay well under 2^31
		}
		for i := len(data) - 1; i > 0; i-- {
			j := s.intn(i + 1)
			data[i], data[j] = data[j], data[i]
		}
	})
}

// materialize fills a buffer from the key's stream and wraps it over the
// axes. Invalid specs panic through FromSlice's error.
func materialize[T tensor.DType, B tensor.Backend](op string, key Key, axes named.AxisSpec, b B, fill func(*stream, []T)) *named.NamedArray[T, B] {
	n := 1
	for _, ax := range axes {
		if ax.Size <= 0 {
			n = 0
			break
		}
		n *= ax.Size
	}
	data := make([]T, n)
	s := &stream{state: uint64(key)}
	fill(s, data)
	a, err := named.FromSlice[T, B](data, axes, b)
	if err != nil {
		panic(fmt.Sprintf("axial: %s: %v", op, err))
	}
	return a
}
