package nn

import (
	"fmt"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/random"
	"github.com/axial-ml/axial/internal/tensor"
)

// Dropout zeroes each element with probability p and scales survivors
// by 1/(1-p), keeping the expected value of every element. The key
// fixes the mask: the same key, probability, and input always drop the
// same elements. Panics if p is outside [0, 1].
func Dropout[B tensor.Backend](key random.Key, p float64, x *named.NamedArray[float32, B]) *named.NamedArray[float32, B] {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("axial: dropout: probability %v outside [0, 1]", p))
	}
	if p == 0 {
		return x.Clone()
	}
	if p == 1 {
		return x.MulScalar(0)
	}
	keep := random.Bernoulli(key, 1-p, named.Axes(x.Axes()...), x.Backend())
	scaled := x.MulScalar(float32(1 / (1 - p)))
	return named.Where(keep, scaled, x.MulScalar(0))
}
