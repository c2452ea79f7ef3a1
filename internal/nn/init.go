package nn

import (
	"math"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/random"
	"github.com/axial-ml/axial/internal/tensor"
)

// Xavier draws a (in, out) weight array from the Glorot uniform
// distribution U(-sqrt(6/(in+out)), sqrt(6/(in+out))), which keeps
// activation variance stable across layers.
func Xavier[B tensor.Backend](key random.Key, in, out named.Axis, b B) *named.NamedArray[float32, B] {
	bound := float32(math.Sqrt(6.0 / float64(in.Size+out.Size)))
	return random.UniformRange[float32](key, named.Axes(in, out), -bound, bound, b)
}
