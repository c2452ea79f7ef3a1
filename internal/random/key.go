// Package random implements explicit-key sampling into named arrays.
//
// Every sampler takes a Key and derives the whole result from it, so the
// same key and axis spec always produce the same array on every platform.
// There is no global generator; callers thread keys and derive fresh ones
// with Split instead of reusing them.
package random

import (
	"fmt"
	"math/bits"
)

// Key seeds a deterministic random stream. Construct one from any seed
// with Key(seed); reusing a key repeats its draws.
type Key uint64

// Split derives n independent keys from k. The derived keys are stable
// for a given k and n prefix: Split(2) returns the first two keys of
// Split(3).
func (k Key) Split(n int) []Key {
	if n <= 0 {
		panic(fmt.Sprintf("axial: split: need at least one key, got %d", n))
	}
	s := stream{state: uint64(k)}
	keys := make([]Key, n)
	for i := range keys {
		keys[i] = Key(s.next())
	}
	return keys
}

// stream is a SplitMix64 generator (Vigna's constants). Fixed-width
// integer mixing only, so streams are identical on every platform.
type stream struct {
	state uint64
}

func (s *stream) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// float64 returns a draw in [0, 1) with 53 bits of precision.
func (s *stream) float64() float64 {
	return float64(s.next()>>11) * (1.0 / (1 << 53))
}

// float64Pos returns a draw in (0, 1], safe to pass to math.Log.
func (s *stream) float64Pos() float64 {
	return (float64(s.next()>>11) + 1) * (1.0 / (1 << 53))
}

// float32 returns a draw in [0, 1) with 24 bits of precision. Deriving
// from the full 53-bit draw could round up to 1.0 in float32.
func (s *stream) float32() float32 {
	return float32(s.next()>>40) * (1.0 / (1 << 24))
}

// intn returns a draw in [0, n) via the multiply-shift bound.
func (s *stream) intn(n int) int {
	hi, _ := bits.Mul64(s.next(), uint64(n))
	return int(hi)
}
