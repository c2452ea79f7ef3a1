// Package nn provides neural-network layers over named arrays.
//
// Layers hold float32 parameters as named arrays and select axes by
// name, so inputs may carry extra axes (batch, position) in any order.
// Parameters are initialized from explicit random keys; the same key
// always yields the same layer. There is no gradient machinery: layers
// apply eagerly, and trained weights arrive through state dicts.
package nn

import (
	"fmt"
	"strings"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// StateDict maps parameter names to their arrays. Nested layers compose
// entries under dotted prefixes ("encoder.weight").
type StateDict[B tensor.Backend] map[string]*named.NamedArray[float32, B]

// Merge copies other's entries into s under the given key prefix.
func (s StateDict[B]) Merge(prefix string, other StateDict[B]) {
	for name, arr := range other {
		s[prefix+name] = arr
	}
}

// Sub returns the entries under prefix with the prefix stripped, the
// inverse of Merge. Loading a nested layer reads from the sub-dict:
//
//	layer.LoadStateDict(sd.Sub("encoder."))
func (s StateDict[B]) Sub(prefix string) StateDict[B] {
	out := make(StateDict[B])
	for name, arr := range s {
		if strings.HasPrefix(name, prefix) {
			out[strings.TrimPrefix(name, prefix)] = arr
		}
	}
	return out
}

// loadParam copies the named entry into dst, aligning axes by name. The
// entry must carry exactly dst's axes, in any order.
func loadParam[B tensor.Backend](sd StateDict[B], name string, dst *named.NamedArray[float32, B]) error {
	src, ok := sd[name]
	if !ok {
		return fmt.Errorf("state dict is missing %q", name)
	}
	want := dst.Axes()
	if len(src.Axes()) != len(want) {
		return fmt.Errorf("%s: axes mismatch: want %v, got %v", name, want, src.Axes())
	}
	sels := make([]named.AxisSelector, len(want))
	for i, ax := range want {
		sel := named.AxisName(ax.Name)
		if !src.HasAxis(sel) || src.AxisSize(sel) != ax.Size {
			return fmt.Errorf("%s: axes mismatch: want %v, got %v", name, want, src.Axes())
		}
		sels[i] = sel
	}
	copy(dst.Data(), src.Rearrange(sels...).Data())
	return nil
}
