package nn

import (
	"fmt"
	"math"

	"github.com/axial-ml/axial/internal/named"
	"github.com/axial-ml/axial/internal/tensor"
)

// Masked scores take this value before the softmax; exp(-1e9 - max)
// underflows to zero, so fully masked rows stay finite.
const maskedScore = -1e9

// DotProductAttention computes scaled dot-product attention over named
// axes:
//
//	weights = softmax(q·k / sqrt(d))    over keyPos
//	out     = weights·v                 contracted over keyPos
//
// keyDim names the axis contracted between query and key (the head
// dimension); keyPos names the position axis of key and value. Query
// and key positions must carry different names, so for self-attention
// rename the key/value position axis first (see Rename). Axes shared by
// the operands beyond those two, such as batch or head axes, batch
// through unchanged.
//
// mask, when non-nil, is true where attention is allowed; it broadcasts
// against the score axes by name. Returns the attended values and the
// attention weights.
func DotProductAttention[B tensor.Backend](
	keyPos, keyDim named.AxisSelector,
	query, key, value *named.NamedArray[float32, B],
	mask *named.NamedArray[bool, B],
) (*named.NamedArray[float32, B], *named.NamedArray[float32, B]) {
	if query.HasAxis(keyPos) {
		panic(fmt.Sprintf("axial: attention: query carries the key position axis %v; rename the key and value positions first", keyPos))
	}
	scale := float32(1 / math.Sqrt(float64(query.AxisSize(keyDim))))
	scores := query.Dot(keyDim, key).MulScalar(scale)
	if mask != nil {
		fill := named.Full[float32](named.Axes(), maskedScore, scores.Backend())
		scores = named.Where(mask, scores, fill)
	}
	weights := Softmax(scores, keyPos)
	return weights.Dot(keyPos, value), weights
}

// CausalMask builds a (qPos, kPos) mask that allows each query position
// to attend to key positions at or before it.
func CausalMask[B tensor.Backend](qPos, kPos named.Axis, b B) *named.NamedArray[bool, B] {
	k := named.Arange[int32](kPos, 0, 1, b).BroadcastAxis(qPos)
	q := named.Arange[int32](qPos, 0, 1, b)
	return k.LessEqual(q)
}
