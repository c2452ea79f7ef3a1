// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/axial-ml/axial"
	internalnn "github.com/axial-ml/axial/internal/nn"
	"github.com/axial-ml/axial/random"
	"github.com/axial-ml/axial/tensor"
)

// StateDict maps parameter names to their arrays. Nested layers compose
// entries under dotted prefixes ("encoder.weight").
type StateDict[B tensor.Backend] = internalnn.StateDict[B]

// Linear is a fully connected layer: y = x·W + b, contracted over the
// input axis by name.
type Linear[B tensor.Backend] = internalnn.Linear[B]

// Embedding maps integer ids to dense vectors by row lookup.
type Embedding[B tensor.Backend] = internalnn.Embedding[B]

// LayerNorm normalizes over one named axis with learned scale and
// shift.
type LayerNorm[B tensor.Backend] = internalnn.LayerNorm[B]

// RMSNorm normalizes over one named axis without centering.
type RMSNorm[B tensor.Backend] = internalnn.RMSNorm[B]

// NewLinear creates a Linear layer with a Xavier-initialized weight and
// a zero bias.
//
// Example:
//
//	layer := nn.NewLinear(feature, hidden, random.Key(0), b)
//	y := layer.Forward(x) // x: (..., Feature) -> y: (..., Hidden)
func NewLinear[B tensor.Backend](in, out axial.Axis, key random.Key, b B) *Linear[B] {
	return internalnn.NewLinear(in, out, key, b)
}

// NewEmbedding creates an Embedding with weights drawn from N(0, 1).
func NewEmbedding[B tensor.Backend](vocab, embed axial.Axis, key random.Key, b B) *Embedding[B] {
	return internalnn.NewEmbedding(vocab, embed, key, b)
}

// NewLayerNorm creates a LayerNorm over ax with gamma ones and beta
// zeros.
func NewLayerNorm[B tensor.Backend](ax axial.Axis, epsilon float32, b B) *LayerNorm[B] {
	return internalnn.NewLayerNorm(ax, epsilon, b)
}

// NewRMSNorm creates an RMSNorm over ax with gamma ones.
func NewRMSNorm[B tensor.Backend](ax axial.Axis, epsilon float32, b B) *RMSNorm[B] {
	return internalnn.NewRMSNorm(ax, epsilon, b)
}

// Xavier draws a (in, out) weight array from the Glorot uniform
// distribution.
func Xavier[B tensor.Backend](key random.Key, in, out axial.Axis, b B) *axial.NamedArray[float32, B] {
	return internalnn.Xavier(key, in, out, b)
}

// Relu clamps negative values to zero.
func Relu[B tensor.Backend](x *axial.NamedArray[float32, B]) *axial.NamedArray[float32, B] {
	return internalnn.Relu(x)
}

// Sigmoid squashes values into (0, 1).
func Sigmoid[B tensor.Backend](x *axial.NamedArray[float32, B]) *axial.NamedArray[float32, B] {
	return internalnn.Sigmoid(x)
}

// Tanh squashes values into (-1, 1).
func Tanh[B tensor.Backend](x *axial.NamedArray[float32, B]) *axial.NamedArray[float32, B] {
	return internalnn.Tanh(x)
}

// Gelu is the tanh approximation of the Gaussian error linear unit.
func Gelu[B tensor.Backend](x *axial.NamedArray[float32, B]) *axial.NamedArray[float32, B] {
	return internalnn.Gelu(x)
}

// Silu is the sigmoid-weighted linear unit: x * sigmoid(x).
func Silu[B tensor.Backend](x *axial.NamedArray[float32, B]) *axial.NamedArray[float32, B] {
	return internalnn.Silu(x)
}

// Softmax exponentiates and normalizes over the selected axes. With no
// selectors it normalizes over the whole array.
func Softmax[B tensor.Backend](x *axial.NamedArray[float32, B], axes ...axial.AxisSelector) *axial.NamedArray[float32, B] {
	return internalnn.Softmax(x, axes...)
}

// LogSoftmax is log(Softmax(x)) computed stably.
func LogSoftmax[B tensor.Backend](x *axial.NamedArray[float32, B], axes ...axial.AxisSelector) *axial.NamedArray[float32, B] {
	return internalnn.LogSoftmax(x, axes...)
}

// Dropout zeroes each element with probability p and scales survivors
// by 1/(1-p). The key fixes the mask. Panics if p is outside [0, 1].
func Dropout[B tensor.Backend](key random.Key, p float64, x *axial.NamedArray[float32, B]) *axial.NamedArray[float32, B] {
	return internalnn.Dropout(key, p, x)
}

// DotProductAttention computes scaled dot-product attention over named
// axes: keyDim names the contracted head dimension, keyPos the position
// axis of key and value. Query and key positions must carry different
// names; rename the key side for self-attention. mask, when non-nil, is
// true where attention is allowed. Returns the attended values and the
// attention weights.
func DotProductAttention[B tensor.Backend](
	keyPos, keyDim axial.AxisSelector,
	query, key, value *axial.NamedArray[float32, B],
	mask *axial.NamedArray[bool, B],
) (*axial.NamedArray[float32, B], *axial.NamedArray[float32, B]) {
	return internalnn.DotProductAttention(keyPos, keyDim, query, key, value, mask)
}

// CausalMask builds a (qPos, kPos) mask that allows each query position
// to attend to key positions at or before it.
func CausalMask[B tensor.Backend](qPos, kPos axial.Axis, b B) *axial.NamedArray[bool, B] {
	return internalnn.CausalMask(qPos, kPos, b)
}
