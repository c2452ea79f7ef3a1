// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural-network layers over named arrays.
//
// # Overview
//
// Layers select axes by name instead of position, so the same layer
// applies to inputs of any axis order, and batch or position axes pass
// through without reshaping:
//   - Linear, Embedding: parameterized maps between named axes
//   - LayerNorm, RMSNorm: normalization along one named axis
//   - Relu, Gelu, Silu, Sigmoid, Tanh, Softmax, LogSoftmax: activations
//   - Dropout: key-driven stochastic regularization
//   - DotProductAttention, CausalMask: attention over named positions
//
// Layers apply eagerly and carry float32 parameters; trained weights
// load through state dicts (see Save and LoadSafetensors at the module
// root for the on-disk side).
//
// # Basic Usage
//
//	b := cpu.New()
//	key := random.Key(0)
//
//	feature := axial.Axis{Name: "Feature", Size: 16}
//	hidden := axial.Axis{Name: "Hidden", Size: 32}
//	layer := nn.NewLinear(feature, hidden, key, b)
//
//	batch := axial.Axis{Name: "Batch", Size: 8}
//	x := random.Normal[float32](key, axial.Axes(batch, feature), b)
//	y := layer.Forward(x) // (Batch, Hidden)
//	_ = nn.Gelu(y)
//
// # Attention
//
// Query and key positions are distinguished by axis name, so
// self-attention renames the key side first:
//
//	k := x.Rename(axial.AxisName("Pos"), "KeyPos")
//	mask := nn.CausalMask(pos, keyPos, b)
//	out, _ := nn.DotProductAttention(
//	    axial.AxisName("KeyPos"), axial.AxisName("Head"), x, k, k, mask)
//
// # Determinism
//
// Constructors take an explicit random key; the same key always
// produces the same parameters, on every platform.
package nn
