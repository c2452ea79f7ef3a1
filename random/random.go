// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package random provides keyed, reproducible random array generation.
//
// There is no global generator. Every sampling function takes an explicit
// Key, and the same key with the same axis spec produces the same array
// on every platform. Keys split into independent subkeys, so parallel
// consumers stay decorrelated without coordination.
//
// Example:
//
//	keys := random.Key(42).Split(2)
//	w := random.Normal[float32](keys[0], axial.Axes(in, out), b)
//	bias := random.Normal[float32](keys[1], axial.Axes(out), b)
package random

import (
	"github.com/axial-ml/axial"
	internalrandom "github.com/axial-ml/axial/internal/random"
	"github.com/axial-ml/axial/tensor"
)

// Key seeds a deterministic random stream. Derive independent streams
// with Split rather than reusing a key.
type Key = internalrandom.Key

// Uniform samples from U[0, 1).
func Uniform[T tensor.DType, B tensor.Backend](key Key, axes axial.AxisSpec, b B) *axial.NamedArray[T, B] {
	return internalrandom.Uniform[T, B](key, axes, b)
}

// UniformRange samples from U[lo, hi).
func UniformRange[T tensor.DType, B tensor.Backend](key Key, axes axial.AxisSpec, lo, hi T, b B) *axial.NamedArray[T, B] {
	return internalrandom.UniformRange[T, B](key, axes, lo, hi, b)
}

// Normal samples from the standard normal distribution N(0, 1).
func Normal[T tensor.DType, B tensor.Backend](key Key, axes axial.AxisSpec, b B) *axial.NamedArray[T, B] {
	return internalrandom.Normal[T, B](key, axes, b)
}

// Bernoulli samples a boolean mask that is true with probability p.
func Bernoulli[B tensor.Backend](key Key, p float64, axes axial.AxisSpec, b B) *axial.NamedArray[bool, B] {
	return internalrandom.Bernoulli[B](key, p, axes, b)
}

// Permutation samples a random ordering of [0, ax.Size) along ax.
func Permutation[B tensor.Backend](key Key, ax axial.Axis, b B) *axial.NamedArray[int32, B] {
	return internalrandom.Permutation[B](key, ax, b)
}
