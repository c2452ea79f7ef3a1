// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package axial

import (
	"github.com/axial-ml/axial/internal/serialization"
	"github.com/axial-ml/axial/tensor"
)

// SaveSafetensors writes arrays to a safetensors file. Axis names are
// stored under the "axial_axes" metadata key, which other safetensors
// tooling ignores, so the file stays readable as plain positional
// tensors elsewhere.
func SaveSafetensors[T tensor.DType, B tensor.Backend](path string, arrays map[string]*NamedArray[T, B]) error {
	return serialization.SaveSafetensors[T, B](path, arrays)
}

// LoadSafetensors reads every array from a safetensors file written by
// SaveSafetensors. Files from other tooling carry no axis names and
// cannot load as named arrays; inspect those with the axial CLI or
// convert them once by assigning axes.
//
// Example:
//
//	arrays, err := axial.LoadSafetensors[float32](path, cpu.New())
//	w := arrays["weight"]
func LoadSafetensors[T tensor.DType, B tensor.Backend](path string, b B) (map[string]*NamedArray[T, B], error) {
	return serialization.LoadSafetensors[T, B](path, b)
}
