// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package axial

import (
	"github.com/axial-ml/axial/internal/serialization"
	"github.com/axial-ml/axial/tensor"
)

// Save writes arrays to an .axl checkpoint file. Axis names round-trip:
// Load returns arrays with the same axes.
//
// Example:
//
//	err := axial.Save("model.axl", map[string]*axial.NamedArray[float32, *cpu.Backend]{
//	    "weight": w,
//	    "bias":   bias,
//	})
func Save[T tensor.DType, B tensor.Backend](path string, arrays map[string]*NamedArray[T, B]) error {
	return serialization.Save[T, B](path, arrays)
}

// SaveWithMetadata writes arrays along with free-form key/value metadata
// recorded in the file header.
func SaveWithMetadata[T tensor.DType, B tensor.Backend](path string, arrays map[string]*NamedArray[T, B], metadata map[string]string) error {
	return serialization.SaveWithMetadata[T, B](path, arrays, metadata)
}

// Load reads every array from an .axl file. All entries must hold
// element type T; mixed-dtype checkpoints load entry by entry via
// LoadOne.
//
// Example:
//
//	arrays, err := axial.Load[float32](path, cpu.New())
//	w := arrays["weight"]
func Load[T tensor.DType, B tensor.Backend](path string, b B) (map[string]*NamedArray[T, B], error) {
	return serialization.Load[T, B](path, b)
}

// LoadOne reads a single named array from an .axl file.
func LoadOne[T tensor.DType, B tensor.Backend](path, name string, b B) (*NamedArray[T, B], error) {
	return serialization.LoadOne[T, B](path, name, b)
}
