// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/axial-ml/axial/internal/backend/cpu"
	"github.com/axial-ml/axial/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend.
//
// Example:
//
//	b := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, b)
func New() *Backend {
	return internalcpu.New()
}
