// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU backend over wgpu-native.
//
// The backend accelerates a float32 subset (same-shape element-wise ops,
// a few unary kernels, 2-D matmul) and delegates everything else to the
// CPU backend, so it satisfies the full tensor.Backend contract. The
// wgpu-native binding loads a DLL and is wired up on Windows; on other
// platforms New returns ErrUnavailable.
//
// Example:
//
//	import (
//	    "github.com/axial-ml/axial/backend/cpu"
//	    "github.com/axial-ml/axial/backend/webgpu"
//	    "github.com/axial-ml/axial/tensor"
//	)
//
//	var b tensor.Backend
//	if gpu, err := webgpu.New(); err == nil {
//	    defer gpu.Release()
//	    b = gpu
//	} else {
//	    b = cpu.New()
//	}
package webgpu

import (
	internalwebgpu "github.com/axial-ml/axial/internal/backend/webgpu"
	"github.com/axial-ml/axial/tensor"
)

// Backend is the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// ErrUnavailable reports that no WebGPU device can be used on this platform.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a WebGPU backend on the highest-performance adapter.
// Call Release when done to free GPU resources.
//
// Returns an error when no compatible adapter or native library exists.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be initialized.
// Useful for falling back to the CPU backend:
//
//	if webgpu.IsAvailable() {
//	    b, _ = webgpu.New()
//	} else {
//	    b = cpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
