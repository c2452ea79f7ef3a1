// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the raw positional layer that axial's named API is
// built on.
//
// # Overview
//
// A Tensor[T, B] is a dense strided array with a compile-time element type T
// and a backend B that executes its operations. Axes are positional at this
// layer; the root axial package wraps tensors with named axes, and most
// programs should work there. Reach for this package when interfacing with
// positional data: decoding files, feeding kernels, writing backends.
//
// # Basic Usage
//
//	import (
//	    "github.com/axial-ml/axial/backend/cpu"
//	    "github.com/axial-ml/axial/tensor"
//	)
//
//	func main() {
//	    b := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, b)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, b)
//	    z := x.Add(y)
//	    _ = z.MatMul(y.Transpose())
//	}
//
// # Supported Data Types
//
// The DType constraint admits:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (bytes, useful for images and masks)
//   - bool (boolean masks)
//
// # Devices
//
// Tensor data lives on a Device:
//   - CPU: pure Go kernels, parallelized across cores
//   - WebGPU: float32 subset on the GPU, delegating the rest to CPU
//
// # Memory Management
//
// Buffers are reference-counted and shared on Clone; operations that can
// return views do. RawTensor is the untyped representation underneath
// Tensor[T, B] and is what Backend implementations compute on.
package tensor
