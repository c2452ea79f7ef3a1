// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// # Overview
//
// The CPU backend implements every operation of the tensor.Backend contract
// in Go, with no CGO:
//   - kernels parallelized across cores via an internal worker pool
//   - float32, float64, int32, int64, uint8 and bool element types
//   - broadcasting, reductions, indexing and structured ops
//
// # Basic Usage
//
//	import (
//	    "github.com/axial-ml/axial"
//	    "github.com/axial-ml/axial/backend/cpu"
//	)
//
//	func main() {
//	    b := cpu.New()
//
//	    batch := axial.Axis{Name: "Batch", Size: 32}
//	    dim := axial.Axis{Name: "Dim", Size: 128}
//	    x := axial.Zeros[float32](axial.Axes(batch, dim), b)
//	    _ = x.Sum(batch)
//	}
//
// # Parallelism
//
// Kernels split element ranges across a worker pool sized from the CPU
// count; AXIAL_NUM_WORKERS pins the width for reproducible runs.
//
// # Thread Safety
//
// The backend is stateless and safe for concurrent use.
package cpu
