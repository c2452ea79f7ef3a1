// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/axial-ml/axial/internal/tensor"

// Backend is the contract compute implementations satisfy. Backends operate
// on RawTensor values; shape and dtype checking happens in the layers above,
// and backends panic with "op: detail" messages on malformed input.
//
// Implementations:
//   - backend/cpu: pure Go kernels, parallelized across cores
//   - backend/webgpu: float32 subset on the GPU, delegating the rest to CPU
//
// Example:
//
//	import (
//	    "github.com/axial-ml/axial/backend/cpu"
//	    "github.com/axial-ml/axial/tensor"
//	)
//
//	b := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, b)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, b)
//	z := x.Add(y) // runs b.Add under the hood
type Backend = tensor.Backend

// PadMode selects how Pad fills the added border elements.
type PadMode = tensor.PadMode

// Padding modes.
const (
	PadConstant PadMode = tensor.PadConstant
	PadEdge     PadMode = tensor.PadEdge
	PadReflect  PadMode = tensor.PadReflect
)
