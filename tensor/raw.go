// Copyright 2025 Axial ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/axial-ml/axial/internal/tensor"
)

// RawTensor is the untyped tensor representation backends compute on.
//
// RawTensor carries:
//   - Shape, dtype and device via Shape(), DType(), Device()
//   - Typed data access via AsFloat32(), AsInt64(), etc.
//   - Reference-counted buffers shared across Clone()
//
// Most users should use the typed Tensor[T, B] instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
type RawTensor = tensor.RawTensor
