// Package webgpu implements a GPU backend over wgpu-native using the
// zero-CGO go-webgpu binding.
//
// The backend accelerates a float32 subset: same-shape element-wise
// arithmetic, the element-wise math kernels, and 2-D matrix multiply.
// Every other operation, dtype, or shape combination falls through to
// the CPU backend, so the full tensor.Backend contract holds either
// way. The binding drives wgpu_native on Windows only; on other
// platforms New reports ErrUnavailable.
package webgpu

import "errors"

// ErrUnavailable is returned by New when no usable GPU adapter exists
// on this system.
var ErrUnavailable = errors.New("webgpu: not available on this platform")
