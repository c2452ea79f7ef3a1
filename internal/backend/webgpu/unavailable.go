//go:build !windows

package webgpu

import (
	"github.com/axial-ml/axial/internal/backend/cpu"
	"github.com/axial-ml/axial/internal/tensor"
)

// Backend is a placeholder on platforms without wgpu-native support.
// New always fails, so no Backend value is ever handed out.
type Backend struct {
	*cpu.CPUBackend
}

// New reports that WebGPU is not supported on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU (unavailable)"
}

// Device returns the device this backend computes on.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// IsAvailable reports whether a WebGPU device can be initialized.
func IsAvailable() bool {
	return false
}
