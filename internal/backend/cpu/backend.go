// Package cpu implements the host kernels the metrics run on: arg-max,
// transposition, dtype conversion and summation over RawTensors.
//
// Unlike a training backend, every kernel returns an error instead of
// panicking: a malformed tensor is a caller contract violation that must
// reach the training driver as a value.
package cpu

import (
	"github.com/born-ml/rcnn/internal/tensor"
)

// CPUBackend runs tensor kernels on host memory.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// normalizeDim resolves a negative dimension and reports whether it is in range.
func normalizeDim(dim, ndim int) (int, bool) {
	if dim < 0 {
		dim += ndim
	}
	return dim, dim >= 0 && dim < ndim
}
