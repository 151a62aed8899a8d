// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/rcnn/internal/backend/cpu"
)

// Backend runs host kernels on tensors in CPU memory.
// Kernels report unsupported dtypes and bad axes as errors.
type Backend = internalcpu.CPUBackend

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/rcnn/backend/cpu"
//	    "github.com/born-ml/rcnn/tensor"
//	)
//
//	func main() {
//	    host := cpu.New()
//	    probs, _ := tensor.FromSlice([]float32{0.2, 0.8, 0.9, 0.1}, tensor.Shape{2, 2})
//	    classes, _ := host.Argmax(probs, 1) // [1 0]
//	}
func New() *Backend {
	return internalcpu.New()
}
