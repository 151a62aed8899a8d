//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu moves network outputs from WebGPU buffers to host tensors
// so that the metrics can score them.
//
// Example:
//
//	import (
//	    "github.com/born-ml/rcnn/backend/webgpu"
//	    "github.com/born-ml/rcnn/tensor"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    probs, err := gpu.ToHost(clsProbBuffer, tensor.Shape{1, 2, 38, 50}, tensor.Float32)
//	}
package webgpu

import (
	"github.com/born-ml/rcnn/internal/device/webgpu"
)

// Readback owns the WebGPU device used for host transfers.
type Readback = webgpu.Readback

// New creates a readback on the default high-performance adapter.
// Returns an error if WebGPU is not available.
func New() (*Readback, error) {
	return webgpu.New()
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() bool {
	return webgpu.IsAvailable()
}
