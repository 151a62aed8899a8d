// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the host tensors fed to detector metrics.
//
// # Overview
//
// A RawTensor is a dense, row-major buffer with a shape and a runtime data
// type. Metrics only read tensors, so the package offers construction, typed
// views and zero-copy reshapes, nothing more.
//
// # Basic Usage
//
//	import "github.com/born-ml/rcnn/tensor"
//
//	probs, err := tensor.FromSlice([]float32{0.2, 0.9, 0.4, 0.8, 0.1, 0.6}, tensor.Shape{1, 2, 3})
//	if err != nil {
//	    return err
//	}
//	rows, err := probs.Reshape(tensor.Shape{-1, 3}) // (2, 3), shares the buffer
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (probabilities and losses)
//   - int32, int64 (class labels)
//   - uint8 (compact labels and weights)
//   - bool (masks; not readable by the metrics)
//
// # Device Support
//
// Tensors always hold host memory. The Device field records where the data
// was read back from:
//   - CPU: built on the host
//   - WebGPU: copied out of a GPU buffer (Windows)
package tensor
