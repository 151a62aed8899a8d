// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/rcnn/internal/tensor"
)

// RawTensor is a dense host tensor.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed views via AsFloat32(), AsInt32(), etc.
//   - Zero-copy reshapes via Reshape()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32() // Type-safe access
type RawTensor = tensor.RawTensor

// NewRaw creates a zeroed tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a host tensor from a Go slice. The slice is copied.
//
// Example:
//
//	labels, err := tensor.FromSlice([]float32{1, -1, 0}, tensor.Shape{1, 3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromBytes creates a tensor from little-endian raw bytes. The bytes are copied.
func FromBytes(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.FromBytes(data, shape, dtype, device)
}
