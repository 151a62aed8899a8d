// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go host kernels the metrics are built on.
//
// # Overview
//
// Custom metrics implement metric.Reducer and usually need the same few
// operations as the built-in ones:
//   - Argmax over one axis (first maximum wins)
//   - Transpose by an axis permutation
//   - Float64s / Int32s to read any numeric tensor as a Go slice
//   - Sum and CountGreater reductions
//
// # Basic Usage
//
//	host := cpu.New()
//	classes, err := host.Argmax(probs, -1)
//	labels, err := host.Int32s(labelTensor) // floats truncate toward zero
//
// # Thread Safety
//
// The backend is stateless and safe for concurrent use. Kernels never modify
// their inputs.
package cpu
