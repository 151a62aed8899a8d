// Package webgpu copies tensors between host memory and WebGPU buffers so
// that metrics can consume network outputs that live on the GPU.
//
// Metrics always run on the host. When a training loop keeps its outputs in
// WebGPU storage buffers, Readback.ToHost stages them through a mappable
// buffer and wraps the bytes in a host tensor tagged with tensor.WebGPU.
//
// The package is only implemented on Windows, where the native wgpu library
// is loaded without cgo.
package webgpu
