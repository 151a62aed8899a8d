//go:build windows

package main

import (
	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/device/webgpu"
	"github.com/born-ml/rcnn/internal/tensor"
)

func newStager(device string) (stager, error) {
	if device != "webgpu" {
		return hostStager{}, nil
	}
	r, err := webgpu.New()
	if err != nil {
		return nil, err
	}
	return &gpuStager{readback: r}, nil
}

// gpuStager round-trips every tensor through a WebGPU buffer.
type gpuStager struct {
	readback *webgpu.Readback
}

func (s *gpuStager) Stage(tensors map[string]*tensor.RawTensor) (map[string]*tensor.RawTensor, error) {
	out := make(map[string]*tensor.RawTensor, len(tensors))
	for name, t := range tensors {
		host, err := s.readback.RoundTrip(t)
		if err != nil {
			return nil, errors.WithMessage(err, name)
		}
		out[name] = host
	}
	return out, nil
}

func (s *gpuStager) Release() {
	s.readback.Release()
}
