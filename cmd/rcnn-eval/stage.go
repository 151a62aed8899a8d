package main

import (
	"github.com/born-ml/rcnn/internal/tensor"
)

// stager moves a dumped batch to where the metrics read it from.
type stager interface {
	Stage(tensors map[string]*tensor.RawTensor) (map[string]*tensor.RawTensor, error)
	Release()
}

// hostStager scores tensors where they were loaded.
type hostStager struct{}

func (hostStager) Stage(tensors map[string]*tensor.RawTensor) (map[string]*tensor.RawTensor, error) {
	return tensors, nil
}

func (hostStager) Release() {}
