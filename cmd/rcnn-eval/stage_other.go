//go:build !windows

package main

import (
	"github.com/pkg/errors"
)

func newStager(device string) (stager, error) {
	if device == "webgpu" {
		return nil, errors.New("webgpu staging is only available on windows")
	}
	return hostStager{}, nil
}
