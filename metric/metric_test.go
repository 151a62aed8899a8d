// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package metric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/rcnn/metric"
	"github.com/born-ml/rcnn/tensor"
)

func mustTensor[T tensor.DType](t *testing.T, data []T, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return r
}

// TestSetRPN drives the public API the way a training loop does.
func TestSetRPN(t *testing.T) {
	set := metric.NewSet(metric.PipelineRPN)

	preds := []*tensor.RawTensor{
		mustTensor(t, []float32{0.2, 0.9, 0.4, 0.8, 0.1, 0.6}, 1, 2, 3),
		mustTensor(t, []float32{2, 2, 2, 2}, 1, 4),
	}
	labels := []*tensor.RawTensor{
		mustTensor(t, []float32{1, -1, 1}, 1, 3),
		mustTensor(t, make([]float32, 4), 1, 4),
		mustTensor(t, []float32{1, 1, 1, 1}, 1, 4),
	}

	require.NoError(t, set.Update(labels, preds))

	values := set.NameValues()
	require.Len(t, values, 3)
	assert.Equal(t, "RPNAcc", values[0].Name)
	assert.Equal(t, 1.0, values[0].Value.Float64())
	assert.Equal(t, "RPNL1Loss", values[2].Name)
	assert.InDelta(t, 8.0, values[2].Value.Float64(), 1e-12)

	set.Reset()
	assert.Equal(t, "RPNAcc=nan\tRPNLogLoss=nan\tRPNL1Loss=nan", set.String())
}

type countAll struct{}

func (countAll) Reduce(*metric.Batch) (metric.Delta, error) {
	return metric.Delta{Sum: 1, Count: 1}, nil
}

func TestCustomReducer(t *testing.T) {
	m := metric.New("Batches", metric.Names{}, countAll{})
	set := metric.NewSet(metric.PipelineRPN, m)

	assert.Error(t, set.Update(nil, nil))

	require.NoError(t, m.Update(nil, nil))
	assert.Equal(t, metric.State{Sum: 1, Count: 1}, m.State())
}

func TestKeypointOutsideFusedPipeline(t *testing.T) {
	m := metric.NewKeypointAccuracy(false)
	preds := []*tensor.RawTensor{
		mustTensor(t, []float32{0.5, 0.5}, 1, 2),
		mustTensor(t, []float32{0}, 1),
	}
	labels := []*tensor.RawTensor{
		mustTensor(t, []float32{0}, 1),
		mustTensor(t, []float32{0}, 1),
		mustTensor(t, []float32{0}, 1),
	}

	err := m.Update(labels, preds)
	assert.ErrorIs(t, err, metric.ErrMissingTensor)
}
