// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package metric

import (
	"github.com/born-ml/rcnn/internal/metric"
)

// Metric is a named running average.
type Metric = metric.Metric

// Value is a running average that is undefined until an instance is counted.
type Value = metric.Value

// State is the accumulated sum and instance count of a metric.
type State = metric.State

// Delta is one batch's contribution to a State.
type Delta = metric.Delta

// Reducer turns one batch into a metric contribution.
// Implement it to plug a custom metric into New and Set.
type Reducer = metric.Reducer

// Batch maps tensor roles to the tensors of one batch.
type Batch = metric.Batch

// Set updates and reports the metrics of a pipeline together.
type Set = metric.Set

// NameValue is one metric's reported value.
type NameValue = metric.NameValue

// Names is the ordered list of tensor names on each channel.
type Names = metric.Names

// Pipeline selects which stages a training run executes.
type Pipeline = metric.Pipeline

// Pipelines.
const (
	PipelineRPN      Pipeline = metric.PipelineRPN
	PipelineRCNN     Pipeline = metric.PipelineRCNN
	PipelineEndToEnd Pipeline = metric.PipelineEndToEnd
)

// Channel is the list a tensor was delivered in.
type Channel = metric.Channel

// Channels.
const (
	Predictions Channel = metric.Predictions
	Labels      Channel = metric.Labels
)

// Role identifies a tensor by what it holds.
type Role = metric.Role

// Tensor roles.
const (
	RoleRPNClsProb     Role = metric.RoleRPNClsProb
	RoleRPNBBoxLoss    Role = metric.RoleRPNBBoxLoss
	RoleRPNLabel       Role = metric.RoleRPNLabel
	RoleRPNBBoxTarget  Role = metric.RoleRPNBBoxTarget
	RoleRPNBBoxWeight  Role = metric.RoleRPNBBoxWeight
	RoleRCNNClsProb    Role = metric.RoleRCNNClsProb
	RoleRCNNBBoxLoss   Role = metric.RoleRCNNBBoxLoss
	RoleRCNNLabel      Role = metric.RoleRCNNLabel
	RoleRCNNBBoxTarget Role = metric.RoleRCNNBBoxTarget
	RoleRCNNBBoxWeight Role = metric.RoleRCNNBBoxWeight
	RoleMaskProb       Role = metric.RoleMaskProb
	RoleKeypointsLabel Role = metric.RoleKeypointsLabel
)

// Errors returned by updates.
var (
	ErrShapeMismatch         = metric.ErrShapeMismatch
	ErrMissingTensor         = metric.ErrMissingTensor
	ErrUnknownTensor         = metric.ErrUnknownTensor
	ErrDuplicateTensor       = metric.ErrDuplicateTensor
	ErrLabelOutOfRange       = metric.ErrLabelOutOfRange
	ErrUnsupportedDType      = metric.ErrUnsupportedDType
	ErrNegativeContribution  = metric.ErrNegativeContribution
	ErrNonFiniteContribution = metric.ErrNonFiniteContribution
)

// New creates a metric from a reducer. names is the tensor layout Update expects.
func New(name string, names Names, r Reducer) *Metric {
	return metric.New(name, names, r)
}

// NewSet creates a set for a pipeline. With no metrics given it holds the
// pipeline's default metrics.
//
// Example:
//
//	set := metric.NewSet(metric.PipelineRPN)
//	err := set.Update(labels, preds)
func NewSet(p Pipeline, metrics ...*Metric) *Set {
	return metric.NewSet(p, metrics...)
}

// ParsePipeline parses "rpn", "rcnn" or "e2e".
func ParsePipeline(s string) (Pipeline, error) {
	return metric.ParsePipeline(s)
}

// PipelineNames returns the tensor names a pipeline emits, in order.
func PipelineNames(p Pipeline) Names {
	return metric.PipelineNames(p)
}

// Region-proposal metrics

// NewRPNAccuracy creates the RPNAcc metric.
func NewRPNAccuracy() *Metric { return metric.NewRPNAccuracy() }

// NewRPNLogLoss creates the RPNLogLoss metric.
func NewRPNLogLoss() *Metric { return metric.NewRPNLogLoss() }

// NewRPNL1Loss creates the RPNL1Loss metric.
func NewRPNL1Loss() *Metric { return metric.NewRPNL1Loss() }

// Region-classifier metrics. fused selects the end-to-end tensor layout.

// NewRCNNAccuracy creates the RCNNAcc metric.
func NewRCNNAccuracy(fused bool) *Metric { return metric.NewRCNNAccuracy(fused) }

// NewRCNNLogLoss creates the RCNNLogLoss metric.
func NewRCNNLogLoss(fused bool) *Metric { return metric.NewRCNNLogLoss(fused) }

// NewRCNNL1Loss creates the RCNNL1Loss metric.
func NewRCNNL1Loss(fused bool) *Metric { return metric.NewRCNNL1Loss(fused) }

// NewKeypointAccuracy creates the RCNNKeypointAcc metric. Outside the fused
// pipeline no keypoint tensors exist and every update fails.
func NewKeypointAccuracy(fused bool) *Metric { return metric.NewKeypointAccuracy(fused) }
