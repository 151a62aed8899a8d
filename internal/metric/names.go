// Package metric implements running evaluation metrics for a two-stage
// detector: region-proposal (RPN) and region-classification (RCNN)
// accuracy, log-loss and L1-loss, plus keypoint accuracy in end-to-end mode.
package metric

import (
	"fmt"
)

// Pipeline selects which stages a training run executes and therefore which
// tensors it emits.
type Pipeline int

// Supported pipelines.
const (
	// PipelineRPN trains the region-proposal stage alone.
	PipelineRPN Pipeline = iota
	// PipelineRCNN trains the classifier alone on precomputed proposals.
	PipelineRCNN
	// PipelineEndToEnd runs both stages in one pass. Classifier and keypoint
	// ground truth is computed inside the network and arrives as predictions.
	PipelineEndToEnd
)

// String returns the short pipeline name used on the command line.
func (p Pipeline) String() string {
	switch p {
	case PipelineRPN:
		return "rpn"
	case PipelineRCNN:
		return "rcnn"
	case PipelineEndToEnd:
		return "e2e"
	default:
		return fmt.Sprintf("Pipeline(%d)", int(p))
	}
}

// Fused reports whether the pipeline is the fused end-to-end variant.
func (p Pipeline) Fused() bool {
	return p == PipelineEndToEnd
}

// ParsePipeline parses "rpn", "rcnn" or "e2e".
func ParsePipeline(s string) (Pipeline, error) {
	switch s {
	case "rpn":
		return PipelineRPN, nil
	case "rcnn":
		return PipelineRCNN, nil
	case "e2e", "end2end":
		return PipelineEndToEnd, nil
	default:
		return 0, fmt.Errorf("unknown pipeline %q (want rpn, rcnn or e2e)", s)
	}
}

// Names is the ordered list of tensor names on each channel.
// Tensor i of a channel is named Preds[i] or Labels[i].
type Names struct {
	Preds  []string
	Labels []string
}

// Tensor names emitted by the network and the data iterator.
const (
	NameRPNClsProb     = "rpn_cls_prob"
	NameRPNBBoxLoss    = "rpn_bbox_loss"
	NameRPNLabel       = "rpn_label"
	NameRPNBBoxTarget  = "rpn_bbox_target"
	NameRPNBBoxWeight  = "rpn_bbox_weight"
	NameRCNNClsProb    = "rcnn_cls_prob"
	NameRCNNBBoxLoss   = "rcnn_bbox_loss"
	NameRCNNLabel      = "rcnn_label"
	NameRCNNBBoxTarget = "rcnn_bbox_target"
	NameRCNNBBoxWeight = "rcnn_bbox_weight"
	NameMaskProb       = "mask_prob"
	NameKeypointsLabel = "keypoints_label"
)

// RPNNames returns the tensor names of the region-proposal stage.
func RPNNames() Names {
	return Names{
		Preds:  []string{NameRPNClsProb, NameRPNBBoxLoss},
		Labels: []string{NameRPNLabel, NameRPNBBoxTarget, NameRPNBBoxWeight},
	}
}

// RCNNNames returns the tensor names of the classifier stage.
//
// When fused, the RPN predictions come first, the classifier predictions are
// followed by the keypoint probabilities and the in-graph classifier and
// keypoint labels, and the label channel carries only the RPN labels.
func RCNNNames(fused bool) Names {
	preds := []string{NameRCNNClsProb, NameRCNNBBoxLoss}
	labels := []string{NameRCNNLabel, NameRCNNBBoxTarget, NameRCNNBBoxWeight}
	if !fused {
		return Names{Preds: preds, Labels: labels}
	}

	rpn := RPNNames()
	preds = append(preds, NameMaskProb, NameRCNNLabel, NameKeypointsLabel)
	return Names{
		Preds:  append(rpn.Preds, preds...),
		Labels: rpn.Labels,
	}
}

// PipelineNames returns the tensor names a pipeline emits.
func PipelineNames(p Pipeline) Names {
	switch p {
	case PipelineRPN:
		return RPNNames()
	case PipelineRCNN:
		return RCNNNames(false)
	default:
		return RCNNNames(true)
	}
}

// Role identifies a tensor by what it holds rather than where it sits in a list.
type Role int

// Tensor roles.
const (
	RoleRPNClsProb Role = iota
	RoleRPNBBoxLoss
	RoleRPNLabel
	RoleRPNBBoxTarget
	RoleRPNBBoxWeight
	RoleRCNNClsProb
	RoleRCNNBBoxLoss
	RoleRCNNLabel
	RoleRCNNBBoxTarget
	RoleRCNNBBoxWeight
	RoleMaskProb
	RoleKeypointsLabel
	numRoles
)

var roleNames = [numRoles]string{
	RoleRPNClsProb:     NameRPNClsProb,
	RoleRPNBBoxLoss:    NameRPNBBoxLoss,
	RoleRPNLabel:       NameRPNLabel,
	RoleRPNBBoxTarget:  NameRPNBBoxTarget,
	RoleRPNBBoxWeight:  NameRPNBBoxWeight,
	RoleRCNNClsProb:    NameRCNNClsProb,
	RoleRCNNBBoxLoss:   NameRCNNBBoxLoss,
	RoleRCNNLabel:      NameRCNNLabel,
	RoleRCNNBBoxTarget: NameRCNNBBoxTarget,
	RoleRCNNBBoxWeight: NameRCNNBBoxWeight,
	RoleMaskProb:       NameMaskProb,
	RoleKeypointsLabel: NameKeypointsLabel,
}

// String returns the tensor name of the role.
func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// RoleOf resolves a tensor name to its role.
func RoleOf(name string) (Role, bool) {
	for r, n := range roleNames {
		if n == name {
			return Role(r), true
		}
	}
	return 0, false
}
