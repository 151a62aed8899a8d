package metric

import (
	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/backend/cpu"
	"github.com/born-ml/rcnn/internal/tensor"
)

// host runs every reduction; it is stateless and shared.
var host = cpu.New()

// ignoreLabel marks instances excluded from accuracy and log-loss.
const ignoreLabel = -1

// labelChannel is where classifier and keypoint ground truth arrives.
func labelChannel(fused bool) Channel {
	if fused {
		return Predictions
	}
	return Labels
}

// RPNAccuracy scores the proposal classifier: arg-max over the channel axis
// of a (batch, class, locations...) probability tensor against rpn_label.
type RPNAccuracy struct{}

// Reduce implements Reducer.
func (RPNAccuracy) Reduce(b *Batch) (Delta, error) {
	pred, err := b.Get(Predictions, RoleRPNClsProb)
	if err != nil {
		return Delta{}, err
	}
	label, err := b.Get(Labels, RoleRPNLabel)
	if err != nil {
		return Delta{}, err
	}

	if len(pred.Shape()) < 2 {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: want (batch, class, ...), got %v",
			RoleRPNClsProb, pred.Shape())
	}
	predicted, err := argmax(pred, RoleRPNClsProb, 1)
	if err != nil {
		return Delta{}, err
	}
	truth, err := readLabels(label, RoleRPNLabel)
	if err != nil {
		return Delta{}, err
	}

	return countCorrect(predicted, truth, RoleRPNClsProb, RoleRPNLabel)
}

// RCNNAccuracy scores the region classifier: arg-max over the last axis of
// rcnn_cls_prob, every leading axis flattened into instances.
type RCNNAccuracy struct {
	Fused bool
}

// Reduce implements Reducer.
func (r RCNNAccuracy) Reduce(b *Batch) (Delta, error) {
	pred, err := b.Get(Predictions, RoleRCNNClsProb)
	if err != nil {
		return Delta{}, err
	}
	label, err := b.Get(labelChannel(r.Fused), RoleRCNNLabel)
	if err != nil {
		return Delta{}, err
	}

	if len(pred.Shape()) == 0 {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: scalar has no class axis", RoleRCNNClsProb)
	}
	predicted, err := argmax(pred, RoleRCNNClsProb, -1)
	if err != nil {
		return Delta{}, err
	}
	truth, err := readLabels(label, RoleRCNNLabel)
	if err != nil {
		return Delta{}, err
	}

	return countCorrect(predicted, truth, RoleRCNNClsProb, RoleRCNNLabel)
}

// KeypointAccuracy scores the keypoint head. mask_prob is read as
// (instances, 2, K): for every keypoint the 2-way axis is arg-maxed and
// compared with keypoints_label.
//
// Only the fused pipeline emits mask_prob; outside it every update fails
// with ErrMissingTensor.
type KeypointAccuracy struct {
	Fused bool
}

// Reduce implements Reducer.
func (r KeypointAccuracy) Reduce(b *Batch) (Delta, error) {
	pred, err := b.Get(Predictions, RoleMaskProb)
	if err != nil {
		return Delta{}, err
	}
	label, err := b.Get(labelChannel(r.Fused), RoleKeypointsLabel)
	if err != nil {
		return Delta{}, err
	}

	shape := pred.Shape()
	if len(shape) == 0 {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: scalar has no keypoint axis", RoleMaskProb)
	}
	k := shape[len(shape)-1]
	sides, err := pred.Reshape(tensor.Shape{-1, 2, k})
	if err != nil {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: %v", RoleMaskProb, err)
	}
	predicted, err := argmax(sides, RoleMaskProb, 1)
	if err != nil {
		return Delta{}, err
	}
	truth, err := readLabels(label, RoleKeypointsLabel)
	if err != nil {
		return Delta{}, err
	}

	return countCorrect(predicted, truth, RoleMaskProb, RoleKeypointsLabel)
}

// argmax reduces dim of a probability tensor and flattens the result.
func argmax(pred *tensor.RawTensor, role Role, dim int) ([]int32, error) {
	if !pred.DType().IsFloat() {
		return nil, errors.Wrapf(ErrUnsupportedDType, "%s: probabilities must be float, got %s", role, pred.DType())
	}
	idx, err := host.Argmax(pred, dim)
	if err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s: %v", role, err)
	}
	return idx.AsInt32(), nil
}

// readLabels flattens a label tensor into one class index per instance.
func readLabels(label *tensor.RawTensor, role Role) ([]int32, error) {
	truth, err := host.Int32s(label)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedDType, "%s: %v", role, err)
	}
	return truth, nil
}

// countCorrect compares predicted and true classes, skipping ignored labels.
func countCorrect(predicted, truth []int32, predRole, labelRole Role) (Delta, error) {
	if len(predicted) != len(truth) {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s yields %d instances, %s has %d",
			predRole, len(predicted), labelRole, len(truth))
	}

	var correct, kept int
	for i, l := range truth {
		if l == ignoreLabel {
			continue
		}
		kept++
		if predicted[i] == l {
			correct++
		}
	}
	return Delta{Sum: float64(correct), Count: float64(kept)}, nil
}
