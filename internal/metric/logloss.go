package metric

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/rcnn/internal/tensor"
)

// logEpsilon keeps -ln(p) finite when a predicted probability is exactly 0.
const logEpsilon = 1e-14

// RPNLogLoss is the negative log-likelihood of rpn_label under rpn_cls_prob.
//
// rpn_cls_prob is laid out (batch, class, locations...); it is viewed as
// (batch, class, -1), transposed to (batch, -1, class) and flattened to one
// row per label.
type RPNLogLoss struct{}

// Reduce implements Reducer.
func (RPNLogLoss) Reduce(b *Batch) (Delta, error) {
	pred, err := b.Get(Predictions, RoleRPNClsProb)
	if err != nil {
		return Delta{}, err
	}
	label, err := b.Get(Labels, RoleRPNLabel)
	if err != nil {
		return Delta{}, err
	}

	shape := pred.Shape()
	if len(shape) < 2 {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: want (batch, class, ...), got %v",
			RoleRPNClsProb, shape)
	}
	view, err := pred.Reshape(tensor.Shape{shape[0], shape[1], -1})
	if err != nil {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: %v", RoleRPNClsProb, err)
	}
	channelsLast, err := host.Transpose(view, 0, 2, 1)
	if err != nil {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: %v", RoleRPNClsProb, err)
	}

	truth, err := readLabels(label, RoleRPNLabel)
	if err != nil {
		return Delta{}, err
	}
	rows, err := channelsLast.Reshape(tensor.Shape{len(truth), -1})
	if err != nil {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s for %d labels: %v", RoleRPNClsProb, len(truth), err)
	}

	return negLogLikelihood(rows, truth, RoleRPNClsProb)
}

// RCNNLogLoss is the negative log-likelihood of rcnn_label under
// rcnn_cls_prob, every leading axis flattened into instances.
type RCNNLogLoss struct {
	Fused bool
}

// Reduce implements Reducer.
func (r RCNNLogLoss) Reduce(b *Batch) (Delta, error) {
	pred, err := b.Get(Predictions, RoleRCNNClsProb)
	if err != nil {
		return Delta{}, err
	}
	label, err := b.Get(labelChannel(r.Fused), RoleRCNNLabel)
	if err != nil {
		return Delta{}, err
	}

	shape := pred.Shape()
	if len(shape) == 0 {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: scalar has no class axis", RoleRCNNClsProb)
	}
	rows, err := pred.Reshape(tensor.Shape{-1, shape[len(shape)-1]})
	if err != nil {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s: %v", RoleRCNNClsProb, err)
	}

	truth, err := readLabels(label, RoleRCNNLabel)
	if err != nil {
		return Delta{}, err
	}
	if rows.Shape()[0] != len(truth) {
		return Delta{}, errors.Wrapf(ErrShapeMismatch, "%s has %d rows, %s has %d labels",
			RoleRCNNClsProb, rows.Shape()[0], RoleRCNNLabel, len(truth))
	}

	return negLogLikelihood(rows, truth, RoleRCNNClsProb)
}

// negLogLikelihood sums -ln(p[i, label[i]] + eps) over kept rows of a
// (rows, classes) probability matrix.
func negLogLikelihood(rows *tensor.RawTensor, truth []int32, role Role) (Delta, error) {
	if !rows.DType().IsFloat() {
		return Delta{}, errors.Wrapf(ErrUnsupportedDType, "%s: probabilities must be float, got %s", role, rows.DType())
	}
	probs, err := host.Float64s(rows)
	if err != nil {
		return Delta{}, errors.Wrapf(ErrUnsupportedDType, "%s: %v", role, err)
	}
	classes := rows.Shape()[1]

	losses := make([]float64, 0, len(truth))
	for i, l := range truth {
		if l == ignoreLabel {
			continue
		}
		if l < 0 || int(l) >= classes {
			return Delta{}, errors.Wrapf(ErrLabelOutOfRange, "%s: label %d at instance %d, %d classes",
				role, l, i, classes)
		}
		// p may exceed 1 by rounding; a loss below zero is clamped.
		losses = append(losses, math.Max(0, -math.Log(probs[i*classes+int(l)]+logEpsilon)))
	}

	return Delta{Sum: floats.Sum(losses), Count: float64(len(losses))}, nil
}
