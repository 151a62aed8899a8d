package metric

import (
	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/tensor"
)

// boxCoords is the number of regression targets per anchor.
const boxCoords = 4

// RPNL1Loss averages rpn_bbox_loss over foreground anchors.
//
// rpn_bbox_weight repeats each anchor's weight over its 4 box coordinates,
// so the anchor count is the number of positive weights divided by 4.
type RPNL1Loss struct{}

// Reduce implements Reducer.
func (RPNL1Loss) Reduce(b *Batch) (Delta, error) {
	loss, err := b.Get(Predictions, RoleRPNBBoxLoss)
	if err != nil {
		return Delta{}, err
	}
	weight, err := b.Get(Labels, RoleRPNBBoxWeight)
	if err != nil {
		return Delta{}, err
	}

	sum, err := sumLoss(loss, RoleRPNBBoxLoss)
	if err != nil {
		return Delta{}, err
	}
	positive, err := host.CountGreater(weight, 0)
	if err != nil {
		return Delta{}, errors.Wrapf(ErrUnsupportedDType, "%s: %v", RoleRPNBBoxWeight, err)
	}

	return Delta{Sum: sum, Count: float64(positive) / boxCoords}, nil
}

// RCNNL1Loss averages rcnn_bbox_loss over foreground regions, those whose
// rcnn_label is strictly positive. Background (0) and ignored (-1) regions
// are not counted.
type RCNNL1Loss struct {
	Fused bool
}

// Reduce implements Reducer.
func (r RCNNL1Loss) Reduce(b *Batch) (Delta, error) {
	loss, err := b.Get(Predictions, RoleRCNNBBoxLoss)
	if err != nil {
		return Delta{}, err
	}
	label, err := b.Get(labelChannel(r.Fused), RoleRCNNLabel)
	if err != nil {
		return Delta{}, err
	}

	sum, err := sumLoss(loss, RoleRCNNBBoxLoss)
	if err != nil {
		return Delta{}, err
	}
	foreground, err := host.CountGreater(label, 0)
	if err != nil {
		return Delta{}, errors.Wrapf(ErrUnsupportedDType, "%s: %v", RoleRCNNLabel, err)
	}

	return Delta{Sum: sum, Count: float64(foreground)}, nil
}

func sumLoss(loss *tensor.RawTensor, role Role) (float64, error) {
	sum, err := host.Sum(loss)
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedDType, "%s: %v", role, err)
	}
	return sum, nil
}
