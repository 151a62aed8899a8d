package metric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/rcnn/internal/tensor"
)

// raw builds a CPU tensor from data, failing the test on a bad shape.
func raw[T tensor.DType](t *testing.T, data []T, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return r
}

func filled(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// rpnTensors is one region-proposal batch: 3 locations, 2 classes.
//
// Laid out location-major, the class probabilities are
// [[0.2,0.8],[0.9,0.1],[0.4,0.6]], so the predicted classes are [1,0,1].
// The box loss sums to 8 over 4 foreground anchors.
type rpnTensors struct {
	clsProb, bboxLoss              *tensor.RawTensor
	label, bboxTarget, bboxWeight *tensor.RawTensor
}

func newRPNTensors(t *testing.T, labels ...float32) rpnTensors {
	t.Helper()
	if labels == nil {
		labels = []float32{1, -1, 0}
	}
	return rpnTensors{
		clsProb:    raw(t, []float32{0.2, 0.9, 0.4, 0.8, 0.1, 0.6}, 1, 2, 3),
		bboxLoss:   raw(t, filled(16, 0.5), 1, 16),
		label:      raw(t, labels, 1, len(labels)),
		bboxTarget: raw(t, filled(16, 0), 1, 16),
		bboxWeight: raw(t, filled(16, 1), 1, 16),
	}
}

func (r rpnTensors) preds() []*tensor.RawTensor {
	return []*tensor.RawTensor{r.clsProb, r.bboxLoss}
}

func (r rpnTensors) labels() []*tensor.RawTensor {
	return []*tensor.RawTensor{r.label, r.bboxTarget, r.bboxWeight}
}

// rcnnTensors is one classifier batch of 4 regions and 2 classes.
// Predicted classes are [0,1,0,1]; labels are [0,0,1,-1].
type rcnnTensors struct {
	clsProb, bboxLoss             *tensor.RawTensor
	label, bboxTarget, bboxWeight *tensor.RawTensor
	maskProb, keypointsLabel      *tensor.RawTensor
}

func newRCNNTensors(t *testing.T) rcnnTensors {
	t.Helper()
	return rcnnTensors{
		clsProb: raw(t, []float32{
			0.9, 0.1,
			0.3, 0.7,
			0.6, 0.4,
			0.2, 0.8,
		}, 4, 2),
		bboxLoss:   raw(t, []float32{1, 2, 3, 4, 0, 0, 0, 0}, 4, 2),
		label:      raw(t, []float32{0, 0, 1, -1}, 4),
		bboxTarget: raw(t, filled(8, 0), 4, 2),
		bboxWeight: raw(t, filled(8, 1), 4, 2),
		// One instance, 3 keypoints: sides [0.9,0.2,0.6] vs [0.1,0.8,0.4].
		maskProb:       raw(t, []float32{0.9, 0.2, 0.6, 0.1, 0.8, 0.4}, 1, 2, 3),
		keypointsLabel: raw(t, []float32{0, 0, -1}, 1, 3),
	}
}

func (r rcnnTensors) preds() []*tensor.RawTensor {
	return []*tensor.RawTensor{r.clsProb, r.bboxLoss}
}

func (r rcnnTensors) labels() []*tensor.RawTensor {
	return []*tensor.RawTensor{r.label, r.bboxTarget, r.bboxWeight}
}

// fusedLists orders both stages the way the end-to-end pipeline emits them.
func fusedLists(rpn rpnTensors, rcnn rcnnTensors) (labels, preds []*tensor.RawTensor) {
	preds = []*tensor.RawTensor{
		rpn.clsProb, rpn.bboxLoss,
		rcnn.clsProb, rcnn.bboxLoss, rcnn.maskProb, rcnn.label, rcnn.keypointsLabel,
	}
	return rpn.labels(), preds
}
