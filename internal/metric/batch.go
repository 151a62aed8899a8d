package metric

import (
	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/tensor"
)

// Channel is the list a tensor was delivered in.
type Channel int

// Channels of a batch.
const (
	Predictions Channel = iota
	Labels
)

// String returns "preds" or "labels".
func (c Channel) String() string {
	if c == Predictions {
		return "preds"
	}
	return "labels"
}

// Batch maps tensor roles to the tensors of one training batch, per channel.
//
// A Batch only borrows its tensors: build it for one update and drop it.
// Channels are kept apart because the same role may legitimately appear in
// both (the fused pipeline emits rcnn_label as a prediction).
type Batch struct {
	tensors [2]map[Role]*tensor.RawTensor
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{
		tensors: [2]map[Role]*tensor.RawTensor{
			make(map[Role]*tensor.RawTensor),
			make(map[Role]*tensor.RawTensor),
		},
	}
}

// Set binds a tensor to a role, replacing any previous binding.
func (b *Batch) Set(ch Channel, role Role, t *tensor.RawTensor) {
	b.tensors[ch][role] = t
}

// Get returns the tensor bound to role on channel ch.
func (b *Batch) Get(ch Channel, role Role) (*tensor.RawTensor, error) {
	t, ok := b.tensors[ch][role]
	if !ok || t == nil {
		return nil, errors.Wrapf(ErrMissingTensor, "%s not bound in %s", role, ch)
	}
	return t, nil
}

// Bind pairs ordered tensor lists with their names.
//
// Tensor i of each channel gets name i. Tensors past the end of a name list
// belong to stages the names do not describe and are left unbound; a list
// shorter than its names fails with ErrMissingTensor. Unknown and repeated
// names are rejected here so that reducers never see them.
func Bind(names Names, labels, preds []*tensor.RawTensor) (*Batch, error) {
	b := NewBatch()
	if err := b.bind(Predictions, names.Preds, preds); err != nil {
		return nil, err
	}
	if err := b.bind(Labels, names.Labels, labels); err != nil {
		return nil, err
	}
	return b, nil
}

// BindPipeline binds tensor lists using the names a pipeline emits.
func BindPipeline(p Pipeline, labels, preds []*tensor.RawTensor) (*Batch, error) {
	return Bind(PipelineNames(p), labels, preds)
}

// BindNamed binds tensors looked up by name, as read from a batch dump.
// Names absent from the map fail with ErrMissingTensor.
func BindNamed(names Names, tensors map[string]*tensor.RawTensor) (*Batch, error) {
	lookup := func(list []string) ([]*tensor.RawTensor, error) {
		out := make([]*tensor.RawTensor, len(list))
		for i, name := range list {
			t, ok := tensors[name]
			if !ok {
				return nil, errors.Wrapf(ErrMissingTensor, "%s", name)
			}
			out[i] = t
		}
		return out, nil
	}

	preds, err := lookup(names.Preds)
	if err != nil {
		return nil, err
	}
	labels, err := lookup(names.Labels)
	if err != nil {
		return nil, err
	}
	return Bind(names, labels, preds)
}

func (b *Batch) bind(ch Channel, names []string, list []*tensor.RawTensor) error {
	if len(list) < len(names) {
		return errors.Wrapf(ErrMissingTensor, "%s: got %d tensors for %d names %v",
			ch, len(list), len(names), names)
	}

	for i, name := range names {
		role, ok := RoleOf(name)
		if !ok {
			return errors.Wrapf(ErrUnknownTensor, "%s[%d] %q", ch, i, name)
		}
		if _, dup := b.tensors[ch][role]; dup {
			return errors.Wrapf(ErrDuplicateTensor, "%s[%d] %q", ch, i, name)
		}
		if list[i] == nil {
			return errors.Wrapf(ErrMissingTensor, "%s[%d] %q is nil", ch, i, name)
		}
		b.tensors[ch][role] = list[i]
	}
	return nil
}
