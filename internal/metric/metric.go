package metric

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/tensor"
)

// State is a running accumulation: the summed metric and the number of
// instances it was summed over.
type State struct {
	Sum   float64
	Count float64
}

// Delta is one batch's contribution to a State. Both fields are >= 0.
type Delta struct {
	Sum   float64
	Count float64
}

// Value is a running average that may be undefined.
// OK is false until at least one instance has been counted.
type Value struct {
	Average float64
	OK      bool
}

// Float64 returns the average, or NaN when the value is undefined.
func (v Value) Float64() float64 {
	if !v.OK {
		return math.NaN()
	}
	return v.Average
}

// String formats the average with six decimals, or "nan" when undefined.
func (v Value) String() string {
	if !v.OK {
		return "nan"
	}
	return strconv.FormatFloat(v.Average, 'f', 6, 64)
}

// Reducer turns one batch into a metric contribution.
//
// Implementations locate their tensors in the batch, reduce them and return
// the delta. They hold no state beyond their configuration; a Set calls the
// reducers of its metrics concurrently on the same batch.
type Reducer interface {
	Reduce(b *Batch) (Delta, error)
}

// Metric is a named running average driven by a Reducer.
//
// A Metric is not safe for concurrent use; the training loop owns it.
type Metric struct {
	name    string
	scope   string
	names   Names
	reducer Reducer
	state   State
}

// New creates a metric. names is the tensor layout Update expects.
func New(name string, names Names, r Reducer) *Metric {
	return &Metric{
		name:    name,
		names:   names,
		reducer: r,
	}
}

// Name returns the metric name, e.g. "RPNAcc".
func (m *Metric) Name() string {
	return m.name
}

// ScopeName returns a name unique to this metric instance.
// It distinguishes metrics that share a display name inside a Set.
func (m *Metric) ScopeName() string {
	if m.scope == "" {
		m.scope = fmt.Sprintf("%s_uuid_%s", m.name, uuid.NewString())
	}
	return m.scope
}

// Names returns the tensor layout Update expects.
func (m *Metric) Names() Names {
	return m.names
}

// Update adds one batch. labels and preds must be ordered as Names().
// Tensors past the end of a name list are ignored, so a region-proposal
// metric accepts the longer lists of the end-to-end pipeline; a list shorter
// than its names fails with ErrMissingTensor.
// On error the state is left untouched.
func (m *Metric) Update(labels, preds []*tensor.RawTensor) error {
	b, err := Bind(m.names, labels, preds)
	if err != nil {
		return errors.WithMessagef(err, "metric %s", m.name)
	}
	return m.UpdateBatch(b)
}

// UpdateBatch adds one already-bound batch.
// On error the state is left untouched.
func (m *Metric) UpdateBatch(b *Batch) error {
	d, err := m.reduce(b)
	if err != nil {
		return err
	}
	m.commit(d)
	return nil
}

func (m *Metric) reduce(b *Batch) (Delta, error) {
	d, err := m.reducer.Reduce(b)
	if err != nil {
		return Delta{}, errors.WithMessagef(err, "metric %s", m.name)
	}
	if !finite(d.Sum) || !finite(d.Count) {
		return Delta{}, errors.Wrapf(ErrNonFiniteContribution, "metric %s: sum %v, count %v", m.name, d.Sum, d.Count)
	}
	if d.Sum < 0 || d.Count < 0 {
		return Delta{}, errors.Wrapf(ErrNegativeContribution, "metric %s: sum %v, count %v", m.name, d.Sum, d.Count)
	}
	return d, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (m *Metric) commit(d Delta) {
	m.state.Sum += d.Sum
	m.state.Count += d.Count
}

// Reset clears the accumulated state.
func (m *Metric) Reset() {
	m.state = State{}
}

// State returns a snapshot of the accumulated state.
func (m *Metric) State() State {
	return m.state
}

// Value returns the running average Sum/Count, undefined while Count is 0.
func (m *Metric) Value() Value {
	if m.state.Count <= 0 {
		return Value{}
	}
	return Value{Average: m.state.Sum / m.state.Count, OK: true}
}

// Get returns the metric name and its current value.
func (m *Metric) Get() (string, Value) {
	return m.name, m.Value()
}
