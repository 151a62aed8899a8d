package metric

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/parallel"
	"github.com/born-ml/rcnn/internal/tensor"
)

// NameValue is one metric's reported value.
type NameValue struct {
	Name  string
	Value Value
}

// Set is the composite metric a training loop reports: every metric of a
// pipeline, updated together from one batch.
type Set struct {
	pipeline Pipeline
	metrics  []*Metric
	byScope  map[string]*Metric
	parallel parallel.Config
}

// NewSet creates a set for a pipeline. With no metrics given it holds
// DefaultMetrics(p).
func NewSet(p Pipeline, metrics ...*Metric) *Set {
	if len(metrics) == 0 {
		metrics = DefaultMetrics(p)
	}
	s := &Set{
		pipeline: p,
		byScope:  make(map[string]*Metric, len(metrics)),
		parallel: parallel.DefaultConfig(),
	}
	for _, m := range metrics {
		s.Add(m)
	}
	return s
}

// Add appends a metric. Adding the same metric twice is a no-op.
func (s *Set) Add(m *Metric) {
	scope := m.ScopeName()
	if _, ok := s.byScope[scope]; ok {
		return
	}
	s.byScope[scope] = m
	s.metrics = append(s.metrics, m)
}

// Pipeline returns the pipeline whose tensor layout Update expects.
func (s *Set) Pipeline() Pipeline {
	return s.pipeline
}

// Metrics returns the metrics in report order.
func (s *Set) Metrics() []*Metric {
	out := make([]*Metric, len(s.metrics))
	copy(out, s.metrics)
	return out
}

// Lookup returns the metric with the given scope name.
func (s *Set) Lookup(scope string) (*Metric, bool) {
	m, ok := s.byScope[scope]
	return m, ok
}

// Update binds the tensor lists with the pipeline's names and updates every
// metric. As with Metric.Update, tensors past the end of a name list are
// ignored.
func (s *Set) Update(labels, preds []*tensor.RawTensor) error {
	b, err := BindPipeline(s.pipeline, labels, preds)
	if err != nil {
		return errors.WithMessagef(err, "pipeline %s", s.pipeline)
	}
	return s.UpdateBatch(b)
}

// UpdateBatch updates every metric from one batch. Either all metrics take
// the batch or none do; the error reported is that of the first failing
// metric in report order.
//
// Reductions run concurrently. The batch is only read.
func (s *Set) UpdateBatch(b *Batch) error {
	deltas := make([]Delta, len(s.metrics))
	err := parallel.For(len(s.metrics), func(i int) error {
		d, err := s.metrics[i].reduce(b)
		deltas[i] = d
		return err
	}, s.parallel)
	if err != nil {
		return err
	}
	for i, m := range s.metrics {
		m.commit(deltas[i])
	}
	return nil
}

// Reset clears every metric.
func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// NameValues returns every metric's current value in report order.
func (s *Set) NameValues() []NameValue {
	out := make([]NameValue, len(s.metrics))
	for i, m := range s.metrics {
		name, v := m.Get()
		out[i] = NameValue{Name: name, Value: v}
	}
	return out
}

// String formats the values as tab-separated Name=value pairs.
func (s *Set) String() string {
	parts := make([]string, 0, len(s.metrics))
	for _, nv := range s.NameValues() {
		parts = append(parts, nv.Name+"="+nv.Value.String())
	}
	return strings.Join(parts, "\t")
}
