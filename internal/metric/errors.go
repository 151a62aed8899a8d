package metric

import (
	"github.com/pkg/errors"
)

// Errors returned by metric updates. They are wrapped with the metric name
// and tensor role; match them with errors.Is.
var (
	// ErrShapeMismatch reports prediction/label shapes that cannot be brought
	// into a comparable layout.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrMissingTensor reports a required tensor role absent from a batch.
	ErrMissingTensor = errors.New("missing tensor")

	// ErrUnknownTensor reports a tensor name with no known role.
	ErrUnknownTensor = errors.New("unknown tensor name")

	// ErrDuplicateTensor reports a name bound twice in one channel.
	ErrDuplicateTensor = errors.New("duplicate tensor name")

	// ErrLabelOutOfRange reports a kept label with no matching class column.
	ErrLabelOutOfRange = errors.New("label out of range")

	// ErrUnsupportedDType reports a tensor whose dtype cannot be read as numbers.
	ErrUnsupportedDType = errors.New("unsupported dtype")

	// ErrNegativeContribution reports a batch that would decrease an accumulator.
	ErrNegativeContribution = errors.New("negative contribution")

	// ErrNonFiniteContribution reports a batch whose sum or count is NaN or
	// infinite, e.g. a NaN box loss.
	ErrNonFiniteContribution = errors.New("non-finite contribution")
)
