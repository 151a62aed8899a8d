package tensor

import (
	"fmt"
	"math"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// ByteSize returns NumElements × elemSize for a valid shape, failing when
// the product does not fit in an int.
func (s Shape) ByteSize(elemSize int) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	n := elemSize
	for _, dim := range s {
		if n > math.MaxInt/dim {
			return 0, fmt.Errorf("shape %v of %d-byte elements overflows int", []int(s), elemSize)
		}
		n *= dim
	}
	return n, nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Infer resolves a single -1 dimension so that the shape holds numElements.
//
// Examples:
//
//	Shape{2, -1}.Infer(6)    → (2, 3), nil
//	Shape{-1}.Infer(5)       → (5), nil
//	Shape{4, -1}.Infer(6)    → nil, Error (6 is not divisible by 4)
//	Shape{-1, -1}.Infer(6)   → nil, Error
func (s Shape) Infer(numElements int) (Shape, error) {
	out := s.Clone()
	unknown := -1
	known := 1
	for i, dim := range out {
		switch {
		case dim == -1:
			if unknown >= 0 {
				return nil, fmt.Errorf("shape %v: only one dimension can be inferred", []int(s))
			}
			unknown = i
		case dim <= 0:
			return nil, fmt.Errorf("shape %v: invalid dimension %d at index %d", []int(s), dim, i)
		default:
			known *= dim
		}
	}

	if unknown < 0 {
		if known != numElements {
			return nil, fmt.Errorf("shape %v holds %d elements, not %d", []int(s), known, numElements)
		}
		return out, nil
	}

	if numElements == 0 || numElements%known != 0 {
		return nil, fmt.Errorf("cannot infer shape %v for %d elements", []int(s), numElements)
	}
	out[unknown] = numElements / known
	return out, nil
}
