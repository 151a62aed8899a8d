package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/rcnn/internal/tensor"
)

// Argmax returns the index of the maximum value along the specified dimension.
//
// The reduced dimension is removed from the result, which has dtype int32.
// Ties resolve to the first maximum, like NumPy.
//
// Example:
//
//	x: [2, 3, 4] (batch, class, location)
//	y, _ := backend.Argmax(x, 1) // [2, 4]
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	ndim := len(shape)

	d, ok := normalizeDim(dim, ndim)
	if !ok {
		return nil, fmt.Errorf("argmax: dimension %d out of range for %dD tensor", dim, ndim)
	}
	dim = d

	// Calculate output shape (remove the reduced dimension)
	outShape := make(tensor.Shape, 0, ndim-1)
	for i := 0; i < ndim; i++ {
		if i != dim {
			outShape = append(outShape, shape[i])
		}
	}

	result, err := tensor.NewRaw(outShape, tensor.Int32, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("argmax: %w", err)
	}

	switch x.DType() {
	case tensor.Float32:
		argmaxDim(x.AsFloat32(), result.AsInt32(), shape, dim)
	case tensor.Float64:
		argmaxDim(x.AsFloat64(), result.AsInt32(), shape, dim)
	case tensor.Int32:
		argmaxDim(x.AsInt32(), result.AsInt32(), shape, dim)
	case tensor.Int64:
		argmaxDim(x.AsInt64(), result.AsInt32(), shape, dim)
	default:
		return nil, fmt.Errorf("argmax: unsupported dtype %s", x.DType())
	}

	return result, nil
}

func argmaxDim[T float32 | float64 | int32 | int64](data []T, result []int32, shape tensor.Shape, dim int) {
	strides := shape.ComputeStrides()
	dimSize := shape[dim]
	dimStride := strides[dim]

	// Groups are visited in row-major order of the remaining dimensions,
	// which is the layout of the result.
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	inner := dimStride

	resultIdx := 0
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			baseIdx := o*dimSize*dimStride + in

			maxVal := data[baseIdx]
			maxIdx := int32(0)
			for i := 1; i < dimSize; i++ {
				idx := baseIdx + i*dimStride
				if data[idx] > maxVal {
					maxVal = data[idx]
					//nolint:gosec // G115: Dimension size < 2^31, safe conversion to int32.
					maxIdx = int32(i)
				}
			}

			result[resultIdx] = maxIdx
			resultIdx++
		}
	}
}

// Sum adds all elements of a numeric tensor in float64 precision.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) (float64, error) {
	values, err := cpu.Float64s(x)
	if err != nil {
		return 0, fmt.Errorf("sum: %w", err)
	}
	return floats.Sum(values), nil
}

// CountGreater returns how many elements of x are strictly greater than threshold.
func (cpu *CPUBackend) CountGreater(x *tensor.RawTensor, threshold float64) (int, error) {
	values, err := cpu.Float64s(x)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	n := 0
	for _, v := range values {
		if v > threshold {
			n++
		}
	}
	return n, nil
}
