package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/rcnn/internal/tensor"
)

// Float64s returns the tensor's elements converted to float64.
// The result is always a fresh slice; the tensor is never modified.
func (cpu *CPUBackend) Float64s(x *tensor.RawTensor) ([]float64, error) {
	out := make([]float64, x.NumElements())

	switch x.DType() {
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			out[i] = float64(v)
		}
	case tensor.Float64:
		copy(out, x.AsFloat64())
	case tensor.Int32:
		for i, v := range x.AsInt32() {
			out[i] = float64(v)
		}
	case tensor.Int64:
		for i, v := range x.AsInt64() {
			out[i] = float64(v)
		}
	case tensor.Uint8:
		for i, v := range x.AsUint8() {
			out[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("float64s: unsupported dtype %s", x.DType())
	}

	return out, nil
}

// Int32s returns the tensor's elements converted to int32.
//
// Floating-point values truncate toward zero, which is how label tensors
// stored as floats (e.g. -1.0, 0.0, 3.0) map back to class indices.
// NaN, infinite and out-of-range values are rejected.
func (cpu *CPUBackend) Int32s(x *tensor.RawTensor) ([]int32, error) {
	out := make([]int32, x.NumElements())

	switch x.DType() {
	case tensor.Int32:
		copy(out, x.AsInt32())
	case tensor.Int64:
		for i, v := range x.AsInt64() {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, fmt.Errorf("int32s: value %d at index %d overflows int32", v, i)
			}
			out[i] = int32(v)
		}
	case tensor.Uint8:
		for i, v := range x.AsUint8() {
			out[i] = int32(v)
		}
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			iv, err := truncInt32(float64(v), i)
			if err != nil {
				return nil, err
			}
			out[i] = iv
		}
	case tensor.Float64:
		for i, v := range x.AsFloat64() {
			iv, err := truncInt32(v, i)
			if err != nil {
				return nil, err
			}
			out[i] = iv
		}
	default:
		return nil, fmt.Errorf("int32s: unsupported dtype %s", x.DType())
	}

	return out, nil
}

func truncInt32(v float64, i int) (int32, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("int32s: non-finite value %v at index %d", v, i)
	}
	t := math.Trunc(v)
	if t < math.MinInt32 || t > math.MaxInt32 {
		return 0, fmt.Errorf("int32s: value %v at index %d overflows int32", v, i)
	}
	return int32(t), nil
}
