package cpu

import (
	"fmt"

	"github.com/born-ml/rcnn/internal/tensor"
)

// Transpose permutes the dimensions of a tensor and returns a contiguous copy.
//
// Example:
//
//	x: [2, 3, 4]
//	y, _ := backend.Transpose(x, 0, 2, 1) // [2, 4, 3]
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) (*tensor.RawTensor, error) {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		return nil, fmt.Errorf("transpose: axes length %d != ndim %d", len(axes), ndim)
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, fmt.Errorf("transpose: invalid axis %d for %dD tensor", ax, ndim)
		}
		if seen[ax] {
			return nil, fmt.Errorf("transpose: duplicate axis %d", ax)
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	transposeBytes(result.Data(), t.Data(), shape, axes, t.DType().Size())
	return result, nil
}

// transposeBytes copies elements of elemSize bytes from src into dst in permuted order.
// Working on bytes keeps the permutation independent of the element type.
func transposeBytes(dst, src []byte, srcShape tensor.Shape, axes []int, elemSize int) {
	ndim := len(srcShape)
	srcStrides := srcShape.ComputeStrides()

	// Stride in src for each dst dimension.
	permStrides := make([]int, ndim)
	dstShape := make([]int, ndim)
	for i, ax := range axes {
		permStrides[i] = srcStrides[ax]
		dstShape[i] = srcShape[ax]
	}

	coords := make([]int, ndim)
	total := srcShape.NumElements()
	for dstIdx := 0; dstIdx < total; dstIdx++ {
		srcIdx := 0
		for d := 0; d < ndim; d++ {
			srcIdx += coords[d] * permStrides[d]
		}
		copy(dst[dstIdx*elemSize:(dstIdx+1)*elemSize], src[srcIdx*elemSize:(srcIdx+1)*elemSize])

		// Advance dst coordinates (row-major odometer).
		for d := ndim - 1; d >= 0; d-- {
			coords[d]++
			if coords[d] < dstShape[d] {
				break
			}
			coords[d] = 0
		}
	}
}
