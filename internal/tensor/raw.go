package tensor

import (
	"fmt"
	"unsafe"
)

// Device represents the device a tensor buffer was produced on.
type Device int

// Supported devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level host tensor representation: a row-major byte
// buffer tagged with its shape and data type.
//
// Views created by Reshape share the buffer with their source.
type RawTensor struct {
	data   []byte   // Host memory
	shape  Shape    // Tensor dimensions
	stride []int    // Memory strides (row-major)
	dtype  DataType // Runtime type information
	device Device   // Device the data was copied from
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zeroed.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("unsupported dtype %d", int(dtype))
	}
	size, err := shape.ByteSize(dtype.Size())
	if err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, size),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// FromSlice creates a host tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	probs, err := tensor.FromSlice([]float32{0.2, 0.8, 0.9, 0.1}, tensor.Shape{1, 2, 2})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	raw, err := NewRaw(shape, inferDataType[T](), CPU)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // unsafe.Slice for zero-copy typed view, bounds checked by NumElements()
	copy(unsafe.Slice((*T)(unsafe.Pointer(&raw.data[0])), len(data)), data)
	return raw, nil
}

// FromBytes creates a tensor from little-endian raw bytes.
// The bytes are copied; len(data) must equal NumElements × dtype size.
// The length is checked before any memory is allocated.
func FromBytes(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("unsupported dtype %d", int(dtype))
	}
	size, err := shape.ByteSize(dtype.Size())
	if err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != size {
		return nil, fmt.Errorf("shape %v of %s requires %d bytes, but got %d",
			shape, dtype, size, len(data))
	}

	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	copy(raw.data, data)
	return raw, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the device the tensor data came from.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// Reshape returns a view with a new shape over the same buffer.
// One dimension may be -1 and is inferred from the element count.
func (r *RawTensor) Reshape(newShape Shape) (*RawTensor, error) {
	shape, err := newShape.Infer(r.NumElements())
	if err != nil {
		return nil, fmt.Errorf("reshape %v: %w", r.shape, err)
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape,
		stride: shape.ComputeStrides(),
		dtype:  r.dtype,
		device: r.device,
	}, nil
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*int64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	return r.data[:r.NumElements()]
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("tensor dtype is %s, not bool", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*bool)(unsafe.Pointer(&r.data[0])), r.NumElements())
}
