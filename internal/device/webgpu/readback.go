//go:build windows

package webgpu

import (
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/tensor"
)

// Readback owns a WebGPU device used to move tensors to and from the GPU.
// It is safe for concurrent use.
type Readback struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

// New acquires a high-performance adapter and device.
// Returns an error if WebGPU is not available or initialization fails.
func New() (r *Readback, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if p := recover(); p != nil {
			r = nil
			err = errors.Errorf("webgpu: native library not available: %v", p)
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, errors.Wrap(err, "webgpu: failed to create instance")
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, errors.Wrap(err, "webgpu: failed to request adapter")
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(err, "webgpu: failed to request device")
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.New("webgpu: failed to get queue")
	}

	return &Readback{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
	}, nil
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	defer func() {
		if p := recover(); p != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Upload copies a host tensor into a new storage buffer.
// The buffer is padded with zeros to a multiple of 4 bytes.
// The caller releases the buffer.
func (r *Readback) Upload(t *tensor.RawTensor) (*wgpu.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.device == nil {
		return nil, errors.New("webgpu: readback released")
	}

	data := t.Data()
	size := alignedSize(uint64(len(data))) //nolint:gosec // G115: len is non-negative
	buffer := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	if buffer == nil {
		return nil, errors.Errorf("webgpu: failed to allocate %d bytes", size)
	}

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	copy(unsafe.Slice((*byte)(mappedPtr), size), data)
	buffer.Unmap()

	return buffer, nil
}

// ToHost copies a GPU buffer holding a dense tensor of the given shape and
// dtype into host memory. The source buffer must have CopySrc usage and hold
// at least the tensor's byte size rounded up to 4 bytes, as Upload allocates.
func (r *Readback) ToHost(src *wgpu.Buffer, shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if !dtype.Valid() {
		return nil, errors.Errorf("webgpu: readback dtype %s", dtype)
	}
	n, err := shape.ByteSize(dtype.Size())
	if err != nil {
		return nil, errors.Wrap(err, "webgpu: readback shape")
	}
	size := uint64(n) //nolint:gosec // G115: ByteSize is positive
	padded := alignedSize(size)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.device == nil {
		return nil, errors.New("webgpu: readback released")
	}

	// Storage buffers can't be mapped directly.
	staging := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  padded,
	})
	defer staging.Release()

	encoder := r.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, padded)
	cmd := encoder.Finish(nil)
	r.queue.Submit(cmd)

	if err := staging.MapAsync(r.device, wgpu.MapModeRead, 0, padded); err != nil {
		return nil, errors.Wrap(err, "webgpu: failed to map staging buffer")
	}
	mappedPtr := staging.GetMappedRange(0, padded)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	host, err := tensor.FromBytes(unsafe.Slice((*byte)(mappedPtr), size), shape, dtype, tensor.WebGPU)
	staging.Unmap()
	if err != nil {
		return nil, errors.Wrap(err, "webgpu: readback")
	}
	return host, nil
}

// RoundTrip uploads a host tensor and reads it back, returning the copy.
func (r *Readback) RoundTrip(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	buf, err := r.Upload(t)
	if err != nil {
		return nil, err
	}
	defer buf.Release()
	return r.ToHost(buf, t.Shape(), t.DType())
}

// Release releases all WebGPU resources.
func (r *Readback) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}
