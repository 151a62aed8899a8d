//go:build windows

package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/rcnn/internal/tensor"
)

func newTestReadback(t *testing.T) *Readback {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	t.Cleanup(r.Release)
	return r
}

func TestIsAvailable(t *testing.T) {
	t.Logf("WebGPU available: %v", IsAvailable())
}

func TestRoundTrip(t *testing.T) {
	r := newTestReadback(t)

	probs, err := tensor.FromSlice([]float32{0.2, 0.9, 0.4, 0.8, 0.1, 0.6}, tensor.Shape{1, 2, 3})
	require.NoError(t, err)

	got, err := r.RoundTrip(probs)
	require.NoError(t, err)

	assert.Equal(t, tensor.WebGPU, got.Device())
	assert.Equal(t, probs.Shape(), got.Shape())
	assert.Equal(t, probs.AsFloat32(), got.AsFloat32())
}

func TestRoundTrip_UnalignedBytes(t *testing.T) {
	r := newTestReadback(t)

	labels, err := tensor.FromSlice([]uint8{1, 0, 1}, tensor.Shape{3})
	require.NoError(t, err)
	got, err := r.RoundTrip(labels)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 1}, got.AsUint8())
	assert.Len(t, got.Data(), 3)

	mask, err := tensor.FromSlice([]bool{true, false, true, true, false}, tensor.Shape{5})
	require.NoError(t, err)
	got, err = r.RoundTrip(mask)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, true, false}, got.AsBool())
}

func TestToHost_InvalidShape(t *testing.T) {
	r := newTestReadback(t)

	labels, err := tensor.FromSlice([]int32{1, -1, 0, 1}, tensor.Shape{4})
	require.NoError(t, err)
	buf, err := r.Upload(labels)
	require.NoError(t, err)
	defer buf.Release()

	_, err = r.ToHost(buf, tensor.Shape{0, 4}, tensor.Int32)
	assert.Error(t, err)
}

func TestReleased(t *testing.T) {
	r := newTestReadback(t)
	r.Release()

	labels, err := tensor.FromSlice([]int32{1}, tensor.Shape{1})
	require.NoError(t, err)
	_, err = r.Upload(labels)
	assert.Error(t, err)
}
