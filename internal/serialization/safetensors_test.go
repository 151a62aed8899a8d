package serialization

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/rcnn/internal/tensor"
)

func testBatch(t *testing.T) map[string]*tensor.RawTensor {
	t.Helper()
	probs, err := tensor.FromSlice([]float32{0.2, 0.9, 0.4, 0.8, 0.1, 0.6}, tensor.Shape{1, 2, 3})
	require.NoError(t, err)
	labels, err := tensor.FromSlice([]int32{1, -1, 0}, tensor.Shape{1, 3})
	require.NoError(t, err)
	weights, err := tensor.FromSlice([]float64{1, 0}, tensor.Shape{2})
	require.NoError(t, err)
	return map[string]*tensor.RawTensor{
		"rpn_cls_prob":    probs,
		"rpn_label":       labels,
		"rpn_bbox_weight": weights,
	}
}

func TestWriteReadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch_0001.safetensors")
	batch := testBatch(t)

	require.NoError(t, WriteBatch(path, batch, map[string]string{"pipeline": "rpn"}))

	dump, err := ReadBatch(path)
	require.NoError(t, err)

	assert.Equal(t, "rpn", dump.Metadata["pipeline"])
	assert.Len(t, dump.Metadata[ChecksumKey], 64)
	require.Len(t, dump.Tensors, 3)

	for name, want := range batch {
		got := dump.Tensors[name]
		require.NotNil(t, got, name)
		assert.Equal(t, want.Shape(), got.Shape(), name)
		assert.Equal(t, want.DType(), got.DType(), name)
		assert.Equal(t, want.Data(), got.Data(), name)
		assert.Equal(t, tensor.CPU, got.Device(), name)
	}
	assert.Equal(t, []int32{1, -1, 0}, dump.Tensors["rpn_label"].AsInt32())
}

func TestEncode_Deterministic(t *testing.T) {
	batch := testBatch(t)

	var a, b bytes.Buffer
	require.NoError(t, Encode(&a, batch, nil))
	require.NoError(t, Encode(&b, batch, nil))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestEncode_InvalidName(t *testing.T) {
	batch := testBatch(t)
	batch["../rpn_label"] = batch["rpn_label"]

	err := Encode(&bytes.Buffer{}, batch, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTensorName)
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testBatch(t), nil))

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff

	_, err := Decode(bytes.NewReader(corrupted))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

// encodeRaw builds a SafeTensors stream from a literal header.
func encodeRaw(header string, data []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return buf.Bytes()
}

func TestDecode_WithoutChecksum(t *testing.T) {
	stream := encodeRaw(`{"rcnn_label":{"dtype":"U8","shape":[2],"data_offsets":[0,2]}}`, []byte{3, 0})

	dump, err := Decode(bytes.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, []uint8{3, 0}, dump.Tensors["rcnn_label"].AsUint8())
	assert.Empty(t, dump.Metadata)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		data    []byte
		errType string
	}{
		{
			name:    "out of bounds",
			header:  `{"a":{"dtype":"U8","shape":[4],"data_offsets":[0,4]}}`,
			data:    []byte{1, 2},
			errType: "out_of_bounds",
		},
		{
			name: "overlap",
			header: `{"a":{"dtype":"U8","shape":[2],"data_offsets":[0,2]},` +
				`"b":{"dtype":"U8","shape":[2],"data_offsets":[1,3]}}`,
			data:    []byte{1, 2, 3},
			errType: "offset_overlap",
		},
		{
			name:    "negative size",
			header:  `{"a":{"dtype":"U8","shape":[1],"data_offsets":[2,1]}}`,
			data:    []byte{1, 2},
			errType: "negative_offset",
		},
		{
			name:    "size does not match shape",
			header:  `{"a":{"dtype":"F32","shape":[2],"data_offsets":[0,4]}}`,
			data:    []byte{0, 0, 0x80, 0x3f},
			errType: "size_mismatch",
		},
		{
			name:    "element count overflows",
			header:  `{"x":{"dtype":"F32","shape":[67108864,67108864,4096],"data_offsets":[0,0]}}`,
			errType: "size_mismatch",
		},
		{
			name:    "element count overflows to small size",
			header:  `{"x":{"dtype":"F32","shape":[67108864,67108864,2048,3],"data_offsets":[0,4]}}`,
			data:    []byte{0, 0, 0x80, 0x3f},
			errType: "size_mismatch",
		},
		{
			name:    "shape far larger than data",
			header:  `{"x":{"dtype":"F64","shape":[100000000,100],"data_offsets":[0,8]}}`,
			data:    make([]byte, 8),
			errType: "size_mismatch",
		},
		{
			name:    "zero dimension",
			header:  `{"a":{"dtype":"U8","shape":[0],"data_offsets":[0,0]}}`,
			errType: "invalid_shape",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(encodeRaw(tt.header, tt.data)))
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.errType, verr.Type)
		})
	}
}

func TestDecode_UnsupportedDType(t *testing.T) {
	stream := encodeRaw(`{"a":{"dtype":"BF16","shape":[1],"data_offsets":[0,2]}}`, []byte{0, 0})

	_, err := Decode(bytes.NewReader(stream))
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestDecode_HeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1)))

	_, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestReadBatch_MissingFile(t *testing.T) {
	_, err := ReadBatch(filepath.Join(t.TempDir(), "missing.safetensors"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
