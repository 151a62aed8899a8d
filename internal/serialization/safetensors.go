package serialization

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/tensor"
)

const metadataKey = "__metadata__"

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end)
}

// Dump is a batch read back from a SafeTensors file.
type Dump struct {
	Tensors  map[string]*tensor.RawTensor
	Metadata map[string]string
}

// WriteBatch writes tensors and metadata to a SafeTensors file at path.
func WriteBatch(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if err := Encode(file, tensors, metadata); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// ReadBatch reads a SafeTensors file written by WriteBatch or any other
// SafeTensors producer. Tensors are loaded onto the CPU.
func ReadBatch(path string) (*Dump, error) {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer func() {
		_ = file.Close()
	}()

	dump, err := Decode(file)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return dump, nil
}

// Encode writes tensors in SafeTensors format.
//
// Tensors are written in alphabetical order by name. The SHA-256 of the
// data section is added to the metadata under ChecksumKey.
func Encode(w io.Writer, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > MaxTensorCount {
		return &ValidationError{Type: "too_many_tensors", Details: "refusing to write"}
	}

	header := make(map[string]interface{}, len(names)+1)
	var data []byte
	for _, name := range names {
		raw := tensors[name]
		dtype, err := dtypeToSafeTensors(raw.DType())
		if err != nil {
			return errors.WithMessagef(err, "tensor %s", name)
		}

		shape := make([]int64, len(raw.Shape()))
		for i, dim := range raw.Shape() {
			shape[i] = int64(dim)
		}

		start := int64(len(data))
		data = append(data, raw.Data()...)
		header[name] = SafeTensorHeader{
			DType:       dtype,
			Shape:       shape,
			DataOffsets: [2]int64{start, int64(len(data))},
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	sum := ComputeChecksum(data)
	meta[ChecksumKey] = hex.EncodeToString(sum[:])
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write tensor data")
	}
	return nil
}

// Decode reads a SafeTensors stream.
func Decode(r io.Reader) (*Dump, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawMap); err != nil {
		return nil, errors.Wrap(err, "failed to parse header JSON")
	}

	dump := &Dump{
		Tensors:  make(map[string]*tensor.RawTensor, len(rawMap)),
		Metadata: map[string]string{},
	}
	if metadataRaw, ok := rawMap[metadataKey]; ok {
		if err := json.Unmarshal(metadataRaw, &dump.Metadata); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal metadata")
		}
		delete(rawMap, metadataKey)
	}

	headers := make(map[string]SafeTensorHeader, len(rawMap))
	metas := make([]TensorMeta, 0, len(rawMap))
	for name, value := range rawMap {
		if err := ValidateTensorName(name); err != nil {
			return nil, err
		}
		var info SafeTensorHeader
		if err := json.Unmarshal(value, &info); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal tensor %s", name)
		}
		headers[name] = info
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read tensor data")
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, err
	}
	if stored, ok := dump.Metadata[ChecksumKey]; ok {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, err
		}
	}

	for name, info := range headers {
		raw, err := loadTensor(name, info, data)
		if err != nil {
			return nil, err
		}
		dump.Tensors[name] = raw
	}
	return dump, nil
}

func loadTensor(name string, info SafeTensorHeader, data []byte) (*tensor.RawTensor, error) {
	dtype, err := safeTensorsToDType(info.DType)
	if err != nil {
		return nil, errors.WithMessagef(err, "tensor %s", name)
	}

	// Offsets were validated, so size is in [0, len(data)].
	size := info.DataOffsets[1] - info.DataOffsets[0]
	want := int64(dtype.Size())
	shape := make(tensor.Shape, len(info.Shape))
	for i, dim := range info.Shape {
		if dim <= 0 {
			return nil, &ValidationError{Type: "invalid_shape", Tensor: name, Details: "dimension out of range"}
		}
		if want > size/dim {
			return nil, &ValidationError{
				Type:    "size_mismatch",
				Tensor:  name,
				Details: fmt.Sprintf("shape %v of %s exceeds %d data bytes", info.Shape, dtype, size),
			}
		}
		want *= dim
		shape[i] = int(dim)
	}
	if want != size {
		return nil, &ValidationError{
			Type:    "size_mismatch",
			Tensor:  name,
			Details: fmt.Sprintf("shape %v of %s requires %d bytes, data has %d", info.Shape, dtype, want, size),
		}
	}

	raw, err := tensor.FromBytes(data[info.DataOffsets[0]:info.DataOffsets[1]], shape, dtype, tensor.CPU)
	if err != nil {
		return nil, &ValidationError{Type: "size_mismatch", Tensor: name, Details: err.Error()}
	}
	return raw, nil
}

func dtypeToSafeTensors(dt tensor.DataType) (string, error) {
	switch dt {
	case tensor.Float32:
		return "F32", nil
	case tensor.Float64:
		return "F64", nil
	case tensor.Int32:
		return "I32", nil
	case tensor.Int64:
		return "I64", nil
	case tensor.Uint8:
		return "U8", nil
	case tensor.Bool:
		return "BOOL", nil
	default:
		return "", errors.Wrapf(ErrUnsupportedDType, "%s", dt)
	}
}

func safeTensorsToDType(s string) (tensor.DataType, error) {
	switch s {
	case "F32":
		return tensor.Float32, nil
	case "F64":
		return tensor.Float64, nil
	case "I32":
		return tensor.Int32, nil
	case "I64":
		return tensor.Int64, nil
	case "U8":
		return tensor.Uint8, nil
	case "BOOL":
		return tensor.Bool, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedDType, "%s", s)
	}
}
