package tensor

import (
	"testing"
)

// RawTensor Tests

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsInt64()[0] != 42 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsBool(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Bool, CPU)
	data := raw.AsBool()

	if len(data) != 4 {
		t.Errorf("AsBool length = %d, want 4", len(data))
	}

	data[0] = true
	if !raw.AsBool()[0] {
		t.Error("AsBool should return zero-copy slice")
	}
}

func TestRawTensorWrongDTypePanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Int32, CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("AsFloat32 on an int32 tensor should panic")
		}
	}()
	_ = raw.AsFloat32()
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("NewRaw should reject a zero dimension")
	}
}

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if raw.DType() != Float32 {
		t.Errorf("DType = %s, want float32", raw.DType())
	}
	if got := raw.AsFloat32()[5]; got != 6 {
		t.Errorf("last element = %v, want 6", got)
	}

	if _, err := FromSlice([]int32{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("FromSlice should reject a length/shape mismatch")
	}
}

func TestFromSliceCopies(t *testing.T) {
	src := []int32{7, 8}
	raw, err := FromSlice(src, Shape{2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	src[0] = 0
	if raw.AsInt32()[0] != 7 {
		t.Error("FromSlice must copy the input slice")
	}
}

func TestFromBytes(t *testing.T) {
	src, _ := FromSlice([]int64{-1, 0, 1}, Shape{3})

	raw, err := FromBytes(src.Data(), Shape{3}, Int64, WebGPU)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if raw.Device() != WebGPU {
		t.Errorf("Device = %s, want WebGPU", raw.Device())
	}
	if got := raw.AsInt64(); got[0] != -1 || got[2] != 1 {
		t.Errorf("FromBytes data = %v, want [-1 0 1]", got)
	}

	if _, err := FromBytes(src.Data()[:8], Shape{3}, Int64, CPU); err == nil {
		t.Error("FromBytes should reject a short buffer")
	}
}

func TestFromBytesOversizedShape(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		dtype DataType
		data  []byte
	}{
		// 800 GB if it were allocated.
		{"huge", Shape{100_000_000, 1000}, Float64, make([]byte, 8)},
		// Element count wraps around to 0 in int arithmetic.
		{"overflow to zero", Shape{1 << 26, 1 << 26, 1 << 12}, Float32, nil},
		{"overflow", Shape{1 << 26, 1 << 26, 1 << 11, 3}, Float32, make([]byte, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromBytes(tt.data, tt.shape, tt.dtype, CPU); err == nil {
				t.Errorf("FromBytes(%v) should fail", tt.shape)
			}
		})
	}
}

func TestNewRawInvalidDType(t *testing.T) {
	if _, err := NewRaw(Shape{2}, DataType(42), CPU); err == nil {
		t.Error("NewRaw should reject an unknown dtype")
	}
	if _, err := FromBytes(make([]byte, 2), Shape{2}, DataType(-1), CPU); err == nil {
		t.Error("FromBytes should reject an unknown dtype")
	}
}

func TestDataType(t *testing.T) {
	tests := []struct {
		dtype DataType
		name  string
		size  int
		float bool
	}{
		{Float32, "float32", 4, true},
		{Float64, "float64", 8, true},
		{Int32, "int32", 4, false},
		{Int64, "int64", 8, false},
		{Uint8, "uint8", 1, false},
		{Bool, "bool", 1, false},
	}

	for _, tt := range tests {
		if tt.dtype.String() != tt.name || tt.dtype.Size() != tt.size || tt.dtype.IsFloat() != tt.float {
			t.Errorf("%d: got (%s, %d, %v), want (%s, %d, %v)", int(tt.dtype),
				tt.dtype, tt.dtype.Size(), tt.dtype.IsFloat(), tt.name, tt.size, tt.float)
		}
	}

	unknown := DataType(99)
	if unknown.Valid() || unknown.String() != "unknown" || unknown.IsFloat() {
		t.Error("DataType(99) should be invalid")
	}
}

func TestRawTensorReshape(t *testing.T) {
	raw, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{1, 2, 3})

	view, err := raw.Reshape(Shape{-1, 3})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if !view.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Reshape shape = %v, want [2 3]", view.Shape())
	}
	if view.Strides()[0] != 3 {
		t.Errorf("Reshape strides = %v, want [3 1]", view.Strides())
	}

	// Views share memory with their source.
	view.AsFloat64()[0] = 42
	if raw.AsFloat64()[0] != 42 {
		t.Error("Reshape should return a view over the same buffer")
	}

	if _, err := raw.Reshape(Shape{4, -1}); err == nil {
		t.Error("Reshape should reject a non-divisible inferred dimension")
	}
}
