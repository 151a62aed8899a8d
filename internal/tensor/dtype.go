// Package tensor provides the host tensor types consumed by the metrics.
package tensor

// DType is a constraint for supported tensor data types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	numDataTypes
)

var dtypeInfo = [numDataTypes]struct {
	name  string
	size  int
	float bool
}{
	Float32: {"float32", 4, true},
	Float64: {"float64", 8, true},
	Int32:   {"int32", 4, false},
	Int64:   {"int64", 8, false},
	Uint8:   {"uint8", 1, false},
	Bool:    {"bool", 1, false},
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt >= 0 && dt < numDataTypes
}

// Size returns the byte size of one element.
// Panics on an invalid data type; NewRaw and FromBytes check Valid first.
func (dt DataType) Size() int {
	if !dt.Valid() {
		panic("unknown data type")
	}
	return dtypeInfo[dt].size
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	if !dt.Valid() {
		return "unknown"
	}
	return dtypeInfo[dt].name
}

// IsFloat reports whether the data type holds floating-point values.
func (dt DataType) IsFloat() bool {
	return dt.Valid() && dtypeInfo[dt].float
}

// inferDataType maps the element type of a Go slice to its DataType.
func inferDataType[T DType]() DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported element type")
	}
}
