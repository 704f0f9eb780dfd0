package dtypes

// DType is an enum representing the element type of a tensor value.
//
// InvalidDType doubles as "unknown": an operator whose output dtype cannot be
// resolved at build time carries InvalidDType until a runtime check fills it in.
type DType int32

const (
	// InvalidDType serves both as the zero default and as the "unknown dtype"
	// marker on structural descriptors.
	InvalidDType DType = iota

	// Bool is a two-state predicate type.
	Bool

	// Int8 to Int64 are signed integral values of fixed width.
	Int8
	Int16
	Int32
	Int64

	// Uint8 to Uint64 are unsigned integral values of fixed width.
	Uint8
	Uint16
	Uint32
	Uint64

	// Float16 is the IEEE 754 half-precision format, backed by github.com/x448/float16.
	Float16

	// BFloat16 is the brain-float 16-bit format, backed by the bfloat16 subpackage.
	BFloat16

	// Float32 and Float64 are the IEEE 754 single and double precision formats.
	Float32
	Float64

	// Complex64 and Complex128 are pairs of Float32 and Float64 respectively.
	Complex64
	Complex128
)

// MapOfNames maps the canonical dtype names to their enum value.
var MapOfNames = map[string]DType{
	"invalid":    InvalidDType,
	"bool":       Bool,
	"int8":       Int8,
	"int16":      Int16,
	"int32":      Int32,
	"int64":      Int64,
	"uint8":      Uint8,
	"uint16":     Uint16,
	"uint32":     Uint32,
	"uint64":     Uint64,
	"float16":    Float16,
	"bfloat16":   BFloat16,
	"float32":    Float32,
	"float64":    Float64,
	"complex64":  Complex64,
	"complex128": Complex128,
}

var namesOfDTypes = map[DType]string{
	InvalidDType: "invalid",
	Bool:         "bool",
	Int8:         "int8",
	Int16:        "int16",
	Int32:        "int32",
	Int64:        "int64",
	Uint8:        "uint8",
	Uint16:       "uint16",
	Uint32:       "uint32",
	Uint64:       "uint64",
	Float16:      "float16",
	BFloat16:     "bfloat16",
	Float32:      "float32",
	Float64:      "float64",
	Complex64:    "complex64",
	Complex128:   "complex128",
}

// String returns the lower-case name of the dtype, the spelling used when
// rendering dtype attributes back to source text.
func (dtype DType) String() string {
	if name, found := namesOfDTypes[dtype]; found {
		return name
	}
	return "UNKNOWN_DTYPE"
}
