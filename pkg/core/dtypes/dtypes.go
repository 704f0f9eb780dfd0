// Package dtypes includes the DType enum for all element types the IR knows about.
//
// It includes category predicates (integer, float, complex), bit widths, name
// parsing for attribute round-tripping, and the binary arithmetic promotion
// rule used to resolve an operator's output dtype when none is declared.
//
// Go float16 support uses the github.com/x448/float16 implementation, and
// bfloat16 a small implementation in the bfloat16 subpackage.
package dtypes

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/tensoric/tensoric/pkg/core/dtypes/bfloat16"
	"github.com/x448/float16"
)

// FromString parses a dtype from its canonical lower-case name ("float32",
// "bfloat16", ...). It returns an error for unknown names; notice "invalid"
// parses to InvalidDType without error, since descriptors may legitimately
// carry an unknown dtype.
func FromString(name string) (DType, error) {
	dtype, found := MapOfNames[name]
	if !found {
		return InvalidDType, errors.Errorf("unknown dtype name %q", name)
	}
	return dtype, nil
}

// FromGenericsType returns the DType for the given Go native type.
func FromGenericsType[T Supported]() DType {
	var t T
	switch (any(t)).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case int:
		if strconv.IntSize == 32 {
			return Int32
		}
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float16.Float16:
		return Float16
	case bfloat16.BFloat16:
		return BFloat16
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	}
	return InvalidDType
}

// Supported lists the Go types with a corresponding DType.
// Used as a constraint for generics.
type Supported interface {
	bool | int | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 |
		float16.Float16 | bfloat16.BFloat16 | float32 | float64 | complex64 | complex128
}

// IsInt returns whether dtype is an integer type, signed or unsigned.
func (dtype DType) IsInt() bool {
	switch dtype {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsUnsigned returns whether dtype is an unsigned integer type.
func (dtype DType) IsUnsigned() bool {
	switch dtype {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// IsFloat returns whether dtype is a floating point type.
// It returns false for complex numbers.
func (dtype DType) IsFloat() bool {
	switch dtype {
	case Float16, BFloat16, Float32, Float64:
		return true
	}
	return false
}

// IsComplex returns whether dtype is a complex number type.
func (dtype DType) IsComplex() bool {
	return dtype == Complex64 || dtype == Complex128
}

// Bits returns the size of the dtype in bits. Zero for InvalidDType.
func (dtype DType) Bits() int {
	switch dtype {
	case Bool, Int8, Uint8:
		return 8
	case Int16, Uint16, Float16, BFloat16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64, Complex64:
		return 64
	case Complex128:
		return 128
	}
	return 0
}

// IsPromotableTo returns whether dtype can be promoted to target without
// changing category: Int32 can be promoted to Int64, but not to Uint64
// nor to Float32.
func (dtype DType) IsPromotableTo(target DType) bool {
	if dtype == target {
		return true
	}
	sameCategory := (dtype == Bool && target == Bool) ||
		(dtype.IsInt() && target.IsInt() && dtype.IsUnsigned() == target.IsUnsigned()) ||
		(dtype.IsFloat() && target.IsFloat()) ||
		(dtype.IsComplex() && target.IsComplex())
	if !sameCategory {
		return false
	}
	return dtype.Bits() <= target.Bits()
}

// categoryRank orders dtype categories for promotion: bool < int < float < complex.
func categoryRank(dtype DType) int {
	switch {
	case dtype == Bool:
		return 0
	case dtype.IsInt():
		return 1
	case dtype.IsFloat():
		return 2
	case dtype.IsComplex():
		return 3
	}
	return -1
}

// widerSignedInt returns the narrowest signed integer with strictly more bits.
// Used when promoting mixed signed/unsigned operands of the same width.
func widerSignedInt(bits int) DType {
	switch {
	case bits < 16:
		return Int16
	case bits < 32:
		return Int32
	default:
		return Int64
	}
}

// PromoteBinary returns the dtype of an arithmetic operation between operands
// of dtypes a and b.
//
// Equal dtypes promote to themselves. If either side is InvalidDType
// (unknown), the result stays unknown. Across categories the higher category
// wins (bool < integer < float < complex) at that category's wider width.
// Within a category the wider operand wins; mixed signedness of equal width
// promotes to the next wider signed integer.
func PromoteBinary(a, b DType) DType {
	if a == b {
		return a
	}
	if a == InvalidDType || b == InvalidDType {
		return InvalidDType
	}
	ra, rb := categoryRank(a), categoryRank(b)
	if ra != rb {
		if ra < rb {
			a, b = b, a
			ra, rb = rb, ra
		}
		// a now has the higher category; widen it to cover b when needed.
		if a.IsFloat() && b.IsInt() && b.Bits() >= a.Bits() {
			return Float64
		}
		if a.IsComplex() && b.Bits() >= a.Bits() {
			return Complex128
		}
		return a
	}
	// Same category.
	if a.Bits() != b.Bits() {
		if a.Bits() < b.Bits() {
			a, b = b, a
		}
		if a.IsInt() && a.IsUnsigned() && !b.IsUnsigned() {
			// Wider unsigned with narrower signed: needs the next signed width.
			return widerSignedInt(a.Bits())
		}
		return a
	}
	// Same category and width.
	if a.IsInt() {
		return widerSignedInt(a.Bits())
	}
	if a.IsFloat() {
		// Float16 vs BFloat16: no common 16-bit super-type.
		return Float32
	}
	return a
}
