// Package bfloat16 is a trivial implementation of the bfloat16 type, the
// 16-bit truncation of the IEEE 754 single-precision format. It exists so the
// BFloat16 dtype has a concrete Go value representation, mirroring what
// github.com/x448/float16 provides for Float16.
package bfloat16

import (
	"math"
	"strconv"
)

// BFloat16 holds the high 16 bits of a float32.
type BFloat16 uint16

// Float32 returns the value widened back to float32.
func (f BFloat16) Float32() float32 {
	return math.Float32frombits(uint32(f) << 16)
}

// FromFloat32 converts a float32 to a BFloat16, truncating the mantissa.
func FromFloat32(x float32) BFloat16 {
	return BFloat16(math.Float32bits(x) >> 16)
}

// FromFloat64 converts a float64 to a BFloat16.
func FromFloat64(x float64) BFloat16 {
	return FromFloat32(float32(x))
}

// Bits returns the raw bit pattern.
func (f BFloat16) Bits() uint16 {
	return uint16(f)
}

// FromBits builds a BFloat16 from a raw bit pattern.
func FromBits(bits uint16) BFloat16 {
	return BFloat16(bits)
}

// String implements fmt.Stringer, printing the widened float value.
func (f BFloat16) String() string {
	return strconv.FormatFloat(float64(f.Float32()), 'f', -1, 32)
}
