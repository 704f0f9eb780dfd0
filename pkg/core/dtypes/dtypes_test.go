package dtypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	dtype, err := FromString("float32")
	require.NoError(t, err)
	require.Equal(t, Float32, dtype)

	_, err = FromString("float7")
	require.Error(t, err)
}

func TestPromoteBinary(t *testing.T) {
	// Equal types stay.
	require.Equal(t, Float32, PromoteBinary(Float32, Float32))

	// Unknown stays unknown.
	require.Equal(t, InvalidDType, PromoteBinary(InvalidDType, Float32))
	require.Equal(t, InvalidDType, PromoteBinary(Int32, InvalidDType))

	// Wider bits win within a category.
	require.Equal(t, Float64, PromoteBinary(Float32, Float64))
	require.Equal(t, Int64, PromoteBinary(Int16, Int64))

	// Higher category wins across categories, widening when the lower
	// category operand is at least as wide.
	require.Equal(t, Float32, PromoteBinary(Int16, Float32))
	require.Equal(t, Float64, PromoteBinary(Int64, Float32))
	require.Equal(t, Int32, PromoteBinary(Bool, Int32))
	require.Equal(t, Complex64, PromoteBinary(Float32, Complex64))

	// Mixed signedness of the same width needs the next wider signed type.
	require.Equal(t, Int64, PromoteBinary(Int32, Uint32))

	// The two 16-bit float formats can only agree in Float32.
	require.Equal(t, Float32, PromoteBinary(Float16, BFloat16))
}

func TestIsPromotableTo(t *testing.T) {
	require.True(t, Int8.IsPromotableTo(Int32))
	require.False(t, Float32.IsPromotableTo(Int64))
	require.False(t, Int64.IsPromotableTo(Int16))

	// Cross-category widening is PromoteBinary's job, not promotability's.
	require.False(t, Int32.IsPromotableTo(Float64))
}
