package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
)

func TestParse(t *testing.T) {
	l, err := Parse("NHWC")
	require.NoError(t, err)
	require.Equal(t, 4, l.NDim())
	require.Equal(t, 3, l.Index('C'))
	require.Equal(t, -1, l.Index('O'))

	_, err = Parse("")
	require.Error(t, err)
	_, err = Parse("NChW")
	require.Error(t, err)
	_, err = Parse("NCHH")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	_, perm, err := Normalize("NHWC", "NCHW", "data")
	require.NoError(t, err)
	require.Equal(t, Permutation{0, 3, 1, 2}, perm)

	// Same label set is required.
	_, _, err = Normalize("NHWO", "NCHW", "data")
	require.Error(t, err)
	require.Contains(t, err.Error(), "same axes")
	_, _, err = Normalize("NHW", "NCHW", "data")
	require.Error(t, err)

	// Already-canonical layouts get the identity permutation.
	_, perm, err = Normalize("NCHW", "NCHW", "data")
	require.NoError(t, err)
	require.Equal(t, Permutation{0, 1, 2, 3}, perm)
}

func TestPermutationRoundTrip(t *testing.T) {
	_, perm, err := Normalize("NHWC", "NCHW", "data")
	require.NoError(t, err)

	dims := symbolic.FromInts([]int{2, 28, 30, 3}) // NHWC
	canonical := perm.ForwardShape(dims)
	require.Equal(t, symbolic.FromInts([]int{2, 3, 28, 30}), canonical)
	require.Equal(t, dims, perm.BackwardShape(canonical))

	ints := []int{2, 28, 30, 3}
	require.Equal(t, []int{2, 3, 28, 30}, perm.ForwardInts(ints))
	require.Equal(t, ints, perm.BackwardInts(perm.ForwardInts(ints)))
}
