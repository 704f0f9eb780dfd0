package doc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	require.Equal(t, "T.nn.conv2d", Format(Access("T", "nn", "conv2d")))
	require.Equal(t, "()", Format(&Tuple{}))
	require.Equal(t, "(x,)", Format(&Tuple{Elems: []Doc{&Id{Name: "x"}}}))
	require.Equal(t, "(x, y)", Format(&Tuple{Elems: []Doc{&Id{Name: "x"}, &Id{Name: "y"}}}))
	require.Equal(t, "[1, 2]", Format(&List{Elems: []Doc{Int(1), Int(2)}}))

	call := &Call{
		Callee: &Id{Name: "f"},
		Args:   []Doc{&Id{Name: "x"}},
		Kwargs: []Kwarg{{Key: "k", Value: Int(3)}},
	}
	require.Equal(t, "f(x, k=3)", Format(call))
	require.Equal(t, "f(k=3)", Format(&Call{Callee: &Id{Name: "f"}, Kwargs: call.Kwargs}))
}

func TestLiterals(t *testing.T) {
	require.Equal(t, "42", Format(Int(42)))
	require.Equal(t, "-7", Format(Int(-7)))
	require.Equal(t, "0.5", Format(Float(0.5)))
	require.Equal(t, "2.0", Format(Float(2)))
	require.Equal(t, "1e+20", Format(Float(1e20)))
	require.Equal(t, "True", Format(Bool(true)))
	require.Equal(t, "False", Format(Bool(false)))
	require.Equal(t, `"a\"b"`, Format(Str(`a"b`)))
	require.Equal(t, "None", Format(None()))
}
