package symbolic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimplify(t *testing.T) {
	a := New()
	n := NewVar("n")

	// Constant folding.
	got := a.Simplify(Add(Const(2), Mul(Const(3), Const(4))))
	require.Equal(t, Const(14), got)

	// Like terms cancel.
	got = a.Simplify(Sub(Add(n, Const(5)), n))
	require.Equal(t, Const(5), got)

	// Provably divisible floordiv reduces.
	got = a.Simplify(FloorDiv(Mul(Const(4), n), Const(2)))
	require.Equal(t, "(2 * n)", got.String())

	// Provably divisible floormod vanishes.
	got = a.Simplify(FloorMod(Mul(Const(4), n), Const(2)))
	require.Equal(t, Const(0), got)

	// Unprovable division stays symbolic but folds the inside.
	got = a.Simplify(FloorDiv(Sub(Add(n, Const(2)), Const(3)), Const(2)))
	require.Equal(t, "floordiv((n - 1), 2)", got.String())
}

func TestFloorSemantics(t *testing.T) {
	a := New()
	require.Equal(t, Const(-3), a.Simplify(FloorDiv(Const(-5), Const(2))))
	require.Equal(t, Const(1), a.Simplify(FloorMod(Const(-5), Const(2))))
	require.Equal(t, Const(2), a.Simplify(FloorDiv(Const(5), Const(2))))
	require.Equal(t, Const(1), a.Simplify(FloorMod(Const(5), Const(2))))
}

func TestProve(t *testing.T) {
	a := New()
	n := NewVar("n")

	require.Equal(t, Proven, a.Prove(EQ(Const(3), Const(3))))
	require.Equal(t, Disproven, a.Prove(EQ(Const(3), Const(4))))
	require.Equal(t, Proven, a.Prove(LT(Const(3), Const(4))))
	require.Equal(t, Disproven, a.Prove(GE(Const(3), Const(4))))

	// Structural equality is provable even with free variables.
	require.Equal(t, Proven, a.Prove(EQ(Add(n, Const(1)), Add(Const(1), n))))
	require.True(t, a.CanProveEqual(Mul(Const(2), n), Add(n, n)))

	// A free variable leaves the condition undecided.
	require.Equal(t, Undecided, a.Prove(EQ(n, Const(3))))
	require.Equal(t, Undecided, a.Prove(NE(n, Const(3))))
}

func TestCanProveIsConservative(t *testing.T) {
	a := New()
	n := NewVar("n")

	// Neither n == 3 nor n != 3 is provable; CanProve must say false to both.
	require.False(t, a.CanProve(EQ(n, Const(3))))
	require.False(t, a.CanProve(NE(n, Const(3))))
}
