package sinfo

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
	"github.com/tensoric/tensoric/pkg/core/distributed"
	"github.com/tensoric/tensoric/pkg/core/dtypes"
	"github.com/tensoric/tensoric/pkg/core/symbolic"
)

func TestTensor(t *testing.T) {
	full := MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2, 3}))
	require.True(t, full.HasDims())
	require.Equal(t, 2, full.NDim())
	require.Equal(t, `Tensor((2, 3), dtype="float32")`, full.String())

	single := MakeTensor(dtypes.Int64, symbolic.FromInts([]int{5}))
	require.Equal(t, `Tensor((5,), dtype="int64")`, single.String())

	rankOnly := TensorOfRank(dtypes.Float32, 4)
	require.False(t, rankOnly.HasDims())
	require.Equal(t, 4, rankOnly.NDim())
	require.Equal(t, `Tensor(dtype="float32", ndim=4)`, rankOnly.String())

	unknown := TensorUnknown(dtypes.InvalidDType)
	require.Equal(t, NDimUnknown, unknown.NDim())
	require.Equal(t, `Tensor()`, unknown.String())

	require.Panics(t, func() { TensorOfRank(dtypes.Float32, -1) })
}

func TestTupleAndShape(t *testing.T) {
	tensor := MakeTensor(dtypes.Float32, symbolic.FromInts([]int{2}))
	tuple := MakeTuple(tensor, &Object{})
	require.Equal(t, `Tuple(Tensor((2,), dtype="float32"), Object)`, tuple.String())

	n := symbolic.NewVar("n")
	shape := MakeShape(n, symbolic.Const(3))
	require.Equal(t, `Shape([n, 3])`, shape.String())
}

func TestDTensor(t *testing.T) {
	mesh := must.M1(distributed.NewDeviceMesh([]int{2, 2}, []string{"x", "y"}))
	tensor := MakeTensor(dtypes.Float32, symbolic.FromInts([]int{4, 8}))

	dt := MakeDTensor(tensor, mesh, distributed.NewShardSpec("x", distributed.Replicated))
	require.Equal(t,
		`DTensor((4, 8), dtype="float32", mesh="mesh", placement="S(x), R")`,
		dt.String())

	// Placement rank must match the tensor rank when dims are known.
	require.Panics(t, func() {
		MakeDTensor(tensor, mesh, distributed.NewShardSpec("x"))
	})
	// Placement must validate against the mesh.
	require.Panics(t, func() {
		MakeDTensor(tensor, mesh, distributed.NewShardSpec("x", "z"))
	})
}
