package distributed

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

func TestNewDeviceMesh(t *testing.T) {
	mesh := must.M1(NewDeviceMesh([]int{2, 4}, []string{"x", "y"}))
	require.Equal(t, 8, mesh.NumDevices())
	require.Equal(t, 2, mesh.Rank())
	require.Equal(t, []string{"x", "y"}, mesh.AxesNames())
	require.Equal(t, 4, must.M1(mesh.AxisSize("y")))
	require.Equal(t, "mesh[x=2, y=4]", mesh.String())

	_, err := mesh.AxisSize("z")
	require.Error(t, err)

	_, err = NewDeviceMesh([]int{2}, []string{"x", "y"})
	require.Error(t, err)
	_, err = NewDeviceMesh([]int{2, 0}, []string{"x", "y"})
	require.Error(t, err)
	_, err = NewDeviceMesh([]int{2, 4}, []string{"x", "x"})
	require.Error(t, err)
	_, err = NewDeviceMesh([]int{2}, []string{"1x"})
	require.Error(t, err)
}

func TestShardSpec(t *testing.T) {
	mesh := must.M1(NewDeviceMesh([]int{2, 4}, []string{"x", "y"}))

	spec := NewShardSpec("x", Replicated, "y")
	require.Equal(t, 3, spec.Rank())
	require.False(t, spec.IsReplicated())
	require.NoError(t, spec.Validate(mesh))
	require.Equal(t, "S(x), R, S(y)", spec.String())

	require.True(t, NewShardSpec(Replicated, Replicated).IsReplicated())

	// Unknown mesh axis.
	require.Error(t, NewShardSpec("z").Validate(mesh))
	// A mesh axis can shard at most one tensor axis.
	require.Error(t, NewShardSpec("x", "x").Validate(mesh))
}
