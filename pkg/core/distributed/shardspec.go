package distributed

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Replicated marks a tensor axis that is replicated on every device.
const Replicated = ""

// ShardSpec describes per-axis placement of a tensor on a DeviceMesh.
// Each entry is the name of the mesh axis the tensor axis is sharded across,
// or Replicated if the tensor axis is not split.
type ShardSpec []string

// NewShardSpec creates a placement with one entry per tensor axis.
// Empty entries mean the axis is replicated.
func NewShardSpec(placements ...string) ShardSpec {
	return ShardSpec(slices.Clone(placements))
}

// Rank returns the number of tensor axes the spec describes.
func (s ShardSpec) Rank() int {
	return len(s)
}

// IsReplicated reports whether no tensor axis is sharded.
func (s ShardSpec) IsReplicated() bool {
	for _, placement := range s {
		if placement != Replicated {
			return false
		}
	}
	return true
}

// Validate checks the spec against a mesh: every sharded axis must name an
// existing mesh axis, and no mesh axis may be used more than once.
func (s ShardSpec) Validate(mesh *DeviceMesh) error {
	seen := make(map[string]int, len(s))
	for tensorAxis, placement := range s {
		if placement == Replicated {
			continue
		}
		if _, found := mesh.nameToAxis[placement]; !found {
			return errors.Errorf("ShardSpec axis %d is sharded on %q, which is not an axis of %s",
				tensorAxis, placement, mesh)
		}
		if prev, used := seen[placement]; used {
			return errors.Errorf("ShardSpec uses mesh axis %q for tensor axes %d and %d, a mesh axis can shard at most one tensor axis",
				placement, prev, tensorAxis)
		}
		seen[placement] = tensorAxis
	}
	return nil
}

// String renders the placement in the compact "S(axis), R" form.
func (s ShardSpec) String() string {
	parts := make([]string, len(s))
	for i, placement := range s {
		if placement == Replicated {
			parts[i] = "R"
		} else {
			parts[i] = "S(" + placement + ")"
		}
	}
	return strings.Join(parts, ", ")
}
