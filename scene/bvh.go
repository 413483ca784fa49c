package scene

import "github.com/hulylabs/3d/types"

// PrimitiveType tags which primitive array a BVH leaf indexes into.
// Parallelograms are not in the BVH: scene intersection tests every one of
// them once per ray, and the BVH only partitions triangles and SDF instances.
type PrimitiveType uint8

const (
	SDFPrimitive PrimitiveType = 1
	TrianglePrimitive PrimitiveType = 2
)

// NoSkipLink is the sentinel hit_miss_skip_link value that terminates
// traversal.
const NoSkipLink int32 = -1

// BVHNode is one entry in the flattened hit/miss skip-link BVH.
// The hit successor is always the next array slot (index+1); only the miss
// successor is stored explicitly, which is what makes the encoding
// stackless, avoiding left/right child indices and their traversal stack.
type BVHNode struct {
	Min, Max types.Vec3

	PrimitiveIndex uint32
	PrimitiveType PrimitiveType

	// HitMissSkipLink is the index to jump to when the AABB test misses;
	// NoSkipLink terminates traversal.
	HitMissSkipLink int32
}

// IsLeaf reports whether the node directly references a primitive (as
// opposed to being a pure bounding node for an internal subtree split).
func (n BVHNode) IsLeaf() bool {
	return n.PrimitiveType == SDFPrimitive || n.PrimitiveType == TrianglePrimitive
}

// BVH pairs the ordinary skip-link tree with its inflated companion used for
// containment-based signed-distance queries. The two trees share
// topology, primitive indices and skip links; only the AABBs differ, so they
// are stored as parallel node slices indexed identically.
type BVH struct {
	Nodes []BVHNode
	InflatedNodes []BVHNode
}

// Len returns the number of nodes in the tree (both slices always agree).
func (b BVH) Len() int { return len(b.Nodes) }
