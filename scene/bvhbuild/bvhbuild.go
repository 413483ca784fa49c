// Package bvhbuild constructs the dual hit/miss-skip-link BVH used
// to accelerate both ray intersection and signed-distance containment
// queries. The build recursively partitions items by centroid at the
// midpoint of the node's bounds along its longest axis until each leaf
// holds a single primitive, and
// flattens the resulting tree into a hit/miss skip-link array rather than
// a left/right child index pair.
package bvhbuild

import (
	"math"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

// Item is one leaf-level primitive the builder can partition: its own
// world-space bounding box and centroid, the primitive array it belongs to,
// and its index in that array (primitive_index/primitive_type pair). A
// single BVH commonly mixes Triangle and SDF items.
type Item struct {
	Min, Max types.Vec3
	Center types.Vec3

	PrimitiveType scene.PrimitiveType
	PrimitiveIndex uint32
}

// Inflate enlarges a bounding box by a fixed margin along every axis,
// producing the companion "inflated" AABB the containment traversal needs.
const Inflate = 0.25

// Build partitions items into a BVH. Leaves are single-primitive; internal
// nodes are created by recursively splitting at the midpoint of the bounds
// on the longest axis until a work list bottoms out at one item.
func Build(items []Item) scene.BVH {
	if len(items) == 0 {
		return scene.BVH{}
	}
	indices := make([]int, len(items))
	for i := range indices {
		indices[i] = i
	}

	b := &builder{items: items}
	root := b.partition(indices)

	bvh := scene.BVH{
		Nodes: make([]scene.BVHNode, 0, b.size(root)),
		InflatedNodes: make([]scene.BVHNode, 0, b.size(root)),
	}
	b.flatten(root, scene.NoSkipLink, &bvh)
	return bvh
}

type wipNode struct {
	min, max types.Vec3
	inflatedMin, inflatedMax types.Vec3

	isLeaf bool
	itemIndex int
	left, right *wipNode
}

type builder struct {
	items []Item
}

func (b *builder) partition(indices []int) *wipNode {
	min, max := b.bounds(indices)

	if len(indices) <= 1 {
		return b.leaf(indices[0], min, max)
	}

	axis := longestAxis(min, max)
	splitPoint := (min[axis] + max[axis]) * 0.5

	var left, right []int
	for _, idx := range indices {
		if b.items[idx].Center[axis] < splitPoint {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	// Degenerate split (all centroids on one side, e.g. coincident
	// centroids): break the tie by putting the first half left so
	// partitioning still terminates.
	if len(left) == 0 || len(right) == 0 {
		mid := len(indices) / 2
		left, right = indices[:mid], indices[mid:]
	}

	node := &wipNode{
		min: min, max: max,
		inflatedMin: min.Sub(types.Splat3(Inflate)), inflatedMax: max.Add(types.Splat3(Inflate)),
	}
	node.left = b.partition(left)
	node.right = b.partition(right)
	return node
}

func (b *builder) leaf(index int, min, max types.Vec3) *wipNode {
	return &wipNode{
		min: min, max: max,
		inflatedMin: min.Sub(types.Splat3(Inflate)), inflatedMax: max.Add(types.Splat3(Inflate)),
		isLeaf: true,
		itemIndex: index,
	}
}

func (b *builder) bounds(indices []int) (min, max types.Vec3) {
	min = types.Splat3(math.MaxFloat32)
	max = types.Splat3(-math.MaxFloat32)
	for _, idx := range indices {
		min = types.MinVec3(min, b.items[idx].Min)
		max = types.MaxVec3(max, b.items[idx].Max)
	}
	return min, max
}

func (b *builder) size(n *wipNode) int {
	if n.isLeaf {
		return 1
	}
	return 1 + b.size(n.left) + b.size(n.right)
}

// flatten emits n's subtree in pre-order, wiring each node's miss link to
// missLink — the index to resume traversal at once this subtree is
// exhausted. The hit link is implicit: index+1, the next emitted slot.
func (b *builder) flatten(n *wipNode, missLink int32, bvh *scene.BVH) int32 {
	idx := int32(len(bvh.Nodes))

	var primType scene.PrimitiveType
	var primIndex uint32
	if n.isLeaf {
		item := b.items[n.itemIndex]
		primType = item.PrimitiveType
		primIndex = item.PrimitiveIndex
	}

	bvh.Nodes = append(bvh.Nodes, scene.BVHNode{
		Min: n.min, Max: n.max,
		PrimitiveIndex: primIndex, PrimitiveType: primType,
		HitMissSkipLink: missLink,
	})
	bvh.InflatedNodes = append(bvh.InflatedNodes, scene.BVHNode{
		Min: n.inflatedMin, Max: n.inflatedMax,
		PrimitiveIndex: primIndex, PrimitiveType: primType,
		HitMissSkipLink: missLink,
	})

	if n.isLeaf {
		return idx
	}

	rightStart := idx + 1 + int32(b.size(n.left))
	b.flatten(n.left, rightStart, bvh)
	b.flatten(n.right, missLink, bvh)
	return idx
}

func longestAxis(min, max types.Vec3) int {
	side := max.Sub(min)
	axis := 0
	if side[1] > side[axis] {
		axis = 1
	}
	if side[2] > side[axis] {
		axis = 2
	}
	return axis
}
