package core

import (
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

// IntersectScene walks the scene's parallelograms directly (they are not
// partitioned into the BVH, primitive_type enum covers only Triangle
// and SDF) and hit-skip traverses the BVH for triangles and SDF instances,
// returning the closest hit, if any.
func IntersectScene(s *scene.Scene, registry *sdf.Registry, r Ray, tMinBound, tMaxBound float32) (HitRecord, bool) {
	var rec HitRecord
	found := false
	closest := tMaxBound

	for i := range s.Parallelograms {
		if HitParallelogram(s.Parallelograms[i], r, tMinBound, closest, &rec) {
			closest = rec.T
			found = true
		}
	}

	nodes := s.BVH.Nodes
	idx := int32(0)
	for idx >= 0 && int(idx) < len(nodes) {
		node := nodes[idx]
		hit, _ := HitAABB(node.Min, node.Max, r, tMinBound, closest)
		if !hit {
			idx = node.HitMissSkipLink
			continue
		}
		if node.IsLeaf() {
			switch node.PrimitiveType {
			case scene.TrianglePrimitive:
				if HitTriangle(s.Triangles[node.PrimitiveIndex], r, tMinBound, closest, &rec) {
					closest = rec.T
					found = true
				}
			case scene.SDFPrimitive:
				inst := s.SDFInstances[node.PrimitiveIndex]
				time := s.SDFTime[node.PrimitiveIndex]
				if HitSDF(inst, registry, time, r, tMinBound, closest, &rec) {
					closest = rec.T
					found = true
				}
			}
		}
		idx++
	}

	return rec, found
}

// ContainmentSDFDistance implements BVH-inflated containment
// traversal: a directional signed-distance estimate around point p, used by
// the deterministic loop's shadow/ambient-occlusion SDF field sampling. Only
// SDF leaves contribute; triangle leaves are inert per open question.
func ContainmentSDFDistance(s *scene.Scene, registry *sdf.Registry, p, dir types.Vec3, time float32) (float32, bool) {
	nodes := s.BVH.InflatedNodes
	idx := int32(0)
	best := float32(0)
	found := false

	for idx >= 0 && int(idx) < len(nodes) {
		node := nodes[idx]
		if !ContainsPoint(node.Min, node.Max, p) {
			idx = node.HitMissSkipLink
			continue
		}
		if node.IsLeaf() && node.PrimitiveType == scene.SDFPrimitive {
			inst := s.SDFInstances[node.PrimitiveIndex]
			instTime := s.SDFTime[node.PrimitiveIndex]
			d, ok := sdfDirectionalDistance(inst, registry, p, dir, instTime)
			if ok && (!found || d < best) {
				best = d
				found = true
			}
		}
		idx++
	}

	return best, found
}
