package scene

import "github.com/hulylabs/3d/types"

// Triangle is a single triangle primitive with per-vertex normals,
// carrying exactly the fields Möller-Trumbore intersection and normal
// interpolation need.
type Triangle struct {
	A, B, C types.Vec3
	NA, NB, NC types.Vec3

	MaterialID uint32
	ObjectUID uint32
}

// NewTriangle builds a triangle primitive. Vertex winding determines the
// geometric (non-interpolated) normal used as a fallback when per-vertex
// normals are degenerate.
func NewTriangle(a, b, c, na, nb, nc types.Vec3, materialID, objectUID uint32) Triangle {
	return Triangle{A: a, B: b, C: c, NA: na, NB: nb, NC: nc, MaterialID: materialID, ObjectUID: objectUID}
}

// Center returns the triangle centroid, used by BVH construction.
func (t Triangle) Center() types.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// BBox returns the world-space axis-aligned bounding box of the triangle.
func (t Triangle) BBox() (min, max types.Vec3) {
	min = types.MinVec3(types.MinVec3(t.A, t.B), t.C)
	max = types.MaxVec3(types.MaxVec3(t.A, t.B), t.C)
	return min, max
}
