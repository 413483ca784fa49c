package scene

import "github.com/hulylabs/3d/types"

// Parallelogram is a planar quad primitive spanned by two edge vectors from
// an origin corner. All derived quantities needed by the intersection
// test are precomputed at construction time rather than recomputed per ray.
type Parallelogram struct {
	Origin types.Vec3
	U, V types.Vec3

	// Normal is n = normalize(U x V).
	Normal types.Vec3
	// PlaneDist is D = Normal. Origin.
	PlaneDist float32
	// W recovers planar barycentrics: alpha = W. ((P-Q) x V), beta = W. (U x (P-Q)).
	W types.Vec3

	MaterialID uint32
	ObjectUID uint32
}

// NewParallelogram builds a parallelogram primitive, precomputing its plane
// normal, plane distance and barycentric-recovery vector.
func NewParallelogram(origin, u, v types.Vec3, materialID, objectUID uint32) Parallelogram {
	crossUV := u.Cross(v)
	n := crossUV.Normalize()
	return Parallelogram{
		Origin: origin,
		U: u,
		V: v,
		Normal: n,
		PlaneDist: n.Dot(origin),
		W: crossUV.Mul(1.0 / crossUV.Dot(crossUV)),
		MaterialID: materialID,
		ObjectUID: objectUID,
	}
}

// Center returns the quad's centroid, used by BVH construction.
func (p Parallelogram) Center() types.Vec3 {
	return p.Origin.Add(p.U.Mul(0.5)).Add(p.V.Mul(0.5))
}

// BBox returns the world-space axis-aligned bounding box of the quad.
func (p Parallelogram) BBox() (min, max types.Vec3) {
	corners := [4]types.Vec3{
		p.Origin,
		p.Origin.Add(p.U),
		p.Origin.Add(p.V),
		p.Origin.Add(p.U).Add(p.V),
	}
	min, max = corners[0], corners[0]
	for _, c := range corners[1:] {
		min = types.MinVec3(min, c)
		max = types.MaxVec3(max, c)
	}
	// Quads are zero-thickness along their normal; pad slightly so slab
	// tests against axis-aligned quads don't collapse to an empty box.
	const pad = 1e-4
	padVec := types.Splat3(pad)
	return min.Sub(padVec), max.Add(padVec)
}

// LightSample is a point sampled uniformly on the quad's surface together
// with the quad's plane normal, used by emissive-quad importance sampling
//.
type LightSample struct {
	Position types.Vec3
	Normal types.Vec3
	Area float32
}

// SampleUniform draws a uniform point on the quad's surface from two
// canonical random numbers in [0,1).
func (p Parallelogram) SampleUniform(r1, r2 float32) LightSample {
	return LightSample{
		Position: p.Origin.Add(p.U.Mul(r1)).Add(p.V.Mul(r2)),
		Normal: p.Normal,
		Area: p.U.Cross(p.V).Len(),
	}
}
