// Package sdf implements the analytic signed-distance registry the core
// calls into by class index. Each class's distance formula is plain Go
// math evaluated directly on the CPU.
package sdf

import (
	"math"
	"github.com/hulylabs/3d/types"
)

// Class is an analytic signed-distance function evaluated in local (object)
// space, plus the axis-aligned bounding box of its zero level set.
type Class interface {
	Distance(p types.Vec3) float32
	LocalBoundsHalfExtent() types.Vec3
}

// Sphere is a distance field: length(p) - radius.
type Sphere struct {
	Radius float32
}

func (s Sphere) Distance(p types.Vec3) float32 { return p.Len() - s.Radius }
func (s Sphere) LocalBoundsHalfExtent() types.Vec3 {
	return types.Splat3(s.Radius)
}

// Box is an axis-aligned box distance field.
type Box struct {
	HalfSize types.Vec3
}

func (b Box) Distance(p types.Vec3) float32 {
	q := types.XYZ(absf(p[0])-b.HalfSize[0], absf(p[1])-b.HalfSize[1], absf(p[2])-b.HalfSize[2])
	outside := types.MaxVec3(q, types.Vec3{}).Len()
	inside := minf(maxf(q[0], maxf(q[1], q[2])), 0)
	return outside + inside
}

func (b Box) LocalBoundsHalfExtent() types.Vec3 { return b.HalfSize }

// TorusXZ is a distance field for a torus whose ring lies in the XZ plane.
type TorusXZ struct {
	MajorRadius, MinorRadius float32
}

func (t TorusXZ) Distance(p types.Vec3) float32 {
	qx := math.Sqrt(float64(p[0]*p[0]+p[2]*p[2])) - float64(t.MajorRadius)
	qy := float64(p[1])
	return float32(math.Sqrt(qx*qx+qy*qy)) - t.MinorRadius
}

func (t TorusXZ) LocalBoundsHalfExtent() types.Vec3 {
	total := t.MajorRadius + t.MinorRadius
	return types.XYZ(total, t.MinorRadius, total)
}

// Cone is a distance field for an upside-down cone with apex at the origin
// opening downward along -y, to height h, with half-angle whose tangent is
// AngleTan.
type Cone struct {
	AngleTan float32
	Height float32
}

func (c Cone) Distance(p types.Vec3) float32 {
	qx, qy := c.Height*c.AngleTan, -c.Height
	wx := float32(math.Sqrt(float64(p[0]*p[0] + p[2]*p[2])))
	wy := p[1]

	dotWQ := wx*qx + wy*qy
	dotQQ := qx*qx + qy*qy
	tA := clamp01(dotWQ / dotQQ)
	ax, ay := wx-qx*tA, wy-qy*tA

	tB := clamp01(wx / qx)
	bx, by := wx-qx*tB, wy-qy

	k := signf(qy)
	d := minf(ax*ax+ay*ay, bx*bx+by*by)
	s := maxf(k*(wx*qy-wy*qx), k*(wy-qy))

	return float32(math.Sqrt(float64(d))) * signf(s)
}

func (c Cone) LocalBoundsHalfExtent() types.Vec3 {
	x := c.AngleTan * c.Height
	// The cone spans y in [-Height, 0]; the bounds are centered on the origin.
	return types.XYZ(x, c.Height, x)
}

// Capsule is a distance field for the locus at distance Radius from the
// segment [Start,End].
type Capsule struct {
	Start, End types.Vec3
	Radius float32
}

func (c Capsule) Distance(p types.Vec3) float32 {
	pa := p.Sub(c.Start)
	ba := c.End.Sub(c.Start)
	h := clamp01(pa.Dot(ba) / ba.Dot(ba))
	return pa.Sub(ba.Mul(h)).Len() - c.Radius
}

func (c Capsule) LocalBoundsHalfExtent() types.Vec3 {
	min := types.MinVec3(c.Start, c.End).Sub(types.Splat3(c.Radius))
	max := types.MaxVec3(c.Start, c.End).Add(types.Splat3(c.Radius))
	// The bounds are centered on the origin, so each axis reaches the
	// farther of the two faces.
	he := types.XYZ(maxf(absf(min[0]), absf(max[0])), maxf(absf(min[1]), absf(max[1])), maxf(absf(min[2]), absf(max[2])))
	return he
}

// Registry resolves a scene's numeric class indices to concrete Class
// values and applies per-instance animation before evaluating distance.
type Registry struct {
	classes []Class
	animation []Animation
}

// NewRegistry builds a registry from a parallel class/animation list; pass
// nil for an instance with no animation (identity).
func NewRegistry(classes []Class, animation []Animation) *Registry {
	return &Registry{classes: classes, animation: animation}
}

// Select returns the signed distance at p for classIndex, after applying
// that class's animation transform to p.
func (r *Registry) Select(classIndex uint32, p types.Vec3, time float32) float32 {
	p = r.ApplyAnimation(classIndex, p, time)
	return r.classes[classIndex].Distance(p)
}

// ApplyAnimation maps a local-frame point back to the class's rest frame.
// Classes with no registered animation return p unchanged.
func (r *Registry) ApplyAnimation(classIndex uint32, p types.Vec3, time float32) types.Vec3 {
	if int(classIndex) >= len(r.animation) || r.animation[classIndex] == nil {
		return p
	}
	return r.animation[classIndex].Apply(p, time)
}

// Class returns the registered class, for bounds queries.
func (r *Registry) Class(classIndex uint32) Class { return r.classes[classIndex] }

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func signf(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
