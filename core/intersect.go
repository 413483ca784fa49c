package core

import (
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

const tMin float32 = 1e-6

// HitParallelogram implements parallelogram test. closestSoFar bounds
// the search; the record is updated and true returned only if this hit
// improves it.
func HitParallelogram(p scene.Parallelogram, r Ray, tMinBound, closestSoFar float32, rec *HitRecord) bool {
	denom := r.Direction.Dot(p.Normal)
	if denom >= 0 {
		return false
	}
	t := (p.PlaneDist - p.Normal.Dot(r.Origin)) / denom
	if t <= tMinBound || t >= closestSoFar {
		return false
	}

	hitPoint := r.At(t)
	pq := hitPoint.Sub(p.Origin)
	alpha := p.W.Dot(pq.Cross(p.V))
	beta := p.W.Dot(p.U.Cross(pq))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return false
	}

	rec.Global.Position = p.Origin.Add(p.U.Mul(alpha)).Add(p.V.Mul(beta))
	rec.Local.Position = p.U.Mul(alpha).Add(p.V.Mul(beta)).Sub(p.U.Add(p.V).Mul(0.5))
	rec.Global.Normal = p.Normal
	rec.Local.Normal = p.Normal
	rec.FrontFace = denom < 0
	rec.MaterialID = p.MaterialID
	rec.ObjectUID = p.ObjectUID
	rec.T = t
	return true
}

// HitTriangle implements Möller-Trumbore test.
func HitTriangle(tri scene.Triangle, r Ray, tMinBound, closestSoFar float32, rec *HitRecord) bool {
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)
	det := -r.Direction.Dot(ab.Cross(ac))
	if absf(det) < tMin {
		return false
	}
	invDet := 1.0 / det

	ao := r.Origin.Sub(tri.A)
	dao := ao.Cross(r.Direction)

	u := ac.Dot(dao) * invDet
	v := -ab.Dot(dao) * invDet
	w := 1 - u - v
	t := ao.Dot(ab.Cross(ac)) * invDet

	if t <= tMinBound || t >= closestSoFar || u < tMin || v < tMin || w < tMin {
		return false
	}

	position := tri.A.Mul(w).Add(tri.B.Mul(u)).Add(tri.C.Mul(v))
	normal := tri.NA.Mul(w).Add(tri.NB.Mul(u)).Add(tri.NC.Mul(v)).Normalize()
	frontFace := r.Direction.Dot(normal) < 0
	if !frontFace {
		normal = normal.Neg()
	}

	rec.Global.Position = position
	rec.Local.Position = position
	rec.Global.Normal = normal
	rec.Local.Normal = normal
	rec.FrontFace = frontFace
	rec.MaterialID = tri.MaterialID
	rec.ObjectUID = tri.ObjectUID
	rec.T = t
	return true
}

// HitAABB implements the slab test, returning the hit flag and the
// entry parameter (used as an SDF march lower bound).
func HitAABB(min, max types.Vec3, r Ray, tMinBound, tMaxBound float32) (hit bool, tEnter float32) {
	enter, exit := tMinBound, tMaxBound
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Direction[axis]
		t0 := (min[axis] - r.Origin[axis]) * invD
		t1 := (max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > enter {
			enter = t0
		}
		if t1 < exit {
			exit = t1
		}
		if exit <= enter {
			return false, 0
		}
	}
	return true, enter
}

// ContainsPoint reports whether p lies within the AABB [min,max], used by
// the containment traversal.
func ContainsPoint(min, max, p types.Vec3) bool {
	return p[0] >= min[0] && p[0] <= max[0] &&
		p[1] >= min[1] && p[1] <= max[1] &&
		p[2] >= min[2] && p[2] <= max[2]
}

const (
	sdfMaxSteps = 120
	sdfGradientEps = 0.5773 * 5e-4 // tetrahedral offset magnitude
)

// HitSDF implements sphere-tracing test against an SDF instance in
// its local frame.
func HitSDF(inst scene.SDFInstance, registry *sdf.Registry, time float32, r Ray, tMinBound, closestSoFar float32, rec *HitRecord) bool {
	localOrigin := inst.InverseLocation.TransformPoint(r.Origin)
	localDir := inst.InverseLocation.TransformDirection(r.Direction).Normalize()
	localRay := NewRay(localOrigin, localDir)

	worldTMinPoint := r.At(tMinBound)
	worldTMaxPoint := r.At(closestSoFar)
	localTMinPoint := inst.InverseLocation.TransformPoint(worldTMinPoint)
	localTMaxPoint := inst.InverseLocation.TransformPoint(worldTMaxPoint)
	localTMin := localTMinPoint.Sub(localOrigin).Len()
	localTMax := localTMaxPoint.Sub(localOrigin).Len()

	t := localTMin
	var d float32
	hit := false
	for i := 0; i < sdfMaxSteps; i++ {
		p := localRay.At(t)
		d = registry.Select(inst.ClassIndex, p, time)
		if absf(d) < 1e-4*t {
			hit = true
			break
		}
		t += maxf(absf(d)*inst.RayMarchStepScale, 1e-4*t)
		if t >= localTMax {
			break
		}
	}
	if !hit {
		return false
	}

	candidate := localRay.At(t)
	worldPosition := inst.Location.TransformPoint(candidate)
	worldT := worldPosition.Sub(r.Origin).Len()
	if worldT <= tMinBound || worldT >= closestSoFar {
		return false
	}

	localNormal := sdfGradient(registry, inst.ClassIndex, candidate, time)
	insideAtOrigin := registry.Select(inst.ClassIndex, localOrigin, time) >= 0
	if !insideAtOrigin {
		localNormal = localNormal.Neg()
	}

	globalNormal := inst.InverseLocation.Mat3().Transpose().Mul3x1(localNormal).Normalize()

	rec.Global.Position = worldPosition
	rec.Global.Normal = globalNormal
	rec.Local.Position = registry.ApplyAnimation(inst.ClassIndex, candidate, time)
	rec.Local.Normal = localNormal
	rec.FrontFace = insideAtOrigin
	rec.MaterialID = inst.MaterialID
	rec.ObjectUID = inst.ObjectUID
	rec.T = worldT
	return true
}

// sdfGradient estimates the surface normal via central differences using a
// tetrahedral sampling offset, matching the four-tap pattern that keeps the
// gradient stable near sharp SDF edges while costing only four field
// evaluations.
func sdfGradient(registry *sdf.Registry, classIndex uint32, p types.Vec3, time float32) types.Vec3 {
	const e = sdfGradientEps
	e1 := types.XYZ(1, -1, -1).Mul(e)
	e2 := types.XYZ(-1, -1, 1).Mul(e)
	e3 := types.XYZ(-1, 1, -1).Mul(e)
	e4 := types.XYZ(1, 1, 1).Mul(e)

	sample := func(offset types.Vec3) float32 {
		return registry.Select(classIndex, p.Add(offset), time)
	}

	grad := e1.Mul(sample(e1)).Add(e2.Mul(sample(e2))).Add(e3.Mul(sample(e3))).Add(e4.Mul(sample(e4)))
	return grad.Normalize()
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
