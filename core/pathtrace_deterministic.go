package core

import (
	"math"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

// maxDeterministicBounces caps the deterministic (preview/debug) loop at 8
// bounces — far fewer than the Monte-Carlo loop since this path is
// meant to run every frame at interactive rates with no noise to average
// out.
const maxDeterministicBounces = 8

// ambientOcclusionSamples/ambientOcclusionDecay/ambientOcclusionBreak
// implement 5-tap SDF ambient-occlusion approximation.
const (
	ambientOcclusionSamples = 5
	ambientOcclusionDecay = 0.95
	ambientOcclusionBreak = 0.35
)

// RayColorDeterministic implements biased, noise-free shading loop:
// analytic direct lighting toward the light quad's center with a hard
// shadow ray, Phong-style specular highlight, SDF-field ambient occlusion,
// roughness-jittered mirror reflections and a deterministic refract path for
// glass. Mirror's roughness jitter uses a cheap position-seeded hash rather
// than the PCG stream the Monte-Carlo loop uses, so the same shading point
// always jitters the same way with no per-invocation random state to carry.
// dpdx, dpdy are the primary ray's position-space differentials; they only
// apply to the first hit's albedo lookup, since the plane-tangent
// approximation they rest on isn't re-derived at later bounces.
func RayColorDeterministic(s *scene.Scene, registry *sdf.Registry, tex *TextureContext, globalTime float32, background types.Vec3, r Ray, dpdx, dpdy types.Vec3) types.Vec3 {
	accumulated := types.Vec3{}
	ray := r

	for bounce := 0; bounce < maxDeterministicBounces; bounce++ {
		rec, hit := IntersectScene(s, registry, ray, tMin, 1e30)
		if !hit {
			break
		}

		mat := s.Material(rec.MaterialID)
		hitDX, hitDY := types.Vec3{}, types.Vec3{}
		if bounce == 0 {
			hitDX, hitDY = dpdx, dpdy
		}
		albedo := Albedo(mat, rec, tex, globalTime, hitDX, hitDY)

		switch mat.Class {
		case scene.Mirror:
			seed := positionHash(rec.Global.Position, bounce)
			dir := ray.Direction.Reflect(rec.Global.Normal).Add(hashUnitSphere(seed).Mul(mat.Roughness)).Normalize()
			if dir.NearZero() {
				dir = rec.Global.Normal
			}
			accumulated = accumulated.Add(mat.Emission)
			ray = NewRay(rec.Global.Position.Add(dir.Mul(scatterRayBias)), dir)
			continue
		case scene.Glass:
			unit := ray.Direction.Normalize()
			eta := mat.RefractiveIndex
			if rec.FrontFace {
				eta = 1.0 / eta
			}
			cosTheta := minf(-unit.Dot(rec.Global.Normal), 1.0)
			sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))
			var dir types.Vec3
			if eta*sinTheta > 1.0 {
				dir = unit.Reflect(rec.Global.Normal)
			} else {
				dir = unit.Refract(rec.Global.Normal, eta)
			}
			accumulated = accumulated.Add(mat.Emission)
			ray = NewRay(rec.Global.Position.Add(dir.Mul(scatterRayBias)), dir)
			continue
		case scene.Lambertian:
			return accumulated.Add(shadeLambertDeterministic(s, registry, rec, mat, albedo, ray, globalTime, background))
		default:
			// Isotropic and anything else: stops with plain albedo.
			return accumulated.Add(albedo)
		}
	}

	return accumulated
}

// shadeLambertDeterministic implements single-bounce analytic
// Lambert+Phong term evaluated toward the light quad's center.
func shadeLambertDeterministic(s *scene.Scene, registry *sdf.Registry, rec HitRecord, mat scene.Material, albedo types.Vec3, ray Ray, globalTime float32, background types.Vec3) types.Vec3 {
	occlusion := ambientOcclusion(s, registry, rec, globalTime)

	if !s.HasLight() {
		return background.MulVec(albedo).Mul(occlusion).Add(mat.Emission)
	}

	light := s.Light()
	lightCenter := light.Center()
	toLight := lightCenter.Sub(rec.Global.Position)
	distance := toLight.Len()
	if distance < 1e-6 {
		return background.MulVec(albedo).Mul(occlusion).Add(mat.Emission)
	}
	lightDir := toLight.Mul(1.0 / distance)
	view := ray.Direction.Neg().Normalize()

	diffuse := maxf(rec.Global.Normal.Dot(lightDir), 0)
	reflectDir := lightDir.Neg().Reflect(rec.Global.Normal)
	specular := powf(maxf(reflectDir.Dot(view), 0), 4) * diffuse

	shadow := float32(1)
	shadowRay := NewRay(rec.Global.Position.Add(lightDir.Mul(scatterRayBias)), lightDir)
	if blocker, occluded := IntersectScene(s, registry, shadowRay, tMin, distance-scatterRayBias); occluded {
		blockerMat := s.Material(blocker.MaterialID)
		if blockerMat.Emission == (types.Vec3{}) {
			shadow = 0
		}
	}

	lightMat := s.Material(light.MaterialID)
	diffuseTerm := albedo.Mul(diffuse * occlusion)
	specularTerm := mat.Specular.Mul(specular)
	color := diffuseTerm.Lerp(specularTerm, mat.SpecularStrength)
	color = color.MulVec(lightMat.Emission).Mul(shadow*0.4 + 0.6)
	color = color.Add(background.MulVec(albedo).Mul(occlusion))
	color = color.Add(mat.Emission)
	return color
}

// ambientOcclusion implements 5-tap SDF ambient-occlusion
// approximation: step outward along the normal at increasing heights,
// accumulating an occlusion estimate from how far the nearest SDF surface
// is from each sample point, decaying contribution with distance from the
// shading point.
func ambientOcclusion(s *scene.Scene, registry *sdf.Registry, rec HitRecord, globalTime float32) float32 {
	if len(s.SDFInstances) == 0 {
		return 1
	}

	acc := float32(0)
	decay := float32(1)
	n := rec.Global.Normal
	for i := 0; i < ambientOcclusionSamples; i++ {
		decay *= ambientOcclusionDecay
		h := 0.01 + 0.12*float32(i)/4.0
		p := rec.Global.Position.Add(n.Mul(h))
		d, ok := ContainmentSDFDistance(s, registry, p, n, globalTime)
		if ok {
			acc += maxf(h-d, 0) * decay
		}
		if acc > ambientOcclusionBreak {
			break
		}
	}

	return clamp01(2.5 - 7*acc)
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

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// positionHash derives a cheap, deterministic seed from a shading point and
// bounce index : fract(sin(dot(p,k))*43758.5), the classic low-quality
// GLSL hash, kept intentionally separate from the PCG stream the Monte-Carlo
// loop uses.
func positionHash(p types.Vec3, bounce int) float32 {
	k := types.XYZ(12.9898, 78.233, 45.164)
	x := float64(p.Dot(k)) + float64(bounce)*37.719
	s := math.Sin(x) * 43758.5453123
	return float32(s - math.Floor(s))
}

// hashUnitSphere turns a single hashed scalar into three further hashes to
// build a unit-sphere direction, used by the deterministic loop's roughness
// jitter in place of the PCG-backed rejection sampler.
func hashUnitSphere(seed float32) types.Vec3 {
	h1 := fractSin(seed * 12.9898)
	h2 := fractSin(seed * 78.233)
	h3 := fractSin(seed * 37.719)
	v := types.XYZ(2*h1-1, 2*h2-1, 2*h3-1)
	if v.NearZero() {
		return types.XYZ(0, 0, 1)
	}
	return v.Normalize()
}

func fractSin(x float32) float32 {
	s := math.Sin(float64(x)) * 43758.5453123
	return float32(s - math.Floor(s))
}
