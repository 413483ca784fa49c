package core

import (
	"github.com/hulylabs/3d/rng"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

// maxMonteCarloBounces caps the Monte-Carlo loop at 50 bounces.
const maxMonteCarloBounces = 50

// russianRouletteFromBounce is the last bounce index exempt from Russian
// roulette; termination applies from the next bounce on.
const russianRouletteFromBounce = 2

// lightImportanceWeight/lambertImportanceWeight are the MIS mixture weights
// between sampling the light and sampling the Lambertian lobe.
const (
	lightImportanceWeight   = 0.2
	lambertImportanceWeight = 0.8

	minPDF = 1e-5

	// scatterRayBias pushes a new bounce's origin off the surface along
	// its direction so the next intersection test doesn't immediately
	// re-hit the same primitive from numerical noise.
	scatterRayBias = 5e-4
)

const invPi = 1.0 / 3.14159265358979323846

// RayColorMonteCarlo implements unbiased Monte-Carlo path-tracing
// loop: at every diffuse bounce it mixes a light-importance sample with a
// cosine-weighted Lambertian sample (MIS weights 0.2/0.8), applies Russian
// roulette past the third bounce, and accumulates emission along the way.
// dpdx, dpdy are the primary ray's position-space differentials; they only
// apply to the first hit's albedo lookup, since the plane-tangent
// approximation they rest on isn't re-derived at later bounces.
func RayColorMonteCarlo(s *scene.Scene, registry *sdf.Registry, tex *TextureContext, globalTime float32, background types.Vec3, r Ray, dpdx, dpdy types.Vec3, random *rng.PCG) types.Vec3 {
	throughput := types.XYZ(1, 1, 1)
	accumulated := types.XYZ(0, 0, 0)
	ray := r

	for bounce := 0; bounce < maxMonteCarloBounces; bounce++ {
		rec, hit := IntersectScene(s, registry, ray, tMin, 1e30)
		if !hit {
			accumulated = accumulated.Add(background.MulVec(throughput))
			break
		}

		mat := s.Material(rec.MaterialID)
		emission := types.Vec3{}
		if rec.FrontFace {
			emission = mat.Emission
		}

		scattered := Scatter(mat, ray, rec, random)
		hitDX, hitDY := types.Vec3{}, types.Vec3{}
		if bounce == 0 {
			hitDX, hitDY = dpdx, dpdy
		}
		albedo := Albedo(mat, rec, tex, globalTime, hitDX, hitDY)
		weighted := mixAlbedoSpecular(mat, albedo, scattered.DoSpecular)

		if scattered.SkipPDF {
			accumulated = accumulated.Add(throughput.MulVec(emission))
			throughput = throughput.MulVec(weighted)
			dir := scattered.ScatterRay.Direction
			ray = NewRay(rec.Global.Position.Add(dir.Mul(scatterRayBias)), dir)
		} else {
			dir, lambertPDF, mixedPDF := sampleMixedDirection(s, rec, scattered, random)
			accumulated = accumulated.Add(throughput.MulVec(emission))
			if mixedPDF <= minPDF {
				break
			}
			throughput = throughput.MulVec(weighted.Mul(lambertPDF / mixedPDF))
			ray = NewRay(rec.Global.Position.Add(dir.Mul(scatterRayBias)), dir)
		}

		if bounce > russianRouletteFromBounce {
			p := maxf(throughput[0], maxf(throughput[1], throughput[2]))
			if random.Float32() > p {
				break
			}
			throughput = throughput.Mul(1.0 / maxf(p, 1e-4))
		}
	}

	return accumulated
}

// mixAlbedoSpecular selects the throughput color for a bounce: doSpecular
// is the binary flag Scatter sets when it took the Lambertian material's
// specular lobe or scattered off a Mirror (Glass and Isotropic leave it 0),
// not a continuous roughness blend.
func mixAlbedoSpecular(mat scene.Material, albedo types.Vec3, doSpecular float32) types.Vec3 {
	if doSpecular > 0 {
		return mat.Specular
	}
	return albedo
}

// sampleMixedDirection implements the 0.2 light / 0.8 Lambert mixture
// density : with probability lightImportanceWeight it samples a
// point on the scene's light quad, otherwise it keeps the cosine-weighted
// Lambertian direction Scatter already drew. It returns the chosen
// direction, the Lambertian (cos/π) density at that direction, and the full
// MIS mixture density.
func sampleMixedDirection(s *scene.Scene, rec HitRecord, scattered ScatterRecord, random *rng.PCG) (dir types.Vec3, lambertPDF, mixedPDF float32) {
	lambertDir := scattered.ScatterRay.Direction

	if !s.HasLight() {
		cosine := maxf(lambertDir.Dot(rec.Global.Normal), 0)
		lambertPDF = cosine * invPi
		return lambertDir, lambertPDF, lambertPDF
	}

	light := s.Light()
	var raw types.Vec3
	if random.Float32() < lightImportanceWeight {
		r1, r2 := random.Float32Pair()
		sample := light.SampleUniform(r1, r2)
		raw = sample.Position.Sub(rec.Global.Position)
	} else {
		raw = lambertDir
	}

	unit := raw.Normalize()
	cosine := maxf(unit.Dot(rec.Global.Normal), 0)
	lambertPDF = cosine * invPi

	lightPDF := LightPDF(rec.Global.Position, raw, light)
	if lightPDF == MinFloat {
		lightPDF = 0
	}

	mixedPDF = lightImportanceWeight*lightPDF + lambertImportanceWeight*lambertPDF
	return unit, lambertPDF, mixedPDF
}
