package core

import (
	"math"
	"github.com/hulylabs/3d/rng"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

// ScatterRecord is the process-local scratch the BRDF module fills in:
// whether the sampled direction skips MIS pdf weighting, and the
// resulting ray.
type ScatterRecord struct {
	SkipPDF bool
	ScatterRay Ray
	// DoSpecular is 1 when the Lambertian path chose its specular lobe or the
	// material is a Mirror, 0 otherwise; used by the path-tracing loops to
	// blend albedo/specular.
	DoSpecular float32
}

// ONB is an orthonormal basis aligned with a normal (w axis), used to turn
// canonical hemisphere samples into world-space directions.
type ONB struct {
	U, V, W types.Vec3
}

// BuildONB constructs an orthonormal basis with w = n (u x v = -w).
func BuildONB(n types.Vec3) ONB {
	w := n.Normalize()
	a := types.XYZ(0, 1, 0)
	if absf(w[1]) > 0.9 {
		a = types.XYZ(1, 0, 0)
	}
	v := w.Cross(a).Normalize()
	u := w.Cross(v)
	return ONB{U: u, V: v, W: w}
}

// Local transforms a local-frame vector into the basis's world frame.
func (o ONB) Local(v types.Vec3) types.Vec3 {
	return o.U.Mul(v[0]).Add(o.V.Mul(v[1])).Add(o.W.Mul(v[2]))
}

// Scatter dispatches on the material's class, implementing that class's BRDF
// sampling: mirror reflection, glass refraction/reflection, isotropic
// scattering, or Lambertian cosine-weighted diffuse.
func Scatter(mat scene.Material, r Ray, rec HitRecord, random *rng.PCG) ScatterRecord {
	switch mat.Class {
	case scene.Mirror:
		return scatterMirror(mat, r, rec, random)
	case scene.Glass:
		return scatterGlass(mat, r, rec, random, true)
	case scene.Isotropic:
		return scatterIsotropic(mat, r, rec, random)
	default:
		return scatterLambertian(mat, r, rec, random)
	}
}

func scatterLambertian(mat scene.Material, r Ray, rec HitRecord, random *rng.PCG) ScatterRecord {
	onb := BuildONB(rec.Global.Normal)
	r1, r2 := random.Float32Pair()
	cosTheta2Pi := float32(2) * math.Pi * r1
	sqrtR2 := float32(math.Sqrt(float64(r2)))
	diffuseLocal := types.XYZ(float32(math.Cos(float64(cosTheta2Pi)))*sqrtR2,
		float32(math.Sin(float64(cosTheta2Pi)))*sqrtR2,
		float32(math.Sqrt(float64(1-r2))),)
	diffuseDir := onb.Local(diffuseLocal).Normalize()

	if random.Float32() < mat.SpecularStrength {
		mirrorDir := r.Direction.Reflect(rec.Global.Normal)
		dir := mirrorDir.Lerp(diffuseDir, mat.Roughness).Normalize()
		if dir.NearZero() {
			dir = rec.Global.Normal
		}
		return ScatterRecord{
			SkipPDF: true,
			DoSpecular: 1,
			ScatterRay: NewRay(rec.Global.Position, dir),
		}
	}

	if diffuseDir.NearZero() {
		diffuseDir = rec.Global.Normal
	}
	return ScatterRecord{
		SkipPDF: false,
		DoSpecular: 0,
		ScatterRay: NewRay(rec.Global.Position, diffuseDir),
	}
}

func scatterMirror(mat scene.Material, r Ray, rec HitRecord, random *rng.PCG) ScatterRecord {
	dir := r.Direction.Reflect(rec.Global.Normal).Add(uniformInUnitSphere(random).Mul(mat.Roughness)).Normalize()
	if dir.NearZero() {
		dir = rec.Global.Normal
	}
	return ScatterRecord{SkipPDF: true, DoSpecular: 1, ScatterRay: NewRay(rec.Global.Position, dir)}
}

// scatterGlass implements glass BRDF. stochastic selects between the
// stochastic reflect-or-refract branch and the always-refract-unless-TIR
// branch. Scatter always passes true; the deterministic loop handles glass
// with its own inline refraction and does not call this function.
func scatterGlass(mat scene.Material, r Ray, rec HitRecord, random *rng.PCG, stochastic bool) ScatterRecord {
	eta := mat.RefractiveIndex
	if rec.FrontFace {
		eta = 1.0 / eta
	}

	unitDir := r.Direction.Normalize()
	cosTheta := minf(-unitDir.Dot(rec.Global.Normal), 1.0)
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))

	var dir types.Vec3
	cannotRefract := eta*sinTheta > 1.0
	if cannotRefract || (stochastic && schlick(cosTheta, eta) > random.Float32()) {
		dir = unitDir.Reflect(rec.Global.Normal)
	} else {
		dir = unitDir.Refract(rec.Global.Normal, eta)
	}
	if dir.NearZero() {
		dir = rec.Global.Normal
	}
	return ScatterRecord{SkipPDF: true, DoSpecular: 0, ScatterRay: NewRay(rec.Global.Position, dir)}
}

func scatterIsotropic(mat scene.Material, r Ray, rec HitRecord, random *rng.PCG) ScatterRecord {
	g := mat.SpecularStrength
	r1, r2 := random.Float32Pair()

	var cosTheta float32
	if absf(g) < 1e-3 {
		cosTheta = 1 - 2*r1
	} else {
		sq := (1 - g*g) / (1 - g + 2*g*r1)
		cosTheta = (1 + g*g - sq*sq) / (2 * g)
	}
	sinTheta := float32(math.Sqrt(math.Max(0, float64(1-cosTheta*cosTheta))))
	phi := 2 * math.Pi * r2

	localDir := types.XYZ(sinTheta*float32(math.Cos(float64(phi))),
		sinTheta*float32(math.Sin(float64(phi))),
		cosTheta,)

	onb := BuildONB(r.Direction)
	dir := onb.Local(localDir).Normalize()
	if dir.NearZero() {
		dir = r.Direction
	}
	return ScatterRecord{SkipPDF: true, DoSpecular: 0, ScatterRay: NewRay(rec.Global.Position, dir)}
}

// schlick approximates Fresnel reflectance.
func schlick(cosine, refIdx float32) float32 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 *= r0
	return r0 + (1-r0)*powf(1-cosine, 5)
}

func uniformInUnitSphere(random *rng.PCG) types.Vec3 {
	for {
		p := types.XYZ(2*random.Float32()-1, 2*random.Float32()-1, 2*random.Float32()-1)
		if p.Dot(p) < 1 {
			return p
		}
	}
}

func powf(x float32, n int) float32 {
	r := float32(1)
	for i := 0; i < n; i++ {
		r *= x
	}
	return r
}
