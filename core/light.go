package core

import (
	"math"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

// MinFloat is the sentinel pdf returned when a light-pdf query is
// degenerate (parallel to, or outside, the light quad).
const MinFloat float32 = -math.MaxFloat32

// LightPDF implements area-light pdf conversion: intersects the ray
// (origin, direction) — direction need not be normalized — with the quad's
// plane and converts the resulting area pdf (1/area) to a solid-angle pdf.
func LightPDF(origin, direction types.Vec3, light scene.Parallelogram) float32 {
	denom := direction.Dot(light.Normal)
	if denom >= 0 {
		return 0
	}

	t := (light.PlaneDist - light.Normal.Dot(origin)) / denom
	if t <= tMin {
		return MinFloat
	}

	p := origin.Add(direction.Mul(t))
	pq := p.Sub(light.Origin)
	alpha := light.W.Dot(pq.Cross(light.V))
	beta := light.W.Dot(light.U.Cross(pq))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return MinFloat
	}

	area := light.U.Cross(light.V).Len()
	distSq := t * t * direction.Dot(direction)
	cosine := absf(denom) / direction.Len()
	if cosine < 1e-8 || area < 1e-8 {
		return MinFloat
	}
	return distSq / (cosine * area)
}
