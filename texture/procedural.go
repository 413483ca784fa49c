// Package texture implements the procedural-texture registry and atlas
// sampling machinery of the texture engine.
package texture

import (
	"math"
	"github.com/hulylabs/3d/types"
)

// Procedural is a registry-callable procedural texture: given a local
// position, local normal, global time and ray-differential footprint,
// returns a unit-range color.
type Procedural interface {
	Sample(localPosition, localNormal types.Vec3, globalTime float32, ddx, ddy types.Vec3) types.Vec3
}

// Checkerboard is a 3-D checkerboard at 10 cells per unit, alternating
// black and white based on the parity of the sum of floored cell
// coordinates.
type Checkerboard struct{}

func (Checkerboard) Sample(localPosition, _ types.Vec3, _ float32, _, _ types.Vec3) types.Vec3 {
	cell := localPosition.Mul(10)
	fx := math.Floor(float64(cell[0]))
	fy := math.Floor(float64(cell[1]))
	fz := math.Floor(float64(cell[2]))
	parity := int64(fx+fy+fz) % 2
	if parity < 0 {
		parity = -parity
	}
	if parity == 0 {
		return types.Splat3(0)
	}
	return types.Splat3(1)
}

// ProceduralRegistry resolves a material's procedural texture id to a
// Procedural implementation.
type ProceduralRegistry struct {
	textures []Procedural
}

func NewProceduralRegistry(textures []Procedural) *ProceduralRegistry {
	return &ProceduralRegistry{textures: textures}
}

// SnapToGrid quantizes a position to a fixed grid before sampling, removing
// the edge-case flicker discontinuous procedurals exhibit at cell
// boundaries.
func SnapToGrid(p types.Vec3, step float32) types.Vec3 {
	snap := func(x float32) float32 {
		return float32(math.Round(float64(x/step))) * step
	}
	return types.XYZ(snap(p[0]), snap(p[1]), snap(p[2]))
}

// Select dispatches to the registered procedural texture; uid is the
// 0-based index into the list passed to NewProceduralRegistry.
func (r *ProceduralRegistry) Select(uid uint32, localPosition, localNormal types.Vec3, globalTime float32, ddx, ddy types.Vec3) types.Vec3 {
	return r.textures[uid].Sample(SnapToGrid(localPosition, 1e-4), localNormal, globalTime, ddx, ddy)
}
