package core

import (
	"github.com/hulylabs/3d/rng"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

// ColorPixelMonteCarlo implements Monte-Carlo sub-pixel
// integration: N=1 draws one stochastic sample; N>1 draws N² jittered
// samples and averages them. random is the pixel's PCG stream for this
// frame, shared across every sub-sample.
func ColorPixelMonteCarlo(s *scene.Scene, registry *sdf.Registry, tex *TextureContext, u scene.Uniforms, background types.Vec3, x, y int, random *rng.PCG) types.Vec3 {
	n := int(u.PixelSideSubdivision)
	if n <= 1 {
		sx, sy := random.Float32Pair()
		ray, dpdx, dpdy := generatePixelRayWithPositionDerivatives(u, x, y, sx, sy)
		return RayColorMonteCarlo(s, registry, tex, u.GlobalTimeSeconds, background, ray, dpdx, dpdy, random)
	}

	sum := types.Vec3{}
	invN := 1.0 / float32(n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			jx, jy := random.Float32Pair()
			sx := (float32(i) + jx) * invN
			sy := (float32(j) + jy) * invN
			ray, dpdx, dpdy := generatePixelRayWithPositionDerivatives(u, x, y, sx, sy)
			sum = sum.Add(RayColorMonteCarlo(s, registry, tex, u.GlobalTimeSeconds, background, ray, dpdx, dpdy, random))
		}
	}
	return sum.Mul(1.0 / float32(n*n))
}

// ColorPixelDeterministic implements deterministic sub-pixel
// integration: N=1 evaluates one centered sample; N>1 evaluates N²
// uniformly-spaced sub-pixel positions in [0,(N-1)/N]^2 and averages them.
func ColorPixelDeterministic(s *scene.Scene, registry *sdf.Registry, tex *TextureContext, u scene.Uniforms, background types.Vec3, x, y int) types.Vec3 {
	n := int(u.PixelSideSubdivision)
	if n <= 1 {
		ray, dpdx, dpdy := generatePixelRayWithPositionDerivatives(u, x, y, 0.5, 0.5)
		return RayColorDeterministic(s, registry, tex, u.GlobalTimeSeconds, background, ray, dpdx, dpdy)
	}

	sum := types.Vec3{}
	invN := 1.0 / float32(n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			sx := float32(i) * invN
			sy := float32(j) * invN
			ray, dpdx, dpdy := generatePixelRayWithPositionDerivatives(u, x, y, sx, sy)
			sum = sum.Add(RayColorDeterministic(s, registry, tex, u.GlobalTimeSeconds, background, ray, dpdx, dpdy))
		}
	}
	return sum.Mul(1.0 / float32(n*n))
}

// generatePixelRayWithPositionDerivatives generates the primary ray for
// (x,y) plus the position-space differentials dp/dx, dp/dy the first-hit
// albedo lookup uses, following the same direction-delta approximation
// SurfaceAttributesPixel uses.
func generatePixelRayWithPositionDerivatives(u scene.Uniforms, x, y int, sx, sy float32) (ray Ray, dpdx, dpdy types.Vec3) {
	ray, diff := GeneratePixelRayWithDifferentials(u, x, y, sx, sy)
	dpdx = diff.DX.Direction.Sub(ray.Direction)
	dpdy = diff.DY.Direction.Sub(ray.Direction)
	return ray, dpdx, dpdy
}

// RunColorPass dispatches the color kernel for every pixel in the frame.
// Monte-Carlo mode adds each frame's contribution into the accumulator and
// the caller is responsible for incrementing u.FrameNumber; deterministic
// mode replaces the pixel outright.
func RunColorPass(s *scene.Scene, registry *sdf.Registry, tex *TextureContext, u scene.Uniforms, background types.Vec3, monteCarlo bool, buffers *FrameBuffers) {
	for y := 0; y < buffers.Height; y++ {
		for x := 0; x < buffers.Width; x++ {
			idx := buffers.index(x, y)
			if monteCarlo {
				random := rng.New(uint32(idx), u.FrameNumber)
				sample := ColorPixelMonteCarlo(s, registry, tex, u, background, x, y, random)
				buffers.Color[idx] = buffers.Color[idx].Add(sample)
			} else {
				buffers.Color[idx] = ColorPixelDeterministic(s, registry, tex, u, background, x, y)
			}
		}
	}
}
