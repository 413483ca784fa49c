package core

import (
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

// SurfaceAttributesPixel implements per-pixel first-hit pass: a
// single centered-sample ray, writing object uid (0 on miss), textured
// albedo and world normal. Run once per frame ahead of color accumulation;
// writes are idempotent so re-running it for the same frame is harmless.
func SurfaceAttributesPixel(s *scene.Scene, registry *sdf.Registry, tex *TextureContext, u scene.Uniforms, x, y int) (objectUID uint32, albedo, normal types.Vec3) {
	ray, diff := GeneratePixelRayWithDifferentials(u, x, y, 0.5, 0.5)
	rec, hit := IntersectScene(s, registry, ray, tMin, 1e30)
	if !hit {
		return 0, types.Vec3{}, types.Vec3{}
	}

	mat := s.Material(rec.MaterialID)
	dpdx := diff.DX.Direction.Sub(ray.Direction)
	dpdy := diff.DY.Direction.Sub(ray.Direction)
	albedo = Albedo(mat, rec, tex, u.GlobalTimeSeconds, dpdx, dpdy)
	return rec.ObjectUID, albedo, rec.Global.Normal
}

// RunSurfaceAttributesPass dispatches SurfaceAttributesPixel over every
// pixel in the frame, serially, writing into the buffers' attribute
// attachments. Pixels are independent; the renderer does not call this
// loop and instead runs SurfaceAttributesPixel over 8x8 tiles with
// tracer.DispatchTiles.
func RunSurfaceAttributesPass(s *scene.Scene, registry *sdf.Registry, tex *TextureContext, u scene.Uniforms, buffers *FrameBuffers) {
	for y := 0; y < buffers.Height; y++ {
		for x := 0; x < buffers.Width; x++ {
			uid, albedo, normal := SurfaceAttributesPixel(s, registry, tex, u, x, y)
			idx := buffers.index(x, y)
			buffers.ObjectUID[idx] = uid
			buffers.Albedo[idx] = albedo
			buffers.Normal[idx] = normal
		}
	}
}
