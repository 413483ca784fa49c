package core

import (
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

// GeneratePixelRay implements the ray generation formula. (x,y) is the
// pixel's integer coordinate, (sx,sy) the sub-pixel offset in [0,1)^2.
func GeneratePixelRay(u scene.Uniforms, x, y int, sx, sy float32) Ray {
	s := u.Aspect * (2*(float32(x)+sx)/float32(u.FrameWidth) - 1)
	t := -(2*(float32(y)+sy)/float32(u.FrameHeight) - 1)
	return pixelRay(u, s, t)
}

func pixelRay(u scene.Uniforms, s, t float32) Ray {
	localPoint := types.XYZW(s, t, -scene.FovFactor, 0)
	pixelPoint := u.ViewMatrix.Origin().Add(u.ViewMatrix.Mul4Dir(localPoint.Vec3()))
	origin := u.ViewRayOriginMatrix.Mul4x1(pixelPoint.Vec4(1)).Vec3()
	direction := pixelPoint.Sub(origin)
	return NewRay(origin, direction)
}

// GeneratePixelRayWithDifferentials generates the primary ray for (x,y) plus
// its dx/dy differentials, obtained by re-running ray generation offset by
// one pixel along each screen axis with the same sub-pixel offset.
func GeneratePixelRayWithDifferentials(u scene.Uniforms, x, y int, sx, sy float32) (Ray, Differentials) {
	primary := GeneratePixelRay(u, x, y, sx, sy)
	dx := GeneratePixelRay(u, x+1, y, sx, sy)
	dy := GeneratePixelRay(u, x, y+1, sx, sy)
	return primary, Differentials{DX: dx, DY: dy}
}
