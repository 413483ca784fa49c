package scene

import "github.com/hulylabs/3d/types"

// WrapMode controls how atlas sampling handles uv coordinates outside a
// region's [0,1) tile space.
type WrapMode uint8

const (
	WrapRepeat WrapMode = 0
	WrapClamp WrapMode = 1
	WrapDiscard WrapMode = 2
)

// AtlasMapping locates one texture's region inside the shared atlas image
// and records how out-of-tile samples wrap. Projection is the 2x4
// matrix that maps a homogeneous local position to an unclamped texture
// coordinate, allowing planar or tri-planar projections to be encoded on
// the host side — expressed as types.Mat2x4 so the same matrix can be
// reapplied to ray differentials via MapDirection4 to estimate a mip level
//.
type AtlasMapping struct {
	// TopLeft is the region's top-left corner in atlas uv space [0,1]^2.
	TopLeft types.Vec2
	// Size is the region's extent in atlas uv space.
	Size types.Vec2

	Projection types.Mat2x4

	WrapU, WrapV WrapMode
}
