package scene

import (
	"math"

	"github.com/hulylabs/3d/types"
)

// Uniforms is the per-frame constant block shared by every kernel invocation
// for a frame: built once per frame, read by every in-flight block.
type Uniforms struct {
	FrameWidth, FrameHeight uint32
	Aspect float32

	FrameNumber uint32
	GlobalTimeSeconds float32

	// ViewMatrix is the camera-to-world transform; column 3 is the camera
	// origin.
	ViewMatrix types.Mat4
	// ViewRayOriginMatrix recovers a ray's world-space origin and direction
	// from its NDC (s,t) without branching between perspective and
	// orthographic projection.
	ViewRayOriginMatrix types.Mat4

	TriangleCount uint32
	BVHNodeCount uint32
	SDFInstanceCount uint32

	// PixelSideSubdivision is N in the NxN jittered sub-pixel grid.
	PixelSideSubdivision uint32

	// ThreadGridWidth/Height describe the workgroup dispatch grid used by the
	// software device: the number of 8x8 tiles across and down the frame.
	ThreadGridWidth, ThreadGridHeight uint32
}

// PixelCount returns the total number of pixels covered by the frame.
func (u Uniforms) PixelCount() uint32 {
	return u.FrameWidth * u.FrameHeight
}

// SubdivisionForSamples converts a total per-pixel sample budget (the CLI's
// samples-per-pixel value) into the NxN grid width PixelSideSubdivision
// expects, so a request for spp samples draws roughly spp of them per pixel:
// N = round(sqrt(spp)), floored at 1.
func SubdivisionForSamples(samplesPerPixel uint32) uint32 {
	n := uint32(math.Round(math.Sqrt(float64(samplesPerPixel))))
	if n < 1 {
		return 1
	}
	return n
}
