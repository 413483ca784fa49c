package core

import "github.com/hulylabs/3d/types"

// FrameBuffers holds the four output attachments every kernel dispatch
// writes into: the progressive color accumulator plus the first-hit
// surface-attribute buffers. All four are flat, row-major, one entry per
// pixel.
type FrameBuffers struct {
	Width, Height int

	// Color accumulates Monte-Carlo samples (added, divided by frame number
	// at resolve) or holds the latest deterministic frame (replaced).
	Color []types.Vec3

	ObjectUID []uint32
	Albedo []types.Vec3
	Normal []types.Vec3
}

// NewFrameBuffers allocates the four attachments for a width x height frame.
func NewFrameBuffers(width, height int) *FrameBuffers {
	n := width * height
	return &FrameBuffers{
		Width: width,
		Height: height,
		Color: make([]types.Vec3, n),
		ObjectUID: make([]uint32, n),
		Albedo: make([]types.Vec3, n),
		Normal: make([]types.Vec3, n),
	}
}

func (f *FrameBuffers) index(x, y int) int { return y*f.Width + x }
