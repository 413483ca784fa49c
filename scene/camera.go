package scene

import "github.com/hulylabs/3d/types"

// FovFactor converts the fixed 30-degree half-angle the pixel-point
// formula is built around into the divisor used in ray generation:
// fovFactor = 1/tan(30deg).
const FovFactor = 1.7320508 // 1/tan(30deg)

// Camera controls the scene's view and projection. A single pair of
// matrices, ViewMatrix and ViewRayOriginMatrix, supports both perspective
// and orthographic projection without a branch in the hot ray-generation
// path. ViewMatrix is a camera-to-world transform whose column 3 is the
// camera's world position, matching the Uniforms field's documented layout.
type Camera struct {
	Position types.Vec3
	LookAt types.Vec3
	Up types.Vec3
	Pitch float32
	Yaw float32

	// Orthographic selects the projection family. When true,
	// ViewRayOriginMatrix varies the ray origin per pixel instead of holding
	// it constant at Position.
	Orthographic bool

	ViewMatrix types.Mat4
}

// NewCamera builds a camera looking down -z from the origin.
func NewCamera() *Camera {
	c := &Camera{
		Position: types.XYZ(0, 0, 0),
		LookAt: types.XYZ(0, 0, -1),
		Up: types.XYZ(0, 1, 0),
	}
	c.Update()
	return c
}

// Update recomputes the view matrix from the camera's position/orientation
// and pitch/yaw, rebuilding the camera-to-world basis ray generation needs.
func (c *Camera) Update() {
	dir := c.LookAt.Sub(c.Position).Normalize()
	pitchAxis := dir.Cross(c.Up)
	pitchQuat := types.QuatFromAxisAngle(pitchAxis, c.Pitch)
	yawQuat := types.QuatFromAxisAngle(c.Up, c.Yaw)
	orientQuat := pitchQuat.Mul(yawQuat).Normalize()

	dir = orientQuat.Rotate(dir)
	c.LookAt = c.Position.Add(dir)

	forward := dir
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	c.ViewMatrix = types.Mat4{
		right[0], up[0], -forward[0], c.Position[0],
		right[1], up[1], -forward[1], c.Position[1],
		right[2], up[2], -forward[2], c.Position[2],
		0, 0, 0, 1,
	}
}

// ViewRayOriginMatrix returns the matrix ray generation multiplies the
// world-space pixel point by to recover a ray's origin. For a
// perspective camera every ray shares the same origin (the eye position), so
// this collapses the pixel point to a constant translation. For an
// orthographic camera the origin must track the pixel point in the camera's
// image plane instead, so the matrix projects out the forward axis and keeps
// the view matrix's rotation, re-centered at the camera position.
func (c *Camera) ViewRayOriginMatrix() types.Mat4 {
	if !c.Orthographic {
		return types.Mat4{
			0, 0, 0, c.Position[0],
			0, 0, 0, c.Position[1],
			0, 0, 0, c.Position[2],
			0, 0, 0, 1,
		}
	}
	m := c.ViewMatrix
	m[2], m[6], m[10] = 0, 0, 0
	return m
}

// ApplyToUniforms writes this camera's view and view-ray-origin matrices
// into u.
func (c *Camera) ApplyToUniforms(u *Uniforms) {
	u.ViewMatrix = c.ViewMatrix
	u.ViewRayOriginMatrix = c.ViewRayOriginMatrix()
}
