package scene

import "github.com/hulylabs/3d/types"

// SDFInstance places a registry SDF class in the scene with its own
// object<->world transform, march step scale and material. Per-instance
// animation time lives alongside in the parallel SDFTime slice on Scene
// rather than on the instance itself, so the host can update animation
// clocks frame to frame without touching the rest of the instance data.
type SDFInstance struct {
	Location types.Mat3x4
	InverseLocation types.Mat3x4

	// RayMarchStepScale is the per-instance Lipschitz safety factor applied
	// to the sphere-tracing step size.
	RayMarchStepScale float32

	ClassIndex uint32
	MaterialID uint32
	ObjectUID uint32

	// LocalBoundsHalfExtent is the registry SDF class's local-space bounding
	// half extent, supplied at scene-assembly time (the registry is the only
	// thing that knows it; storing it here keeps this package free of an
	// import on the sdf registry package).
	LocalBoundsHalfExtent types.Vec3
}

// Center returns the instance's world-space origin, used by BVH construction.
func (s SDFInstance) Center() types.Vec3 {
	return s.Location.Translation()
}

// BBox returns a conservative world-space axis-aligned bounding box for the
// instance by transforming the local bounding box's eight corners.
func (s SDFInstance) BBox() (min, max types.Vec3) {
	he := s.LocalBoundsHalfExtent
	corners := [8]types.Vec3{
		{-he[0], -he[1], -he[2]}, {he[0], -he[1], -he[2]},
		{-he[0], he[1], -he[2]}, {he[0], he[1], -he[2]},
		{-he[0], -he[1], he[2]}, {he[0], -he[1], he[2]},
		{-he[0], he[1], he[2]}, {he[0], he[1], he[2]},
	}
	world := s.Location.TransformPoint(corners[0])
	min, max = world, world
	for _, c := range corners[1:] {
		world = s.Location.TransformPoint(c)
		min = types.MinVec3(min, world)
		max = types.MaxVec3(max, world)
	}
	return min, max
}
