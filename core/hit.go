package core

import "github.com/hulylabs/3d/types"

// HitPlace is a position/normal pair kept in a particular coordinate frame
// : global (world) for secondary-ray spawning and shading, local
// (object/SDF frame, parallelogram (u,v)-centered plane, or triangle
// barycentric position) for procedural/atlas texturing.
type HitPlace struct {
	Position types.Vec3
	Normal types.Vec3
}

// HitRecord is the shared mutable intersection result, updated by whichever
// primitive test last improved closest_so_far. It is process-local
// scratch, not global state — each ray bounce gets its own.
type HitRecord struct {
	Global HitPlace
	Local HitPlace

	T float32
	MaterialID uint32
	ObjectUID uint32
	FrontFace bool
}

// Hit is true once a primitive test has written into the record.
type Hit struct {
	Record HitRecord
	Hit bool
}
