package tracer

import (
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

// PrimitivesPayload is the AppendChange payload for SetPrimitivies: the
// scene's full parallelogram/triangle/SDF-instance arrays plus their
// parallel animation-time slice, replaced as one unit since the BVH built
// over them must stay in lockstep.
type PrimitivesPayload struct {
	Parallelograms []scene.Parallelogram
	Triangles []scene.Triangle
	SDFInstances []scene.SDFInstance
	SDFTime []float32
}

// MaterialsPayload is the AppendChange payload for SetMaterials.
type MaterialsPayload struct {
	Materials []scene.Material
	AtlasMappings []scene.AtlasMapping
}

// CameraPayload is the AppendChange payload for UpdateCamera: the two
// matrices ray generation reads out of Uniforms, precomputed by the
// caller via scene.Camera.ApplyToUniforms.
type CameraPayload struct {
	ViewMatrix types.Mat4
	ViewRayOriginMatrix types.Mat4
}
