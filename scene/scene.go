package scene

import "github.com/hulylabs/3d/types"

// Scene is the full read-only geometry/material/acceleration payload shared
// by every kernel invocation during a frame — a single value assembled
// once by scene construction and then only read from while a frame is in
// flight. Its primitive set is parallelograms, triangles, and SDF
// instances.
type Scene struct {
	Parallelograms []Parallelogram
	Triangles []Triangle
	SDFInstances []SDFInstance

	// SDFTime holds each SDF instance's per-frame animation clock, kept
	// alongside rather than on SDFInstance so the host can advance animation
	// state frame to frame without touching the rest of the instance data.
	SDFTime []float32

	Materials []Material
	AtlasMappings []AtlasMapping

	BVH BVH

	// lightIndex is the index into Parallelograms of the first emissive
	// quad, or -1 if the scene has none (`lights`).
	lightIndex int
}

// NewScene assembles a Scene from its constituent slices and locates the
// first emissive quad to serve as the scene's single importance-sampled
// light. Construction does not build the BVH; callers assemble it
// separately with the bvhbuild package once primitive ordering is final.
func NewScene(parallelograms []Parallelogram, triangles []Triangle, sdfInstances []SDFInstance, sdfTime []float32, materials []Material, atlasMappings []AtlasMapping) *Scene {
	s := &Scene{
		Parallelograms: parallelograms,
		Triangles: triangles,
		SDFInstances: sdfInstances,
		SDFTime: sdfTime,
		Materials: materials,
		AtlasMappings: atlasMappings,
		lightIndex: -1,
	}
	for i, p := range parallelograms {
		m := materials[p.MaterialID]
		if m.Emission != (types.Vec3{}) {
			s.lightIndex = i
			break
		}
	}
	return s
}

// HasLight reports whether the scene contains an emissive quad.
func (s *Scene) HasLight() bool { return s.lightIndex >= 0 }

// Light returns the scene's single importance-sampled light quad. Callers
// must check HasLight first.
func (s *Scene) Light() Parallelogram { return s.Parallelograms[s.lightIndex] }

// Material looks up a material by id.
func (s *Scene) Material(id uint32) Material { return s.Materials[id] }
