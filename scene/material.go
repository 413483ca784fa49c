package scene

import "github.com/hulylabs/3d/types"

// MaterialClass tags the BRDF/shading model a material uses. Emission is
// not its own class here — it's a material property any class can carry.
type MaterialClass uint8

const (
	Lambertian MaterialClass = iota
	Mirror
	Glass
	Isotropic
)

func (c MaterialClass) String() string {
	switch c {
	case Lambertian:
		return "lambertian"
	case Mirror:
		return "mirror"
	case Glass:
		return "glass"
	case Isotropic:
		return "isotropic"
	default:
		return "unknown"
	}
}

// Material describes the shading inputs for a surface. Materials are
// immutable at render time: the core never mutates a Material, it only reads
// from the shared table by id.
type Material struct {
	Albedo types.Vec3
	Specular types.Vec3
	Emission types.Vec3

	SpecularStrength float32
	Roughness float32
	RefractiveIndex float32

	// AlbedoTextureUID: negative selects a procedural texture (id = -uid),
	// positive selects a 1-based atlas region, zero means flat albedo.
	AlbedoTextureUID int32

	Class MaterialClass
}

// HasProceduralTexture reports whether the albedo comes from the procedural
// texture registry.
func (m Material) HasProceduralTexture() bool { return m.AlbedoTextureUID < 0 }

// HasAtlasTexture reports whether the albedo comes from the texture atlas.
func (m Material) HasAtlasTexture() bool { return m.AlbedoTextureUID > 0 }

// ProceduralTextureID returns the registry id for a procedural texture. Only
// valid when HasProceduralTexture is true.
func (m Material) ProceduralTextureID() uint32 { return uint32(-m.AlbedoTextureUID) }

// AtlasRegionIndex returns the 0-based index into the atlas mapping table.
// Only valid when HasAtlasTexture is true.
func (m Material) AtlasRegionIndex() int { return int(m.AlbedoTextureUID) - 1 }
