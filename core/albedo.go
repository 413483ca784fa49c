package core

import (
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/texture"
	"github.com/hulylabs/3d/types"
)

// TextureContext bundles the read-only texture registries a frame's kernels
// share : the procedural registry and the atlas page plus its per-
// material region mappings.
type TextureContext struct {
	Procedural *texture.ProceduralRegistry
	Atlas *texture.Atlas
	AtlasMappings []scene.AtlasMapping
}

// Albedo implements textured-albedo dispatch at the first hit.
func Albedo(mat scene.Material, rec HitRecord, tex *TextureContext, globalTime float32, dpdx, dpdy types.Vec3) types.Vec3 {
	switch {
	case mat.AlbedoTextureUID == 0:
		return mat.Albedo
	case mat.HasProceduralTexture():
		// The material's procedural id is 1-based; the registry list is 0-based.
		return tex.Procedural.Select(mat.ProceduralTextureID()-1, rec.Local.Position, rec.Local.Normal, globalTime, dpdx, dpdy)
	default:
		mapping := tex.AtlasMappings[mat.AtlasRegionIndex()]
		sample, ok := tex.Atlas.Sample(mapping, rec.Local.Position, dpdx, dpdy)
		if !ok {
			return mat.Albedo
		}
		return sample
	}
}
