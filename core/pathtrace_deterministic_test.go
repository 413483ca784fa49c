package core

import (
	"testing"

	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

func TestRayColorDeterministicMissReturnsBlack(t *testing.T) {
	s := emptyScene()
	r := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	got := RayColorDeterministic(s, nil, &TextureContext{}, 0, types.XYZ(1, 1, 1), r, types.Vec3{}, types.Vec3{})
	if got != (types.Vec3{}) {
		t.Fatalf("expected a miss to resolve to black; got %v", got)
	}
}

func TestRayColorDeterministicLambertianWithoutLightUsesBackground(t *testing.T) {
	floor := scene.NewParallelogram(types.XYZ(-50, -50, -5), types.XYZ(100, 0, 0), types.XYZ(0, 100, 0), 0, 1)
	materials := []scene.Material{{Class: scene.Lambertian, Albedo: types.XYZ(0.5, 0.5, 0.5)}}
	s := scene.NewScene([]scene.Parallelogram{floor}, nil, nil, nil, materials, nil)

	r := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	background := types.XYZ(0.8, 0.8, 0.8)
	got := RayColorDeterministic(s, nil, &TextureContext{}, 0, background, r, types.Vec3{}, types.Vec3{})

	exp := background.MulVec(materials[0].Albedo)
	for i := 0; i < 3; i++ {
		d := got[i] - exp[i]
		if d < 0 {
			d = -d
		}
		if d > 1e-4 {
			t.Fatalf("expected background*albedo with no light and full occlusion; got %v want %v", got, exp)
		}
	}
}

func TestRayColorDeterministicLambertianWithLightAddsEmission(t *testing.T) {
	floor := scene.NewParallelogram(types.XYZ(-50, -50, -5), types.XYZ(100, 0, 0), types.XYZ(0, 100, 0), 0, 1)
	light := scene.NewParallelogram(types.XYZ(-1, -1, -3), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 1, 2)
	materials := []scene.Material{
		{Class: scene.Lambertian, Albedo: types.XYZ(0.5, 0.5, 0.5)},
		{Emission: types.XYZ(3, 3, 3)},
	}
	s := scene.NewScene([]scene.Parallelogram{floor, light}, nil, nil, nil, materials, nil)

	r := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	got := RayColorDeterministic(s, nil, &TextureContext{}, 0, types.Vec3{}, r, types.Vec3{}, types.Vec3{})

	if got[0] <= 0 {
		t.Fatalf("expected the ray to hit the emissive quad and add its emission to its Lambertian shading; got %v", got)
	}
}

func TestRayColorDeterministicIsotropicStopsAtAlbedo(t *testing.T) {
	quad := scene.NewParallelogram(types.XYZ(-50, -50, -5), types.XYZ(100, 0, 0), types.XYZ(0, 100, 0), 0, 1)
	materials := []scene.Material{{Class: scene.Isotropic, Albedo: types.XYZ(0.4, 0.4, 0.4)}}
	s := scene.NewScene([]scene.Parallelogram{quad}, nil, nil, nil, materials, nil)

	r := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	got := RayColorDeterministic(s, nil, &TextureContext{}, 0, types.Vec3{}, r, types.Vec3{}, types.Vec3{})
	if got != materials[0].Albedo {
		t.Fatalf("expected the deterministic loop to stop at plain albedo for an isotropic hit; got %v", got)
	}
}
