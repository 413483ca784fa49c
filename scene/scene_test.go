package scene

import (
	"testing"

	"github.com/hulylabs/3d/types"
)

func TestNewSceneFindsFirstEmissiveQuad(t *testing.T) {
	materials := []Material{
		{Emission: types.Vec3{}},
		{Emission: types.XYZ(1, 1, 1)},
	}
	parallelograms := []Parallelogram{
		NewParallelogram(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), 0, 1),
		NewParallelogram(types.XYZ(0, 5, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), 1, 2),
	}

	s := NewScene(parallelograms, nil, nil, nil, materials, nil)
	if !s.HasLight() {
		t.Fatalf("expected scene with an emissive quad to report HasLight")
	}
	if got := s.Light().ObjectUID; got != 2 {
		t.Fatalf("expected the second quad (emissive) to be the light; got object uid %d", got)
	}
}

func TestNewSceneWithNoLightsReportsNone(t *testing.T) {
	materials := []Material{{Emission: types.Vec3{}}}
	parallelograms := []Parallelogram{
		NewParallelogram(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), 0, 1),
	}

	s := NewScene(parallelograms, nil, nil, nil, materials, nil)
	if s.HasLight() {
		t.Fatalf("expected a scene with no emissive quads to report HasLight() == false")
	}
}

func TestSceneMaterialLookup(t *testing.T) {
	materials := []Material{{Class: Lambertian}, {Class: Mirror}}
	s := NewScene(nil, nil, nil, nil, materials, nil)
	if got := s.Material(1).Class; got != Mirror {
		t.Fatalf("expected material 1 to be Mirror; got %v", got)
	}
}
