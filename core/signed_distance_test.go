package core

import (
	"testing"

	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

func TestSDFDirectionalDistanceOutsideIsPositive(t *testing.T) {
	registry := sdf.NewRegistry([]sdf.Class{sdf.Sphere{Radius: 1}}, nil)
	inst := scene.SDFInstance{Location: types.Ident3x4(), InverseLocation: types.Ident3x4()}

	d, ok := sdfDirectionalDistance(inst, registry, types.XYZ(3, 0, 0), types.XYZ(1, 0, 0), 0)
	if !ok {
		t.Fatalf("expected a directional distance estimate to always succeed")
	}
	if d <= 0 {
		t.Fatalf("expected a point well outside the sphere, marching outward, to read positive; got %v", d)
	}
}

func TestSDFDirectionalDistanceInsideIsNegative(t *testing.T) {
	registry := sdf.NewRegistry([]sdf.Class{sdf.Sphere{Radius: 5}}, nil)
	inst := scene.SDFInstance{Location: types.Ident3x4(), InverseLocation: types.Ident3x4()}

	d, ok := sdfDirectionalDistance(inst, registry, types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), 0)
	if !ok {
		t.Fatalf("expected a directional distance estimate to always succeed")
	}
	if d >= 0 {
		t.Fatalf("expected a point deep inside the sphere to read negative; got %v", d)
	}
}
