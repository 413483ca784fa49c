package core

import (
	"testing"

	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

func TestHitParallelogramFrontFace(t *testing.T) {
	p := scene.NewParallelogram(types.XYZ(-1, -1, -2), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 0, 7)
	r := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	var rec HitRecord
	if !HitParallelogram(p, r, tMin, 1e30, &rec) {
		t.Fatalf("expected a ray fired straight at the quad to hit")
	}
	if rec.T != 2 {
		t.Fatalf("expected t=2; got %v", rec.T)
	}
	if rec.ObjectUID != 7 {
		t.Fatalf("expected object uid 7; got %d", rec.ObjectUID)
	}
	if !rec.FrontFace {
		t.Fatalf("expected the ray to hit the quad's front face")
	}
}

func TestHitParallelogramMissesOutsideUV(t *testing.T) {
	p := scene.NewParallelogram(types.XYZ(-1, -1, -2), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 0, 7)
	r := NewRay(types.XYZ(5, 5, 0), types.XYZ(0, 0, -1))

	var rec HitRecord
	if HitParallelogram(p, r, tMin, 1e30, &rec) {
		t.Fatalf("expected a ray outside the quad's (u,v) extent to miss")
	}
}

func TestHitParallelogramBackFacingRayMisses(t *testing.T) {
	p := scene.NewParallelogram(types.XYZ(-1, -1, -2), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 0, 7)
	r := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1))

	var rec HitRecord
	if HitParallelogram(p, r, tMin, 1e30, &rec) {
		t.Fatalf("expected a ray facing away from the quad's normal to miss")
	}
}

func TestHitTriangleCentroid(t *testing.T) {
	tri := scene.NewTriangle(
		types.XYZ(-1, -1, -2), types.XYZ(1, -1, -2), types.XYZ(0, 1, -2),
		types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), types.XYZ(0, 0, 1),
		0, 3,
	)
	r := NewRay(types.XYZ(0, -1.0/3.0, 0), types.XYZ(0, 0, -1))

	var rec HitRecord
	if !HitTriangle(tri, r, tMin, 1e30, &rec) {
		t.Fatalf("expected a ray through the triangle's centroid to hit")
	}
	if rec.ObjectUID != 3 {
		t.Fatalf("expected object uid 3; got %d", rec.ObjectUID)
	}
	if rec.Global.Normal[2] <= 0 {
		t.Fatalf("expected the interpolated normal to face the ray origin; got %v", rec.Global.Normal)
	}
}

func TestHitTriangleMissesOutsideEdges(t *testing.T) {
	tri := scene.NewTriangle(
		types.XYZ(-1, -1, -2), types.XYZ(1, -1, -2), types.XYZ(0, 1, -2),
		types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), types.XYZ(0, 0, 1),
		0, 3,
	)
	r := NewRay(types.XYZ(5, 5, 0), types.XYZ(0, 0, -1))

	var rec HitRecord
	if HitTriangle(tri, r, tMin, 1e30, &rec) {
		t.Fatalf("expected a ray outside the triangle's edges to miss")
	}
}

func TestHitAABBEnterExit(t *testing.T) {
	min, max := types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)
	r := NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1))

	hit, enter := HitAABB(min, max, r, tMin, 1e30)
	if !hit {
		t.Fatalf("expected a ray through the box to hit")
	}
	if enter < 3.999 || enter > 4.001 {
		t.Fatalf("expected entry parameter ~4; got %v", enter)
	}
}

func TestHitAABBMissesParallelRay(t *testing.T) {
	min, max := types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)
	r := NewRay(types.XYZ(5, 5, 5), types.XYZ(0, 0, -1))

	if hit, _ := HitAABB(min, max, r, tMin, 1e30); hit {
		t.Fatalf("expected a ray that never crosses the box's slabs to miss")
	}
}

func TestContainsPoint(t *testing.T) {
	min, max := types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)
	if !ContainsPoint(min, max, types.XYZ(0, 0, 0)) {
		t.Fatalf("expected the origin to be contained")
	}
	if ContainsPoint(min, max, types.XYZ(2, 0, 0)) {
		t.Fatalf("expected a point outside the box to be rejected")
	}
}

func TestHitSDFSphere(t *testing.T) {
	registry := sdf.NewRegistry([]sdf.Class{sdf.Sphere{Radius: 1}}, nil)
	inst := scene.SDFInstance{
		Location:              types.Ident3x4(),
		InverseLocation:       types.Ident3x4(),
		RayMarchStepScale:     1,
		ClassIndex:            0,
		MaterialID:            0,
		ObjectUID:             11,
		LocalBoundsHalfExtent: types.Splat3(1),
	}
	r := NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1))

	var rec HitRecord
	if !HitSDF(inst, registry, 0, r, tMin, 1e30, &rec) {
		t.Fatalf("expected a ray fired at the sphere's center to hit")
	}
	if rec.T < 3.99 || rec.T > 4.01 {
		t.Fatalf("expected t~4 (5 - radius); got %v", rec.T)
	}
	if rec.ObjectUID != 11 {
		t.Fatalf("expected object uid 11; got %d", rec.ObjectUID)
	}
	if rec.Global.Normal.Dot(types.XYZ(0, 0, 1)) < 0.9 {
		t.Fatalf("expected the surface normal to point back toward the ray origin; got %v", rec.Global.Normal)
	}
}

func TestHitSDFMissesWhenPointingAway(t *testing.T) {
	registry := sdf.NewRegistry([]sdf.Class{sdf.Sphere{Radius: 1}}, nil)
	inst := scene.SDFInstance{
		Location:              types.Ident3x4(),
		InverseLocation:       types.Ident3x4(),
		RayMarchStepScale:     1,
		ClassIndex:            0,
		LocalBoundsHalfExtent: types.Splat3(1),
	}
	r := NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, 1))

	var rec HitRecord
	if HitSDF(inst, registry, 0, r, tMin, 1e30, &rec) {
		t.Fatalf("expected a ray pointing away from the sphere to miss")
	}
}
