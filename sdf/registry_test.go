package sdf

import (
	"math"
	"testing"

	"github.com/hulylabs/3d/types"
)

func TestSphereDistance(t *testing.T) {
	s := Sphere{Radius: 2}
	type spec struct {
		p   types.Vec3
		exp float32
	}
	specs := []spec{
		{types.XYZ(0, 0, 0), -2},
		{types.XYZ(2, 0, 0), 0},
		{types.XYZ(4, 0, 0), 2},
	}
	for index, sp := range specs {
		if got := s.Distance(sp.p); !almostEqual(got, sp.exp, 1e-5) {
			t.Fatalf("[spec %d] expected distance %v; got %v", index, sp.exp, got)
		}
	}
}

func TestBoxDistance(t *testing.T) {
	b := Box{HalfSize: types.XYZ(1, 1, 1)}
	if got := b.Distance(types.XYZ(0, 0, 0)); !almostEqual(got, -1, 1e-5) {
		t.Fatalf("expected center distance -1; got %v", got)
	}
	if got := b.Distance(types.XYZ(2, 0, 0)); !almostEqual(got, 1, 1e-5) {
		t.Fatalf("expected face-normal distance 1; got %v", got)
	}
}

func TestTorusXZDistance(t *testing.T) {
	torus := TorusXZ{MajorRadius: 2, MinorRadius: 0.5}
	// On the ring center line at y=0, the major radius distance away: inside the tube.
	if got := torus.Distance(types.XYZ(2, 0, 0)); !almostEqual(got, -0.5, 1e-5) {
		t.Fatalf("expected tube-center distance -0.5; got %v", got)
	}
	// Far outside the tube, on the ring plane.
	if got := torus.Distance(types.XYZ(2.5, 0, 0)); !almostEqual(got, 0, 1e-4) {
		t.Fatalf("expected tube-surface distance ~0; got %v", got)
	}
}

func TestCapsuleDistance(t *testing.T) {
	c := Capsule{Start: types.XYZ(0, 0, 0), End: types.XYZ(0, 2, 0), Radius: 0.5}
	if got := c.Distance(types.XYZ(0, 1, 0)); !almostEqual(got, -0.5, 1e-5) {
		t.Fatalf("expected mid-segment distance -0.5; got %v", got)
	}
	if got := c.Distance(types.XYZ(0, -1, 0)); !almostEqual(got, 0.5, 1e-5) {
		t.Fatalf("expected below-start-cap distance 0.5; got %v", got)
	}
}

func TestRegistrySelectAppliesAnimation(t *testing.T) {
	classes := []Class{Sphere{Radius: 1}}
	registry := NewRegistry(classes, []Animation{nil})

	d := registry.Select(0, types.XYZ(1, 0, 0), 0)
	if !almostEqual(d, 0, 1e-5) {
		t.Fatalf("expected surface distance 0; got %v", d)
	}
}

func TestOrbitAnimationRotatesQueryPoint(t *testing.T) {
	orbit := Orbit{Axis: types.XYZ(0, 1, 0), AngularSpeed: float32(math.Pi / 2), PlaybackSpeedMultiplier: 1}
	p := types.XYZ(1, 0, 0)

	rotated := orbit.Apply(p, 1)
	if almostEqual(rotated[0], p[0], 1e-4) && almostEqual(rotated[2], p[2], 1e-4) {
		t.Fatalf("expected orbit to rotate the point away from its original position; got %v", rotated)
	}
	if !almostEqual(rotated.Len(), p.Len(), 1e-4) {
		t.Fatalf("expected orbit to preserve distance from axis; got len %v want %v", rotated.Len(), p.Len())
	}
}

func TestOrbitZeroPlaybackMultiplierDefaultsToOne(t *testing.T) {
	a := Orbit{Axis: types.XYZ(0, 1, 0), AngularSpeed: 1, PlaybackSpeedMultiplier: 0}
	b := Orbit{Axis: types.XYZ(0, 1, 0), AngularSpeed: 1, PlaybackSpeedMultiplier: 1}
	p := types.XYZ(1, 0, 0)

	ra, rb := a.Apply(p, 0.5), b.Apply(p, 0.5)
	if !almostEqual(ra[0], rb[0], 1e-5) || !almostEqual(ra[2], rb[2], 1e-5) {
		t.Fatalf("expected zero multiplier to behave like 1; got %v vs %v", ra, rb)
	}
}

func TestApplyAnimationUnregisteredClassIsIdentity(t *testing.T) {
	registry := NewRegistry([]Class{Sphere{Radius: 1}}, []Animation{nil})
	p := types.XYZ(1, 2, 3)
	if got := registry.ApplyAnimation(0, p, 5); got != p {
		t.Fatalf("expected unanimated class to return p unchanged; got %v", got)
	}
}

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
