package texture

import (
	"testing"

	"github.com/hulylabs/3d/types"
)

func TestCheckerboardAlternatesByCell(t *testing.T) {
	c := Checkerboard{}
	type spec struct {
		p   types.Vec3
		exp types.Vec3
	}
	specs := []spec{
		{types.XYZ(0.05, 0.05, 0.05), types.Splat3(0)},
		{types.XYZ(0.15, 0.05, 0.05), types.Splat3(1)},
		{types.XYZ(0.15, 0.15, 0.05), types.Splat3(0)},
	}
	for index, s := range specs {
		if got := c.Sample(s.p, types.Vec3{}, 0, types.Vec3{}, types.Vec3{}); got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestSnapToGridQuantizes(t *testing.T) {
	p := types.XYZ(0.12, 0.18, -0.03)
	snapped := SnapToGrid(p, 0.1)
	exp := types.XYZ(0.1, 0.2, 0)
	for i := 0; i < 3; i++ {
		d := snapped[i] - exp[i]
		if d < 0 {
			d = -d
		}
		if d > 1e-5 {
			t.Fatalf("expected %v; got %v", exp, snapped)
		}
	}
}

func TestProceduralRegistrySelectDispatches(t *testing.T) {
	r := NewProceduralRegistry([]Procedural{Checkerboard{}})
	got := r.Select(0, types.XYZ(0.05, 0.05, 0.05), types.Vec3{}, 0, types.Vec3{}, types.Vec3{})
	if got != types.Splat3(0) {
		t.Fatalf("expected registry to dispatch to the registered checkerboard; got %v", got)
	}
}
