package core

import (
	"testing"

	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

func TestLightPDFPositiveForHitWithinQuad(t *testing.T) {
	light := scene.NewParallelogram(types.XYZ(-1, -1, -5), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 0, 1)
	pdf := LightPDF(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), light)
	if pdf <= 0 {
		t.Fatalf("expected a positive solid-angle pdf for a ray hitting the light; got %v", pdf)
	}
}

func TestLightPDFDegenerateOutsideQuad(t *testing.T) {
	light := scene.NewParallelogram(types.XYZ(-1, -1, -5), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 0, 1)
	pdf := LightPDF(types.XYZ(10, 10, 0), types.XYZ(0, 0, -1), light)
	if pdf != MinFloat {
		t.Fatalf("expected MinFloat for a ray missing the quad's (u,v) extent; got %v", pdf)
	}
}

func TestLightPDFZeroForRayFacingAwayFromPlane(t *testing.T) {
	light := scene.NewParallelogram(types.XYZ(-1, -1, -5), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 0, 1)
	pdf := LightPDF(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1), light)
	if pdf != 0 {
		t.Fatalf("expected zero pdf for a direction facing away from the quad's normal; got %v", pdf)
	}
}
