package core

import (
	"testing"

	"github.com/hulylabs/3d/rng"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

func emptyScene() *scene.Scene {
	return scene.NewScene(nil, nil, nil, nil, []scene.Material{{}}, nil)
}

func TestColorPixelMonteCarloMissReturnsBackground(t *testing.T) {
	s := emptyScene()
	u := baseUniforms()
	u.PixelSideSubdivision = 1
	background := types.XYZ(0.1, 0.2, 0.3)
	random := rng.New(0, 1)

	got := ColorPixelMonteCarlo(s, nil, &TextureContext{}, u, background, 50, 50, random)
	if got != background {
		t.Fatalf("expected a guaranteed-miss pixel to resolve to the background color; got %v", got)
	}
}

func TestColorPixelMonteCarloSubdivisionAverages(t *testing.T) {
	s := emptyScene()
	u := baseUniforms()
	u.PixelSideSubdivision = 2
	background := types.XYZ(1, 1, 1)
	random := rng.New(0, 1)

	got := ColorPixelMonteCarlo(s, nil, &TextureContext{}, u, background, 50, 50, random)
	for i := 0; i < 3; i++ {
		if got[i] < 0.99 || got[i] > 1.01 {
			t.Fatalf("expected a 2x2 jittered average over a uniform background to stay ~1; got %v", got)
		}
	}
}

func TestColorPixelDeterministicMissIsBlack(t *testing.T) {
	s := emptyScene()
	u := baseUniforms()
	u.PixelSideSubdivision = 1
	got := ColorPixelDeterministic(s, nil, &TextureContext{}, u, types.XYZ(1, 1, 1), 50, 50)
	if got != (types.Vec3{}) {
		t.Fatalf("expected a miss in the deterministic loop to resolve to black; got %v", got)
	}
}

func TestRunColorPassMonteCarloAccumulates(t *testing.T) {
	s := emptyScene()
	u := baseUniforms()
	u.PixelSideSubdivision = 1
	u.FrameNumber = 1
	background := types.XYZ(0.5, 0.5, 0.5)
	buffers := NewFrameBuffers(int(u.FrameWidth), int(u.FrameHeight))

	RunColorPass(s, nil, &TextureContext{}, u, background, true, buffers)
	RunColorPass(s, nil, &TextureContext{}, u, background, true, buffers)

	idx := buffers.index(50, 50)
	for i := 0; i < 3; i++ {
		if buffers.Color[idx][i] < 0.99 || buffers.Color[idx][i] > 1.01 {
			t.Fatalf("expected two accumulated background-only frames to sum to ~2x0.5=1; got %v", buffers.Color[idx])
		}
	}
}

func TestRunColorPassDeterministicReplaces(t *testing.T) {
	s := emptyScene()
	u := baseUniforms()
	u.PixelSideSubdivision = 1
	background := types.XYZ(0.7, 0.7, 0.7)
	buffers := NewFrameBuffers(int(u.FrameWidth), int(u.FrameHeight))
	buffers.Color[buffers.index(50, 50)] = types.XYZ(9, 9, 9)

	RunColorPass(s, nil, &TextureContext{}, u, background, false, buffers)

	idx := buffers.index(50, 50)
	if buffers.Color[idx] != (types.Vec3{}) {
		t.Fatalf("expected deterministic mode to replace (not accumulate) the pixel on a miss; got %v", buffers.Color[idx])
	}
}
