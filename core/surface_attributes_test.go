package core

import (
	"testing"

	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/types"
)

func TestSurfaceAttributesPixelHit(t *testing.T) {
	p := scene.NewParallelogram(types.XYZ(-50, -50, -5), types.XYZ(100, 0, 0), types.XYZ(0, 100, 0), 0, 42)
	materials := []scene.Material{{Albedo: types.XYZ(0.2, 0.4, 0.6)}}
	s := scene.NewScene([]scene.Parallelogram{p}, nil, nil, nil, materials, nil)

	u := baseUniforms()
	tex := &TextureContext{}

	uid, albedo, normal := SurfaceAttributesPixel(s, nil, tex, u, 50, 50)
	if uid != 42 {
		t.Fatalf("expected object uid 42 at the center pixel; got %d", uid)
	}
	if albedo != materials[0].Albedo {
		t.Fatalf("expected flat albedo %v; got %v", materials[0].Albedo, albedo)
	}
	if normal.Dot(types.XYZ(0, 0, 1)) < 0.999 {
		t.Fatalf("expected the quad's normal to face the camera; got %v", normal)
	}
}

func TestSurfaceAttributesPixelMiss(t *testing.T) {
	s := scene.NewScene(nil, nil, nil, nil, []scene.Material{{}}, nil)
	u := baseUniforms()
	tex := &TextureContext{}

	uid, albedo, normal := SurfaceAttributesPixel(s, nil, tex, u, 50, 50)
	if uid != 0 {
		t.Fatalf("expected object uid 0 on a miss; got %d", uid)
	}
	if albedo != (types.Vec3{}) || normal != (types.Vec3{}) {
		t.Fatalf("expected zeroed attributes on a miss; got albedo=%v normal=%v", albedo, normal)
	}
}

func TestRunSurfaceAttributesPassFillsBuffers(t *testing.T) {
	p := scene.NewParallelogram(types.XYZ(-1, -1, -5), types.XYZ(2, 0, 0), types.XYZ(0, 2, 0), 0, 5)
	materials := []scene.Material{{Albedo: types.XYZ(1, 1, 1)}}
	s := scene.NewScene([]scene.Parallelogram{p}, nil, nil, nil, materials, nil)

	u := baseUniforms()
	buffers := NewFrameBuffers(100, 100)
	RunSurfaceAttributesPass(s, nil, &TextureContext{}, u, buffers)

	if buffers.ObjectUID[buffers.index(50, 50)] != 5 {
		t.Fatalf("expected the center pixel to record object uid 5")
	}
	if buffers.ObjectUID[buffers.index(0, 0)] != 0 {
		t.Fatalf("expected a corner pixel outside the quad to record a miss")
	}
}
