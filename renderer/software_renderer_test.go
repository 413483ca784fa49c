package renderer

import (
	"testing"

	"github.com/hulylabs/3d/core"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/tracer"
	"github.com/hulylabs/3d/types"
)

func litScene() *scene.Scene {
	floor := scene.NewParallelogram(types.XYZ(-50, -50, -5), types.XYZ(100, 0, 0), types.XYZ(0, 100, 0), 0, 1)
	materials := []scene.Material{{Class: scene.Lambertian, Albedo: types.XYZ(0.5, 0.5, 0.5)}}
	return scene.NewScene([]scene.Parallelogram{floor}, nil, nil, nil, materials, nil)
}

func newTestRenderer(t *testing.T, w, h uint32) *SoftwareRenderer {
	t.Helper()
	s := litScene()
	tex := &core.TextureContext{}
	tr := tracer.NewSoftwareTracer("cpu-test", 2, tracer.DeterministicMode, types.Vec3{}, s, nil, tex, 1.0)

	accum := make([]float32, int(w)*int(h)*3)
	frame := make([]uint8, int(w)*int(h)*4)
	if err := tr.Setup(w, h, accum, frame); err != nil {
		t.Fatalf("Setup returned an error: %v", err)
	}
	t.Cleanup(tr.Close)

	cam := scene.NewCamera()
	opts := Options{FrameW: w, FrameH: h, SamplesPerPixel: 1, Exposure: 1}
	return New(opts, []tracer.Tracer{tr}, s, nil, tex, cam, 2)
}

func TestRenderProducesAFrameAndAdvancesStats(t *testing.T) {
	r := newTestRenderer(t, 16, 16)
	defer r.Close()

	if err := r.Render(); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}

	stats := r.Stats()
	if len(stats.Tracers) != 1 {
		t.Fatalf("expected stats for 1 tracer; got %d", len(stats.Tracers))
	}
	if !stats.Tracers[0].IsPrimary {
		t.Fatalf("expected the sole tracer to be reported as primary")
	}
	if stats.Tracers[0].BlockH != 16 {
		t.Fatalf("expected the sole tracer to cover the full frame height; got %d", stats.Tracers[0].BlockH)
	}
}

func TestRenderPopulatesGBuffer(t *testing.T) {
	r := newTestRenderer(t, 8, 8)
	defer r.Close()

	if err := r.Render(); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}

	gbuffer := r.GBuffer()
	if len(gbuffer.ObjectUID) != 8*8 {
		t.Fatalf("expected the g-buffer to be sized for the frame; got %d entries", len(gbuffer.ObjectUID))
	}
	found := false
	for _, uid := range gbuffer.ObjectUID {
		if uid != 0 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected the surface-attributes pass to hit the floor primitive somewhere in the frame")
	}
}

func TestRenderFailsWithNoTracers(t *testing.T) {
	s := litScene()
	cam := scene.NewCamera()
	r := New(Options{FrameW: 4, FrameH: 4}, nil, s, nil, &core.TextureContext{}, cam, 1)
	defer r.Close()

	if err := r.Render(); err != ErrNoTracers {
		t.Fatalf("expected ErrNoTracers; got %v", err)
	}
}

func TestRenderFailsWithNoScene(t *testing.T) {
	tex := &core.TextureContext{}
	tr := tracer.NewSoftwareTracer("cpu-test", 1, tracer.DeterministicMode, types.Vec3{}, litScene(), nil, tex, 1.0)
	accum := make([]float32, 4*4*3)
	frame := make([]uint8, 4*4*4)
	if err := tr.Setup(4, 4, accum, frame); err != nil {
		t.Fatalf("Setup returned an error: %v", err)
	}
	defer tr.Close()

	cam := scene.NewCamera()
	r := New(Options{FrameW: 4, FrameH: 4}, []tracer.Tracer{tr}, nil, nil, tex, cam, 1)
	defer r.Close()

	if err := r.Render(); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
}

func TestRenderFailsWithNoCamera(t *testing.T) {
	s := litScene()
	tex := &core.TextureContext{}
	tr := tracer.NewSoftwareTracer("cpu-test", 1, tracer.DeterministicMode, types.Vec3{}, s, nil, tex, 1.0)
	accum := make([]float32, 4*4*3)
	frame := make([]uint8, 4*4*4)
	if err := tr.Setup(4, 4, accum, frame); err != nil {
		t.Fatalf("Setup returned an error: %v", err)
	}
	defer tr.Close()

	// Constructed directly rather than via New, since New immediately
	// dereferences camera to seed the initial uniforms.
	r := &SoftwareRenderer{
		options:  Options{FrameW: 4, FrameH: 4},
		tracers:  []tracer.Tracer{tr},
		scene:    s,
		tex:      tex,
		camera:   nil,
		workers:  1,
		gbuffer:  core.NewFrameBuffers(4, 4),
		scheduler: tracer.NewPerfectScheduler(),
	}

	if err := r.Render(); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}
}

func TestSetCameraResetsFrameCount(t *testing.T) {
	r := newTestRenderer(t, 8, 8)
	defer r.Close()

	if err := r.Render(); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if err := r.Render(); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if r.frameCount != 2 {
		t.Fatalf("expected frameCount to be 2 after two renders; got %d", r.frameCount)
	}

	r.SetCamera(scene.NewCamera())
	if r.frameCount != 0 {
		t.Fatalf("expected SetCamera to reset frameCount; got %d", r.frameCount)
	}
}
