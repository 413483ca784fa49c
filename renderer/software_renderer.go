// Package renderer orchestrates a frame: it owns the shared uniforms and
// output buffers, schedules row-range blocks across one or more
// tracer.Tracer instances via a tracer.BlockScheduler, and runs the
// first-hit surface-attributes pass that sits outside the tracer
// abstraction. Renderer stays a bare interface (renderer.go, options.go,
// stats.go, errors.go); SoftwareRenderer is the CPU-backed implementation.
package renderer

import (
	"time"
	"github.com/hulylabs/3d/core"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/tracer"
)

// SoftwareRenderer drives a pool of tracer.Tracer instances (typically
// tracer.SoftwareTracer, one per available CPU-parallel shard) through a
// per-frame uniforms block via a scheduler-driven multi-tracer frame loop.
type SoftwareRenderer struct {
	options Options
	tracers []tracer.Tracer
	primary string
	scheduler tracer.BlockScheduler

	scene *scene.Scene
	registry *sdf.Registry
	tex *core.TextureContext
	camera *scene.Camera

	uniforms scene.Uniforms
	gbuffer *core.FrameBuffers

	lastFrameTime int64
	lastFrameStats FrameStats
	frameCount uint32
	seed uint32
	workers int
}

// New builds a renderer bound to scene/registry/tex/camera, dispatching
// work across tracers according to opts. The first tracer in the list
// is treated as primary for FrameStats reporting; Options.ForcePrimaryDevice
// is not consulted.
func New(opts Options, tracers []tracer.Tracer, s *scene.Scene, registry *sdf.Registry, tex *core.TextureContext, camera *scene.Camera, workers int) *SoftwareRenderer {
	primary := ""
	if len(tracers) > 0 {
		primary = tracers[0].Id()
	}
	if workers < 1 {
		workers = 1
	}

	r := &SoftwareRenderer{
		options: opts,
		tracers: tracers,
		primary: primary,
		scheduler: tracer.NewPerfectScheduler(),
		scene: s,
		registry: registry,
		tex: tex,
		camera: camera,
		workers: workers,
	}

	r.uniforms.FrameWidth = opts.FrameW
	r.uniforms.FrameHeight = opts.FrameH
	r.uniforms.Aspect = float32(opts.FrameW) / float32(opts.FrameH)
	r.uniforms.PixelSideSubdivision = scene.SubdivisionForSamples(opts.SamplesPerPixel)
	camera.ApplyToUniforms(&r.uniforms)
	r.gbuffer = core.NewFrameBuffers(int(opts.FrameW), int(opts.FrameH))

	return r
}

// SetCamera pushes a new camera pose to every tracer and resets progressive
// accumulation, since a moved camera invalidates the Monte-Carlo
// accumulator (assumes a stationary camera across accumulated
// frames).
func (r *SoftwareRenderer) SetCamera(camera *scene.Camera) {
	r.camera = camera
	camera.ApplyToUniforms(&r.uniforms)
	r.frameCount = 0

	for _, tr := range r.tracers {
		tr.AppendChange(tracer.UpdateCamera, tracer.CameraPayload{
			ViewMatrix: r.uniforms.ViewMatrix,
			ViewRayOriginMatrix: r.uniforms.ViewRayOriginMatrix,
		})
	}
}

// Render dispatches one frame: the surface-attributes pass runs first
// (idempotent, so running it every frame is harmless even though only the
// first frame after a camera move strictly needs it), then row-range blocks
// are scheduled across every tracer and awaited.
func (r *SoftwareRenderer) Render() error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}
	if r.scene == nil {
		return ErrSceneNotDefined
	}
	if r.camera == nil {
		return ErrCameraNotDefined
	}

	start := time.Now()

	for _, tr := range r.tracers {
		if err := tr.ApplyPendingChanges(); err != nil {
			return err
		}
	}

	r.runSurfaceAttributesPass()

	r.frameCount++
	r.seed++

	blockHeights := r.scheduler.Schedule(r.tracers, r.options.FrameH, r.lastFrameTime)

	doneChan := make(chan uint32, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	blockY := uint32(0)
	for i, tr := range r.tracers {
		blockH := blockHeights[i]
		if blockY+blockH > r.options.FrameH {
			blockH = r.options.FrameH - blockY
		}
		tr.Enqueue(tracer.BlockRequest{
			BlockY: blockY,
			BlockH: blockH,
			SamplesPerPixel: r.options.SamplesPerPixel,
			Exposure: r.options.Exposure,
			Seed: r.seed,
			FrameCount: r.frameCount,
			DoneChan: doneChan,
			ErrChan: errChan,
		})
		blockY += blockH
	}

	stats := make([]TracerStat, len(r.tracers))
	for i := range r.tracers {
		select {
		case err := <-errChan:
			return err
		case <-doneChan:
		}
		stats[i] = TracerStat{
			Id: r.tracers[i].Id(),
			IsPrimary: r.tracers[i].Id() == r.primary,
			BlockH: blockHeights[i],
			FramePercent: float32(blockHeights[i]) / float32(r.options.FrameH),
			RenderTime: time.Duration(r.tracers[i].Stats().BlockTime),
		}
	}

	r.lastFrameStats = FrameStats{Tracers: stats, RenderTime: time.Since(start)}
	r.lastFrameTime = time.Since(start).Nanoseconds()
	return nil
}

// runSurfaceAttributesPass fans per-pixel first-hit kernel out over
// tracer.DispatchTiles instead of calling core.RunSurfaceAttributesPass's
// in-process loop directly, so it parallelizes at the same 8x8 workgroup
// granularity the color pass uses.
func (r *SoftwareRenderer) runSurfaceAttributesPass() {
	width := int(r.options.FrameW)
	tracer.DispatchTiles(0, 0, width, int(r.options.FrameH), r.workers, func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				uid, albedo, normal := core.SurfaceAttributesPixel(r.scene, r.registry, r.tex, r.uniforms, x, y)
				idx := y*width + x
				r.gbuffer.ObjectUID[idx] = uid
				r.gbuffer.Albedo[idx] = albedo
				r.gbuffer.Normal[idx] = normal
			}
		}
	})
}

// Stats returns the most recently completed frame's statistics.
func (r *SoftwareRenderer) Stats() FrameStats { return r.lastFrameStats }

// Close shuts down every attached tracer.
func (r *SoftwareRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
}

// GBuffer exposes the first-hit surface-attribute attachments (object uid,
// albedo, normal) written by the surface-attributes pass, for callers that
// want to inspect/export them (e.g. a debug command).
func (r *SoftwareRenderer) GBuffer() *core.FrameBuffers { return r.gbuffer }

var _ Renderer = (*SoftwareRenderer)(nil)
