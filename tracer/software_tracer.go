package tracer

import (
	"sync"
	"time"
	"github.com/hulylabs/3d/core"
	"github.com/hulylabs/3d/resolve"
	"github.com/hulylabs/3d/rng"
	"github.com/hulylabs/3d/scene"
	"github.com/hulylabs/3d/sdf"
	"github.com/hulylabs/3d/types"
)

// tileSize is the software device's workgroup dispatch granularity: the
// unit of work handed to the goroutine pool, an 8x8 pixel square.
const tileSize = 8

// MonteCarloMode and DeterministicMode select the color pass a SoftwareTracer
// runs for every block it processes.
type Mode uint8

const (
	MonteCarloMode Mode = iota
	DeterministicMode
)

// SoftwareTracer is a goroutine-pool Tracer implementation: it dispatches
// the color/resolve kernels over a worker pool of goroutines, tiling each
// block into tileSize x tileSize squares. Its block-request lifecycle is a
// single consumer goroutine reading off an unbuffered channel, replying on
// DoneChan/ErrChan, shut down via a close channel plus WaitGroup.
type SoftwareTracer struct {
	mu sync.Mutex

	id string
	speedEstimate float32
	workers int

	scene *scene.Scene
	registry *sdf.Registry
	tex *core.TextureContext
	mode Mode
	background types.Vec3

	uniforms scene.Uniforms

	accumBuffer []float32
	frameBuffer []uint8

	pending []pendingChange

	blockReqChan chan BlockRequest
	closeChan chan struct{}
	wg sync.WaitGroup

	lastStats Stats
}

type pendingChange struct {
	kind ChangeType
	payload interface{}
}

// NewSoftwareTracer builds a tracer that shades with scene/registry/tex
// against workers goroutines per dispatched block, reporting speedEstimate
// as its SpeedEstimate (relative to a notional baseline CPU tracer, per
// the Tracer interface's contract).
func NewSoftwareTracer(id string, workers int, mode Mode, background types.Vec3, s *scene.Scene, registry *sdf.Registry, tex *core.TextureContext, speedEstimate float32) *SoftwareTracer {
	if workers < 1 {
		workers = 1
	}
	return &SoftwareTracer{
		id: id,
		speedEstimate: speedEstimate,
		workers: workers,
		scene: s,
		registry: registry,
		tex: tex,
		mode: mode,
		background: background,
		blockReqChan: make(chan BlockRequest),
		closeChan: make(chan struct{}),
	}
}

func (tr *SoftwareTracer) Id() string { return tr.id }

func (tr *SoftwareTracer) SpeedEstimate() float32 { return tr.speedEstimate }

// Setup attaches the tracer to its output buffers and starts the worker
// goroutine that drains block requests.
func (tr *SoftwareTracer) Setup(frameW, frameH uint32, accumBuffer []float32, frameBuffer []uint8) error {
	tr.mu.Lock()
	tr.uniforms.FrameWidth = frameW
	tr.uniforms.FrameHeight = frameH
	tr.uniforms.Aspect = float32(frameW) / float32(frameH)
	tr.uniforms.ThreadGridWidth = (frameW + tileSize - 1) / tileSize
	tr.uniforms.ThreadGridHeight = (frameH + tileSize - 1) / tileSize
	tr.accumBuffer = accumBuffer
	tr.frameBuffer = frameBuffer
	tr.mu.Unlock()

	ready := make(chan struct{})
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		close(ready)
		for {
			select {
			case req := <-tr.blockReqChan:
				if err := tr.process(req); err != nil {
					req.ErrChan <- err
					continue
				}
				req.DoneChan <- req.BlockH
			case <-tr.closeChan:
				return
			}
		}
	}()
	<-ready
	return nil
}

func (tr *SoftwareTracer) Enqueue(req BlockRequest) {
	select {
	case tr.blockReqChan <- req:
	default:
		go func() { tr.blockReqChan <- req }()
	}
}

func (tr *SoftwareTracer) AppendChange(kind ChangeType, payload interface{}) {
	tr.mu.Lock()
	tr.pending = append(tr.pending, pendingChange{kind: kind, payload: payload})
	tr.mu.Unlock()
}

func (tr *SoftwareTracer) ApplyPendingChanges() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	for _, c := range tr.pending {
		switch c.kind {
		case SetBvhNodes:
			tr.scene.BVH = c.payload.(scene.BVH)
		case SetPrimitivies:
			p := c.payload.(PrimitivesPayload)
			tr.scene.Parallelograms = p.Parallelograms
			tr.scene.Triangles = p.Triangles
			tr.scene.SDFInstances = p.SDFInstances
			tr.scene.SDFTime = p.SDFTime
		case SetMaterials:
			m := c.payload.(MaterialsPayload)
			tr.scene.Materials = m.Materials
			tr.scene.AtlasMappings = m.AtlasMappings
		case SetEmissiveLightIndices:
			// Payload is unused: the light index isn't settable directly
			// (scene.Scene derives it from Materials), so this change just
			// re-derives it from whatever SetMaterials most recently set.
			bvh := tr.scene.BVH
			next := scene.NewScene(tr.scene.Parallelograms, tr.scene.Triangles, tr.scene.SDFInstances, tr.scene.SDFTime, tr.scene.Materials, tr.scene.AtlasMappings)
			next.BVH = bvh
			tr.scene = next
		case UpdateCamera:
			cam := c.payload.(CameraPayload)
			tr.uniforms.ViewMatrix = cam.ViewMatrix
			tr.uniforms.ViewRayOriginMatrix = cam.ViewRayOriginMatrix
		}
	}
	tr.pending = tr.pending[:0]
	return nil
}

func (tr *SoftwareTracer) Stats() *Stats {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	s := tr.lastStats
	return &s
}

// Close shuts down the worker goroutine and waits for it to exit. Calls
// after the first one return without doing anything.
func (tr *SoftwareTracer) Close() {
	tr.mu.Lock()
	select {
	case <-tr.closeChan:
		tr.mu.Unlock()
		return
	default:
		close(tr.closeChan)
	}
	tr.mu.Unlock()
	tr.wg.Wait()
}

// process renders one block request: it tiles the block's row range into
// tileSize x tileSize squares and fans them out across tr.workers
// goroutines, then resolves every pixel it touched into the frame buffer.
func (tr *SoftwareTracer) process(req BlockRequest) error {
	start := time.Now()

	tr.mu.Lock()
	u := tr.uniforms
	u.FrameNumber = req.FrameCount
	u.PixelSideSubdivision = scene.SubdivisionForSamples(req.SamplesPerPixel)
	s := tr.scene
	registry := tr.registry
	tex := tr.tex
	mode := tr.mode
	background := tr.background
	tr.mu.Unlock()

	width := int(u.FrameWidth)
	y0 := int(req.BlockY)
	y1 := y0 + int(req.BlockH)
	DispatchTiles(0, y0, width, y1, tr.workers, func(tx0, ty0, tx1, ty1 int) {
		tr.shadeTile(s, registry, tex, u, background, mode, req, tx0, ty0, tx1, ty1)
	})

	tr.mu.Lock()
	tr.lastStats = Stats{BlockH: req.BlockH, BlockTime: time.Since(start).Nanoseconds()}
	tr.mu.Unlock()
	return nil
}

func (tr *SoftwareTracer) shadeTile(s *scene.Scene, registry *sdf.Registry, tex *core.TextureContext, u scene.Uniforms, background types.Vec3, mode Mode, req BlockRequest, x0, y0, x1, y1 int) {
	width := int(u.FrameWidth)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			idx := y*width + x

			var color types.Vec3
			switch mode {
			case DeterministicMode:
				color = core.ColorPixelDeterministic(s, registry, tex, u, background, x, y)
				tr.accumBuffer[idx*3+0] = color[0]
				tr.accumBuffer[idx*3+1] = color[1]
				tr.accumBuffer[idx*3+2] = color[2]
			default:
				random := rng.New(uint32(idx), req.FrameCount)
				color = core.ColorPixelMonteCarlo(s, registry, tex, u, background, x, y, random)
				tr.accumBuffer[idx*3+0] += color[0]
				tr.accumBuffer[idx*3+1] += color[1]
				tr.accumBuffer[idx*3+2] += color[2]
			}

			exposure := req.Exposure
			if exposure == 0 {
				exposure = 1
			}
			accumulated := types.XYZ(tr.accumBuffer[idx*3+0], tr.accumBuffer[idx*3+1], tr.accumBuffer[idx*3+2]).Mul(exposure)
			resolved := resolve.Pixel(accumulated, req.FrameCount, x, y)
			tr.frameBuffer[idx*4+0] = uint8(resolved[0]*255 + 0.5)
			tr.frameBuffer[idx*4+1] = uint8(resolved[1]*255 + 0.5)
			tr.frameBuffer[idx*4+2] = uint8(resolved[2]*255 + 0.5)
			tr.frameBuffer[idx*4+3] = 255
		}
	}
}

// DispatchTiles splits the rectangle [x0,x1)x[y0,y1) into tileSize x
// tileSize squares and fans each one out to a pool of workers goroutines,
// calling fn(tileX0, tileY0, tileX1, tileY1) for every tile before
// returning. Both SoftwareTracer's block shading and a renderer's
// surface-attributes pass use this to parallelize a per-pixel kernel at
// the same tile granularity.
func DispatchTiles(x0, y0, x1, y1, workers int, fn func(tx0, ty0, tx1, ty1 int)) {
	if workers < 1 {
		workers = 1
	}

	type tile struct{ x0, y0, x1, y1 int }
	var tiles []tile
	for ty := y0; ty < y1; ty += tileSize {
		tyEnd := minInt(ty+tileSize, y1)
		for tx := x0; tx < x1; tx += tileSize {
			txEnd := minInt(tx+tileSize, x1)
			tiles = append(tiles, tile{tx, ty, txEnd, tyEnd})
		}
	}

	tileChan := make(chan tile)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tileChan {
				fn(t.x0, t.y0, t.x1, t.y1)
			}
		}()
	}
	for _, t := range tiles {
		tileChan <- t
	}
	close(tileChan)
	wg.Wait()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
