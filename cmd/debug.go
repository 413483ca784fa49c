package cmd

import (
	"errors"
	"fmt"
	"runtime"
	"github.com/hulylabs/3d/asset/scenefile"
	"github.com/hulylabs/3d/renderer"
	"github.com/hulylabs/3d/tracer"
	"github.com/hulylabs/3d/types"
	"github.com/urfave/cli"
)

// Debug renders a single deterministic frame (no Monte-Carlo accumulation)
// and reports the surface-attributes g-buffer coverage alongside frame
// timing, as a quick check that the scene/sdf/material pipeline produces a
// sane first frame.
func Debug(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	width, height := 256, 256

	loaded, err := scenefile.Load(ctx.Args().First())
	if err != nil {
		return err
	}

	tex, err := loadTextureContext(loaded, ctx.String("atlas"))
	if err != nil {
		return err
	}

	workers := runtime.NumCPU()
	opts := renderer.Options{FrameW: uint32(width), FrameH: uint32(height), SamplesPerPixel: 1, Exposure: 1}

	accumBuffer := make([]float32, width*height*3)
	frameBuffer := make([]uint8, width*height*4)

	tr := tracer.NewSoftwareTracer("cpu0", workers, tracer.DeterministicMode, types.Vec3{}, loaded.Scene, loaded.Registry, tex, 1.0)
	if err := tr.Setup(opts.FrameW, opts.FrameH, accumBuffer, frameBuffer); err != nil {
		return err
	}
	defer tr.Close()

	r := renderer.New(opts, []tracer.Tracer{tr}, loaded.Scene, loaded.Registry, tex, loaded.Camera, workers)
	defer r.Close()

	if err := r.Render(); err != nil {
		return fmt.Errorf("rendering debug frame: %w", err)
	}

	displayFrameStats(r.Stats())
	logger.Noticef("scene information:\n%s", sceneStats(loaded))
	logger.Noticef("g-buffer coverage: %d/%d pixels hit geometry", hitPixelCount(r), width*height)

	return nil
}

// hitPixelCount counts the g-buffer pixels whose object uid is non-zero,
// i.e. the pixels a camera ray actually struck geometry at. A uid of
// zero marks a background miss.
func hitPixelCount(r *renderer.SoftwareRenderer) int {
	hits := 0
	for _, uid := range r.GBuffer().ObjectUID {
		if uid != 0 {
			hits++
		}
	}
	return hits
}
