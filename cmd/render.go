package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"time"
	"github.com/hulylabs/3d/asset/scenefile"
	"github.com/hulylabs/3d/core"
	"github.com/hulylabs/3d/renderer"
	"github.com/hulylabs/3d/texture"
	"github.com/hulylabs/3d/tracer"
	"github.com/hulylabs/3d/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFrame renders a single still frame from a JSON scene description and
// writes the resolved image to disk, using a single goroutine-pool
// tracer.SoftwareTracer driven by renderer.SoftwareRenderer.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	opts := renderer.Options{
		FrameW: uint32(ctx.Int("width")),
		FrameH: uint32(ctx.Int("height")),
		SamplesPerPixel: uint32(ctx.Int("spp")),
		Exposure: float32(ctx.Float64("exposure")),
	}

	loaded, err := scenefile.Load(ctx.Args().First())
	if err != nil {
		return err
	}

	tex, err := loadTextureContext(loaded, ctx.String("atlas"))
	if err != nil {
		return err
	}

	workers := runtime.NumCPU()

	accumBuffer := make([]float32, int(opts.FrameW)*int(opts.FrameH)*3)
	frameBuffer := make([]uint8, int(opts.FrameW)*int(opts.FrameH)*4)

	background := types.Vec3{}
	tr := tracer.NewSoftwareTracer("cpu0", workers, tracer.MonteCarloMode, background, loaded.Scene, loaded.Registry, tex, 1.0)
	if err := tr.Setup(opts.FrameW, opts.FrameH, accumBuffer, frameBuffer); err != nil {
		return err
	}
	defer tr.Close()

	r := renderer.New(opts, []tracer.Tracer{tr}, loaded.Scene, loaded.Registry, tex, loaded.Camera, workers)
	defer r.Close()

	logger.Notice("rendering frame")
	start := time.Now()
	if err := r.Render(); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	logger.Noticef("rendered frame in %d ms", time.Since(start).Nanoseconds()/1000000)

	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return fmt.Errorf("creating %q: %w", imgFile, err)
	}
	defer f.Close()

	img := &image.RGBA{
		Pix: frameBuffer,
		Stride: int(opts.FrameW) * 4,
		Rect: image.Rect(0, 0, int(opts.FrameW), int(opts.FrameH)),
	}

	start = time.Now()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1000000)

	return nil
}

// loadTextureContext assembles the texture registries a frame's kernels
// share: the fixed procedural-texture set plus, when an atlas image path is
// supplied, the loaded atlas and the scene's region mappings.
func loadTextureContext(loaded *scenefile.Loaded, atlasPath string) (*core.TextureContext, error) {
	procedural := texture.NewProceduralRegistry([]texture.Procedural{texture.Checkerboard{}})

	tex := &core.TextureContext{
		Procedural: procedural,
		AtlasMappings: loaded.Scene.AtlasMappings,
	}

	if atlasPath != "" {
		atlas, err := texture.LoadAtlas(atlasPath)
		if err != nil {
			return nil, fmt.Errorf("loading atlas %q: %w", atlasPath, err)
		}
		tex.Atlas = atlas
	}

	return tex, nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Primary", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%t", stat.IsPrimary),
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent*100),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
