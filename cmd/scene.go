package cmd

import (
	"errors"
	"fmt"

	"github.com/hulylabs/3d/asset/scenefile"
	"github.com/urfave/cli"
)

// ShowSceneInfo loads a JSON scene description and prints a summary of its
// contents. scenefile.Load reads the JSON description directly, so there
// is no separate compile step to inspect.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	loaded, err := scenefile.Load(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sceneStats(loaded))
	return nil
}

func sceneStats(loaded *scenefile.Loaded) string {
	s := loaded.Scene
	lights := "none"
	if s.HasLight() {
		lights = "1 emissive quad"
	}
	return fmt.Sprintf(
		"parallelograms: %d\ntriangles: %d\nsdf instances: %d\nmaterials: %d\natlas mappings: %d\nlights: %s",
		len(s.Parallelograms), len(s.Triangles), len(s.SDFInstances), len(s.Materials), len(s.AtlasMappings), lights,
	)
}
