package cmd

import (
	"github.com/hulylabs/3d/log"
	"github.com/urfave/cli"
)

var logger = log.New("3d")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
