package cmd

import (
	"github.com/qrt/sweepbvh/log"
	"github.com/urfave/cli"
)

var logger = log.New("sweepbvh")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
