package main

import (
	"os"

	"github.com/qrt/sweepbvh/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "sweepbvh"
	app.Usage = "build and inspect sweep-SAH bounding volume hierarchies"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build a BVH over a synthetic demo scene and print its stats",
			Description: `
Assemble a synthetic heterogeneous scene (a tiled grid of triangles plus a
handful of opaque sub-intersectors), run it through the presorted
sweep-SAH builder and print the resulting node/leaf/triangle counts.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "grid-x",
					Value: 8,
					Usage: "number of quads along the x axis of the demo grid",
				},
				cli.IntFlag{
					Name:  "grid-y",
					Value: 8,
					Usage: "number of quads along the y axis of the demo grid",
				},
				cli.IntFlag{
					Name:  "isecs",
					Value: 2,
					Usage: "number of opaque sub-intersectors to scatter into the demo scene",
				},
				cli.IntFlag{
					Name:  "max-prim",
					Value: 8,
					Usage: "maxPrimitiveNum: largest leaf the no-split SAH candidate may produce",
				},
				cli.IntFlag{
					Name:  "sah-isect",
					Value: 4,
					Usage: "sahIntersectionCost",
				},
				cli.IntFlag{
					Name:  "sah-trav",
					Value: 4,
					Usage: "sahTraversalCost",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "log node/leaf counts and triangles-per-leaf ratio during the build",
				},
			},
			Action: cmd.BuildDemo,
		},
	}

	app.Run(os.Args)
}
