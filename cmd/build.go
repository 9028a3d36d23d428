package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/qrt/sweepbvh/bvh"
	"github.com/qrt/sweepbvh/config"
	"github.com/urfave/cli"
)

// BuildDemo assembles a synthetic scene, runs the sweep-SAH builder over
// it and prints a summary table of the resulting tree.
func BuildDemo(ctx *cli.Context) error {
	setupLogging(ctx)

	config.SetMaxPrimitiveNum(ctx.Int("max-prim"))
	config.SetSAHIntersectionCost(ctx.Int("sah-isect"))
	config.SetSAHTraversalCost(ctx.Int("sah-trav"))
	if ctx.Bool("stats") {
		config.SetBVHStatistics(1)
	} else {
		config.SetBVHStatistics(0)
	}

	nx, ny := ctx.Int("grid-x"), ctx.Int("grid-y")
	prims := gridScene(nx, ny, 2, ctx.Int("isecs"))

	tree := bvh.Build(prims, config.Default(), logger)
	if tree == nil {
		return fmt.Errorf("empty scene: no primitives to build")
	}
	defer tree.Close()

	printTreeStats(prims, tree)
	return nil
}

func printTreeStats(prims []bvh.Primitive, tree *bvh.Tree) {
	nodes := tree.Root()
	tris := tree.Triangles()

	leaves, inner, isecLeaves := 0, 0, 0
	for _, n := range nodes {
		switch n.Flag() {
		case bvh.NonLeaf:
			inner++
		case bvh.TriLeaf:
			leaves++
		case bvh.IsecLeaf:
			leaves++
			isecLeaves++
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Primitives", fmt.Sprintf("%d", len(prims))})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", len(nodes))})
	table.Append([]string{"Inner nodes", fmt.Sprintf("%d", inner)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", leaves)})
	table.Append([]string{"Intersector leaves", fmt.Sprintf("%d", isecLeaves)})
	table.Append([]string{"Wald triangles", fmt.Sprintf("%d", len(tris))})
	table.Render()

	logger.Notice("\n" + buf.String())
}
