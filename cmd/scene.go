package cmd

import (
	"github.com/qrt/sweepbvh/bvh"
	"github.com/qrt/sweepbvh/types"
)

// gridScene stands in for the (out-of-scope) scene loader: it assembles a
// synthetic heterogeneous primitive set so the build command has something
// to feed bvh.Build without depending on a real asset pipeline. It tiles
// nx*ny unit quads (two triangles each) across the XY plane with a gap
// between cells so the SAH sweep has real split candidates, then scatters
// a handful of opaque sub-intersectors far off to one side to exercise
// IsecLeaf emission.
func gridScene(nx, ny int, spacing float32, isecs int) []bvh.Primitive {
	prims := make([]bvh.Primitive, 0, nx*ny*2+isecs)

	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			ox := float32(ix) * spacing
			oy := float32(iy) * spacing

			a := types.Vec3{ox, oy, 0}
			b := types.Vec3{ox + 1, oy, 0}
			c := types.Vec3{ox + 1, oy + 1, 0}
			d := types.Vec3{ox, oy + 1, 0}

			prims = append(prims,
				bvh.NewTriangle(a, b, c),
				bvh.NewTriangle(a, c, d),
			)
		}
	}

	// Scatter opaque sub-intersectors well clear of the triangle grid so
	// they land in their own subtree rather than being interleaved with
	// it -- a demonstration of the natural nesting the Intersector
	// primitive offers instead of a separate top-level BVH.
	far := float32(nx) * spacing * 4
	for i := 0; i < isecs; i++ {
		ox := far + float32(i)*spacing*2
		pmin := types.Vec3{ox, 0, 0}
		pmax := types.Vec3{ox + 1, 1, 1}
		prims = append(prims, bvh.NewIntersector(pmin, pmax, i))
	}

	return prims
}
