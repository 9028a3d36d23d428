package bvh

import (
	"math"

	"github.com/qrt/sweepbvh/types"
)

// aabbEpsilon pads every node's box on each axis once the tree is
// complete, guarding against rays that graze a leaf boundary exactly.
const aabbEpsilon float32 = 1e-6

// AABB is an axis-aligned bounding box. The empty box has Pmin at +Inf and
// Pmax at -Inf, so composing it with any box yields that box unchanged.
type AABB struct {
	Pmin, Pmax types.Vec3
}

func emptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Pmin: types.Vec3{inf, inf, inf},
		Pmax: types.Vec3{-inf, -inf, -inf},
	}
}

// compose grows the box to also contain o. compose is associative and
// commutative, and the empty box is its identity element.
func (b *AABB) compose(o AABB) {
	b.Pmin = types.MinVec3(b.Pmin, o.Pmin)
	b.Pmax = types.MaxVec3(b.Pmax, o.Pmax)
}

// halfarea returns dx*dy + dy*dz + dz*dx. Callers must never evaluate this
// on a box that hasn't composed at least one primitive: the empty box's
// negative extents make halfarea meaningless as a SAH term.
func (b AABB) halfarea() float32 {
	d := b.Pmax.Sub(b.Pmin)
	return d[0]*d[1] + d[1]*d[2] + d[2]*d[0]
}

// inflate pads the box by e on every axis, in place.
func (b *AABB) inflate(e float32) {
	pad := types.Vec3{e, e, e}
	b.Pmin = b.Pmin.Sub(pad)
	b.Pmax = b.Pmax.Add(pad)
}
