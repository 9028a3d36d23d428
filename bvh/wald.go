package bvh

import "github.com/qrt/sweepbvh/types"

// WaldTriangle is the precomputed projective form of a triangle used by the
// traversal partner to test ray intersection without a cross product. See
// makeWaldTriangle for the derivation.
type WaldTriangle struct {
	// K is the axis of the triangle normal's largest absolute component.
	K uint8
	// Sign is 1 when the normal's K component is negative, 0 otherwise.
	Sign uint8

	N     types.Vec2
	Bn    types.Vec2
	Cn    types.Vec2
	Vertk types.Vec2
	Nd    float32

	// ID is the index of this triangle in the original primitive slice.
	ID uint32
	// MatID is reserved for a scene compiler stage; this builder always
	// writes 0.
	MatID uint32
	// Num is the number of triangles in the leaf this record belongs
	// to, duplicated across every record of the leaf so any one of them
	// is enough to recover the leaf's size during traversal.
	Num uint32
}

// axisUV returns the two axes orthogonal to k, in the (u, v) order the
// traversal partner expects.
func axisUV(k uint8) (u, v uint8) {
	return (k + 1) % 3, (k + 2) % 3
}

// makeWaldTriangle projects triangle A,B,C onto the plane orthogonal to its
// dominant normal axis. Degenerate triangles (near-zero normal, or a
// near-zero denom from a near-degenerate 2-D projection) yield ±Inf/NaN
// fields; rejecting them is the traversal partner's responsibility, not
// this function's.
func makeWaldTriangle(a, b, c types.Vec3, id, matid uint32) WaldTriangle {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	n := e1.Cross(e2)

	k := uint8(0)
	for i := uint8(1); i < 3; i++ {
		if abs32(n[i]) > abs32(n[k]) {
			k = i
		}
	}
	u, v := axisUV(k)

	krec := n[k]
	denom := e1[u]*e2[v] - e1[v]*e2[u]

	w := WaldTriangle{
		K:     k,
		N:     types.Vec2{n[u] / krec, n[v] / krec},
		Bn:    types.Vec2{-e1[v] / denom, e1[u] / denom},
		Cn:    types.Vec2{e2[v] / denom, -e2[u] / denom},
		Vertk: types.Vec2{a[u], a[v]},
		Nd:    n.Dot(a) / krec,
		ID:    id,
		MatID: matid,
	}
	if n[k] < 0 {
		w.Sign = 1
	}
	return w
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
