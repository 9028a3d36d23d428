package bvh

import (
	"math"
	"testing"

	"github.com/qrt/sweepbvh/types"
)

func TestAABBEmptyIsComposeIdentity(t *testing.T) {
	empty := emptyAABB()
	box := AABB{Pmin: types.Vec3{1, 2, 3}, Pmax: types.Vec3{4, 5, 6}}

	got := empty
	got.compose(box)
	if got != box {
		t.Fatalf("composing empty with %v produced %v", box, got)
	}
}

func TestAABBComposeIsCommutativeAndAssociative(t *testing.T) {
	a := AABB{Pmin: types.Vec3{0, 0, 0}, Pmax: types.Vec3{1, 1, 1}}
	b := AABB{Pmin: types.Vec3{-1, 2, 0}, Pmax: types.Vec3{3, 3, 3}}
	c := AABB{Pmin: types.Vec3{5, -5, 5}, Pmax: types.Vec3{6, -4, 9}}

	ab := a
	ab.compose(b)
	ba := b
	ba.compose(a)
	if ab != ba {
		t.Fatalf("compose not commutative: a.compose(b)=%v b.compose(a)=%v", ab, ba)
	}

	abc1 := a
	abc1.compose(b)
	abc1.compose(c)

	bc := b
	bc.compose(c)
	abc2 := a
	abc2.compose(bc)

	if abc1 != abc2 {
		t.Fatalf("compose not associative: %v vs %v", abc1, abc2)
	}
}

func TestAABBHalfArea(t *testing.T) {
	box := AABB{Pmin: types.Vec3{0, 0, 0}, Pmax: types.Vec3{2, 3, 4}}
	got := box.halfarea()
	want := float32(2*3 + 3*4 + 4*2)
	if got != want {
		t.Fatalf("halfarea() = %v, want %v", got, want)
	}
}

func TestAABBEmptyHalfAreaIsNegative(t *testing.T) {
	box := emptyAABB()
	if box.halfarea() >= 0 {
		t.Fatalf("expected empty box halfarea to be negative, got %v", box.halfarea())
	}
}

func TestAABBInflate(t *testing.T) {
	box := AABB{Pmin: types.Vec3{0, 0, 0}, Pmax: types.Vec3{1, 1, 1}}
	box.inflate(1e-6)

	if box.Pmin[0] != -1e-6 || box.Pmax[0] != 1+1e-6 {
		t.Fatalf("inflate did not pad box symmetrically: %v", box)
	}
}

func TestEmptyAABBExtents(t *testing.T) {
	box := emptyAABB()
	for i := 0; i < 3; i++ {
		if !math.IsInf(float64(box.Pmin[i]), 1) {
			t.Fatalf("empty box pmin[%d] = %v, want +Inf", i, box.Pmin[i])
		}
		if !math.IsInf(float64(box.Pmax[i]), -1) {
			t.Fatalf("empty box pmax[%d] = %v, want -Inf", i, box.Pmax[i])
		}
	}
}
