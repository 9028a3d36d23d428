package bvh

import "github.com/qrt/sweepbvh/types"

// PrimitiveType discriminates the two kinds of scene primitive the builder
// accepts.
type PrimitiveType uint8

const (
	// Triangle is a flat triangle described by its three vertices.
	Triangle PrimitiveType = iota
	// Intersector is an opaque, already-accelerated sub-scene. The
	// builder only ever looks at its AABB; everything else is handled
	// by whatever owns the opaque pointer.
	Intersector
)

// Primitive is the tagged variant the builder partitions. For a Triangle,
// V[0..2] are the three vertices. For an Intersector, V[0..1] are the AABB
// corners, V[2] is unused, and Isec carries the caller's opaque handle to
// the nested acceleration structure.
type Primitive struct {
	Type PrimitiveType
	V    [3]types.Vec3
	Isec interface{}
}

// NewTriangle builds a triangle primitive from its three vertices.
func NewTriangle(a, b, c types.Vec3) Primitive {
	return Primitive{Type: Triangle, V: [3]types.Vec3{a, b, c}}
}

// NewIntersector builds a sub-intersector primitive from its AABB corners
// and the opaque handle to the nested intersector.
func NewIntersector(pmin, pmax types.Vec3, isec interface{}) Primitive {
	return Primitive{Type: Intersector, V: [3]types.Vec3{pmin, pmax}, Isec: isec}
}

// aabb returns the primitive's axis-aligned bounding box.
func (p *Primitive) aabb() AABB {
	if p.Type == Triangle {
		return AABB{
			Pmin: types.MinVec3(types.MinVec3(p.V[0], p.V[1]), p.V[2]),
			Pmax: types.MaxVec3(types.MaxVec3(p.V[0], p.V[1]), p.V[2]),
		}
	}
	return AABB{Pmin: p.V[0], Pmax: p.V[1]}
}

// centroid returns the sort key used to bucket the primitive during the
// build's sweep phase: the mean of the three vertices for a triangle, the
// midpoint of the two corners for an intersector.
func (p *Primitive) centroid() types.Vec3 {
	if p.Type == Triangle {
		return p.V[0].Add(p.V[1]).Add(p.V[2]).Mul(1.0 / 3.0)
	}
	return p.V[0].Add(p.V[1]).Mul(0.5)
}
