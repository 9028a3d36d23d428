package bvh

// Tree owns the node array and Wald-triangle buffer a Build call produced,
// along with the side table of opaque sub-intersector handles. It is
// read-only after construction: multiple concurrent traversers may share
// one Tree without locking.
type Tree struct {
	nodes     []Node
	triangles []WaldTriangle
	isecs     []interface{}
}

// Root returns the tree's node array. Index 0 is the root.
func (t *Tree) Root() []Node {
	if t == nil {
		return nil
	}
	return t.nodes
}

// Triangles returns the Wald-triangle buffer.
func (t *Tree) Triangles() []WaldTriangle {
	if t == nil {
		return nil
	}
	return t.triangles
}

// Intersector resolves an IsecLeaf node's Ptr to the opaque sub-intersector
// handle passed to NewIntersector at build time.
func (t *Tree) Intersector(ptr uint32) interface{} {
	return t.isecs[ptr]
}

// Close releases the tree's backing arrays. It is idempotent and safe to
// call on a nil Tree.
func (t *Tree) Close() {
	if t == nil {
		return
	}
	t.nodes = nil
	t.triangles = nil
	t.isecs = nil
}
