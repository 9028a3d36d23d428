package bvh

import (
	"math"
	"sort"

	"github.com/qrt/sweepbvh/config"
	"github.com/qrt/sweepbvh/log"
)

// side names which half of a split candidate's primitive range a slot
// belongs to: the position relative to the split plane, not the eventual
// left/right role a child plays in the node encoding (which is decided by
// processing order -- see run).
type side int

const (
	onLeft side = iota
	onRight
)

// maxStackDepth bounds the explicit segment stack. A build that would
// overflow it is pathologically degenerate input, not a recoverable
// runtime condition.
const maxStackDepth = 64

// partition is a candidate split along one axis, found by sweep.
type partition struct {
	axis  uint8
	cost  float32
	boxes [2]AABB
	first [2]int32
	last  [2]int32
}

// segment is a primitive range together with its tight AABB: the payload
// carried by both the "currently being built" cursor and the explicit
// stack of deferred siblings.
type segment struct {
	first, last int32
	box         AABB
}

// pending is a deferred sibling: the larger half of a split, pushed while
// the smaller half is walked immediately. Its node id isn't known until
// it's popped -- only then does the builder's bump allocator tell it where
// it will land -- so it carries parentID to patch that inner node's offset
// field once the id is finally assigned.
type pending struct {
	segment
	parentID uint32
}

type builder struct {
	primitives []Primitive
	opts       config.BuildOptions
	logger     log.Logger

	ids    [3][]uint32
	pos    []side
	tmpids []uint32

	boxes   []AABB
	rlboxes []AABB
	istri   []bool

	nodes     []Node
	triangles []WaldTriangle
	isecs     []interface{}

	nextID  uint32
	nextTri uint32

	leafCount int
}

// Build partitions primitives into a Tree using the presorted sweep-SAH
// algorithm. It returns nil for an empty input. loggers, if given,
// overrides the default "bvh"-named logger used to emit build statistics.
func Build(primitives []Primitive, opts config.BuildOptions, loggers ...log.Logger) *Tree {
	n := len(primitives)
	if n == 0 {
		return nil
	}

	logger := log.New("bvh")
	if len(loggers) > 0 && loggers[0] != nil {
		logger = loggers[0]
	}

	b := &builder{
		primitives: primitives,
		opts:       opts,
		logger:     logger,
		pos:        make([]side, n),
		tmpids:     make([]uint32, n),
		boxes:      make([]AABB, n),
		rlboxes:    make([]AABB, n),
		istri:      make([]bool, n),
		nodes:      make([]Node, 2*n-1),
		triangles:  make([]WaldTriangle, n),
	}
	for a := 0; a < 3; a++ {
		b.ids[a] = make([]uint32, n)
	}

	sceneBox := b.inject()
	b.run(int32(n), sceneBox)

	if opts.BVHStatistics != 0 {
		ratio := float64(0)
		if b.leafCount > 0 {
			ratio = float64(n) / float64(b.leafCount)
		}
		logger.Noticef("bvh: %d nodes %d leaves", int(b.nextID), b.leafCount)
		logger.Noticef("bvh: %.2f triangles/leaf", ratio)
	}

	return &Tree{
		nodes:     b.nodes[:b.nextID],
		triangles: b.triangles[:b.nextTri],
		isecs:     b.isecs,
	}
}

// inject computes per-primitive AABBs and centroids, the scene box, and
// the three centroid-sorted axis index permutations.
func (b *builder) inject() AABB {
	n := len(b.primitives)
	centroids := make([]float32, n*3)
	sceneBox := emptyAABB()

	for i := range b.primitives {
		p := &b.primitives[i]
		b.istri[i] = p.Type == Triangle
		box := p.aabb()
		b.boxes[i] = box
		sceneBox.compose(box)

		c := p.centroid()
		centroids[i*3+0] = c[0]
		centroids[i*3+1] = c[1]
		centroids[i*3+2] = c[2]
	}

	for a := 0; a < 3; a++ {
		ids := b.ids[a]
		for i := 0; i < n; i++ {
			ids[i] = uint32(i)
		}
		axis := a
		sort.Slice(ids, func(i, j int) bool {
			return centroids[ids[i]*3+uint32(axis)] < centroids[ids[j]*3+uint32(axis)]
		})
	}

	return sceneBox
}

// run drives the sweep-SAH partition. It always continues immediately
// into whichever half of a split has fewer primitives (a tie favors the
// right half), so the explicit stack of deferred, larger halves never
// grows past O(log n); the half that continues is assigned the very next
// node id and therefore always becomes the "left child at i+1" of its
// parent, while a deferred half's id -- and therefore its parent's offset
// field -- isn't fixed until the moment it's popped back off the stack.
func (b *builder) run(n int32, sceneBox AABB) {
	var stack [maxStackDepth]pending
	top := 0

	curID := uint32(0)
	cur := segment{first: 0, last: n - 1, box: sceneBox}
	b.nextID = 1

	for {
		for {
			if cur.last == cur.first {
				b.makeLeaf(curID, cur)
				break
			}

			best := b.sweep(0, cur.first, cur.last)
			for axis := uint8(1); axis <= 2; axis++ {
				p := b.sweep(axis, cur.first, cur.last)
				if p.cost < best.cost {
					best = p
				}
			}

			if best.first[onLeft] == -1 {
				b.makeLeaf(curID, cur)
				break
			}

			for j := best.first[onLeft]; j <= best.last[onLeft]; j++ {
				b.pos[b.ids[best.axis][j]] = onLeft
			}
			for j := best.first[onRight]; j <= best.last[onRight]; j++ {
				b.pos[b.ids[best.axis][j]] = onRight
			}

			otherAxis := [4]uint8{1, 2, 0, 1}
			for i := uint8(0); i < 2; i++ {
				d0 := otherAxis[best.axis+i]
				ids := b.ids[d0]
				leftnum, rightnum := int32(0), int32(0)
				for j := cur.first; j <= cur.last; j++ {
					id := ids[j]
					if b.pos[id] == onLeft {
						ids[cur.first+leftnum] = id
						leftnum++
					} else {
						b.tmpids[rightnum] = id
						rightnum++
					}
				}
				for j := cur.first + leftnum; j <= cur.last; j++ {
					ids[j] = b.tmpids[j-leftnum-cur.first]
				}
			}

			leftCount := best.last[onLeft] - best.first[onLeft] + 1
			rightCount := best.last[onRight] - best.first[onRight] + 1

			leftSeg := segment{first: best.first[onLeft], last: best.last[onLeft], box: best.boxes[onLeft]}
			rightSeg := segment{first: best.first[onRight], last: best.last[onRight], box: best.boxes[onRight]}

			// Whichever half has fewer primitives continues immediately and
			// becomes the encoding's "left child"; a tie favors the right
			// half continuing.
			small, large := rightSeg, leftSeg
			if rightCount > leftCount {
				small, large = leftSeg, rightSeg
			}

			b.nodes[curID].Box = cur.box
			b.nodes[curID].setInner(best.axis, 1) // offset patched once the deferred half's id is known

			if top >= maxStackDepth {
				panic("bvh: segment stack overflow (degenerate input)")
			}
			stack[top] = pending{segment: large, parentID: curID}
			top++

			smallID := b.nextID
			b.nextID++

			curID = smallID
			cur = small
		}

		if top == 0 {
			break
		}
		top--
		p := stack[top]

		id := b.nextID
		b.nextID++

		parent := &b.nodes[p.parentID]
		parent.setInner(parent.Axis(), id-p.parentID)

		curID = id
		cur = p.segment
	}

	b.growBoxes()
}

// sweep builds the right-to-left inclusive AABB prefix for axis over
// [first,last], then walks left to right maintaining the symmetric
// left-to-right union, tracking the minimum-cost split. It also evaluates
// whether the whole segment should collapse into a single triangle leaf.
func (b *builder) sweep(axis uint8, first, last int32) partition {
	ids := b.ids[axis]

	part := partition{
		axis: axis,
		cost: math.MaxFloat32,
		boxes: [2]AABB{
			emptyAABB(),
			emptyAABB(),
		},
		first: [2]int32{first, first},
		last:  [2]int32{last, last},
	}

	b.rlboxes[ids[last]] = b.boxes[ids[last]]
	for j := last - 1; j >= first; j-- {
		rb := b.boxes[ids[j]]
		rb.compose(b.rlboxes[ids[j+1]])
		b.rlboxes[ids[j]] = rb
	}

	box := emptyAABB()
	primnum := last - first + 1
	n := int32(1)
	alltris := true
	for j := first; j < last; j++ {
		left, right := ids[j], ids[j+1]
		box.compose(b.boxes[left])
		larea := box.halfarea()
		rarea := b.rlboxes[right].halfarea()
		cost := larea*float32(n) + rarea*float32(primnum-n)
		n++
		if !b.istri[left] {
			alltris = false
		}
		if cost > part.cost {
			continue
		}
		part.cost = cost
		part.last[onLeft] = j
		part.first[onRight] = j + 1
		part.boxes[onLeft] = box
		part.boxes[onRight] = b.rlboxes[ids[j+1]]
	}

	id := ids[last]
	if !alltris || !b.istri[id] {
		return part
	}

	box.compose(b.boxes[id])
	harea := box.halfarea()
	part.cost *= float32(b.opts.SAHIntersectionCost)
	part.cost += float32(b.opts.SAHTraversalCost) * harea
	if primnum > int32(b.opts.MaxPrimitiveNum) {
		return part
	}

	noSplitCost := float32(b.opts.SAHIntersectionCost) * float32(primnum) * harea
	if noSplitCost <= part.cost {
		part.cost = noSplitCost
		part.first[onLeft], part.last[onLeft] = -1, -1
		part.first[onRight], part.last[onRight] = -1, -1
		part.boxes[onLeft] = box
		part.boxes[onRight] = box
	}
	return part
}

// makeLeaf emits a leaf at id: an IsecLeaf for a lone sub-intersector, or a
// TriLeaf addressing a freshly appended contiguous run of Wald triangles
// otherwise.
func (b *builder) makeLeaf(id uint32, seg segment) {
	n := seg.last - seg.first + 1
	firstID := b.ids[0][seg.first]
	first := &b.primitives[firstID]

	target := &b.nodes[id]
	target.Box = seg.box

	if first.Type == Intersector {
		if n != 1 {
			panic("bvh: intersector leaf must contain exactly one primitive")
		}
		idx := uint32(len(b.isecs))
		b.isecs = append(b.isecs, first.Isec)
		target.setLeaf(IsecLeaf, idx)
	} else {
		firstTri := b.nextTri
		for j := seg.first; j <= seg.last; j++ {
			pid := b.ids[0][j]
			p := &b.primitives[pid]
			if p.Type != Triangle {
				panic("bvh: triangle leaf contains a non-triangle primitive")
			}
			wt := makeWaldTriangle(p.V[0], p.V[1], p.V[2], pid, 0)
			wt.Num = uint32(n)
			b.triangles[b.nextTri] = wt
			b.nextTri++
		}
		target.setLeaf(TriLeaf, firstTri)
	}

	b.leafCount++
}

// growBoxes inflates every emitted node's box, leaf and inner alike,
// guarding against rays that graze a boundary exactly.
func (b *builder) growBoxes() {
	for i := uint32(0); i < b.nextID; i++ {
		b.nodes[i].Box.inflate(aabbEpsilon)
	}
}
