package nodealloc

import (
	"github.com/flier/ordstat/internal/debug"
	"github.com/flier/ordstat/pkg/ordnum"
	"github.com/flier/ordstat/pkg/ordstat"
	"github.com/flier/ordstat/pkg/vecx"
)

// colorBit and indexMask split a 31-bit index plus a color bit out of a
// uint32 parent field, saving one word per node over storing the color
// separately.
const (
	colorBit  uint32 = 1 << 31
	indexMask uint32 = colorBit - 1

	// invalidIdx is the largest value the 31-bit parent-index field can
	// hold, reserved so that no live slot ever has it as its index. The
	// free list does not use it: it marks its ends with noHandle.
	invalidIdx uint32 = indexMask
	// deletedMarker is the pattern a freed slot's parent field is set to,
	// distinct from invalidIdx and from every live parent index.
	deletedMarker uint32 = indexMask - 1

	// maxLiveNodes caps the slot count: no allocated slot's index may
	// collide with invalidIdx or deletedMarker, so the largest usable
	// index is deletedMarker-1, two slots of which are the sentinels.
	maxLiveNodes = int(deletedMarker) - 2
)

// Handle is the handle type [CompactAlloc] hands out: a stable integer
// index into its backing node vector. 0 is always the Nil() sentinel, 1
// is always the Header() sentinel.
type Handle = int32

const (
	nilHandle    Handle = 0
	headerHandle Handle = 1

	// noHandle marks "no neighbor" in the free-list's prev/next links and
	// "empty" in the free-list head. It cannot collide with a slot index.
	noHandle Handle = -1
)

// cnode is one slot of the compact allocator's backing vector. It packs
// color into the parent field's high bit and reuses left/right as the
// doubly-linked free-list's next/prev once the slot is deleted: left is
// the next deleted slot and right the previous one, noHandle at either
// end.
type cnode[E any] struct {
	entry        E
	left, right  Handle
	parentPacked uint32
}

func packParent(parent Handle, c Color) uint32 {
	p := uint32(parent) & indexMask
	if c == Black {
		p |= colorBit
	}
	return p
}

func (n *cnode[E]) parent() Handle { return Handle(n.parentPacked & indexMask) }
func (n *cnode[E]) color() Color {
	if n.parentPacked&colorBit != 0 {
		return Black
	}
	return Red
}
func (n *cnode[E]) setParent(p Handle) { n.parentPacked = packParent(p, n.color()) }
func (n *cnode[E]) setColor(c Color)   { n.parentPacked = packParent(n.parent(), c) }
func (n *cnode[E]) deleted() bool      { return n.parentPacked&indexMask == deletedMarker }
func (n *cnode[E]) markDeleted()       { n.parentPacked = deletedMarker }

// CompactAlloc is the arena-style back-end: nodes live inside a single
// growable vector and handles are integer indices, not pointers. Freed
// slots are recycled through an intrusive free-list instead of shrinking
// the vector; [CompactAlloc.ShrinkToFit] is the only operation that may
// invalidate handles.
//
// CompactAlloc is not safe for concurrent use; all mutating operations
// assume exclusive access.
type CompactAlloc[E any, W ordnum.Num] struct {
	nodes    vecx.Vec[cnode[E]]
	sums     *vecx.ReallocVec[W]
	arity    int
	freeHead Handle // noHandle when the free-list is empty
	live     int
}

var _ Allocator[Handle, int, int] = (*CompactAlloc[int, int])(nil)

// NewCompactAlloc constructs a CompactAlloc for entries of type E holding
// weight vectors of length arity. The backing node vector is a
// [vecx.ReallocVec] when E's shape is bitwise-relocatable, a
// [vecx.StackedVec] otherwise — decided once, here, never at runtime.
func NewCompactAlloc[E any, W ordnum.Num](arity int) *CompactAlloc[E, W] {
	a := &CompactAlloc[E, W]{
		arity:    arity,
		sums:     vecx.NewReallocVec[W](),
		freeHead: noHandle,
	}

	if vecx.IsRelocatable[cnode[E]]() {
		a.nodes = vecx.NewReallocVec[cnode[E]]()
	} else {
		a.nodes = vecx.NewStackedVec[cnode[E]]()
	}

	// Slot 0: Nil. Slot 1: Header, whose Right starts out pointing at Nil.
	a.nodes.Push(cnode[E]{left: nilHandle, right: nilHandle, parentPacked: packParent(nilHandle, Black)})
	a.nodes.Push(cnode[E]{left: nilHandle, right: nilHandle, parentPacked: packParent(nilHandle, Black)})
	a.growSums(2)

	return a
}

func (a *CompactAlloc[E, W]) growSums(slots int) {
	for a.sums.Len() < slots*a.arity {
		var zero W
		a.sums.Push(zero)
	}
}

func (a *CompactAlloc[E, W]) Nil() Handle    { return nilHandle }
func (a *CompactAlloc[E, W]) Header() Handle { return headerHandle }

func (a *CompactAlloc[E, W]) New(entry E, arity int) (Handle, error) {
	if a.freeHead >= 0 {
		h := a.freeHead
		a.unlinkFree(h)

		*a.nodes.Get(int(h)) = cnode[E]{entry: entry, left: nilHandle, right: nilHandle, parentPacked: packParent(nilHandle, Red)}
		a.zeroSum(h)
		a.live++

		return h, nil
	}

	if a.nodes.Len() >= maxLiveNodes+2 {
		return nilHandle, ordstat.New(ordstat.Capacity, nil)
	}

	h := Handle(a.nodes.Len())
	a.nodes.Push(cnode[E]{entry: entry, left: nilHandle, right: nilHandle, parentPacked: packParent(nilHandle, Red)})
	a.growSums(int(h) + 1)
	a.live++

	return h, nil
}

func (a *CompactAlloc[E, W]) zeroSum(h Handle) {
	base := int(h) * a.arity
	var zero W
	for i := 0; i < a.arity; i++ {
		a.sums.Set(base+i, zero)
	}
}

func (a *CompactAlloc[E, W]) Free(h Handle) {
	slot := a.nodes.Get(int(h))
	var zero E
	slot.entry = zero
	slot.markDeleted()

	slot.left = a.freeHead
	slot.right = noHandle
	if a.freeHead >= 0 {
		a.nodes.Get(int(a.freeHead)).right = h
	}
	a.freeHead = h
	a.live--
}

func (a *CompactAlloc[E, W]) Entry(h Handle) *E { return &a.nodes.Get(int(h)).entry }

func (a *CompactAlloc[E, W]) Left(h Handle) Handle       { return a.nodes.Get(int(h)).left }
func (a *CompactAlloc[E, W]) SetLeft(h, child Handle)    { a.nodes.Get(int(h)).left = child }
func (a *CompactAlloc[E, W]) Right(h Handle) Handle      { return a.nodes.Get(int(h)).right }
func (a *CompactAlloc[E, W]) SetRight(h, child Handle)   { a.nodes.Get(int(h)).right = child }
func (a *CompactAlloc[E, W]) Parent(h Handle) Handle     { return a.nodes.Get(int(h)).parent() }
func (a *CompactAlloc[E, W]) SetParent(h, parent Handle) { a.nodes.Get(int(h)).setParent(parent) }
func (a *CompactAlloc[E, W]) Color(h Handle) Color       { return a.nodes.Get(int(h)).color() }
func (a *CompactAlloc[E, W]) SetColor(h Handle, c Color) { a.nodes.Get(int(h)).setColor(c) }

func (a *CompactAlloc[E, W]) Sum(h Handle) []W {
	base := int(h) * a.arity
	return a.sums.Raw()[base : base+a.arity]
}

func (a *CompactAlloc[E, W]) SetSum(h Handle, sum []W) {
	copy(a.Sum(h), sum)
}

func (a *CompactAlloc[E, W]) Len() int { return a.live }

func (a *CompactAlloc[E, W]) ClearTree() {
	a.SetRight(headerHandle, nilHandle)
	a.freeHead = noHandle
	a.live = 0

	a.nodes.Truncate(2)
	a.nodes.ShrinkTo(2)
	a.sums.Truncate(2 * a.arity)
	a.sums.ShrinkTo(2 * a.arity)
}

// IsDeleted reports whether slot h is on the free-list. Exposed for the
// owning tree's free-list accounting check.
func (a *CompactAlloc[E, W]) IsDeleted(h Handle) bool { return a.nodes.Get(int(h)).deleted() }

// Size returns the number of slots in the backing vector, sentinels
// included.
func (a *CompactAlloc[E, W]) Size() int { return a.nodes.Len() }

// FreeListHead returns the current free-list head, or a negative handle
// if the free-list is empty.
func (a *CompactAlloc[E, W]) FreeListHead() Handle { return a.freeHead }

// ShrinkToFit compacts the backing vector, moving live nodes out of the
// tail into deleted slots near the front until the free-list is empty,
// then releases the vector's spare capacity. It is the sole handle-
// invalidating operation in this allocator: callers must
// discard every handle they hold before calling it and re-derive them
// (e.g. via [rbtree.Tree.First]) afterward.
//
// fixup is called once per moved node, (from, to), so the caller (the
// owning Tree) can rewrite the neighbors' left/right/parent links to
// point at the node's new slot; cnode's own left/right/parent are moved
// verbatim by this method, which does not understand tree topology.
func (a *CompactAlloc[E, W]) ShrinkToFit(fixup func(from, to Handle)) {
	before := a.nodes.Len()

	for a.freeHead >= 0 {
		last := Handle(a.nodes.Len() - 1)

		if a.nodes.Get(int(last)).deleted() {
			a.unlinkFree(last)
			a.dropLast()
			continue
		}

		free := a.freeHead
		a.unlinkFree(free)

		*a.nodes.Get(int(free)) = *a.nodes.Get(int(last))
		copy(a.Sum(free), a.Sum(last))
		fixup(last, free)
		debug.Log(nil, "shrinkToFit", "moved slot %d into %d", last, free)

		a.dropLast()
	}

	a.nodes.ShrinkTo(a.nodes.Len())
	a.sums.Truncate(a.nodes.Len() * a.arity)
	a.sums.ShrinkTo(a.nodes.Len() * a.arity)

	debug.Log(nil, "shrinkToFit", "slots %d -> %d", before, a.nodes.Len())
}

func (a *CompactAlloc[E, W]) unlinkFree(h Handle) {
	slot := a.nodes.Get(int(h))
	prev, next := slot.right, slot.left

	if prev >= 0 {
		a.nodes.Get(int(prev)).left = next
	} else {
		a.freeHead = next
	}
	if next >= 0 {
		a.nodes.Get(int(next)).right = prev
	}
}

func (a *CompactAlloc[E, W]) dropLast() {
	a.nodes.Truncate(a.nodes.Len() - 1)
}
