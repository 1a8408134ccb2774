package nodealloc

import "github.com/flier/ordstat/pkg/ordnum"

// pnode is one heap-allocated record: one entry, three links, a color, and
// its own subtree-sum vector. The sum vector is a slice allocated apart from
// the record, so each node costs two allocations.
type pnode[E any, W ordnum.Num] struct {
	entry               E
	left, right, parent *pnode[E, W]
	color               Color
	sum                 []W
}

// PtrAlloc is the pointer-style back-end: each node is an individually
// allocated record and a handle is an owning pointer to it. Capacity is
// unbounded up to what the Go runtime's allocator can satisfy; this
// back-end is preferred for containers holding few, large entries.
//
// PtrAlloc is not safe for concurrent use: all mutating methods assume
// the caller (the owning [rbtree.Tree]) holds exclusive access.
type PtrAlloc[E any, W ordnum.Num] struct {
	nilNode    *pnode[E, W]
	headerNode *pnode[E, W]
	live       int
}

var _ Allocator[*pnode[int, int], int, int] = (*PtrAlloc[int, int])(nil)

// PtrHandle is the handle type [PtrAlloc] hands out for entries of type E
// with weight components of type W: an owning pointer to the node record.
// The node record itself stays unexported; callers outside this package
// name the handle only through this alias, so the field layout is never
// part of the API.
type PtrHandle[E any, W ordnum.Num] = *pnode[E, W]

// NewPtrAlloc constructs a PtrAlloc whose sentinels are ready to use.
func NewPtrAlloc[E any, W ordnum.Num]() *PtrAlloc[E, W] {
	a := &PtrAlloc[E, W]{}

	nilNode := &pnode[E, W]{color: Black}
	nilNode.left, nilNode.right, nilNode.parent = nilNode, nilNode, nilNode

	header := &pnode[E, W]{color: Black}
	header.left, header.right, header.parent = nilNode, nilNode, nilNode

	a.nilNode, a.headerNode = nilNode, header

	return a
}

func (a *PtrAlloc[E, W]) Nil() *pnode[E, W]    { return a.nilNode }
func (a *PtrAlloc[E, W]) Header() *pnode[E, W] { return a.headerNode }

func (a *PtrAlloc[E, W]) New(entry E, arity int) (*pnode[E, W], error) {
	n := &pnode[E, W]{
		entry:  entry,
		left:   a.nilNode,
		right:  a.nilNode,
		parent: a.nilNode,
		color:  Red,
		sum:    make([]W, arity),
	}
	a.live++

	return n, nil
}

func (a *PtrAlloc[E, W]) Free(h *pnode[E, W]) {
	h.left, h.right, h.parent = nil, nil, nil
	a.live--
}

func (a *PtrAlloc[E, W]) Entry(h *pnode[E, W]) *E { return &h.entry }

func (a *PtrAlloc[E, W]) Left(h *pnode[E, W]) *pnode[E, W]          { return h.left }
func (a *PtrAlloc[E, W]) SetLeft(h, child *pnode[E, W])             { h.left = child }
func (a *PtrAlloc[E, W]) Right(h *pnode[E, W]) *pnode[E, W]         { return h.right }
func (a *PtrAlloc[E, W]) SetRight(h, child *pnode[E, W])            { h.right = child }
func (a *PtrAlloc[E, W]) Parent(h *pnode[E, W]) *pnode[E, W]        { return h.parent }
func (a *PtrAlloc[E, W]) SetParent(h, parent *pnode[E, W])          { h.parent = parent }
func (a *PtrAlloc[E, W]) Color(h *pnode[E, W]) Color                { return h.color }
func (a *PtrAlloc[E, W]) SetColor(h *pnode[E, W], c Color)          { h.color = c }
func (a *PtrAlloc[E, W]) Sum(h *pnode[E, W]) []W                    { return h.sum }
func (a *PtrAlloc[E, W]) SetSum(h *pnode[E, W], sum []W)            { copy(h.sum, sum) }

func (a *PtrAlloc[E, W]) Len() int { return a.live }

// ClearTree walks the tree structurally, freeing every internal node and
// leaving only the two sentinels.
func (a *PtrAlloc[E, W]) ClearTree() {
	var walk func(n *pnode[E, W])
	walk = func(n *pnode[E, W]) {
		if n == a.nilNode || n == nil {
			return
		}

		walk(n.left)
		walk(n.right)
		a.Free(n)
	}

	walk(a.headerNode.right)
	a.headerNode.right = a.nilNode
}
