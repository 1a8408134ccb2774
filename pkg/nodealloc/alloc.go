// Package nodealloc provides two node-storage back-ends for the
// augmented tree: [PtrAlloc], one heap allocation per node, and
// [CompactAlloc], nodes packed into an index-addressable vector.
//
// Both satisfy [Allocator], the full capability set the tree needs:
// allocation, freeing, link/color/sum access, and the two sentinels.
package nodealloc

import "github.com/flier/ordstat/pkg/ordnum"

// Color is a red-black node color.
type Color uint8

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Allocator is the capability set [rbtree.Tree] needs from a node
// storage back-end. H is the handle type: a pointer for [PtrAlloc], an
// integer index for [CompactAlloc]. Both are comparable, so the tree can
// compare handles for identity (e.g. against Nil()) without knowing which
// back-end it's built on.
type Allocator[H comparable, E any, W ordnum.Num] interface {
	// Nil returns the permanent external-link sentinel handle.
	Nil() H

	// Header returns the permanent root-parent sentinel handle; its Right
	// child is the tree's real root (Nil() if the tree is empty).
	Header() H

	// New allocates a fresh node carrying entry, colored red, with a
	// zeroed sum of the given arity, parented and childed to Nil().
	New(entry E, arity int) (H, error)

	// Free releases h back to the allocator. h must not be Nil() or
	// Header().
	Free(h H)

	// Entry returns a pointer to h's stored entry, for reading or for the
	// value-update path. Callers outside pkg/rbtree must not mutate
	// through it directly: value mutation goes through
	// UpdateValue/SetValue, since the weight function may depend on V.
	Entry(h H) *E

	Left(h H) H
	SetLeft(h, child H)
	Right(h H) H
	SetRight(h, child H)
	Parent(h H) H
	SetParent(h, parent H)
	Color(h H) Color
	SetColor(h H, c Color)

	// Sum returns h's stored subtree-sum vector, length == arity.
	Sum(h H) []W
	// SetSum overwrites h's stored subtree-sum vector in place.
	SetSum(h H, sum []W)

	// Len returns the number of live (non-sentinel) nodes.
	Len() int

	// ClearTree frees every live node, leaving only the two sentinels.
	ClearTree()
}
