// Package rbtree implements the augmented red-black tree at the core of
// every container façade: a balanced BST that additionally maintains, at
// every node, the componentwise sum of a caller-supplied weight function
// over that node's subtree.
//
// Tree is generic over the node handle type H (a pointer for
// [nodealloc.PtrAlloc], an integer index for [nodealloc.CompactAlloc]),
// the key type K, the value type V, and the weight component type W. It
// never allocates nodes itself; all storage goes through a
// [nodealloc.Allocator].
package rbtree

import (
	"github.com/flier/ordstat/pkg/nodealloc"
	"github.com/flier/ordstat/pkg/ordnum"
)

// Entry is one stored (key, value) pair. Set flavors use V = struct{}.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Policy selects whether a tree forbids (Unique) or allows (Multi)
// duplicate keys.
type Policy int

const (
	Unique Policy = iota
	Multi
)

func (p Policy) String() string {
	if p == Unique {
		return "unique"
	}
	return "multi"
}

// Tree is a red-black tree augmented with subtree weight sums.
//
// Tree is not safe for concurrent use: all mutating methods assume the
// caller holds exclusive access.
type Tree[H comparable, K, V any, W ordnum.Num] struct {
	alloc  nodealloc.Allocator[H, Entry[K, V], W]
	less   func(a, b K) bool
	weight func(K, V) []W
	arity  int
	policy Policy

	// consistent goes false the instant an Arithmetic failure leaves a
	// sum propagation incomplete; once false, every further read of this
	// tree is suspect and Check always fails fast.
	consistent bool

	zero []W // immutable all-zero accumulator of length arity
}

// New constructs a Tree over alloc, ordering keys with less and weighing
// entries with weight. arity must equal the length weight always
// produces.
func New[H comparable, K, V any, W ordnum.Num](
	alloc nodealloc.Allocator[H, Entry[K, V], W],
	less func(a, b K) bool,
	weight func(K, V) []W,
	arity int,
	policy Policy,
) *Tree[H, K, V, W] {
	return &Tree[H, K, V, W]{
		alloc:      alloc,
		less:       less,
		weight:     weight,
		arity:      arity,
		policy:     policy,
		consistent: true,
		zero:       make([]W, arity),
	}
}

// Simple adapts a scalar weight function func(K, V) W into the
// length-1-slice form Tree requires, for D=1 containers.
func Simple[K, V any, W ordnum.Num](w func(K, V) W) func(K, V) []W {
	return func(k K, v V) []W { return []W{w(k, v)} }
}

// Arity returns D, the fixed length of every weight vector this tree
// produces.
func (t *Tree[H, K, V, W]) Arity() int { return t.arity }

// Policy returns whether this tree is Unique or Multi.
func (t *Tree[H, K, V, W]) Policy() Policy { return t.policy }

// Len returns the number of live entries.
func (t *Tree[H, K, V, W]) Len() int { return t.alloc.Len() }

// Empty reports whether the tree holds no entries.
func (t *Tree[H, K, V, W]) Empty() bool { return t.alloc.Len() == 0 }

// Consistent reports whether the tree is still in a well-defined state.
// It goes false permanently the moment an Arithmetic error interrupts a
// sum propagation; every further mutating or querying
// call on an inconsistent tree returns stale or undefined results except
// Check, which always reports InvariantViolated, and Clear, which resets
// the tree back to empty and consistent.
func (t *Tree[H, K, V, W]) Consistent() bool { return t.consistent }

// Nil returns the permanent external-link sentinel handle.
func (t *Tree[H, K, V, W]) Nil() H { return t.alloc.Nil() }

// Clear discards every entry, leaving the tree empty and consistent.
func (t *Tree[H, K, V, W]) Clear() {
	t.alloc.ClearTree()
	t.consistent = true
}

func (t *Tree[H, K, V, W]) root() H { return t.alloc.Right(t.alloc.Header()) }

func (t *Tree[H, K, V, W]) key(h H) K { return t.alloc.Entry(h).Key }

func (t *Tree[H, K, V, W]) value(h H) V { return t.alloc.Entry(h).Value }

func (t *Tree[H, K, V, W]) equalKey(a, b K) bool { return !t.less(a, b) && !t.less(b, a) }

// sumOf returns h's stored subtree sum, treating the Nil handle's sum as
// the all-zero vector without requiring the allocator to store one.
func (t *Tree[H, K, V, W]) sumOf(h H) []W {
	if h == t.alloc.Nil() {
		return t.zero
	}
	return t.alloc.Sum(h)
}

func (t *Tree[H, K, V, W]) weightOf(h H) []W { return t.weight(t.key(h), t.value(h)) }
