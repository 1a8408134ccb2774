// Package ordmultiset provides OrderedMultiSet, a balanced multiset that
// allows duplicate keys, each occurrence stable-ordered after every
// existing occurrence of the same key.
package ordmultiset

import (
	"github.com/flier/ordstat/pkg/nodealloc"
	"github.com/flier/ordstat/pkg/ordnum"
	"github.com/flier/ordstat/pkg/rbtree"
)

// OrderedMultiSet is a balanced multiset of keys of type K. See
// [ordset.OrderedSet] for the handle-type and construction pattern this
// mirrors.
//
// OrderedMultiSet is not safe for concurrent use.
type OrderedMultiSet[H comparable, K any, W ordnum.Num] struct {
	tree *rbtree.Tree[H, K, struct{}, W]
}

func wrap[K any, W ordnum.Num](weight func(K) []W) func(K, struct{}) []W {
	return func(k K, _ struct{}) []W { return weight(k) }
}

// New constructs an OrderedMultiSet backed by a pointer-style node
// allocator.
func New[K any, W ordnum.Num](less func(a, b K) bool, weight func(K) []W, arity int) *OrderedMultiSet[nodealloc.PtrHandle[rbtree.Entry[K, struct{}], W], K, W] {
	alloc := nodealloc.NewPtrAlloc[rbtree.Entry[K, struct{}], W]()
	tree := rbtree.New[nodealloc.PtrHandle[rbtree.Entry[K, struct{}], W], K, struct{}, W](alloc, less, wrap(weight), arity, rbtree.Multi)
	return &OrderedMultiSet[nodealloc.PtrHandle[rbtree.Entry[K, struct{}], W], K, W]{tree: tree}
}

// NewCompact is New, but backed by the compact-arena node allocator.
func NewCompact[K any, W ordnum.Num](less func(a, b K) bool, weight func(K) []W, arity int) *OrderedMultiSet[nodealloc.Handle, K, W] {
	alloc := nodealloc.NewCompactAlloc[rbtree.Entry[K, struct{}], W](arity)
	tree := rbtree.New[nodealloc.Handle, K, struct{}, W](alloc, less, wrap(weight), arity, rbtree.Multi)
	return &OrderedMultiSet[nodealloc.Handle, K, W]{tree: tree}
}

// Len returns the number of keys (with multiplicity) in the set.
func (s *OrderedMultiSet[H, K, W]) Len() int { return s.tree.Len() }

// Empty reports whether the set holds no keys.
func (s *OrderedMultiSet[H, K, W]) Empty() bool { return s.tree.Empty() }

// Clear removes every key.
func (s *OrderedMultiSet[H, K, W]) Clear() { s.tree.Clear() }

// Consistent reports whether the set is still well-defined; see
// [rbtree.Tree.Consistent].
func (s *OrderedMultiSet[H, K, W]) Consistent() bool { return s.tree.Consistent() }

// Insert always adds a new occurrence of key, after every existing
// occurrence of the same key.
func (s *OrderedMultiSet[H, K, W]) Insert(key K) error {
	_, _, err := s.tree.Insert(key, struct{}{})
	return err
}

// EraseOne removes a single occurrence of key (the first in in-order
// position), reporting whether one was found.
func (s *OrderedMultiSet[H, K, W]) EraseOne(key K) (bool, error) {
	first, last := s.tree.EqualRange(key)
	if first == last {
		return false, nil
	}

	if _, err := s.tree.Erase(first); err != nil {
		return true, err
	}

	return true, nil
}

// EraseAll removes every occurrence of key, returning the count removed.
func (s *OrderedMultiSet[H, K, W]) EraseAll(key K) (int, error) { return s.tree.EraseKey(key) }

// Count returns the number of occurrences of key.
func (s *OrderedMultiSet[H, K, W]) Count(key K) int { return s.tree.Count(key) }

// Contains reports whether any occurrence of key is present.
func (s *OrderedMultiSet[H, K, W]) Contains(key K) bool { return s.tree.Contains(key) }

// LowerBound returns the smallest present key >= key, and whether one
// exists.
func (s *OrderedMultiSet[H, K, W]) LowerBound(key K) (K, bool) {
	h := s.tree.LowerBound(key)
	if h == s.tree.Nil() {
		var zero K
		return zero, false
	}
	return s.tree.Key(h), true
}

// UpperBound returns the smallest present key > key, and whether one
// exists.
func (s *OrderedMultiSet[H, K, W]) UpperBound(key K) (K, bool) {
	h := s.tree.UpperBound(key)
	if h == s.tree.Nil() {
		var zero K
		return zero, false
	}
	return s.tree.Key(h), true
}

// EqualRange returns a range-over-func iterator over every occurrence of
// key, in stable insertion order.
func (s *OrderedMultiSet[H, K, W]) EqualRange(key K) func(yield func(K) bool) {
	return func(yield func(K) bool) {
		first, last := s.tree.EqualRange(key)
		for h := first; h != last; h = s.tree.Next(h) {
			if !yield(s.tree.Key(h)) {
				return
			}
		}
	}
}

// SumBefore returns the componentwise sum of the weight function over
// every key strictly less than key.
func (s *OrderedMultiSet[H, K, W]) SumBefore(key K) ([]W, error) { return s.tree.SumBefore(key) }

// TotalSum returns the componentwise sum of the weight function over
// every key in the set.
func (s *OrderedMultiSet[H, K, W]) TotalSum() []W { return s.tree.TotalSum() }

// Check verifies every structural and augmentation invariant; see
// [rbtree.Tree.Check].
func (s *OrderedMultiSet[H, K, W]) Check(tolerance float64) error { return s.tree.Check(tolerance) }

// ShrinkToFit compacts the backing storage when this set was built with
// [NewCompact]; see [rbtree.Tree.ShrinkToFit].
func (s *OrderedMultiSet[H, K, W]) ShrinkToFit() { s.tree.ShrinkToFit() }

// All returns a range-over-func iterator yielding keys in ascending
// order, duplicates included.
func (s *OrderedMultiSet[H, K, W]) All() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		s.tree.All()(func(_ H, k K, _ struct{}) bool { return yield(k) })
	}
}
