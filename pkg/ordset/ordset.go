// Package ordset provides OrderedSet, a balanced set of unique keys
// augmented with an O(log N) partial-sum query over a caller-supplied
// weight function.
package ordset

import (
	"github.com/flier/ordstat/pkg/nodealloc"
	"github.com/flier/ordstat/pkg/ordnum"
	"github.com/flier/ordstat/pkg/rbtree"
)

// OrderedSet is a balanced set of unique keys of type K, each
// contributing a weight vector of W-valued components. H is the node
// handle type, fixed by which constructor built the set ([New] for
// [nodealloc.PtrAlloc], [NewCompact] for [nodealloc.CompactAlloc]).
//
// OrderedSet is not safe for concurrent use.
type OrderedSet[H comparable, K any, W ordnum.Num] struct {
	tree *rbtree.Tree[H, K, struct{}, W]
}

func wrap[K any, W ordnum.Num](weight func(K) []W) func(K, struct{}) []W {
	return func(k K, _ struct{}) []W { return weight(k) }
}

// New constructs an OrderedSet backed by a pointer-style node allocator,
// ordering keys with less and weighing each key with weight, which must
// always return a slice of length arity.
func New[K any, W ordnum.Num](less func(a, b K) bool, weight func(K) []W, arity int) *OrderedSet[nodealloc.PtrHandle[rbtree.Entry[K, struct{}], W], K, W] {
	alloc := nodealloc.NewPtrAlloc[rbtree.Entry[K, struct{}], W]()
	tree := rbtree.New[nodealloc.PtrHandle[rbtree.Entry[K, struct{}], W], K, struct{}, W](alloc, less, wrap(weight), arity, rbtree.Unique)
	return &OrderedSet[nodealloc.PtrHandle[rbtree.Entry[K, struct{}], W], K, W]{tree: tree}
}

// NewCompact is New, but backed by the compact-arena node allocator,
// trading stable pointer handles for lower per-node overhead.
func NewCompact[K any, W ordnum.Num](less func(a, b K) bool, weight func(K) []W, arity int) *OrderedSet[nodealloc.Handle, K, W] {
	alloc := nodealloc.NewCompactAlloc[rbtree.Entry[K, struct{}], W](arity)
	tree := rbtree.New[nodealloc.Handle, K, struct{}, W](alloc, less, wrap(weight), arity, rbtree.Unique)
	return &OrderedSet[nodealloc.Handle, K, W]{tree: tree}
}

// NewSimple adapts a scalar weight function for a D=1 pointer-backed
// set.
func NewSimple[K any, W ordnum.Num](less func(a, b K) bool, weight func(K) W) *OrderedSet[nodealloc.PtrHandle[rbtree.Entry[K, struct{}], W], K, W] {
	return New(less, func(k K) []W { return []W{weight(k)} }, 1)
}

// Len returns the number of keys in the set.
func (s *OrderedSet[H, K, W]) Len() int { return s.tree.Len() }

// Empty reports whether the set holds no keys.
func (s *OrderedSet[H, K, W]) Empty() bool { return s.tree.Empty() }

// Clear removes every key.
func (s *OrderedSet[H, K, W]) Clear() { s.tree.Clear() }

// Consistent reports whether the set is still well-defined; see
// [rbtree.Tree.Consistent].
func (s *OrderedSet[H, K, W]) Consistent() bool { return s.tree.Consistent() }

// Insert adds key, returning false if it was already present.
func (s *OrderedSet[H, K, W]) Insert(key K) (inserted bool, err error) {
	_, inserted, err = s.tree.Insert(key, struct{}{})
	return inserted, err
}

// Erase removes key, returning whether it was present.
func (s *OrderedSet[H, K, W]) Erase(key K) (bool, error) {
	n, err := s.tree.EraseKey(key)
	return n > 0, err
}

// Contains reports whether key is present.
func (s *OrderedSet[H, K, W]) Contains(key K) bool { return s.tree.Contains(key) }

// LowerBound returns the smallest present key >= key, and whether one
// exists.
func (s *OrderedSet[H, K, W]) LowerBound(key K) (K, bool) {
	h := s.tree.LowerBound(key)
	if h == s.tree.Nil() {
		var zero K
		return zero, false
	}
	return s.tree.Key(h), true
}

// UpperBound returns the smallest present key > key, and whether one
// exists.
func (s *OrderedSet[H, K, W]) UpperBound(key K) (K, bool) {
	h := s.tree.UpperBound(key)
	if h == s.tree.Nil() {
		var zero K
		return zero, false
	}
	return s.tree.Key(h), true
}

// Count returns 1 if key is present, 0 otherwise.
func (s *OrderedSet[H, K, W]) Count(key K) int { return s.tree.Count(key) }

// EqualRange returns a range-over-func iterator over every present key
// equal to key — for a unique set, zero or one of them.
func (s *OrderedSet[H, K, W]) EqualRange(key K) func(yield func(K) bool) {
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
func (s *OrderedSet[H, K, W]) SumBefore(key K) ([]W, error) { return s.tree.SumBefore(key) }

// TotalSum returns the componentwise sum of the weight function over
// every key in the set.
func (s *OrderedSet[H, K, W]) TotalSum() []W { return s.tree.TotalSum() }

// Check verifies every structural and augmentation invariant; see
// [rbtree.Tree.Check].
func (s *OrderedSet[H, K, W]) Check(tolerance float64) error { return s.tree.Check(tolerance) }

// ShrinkToFit compacts the backing storage when this set was built with
// [NewCompact]; see [rbtree.Tree.ShrinkToFit].
func (s *OrderedSet[H, K, W]) ShrinkToFit() { s.tree.ShrinkToFit() }

// All returns a range-over-func iterator yielding keys in ascending
// order.
func (s *OrderedSet[H, K, W]) All() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		s.tree.All()(func(_ H, k K, _ struct{}) bool { return yield(k) })
	}
}
