// Package ordmultimap provides OrderedMultiMap, a balanced map that
// allows duplicate keys, each occurrence augmented with an O(log N)
// partial-sum query over a caller-supplied weight function.
package ordmultimap

import (
	"github.com/flier/ordstat/pkg/nodealloc"
	"github.com/flier/ordstat/pkg/ordnum"
	"github.com/flier/ordstat/pkg/rbtree"
)

// OrderedMultiMap is a balanced multimap from keys of type K to values
// of type V. See [ordmap.OrderedMap] for the handle-type and
// construction pattern this mirrors.
//
// OrderedMultiMap is not safe for concurrent use.
type OrderedMultiMap[H comparable, K, V any, W ordnum.Num] struct {
	tree *rbtree.Tree[H, K, V, W]
}

// New constructs an OrderedMultiMap backed by a pointer-style node
// allocator.
func New[K, V any, W ordnum.Num](less func(a, b K) bool, weight func(K, V) []W, arity int) *OrderedMultiMap[nodealloc.PtrHandle[rbtree.Entry[K, V], W], K, V, W] {
	alloc := nodealloc.NewPtrAlloc[rbtree.Entry[K, V], W]()
	tree := rbtree.New[nodealloc.PtrHandle[rbtree.Entry[K, V], W], K, V, W](alloc, less, weight, arity, rbtree.Multi)
	return &OrderedMultiMap[nodealloc.PtrHandle[rbtree.Entry[K, V], W], K, V, W]{tree: tree}
}

// NewCompact is New, but backed by the compact-arena node allocator.
func NewCompact[K, V any, W ordnum.Num](less func(a, b K) bool, weight func(K, V) []W, arity int) *OrderedMultiMap[nodealloc.Handle, K, V, W] {
	alloc := nodealloc.NewCompactAlloc[rbtree.Entry[K, V], W](arity)
	tree := rbtree.New[nodealloc.Handle, K, V, W](alloc, less, weight, arity, rbtree.Multi)
	return &OrderedMultiMap[nodealloc.Handle, K, V, W]{tree: tree}
}

// Len returns the number of entries (with multiplicity) in the map.
func (m *OrderedMultiMap[H, K, V, W]) Len() int { return m.tree.Len() }

// Empty reports whether the map holds no entries.
func (m *OrderedMultiMap[H, K, V, W]) Empty() bool { return m.tree.Empty() }

// Clear removes every entry.
func (m *OrderedMultiMap[H, K, V, W]) Clear() { m.tree.Clear() }

// Consistent reports whether the map is still well-defined; see
// [rbtree.Tree.Consistent].
func (m *OrderedMultiMap[H, K, V, W]) Consistent() bool { return m.tree.Consistent() }

// Insert always adds a new (key, value) entry, after every existing
// entry with the same key.
func (m *OrderedMultiMap[H, K, V, W]) Insert(key K, value V) error {
	_, _, err := m.tree.Insert(key, value)
	return err
}

// EraseOne removes a single entry with the given key (the first in
// in-order position), reporting whether one was found.
func (m *OrderedMultiMap[H, K, V, W]) EraseOne(key K) (bool, error) {
	first, last := m.tree.EqualRange(key)
	if first == last {
		return false, nil
	}

	if _, err := m.tree.Erase(first); err != nil {
		return true, err
	}

	return true, nil
}

// EraseAll removes every entry with the given key, returning the count
// removed.
func (m *OrderedMultiMap[H, K, V, W]) EraseAll(key K) (int, error) { return m.tree.EraseKey(key) }

// Count returns the number of entries with the given key.
func (m *OrderedMultiMap[H, K, V, W]) Count(key K) int { return m.tree.Count(key) }

// Contains reports whether any entry has the given key.
func (m *OrderedMultiMap[H, K, V, W]) Contains(key K) bool { return m.tree.Contains(key) }

// LowerBound returns the key and value of the first entry with key >=
// key in in-order position, and whether one exists.
func (m *OrderedMultiMap[H, K, V, W]) LowerBound(key K) (K, V, bool) {
	h := m.tree.LowerBound(key)
	if h == m.tree.Nil() {
		var zk K
		var zv V
		return zk, zv, false
	}
	return m.tree.Key(h), m.tree.Value(h), true
}

// UpperBound returns the key and value of the first entry with key > key
// in in-order position, and whether one exists.
func (m *OrderedMultiMap[H, K, V, W]) UpperBound(key K) (K, V, bool) {
	h := m.tree.UpperBound(key)
	if h == m.tree.Nil() {
		var zk K
		var zv V
		return zk, zv, false
	}
	return m.tree.Key(h), m.tree.Value(h), true
}

// EqualRange returns a range-over-func iterator over every entry with the
// given key, values in stable insertion order.
func (m *OrderedMultiMap[H, K, V, W]) EqualRange(key K) func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		first, last := m.tree.EqualRange(key)
		for h := first; h != last; h = m.tree.Next(h) {
			if !yield(m.tree.Key(h), m.tree.Value(h)) {
				return
			}
		}
	}
}

// SumBefore returns the componentwise sum of the weight function over
// every entry with key strictly less than key.
func (m *OrderedMultiMap[H, K, V, W]) SumBefore(key K) ([]W, error) { return m.tree.SumBefore(key) }

// TotalSum returns the componentwise sum of the weight function over
// every entry in the map.
func (m *OrderedMultiMap[H, K, V, W]) TotalSum() []W { return m.tree.TotalSum() }

// Check verifies every structural and augmentation invariant; see
// [rbtree.Tree.Check].
func (m *OrderedMultiMap[H, K, V, W]) Check(tolerance float64) error {
	return m.tree.Check(tolerance)
}

// ShrinkToFit compacts the backing storage when this map was built with
// [NewCompact]; see [rbtree.Tree.ShrinkToFit].
func (m *OrderedMultiMap[H, K, V, W]) ShrinkToFit() { m.tree.ShrinkToFit() }

// All returns a range-over-func iterator yielding (key, value) pairs in
// ascending key order, duplicates included.
func (m *OrderedMultiMap[H, K, V, W]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		m.tree.All()(func(_ H, k K, v V) bool { return yield(k, v) })
	}
}
