// Package ordmap provides OrderedMap, a balanced map of unique keys to
// values, each entry augmented with an O(log N) partial-sum query over a
// caller-supplied weight function.
package ordmap

import (
	"github.com/flier/ordstat/pkg/nodealloc"
	"github.com/flier/ordstat/pkg/ordnum"
	"github.com/flier/ordstat/pkg/rbtree"
)

// OrderedMap is a balanced map from keys of type K to values of type V.
// H is the node handle type, fixed by which constructor built the map
// ([New] for [nodealloc.PtrAlloc], [NewCompact] for
// [nodealloc.CompactAlloc]).
//
// Values may be mutated only through [OrderedMap.UpdateValue] or
// [OrderedMap.SetValue] — never by mutating a value obtained from
// [OrderedMap.At] in place — because the weight function may depend on
// V.
//
// OrderedMap is not safe for concurrent use.
type OrderedMap[H comparable, K, V any, W ordnum.Num] struct {
	tree *rbtree.Tree[H, K, V, W]
}

// New constructs an OrderedMap backed by a pointer-style node allocator,
// ordering keys with less and weighing each (key, value) pair with
// weight, which must always return a slice of length arity.
func New[K, V any, W ordnum.Num](less func(a, b K) bool, weight func(K, V) []W, arity int) *OrderedMap[nodealloc.PtrHandle[rbtree.Entry[K, V], W], K, V, W] {
	alloc := nodealloc.NewPtrAlloc[rbtree.Entry[K, V], W]()
	tree := rbtree.New[nodealloc.PtrHandle[rbtree.Entry[K, V], W], K, V, W](alloc, less, weight, arity, rbtree.Unique)
	return &OrderedMap[nodealloc.PtrHandle[rbtree.Entry[K, V], W], K, V, W]{tree: tree}
}

// NewCompact is New, but backed by the compact-arena node allocator.
func NewCompact[K, V any, W ordnum.Num](less func(a, b K) bool, weight func(K, V) []W, arity int) *OrderedMap[nodealloc.Handle, K, V, W] {
	alloc := nodealloc.NewCompactAlloc[rbtree.Entry[K, V], W](arity)
	tree := rbtree.New[nodealloc.Handle, K, V, W](alloc, less, weight, arity, rbtree.Unique)
	return &OrderedMap[nodealloc.Handle, K, V, W]{tree: tree}
}

// NewSimple adapts a scalar weight function for a D=1 pointer-backed
// map.
func NewSimple[K, V any, W ordnum.Num](less func(a, b K) bool, weight func(K, V) W) *OrderedMap[nodealloc.PtrHandle[rbtree.Entry[K, V], W], K, V, W] {
	return New(less, rbtree.Simple[K, V, W](weight), 1)
}

// Len returns the number of entries in the map.
func (m *OrderedMap[H, K, V, W]) Len() int { return m.tree.Len() }

// Empty reports whether the map holds no entries.
func (m *OrderedMap[H, K, V, W]) Empty() bool { return m.tree.Empty() }

// Clear removes every entry.
func (m *OrderedMap[H, K, V, W]) Clear() { m.tree.Clear() }

// Consistent reports whether the map is still well-defined; see
// [rbtree.Tree.Consistent].
func (m *OrderedMap[H, K, V, W]) Consistent() bool { return m.tree.Consistent() }

// Insert adds (key, value), returning false if key was already present
// (in which case the map is unchanged).
func (m *OrderedMap[H, K, V, W]) Insert(key K, value V) (inserted bool, err error) {
	_, inserted, err = m.tree.Insert(key, value)
	return inserted, err
}

// Erase removes key, returning whether it was present.
func (m *OrderedMap[H, K, V, W]) Erase(key K) (bool, error) {
	n, err := m.tree.EraseKey(key)
	return n > 0, err
}

// At returns the value stored for key, and whether key was present.
func (m *OrderedMap[H, K, V, W]) At(key K) (V, bool) {
	h := m.tree.Find(key)
	if h == m.tree.Nil() {
		var zero V
		return zero, false
	}
	return m.tree.Value(h), true
}

// Contains reports whether key is present.
func (m *OrderedMap[H, K, V, W]) Contains(key K) bool { return m.tree.Contains(key) }

// GetOrInsert returns the value stored for key, inserting (key,
// ifAbsent) first if key was not already present.
func (m *OrderedMap[H, K, V, W]) GetOrInsert(key K, ifAbsent V) (V, error) {
	h := m.tree.Find(key)
	if h != m.tree.Nil() {
		return m.tree.Value(h), nil
	}

	h, _, err := m.tree.Insert(key, ifAbsent)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.tree.Value(h), nil
}

// UpdateValue overwrites the value stored at an existing key and
// re-propagates subtree sums. Returns a KeyAbsent error, and inserts
// nothing, if key is not present; SetValue inserts in that case.
func (m *OrderedMap[H, K, V, W]) UpdateValue(key K, value V) error {
	h := m.tree.Find(key)
	if h == m.tree.Nil() {
		return keyAbsent()
	}
	return m.tree.UpdateValue(h, value)
}

// SetValue upserts value at key: updates the existing entry if key is
// present, otherwise inserts a fresh one. Returns whether a new entry
// was inserted.
func (m *OrderedMap[H, K, V, W]) SetValue(key K, value V) (bool, error) {
	return m.tree.SetValue(key, value)
}

// LowerBound returns the key and value of the smallest present key >=
// key, and whether one exists.
func (m *OrderedMap[H, K, V, W]) LowerBound(key K) (K, V, bool) {
	h := m.tree.LowerBound(key)
	if h == m.tree.Nil() {
		var zk K
		var zv V
		return zk, zv, false
	}
	return m.tree.Key(h), m.tree.Value(h), true
}

// UpperBound returns the key and value of the smallest present key >
// key, and whether one exists.
func (m *OrderedMap[H, K, V, W]) UpperBound(key K) (K, V, bool) {
	h := m.tree.UpperBound(key)
	if h == m.tree.Nil() {
		var zk K
		var zv V
		return zk, zv, false
	}
	return m.tree.Key(h), m.tree.Value(h), true
}

// Count returns 1 if key is present, 0 otherwise.
func (m *OrderedMap[H, K, V, W]) Count(key K) int { return m.tree.Count(key) }

// EqualRange returns a range-over-func iterator over every entry with the
// given key — for a unique map, zero or one of them.
func (m *OrderedMap[H, K, V, W]) EqualRange(key K) func(yield func(K, V) bool) {
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
func (m *OrderedMap[H, K, V, W]) SumBefore(key K) ([]W, error) { return m.tree.SumBefore(key) }

// TotalSum returns the componentwise sum of the weight function over
// every entry in the map.
func (m *OrderedMap[H, K, V, W]) TotalSum() []W { return m.tree.TotalSum() }

// Check verifies every structural and augmentation invariant; see
// [rbtree.Tree.Check].
func (m *OrderedMap[H, K, V, W]) Check(tolerance float64) error { return m.tree.Check(tolerance) }

// ShrinkToFit compacts the backing storage when this map was built with
// [NewCompact]; see [rbtree.Tree.ShrinkToFit].
func (m *OrderedMap[H, K, V, W]) ShrinkToFit() { m.tree.ShrinkToFit() }

// All returns a range-over-func iterator yielding (key, value) pairs in
// ascending key order.
func (m *OrderedMap[H, K, V, W]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		m.tree.All()(func(_ H, k K, v V) bool { return yield(k, v) })
	}
}
