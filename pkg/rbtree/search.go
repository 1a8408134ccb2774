package rbtree

import "github.com/flier/ordstat/pkg/opt"

// Find returns a handle to an entry whose key equals k, or Nil if none
// exists. For Multi trees, any one matching entry may be returned; use
// LowerBound/UpperBound to enumerate every match.
func (t *Tree[H, K, V, W]) Find(k K) H {
	a := t.alloc
	h := t.LowerBound(k)
	if h == a.Nil() || !t.equalKey(t.key(h), k) {
		return a.Nil()
	}
	return h
}

// LowerBound returns a handle to the first entry with key >= k in
// in-order position, or Nil if no such entry exists.
func (t *Tree[H, K, V, W]) LowerBound(k K) H {
	a := t.alloc
	result := a.Nil()

	for cur := t.root(); cur != a.Nil(); {
		if t.less(t.key(cur), k) {
			cur = a.Right(cur)
		} else {
			result = cur
			cur = a.Left(cur)
		}
	}

	return result
}

// UpperBound returns a handle to the first entry with key > k in
// in-order position, or Nil if no such entry exists.
func (t *Tree[H, K, V, W]) UpperBound(k K) H {
	a := t.alloc
	result := a.Nil()

	for cur := t.root(); cur != a.Nil(); {
		if t.less(k, t.key(cur)) {
			result = cur
			cur = a.Left(cur)
		} else {
			cur = a.Right(cur)
		}
	}

	return result
}

// EqualRange returns [LowerBound(k), UpperBound(k)).
func (t *Tree[H, K, V, W]) EqualRange(k K) (first, last H) {
	return t.LowerBound(k), t.UpperBound(k)
}

// Count returns the number of entries with key equal to k.
func (t *Tree[H, K, V, W]) Count(k K) int {
	a := t.alloc
	n := 0
	for h := t.LowerBound(k); h != a.Nil() && t.equalKey(t.key(h), k); h = t.Next(h) {
		n++
	}
	return n
}

// TryFind is Find for callers who prefer an explicit Option over
// overloading the Nil handle with "not found".
func (t *Tree[H, K, V, W]) TryFind(k K) opt.Option[H] {
	h := t.Find(k)
	if h == t.alloc.Nil() {
		return opt.None[H]()
	}
	return opt.Some(h)
}

// Contains reports whether any entry has key equal to k.
func (t *Tree[H, K, V, W]) Contains(k K) bool { return t.Find(k) != t.alloc.Nil() }
