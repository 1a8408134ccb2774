package rbtree

// First returns the handle of the entry with the smallest key, or Nil if
// the tree is empty.
func (t *Tree[H, K, V, W]) First() H {
	a := t.alloc
	if t.root() == a.Nil() {
		return a.Nil()
	}
	return t.minimum(t.root())
}

// Last returns the handle of the entry with the largest key, or Nil if
// the tree is empty.
func (t *Tree[H, K, V, W]) Last() H {
	a := t.alloc
	if t.root() == a.Nil() {
		return a.Nil()
	}
	return t.maximum(t.root())
}

func (t *Tree[H, K, V, W]) minimum(h H) H {
	a := t.alloc
	for a.Left(h) != a.Nil() {
		h = a.Left(h)
	}
	return h
}

func (t *Tree[H, K, V, W]) maximum(h H) H {
	a := t.alloc
	for a.Right(h) != a.Nil() {
		h = a.Right(h)
	}
	return h
}

// Next returns h's in-order successor, Nil if h is the last entry, and
// Nil if h is already Nil.
func (t *Tree[H, K, V, W]) Next(h H) H {
	a := t.alloc
	if h == a.Nil() {
		return a.Nil()
	}

	if a.Right(h) != a.Nil() {
		return t.minimum(a.Right(h))
	}

	n := h
	p := a.Parent(n)
	for p != a.Header() && n == a.Right(p) {
		n = p
		p = a.Parent(n)
	}
	if p == a.Header() {
		return a.Nil()
	}
	return p
}

// Prev returns h's in-order predecessor, and Last() when h is Nil,
// letting an end iterator decrement.
func (t *Tree[H, K, V, W]) Prev(h H) H {
	a := t.alloc
	if h == a.Nil() {
		return t.Last()
	}

	if a.Left(h) != a.Nil() {
		return t.maximum(a.Left(h))
	}

	n := h
	p := a.Parent(n)
	for p != a.Header() && n == a.Left(p) {
		n = p
		p = a.Parent(n)
	}
	if p == a.Header() {
		return a.Nil()
	}
	return p
}

// Key returns h's stored key. h must be a live handle.
func (t *Tree[H, K, V, W]) Key(h H) K { return t.key(h) }

// Value returns h's stored value. h must be a live handle.
func (t *Tree[H, K, V, W]) Value(h H) V { return t.value(h) }

// Sum returns h's stored subtree sum. h must be a live handle.
func (t *Tree[H, K, V, W]) Sum(h H) []W {
	sum := make([]W, t.arity)
	copy(sum, t.alloc.Sum(h))
	return sum
}

// All returns a range-over-func iterator yielding (handle, key, value)
// for every live entry in ascending key order.
func (t *Tree[H, K, V, W]) All() func(yield func(H, K, V) bool) {
	return func(yield func(H, K, V) bool) {
		for h := t.First(); h != t.alloc.Nil(); h = t.Next(h) {
			if !yield(h, t.key(h), t.value(h)) {
				return
			}
		}
	}
}
