package rbtree

import "github.com/flier/ordstat/internal/debug"

// rotateLeft performs a standard left rotation at x, then recomputes
// sum(x) before sum(y) — in that order, because y's new subtree includes
// x. Every other ancestor keeps the same subtree contents.
func (t *Tree[H, K, V, W]) rotateLeft(x H) error {
	a := t.alloc
	y := a.Right(x)

	debug.Log(nil, "rotateLeft", "pivot=%v child=%v", t.key(x), t.key(y))

	a.SetRight(x, a.Left(y))
	if a.Left(y) != a.Nil() {
		a.SetParent(a.Left(y), x)
	}

	p := a.Parent(x)
	a.SetParent(y, p)
	if p == a.Header() {
		a.SetRight(a.Header(), y)
	} else if x == a.Left(p) {
		a.SetLeft(p, y)
	} else {
		a.SetRight(p, y)
	}

	a.SetLeft(y, x)
	a.SetParent(x, y)

	if err := t.recomputeSum(x); err != nil {
		return err
	}
	return t.recomputeSum(y)
}

// rotateRight is the mirror of rotateLeft.
func (t *Tree[H, K, V, W]) rotateRight(x H) error {
	a := t.alloc
	y := a.Left(x)

	debug.Log(nil, "rotateRight", "pivot=%v child=%v", t.key(x), t.key(y))

	a.SetLeft(x, a.Right(y))
	if a.Right(y) != a.Nil() {
		a.SetParent(a.Right(y), x)
	}

	p := a.Parent(x)
	a.SetParent(y, p)
	if p == a.Header() {
		a.SetRight(a.Header(), y)
	} else if x == a.Left(p) {
		a.SetLeft(p, y)
	} else {
		a.SetRight(p, y)
	}

	a.SetRight(y, x)
	a.SetParent(x, y)

	if err := t.recomputeSum(x); err != nil {
		return err
	}
	return t.recomputeSum(y)
}
