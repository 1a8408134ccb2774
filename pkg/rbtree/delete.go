package rbtree

import (
	"github.com/flier/ordstat/internal/debug"
	"github.com/flier/ordstat/pkg/nodealloc"
)

// Erase removes h from the tree and returns the handle that was its
// in-order successor before removal (or Nil if h was the last entry).
// When the removed entry has two children, the node occupying h's old
// tree position is relinked to be physically the node that previously
// held the in-order successor's entry — pointer rewiring, not key copy,
// so handles are never invalidated by moving keys, only by freeing the
// node whose handle was passed in.
func (t *Tree[H, K, V, W]) Erase(h H) (H, error) {
	a := t.alloc
	if h == a.Nil() || h == a.Header() {
		return a.Nil(), errInvalidHandle()
	}

	succ := t.Next(h)

	if err := t.deleteNode(h); err != nil {
		return succ, err
	}

	return succ, nil
}

// EraseRange erases every entry in [first, last) and returns last.
func (t *Tree[H, K, V, W]) EraseRange(first, last H) (H, error) {
	h := first
	for h != last {
		next, err := t.Erase(h)
		if err != nil {
			return h, err
		}
		h = next
	}
	return last, nil
}

// EraseKey erases every entry equal to k and returns the count removed.
func (t *Tree[H, K, V, W]) EraseKey(k K) (int, error) {
	a := t.alloc
	n := 0

	h := t.LowerBound(k)
	for h != a.Nil() && t.equalKey(t.key(h), k) {
		next, err := t.Erase(h)
		if err != nil {
			return n, err
		}
		n++
		h = next
	}

	return n, nil
}

func (t *Tree[H, K, V, W]) deleteNode(z H) error {
	a := t.alloc

	y := z
	yOriginalColor := a.Color(y)

	var x, xParent H

	switch {
	case a.Left(z) == a.Nil():
		x = a.Right(z)
		xParent = a.Parent(z)
		t.transplant(z, x)
	case a.Right(z) == a.Nil():
		x = a.Left(z)
		xParent = a.Parent(z)
		t.transplant(z, x)
	default:
		y = t.minimum(a.Right(z))
		yOriginalColor = a.Color(y)
		x = a.Right(y)

		if a.Parent(y) == z {
			xParent = y
		} else {
			xParent = a.Parent(y)
			t.transplant(y, x)
			a.SetRight(y, a.Right(z))
			a.SetParent(a.Right(y), y)
		}

		t.transplant(z, y)
		a.SetLeft(y, a.Left(z))
		a.SetParent(a.Left(y), y)
		a.SetColor(y, a.Color(z))
	}

	if err := t.recomputeUpFrom(xParent); err != nil {
		return err
	}

	if yOriginalColor == nodealloc.Black {
		if err := t.deleteFixup(x, xParent); err != nil {
			return err
		}
	}

	a.Free(z)

	debug.Log(nil, "erase", "size=%d", a.Len())
	root := t.root()
	debug.Assert(root == a.Nil() || a.Color(root) == nodealloc.Black, "root must be black after delete fixup")

	return nil
}

// transplant replaces the subtree rooted at u with the subtree rooted at
// v, relinking only u's parent's child pointer and, when v is a real
// node, v's parent pointer. It never mutates the shared Nil sentinel.
func (t *Tree[H, K, V, W]) transplant(u, v H) {
	a := t.alloc

	p := a.Parent(u)
	if p == a.Header() {
		a.SetRight(a.Header(), v)
	} else if u == a.Left(p) {
		a.SetLeft(p, v)
	} else {
		a.SetRight(p, v)
	}

	if v != a.Nil() {
		a.SetParent(v, p)
	}
}

// deleteFixup restores the red-black invariants after splicing out a
// black node, the standard eight-case table (CLRS ch. 13). x is the
// node that moved into the spliced position (possibly Nil); parent is
// tracked explicitly rather than read from x's own parent field so that
// the shared Nil sentinel's parent link never needs to carry meaning.
func (t *Tree[H, K, V, W]) deleteFixup(x, parent H) error {
	a := t.alloc

	for x != t.root() && a.Color(x) == nodealloc.Black {
		if x == a.Left(parent) {
			w := a.Right(parent)

			if a.Color(w) == nodealloc.Red {
				a.SetColor(w, nodealloc.Black)
				a.SetColor(parent, nodealloc.Red)
				if err := t.rotateLeft(parent); err != nil {
					return err
				}
				w = a.Right(parent)
			}

			if a.Color(a.Left(w)) == nodealloc.Black && a.Color(a.Right(w)) == nodealloc.Black {
				a.SetColor(w, nodealloc.Red)
				x = parent
				parent = a.Parent(x)
				continue
			}

			if a.Color(a.Right(w)) == nodealloc.Black {
				a.SetColor(a.Left(w), nodealloc.Black)
				a.SetColor(w, nodealloc.Red)
				if err := t.rotateRight(w); err != nil {
					return err
				}
				w = a.Right(parent)
			}

			a.SetColor(w, a.Color(parent))
			a.SetColor(parent, nodealloc.Black)
			a.SetColor(a.Right(w), nodealloc.Black)
			if err := t.rotateLeft(parent); err != nil {
				return err
			}
			x = t.root()
		} else {
			w := a.Left(parent)

			if a.Color(w) == nodealloc.Red {
				a.SetColor(w, nodealloc.Black)
				a.SetColor(parent, nodealloc.Red)
				if err := t.rotateRight(parent); err != nil {
					return err
				}
				w = a.Left(parent)
			}

			if a.Color(a.Right(w)) == nodealloc.Black && a.Color(a.Left(w)) == nodealloc.Black {
				a.SetColor(w, nodealloc.Red)
				x = parent
				parent = a.Parent(x)
				continue
			}

			if a.Color(a.Left(w)) == nodealloc.Black {
				a.SetColor(a.Right(w), nodealloc.Black)
				a.SetColor(w, nodealloc.Red)
				if err := t.rotateLeft(w); err != nil {
					return err
				}
				w = a.Left(parent)
			}

			a.SetColor(w, a.Color(parent))
			a.SetColor(parent, nodealloc.Black)
			a.SetColor(a.Left(w), nodealloc.Black)
			if err := t.rotateRight(parent); err != nil {
				return err
			}
			x = t.root()
		}
	}

	a.SetColor(x, nodealloc.Black)

	return nil
}
