package rbtree

import (
	"github.com/flier/ordstat/internal/debug"
	"github.com/flier/ordstat/pkg/nodealloc"
)

// Insert descends from the root to find where key belongs, then links a
// fresh entry there. For Unique trees, an equal key already present
// aborts the insert and returns its existing handle with inserted=false.
// For Multi trees, a new entry with an equal key is always inserted
// after every existing entry with that key.
func (t *Tree[H, K, V, W]) Insert(key K, value V) (h H, inserted bool, err error) {
	a := t.alloc

	parent := a.Header()
	cur := a.Right(parent)
	goLeft := true

	for cur != a.Nil() {
		parent = cur
		ck := t.key(cur)

		switch {
		case t.less(key, ck):
			goLeft = true
			cur = a.Left(cur)
		case t.policy == Unique && !t.less(ck, key):
			return cur, false, nil
		default:
			goLeft = false
			cur = a.Right(cur)
		}
	}

	return t.insertAt(parent, goLeft, key, value)
}

// Emplace is Insert under another name: Go passes constructor arguments
// individually anyway, so there is no separate emplace path to build.
func (t *Tree[H, K, V, W]) Emplace(key K, value V) (H, bool, error) {
	return t.Insert(key, value)
}

// InsertHint is Insert, but first checks whether hint names a valid
// attachment point:
//
//   - Unique: hint is used only when key belongs strictly between
//     prev(hint) and hint; otherwise the hint is ignored and a full
//     descent runs.
//   - Multi: if key equals key(hint), the new entry attaches immediately
//     before hint; otherwise this falls back to lower_bound, attaching
//     at the end when key is greater than every existing key.
func (t *Tree[H, K, V, W]) InsertHint(hint H, key K, value V) (H, bool, error) {
	a := t.alloc

	if hint == a.Nil() || hint == a.Header() {
		return t.Insert(key, value)
	}

	hk := t.key(hint)

	if t.policy == Unique {
		if !t.less(key, hk) {
			return t.Insert(key, value)
		}
		if p := t.Prev(hint); p != a.Nil() && !t.less(t.key(p), key) {
			return t.Insert(key, value)
		}
		return t.insertBefore(hint, key, value)
	}

	if t.equalKey(key, hk) {
		return t.insertBefore(hint, key, value)
	}

	lb := t.LowerBound(key)
	if lb == a.Nil() {
		return t.insertAfter(t.Last(), key, value)
	}
	return t.insertBefore(lb, key, value)
}

// insertBefore attaches a fresh entry immediately before h in in-order
// position.
func (t *Tree[H, K, V, W]) insertBefore(h H, key K, value V) (H, bool, error) {
	a := t.alloc
	if a.Left(h) == a.Nil() {
		return t.insertAt(h, true, key, value)
	}
	return t.insertAt(t.maximum(a.Left(h)), false, key, value)
}

// insertAfter attaches a fresh entry immediately after h in in-order
// position. h may be Nil, meaning the tree is currently empty.
func (t *Tree[H, K, V, W]) insertAfter(h H, key K, value V) (H, bool, error) {
	a := t.alloc
	if h == a.Nil() {
		return t.insertAt(a.Header(), true, key, value)
	}
	if a.Right(h) == a.Nil() {
		return t.insertAt(h, false, key, value)
	}
	return t.insertAt(t.minimum(a.Right(h)), true, key, value)
}

// insertAt is the shared core of every insertion path: allocate a node,
// link it as parent's left or right child, propagate its weight up to
// the root, then run red-black fixup.
func (t *Tree[H, K, V, W]) insertAt(parent H, goLeft bool, key K, value V) (H, bool, error) {
	a := t.alloc

	wz := t.weight(key, value)

	h, err := a.New(Entry[K, V]{Key: key, Value: value}, t.arity)
	if err != nil {
		return a.Nil(), false, err
	}

	sum := make([]W, t.arity)
	copy(sum, wz)
	a.SetSum(h, sum)
	a.SetColor(h, nodealloc.Red)
	a.SetParent(h, parent)

	if parent == a.Header() {
		a.SetRight(a.Header(), h)
	} else if goLeft {
		a.SetLeft(parent, h)
	} else {
		a.SetRight(parent, h)
	}

	if err := t.propagateInsert(parent, wz); err != nil {
		return h, true, err
	}

	if err := t.insertFixup(h); err != nil {
		return h, true, err
	}

	debug.Log(nil, "insert", "key=%v arity=%d size=%d", key, t.arity, a.Len())
	debug.Assert(a.Color(t.root()) == nodealloc.Black, "root must be black after insert fixup")

	return h, true, nil
}

// insertFixup restores the red-black invariants after linking z as a red
// leaf, the standard recolor-and-rotate procedure.
func (t *Tree[H, K, V, W]) insertFixup(z H) error {
	a := t.alloc

	for a.Color(a.Parent(z)) == nodealloc.Red {
		p := a.Parent(z)
		gp := a.Parent(p)

		if p == a.Left(gp) {
			u := a.Right(gp)
			if a.Color(u) == nodealloc.Red {
				a.SetColor(p, nodealloc.Black)
				a.SetColor(u, nodealloc.Black)
				a.SetColor(gp, nodealloc.Red)
				z = gp
				continue
			}

			if z == a.Right(p) {
				z = p
				if err := t.rotateLeft(z); err != nil {
					return err
				}
				p = a.Parent(z)
			}

			a.SetColor(p, nodealloc.Black)
			a.SetColor(gp, nodealloc.Red)
			if err := t.rotateRight(gp); err != nil {
				return err
			}
		} else {
			u := a.Left(gp)
			if a.Color(u) == nodealloc.Red {
				a.SetColor(p, nodealloc.Black)
				a.SetColor(u, nodealloc.Black)
				a.SetColor(gp, nodealloc.Red)
				z = gp
				continue
			}

			if z == a.Left(p) {
				z = p
				if err := t.rotateRight(z); err != nil {
					return err
				}
				p = a.Parent(z)
			}

			a.SetColor(p, nodealloc.Black)
			a.SetColor(gp, nodealloc.Red)
			if err := t.rotateLeft(gp); err != nil {
				return err
			}
		}
	}

	a.SetColor(t.root(), nodealloc.Black)

	return nil
}
