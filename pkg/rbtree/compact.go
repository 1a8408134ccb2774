package rbtree

// compactor is satisfied by allocators that support shrink-to-fit
// compaction, currently only [nodealloc.CompactAlloc].
// Matched by type assertion so this package doesn't need to import the
// compact allocator directly, mirroring [freeLister] in check.go.
type compactor[H comparable] interface {
	ShrinkToFit(fixup func(from, to H))
}

// ShrinkToFit compacts the backing storage when the tree is built on a
// compacting allocator, re-threading every moved node's parent and child
// links onto its new handle. The in-order sequence of entries and every
// sum are unchanged. It is a no-op for allocators that don't support compaction —
// [nodealloc.PtrAlloc]'s pointer handles are already stable for the
// container's lifetime and have nothing to compact.
//
// Every handle obtained before calling ShrinkToFit on a compacting
// allocator must be discarded; re-derive them afterward (e.g. via
// [Tree.First]).
func (t *Tree[H, K, V, W]) ShrinkToFit() {
	c, ok := t.alloc.(compactor[H])
	if !ok {
		return
	}

	a := t.alloc

	c.ShrinkToFit(func(from, to H) {
		p := a.Parent(to)
		switch {
		case p == a.Header():
			a.SetRight(a.Header(), to)
		case a.Left(p) == from:
			a.SetLeft(p, to)
		default:
			a.SetRight(p, to)
		}

		if l := a.Left(to); l != a.Nil() {
			a.SetParent(l, to)
		}
		if r := a.Right(to); r != a.Nil() {
			a.SetParent(r, to)
		}
	})
}
