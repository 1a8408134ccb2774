package rbtree

// UpdateValue overwrites h's stored value with v, then re-propagates
// subtree sums from h up to the real root. Direct
// mutation through a dereferenced handle is deliberately not offered:
// this is the only sanctioned way to change a value whose weight
// contribution may depend on it.
func (t *Tree[H, K, V, W]) UpdateValue(h H, v V) error {
	a := t.alloc
	if h == a.Nil() || h == a.Header() {
		return errInvalidHandle()
	}

	entry := a.Entry(h)
	entry.Value = v

	return t.recomputeUpFrom(h)
}

// SetValue upserts v at key k: if an entry with that key already exists
// (Unique trees only — the operation is ambiguous for Multi and updates
// whichever entry Find returns), its value is overwritten via
// UpdateValue; otherwise a fresh entry is inserted. Returns whether a
// new entry was inserted.
func (t *Tree[H, K, V, W]) SetValue(k K, v V) (bool, error) {
	if h := t.Find(k); h != t.alloc.Nil() {
		return false, t.UpdateValue(h, v)
	}

	_, inserted, err := t.Insert(k, v)
	return inserted, err
}
