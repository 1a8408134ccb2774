package rbtree

import (
	"github.com/flier/ordstat/pkg/res"
	"github.com/flier/ordstat/pkg/tuple"
)

// TryInsert is the Result-shaped form of [Tree.Insert] for callers who
// prefer the Ok/Err idiom over (handle, inserted, error). The Ok payload
// is the (handle, inserted?) pair.
func (t *Tree[H, K, V, W]) TryInsert(key K, value V) res.Result[tuple.Tuple2[H, bool]] {
	h, inserted, err := t.Insert(key, value)
	if err != nil {
		return res.Err[tuple.Tuple2[H, bool]](err)
	}

	return res.Ok(tuple.New2(h, inserted))
}

// TryInsertHint is the Result-shaped form of [Tree.InsertHint].
func (t *Tree[H, K, V, W]) TryInsertHint(hint H, key K, value V) res.Result[tuple.Tuple2[H, bool]] {
	h, inserted, err := t.InsertHint(hint, key, value)
	if err != nil {
		return res.Err[tuple.Tuple2[H, bool]](err)
	}

	return res.Ok(tuple.New2(h, inserted))
}
