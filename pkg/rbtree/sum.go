package rbtree

import (
	"github.com/flier/ordstat/pkg/ordnum"
	"github.com/flier/ordstat/pkg/ordstat"
)

// recomputeSum sets sum(n) = w(entry(n)) + sum(left(n)) + sum(right(n)),
// componentwise, via the overflow-checked add primitive. Called on Nil
// it is a no-op.
func (t *Tree[H, K, V, W]) recomputeSum(n H) error {
	a := t.alloc
	if n == a.Nil() {
		return nil
	}

	sum := make([]W, t.arity)
	copy(sum, t.weightOf(n))

	if !ordnum.AddVec(sum, t.sumOf(a.Left(n))) {
		t.consistent = false
		return ordstat.New(ordstat.Arithmetic, nil)
	}
	if !ordnum.AddVec(sum, t.sumOf(a.Right(n))) {
		t.consistent = false
		return ordstat.New(ordstat.Arithmetic, nil)
	}

	a.SetSum(n, sum)

	return nil
}

// recomputeUpFrom recomputes sum(n) for n and every ancestor up to, but
// not including, the header sentinel. Used by deletion and value update,
// both of which recompute from children rather than decrement along the
// chain: the children's subtree sums are unaffected by either operation.
func (t *Tree[H, K, V, W]) recomputeUpFrom(n H) error {
	a := t.alloc
	for cur := n; cur != a.Header(); cur = a.Parent(cur) {
		if err := t.recomputeSum(cur); err != nil {
			return err
		}
	}
	return nil
}

// propagateInsert adds wz to the stored sum of from and every ancestor
// of from up to and including the real root.
func (t *Tree[H, K, V, W]) propagateInsert(from H, wz []W) error {
	a := t.alloc
	for n := from; n != a.Header(); n = a.Parent(n) {
		sum := a.Sum(n)
		if !ordnum.AddVec(sum, wz) {
			t.consistent = false
			return ordstat.New(ordstat.Arithmetic, nil)
		}
		a.SetSum(n, sum)
	}
	return nil
}

// TotalSum returns the componentwise sum of w over every live entry.
func (t *Tree[H, K, V, W]) TotalSum() []W {
	acc := make([]W, t.arity)
	copy(acc, t.sumOf(t.root()))
	return acc
}

// SumBeforeNode returns the componentwise sum of w over every entry that
// precedes h in in-order position. Passing Nil (the "end" handle) yields
// TotalSum.
func (t *Tree[H, K, V, W]) SumBeforeNode(h H) ([]W, error) {
	a := t.alloc

	if h == a.Nil() {
		return t.TotalSum(), nil
	}

	acc := make([]W, t.arity)
	copy(acc, t.sumOf(a.Left(h)))

	for n := h; a.Parent(n) != a.Header(); n = a.Parent(n) {
		p := a.Parent(n)
		if n != a.Right(p) {
			continue
		}

		if !ordnum.AddVec(acc, t.weightOf(p)) {
			return nil, ordstat.New(ordstat.Arithmetic, nil)
		}
		if !ordnum.AddVec(acc, t.sumOf(a.Left(p))) {
			return nil, ordstat.New(ordstat.Arithmetic, nil)
		}
	}

	return acc, nil
}

// SumBefore returns the componentwise sum of w over every entry with key
// strictly less than k.
func (t *Tree[H, K, V, W]) SumBefore(k K) ([]W, error) {
	return t.SumBeforeNode(t.LowerBound(k))
}
