package rbtree

import (
	"fmt"

	"github.com/flier/ordstat/pkg/nodealloc"
	"github.com/flier/ordstat/pkg/opt"
	"github.com/flier/ordstat/pkg/ordnum"
	"github.com/flier/ordstat/pkg/ordstat"
)

// freeLister is satisfied by [nodealloc.CompactAlloc]; Check uses it to
// verify the free-list accounting without this package needing to import
// the compact allocator directly.
type freeLister[H comparable] interface {
	Size() int
	IsDeleted(h H) bool
}

// Check walks the whole tree verifying every structural invariant:
// parent-child consistency, BST order, no red node has a red child,
// uniform black height, and — unless tolerance is negative — that every
// stored subtree sum matches what its children and own weight imply.
// tolerance is an absolute per-component bound used for floating-point
// W; integral W is always compared exactly regardless of tolerance.
//
// A tree that has gone Inconsistent always fails Check immediately,
// since any further computation over it is unreliable.
func (t *Tree[H, K, V, W]) Check(tolerance float64) error {
	if !t.consistent {
		return ordstat.New(ordstat.InvariantViolated, fmt.Errorf("tree is inconsistent after a prior Arithmetic failure"))
	}

	if _, _, err := t.checkSubtree(t.root(), opt.None[K](), opt.None[K](), tolerance); err != nil {
		return err
	}

	n := 0
	for h := t.First(); h != t.alloc.Nil(); h = t.Next(h) {
		n++
	}
	if n != t.alloc.Len() {
		return ordstat.New(ordstat.InvariantViolated,
			fmt.Errorf("size mismatch: allocator reports %d live nodes, in-order walk found %d", t.alloc.Len(), n))
	}

	if fl, ok := t.alloc.(freeLister[H]); ok {
		deleted := 0
		for i := 2; i < fl.Size(); i++ {
			// slot indices below 2 are the sentinels; real slots start at 2.
			if fl.IsDeleted(h2(t, i)) {
				deleted++
			}
		}
		if want := fl.Size() - 2 - t.alloc.Len(); deleted != want {
			return ordstat.New(ordstat.InvariantViolated,
				fmt.Errorf("free-list accounting mismatch: %d deleted slots, expected %d", deleted, want))
		}
	}

	return nil
}

// h2 converts a raw slot index into a handle of type H. This only makes
// sense when H is itself an integer handle type (i.e. when freeLister
// matched), which is guaranteed by the type assertion in Check, but Go
// generics can't express "H is this concrete int type" directly, so the
// conversion goes through an any-typed round trip guarded by that
// assertion.
func h2[H comparable, K, V any, W ordnum.Num](t *Tree[H, K, V, W], i int) H {
	var probe any = int32(i)
	h, _ := probe.(H)
	return h
}

func (t *Tree[H, K, V, W]) checkSubtree(n H, lo, hi opt.Option[K], tolerance float64) (black int, sum []W, err error) {
	a := t.alloc
	if n == a.Nil() {
		return 0, t.zero, nil
	}

	k := t.key(n)

	if lo.IsSome() {
		l := lo.Unwrap()
		violated := false
		if t.policy == Unique {
			violated = !t.less(l, k)
		} else {
			violated = t.less(k, l)
		}
		if violated {
			return 0, nil, ordstat.New(ordstat.InvariantViolated, fmt.Errorf("bst order violated at key %v (lower bound %v)", k, l))
		}
	}
	if hi.IsSome() {
		h := hi.Unwrap()
		violated := false
		if t.policy == Unique {
			violated = !t.less(k, h)
		} else {
			violated = t.less(h, k)
		}
		if violated {
			return 0, nil, ordstat.New(ordstat.InvariantViolated, fmt.Errorf("bst order violated at key %v (upper bound %v)", k, h))
		}
	}

	if a.Color(n) == nodealloc.Red {
		if a.Color(a.Left(n)) == nodealloc.Red || a.Color(a.Right(n)) == nodealloc.Red {
			return 0, nil, ordstat.New(ordstat.InvariantViolated, fmt.Errorf("red node has a red child at key %v", k))
		}
	}

	if l := a.Left(n); l != a.Nil() && a.Parent(l) != n {
		return 0, nil, ordstat.New(ordstat.InvariantViolated, fmt.Errorf("left child's parent link broken at key %v", k))
	}
	if r := a.Right(n); r != a.Nil() && a.Parent(r) != n {
		return 0, nil, ordstat.New(ordstat.InvariantViolated, fmt.Errorf("right child's parent link broken at key %v", k))
	}

	lb, lsum, err := t.checkSubtree(a.Left(n), lo, opt.Some(k), tolerance)
	if err != nil {
		return 0, nil, err
	}
	rb, rsum, err := t.checkSubtree(a.Right(n), opt.Some(k), hi, tolerance)
	if err != nil {
		return 0, nil, err
	}
	if lb != rb {
		return 0, nil, ordstat.New(ordstat.InvariantViolated, fmt.Errorf("black height mismatch at key %v", k))
	}

	want := make([]W, t.arity)
	copy(want, t.weightOf(n))
	if !ordnum.AddVec(want, lsum) {
		return 0, nil, ordstat.New(ordstat.Arithmetic, nil)
	}
	if !ordnum.AddVec(want, rsum) {
		return 0, nil, ordstat.New(ordstat.Arithmetic, nil)
	}

	if tolerance >= 0 {
		got := a.Sum(n)
		for i := range want {
			if !withinTolerance(want[i], got[i], tolerance) {
				return 0, nil, ordstat.New(ordstat.InvariantViolated,
					fmt.Errorf("sum mismatch at key %v: want %v got %v", k, want, got))
			}
		}
	}

	black = lb
	if a.Color(n) == nodealloc.Black {
		black++
	}

	return black, want, nil
}

func withinTolerance[W ordnum.Num](want, got W, tolerance float64) bool {
	if want == got {
		return true
	}
	if isIntegral[W]() {
		// Integral W is compared exactly regardless of tolerance.
		return false
	}

	diff := float64(want) - float64(got)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// isIntegral reports whether W is an integer type: integer division
// truncates 1/2 to zero, float division does not.
func isIntegral[W ordnum.Num]() bool {
	var one, two W = 1, 2
	return one/two == 0
}
