package rbtree_test

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEraseInverseLaw(t *testing.T) {
	Convey("Given a sequence of insertions followed by their erasures in any order", t, func() {
		tree := newUniqueTree()

		keys := make([]int, 200)
		for i := range keys {
			keys[i] = i
		}

		rng := rand.New(rand.NewSource(1))
		insertOrder := append([]int(nil), keys...)
		rng.Shuffle(len(insertOrder), func(i, j int) { insertOrder[i], insertOrder[j] = insertOrder[j], insertOrder[i] })
		insertKeys(tree, insertOrder...)

		eraseOrder := append([]int(nil), keys...)
		rng.Shuffle(len(eraseOrder), func(i, j int) { eraseOrder[i], eraseOrder[j] = eraseOrder[j], eraseOrder[i] })

		Convey("The final tree equals the empty tree", func() {
			for _, k := range eraseOrder {
				n, err := tree.EraseKey(k)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(tree.Check(0), ShouldBeNil)
			}

			So(tree.Len(), ShouldEqual, 0)
			So(tree.Empty(), ShouldBeTrue)
			So(tree.TotalSum(), ShouldResemble, []int64{0})
		})
	})
}

func TestEraseReturnsSuccessor(t *testing.T) {
	Convey("Given a tree with several keys", t, func() {
		tree := newUniqueTree()
		insertKeys(tree, 1, 2, 3, 4, 5)

		Convey("Erase returns the in-order successor of the removed key", func() {
			h := tree.Find(3)
			succ, err := tree.Erase(h)
			So(err, ShouldBeNil)
			So(tree.Key(succ), ShouldEqual, 4)
			So(tree.Check(0), ShouldBeNil)
		})

		Convey("Erasing the last key returns Nil", func() {
			h := tree.Find(5)
			succ, err := tree.Erase(h)
			So(err, ShouldBeNil)
			So(succ, ShouldEqual, tree.Nil())
		})
	})
}

func TestIterationOrderLaw(t *testing.T) {
	Convey("Given a populated tree", t, func() {
		tree := newUniqueTree()
		insertKeys(tree, 8, 3, 1, 9, 4, 2, 7, 6, 5)

		Convey("first/next yields non-decreasing keys", func() {
			prev := -1
			for h := tree.First(); h != tree.Nil(); h = tree.Next(h) {
				So(tree.Key(h), ShouldBeGreaterThan, prev)
				prev = tree.Key(h)
			}
		})

		Convey("prev(next(h)) == h whenever next(h) != nil", func() {
			for h := tree.First(); h != tree.Nil(); h = tree.Next(h) {
				n := tree.Next(h)
				if n != tree.Nil() {
					So(tree.Prev(n), ShouldEqual, h)
				}
			}
		})

		Convey("prev(nil) == last()", func() {
			So(tree.Prev(tree.Nil()), ShouldEqual, tree.Last())
		})
	})
}

func TestEraseRange(t *testing.T) {
	Convey("Given a tree with keys 1..8", t, func() {
		tree := newUniqueTree()
		insertKeys(tree, 1, 2, 3, 4, 5, 6, 7, 8)

		Convey("EraseRange removes [first, last) and returns last", func() {
			first := tree.Find(3)
			last := tree.Find(6)

			got, err := tree.EraseRange(first, last)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, last)
			So(inOrderKeys(tree), ShouldResemble, []int{1, 2, 6, 7, 8})
			So(tree.Check(0), ShouldBeNil)
		})

		Convey("EraseRange to Nil erases through the end", func() {
			first := tree.Find(5)
			_, err := tree.EraseRange(first, tree.Nil())
			So(err, ShouldBeNil)
			So(inOrderKeys(tree), ShouldResemble, []int{1, 2, 3, 4})
		})
	})
}

func TestScenario2MultisetEraseOne(t *testing.T) {
	Convey("Multiset scenario: insert [5, 5, 5, 3, 7] with w=1", t, func() {
		tree := newMultiTree()
		insertKeys(tree, 5, 5, 5, 3, 7)

		Convey("count(5) is 3", func() {
			So(tree.Count(5), ShouldEqual, 3)
		})

		Convey("erasing one instance via lower_bound(5) leaves count(5)=2 and in-order [3,5,5,7]", func() {
			h := tree.LowerBound(5)
			_, err := tree.Erase(h)
			So(err, ShouldBeNil)

			So(tree.Count(5), ShouldEqual, 2)
			So(inOrderKeys(tree), ShouldResemble, []int{3, 5, 5, 7})
			So(tree.Check(0), ShouldBeNil)
		})
	})
}
