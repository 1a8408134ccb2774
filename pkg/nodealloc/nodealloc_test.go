package nodealloc_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/flier/ordstat/pkg/nodealloc"
)

func TestPtrAlloc(t *testing.T) {
	Convey("Given a fresh PtrAlloc", t, func() {
		a := NewPtrAlloc[string, int64]()

		Convey("Nil and Header are distinct, black sentinels", func() {
			So(a.Nil(), ShouldNotEqual, a.Header())
			So(a.Color(a.Nil()), ShouldEqual, Black)
			So(a.Color(a.Header()), ShouldEqual, Black)
		})

		Convey("New allocates a red node with a zeroed sum", func() {
			h, err := a.New("hello", 2)
			So(err, ShouldBeNil)
			So(a.Color(h), ShouldEqual, Red)
			So(*a.Entry(h), ShouldEqual, "hello")
			So(a.Sum(h), ShouldResemble, []int64{0, 0})
			So(a.Len(), ShouldEqual, 1)
		})

		Convey("Free decrements Len", func() {
			h, _ := a.New("x", 1)
			a.Free(h)
			So(a.Len(), ShouldEqual, 0)
		})

		Convey("Left/Right/Parent/Color are independently settable", func() {
			h1, _ := a.New("a", 1)
			h2, _ := a.New("b", 1)

			a.SetLeft(h1, h2)
			a.SetParent(h2, h1)
			a.SetColor(h2, Black)

			So(a.Left(h1), ShouldEqual, h2)
			So(a.Parent(h2), ShouldEqual, h1)
			So(a.Color(h2), ShouldEqual, Black)
		})

		Convey("ClearTree frees every node reachable from the header", func() {
			h1, _ := a.New("a", 1)
			h2, _ := a.New("b", 1)
			a.SetRight(a.Header(), h1)
			a.SetLeft(h1, h2)

			a.ClearTree()

			So(a.Len(), ShouldEqual, 0)
			So(a.Right(a.Header()), ShouldEqual, a.Nil())
		})
	})
}

func TestCompactAlloc(t *testing.T) {
	Convey("Given a fresh CompactAlloc", t, func() {
		a := NewCompactAlloc[string, int64](2)

		Convey("Nil is slot 0, Header is slot 1", func() {
			So(a.Nil(), ShouldEqual, Handle(0))
			So(a.Header(), ShouldEqual, Handle(1))
		})

		Convey("New allocates a red node with a zeroed sum vector of the right arity", func() {
			h, err := a.New("hello", 2)
			So(err, ShouldBeNil)
			So(a.Color(h), ShouldEqual, Red)
			So(*a.Entry(h), ShouldEqual, "hello")
			So(a.Sum(h), ShouldResemble, []int64{0, 0})
			So(a.Len(), ShouldEqual, 1)
		})

		Convey("Free recycles the slot through the free-list", func() {
			h, _ := a.New("a", 2)
			a.Free(h)

			So(a.Len(), ShouldEqual, 0)
			So(a.IsDeleted(h), ShouldBeTrue)
			So(a.FreeListHead(), ShouldEqual, h)

			h2, err := a.New("b", 2)
			So(err, ShouldBeNil)
			So(h2, ShouldEqual, h)
			So(a.IsDeleted(h2), ShouldBeFalse)
		})

		Convey("Color survives being packed alongside the parent index", func() {
			h, _ := a.New("a", 2)
			a.SetParent(h, 123456)
			a.SetColor(h, Black)

			So(a.Parent(h), ShouldEqual, Handle(123456))
			So(a.Color(h), ShouldEqual, Black)

			a.SetParent(h, 7)
			So(a.Color(h), ShouldEqual, Black)
			So(a.Parent(h), ShouldEqual, Handle(7))
		})

		Convey("ShrinkToFit compacts freed slots out of the backing vector", func() {
			var live []Handle
			for i := 0; i < 10; i++ {
				h, _ := a.New("x", 2)
				live = append(live, h)
			}

			// Free every other slot, then compact; fixup just records
			// the (from, to) pairs it was handed.
			for i := 0; i < len(live); i += 2 {
				a.Free(live[i])
			}

			sizeBefore := a.Size()
			moved := map[Handle]Handle{}
			a.ShrinkToFit(func(from, to Handle) { moved[from] = to })

			So(a.Size(), ShouldBeLessThanOrEqualTo, sizeBefore)
			So(a.FreeListHead(), ShouldBeLessThan, Handle(0))
			So(a.Len(), ShouldEqual, 5)
		})

		Convey("ClearTree resets to the two sentinels", func() {
			for i := 0; i < 5; i++ {
				a.New("x", 2)
			}
			a.ClearTree()

			So(a.Len(), ShouldEqual, 0)
			So(a.Size(), ShouldEqual, 2)
		})
	})
}

func TestAllocatorInterfaceParity(t *testing.T) {
	Convey("Both back-ends satisfy the same Allocator surface", t, func() {
		var _ Allocator[PtrHandle[string, int64], string, int64] = NewPtrAlloc[string, int64]()
		var _ Allocator[Handle, string, int64] = NewCompactAlloc[string, int64](1)
	})
}
