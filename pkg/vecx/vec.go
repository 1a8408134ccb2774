package vecx

// Vec is the common surface [ReallocVec] and [StackedVec] both implement,
// letting [nodealloc.CompactAlloc] address either back-end uniformly once
// the construction-time choice between them has been made. Vec is that
// shared surface, not a mechanism for switching back-ends at runtime.
type Vec[T any] interface {
	Len() int
	Cap() int
	Get(i int) *T
	Set(i int, val T)
	Push(val T)
	Pop() T
	Truncate(n int)
	ShrinkTo(newCap int)
	Clear()
}

var (
	_ Vec[int] = (*ReallocVec[int])(nil)
	_ Vec[int] = (*StackedVec[int])(nil)
)
