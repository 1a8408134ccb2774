package vecx

import "github.com/flier/ordstat/pkg/opt"

// DefaultChunkSize is the number of elements held by each chunk.
const DefaultChunkSize = 131072

// StackedVec is a growable array implemented as a sequence of fixed-size
// chunks, so that existing elements never move once assigned a slot —
// unlike [ReallocVec], it places no relocatability requirement on T.
// Growing the vector appends a chunk instead of copying everything that
// came before it.
//
// A zero StackedVec is not ready to use; construct one with [NewStackedVec].
type StackedVec[T any] struct {
	chunks    []*[]T
	chunkSize int
	length    int
}

// NewStackedVec constructs an empty StackedVec using [DefaultChunkSize].
func NewStackedVec[T any]() *StackedVec[T] {
	return NewStackedVecSized[T](DefaultChunkSize)
}

// NewStackedVecSized constructs an empty StackedVec with a custom chunk
// size. chunkSize is fixed for the vector's lifetime; every index
// division uses the same divisor.
func NewStackedVecSized[T any](chunkSize int) *StackedVec[T] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &StackedVec[T]{chunkSize: chunkSize}
}

// Len returns the number of live elements.
func (v *StackedVec[T]) Len() int { return v.length }

// Empty reports whether the vector holds no elements.
func (v *StackedVec[T]) Empty() bool { return v.length == 0 }

// Cap returns the number of elements the allocated chunks can hold without
// appending a new chunk.
func (v *StackedVec[T]) Cap() int { return len(v.chunks) * v.chunkSize }

func (v *StackedVec[T]) index(i int) (chunk int, slot int) {
	return i / v.chunkSize, i % v.chunkSize
}

// Get returns a pointer to the element at index i.
func (v *StackedVec[T]) Get(i int) *T {
	c, s := v.index(i)
	return &(*v.chunks[c])[s]
}

// Set overwrites the element at index i.
func (v *StackedVec[T]) Set(i int, val T) { *v.Get(i) = val }

// CheckedGet is Get, but returns [opt.None] on an out-of-range index.
func (v *StackedVec[T]) CheckedGet(i int) opt.Option[*T] {
	if i < 0 || i >= v.length {
		return opt.None[*T]()
	}

	return opt.Some(v.Get(i))
}

// ensureChunk appends chunks until slot c exists.
func (v *StackedVec[T]) ensureChunk(c int) {
	for len(v.chunks) <= c {
		buf := make([]T, v.chunkSize)
		v.chunks = append(v.chunks, &buf)
	}
}

// Reserve ensures the backing chunks can hold n elements without growing.
func (v *StackedVec[T]) Reserve(n int) {
	if n <= 0 {
		return
	}

	last, _ := v.index(n - 1)
	v.ensureChunk(last)
}

// Push appends val, allocating a fresh chunk if the current one is full.
func (v *StackedVec[T]) Push(val T) {
	c, _ := v.index(v.length)
	v.ensureChunk(c)
	*v.Get(v.length) = val
	v.length++
}

// Pop removes and returns the last element.
func (v *StackedVec[T]) Pop() T {
	v.length--
	p := v.Get(v.length)
	val := *p
	var zero T
	*p = zero

	return val
}

// Insert inserts val at position i, shifting every following element one
// slot to the right, crossing chunk boundaries transparently. O(n).
func (v *StackedVec[T]) Insert(i int, val T) {
	c, _ := v.index(v.length)
	v.ensureChunk(c)
	v.length++

	for j := v.length - 1; j > i; j-- {
		v.Set(j, v.Load(j-1))
	}

	v.Set(i, val)
}

// Erase removes the element at position i, shifting the tail left by one.
func (v *StackedVec[T]) Erase(i int) {
	for j := i; j < v.length-1; j++ {
		v.Set(j, v.Load(j+1))
	}

	v.Pop()
}

// Load loads the value at index i.
func (v *StackedVec[T]) Load(i int) T { return *v.Get(i) }

// Truncate drops every element at index n and beyond, zeroing the vacated
// slots. A no-op when n >= Len.
func (v *StackedVec[T]) Truncate(n int) {
	if n < 0 || n >= v.length {
		return
	}

	var zero T
	for i := n; i < v.length; i++ {
		*v.Get(i) = zero
	}
	v.length = n
}

// ShrinkTo frees trailing chunks past what's needed to hold newCap
// elements; the first chunk is left as-is, keeping chunk identity stable
// since nothing downstream needs sub-chunk compaction.
func (v *StackedVec[T]) ShrinkTo(newCap int) {
	if newCap < v.length {
		newCap = v.length
	}

	needed := (newCap + v.chunkSize - 1) / v.chunkSize
	if needed < 1 {
		needed = 1
	}

	for len(v.chunks) > needed {
		v.chunks = v.chunks[:len(v.chunks)-1]
	}
}

// Clear empties the vector, releasing all but the first chunk.
func (v *StackedVec[T]) Clear() {
	v.length = 0
	if len(v.chunks) > 1 {
		v.chunks = v.chunks[:1]
	}
	if len(v.chunks) == 1 {
		for i := range *v.chunks[0] {
			var zero T
			(*v.chunks[0])[i] = zero
		}
	}
}
