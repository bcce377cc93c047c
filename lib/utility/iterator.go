package utility

// go install golang.org/x/tools/cmd/stringer@latest

// IteratorCategory is a compile time capability marker of an iterator,
// used to pick an algorithm's strategy. No runtime dispatch depends on it.
//
//go:generate stringer -type=IteratorCategory
type IteratorCategory uint8

const (
	InputIterator IteratorCategory = iota
	ForwardIterator
	BidirectionalIterator
	RandomAccessIterator
)

// Forward iterators advance with Next and compare by position.
type Forward[I any] interface {
	Next() I
	Equal(other I) bool
	Category() IteratorCategory
}

// Bidirectional iterators can also step backwards.
type Bidirectional[I any] interface {
	Forward[I]
	Prev() I
}

// Readable iterators yield the element at their position.
type Readable[T any] interface {
	Value() T
}

// Distance counts the steps from first to last.
// last must be reachable from first.
func Distance[I Forward[I]](first, last I) int64 {
	n := int64(0)
	for it := first; !it.Equal(last); it = it.Next() {
		n++
	}
	return n
}

// Advance moves it by n steps, backwards when n is negative.
func Advance[I Bidirectional[I]](it I, n int64) I {
	for ; n > 0; n-- {
		it = it.Next()
	}
	for ; n < 0; n++ {
		it = it.Prev()
	}
	return it
}

// ReverseIterator adapts a bidirectional iterator to walk backwards.
// It holds the position after the element it refers to, so
// Reverse(end) refers to the last element and Reverse(begin) is
// the past-the-end position of the reversed range.
type ReverseIterator[I interface {
	Bidirectional[I]
	Readable[T]
}, T any] struct {
	base I
}

func Reverse[I interface {
	Bidirectional[I]
	Readable[T]
}, T any](base I) ReverseIterator[I, T] {
	return ReverseIterator[I, T]{base: base}
}

// Base returns the underlying iterator, one position after the
// referenced element.
func (it ReverseIterator[I, T]) Base() I {
	return it.base
}

func (it ReverseIterator[I, T]) Value() T {
	return it.base.Prev().Value()
}

func (it ReverseIterator[I, T]) Next() ReverseIterator[I, T] {
	return ReverseIterator[I, T]{base: it.base.Prev()}
}

func (it ReverseIterator[I, T]) Prev() ReverseIterator[I, T] {
	return ReverseIterator[I, T]{base: it.base.Next()}
}

func (it ReverseIterator[I, T]) Equal(other ReverseIterator[I, T]) bool {
	return it.base.Equal(other.base)
}

func (it ReverseIterator[I, T]) Category() IteratorCategory {
	return it.base.Category()
}
