package container

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/utility"
)

// Sequence is implemented by every container of the package, the
// elements being pairs for maps and keys for sets.
type Sequence[T any] interface {
	Len() int64
	Elements() iter.Seq[T]
}

// Equal reports whether both containers hold the same elements in the
// same order (operator==).
func Equal[T comparable](a, b Sequence[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool {
		return x == y
	})
}

func EqualFunc[T any](a, b Sequence[T], eq func(x, y T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	return utility.Equal(a.Elements(), b.Elements(), eq)
}

// Compare orders two containers lexicographically by their elements.
// It returns -1, 0 or 1.
func Compare[T any](a, b Sequence[T], less infra.LessFunc[T]) int {
	return utility.Compare(a.Elements(), b.Elements(), less)
}

// Less is operator<. LessEqual, Greater and GreaterEqual derive from it.
func Less[T any](a, b Sequence[T], less infra.LessFunc[T]) bool {
	return utility.LexicographicalCompare(a.Elements(), b.Elements(), less)
}

func LessEqual[T any](a, b Sequence[T], less infra.LessFunc[T]) bool {
	return !Less(b, a, less)
}

func Greater[T any](a, b Sequence[T], less infra.LessFunc[T]) bool {
	return Less(b, a, less)
}

func GreaterEqual[T any](a, b Sequence[T], less infra.LessFunc[T]) bool {
	return !Less(a, b, less)
}

// Swap exchanges the contents of two containers of the same kind.
func Swap[C interface{ Swap(other C) }](a, b C) {
	a.Swap(b)
}
