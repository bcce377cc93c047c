package utility

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
)

// Equal reports whether both sequences have the same length and
// pairwise equal elements.
func Equal[T any](s1, s2 iter.Seq[T], eq func(a, b T) bool) bool {
	next2, stop := iter.Pull(s2)
	defer stop()
	for v1 := range s1 {
		v2, ok := next2()
		if !ok || !eq(v1, v2) {
			return false
		}
	}
	_, ok := next2()
	return !ok
}

// LexicographicalCompare reports whether s1 precedes s2 in
// dictionary order. A proper prefix precedes the longer sequence.
func LexicographicalCompare[T any](s1, s2 iter.Seq[T], less infra.LessFunc[T]) bool {
	return Compare(s1, s2, less) < 0
}

// Compare is the three-way form of LexicographicalCompare.
func Compare[T any](s1, s2 iter.Seq[T], less infra.LessFunc[T]) int {
	next2, stop := iter.Pull(s2)
	defer stop()
	for v1 := range s1 {
		v2, ok := next2()
		if !ok {
			return 1
		}
		if less(v1, v2) {
			return -1
		} else if less(v2, v1) {
			return 1
		}
	}
	if _, ok := next2(); ok {
		return -1
	}
	return 0
}

// Values collects an iterator range [first, last) into a sequence.
func Values[I interface {
	Forward[I]
	Readable[T]
}, T any](first, last I) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := first; !it.Equal(last); it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
