package utility

import "github.com/ftcontainers/xstl/lib/infra"

// Pair is an ordered 2-tuple. Maps store Pair[K, V] in their nodes
// and the key (First) must never be mutated in place.
type Pair[T1, T2 any] struct {
	First  T1
	Second T2
}

func MakePair[T1, T2 any](first T1, second T2) Pair[T1, T2] {
	return Pair[T1, T2]{First: first, Second: second}
}

// Unpack returns both members.
func (p Pair[T1, T2]) Unpack() (T1, T2) {
	return p.First, p.Second
}

// PairLess orders pairs lexicographically, First then Second.
func PairLess[T1, T2 any](first infra.LessFunc[T1], second infra.LessFunc[T2]) infra.LessFunc[Pair[T1, T2]] {
	return func(a, b Pair[T1, T2]) bool {
		if first(a.First, b.First) {
			return true
		} else if first(b.First, a.First) {
			return false
		}
		return second(a.Second, b.Second)
	}
}

// PairEqual compares both members with ==.
func PairEqual[T1, T2 comparable](a, b Pair[T1, T2]) bool {
	return a.First == b.First && a.Second == b.Second
}
