package tree

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/utility"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

// KeyOfValue extracts the ordering key from a stored value.
type KeyOfValue[K, V any] func(v V) K

// Identity is the key extraction of sets, the value is the key.
func Identity[K any]() KeyOfValue[K, K] {
	return func(v K) K {
		return v
	}
}

// PairFirst is the key extraction of maps.
func PairFirst[K, V any]() KeyOfValue[K, utility.Pair[K, V]] {
	return func(p utility.Pair[K, V]) K {
		return p.First
	}
}

// RBTree is the red-black tree engine shared by the ordered containers.
// It is not thread safe.
type RBTree[K, V any] interface {
	Len() int64
	Empty() bool
	MaxSize() int64
	Height() int
	Root() *Node[V]
	// IsNil reports whether node is the sentinel of the tree.
	IsNil(node *Node[V]) bool
	KeyOf(v V) K
	KeyLess() infra.LessFunc[K]
	IsMultiKey() bool

	Begin() Iterator[K, V]
	End() Iterator[K, V]
	Insert(v V) (Iterator[K, V], bool, error)
	InsertHint(hint Iterator[K, V], v V) (Iterator[K, V], bool, error)
	Erase(pos Iterator[K, V]) Iterator[K, V]
	EraseKey(key K) int64
	EraseRange(first, last Iterator[K, V]) Iterator[K, V]
	Find(key K) Iterator[K, V]
	Count(key K) int64
	LowerBound(key K) Iterator[K, V]
	UpperBound(key K) Iterator[K, V]
	EqualRange(key K) (Iterator[K, V], Iterator[K, V])

	Foreach(action func(idx int64, color RBColor, v V) bool)
	All() iter.Seq[V]
	Backward() iter.Seq[V]
	Clear()
	Release()
}
