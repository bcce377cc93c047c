package container

import (
	"github.com/ftcontainers/xstl/lib/tree"
	"github.com/ftcontainers/xstl/lib/utility"
)

var (
	_ utility.Bidirectional[MapIterator[int, int]] = MapIterator[int, int]{}
	_ utility.Readable[utility.Pair[int, int]]     = MapIterator[int, int]{}
	_ utility.Bidirectional[SetIterator[int]]      = SetIterator[int]{}
	_ utility.Readable[int]                        = SetIterator[int]{}
)

// MapIterator is the bidirectional iterator of Map and MultiMap.
type MapIterator[K, V any] struct {
	it tree.Iterator[K, utility.Pair[K, V]]
}

func (it MapIterator[K, V]) Next() MapIterator[K, V] {
	return MapIterator[K, V]{it: it.it.Next()}
}

func (it MapIterator[K, V]) Prev() MapIterator[K, V] {
	return MapIterator[K, V]{it: it.it.Prev()}
}

func (it MapIterator[K, V]) Equal(other MapIterator[K, V]) bool {
	return it.it.Equal(other.it)
}

func (it MapIterator[K, V]) IsEnd() bool {
	return it.it.IsEnd()
}

// Value returns the key/value pair, the zero pair at End().
func (it MapIterator[K, V]) Value() utility.Pair[K, V] {
	return it.it.Value()
}

func (it MapIterator[K, V]) Key() K {
	return it.it.Value().First
}

// ValuePtr points at the mapped value inside the node. It stays
// valid until the element is erased. Nil at End().
func (it MapIterator[K, V]) ValuePtr() *V {
	p := it.it.Pointer()
	if p == nil {
		return nil
	}
	return &p.Second
}

func (it MapIterator[K, V]) Category() utility.IteratorCategory {
	return it.it.Category()
}

// SetIterator is the bidirectional iterator of Set and MultiSet.
// Elements are read only.
type SetIterator[K any] struct {
	it tree.Iterator[K, K]
}

func (it SetIterator[K]) Next() SetIterator[K] {
	return SetIterator[K]{it: it.it.Next()}
}

func (it SetIterator[K]) Prev() SetIterator[K] {
	return SetIterator[K]{it: it.it.Prev()}
}

func (it SetIterator[K]) Equal(other SetIterator[K]) bool {
	return it.it.Equal(other.it)
}

func (it SetIterator[K]) IsEnd() bool {
	return it.it.IsEnd()
}

func (it SetIterator[K]) Value() K {
	return it.it.Value()
}

func (it SetIterator[K]) Category() utility.IteratorCategory {
	return it.it.Category()
}
