package container

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/tree"
	"github.com/ftcontainers/xstl/lib/utility"
)

// mapCore is the read and erase surface shared by Map and MultiMap.
type mapCore[K, V any] struct {
	tree *tree.Tree[K, utility.Pair[K, V]]
}

func newMapCore[K, V any](less infra.LessFunc[K], multi bool, opts []Option[utility.Pair[K, V]]) mapCore[K, V] {
	return mapCore[K, V]{
		tree: tree.NewRBTree[K, utility.Pair[K, V]](
			less,
			tree.PairFirst[K, V](),
			treeOpts[K, utility.Pair[K, V]](multi, opts)...,
		),
	}
}

func (m *mapCore[K, V]) wrap(it tree.Iterator[K, utility.Pair[K, V]]) MapIterator[K, V] {
	return MapIterator[K, V]{it: it}
}

func (m *mapCore[K, V]) Len() int64 {
	return m.tree.Len()
}

func (m *mapCore[K, V]) Empty() bool {
	return m.tree.Empty()
}

func (m *mapCore[K, V]) MaxSize() int64 {
	return m.tree.MaxSize()
}

// Allocator returns the node allocator of the container.
func (m *mapCore[K, V]) Allocator() tree.Allocator[tree.Node[utility.Pair[K, V]]] {
	return m.tree.Allocator()
}

func (m *mapCore[K, V]) Begin() MapIterator[K, V] {
	return m.wrap(m.tree.Begin())
}

func (m *mapCore[K, V]) End() MapIterator[K, V] {
	return m.wrap(m.tree.End())
}

// RBegin refers to the last element.
func (m *mapCore[K, V]) RBegin() utility.ReverseIterator[MapIterator[K, V], utility.Pair[K, V]] {
	return utility.Reverse[MapIterator[K, V], utility.Pair[K, V]](m.End())
}

func (m *mapCore[K, V]) REnd() utility.ReverseIterator[MapIterator[K, V], utility.Pair[K, V]] {
	return utility.Reverse[MapIterator[K, V], utility.Pair[K, V]](m.Begin())
}

func (m *mapCore[K, V]) Find(key K) MapIterator[K, V] {
	return m.wrap(m.tree.Find(key))
}

func (m *mapCore[K, V]) Contains(key K) bool {
	return !m.tree.Find(key).IsEnd()
}

func (m *mapCore[K, V]) Count(key K) int64 {
	return m.tree.Count(key)
}

func (m *mapCore[K, V]) LowerBound(key K) MapIterator[K, V] {
	return m.wrap(m.tree.LowerBound(key))
}

func (m *mapCore[K, V]) UpperBound(key K) MapIterator[K, V] {
	return m.wrap(m.tree.UpperBound(key))
}

func (m *mapCore[K, V]) EqualRange(key K) utility.Pair[MapIterator[K, V], MapIterator[K, V]] {
	first, last := m.tree.EqualRange(key)
	return utility.MakePair(m.wrap(first), m.wrap(last))
}

// Erase removes the element at pos and returns its successor.
func (m *mapCore[K, V]) Erase(pos MapIterator[K, V]) MapIterator[K, V] {
	return m.wrap(m.tree.Erase(pos.it))
}

// EraseKey removes all the elements with the given key and returns
// how many there were.
func (m *mapCore[K, V]) EraseKey(key K) int64 {
	return m.tree.EraseKey(key)
}

func (m *mapCore[K, V]) EraseRange(first, last MapIterator[K, V]) MapIterator[K, V] {
	return m.wrap(m.tree.EraseRange(first.it, last.it))
}

func (m *mapCore[K, V]) Clear() {
	m.tree.Clear()
}

// Release hands every node back to the allocator. The container must
// not be used afterwards.
func (m *mapCore[K, V]) Release() {
	m.tree.Release()
}

// Validate checks the red-black and ordering invariants of the
// underlying tree.
func (m *mapCore[K, V]) Validate() error {
	return tree.Validate(m.tree)
}

// Height of the underlying tree.
func (m *mapCore[K, V]) Height() int {
	return m.tree.Height()
}

func (m *mapCore[K, V]) KeyComp() infra.LessFunc[K] {
	return m.tree.KeyLess()
}

// ValueComp orders the stored pairs by their keys.
func (m *mapCore[K, V]) ValueComp() infra.LessFunc[utility.Pair[K, V]] {
	less := m.tree.KeyLess()
	return func(a, b utility.Pair[K, V]) bool {
		return less(a.First, b.First)
	}
}

// All returns an iterator over key-value pairs in key order.
func (m *mapCore[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range m.tree.All() {
			if !yield(p.First, p.Second) {
				return
			}
		}
	}
}

// Backward returns an iterator over key-value pairs in reverse key order.
func (m *mapCore[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range m.tree.Backward() {
			if !yield(p.First, p.Second) {
				return
			}
		}
	}
}

// Elements returns the stored pairs in key order.
func (m *mapCore[K, V]) Elements() iter.Seq[utility.Pair[K, V]] {
	return m.tree.All()
}

func (m *mapCore[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := range m.tree.All() {
			if !yield(p.First) {
				return
			}
		}
	}
}

func (m *mapCore[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for p := range m.tree.All() {
			if !yield(p.Second) {
				return
			}
		}
	}
}
