package container

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/utility"
)

// MultiMap is an ordered associative container whose keys may repeat.
// Elements with equivalent keys are kept in insertion order.
type MultiMap[K, V any] struct {
	mapCore[K, V]
}

func NewMultiMap[K infra.OrderedKey, V any](opts ...Option[utility.Pair[K, V]]) *MultiMap[K, V] {
	return NewMultiMapFunc[K, V](infra.Less[K](), opts...)
}

func NewMultiMapFunc[K, V any](less infra.LessFunc[K], opts ...Option[utility.Pair[K, V]]) *MultiMap[K, V] {
	return &MultiMap[K, V]{mapCore: newMapCore[K, V](less, true, opts)}
}

// Insert always adds p, after the elements with an equivalent key.
func (m *MultiMap[K, V]) Insert(p utility.Pair[K, V]) (MapIterator[K, V], error) {
	it, _, err := m.tree.Insert(p)
	return m.wrap(it), err
}

func (m *MultiMap[K, V]) InsertHint(hint MapIterator[K, V], p utility.Pair[K, V]) (MapIterator[K, V], error) {
	it, _, err := m.tree.InsertHint(hint.it, p)
	return m.wrap(it), err
}

func (m *MultiMap[K, V]) InsertRange(seq iter.Seq[utility.Pair[K, V]]) error {
	for p := range seq {
		if _, _, err := m.tree.InsertHint(m.tree.End(), p); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiMap[K, V]) Swap(other *MultiMap[K, V]) {
	m.tree, other.tree = other.tree, m.tree
}

func (m *MultiMap[K, V]) Clone() (*MultiMap[K, V], error) {
	dup, err := m.tree.Clone()
	if err != nil {
		return nil, err
	}
	return &MultiMap[K, V]{mapCore: mapCore[K, V]{tree: dup}}, nil
}
