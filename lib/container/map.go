package container

import (
	"errors"
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/utility"
)

var ErrOutOfRange = errors.New("[container] key out of range")

// Map is an ordered associative container of unique keys, each mapped
// to a value. It is not thread safe.
type Map[K, V any] struct {
	mapCore[K, V]
}

// NewMap creates a map ordered by the natural order of K.
func NewMap[K infra.OrderedKey, V any](opts ...Option[utility.Pair[K, V]]) *Map[K, V] {
	return NewMapFunc[K, V](infra.Less[K](), opts...)
}

// NewMapFunc creates a map ordered by less.
func NewMapFunc[K, V any](less infra.LessFunc[K], opts ...Option[utility.Pair[K, V]]) *Map[K, V] {
	return &Map[K, V]{mapCore: newMapCore[K, V](less, false, opts)}
}

// Index returns a pointer to the value mapped to key, inserting a zero
// value first if the key is absent. The pointer stays valid until the
// element is erased.
func (m *Map[K, V]) Index(key K) (*V, error) {
	it := m.tree.LowerBound(key)
	if it.IsEnd() || m.tree.KeyLess()(key, it.Value().First) {
		var (
			zero V
			err  error
		)
		if it, _, err = m.tree.InsertHint(it, utility.MakePair(key, zero)); err != nil {
			return nil, err
		}
	}
	return &it.Pointer().Second, nil
}

// At returns a pointer to the value mapped to key, or ErrOutOfRange.
func (m *Map[K, V]) At(key K) (*V, error) {
	it := m.tree.Find(key)
	if it.IsEnd() {
		return nil, infra.WrapErrorStack(ErrOutOfRange)
	}
	return &it.Pointer().Second, nil
}

// Insert adds p unless its key is present. It returns the element
// holding the key and whether the insertion took place.
func (m *Map[K, V]) Insert(p utility.Pair[K, V]) (MapIterator[K, V], bool, error) {
	it, ok, err := m.tree.Insert(p)
	return m.wrap(it), ok, err
}

// InsertHint is Insert with a suggestion of the position right after p.
func (m *Map[K, V]) InsertHint(hint MapIterator[K, V], p utility.Pair[K, V]) (MapIterator[K, V], bool, error) {
	it, ok, err := m.tree.InsertHint(hint.it, p)
	return m.wrap(it), ok, err
}

// InsertOrAssign sets the value of key, inserting it if absent.
func (m *Map[K, V]) InsertOrAssign(key K, val V) (MapIterator[K, V], bool, error) {
	it, ok, err := m.tree.Insert(utility.MakePair(key, val))
	if err != nil {
		return m.wrap(it), false, err
	}
	if !ok {
		it.Pointer().Second = val
	}
	return m.wrap(it), ok, nil
}

// InsertRange inserts every pair of seq, stopping at the first failure.
func (m *Map[K, V]) InsertRange(seq iter.Seq[utility.Pair[K, V]]) error {
	for p := range seq {
		if _, _, err := m.tree.InsertHint(m.tree.End(), p); err != nil {
			return err
		}
	}
	return nil
}

// Swap exchanges the contents of two maps. Iterators keep referring
// to the same elements, now owned by the other map.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	m.tree, other.tree = other.tree, m.tree
}

// Clone returns a deep copy sharing no storage with m.
func (m *Map[K, V]) Clone() (*Map[K, V], error) {
	dup, err := m.tree.Clone()
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{mapCore: mapCore[K, V]{tree: dup}}, nil
}
