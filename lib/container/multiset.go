package container

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
)

// MultiSet is an ordered collection of keys that may repeat.
type MultiSet[K any] struct {
	setCore[K]
}

func NewMultiSet[K infra.OrderedKey](opts ...Option[K]) *MultiSet[K] {
	return NewMultiSetFunc[K](infra.Less[K](), opts...)
}

func NewMultiSetFunc[K any](less infra.LessFunc[K], opts ...Option[K]) *MultiSet[K] {
	return &MultiSet[K]{setCore: newSetCore[K](less, true, opts)}
}

// Insert always adds key, after the equivalent ones.
func (s *MultiSet[K]) Insert(key K) (SetIterator[K], error) {
	it, _, err := s.tree.Insert(key)
	return s.wrap(it), err
}

func (s *MultiSet[K]) InsertHint(hint SetIterator[K], key K) (SetIterator[K], error) {
	it, _, err := s.tree.InsertHint(hint.it, key)
	return s.wrap(it), err
}

func (s *MultiSet[K]) InsertRange(seq iter.Seq[K]) error {
	return s.insertRange(seq)
}

func (s *MultiSet[K]) Swap(other *MultiSet[K]) {
	s.tree, other.tree = other.tree, s.tree
}

func (s *MultiSet[K]) Clone() (*MultiSet[K], error) {
	dup, err := s.tree.Clone()
	if err != nil {
		return nil, err
	}
	return &MultiSet[K]{setCore: setCore[K]{tree: dup}}, nil
}
