package container

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
)

// Set is an ordered collection of unique keys.
type Set[K any] struct {
	setCore[K]
}

func NewSet[K infra.OrderedKey](opts ...Option[K]) *Set[K] {
	return NewSetFunc[K](infra.Less[K](), opts...)
}

func NewSetFunc[K any](less infra.LessFunc[K], opts ...Option[K]) *Set[K] {
	return &Set[K]{setCore: newSetCore[K](less, false, opts)}
}

// Insert adds key unless present and reports whether it did.
func (s *Set[K]) Insert(key K) (SetIterator[K], bool, error) {
	it, ok, err := s.tree.Insert(key)
	return s.wrap(it), ok, err
}

func (s *Set[K]) InsertHint(hint SetIterator[K], key K) (SetIterator[K], bool, error) {
	it, ok, err := s.tree.InsertHint(hint.it, key)
	return s.wrap(it), ok, err
}

func (s *Set[K]) InsertRange(seq iter.Seq[K]) error {
	return s.insertRange(seq)
}

func (s *Set[K]) Swap(other *Set[K]) {
	s.tree, other.tree = other.tree, s.tree
}

func (s *Set[K]) Clone() (*Set[K], error) {
	dup, err := s.tree.Clone()
	if err != nil {
		return nil, err
	}
	return &Set[K]{setCore: setCore[K]{tree: dup}}, nil
}
