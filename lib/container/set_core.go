package container

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/tree"
	"github.com/ftcontainers/xstl/lib/utility"
)

// setCore is the read and erase surface shared by Set and MultiSet.
type setCore[K any] struct {
	tree *tree.Tree[K, K]
}

func newSetCore[K any](less infra.LessFunc[K], multi bool, opts []Option[K]) setCore[K] {
	return setCore[K]{
		tree: tree.NewRBTree[K, K](less, tree.Identity[K](), treeOpts[K, K](multi, opts)...),
	}
}

func (s *setCore[K]) wrap(it tree.Iterator[K, K]) SetIterator[K] {
	return SetIterator[K]{it: it}
}

func (s *setCore[K]) Len() int64 {
	return s.tree.Len()
}

func (s *setCore[K]) Empty() bool {
	return s.tree.Empty()
}

func (s *setCore[K]) MaxSize() int64 {
	return s.tree.MaxSize()
}

func (s *setCore[K]) Allocator() tree.Allocator[tree.Node[K]] {
	return s.tree.Allocator()
}

func (s *setCore[K]) Begin() SetIterator[K] {
	return s.wrap(s.tree.Begin())
}

func (s *setCore[K]) End() SetIterator[K] {
	return s.wrap(s.tree.End())
}

func (s *setCore[K]) RBegin() utility.ReverseIterator[SetIterator[K], K] {
	return utility.Reverse[SetIterator[K], K](s.End())
}

func (s *setCore[K]) REnd() utility.ReverseIterator[SetIterator[K], K] {
	return utility.Reverse[SetIterator[K], K](s.Begin())
}

func (s *setCore[K]) Find(key K) SetIterator[K] {
	return s.wrap(s.tree.Find(key))
}

func (s *setCore[K]) Contains(key K) bool {
	return !s.tree.Find(key).IsEnd()
}

func (s *setCore[K]) Count(key K) int64 {
	return s.tree.Count(key)
}

func (s *setCore[K]) LowerBound(key K) SetIterator[K] {
	return s.wrap(s.tree.LowerBound(key))
}

func (s *setCore[K]) UpperBound(key K) SetIterator[K] {
	return s.wrap(s.tree.UpperBound(key))
}

func (s *setCore[K]) EqualRange(key K) utility.Pair[SetIterator[K], SetIterator[K]] {
	first, last := s.tree.EqualRange(key)
	return utility.MakePair(s.wrap(first), s.wrap(last))
}

func (s *setCore[K]) Erase(pos SetIterator[K]) SetIterator[K] {
	return s.wrap(s.tree.Erase(pos.it))
}

func (s *setCore[K]) EraseKey(key K) int64 {
	return s.tree.EraseKey(key)
}

func (s *setCore[K]) EraseRange(first, last SetIterator[K]) SetIterator[K] {
	return s.wrap(s.tree.EraseRange(first.it, last.it))
}

func (s *setCore[K]) Clear() {
	s.tree.Clear()
}

func (s *setCore[K]) Release() {
	s.tree.Release()
}

func (s *setCore[K]) Validate() error {
	return tree.Validate(s.tree)
}

func (s *setCore[K]) Height() int {
	return s.tree.Height()
}

// KeyComp and ValueComp are the same predicate for sets.
func (s *setCore[K]) KeyComp() infra.LessFunc[K] {
	return s.tree.KeyLess()
}

func (s *setCore[K]) ValueComp() infra.LessFunc[K] {
	return s.tree.KeyLess()
}

func (s *setCore[K]) All() iter.Seq[K] {
	return s.tree.All()
}

func (s *setCore[K]) Backward() iter.Seq[K] {
	return s.tree.Backward()
}

func (s *setCore[K]) Elements() iter.Seq[K] {
	return s.tree.All()
}

func (s *setCore[K]) insertRange(seq iter.Seq[K]) error {
	for k := range seq {
		if _, _, err := s.tree.InsertHint(s.tree.End(), k); err != nil {
			return err
		}
	}
	return nil
}
