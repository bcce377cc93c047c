package bench

import (
	"iter"

	"github.com/ftcontainers/xstl/lib/container"
	"github.com/ftcontainers/xstl/lib/tree"
	"github.com/ftcontainers/xstl/lib/utility"
)

// target is the int keyed view of a container under load.
type target interface {
	insert(key int) error
	contains(key int) bool
	count(key int) int64
	eraseWhile(pred func(key int) bool) int64
	keys() iter.Seq[int]
	len() int64
	validate() error
	release()
}

func newTarget(kind ContainerKind, alloc AllocatorKind) target {
	switch kind {
	case MapKind:
		return &mapTarget{m: container.NewMap[int, int](pairAllocator(alloc)...)}
	case MultiMapKind:
		return &multiMapTarget{m: container.NewMultiMap[int, int](pairAllocator(alloc)...)}
	case SetKind:
		return &setTarget{s: container.NewSet[int](keyAllocator(alloc)...)}
	case MultiSetKind:
		return &multiSetTarget{s: container.NewMultiSet[int](keyAllocator(alloc)...)}
	default:
	}
	return nil
}

func pairAllocator(alloc AllocatorKind) []container.Option[utility.Pair[int, int]] {
	if alloc != PoolAllocator {
		return nil
	}
	return []container.Option[utility.Pair[int, int]]{
		container.WithAllocator[utility.Pair[int, int]](tree.NewPoolAllocator[tree.Node[utility.Pair[int, int]]]()),
	}
}

func keyAllocator(alloc AllocatorKind) []container.Option[int] {
	if alloc != PoolAllocator {
		return nil
	}
	return []container.Option[int]{
		container.WithAllocator[int](tree.NewPoolAllocator[tree.Node[int]]()),
	}
}

type mapTarget struct {
	m *container.Map[int, int]
}

func (t *mapTarget) insert(key int) error {
	_, _, err := t.m.InsertOrAssign(key, key)
	return err
}

func (t *mapTarget) contains(key int) bool { return t.m.Contains(key) }
func (t *mapTarget) count(key int) int64   { return t.m.Count(key) }
func (t *mapTarget) keys() iter.Seq[int]   { return t.m.Keys() }
func (t *mapTarget) len() int64            { return t.m.Len() }
func (t *mapTarget) validate() error       { return t.m.Validate() }
func (t *mapTarget) release()              { t.m.Release() }

func (t *mapTarget) eraseWhile(pred func(key int) bool) int64 {
	erased := int64(0)
	for it := t.m.Begin(); !it.IsEnd(); {
		if pred(it.Key()) {
			it = t.m.Erase(it)
			erased++
			continue
		}
		it = it.Next()
	}
	return erased
}

type multiMapTarget struct {
	m *container.MultiMap[int, int]
}

func (t *multiMapTarget) insert(key int) error {
	_, err := t.m.Insert(utility.MakePair(key, key))
	return err
}

func (t *multiMapTarget) contains(key int) bool { return t.m.Contains(key) }
func (t *multiMapTarget) count(key int) int64   { return t.m.Count(key) }
func (t *multiMapTarget) keys() iter.Seq[int]   { return t.m.Keys() }
func (t *multiMapTarget) len() int64            { return t.m.Len() }
func (t *multiMapTarget) validate() error       { return t.m.Validate() }
func (t *multiMapTarget) release()              { t.m.Release() }

func (t *multiMapTarget) eraseWhile(pred func(key int) bool) int64 {
	erased := int64(0)
	for it := t.m.Begin(); !it.IsEnd(); {
		if pred(it.Key()) {
			it = t.m.Erase(it)
			erased++
			continue
		}
		it = it.Next()
	}
	return erased
}

type setTarget struct {
	s *container.Set[int]
}

func (t *setTarget) insert(key int) error {
	_, _, err := t.s.Insert(key)
	return err
}

func (t *setTarget) contains(key int) bool { return t.s.Contains(key) }
func (t *setTarget) count(key int) int64   { return t.s.Count(key) }
func (t *setTarget) keys() iter.Seq[int]   { return t.s.All() }
func (t *setTarget) len() int64            { return t.s.Len() }
func (t *setTarget) validate() error       { return t.s.Validate() }
func (t *setTarget) release()              { t.s.Release() }

func (t *setTarget) eraseWhile(pred func(key int) bool) int64 {
	erased := int64(0)
	for it := t.s.Begin(); !it.IsEnd(); {
		if pred(it.Value()) {
			it = t.s.Erase(it)
			erased++
			continue
		}
		it = it.Next()
	}
	return erased
}

type multiSetTarget struct {
	s *container.MultiSet[int]
}

func (t *multiSetTarget) insert(key int) error {
	_, err := t.s.Insert(key)
	return err
}

func (t *multiSetTarget) contains(key int) bool { return t.s.Contains(key) }
func (t *multiSetTarget) count(key int) int64   { return t.s.Count(key) }
func (t *multiSetTarget) keys() iter.Seq[int]   { return t.s.All() }
func (t *multiSetTarget) len() int64            { return t.s.Len() }
func (t *multiSetTarget) validate() error       { return t.s.Validate() }
func (t *multiSetTarget) release()              { t.s.Release() }

func (t *multiSetTarget) eraseWhile(pred func(key int) bool) int64 {
	erased := int64(0)
	for it := t.s.Begin(); !it.IsEnd(); {
		if pred(it.Value()) {
			it = t.s.Erase(it)
			erased++
			continue
		}
		it = it.Next()
	}
	return erased
}
