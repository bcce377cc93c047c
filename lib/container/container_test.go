package container

import (
	"maps"
	randv2 "math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/tree"
	"github.com/ftcontainers/xstl/lib/utility"
)

func TestMap_IndexInsertsDefault(t *testing.T) {
	m := NewMap[int, string]()
	v, err := m.Index(42)
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, "", *v)
	require.Equal(t, int64(1), m.Len())

	*v = "answer"
	it := m.Find(42)
	require.False(t, it.IsEnd())
	require.Equal(t, "answer", *it.ValuePtr())
	require.Equal(t, 42, it.Key())

	// Index on a present key does not insert.
	again, err := m.Index(42)
	require.NoError(t, err)
	require.Same(t, v, again)
	require.Equal(t, int64(1), m.Len())

	// The pointer survives unrelated insertions and erasures.
	for i := 0; i < 100; i++ {
		_, _, err = m.Insert(utility.MakePair(i*7, "x"))
		require.NoError(t, err)
	}
	m.EraseKey(0)
	m.EraseKey(7)
	require.Equal(t, "answer", *v)
	require.NoError(t, tree.Validate(m.tree))
}

func TestMap_At(t *testing.T) {
	m := NewMap[string, int]()
	_, err := m.At("missing")
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, int64(0), m.Len())

	_, _, _ = m.Insert(utility.MakePair("a", 1))
	v, err := m.At("a")
	require.NoError(t, err)
	*v = 2
	require.Equal(t, 2, m.Find("a").Value().Second)
}

func TestMap_InsertUnique(t *testing.T) {
	m := NewMap[int, string]()
	it, ok, err := m.Insert(utility.MakePair(1, "a"))
	require.NoError(t, err)
	require.True(t, ok)
	dup, ok, err := m.Insert(utility.MakePair(1, "b"))
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, it.Equal(dup))
	require.Equal(t, "a", dup.Value().Second)

	_, ok, err = m.InsertOrAssign(1, "c")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "c", m.Find(1).Value().Second)

	_, ok, err = m.InsertHint(m.End(), utility.MakePair(2, "d"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, slices.Collect(m.Keys()))
	require.Equal(t, []string{"c", "d"}, slices.Collect(m.Values()))
	require.Equal(t, map[int]string{1: "c", 2: "d"}, maps.Collect(m.All()))
}

func TestMultiMap_DuplicateKeys(t *testing.T) {
	m := NewMultiMap[int, string]()
	_, err := m.Insert(utility.MakePair(20, "first"))
	require.NoError(t, err)
	_, err = m.Insert(utility.MakePair(20, "second"))
	require.NoError(t, err)
	_, _ = m.Insert(utility.MakePair(10, "x"))
	require.Equal(t, int64(2), m.Count(20))

	r := m.EqualRange(20)
	require.Equal(t, int64(2), utility.Distance(r.First, r.Second))
	require.Equal(t, "first", r.First.Value().Second)

	// By iterator removes exactly one.
	next := m.Erase(m.Find(20))
	require.Equal(t, "second", next.Value().Second)
	require.Equal(t, int64(1), m.Count(20))

	_, _ = m.Insert(utility.MakePair(20, "third"))
	// By key removes every match at once.
	require.Equal(t, int64(2), m.EraseKey(20))
	require.Equal(t, int64(0), m.Count(20))
	require.Equal(t, int64(0), m.EraseKey(20))
	require.Equal(t, int64(1), m.Len())
}

func TestMultiSet_DuplicateKeys(t *testing.T) {
	s := NewMultiSet[int]()
	for _, k := range []int{20, 20, 5} {
		_, err := s.Insert(k)
		require.NoError(t, err)
	}
	require.Equal(t, int64(2), s.Count(20))
	s.Erase(s.Find(20))
	require.Equal(t, int64(1), s.Count(20))
	_, _ = s.Insert(20)
	require.Equal(t, int64(2), s.EraseKey(20))
	require.Equal(t, []int{5}, slices.Collect(s.All()))
}

func TestSet_EraseWhileIterating(t *testing.T) {
	s := NewSet[int]()
	for i := 0; i < 100; i++ {
		_, _, err := s.Insert(i)
		require.NoError(t, err)
	}
	seen := make([]int, 0, 100)
	for it := s.Begin(); !it.Equal(s.End()); {
		seen = append(seen, it.Value())
		if it.Value()%2 == 0 {
			it = s.Erase(it)
		} else {
			it = it.Next()
		}
	}
	require.Len(t, seen, 100)
	for i, v := range seen {
		require.Equal(t, i, v)
	}
	require.Equal(t, int64(50), s.Len())
	for v := range s.All() {
		require.Equal(t, 1, v%2)
	}
	require.NoError(t, tree.Validate(s.tree))
}

func TestSet_Bounds(t *testing.T) {
	s := NewSet[int]()
	require.NoError(t, s.InsertRange(slices.Values([]int{10, 20, 30, 40})))

	testcases := []struct {
		name  string
		key   int
		lower int
		upper int
		found bool
	}{
		{name: "before all", key: 1, lower: 10, upper: 10},
		{name: "present", key: 20, lower: 20, upper: 30, found: true},
		{name: "between", key: 25, lower: 30, upper: 30},
		{name: "last", key: 40, lower: 40, upper: 0, found: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.lower, s.LowerBound(tc.key).Value())
			require.Equal(tt, tc.upper, s.UpperBound(tc.key).Value())
			require.Equal(tt, tc.found, s.Contains(tc.key))
		})
	}
	require.True(t, s.LowerBound(50).IsEnd())
	require.True(t, s.UpperBound(40).IsEnd())
	require.True(t, s.Find(25).Equal(s.End()))
}

func TestSet_ReverseIteration(t *testing.T) {
	s := NewSetFunc[string](func(a, b string) bool {
		return strings.ToLower(a) < strings.ToLower(b)
	})
	for _, k := range []string{"b", "A", "c", "B"} {
		_, _, _ = s.Insert(k)
	}
	require.Equal(t, []string{"A", "b", "c"}, slices.Collect(s.All()))

	got := make([]string, 0, 3)
	for it := s.RBegin(); !it.Equal(s.REnd()); it = it.Next() {
		got = append(got, it.Value())
	}
	require.Equal(t, []string{"c", "b", "A"}, got)
	require.Equal(t, got, slices.Collect(s.Backward()))
	require.Equal(t, "b", s.RBegin().Next().Value())
	require.Equal(t, "c", s.RBegin().Next().Base().Value())
}

func TestMap_ReverseIteration(t *testing.T) {
	m := NewMapFunc[int, int](infra.Greater[int]())
	for i := 0; i < 5; i++ {
		_, _, _ = m.Insert(utility.MakePair(i, i*i))
	}
	require.Equal(t, []int{4, 3, 2, 1, 0}, slices.Collect(m.Keys()))
	keys := make([]int, 0, 5)
	for it := m.RBegin(); !it.Equal(m.REnd()); it = it.Next() {
		keys = append(keys, it.Value().First)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, keys)
	backward := make([]int, 0, 5)
	for k, v := range m.Backward() {
		require.Equal(t, k*k, v)
		backward = append(backward, k)
	}
	require.Equal(t, keys, backward)
	require.True(t, m.KeyComp()(3, 1))
	require.True(t, m.ValueComp()(utility.MakePair(3, 0), utility.MakePair(1, 100)))
}

func TestSwap_IteratorsFollowElements(t *testing.T) {
	a, b := NewMap[int, string](), NewMap[int, string]()
	itA, _, _ := a.Insert(utility.MakePair(1, "a"))
	_, _, _ = b.Insert(utility.MakePair(2, "b"))
	_, _, _ = b.Insert(utility.MakePair(3, "c"))

	Swap(a, b)
	require.Equal(t, int64(2), a.Len())
	require.Equal(t, int64(1), b.Len())
	require.True(t, itA.Equal(b.Begin()))
	require.Equal(t, "a", itA.Value().Second)
	require.True(t, itA.Next().Equal(b.End()))

	s1, s2 := NewMultiSet[int](), NewMultiSet[int]()
	_, _ = s1.Insert(1)
	s1.Swap(s2)
	require.True(t, s1.Empty())
	require.Equal(t, int64(1), s2.Count(1))
}

func TestClone_Independent(t *testing.T) {
	m := NewMultiMap[int, int]()
	for i := 0; i < 50; i++ {
		_, _ = m.Insert(utility.MakePair(i%10, i))
	}
	dup, err := m.Clone()
	require.NoError(t, err)
	require.True(t, Equal[utility.Pair[int, int]](m, dup))

	m.EraseKey(3)
	require.Equal(t, int64(45), m.Len())
	require.Equal(t, int64(50), dup.Len())
	require.Equal(t, int64(5), dup.Count(3))
	require.False(t, Equal[utility.Pair[int, int]](m, dup))
	require.NoError(t, tree.Validate(dup.tree))

	s := NewSet[int]()
	_ = s.InsertRange(slices.Values([]int{3, 1, 2}))
	sdup, err := s.Clone()
	require.NoError(t, err)
	s.Clear()
	require.Equal(t, []int{1, 2, 3}, slices.Collect(sdup.All()))
}

func TestCompare(t *testing.T) {
	build := func(keys ...int) *Set[int] {
		s := NewSet[int]()
		require.NoError(t, s.InsertRange(slices.Values(keys)))
		return s
	}
	less := infra.Less[int]()
	testcases := []struct {
		name  string
		a, b  *Set[int]
		cmp   int
		equal bool
	}{
		{name: "empty", a: build(), b: build(), cmp: 0, equal: true},
		{name: "same", a: build(1, 2, 3), b: build(3, 2, 1), cmp: 0, equal: true},
		{name: "prefix", a: build(1, 2), b: build(1, 2, 3), cmp: -1},
		{name: "greater element", a: build(1, 4), b: build(1, 2, 3), cmp: 1},
		{name: "smaller first", a: build(0, 9), b: build(1), cmp: -1},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.equal, Equal[int](tc.a, tc.b))
			require.Equal(tt, tc.cmp, Compare[int](tc.a, tc.b, less))
			require.Equal(tt, tc.cmp < 0, Less[int](tc.a, tc.b, less))
			require.Equal(tt, tc.cmp <= 0, LessEqual[int](tc.a, tc.b, less))
			require.Equal(tt, tc.cmp > 0, Greater[int](tc.a, tc.b, less))
			require.Equal(tt, tc.cmp >= 0, GreaterEqual[int](tc.a, tc.b, less))
		})
	}

	m1, m2 := NewMap[int, string](), NewMap[int, string]()
	_, _, _ = m1.Insert(utility.MakePair(1, "a"))
	_, _, _ = m2.Insert(utility.MakePair(1, "b"))
	pairLess := utility.PairLess(infra.Less[int](), infra.Less[string]())
	require.True(t, Less[utility.Pair[int, string]](m1, m2, pairLess))
	require.False(t, EqualFunc[utility.Pair[int, string]](m1, m2, utility.PairEqual[int, string]))
}

func TestWithAllocator(t *testing.T) {
	alloc := tree.NewLimitedAllocator[tree.Node[utility.Pair[int, int]]](nil, 4)
	m := NewMap[int, int](WithAllocator[utility.Pair[int, int]](alloc))
	require.Equal(t, int64(4), m.MaxSize())
	for i := 0; i < 4; i++ {
		_, err := m.Index(i)
		require.NoError(t, err)
	}
	_, err := m.Index(10)
	require.ErrorIs(t, err, tree.ErrMaxSizeExceeded)
	require.Equal(t, int64(4), m.Len())
	require.Same(t, alloc, m.Allocator())

	s := NewSet[int](WithMaxSize[int](2))
	require.NoError(t, s.InsertRange(slices.Values([]int{1, 2})))
	require.ErrorIs(t, s.InsertRange(slices.Values([]int{3})), tree.ErrMaxSizeExceeded)

	m.Release()
	require.Equal(t, int64(0), alloc.InUse())
}

func TestMultiSet_RandomAgainstSortedSlice(t *testing.T) {
	s := NewMultiSet[int](WithAllocator[int](tree.NewPoolAllocator[tree.Node[int]]()))
	expected := make([]int, 0, 2000)
	for i := 0; i < 2000; i++ {
		k := randv2.IntN(300)
		_, err := s.InsertHint(s.LowerBound(k), k)
		require.NoError(t, err)
		expected = append(expected, k)
	}
	slices.Sort(expected)
	require.Equal(t, expected, slices.Collect(s.All()))

	for i := 0; i < 100; i++ {
		k := randv2.IntN(300)
		n := s.EraseKey(k)
		before := len(expected)
		expected = slices.DeleteFunc(expected, func(v int) bool { return v == k })
		require.Equal(t, int64(before-len(expected)), n)
	}
	require.Equal(t, expected, slices.Collect(s.All()))
	require.NoError(t, tree.Validate(s.tree))

	first, last := s.EqualRange(expected[0]).Unpack()
	s.EraseRange(first, last)
	require.False(t, s.Contains(expected[0]))
}

func TestValidateAndHeight(t *testing.T) {
	s := NewSet[int]()
	m := NewMultiMap[int, int]()
	for i := 1; i <= 1000; i++ {
		_, _, err := s.Insert(i)
		require.NoError(t, err)
		_, err = m.Insert(utility.MakePair(i%10, i))
		require.NoError(t, err)
	}
	require.NoError(t, s.Validate())
	require.NoError(t, m.Validate())
	require.LessOrEqual(t, s.Height(), 19)
	require.LessOrEqual(t, m.Height(), 19)

	for it := s.Begin(); !it.IsEnd(); {
		if it.Value()%3 == 0 {
			it = s.Erase(it)
			continue
		}
		it = it.Next()
	}
	require.NoError(t, s.Validate())
	require.Equal(t, int64(667), s.Len())
}
