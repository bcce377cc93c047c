package tree

import (
	"errors"
	randv2 "math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/utility"
)

type checkData struct {
	color RBColor
	key   uint64
}

func newUint64Tree(opts ...RBTreeOpt[uint64, uint64]) *Tree[uint64, uint64] {
	return NewRBTree[uint64, uint64](infra.Less[uint64](), Identity[uint64](), opts...)
}

func requireColors(t *testing.T, tree *Tree[uint64, uint64], expected []checkData) {
	require.Equal(t, int64(len(expected)), tree.Len())
	tree.Foreach(func(idx int64, color RBColor, key uint64) bool {
		require.Equal(t, expected[idx].color, color)
		require.Equal(t, expected[idx].key, key)
		return true
	})
	require.NoError(t, Validate(tree))
}

func TestRbtreeLeftAndRightRotate(t *testing.T) {
	tree := newUint64Tree()

	_, ok, err := tree.Insert(52)
	require.NoError(t, err)
	require.True(t, ok)
	requireColors(t, tree, []checkData{{Black, 52}})

	_, _, _ = tree.Insert(47)
	requireColors(t, tree, []checkData{{Red, 47}, {Black, 52}})

	_, _, _ = tree.Insert(3)
	requireColors(t, tree, []checkData{{Red, 3}, {Black, 47}, {Red, 52}})

	_, _, _ = tree.Insert(35)
	requireColors(t, tree, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	_, _, _ = tree.Insert(24)
	requireColors(t, tree, []checkData{
		{Red, 3},
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	// remove

	require.Equal(t, int64(1), tree.EraseKey(24))
	requireColors(t, tree, []checkData{
		{Red, 3},
		{Black, 35},
		{Black, 47},
		{Black, 52},
	})

	require.Equal(t, int64(1), tree.EraseKey(47))
	requireColors(t, tree, []checkData{
		{Black, 3},
		{Black, 35},
		{Black, 52},
	})

	require.Equal(t, int64(1), tree.EraseKey(52))
	requireColors(t, tree, []checkData{
		{Red, 3}, {Black, 35},
	})

	require.Equal(t, int64(1), tree.EraseKey(3))
	requireColors(t, tree, []checkData{{Black, 35}})

	require.Equal(t, int64(1), tree.EraseKey(35))
	require.True(t, tree.Empty())
	require.True(t, tree.IsNil(tree.Root()))
	require.True(t, tree.Begin().Equal(tree.End()))
}

func TestRbtree_InsertAscendingKeepsInvariants(t *testing.T) {
	tree := newUint64Tree()
	for _, k := range []uint64{10, 20, 5, 15, 25, 1} {
		_, ok, err := tree.Insert(k)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, Validate(tree))
	}
	require.Equal(t, []uint64{1, 5, 10, 15, 20, 25}, slices.Collect(tree.All()))
	require.Equal(t, []uint64{25, 20, 15, 10, 5, 1}, slices.Collect(tree.Backward()))
}

func TestRbtree_MultiKeyDuplicates(t *testing.T) {
	tree := NewRBTree[int, utility.Pair[int, string]](
		infra.Less[int](),
		PairFirst[int, string](),
		WithRBTreeMultiKey[int, utility.Pair[int, string]](),
	)
	_, ok, err := tree.Insert(utility.MakePair(20, "a"))
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = tree.Insert(utility.MakePair(20, "b"))
	require.NoError(t, err)
	require.True(t, ok)
	_, _, _ = tree.Insert(utility.MakePair(10, "x"))
	_, _, _ = tree.Insert(utility.MakePair(20, "c"))
	require.NoError(t, Validate(tree))
	require.Equal(t, int64(3), tree.Count(20))

	// Duplicates keep their insertion order.
	first, last := tree.EqualRange(20)
	got := make([]string, 0, 3)
	for it := first; !it.Equal(last); it = it.Next() {
		got = append(got, it.Value().Second)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)

	// Erase by iterator removes exactly one.
	next := tree.Erase(tree.Find(20))
	require.Equal(t, "b", next.Value().Second)
	require.Equal(t, int64(2), tree.Count(20))

	// Erase by key removes the whole run.
	require.Equal(t, int64(2), tree.EraseKey(20))
	require.Equal(t, int64(0), tree.Count(20))
	require.Equal(t, int64(0), tree.EraseKey(20))
	require.Equal(t, int64(1), tree.Len())
	require.NoError(t, Validate(tree))
}

func TestRbtree_UniqueKeyRejectsDuplicate(t *testing.T) {
	tree := NewRBTree[int, utility.Pair[int, string]](infra.Less[int](), PairFirst[int, string]())
	it, ok, err := tree.Insert(utility.MakePair(1, "a"))
	require.NoError(t, err)
	require.True(t, ok)
	dup, ok, err := tree.Insert(utility.MakePair(1, "b"))
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, it.Equal(dup))
	require.Equal(t, "a", dup.Value().Second)
	require.Equal(t, int64(1), tree.Len())
}

func TestRbtree_SortedInsertHeight(t *testing.T) {
	tree := newUint64Tree()
	for i := uint64(1); i <= 1000; i++ {
		_, _, err := tree.Insert(i)
		require.NoError(t, err)
	}
	require.NoError(t, Validate(tree))
	// 2*log2(1001) ~ 19.9
	require.LessOrEqual(t, tree.Height(), 19)
	require.Equal(t, int64(1000), tree.Len())
}

func TestRbtree_EraseRoot(t *testing.T) {
	tree := newUint64Tree()
	for _, k := range []uint64{10, 5, 15} {
		_, _, _ = tree.Insert(k)
	}
	require.Equal(t, uint64(10), tree.Root().Value())
	next := tree.Erase(Iterator[uint64, uint64]{tree: tree, node: tree.Root()})
	require.Equal(t, uint64(15), next.Value())
	require.NoError(t, Validate(tree))
	require.Equal(t, []uint64{5, 15}, slices.Collect(tree.All()))
	require.Equal(t, Black, tree.Root().Color())
}

func TestRbtree_EraseWhileIterating(t *testing.T) {
	tree := newUint64Tree()
	for i := uint64(0); i < 200; i++ {
		_, _, _ = tree.Insert(i)
	}
	visited := make([]uint64, 0, 200)
	for it := tree.Begin(); !it.IsEnd(); {
		visited = append(visited, it.Value())
		if it.Value()%3 == 0 {
			it = tree.Erase(it)
			continue
		}
		it = it.Next()
	}
	require.Len(t, visited, 200)
	for i, v := range visited {
		require.Equal(t, uint64(i), v)
	}
	require.Equal(t, int64(200-67), tree.Len())
	require.NoError(t, Validate(tree))
	for v := range tree.All() {
		require.NotZero(t, v%3)
	}
}

func TestRbtree_EraseKeepsOtherNodes(t *testing.T) {
	tree := newUint64Tree()
	its := make(map[uint64]Iterator[uint64, uint64])
	for i := uint64(0); i < 64; i++ {
		it, _, _ := tree.Insert(i)
		its[i] = it
	}
	for i := uint64(0); i < 64; i += 2 {
		tree.Erase(its[i])
		delete(its, i)
	}
	for k, it := range its {
		require.Equal(t, k, it.Value())
		require.True(t, it.Equal(tree.Find(k)))
	}
}

func TestRbtree_Bounds(t *testing.T) {
	tree := newUint64Tree(WithRBTreeMultiKey[uint64, uint64]())
	for _, k := range []uint64{10, 20, 20, 20, 30} {
		_, _, _ = tree.Insert(k)
	}
	testcases := []struct {
		key          uint64
		lower, upper uint64
		lowerEnd     bool
		upperEnd     bool
		count        int64
	}{
		{key: 5, lower: 10, upper: 10},
		{key: 10, lower: 10, upper: 20, count: 1},
		{key: 15, lower: 20, upper: 20},
		{key: 20, lower: 20, upper: 30, count: 3},
		{key: 30, lower: 30, upperEnd: true, count: 1},
		{key: 35, lowerEnd: true, upperEnd: true},
	}
	for _, tc := range testcases {
		lower, upper := tree.EqualRange(tc.key)
		require.Equal(t, tc.lowerEnd, lower.IsEnd())
		require.Equal(t, tc.upperEnd, upper.IsEnd())
		if !tc.lowerEnd {
			require.Equal(t, tc.lower, lower.Value())
		}
		if !tc.upperEnd {
			require.Equal(t, tc.upper, upper.Value())
		}
		require.Equal(t, tc.count, tree.Count(tc.key))
		require.Equal(t, tc.count, utility.Distance(lower, upper))
		if tc.count == 0 {
			require.True(t, tree.Find(tc.key).IsEnd())
		} else {
			require.Equal(t, tc.key, tree.Find(tc.key).Value())
		}
	}
}

func TestRbtree_IteratorBoundaries(t *testing.T) {
	tree := newUint64Tree()
	require.True(t, tree.End().Next().IsEnd())
	require.True(t, tree.End().Prev().IsEnd())

	for _, k := range []uint64{2, 1, 3} {
		_, _, _ = tree.Insert(k)
	}
	end := tree.End()
	require.True(t, end.Next().Equal(end))
	require.Equal(t, uint64(3), end.Prev().Value())
	require.True(t, tree.Begin().Prev().IsEnd())
	require.Equal(t, uint64(0), end.Value())
	require.Nil(t, end.Pointer())
	require.Nil(t, end.Node())
	require.Equal(t, utility.BidirectionalIterator, end.Category())

	var zero Iterator[uint64, uint64]
	require.True(t, zero.IsEnd())
	require.True(t, zero.Next().IsEnd())

	rb := utility.Reverse[Iterator[uint64, uint64], uint64](tree.End())
	re := utility.Reverse[Iterator[uint64, uint64], uint64](tree.Begin())
	require.Equal(t, []uint64{3, 2, 1}, slices.Collect(utility.Values[utility.ReverseIterator[Iterator[uint64, uint64], uint64], uint64](rb, re)))
}

func TestRbtree_InsertHint(t *testing.T) {
	testcases := []struct {
		name  string
		multi bool
	}{
		{name: "unique"},
		{name: "multi", multi: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			var opts []RBTreeOpt[uint64, uint64]
			if tc.multi {
				opts = append(opts, WithRBTreeMultiKey[uint64, uint64]())
			}
			tree := newUint64Tree(opts...)
			// Ascending keys hinted at end.
			for i := uint64(0); i < 100; i += 2 {
				it, ok, err := tree.InsertHint(tree.End(), i)
				require.NoError(tt, err)
				require.True(tt, ok)
				require.Equal(tt, i, it.Value())
			}
			// Odd keys hinted right after their position.
			for i := uint64(1); i < 100; i += 2 {
				it, ok, err := tree.InsertHint(tree.Find(i+1), i)
				require.NoError(tt, err)
				require.True(tt, ok)
				require.Equal(tt, i, it.Value())
			}
			// A wrong hint still inserts in order.
			_, ok, err := tree.InsertHint(tree.Begin(), 1000)
			require.NoError(tt, err)
			require.True(tt, ok)

			_, ok, err = tree.InsertHint(tree.Find(50), 50)
			require.NoError(tt, err)
			require.Equal(tt, tc.multi, ok)
			require.NoError(tt, Validate(tree))

			prev := uint64(0)
			tree.Foreach(func(idx int64, color RBColor, v uint64) bool {
				require.GreaterOrEqual(tt, v, prev)
				prev = v
				return true
			})
			if tc.multi {
				require.Equal(tt, int64(102), tree.Len())
			} else {
				require.Equal(tt, int64(101), tree.Len())
			}
		})
	}
}

func TestRbtree_EraseRange(t *testing.T) {
	tree := newUint64Tree()
	for i := uint64(0); i < 50; i++ {
		_, _, _ = tree.Insert(i)
	}
	last := tree.EraseRange(tree.LowerBound(10), tree.LowerBound(20))
	require.Equal(t, uint64(20), last.Value())
	require.Equal(t, int64(40), tree.Len())
	require.True(t, tree.Find(15).IsEnd())
	require.NoError(t, Validate(tree))

	last = tree.EraseRange(tree.Begin(), tree.End())
	require.True(t, last.IsEnd())
	require.True(t, tree.Empty())
	require.NoError(t, Validate(tree))
}

func TestRbtree_Desc(t *testing.T) {
	tree := newUint64Tree(WithRBTreeDesc[uint64, uint64]())
	for _, k := range []uint64{3, 1, 2} {
		_, _, _ = tree.Insert(k)
	}
	require.Equal(t, []uint64{3, 2, 1}, slices.Collect(tree.All()))
	require.Equal(t, uint64(2), tree.LowerBound(2).Value())
	require.Equal(t, uint64(1), tree.UpperBound(2).Value())
	require.True(t, tree.KeyLess()(3, 1))
}

func TestRbtree_Clone(t *testing.T) {
	tree := newUint64Tree()
	for i := uint64(0); i < 100; i++ {
		_, _, _ = tree.Insert(i)
	}
	dup, err := tree.Clone()
	require.NoError(t, err)
	require.NoError(t, Validate(dup))
	require.Equal(t, tree.Len(), dup.Len())
	require.Equal(t, tree.Height(), dup.Height())

	colors := make([]RBColor, 0, 100)
	tree.Foreach(func(idx int64, color RBColor, v uint64) bool {
		colors = append(colors, color)
		return true
	})
	dup.Foreach(func(idx int64, color RBColor, v uint64) bool {
		require.Equal(t, colors[idx], color)
		require.Equal(t, uint64(idx), v)
		return true
	})

	require.Equal(t, int64(1), tree.EraseKey(0))
	tree.Clear()
	require.True(t, tree.Empty())
	require.Equal(t, int64(100), dup.Len())
	require.NotSame(t, tree.Allocator(), dup.Allocator())
}

func TestRbtree_AllocatorFailure(t *testing.T) {
	alloc := NewLimitedAllocator[Node[uint64]](nil, 3)
	tree := newUint64Tree(WithRBTreeAllocator[uint64, uint64](alloc))
	require.Equal(t, int64(3), tree.MaxSize())
	for i := uint64(0); i < 3; i++ {
		_, ok, err := tree.Insert(i)
		require.NoError(t, err)
		require.True(t, ok)
	}
	it, ok, err := tree.Insert(10)
	require.ErrorIs(t, err, ErrMaxSizeExceeded)
	require.False(t, ok)
	require.True(t, it.IsEnd())
	require.Equal(t, int64(3), tree.Len())
	require.NoError(t, Validate(tree))

	// Shared allocator exhausted by another tree.
	other := newUint64Tree(WithRBTreeAllocator[uint64, uint64](alloc))
	_, _, err = other.Insert(1)
	require.ErrorIs(t, err, ErrOutOfMemory)
	var es infra.ErrorStack
	require.True(t, errors.As(err, &es))
	require.True(t, other.Empty())

	tree.Release()
	require.Equal(t, int64(0), alloc.InUse())
	require.Nil(t, tree.Root())
}

func TestRbtree_MaxSizeOption(t *testing.T) {
	tree := newUint64Tree(WithRBTreeMaxSize[uint64, uint64](2))
	_, _, _ = tree.Insert(1)
	_, _, _ = tree.Insert(2)
	_, _, err := tree.Insert(3)
	require.ErrorIs(t, err, ErrMaxSizeExceeded)
	_, _, err = tree.InsertHint(tree.End(), 3)
	require.ErrorIs(t, err, ErrMaxSizeExceeded)
	require.Equal(t, int64(2), tree.Len())
}

func TestRbtree_CloneOwnsAllocator(t *testing.T) {
	alloc := NewLimitedAllocator[Node[uint64]](nil, 10)
	tree := newUint64Tree(WithRBTreeAllocator[uint64, uint64](alloc))
	for i := uint64(0); i < 10; i++ {
		_, _, _ = tree.Insert(i)
	}
	dup, err := tree.Clone()
	require.NoError(t, err)
	dupAlloc := dup.Allocator().(*LimitedAllocator[Node[uint64]])
	require.Equal(t, int64(10), dupAlloc.InUse())

	_, _, err = dup.Insert(100)
	require.ErrorIs(t, err, ErrMaxSizeExceeded)
	dup.Release()
	require.Equal(t, int64(0), dupAlloc.InUse())
}

func TestAllocators(t *testing.T) {
	heap := NewHeapAllocator[Node[uint64]]()
	pool := NewPoolAllocator[Node[uint64]]()
	testcases := []struct {
		name  string
		alloc Allocator[Node[uint64]]
		inUse func() int64
	}{
		{name: "heap", alloc: heap, inUse: heap.InUse},
		{name: "pool", alloc: pool, inUse: pool.InUse},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := newUint64Tree(WithRBTreeAllocator[uint64, uint64](tc.alloc))
			for i := uint64(0); i < 1000; i++ {
				_, _, err := tree.Insert(randv2.Uint64N(500))
				require.NoError(tt, err)
			}
			require.Equal(tt, tree.Len(), tc.inUse())
			for i := uint64(0); i < 250; i++ {
				tree.EraseKey(i)
			}
			require.Equal(tt, tree.Len(), tc.inUse())
			require.NoError(tt, Validate(tree))
			tree.Clear()
			require.Equal(tt, int64(0), tc.inUse())
			_, _, err := tree.Insert(1)
			require.NoError(tt, err)
			tree.Release()
			require.Equal(tt, int64(0), tc.inUse())
		})
	}
}

func TestValidators_DetectBrokenTree(t *testing.T) {
	tree := newUint64Tree()
	for _, k := range []uint64{2, 1, 3} {
		_, _, _ = tree.Insert(k)
	}
	tree.root.color = Red
	require.ErrorIs(t, Validate(tree), ErrRedViolation)
	tree.root.color = Black

	tree.root.left.color = Black
	require.ErrorIs(t, Validate(tree), ErrBlackViolation)
	tree.root.left.color = Red

	tree.root.left.value, tree.root.right.value = tree.root.right.value, tree.root.left.value
	require.ErrorIs(t, Validate(tree), ErrOrderViolation)
	tree.root.left.value, tree.root.right.value = tree.root.right.value, tree.root.left.value

	tree.count++
	require.ErrorIs(t, Validate(tree), ErrSizeViolation)
	tree.count--
	require.NoError(t, Validate(tree))
}

func rbtreeRandomInsertAndRemoveRunCore(t *testing.T, total uint64, multi, violationCheck bool) {
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	var opts []RBTreeOpt[uint64, uint64]
	if multi {
		opts = append(opts, WithRBTreeMultiKey[uint64, uint64]())
	}
	tree := newUint64Tree(opts...)
	expected := make([]uint64, 0, insertTotal)
	for i := uint64(0); i < insertTotal; i++ {
		k := randv2.Uint64N(total)
		_, ok, err := tree.Insert(k)
		require.NoError(t, err)
		if ok {
			expected = append(expected, k)
		}
		if violationCheck {
			require.NoError(t, Validate(tree))
		}
	}
	sort.Slice(expected, func(i, j int) bool {
		return expected[i] < expected[j]
	})
	require.Equal(t, expected, slices.Collect(tree.All()))

	for i := uint64(0); i < removeTotal; i++ {
		k := expected[randv2.IntN(len(expected))]
		before := len(expected)
		expected = slices.DeleteFunc(expected, func(v uint64) bool {
			return v == k
		})
		require.Equal(t, int64(before-len(expected)), tree.EraseKey(k))
		require.Equal(t, int64(0), tree.EraseKey(k))
		if violationCheck {
			require.NoError(t, Validate(tree))
		}
		if len(expected) == 0 {
			break
		}
	}
	require.Equal(t, int64(len(expected)), tree.Len())
	require.Equal(t, expected, slices.Collect(tree.All()))
	require.NoError(t, Validate(tree))
}

func TestRbtreeRandomInsertAndRemove_RandomNumber(t *testing.T) {
	type testcase struct {
		name           string
		total          uint64
		multi          bool
		violationCheck bool
	}
	testcases := []testcase{
		{name: "unique 1000", total: 1000, violationCheck: true},
		{name: "multi 1000", total: 1000, multi: true, violationCheck: true},
		{name: "unique 100000", total: 100_000},
		{name: "multi 100000", total: 100_000, multi: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomInsertAndRemoveRunCore(tt, tc.total, tc.multi, tc.violationCheck)
		})
	}
}

func TestRBTree_SequentialNumber_Release(t *testing.T) {
	insertTotal := uint64(100_000)
	tree := newUint64Tree()

	rand := uint64(randv2.Uint32() % 1_000)
	for i := uint64(0); i < insertTotal; i++ {
		_, _, _ = tree.Insert(i)
		if i%1000 == rand {
			require.NoError(t, RedViolationValidate(tree))
			require.NoError(t, BlackViolationValidate(tree))
		}
	}
	tree.Foreach(func(idx int64, color RBColor, key uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
	tree.Release()
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, tree.Root())
	// Idempotent.
	tree.Release()
}

func BenchmarkRBTree_Random(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	tree := NewRBTree[int, utility.Pair[int, []byte]](infra.Less[int](), PairFirst[int, []byte]())

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := tree.Insert(utility.MakePair(rngArr[i], testByBytes))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRBTree_Serial(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	tree := NewRBTree[int, utility.Pair[int, []byte]](infra.Less[int](), PairFirst[int, []byte]())

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		hint := tree.End()
		_, _, err := tree.InsertHint(hint, utility.MakePair(i, testByBytes))
		if err != nil {
			b.Fatal(err)
		}
	}
}
