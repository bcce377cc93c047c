package bench

import (
	"context"
	"fmt"
	"math"
	randv2 "math/rand/v2"
	"slices"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ftcontainers/xstl/lib/container"
	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/lib/tree"
	"github.com/ftcontainers/xstl/lib/utility"
	"github.com/ftcontainers/xstl/xlog"
)

type Scenario struct {
	Name string
	Run  func() error
}

type ScenarioResult struct {
	Name    string
	Elapsed time.Duration
	Err     error
}

func expectKeys[K comparable](got []K, expected ...K) error {
	if !slices.Equal(got, expected) {
		return infra.NewErrorStack(fmt.Sprintf("[verify] got %v, expected %v", got, expected))
	}
	return nil
}

func newIntTree(multi bool) *tree.Tree[int, int] {
	opts := []tree.RBTreeOpt[int, int]{}
	if multi {
		opts = append(opts, tree.WithRBTreeMultiKey[int, int]())
	}
	return tree.NewRBTree[int, int](infra.Less[int](), tree.Identity[int](), opts...)
}

func insertSequence() error {
	rbtree := newIntTree(false)
	for _, k := range []int{10, 20, 5, 15, 25, 1} {
		if _, _, err := rbtree.Insert(k); err != nil {
			return err
		}
		if err := tree.Validate(rbtree); err != nil {
			return err
		}
	}
	return expectKeys(slices.Collect(rbtree.All()), 1, 5, 10, 15, 20, 25)
}

func multiKeyErase() error {
	rbtree := newIntTree(true)
	for i := 0; i < 2; i++ {
		if _, _, err := rbtree.Insert(20); err != nil {
			return err
		}
	}
	if n := rbtree.Count(20); n != 2 {
		return infra.NewErrorStack(fmt.Sprintf("[verify] count(20) is %d", n))
	}
	rbtree.Erase(rbtree.Find(20))
	if n := rbtree.Count(20); n != 1 {
		return infra.NewErrorStack(fmt.Sprintf("[verify] erase by iterator left %d", n))
	}
	if _, _, err := rbtree.Insert(20); err != nil {
		return err
	}
	if n := rbtree.EraseKey(20); n != 2 {
		return infra.NewErrorStack(fmt.Sprintf("[verify] erase by key removed %d", n))
	}
	if n := rbtree.EraseKey(20); n != 0 {
		return infra.NewErrorStack(fmt.Sprintf("[verify] second erase by key removed %d", n))
	}
	return tree.Validate(rbtree)
}

func sortedInsertHeight() error {
	rbtree := newIntTree(false)
	for k := 1; k <= 1000; k++ {
		if _, _, err := rbtree.Insert(k); err != nil {
			return err
		}
	}
	limit := int(2 * math.Log2(float64(rbtree.Len()+1)))
	if h := rbtree.Height(); h > limit {
		return infra.NewErrorStack(fmt.Sprintf("[verify] height %d exceeds %d", h, limit))
	}
	return tree.Validate(rbtree)
}

func eraseRoot() error {
	rbtree := newIntTree(false)
	for _, k := range []int{10, 5, 15} {
		if _, _, err := rbtree.Insert(k); err != nil {
			return err
		}
	}
	rbtree.EraseKey(rbtree.Root().Value())
	return multierr.Append(
		tree.Validate(rbtree),
		expectKeys(slices.Collect(rbtree.All()), 5, 15),
	)
}

func mapIndexDefault() error {
	m := container.NewMap[int, string]()
	v, err := m.Index(42)
	if err != nil {
		return err
	}
	if *v != "" {
		return infra.NewErrorStack("[verify] index did not insert the zero value")
	}
	*v = "answer"
	it := m.Find(42)
	if it.IsEnd() || *it.ValuePtr() != "answer" {
		return infra.NewErrorStack("[verify] find does not see the mutation")
	}
	return m.Validate()
}

func eraseWhileIterating() error {
	s := container.NewSet[int]()
	if err := s.InsertRange(slices.Values([]int{1, 2, 3, 4, 5, 6, 7, 8})); err != nil {
		return err
	}
	visited := make([]int, 0, 8)
	for it := s.Begin(); !it.IsEnd(); {
		visited = append(visited, it.Value())
		if it.Value()%2 == 0 {
			it = s.Erase(it)
			continue
		}
		it = it.Next()
	}
	return multierr.Combine(
		expectKeys(visited, 1, 2, 3, 4, 5, 6, 7, 8),
		expectKeys(slices.Collect(s.All()), 1, 3, 5, 7),
		s.Validate(),
	)
}

func multiMapStableDuplicates() error {
	m := container.NewMultiMap[int, string]()
	for _, p := range []utility.Pair[int, string]{
		utility.MakePair(1, "a"), utility.MakePair(2, "x"), utility.MakePair(1, "b"), utility.MakePair(1, "c"),
	} {
		if _, err := m.Insert(p); err != nil {
			return err
		}
	}
	rng := m.EqualRange(1)
	got := make([]string, 0, 3)
	for it := rng.First; !it.Equal(rng.Second); it = it.Next() {
		got = append(got, *it.ValuePtr())
	}
	return expectKeys(got, "a", "b", "c")
}

// randomizedFacades drives every container kind with random inserts and
// erases, checking the invariants, the iteration order and that a
// repeated erase by key removes nothing.
func randomizedFacades() error {
	rng := randv2.New(randv2.NewPCG(0x5eed, 0x7ee))
	var err error
	for _, kind := range []ContainerKind{MapKind, MultiMapKind, SetKind, MultiSetKind} {
		t := newTarget(kind, PoolAllocator)
		for i := 0; i < 2000; i++ {
			if insErr := t.insert(rng.IntN(500)); insErr != nil {
				err = multierr.Append(err, insErr)
				break
			}
		}
		t.eraseWhile(func(int) bool {
			return rng.IntN(2) == 0
		})
		err = multierr.Combine(err, t.validate(), checkOrder(t, kind.multi()))
		k := rng.IntN(500)
		_ = t.eraseWhile(func(key int) bool { return key == k })
		if n := t.eraseWhile(func(key int) bool { return key == k }); n != 0 || t.count(k) != 0 {
			err = multierr.Append(err, infra.NewErrorStack(fmt.Sprintf("[verify] %s: key %d survived its erase", kind, k)))
		}
		t.release()
	}
	return err
}

// Scenarios are the fixed correctness checks of the containers.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "insert-sequence", Run: insertSequence},
		{Name: "multi-key-erase", Run: multiKeyErase},
		{Name: "sorted-insert-height", Run: sortedInsertHeight},
		{Name: "erase-root", Run: eraseRoot},
		{Name: "map-index-default", Run: mapIndexDefault},
		{Name: "erase-while-iterating", Run: eraseWhileIterating},
		{Name: "multimap-stable-duplicates", Run: multiMapStableDuplicates},
		{Name: "randomized-facades", Run: randomizedFacades},
	}
}

// Verify runs the scenarios in order and logs each outcome.
func Verify(ctx context.Context, logger xlog.XLogger, scenarios []Scenario) ([]ScenarioResult, error) {
	var err error
	results := make([]ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return results, multierr.Append(err, infra.WrapErrorStack(ctxErr))
		}
		start := time.Now()
		scErr := sc.Run()
		res := ScenarioResult{Name: sc.Name, Elapsed: time.Since(start), Err: scErr}
		results = append(results, res)
		if scErr != nil {
			logger.ErrorStack(scErr, "scenario failed", zap.String("scenario", sc.Name))
			err = multierr.Append(err, scErr)
			continue
		}
		logger.Info("scenario passed", zap.String("scenario", sc.Name), zap.Duration("in", res.Elapsed))
	}
	return results, err
}
