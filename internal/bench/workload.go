package bench

import (
	"context"
	"fmt"
	randv2 "math/rand/v2"
	"time"

	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/observability"
)

// Result of a single workload run.
type Result struct {
	Workload   string
	Container  ContainerKind
	Inserted   int64
	Erased     int64
	Remaining  int64
	InsertCost time.Duration
	FindCost   time.Duration
	EraseCost  time.Duration
	RSS        uint64
	Err        error
}

func workloadKeys(w Workload, rng *randv2.Rand) []int {
	keys := lo.Range(w.Keys)
	switch w.Pattern {
	case Descending:
		keys = lo.Reverse(keys)
	case Random:
		rng.Shuffle(len(keys), func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})
	default:
	}
	return keys
}

// checkOrder walks the container once, the keys must be strictly
// increasing for unique containers and non-decreasing for multi ones.
func checkOrder(t target, multi bool) error {
	var (
		prev  int
		seen  int64
		first = true
	)
	for k := range t.keys() {
		if !first && (k < prev || (!multi && k == prev)) {
			return infra.NewErrorStack(fmt.Sprintf("[bench] key %d visited after %d", k, prev))
		}
		prev, first = k, false
		seen++
	}
	if seen != t.len() {
		return infra.NewErrorStack(fmt.Sprintf("[bench] visited %d elements, len is %d", seen, t.len()))
	}
	return nil
}

func runWorkload(ctx context.Context, w Workload, seed uint64, stats *observability.ContainerStats) (res Result) {
	res = Result{Workload: w.Name, Container: w.Container}
	t := newTarget(w.Container, w.Allocator)
	if t == nil {
		res.Err = infra.NewErrorStack("[bench] unknown container " + string(w.Container))
		return res
	}
	sized := int64(0)
	defer func() {
		stats.RecordSize(ctx, string(w.Container), -sized)
		t.release()
	}()

	rng := randv2.New(randv2.NewPCG(seed, uint64(w.Keys)))
	keys := workloadKeys(w, rng)
	kind := string(w.Container)

	validate := func() error {
		if !w.Validate {
			return nil
		}
		start := time.Now()
		err := multierr.Append(t.validate(), checkOrder(t, w.Container.multi()))
		stats.RecordBatch(ctx, kind, observability.OpValidate, 1, time.Since(start))
		if err != nil {
			stats.RecordFailure(ctx, kind, observability.OpValidate)
		}
		return err
	}

	start := time.Now()
	for d := 0; d < w.Duplicates; d++ {
		for _, k := range keys {
			if err := t.insert(k); err != nil {
				stats.RecordFailure(ctx, kind, observability.OpInsert)
				res.Err = err
				return res
			}
			res.Inserted++
		}
	}
	res.InsertCost = time.Since(start)
	stats.RecordBatch(ctx, kind, observability.OpInsert, res.Inserted, res.InsertCost)
	sized = t.len()
	stats.RecordSize(ctx, kind, sized)
	if res.Err = validate(); res.Err != nil {
		return res
	}
	if res.Err = ctx.Err(); res.Err != nil {
		return res
	}

	start = time.Now()
	for _, k := range keys {
		if !t.contains(k) || t.count(k) != int64(w.Duplicates) {
			stats.RecordFailure(ctx, kind, observability.OpFind)
			res.Err = infra.NewErrorStack(fmt.Sprintf("[bench] key %d: count %d, expected %d", k, t.count(k), w.Duplicates))
			return res
		}
	}
	res.FindCost = time.Since(start)
	stats.RecordBatch(ctx, kind, observability.OpFind, int64(len(keys)), res.FindCost)
	if res.Err = ctx.Err(); res.Err != nil {
		return res
	}

	before := t.len()
	start = time.Now()
	res.Erased = t.eraseWhile(func(int) bool {
		return rng.Float64() < w.EraseRatio
	})
	res.EraseCost = time.Since(start)
	stats.RecordBatch(ctx, kind, observability.OpErase, res.Erased, res.EraseCost)
	stats.RecordSize(ctx, kind, -res.Erased)
	sized -= res.Erased
	res.Remaining = t.len()
	if before-res.Erased != res.Remaining {
		res.Err = infra.NewErrorStack(fmt.Sprintf("[bench] erased %d of %d, %d remain", res.Erased, before, res.Remaining))
		return res
	}
	if res.Err = validate(); res.Err != nil {
		return res
	}

	if rss, err := observability.ProcessRSS(ctx); err == nil {
		res.RSS = rss
	}
	return res
}
