package bench

import (
	"context"
	"fmt"
	"sync"
	"time"

	antsv2 "github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ftcontainers/xstl/lib/infra"
	"github.com/ftcontainers/xstl/observability"
	"github.com/ftcontainers/xstl/xlog"
)

// WorkloadCtxKey carries the workload name in the run context, the
// logger extracts it into every context log entry.
const WorkloadCtxKey = "workload"

// Runner executes the configured workloads on a bounded goroutine pool.
type Runner struct {
	cfg    *Config
	logger xlog.XLogger
	stats  *observability.ContainerStats
	pool   *antsv2.Pool
}

func NewRunner(cfg *Config, logger xlog.XLogger, stats *observability.ContainerStats) (*Runner, error) {
	if cfg == nil || logger == nil {
		return nil, infra.NewErrorStack("[bench] runner requires config and logger")
	}
	pool, err := antsv2.NewPool(
		cfg.Parallelism,
		antsv2.WithLogger(xlog.NewAntsXLogger(logger)),
		antsv2.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] create pool")
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		stats:  stats,
		pool:   pool,
	}, nil
}

func (r *Runner) runSafe(ctx context.Context, idx int, w Workload) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{
				Workload:  w.Name,
				Container: w.Container,
				Err:       infra.NewErrorStack(fmt.Sprintf("[bench] workload %s panic: %v", w.Name, p)),
			}
		}
	}()
	ctx = context.WithValue(ctx, WorkloadCtxKey, w.Name)
	r.logger.DebugContext(ctx, "workload started",
		zap.String("container", string(w.Container)),
		zap.Int("keys", w.Keys),
		zap.String("pattern", string(w.Pattern)),
	)
	res = runWorkload(ctx, w, r.cfg.Seed+uint64(idx), r.stats)
	if res.Err != nil {
		r.logger.ErrorStackContext(ctx, res.Err, "workload failed")
		return res
	}
	r.logger.InfoContext(ctx, "workload finished",
		zap.Int64("inserted", res.Inserted),
		zap.Int64("erased", res.Erased),
		zap.Int64("remaining", res.Remaining),
		zap.Duration("insert", res.InsertCost),
		zap.Duration("find", res.FindCost),
		zap.Duration("erase", res.EraseCost),
		zap.Uint64("rss", res.RSS),
	)
	return res
}

// Run submits every workload and waits for them. Workloads not yet
// submitted when ctx is done are skipped. The errors of all the
// workloads are combined.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	var (
		wg      sync.WaitGroup
		err     error
		results = make([]Result, len(r.cfg.Workloads))
	)
	for i, w := range r.cfg.Workloads {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = multierr.Append(err, infra.WrapErrorStackWithMessage(ctxErr, "[bench] run cancelled"))
			break
		}
		wg.Add(1)
		if submitErr := r.pool.Submit(func() {
			defer wg.Done()
			results[i] = r.runSafe(ctx, i, w)
		}); submitErr != nil {
			wg.Done()
			results[i] = Result{Workload: w.Name, Container: w.Container, Err: infra.WrapErrorStack(submitErr)}
		}
	}
	wg.Wait()

	results = lo.Filter(results, func(res Result, _ int) bool {
		return res.Workload != ""
	})
	for _, res := range results {
		err = multierr.Append(err, res.Err)
	}
	failed := lo.CountBy(results, func(res Result) bool {
		return res.Err != nil
	})
	r.logger.Info("workloads summary",
		zap.Int("total", len(r.cfg.Workloads)),
		zap.Int("ran", len(results)),
		zap.Int("failed", failed),
		zap.Int64("inserted", lo.SumBy(results, func(res Result) int64 { return res.Inserted })),
		zap.Int64("erased", lo.SumBy(results, func(res Result) int64 { return res.Erased })),
	)
	return results, err
}

func (r *Runner) Close() {
	r.pool.Release()
}
