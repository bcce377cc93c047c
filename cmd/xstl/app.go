package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/ftcontainers/xstl/internal/bench"
	"github.com/ftcontainers/xstl/observability"
	"github.com/ftcontainers/xstl/xlog"
)

const metricsFlushInterval = 5 * time.Second

func newMeterProvider(lc fx.Lifecycle, cfg *bench.Config, opts *rootOptions, logger xlog.XLogger) (metric.MeterProvider, error) {
	shutdown, err := observability.InitMetricsExporter(cfg.Metrics, metricsFlushInterval, metricsFlushInterval)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	observability.InitAppStats(context.Background(), "xstl", nil)

	if cfg.Metrics == observability.PrometheusExporter && opts.metricsAddr != "" {
		srv := &http.Server{
			Addr:              opts.metricsAddr,
			Handler:           promhttp.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				ln, err := net.Listen("tcp", srv.Addr)
				if err != nil {
					return err
				}
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error(err, "metrics server stopped")
					}
				}()
				logger.Info("metrics server listening", zap.String("addr", ln.Addr().String()))
				return nil
			},
			OnStop: srv.Shutdown,
		})
	}
	return otel.GetMeterProvider(), nil
}

func newContainerStats(mp metric.MeterProvider) *observability.ContainerStats {
	return observability.NewContainerStats(mp, "bench")
}

func registerRunner(lc fx.Lifecycle, runner *bench.Runner, logger xlog.XLogger) {
	lc.Append(fx.StopHook(func() error {
		runner.Close()
		return logger.Sync()
	}))
}

// newBenchApp wires the workload runner. The options are appended
// last, fx.Populate is how the caller gets the runner out.
func newBenchApp(opts *rootOptions, cfg *bench.Config, options ...fx.Option) *fx.App {
	base := []fx.Option{
		fx.Supply(cfg, opts),
		fx.Provide(
			func() xlog.XLogger { return opts.logger },
			newMeterProvider,
			newContainerStats,
			bench.NewRunner,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(registerRunner),
	}
	return fx.New(append(base, options...)...)
}
