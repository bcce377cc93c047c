package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap/zapcore"

	"github.com/ftcontainers/xstl/internal/bench"
	"github.com/ftcontainers/xstl/xlog"
)

var version = "dev"

type rootOptions struct {
	configPath  string
	logLevel    string
	encoder     string
	metrics     string
	metricsAddr string
	cpuProfile  string
	memProfile  string

	logger      xlog.XLogger
	undoMaxProc func()
}

type banner struct{}

func (banner) JSON() string {
	return `{"app":"xstl","version":"` + version + `"}`
}

func (banner) PlainText() string {
	return "xstl " + version + " ordered containers workbench"
}

func newLogger(opts *rootOptions) xlog.XLogger {
	return xlog.NewXLogger(
		xlog.WithXLoggerLevel(xlog.ParseLogLevel(opts.logLevel)),
		xlog.WithXLoggerEncoder(xlog.ParseEncoder(opts.encoder)),
		xlog.WithXLoggerWriter(xlog.StdErr),
		xlog.WithXLoggerContextFieldExtract(bench.WorkloadCtxKey),
	)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "xstl",
		Short:         "Exercise and verify the xstl ordered containers",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = newLogger(opts)
			undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
				opts.logger.Logf(zapcore.DebugLevel, format, args...)
			}))
			if err != nil {
				return err
			}
			opts.undoMaxProc = undo
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.undoMaxProc != nil {
				opts.undoMaxProc()
			}
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Workload configuration file (YAML)")
	flags.StringVar(&opts.logLevel, "log-level", envOr("XLOG_LVL", "INFO"), "Log level: DEBUG, INFO, WARN or ERROR")
	flags.StringVar(&opts.encoder, "encoder", "text", "Log encoder: json or text")

	root.AddCommand(newVerifyCmd(opts), newBenchCmd(opts))
	return root
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "xstl: %v\n", err)
		stop()
		os.Exit(1)
	}
}
