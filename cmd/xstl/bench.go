package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/ftcontainers/xstl/internal/bench"
	"github.com/ftcontainers/xstl/observability"
)

func loadConfig(cmd *cobra.Command, opts *rootOptions) (*bench.Config, error) {
	cfg := bench.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = bench.ReadFile(opts.configPath); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("metrics") {
		exp, err := observability.ParseMetricsExporter(opts.metrics)
		if err != nil {
			return nil, err
		}
		cfg.Metrics = exp
	}
	return cfg, nil
}

func startProfiles(opts *rootOptions) (stop func() error, err error) {
	stops := make([]func() error, 0, 2)
	stop = func() error {
		var err error
		for _, fn := range stops {
			err = multierr.Append(err, fn())
		}
		return err
	}
	for typ, path := range map[observability.ProfileType]string{
		observability.CPUProfile: opts.cpuProfile,
		observability.MemProfile: opts.memProfile,
	} {
		if path == "" {
			continue
		}
		fn, err := observability.StartProfile(typ, path)
		if err != nil {
			return nil, multierr.Append(err, stop())
		}
		stops = append(stops, fn)
	}
	return stop, nil
}

func printResults(cmd *cobra.Command, results []bench.Result) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WORKLOAD\tCONTAINER\tINSERTED\tERASED\tREMAINING\tINSERT\tFIND\tERASE\tSTATUS")
	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			res.Workload, res.Container, res.Inserted, res.Erased, res.Remaining,
			res.InsertCost, res.FindCost, res.EraseCost, status,
		)
	}
	return w.Flush()
}

func newBenchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the configured container workloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			stopProfiles, err := startProfiles(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, stopProfiles())
			}()

			opts.logger.Banner(banner{})
			var runner *bench.Runner
			app := newBenchApp(opts, cfg, fx.Populate(&runner))
			if err = app.Err(); err != nil {
				return err
			}
			startCtx, cancel := context.WithTimeout(cmd.Context(), app.StartTimeout())
			defer cancel()
			if err = app.Start(startCtx); err != nil {
				return err
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
				defer cancel()
				err = multierr.Append(err, app.Stop(stopCtx))
			}()

			results, runErr := runner.Run(cmd.Context())
			return multierr.Append(runErr, printResults(cmd, results))
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.metrics, "metrics", string(observability.NoneExporter), "Metrics exporter: none, console or prometheus")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve the prometheus metrics on this address")
	flags.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")
	flags.StringVar(&opts.memProfile, "memprofile", "", "Write a heap profile to this file")
	return cmd
}
