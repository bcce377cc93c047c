package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ftcontainers/xstl/internal/bench"
)

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Run the fixed container correctness scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := bench.Verify(cmd.Context(), opts.logger, bench.Scenarios())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, res := range results {
				status := "PASS"
				if res.Err != nil {
					status = "FAIL"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", status, res.Name, res.Elapsed)
			}
			if flushErr := w.Flush(); flushErr != nil && err == nil {
				err = flushErr
			}
			return err
		},
	}
}
