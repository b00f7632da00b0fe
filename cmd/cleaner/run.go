package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/obahii/data-cleaning/internal/runner"
)

func newRunCmd(a *app) *cobra.Command {
	var input, output, auditDB string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Clean the input CSV once and write the cleaned CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if auditDB != "" {
				a.cfg.AuditDBPath = auditDB
			}
			job := runner.Job{Input: a.cfg.InputPath, Output: a.cfg.OutputPath}
			if input != "" {
				job.Input = input
			}
			if output != "" {
				job.Output = output
			}

			ctx := cmd.Context()
			opts, closeSinks, err := a.sinks(ctx)
			defer closeSinks()
			if err != nil {
				return err
			}

			sum, err := runner.NewWorker(a.log.Named("worker"), opts...).Run(ctx, job)
			if err != nil {
				return err
			}
			printSummary(cmd, sum)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "input CSV (overrides CLEANER_INPUT)")
	f.StringVarP(&output, "output", "o", "", "cleaned CSV (overrides CLEANER_OUTPUT)")
	f.StringVar(&auditDB, "audit-db", "", "SQLite correction trail (overrides CLEANER_AUDIT_DB)")
	return cmd
}

func printSummary(cmd *cobra.Command, sum *runner.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s\n", sum.RunID)
	fmt.Fprintf(out, "  %s -> %s\n", sum.Job.Input, sum.Job.Output)
	fmt.Fprintf(out, "  rows: %d in, %d out, %d dropped\n", sum.InputRows, sum.OutputRows, sum.Dropped)
	fmt.Fprintf(out, "  corrections: %d\n", sum.Corrections)

	fields := make([]string, 0, len(sum.Anomalies))
	for f := range sum.Anomalies {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "    %-18s %d\n", f, sum.Anomalies[f])
	}
}
