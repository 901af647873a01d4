package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sideline/internal/queue"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect past highlights runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsHealthCommand(ctx))
	runsCmd.AddCommand(newRunsClearCommand(ctx))
	return runsCmd
}

func (c *commandContext) withStore(fn func(*queue.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := queue.Open(cfg)
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}

				headers := []string{"Run", "Status", "Clips", "Stage", "Started"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.RunID),
						string(run.Status),
						strconv.Itoa(run.ClipCount),
						run.ProgressStage,
						run.CreatedAt.Local().Format(time.DateTime),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				run, err := store.GetByRunID(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:      %s\n", run.RunID)
				fmt.Fprintf(out, "Status:   %s\n", run.Status)
				if run.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
				}
				fmt.Fprintf(out, "Video:    %s\n", orDash(run.VideoPath))
				fmt.Fprintf(out, "Events:   %s\n", orDash(run.EventsPath))
				fmt.Fprintf(out, "Clips:    %d\n", run.ClipCount)
				fmt.Fprintf(out, "EDL:      %s\n", orDash(run.EDLPath))
				fmt.Fprintf(out, "Manifest: %s\n", orDash(run.ManifestPath))
				if run.ProgressStage != "" {
					fmt.Fprintf(out, "Progress: %s (%.0f%%) %s\n",
						run.ProgressStage, run.ProgressPercent, run.ProgressMessage)
				}
				fmt.Fprintf(out, "Started:  %s\n", run.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Updated:  %s\n", run.UpdatedAt.Local().Format(time.DateTime))
				return nil
			})
		},
	}
}

func newRunsHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Summarize the run ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				summary, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total:      %d\n", summary.Total)
				fmt.Fprintf(out, "Pending:    %d\n", summary.Pending)
				fmt.Fprintf(out, "Processing: %d\n", summary.Processing)
				fmt.Fprintf(out, "Completed:  %d\n", summary.Completed)
				fmt.Fprintf(out, "Failed:     %d\n", summary.Failed)
				return nil
			})
		},
	}
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all run records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Run ledger cleared")
				return nil
			})
		},
	}
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
