package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sideline/internal/config"
	"sideline/internal/edl"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Guided event file utilities",
	}

	eventsCmd.AddCommand(newEventsSampleCommand())
	eventsCmd.AddCommand(newEventsValidateCommand())
	return eventsCmd
}

func newEventsSampleCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "sample",
		Short:       "Write a sample guided events file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = "events.json"
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve events path: %w", err)
			}

			doc := struct {
				Events []edl.Candidate `json:"events"`
			}{Events: edl.SampleGuidedEvents()}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal sample events: %w", err)
			}
			if dir := filepath.Dir(expanded); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create events directory: %w", err)
				}
			}
			if err := os.WriteFile(expanded, data, 0o644); err != nil {
				return fmt.Errorf("write sample events: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample guided events to %s\n", expanded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the events file")
	return cmd
}

func newEventsValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate <events-file>",
		Short:       "Check a guided events file against the schema",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read events: %w", err)
			}
			candidates, err := edl.DecodeCandidates(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if errs := edl.ValidateCandidates(candidates); len(errs) > 0 {
				for _, validationErr := range errs {
					fmt.Fprintf(out, "Problem: %v\n", validationErr)
				}
				return fmt.Errorf("%d problem(s) in %s", len(errs), args[0])
			}
			fmt.Fprintf(out, "%d events valid\n", len(candidates))
			return nil
		},
	}
}
