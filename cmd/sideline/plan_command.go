package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sideline/internal/edl"
	"sideline/internal/logging"
	"sideline/internal/pipeline"
	"sideline/internal/queue"
	"sideline/internal/timecode"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var videoPath string
	var eventsPath string
	var kickoffFlag string
	var render bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Fuse detections with guided events and produce the edit decision list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if render {
				cfg.Render.Enabled = true
			}

			opts := pipeline.Options{
				VideoPath:  strings.TrimSpace(videoPath),
				EventsPath: strings.TrimSpace(eventsPath),
			}
			if flag := strings.TrimSpace(kickoffFlag); flag != "" {
				kickoff, err := parseKickoff(flag)
				if err != nil {
					return fmt.Errorf("parse --kickoff: %w", err)
				}
				opts.Kickoff = &kickoff
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer store.Close()

			runner, err := pipeline.New(cfg, store, logger)
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s planned %d clips\n\n", result.RunID[:8], len(result.Events))
			fmt.Fprintln(out, renderClipTable(out, result.Events))
			if len(result.Hashtags) > 0 {
				fmt.Fprintf(out, "\nHashtags: %s\n", strings.Join(result.Hashtags, " "))
			}
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "Warning: %s\n", warning)
			}
			fmt.Fprintf(out, "\nEDL: %s\nManifest: %s\n", result.EDLPath, result.ManifestPath)
			if len(result.ClipPaths) > 0 {
				fmt.Fprintf(out, "Clips: %d files under the run output directory\n", len(result.ClipPaths))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&videoPath, "video", "v", "", "Match video file")
	cmd.Flags().StringVarP(&eventsPath, "events", "e", "", "Guided events JSON file")
	cmd.Flags().StringVarP(&kickoffFlag, "kickoff", "k", "", "Kickoff video timestamp (seconds or HH:MM:SS.sss)")
	cmd.Flags().BoolVar(&render, "render", false, "Extract clip files with ffmpeg")
	return cmd
}

func parseKickoff(value string) (float64, error) {
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("negative kickoff %v", seconds)
		}
		return seconds, nil
	}
	return timecode.ParseTimestamp(value)
}

func renderClipTable(out io.Writer, events []*edl.Event) string {
	headers := []string{"#", "Type", "Start", "End", "Conf", "Source", "Zoom", "Replay"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}

	rows := make([][]string, 0, len(events))
	for i, event := range events {
		start := event.AbsTS - event.PrePadding
		if start < 0 {
			start = 0
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			event.Type,
			timecode.FormatTimestamp(start),
			timecode.FormatTimestamp(event.AbsTS + event.PostPadding),
			fmt.Sprintf("%.2f", event.Confidence),
			string(event.Source),
			yesNo(event.ZoomEnabled),
			yesNo(event.ReplayEnabled),
		})
	}
	return renderTable(out, headers, rows, aligns)
}
