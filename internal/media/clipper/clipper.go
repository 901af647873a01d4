// Package clipper cuts highlight clips out of the match video with ffmpeg.
// Cuts are stream copies, so they land on the nearest keyframe rather than
// the exact padded boundary; the padding budget absorbs the difference.
package clipper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sideline/internal/config"
	"sideline/internal/edl"
	"sideline/internal/logging"
)

// Clipper extracts one file per planned event.
type Clipper struct {
	binary  string
	outDir  string
	timeout time.Duration
	logger  *slog.Logger
}

// New builds a clipper from the render configuration. A nil logger is
// replaced with a no-op one.
func New(cfg *config.Config, logger *slog.Logger) *Clipper {
	timeout := time.Duration(cfg.Render.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Clipper{
		binary:  cfg.FFmpegBinary(),
		outDir:  filepath.Join(cfg.Paths.OutputDir, "clips"),
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "clipper"),
	}
}

// ClipPath returns the output file for the clip at the given position.
func (c *Clipper) ClipPath(index int, eventType string) string {
	return filepath.Join(c.outDir, fmt.Sprintf("%03d_%s.mp4", index+1, eventType))
}

// CommandArgs builds the ffmpeg argument list for one clip.
func (c *Clipper) CommandArgs(videoPath string, event *edl.Event, outPath string) []string {
	start := event.AbsTS - event.PrePadding
	if start < 0 {
		start = 0
	}
	duration := event.AbsTS + event.PostPadding - start
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-ss", formatSeconds(start),
		"-i", videoPath,
		"-t", formatSeconds(duration),
		"-c", "copy",
		"-y", outPath,
	}
}

// ExtractAll cuts every planned event, returning the clip paths in event
// order. The first failed cut aborts the batch.
func (c *Clipper) ExtractAll(ctx context.Context, videoPath string, events []*edl.Event) ([]string, error) {
	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create clips directory: %w", err)
	}

	paths := make([]string, 0, len(events))
	for i, event := range events {
		outPath := c.ClipPath(i, event.Type)
		if err := c.extract(ctx, videoPath, event, outPath); err != nil {
			return nil, fmt.Errorf("clip %d (%s): %w", i+1, event.Type, err)
		}
		paths = append(paths, outPath)
	}
	c.logger.Info("extracted clips",
		logging.Int("count", len(paths)),
		logging.String("dir", c.outDir),
	)
	return paths, nil
}

func (c *Clipper) extract(ctx context.Context, videoPath string, event *edl.Event, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := c.CommandArgs(videoPath, event, outPath)
	c.logger.Debug("running ffmpeg",
		logging.String(logging.FieldEventType, event.Type),
		logging.String("out", outPath),
	)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
