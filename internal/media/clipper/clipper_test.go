package clipper_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sideline/internal/edl"
	"sideline/internal/media/clipper"
	"sideline/internal/testsupport"
)

func TestCommandArgs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := clipper.New(cfg, nil)

	event := &edl.Event{Type: edl.TypeGoal, AbsTS: 100, PrePadding: 7, PostPadding: 10}
	args := c.CommandArgs("/v/match.mp4", event, "/out/001_goal.mp4")
	got := strings.Join(args, " ")
	want := "-hide_banner -loglevel error -ss 93.000 -i /v/match.mp4 -t 17.000 -c copy -y /out/001_goal.mp4"
	if got != want {
		t.Fatalf("args = %q, want %q", got, want)
	}
}

func TestCommandArgsClampsStart(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := clipper.New(cfg, nil)

	event := &edl.Event{Type: edl.TypeHighlight, AbsTS: 3, PrePadding: 7, PostPadding: 10}
	args := c.CommandArgs("/v/match.mp4", event, "/out/001_highlight.mp4")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-ss 0.000") || !strings.Contains(joined, "-t 13.000") {
		t.Fatalf("args = %q, want clamped start and shortened duration", joined)
	}
}

func TestClipPathNumbering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	c := clipper.New(cfg, nil)

	path := c.ClipPath(0, edl.TypeGoal)
	if filepath.Base(path) != "001_goal.mp4" {
		t.Fatalf("clip path = %q", path)
	}
	path = c.ClipPath(11, edl.TypeSave)
	if filepath.Base(path) != "012_save.mp4" {
		t.Fatalf("clip path = %q", path)
	}
}

func TestExtractAllFailsOnMissingBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("PATH", t.TempDir())

	c := clipper.New(cfg, nil)
	events := []*edl.Event{{Type: edl.TypeGoal, AbsTS: 100, PrePadding: 7, PostPadding: 10}}
	if _, err := c.ExtractAll(context.Background(), "/v/match.mp4", events); err == nil {
		t.Fatal("expected error when ffmpeg is unavailable")
	}
}
