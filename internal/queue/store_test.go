package queue_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"sideline/internal/queue"
	"sideline/internal/testsupport"
)

func openStore(t *testing.T) *queue.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestNewRunDefaults(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "/video/match.mp4", "/video/events.json")
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	if run.Status != queue.StatusPending {
		t.Fatalf("status = %q, want pending", run.Status)
	}
	if run.RunID == "" {
		t.Fatal("run id not assigned")
	}
	if run.VideoPath != "/video/match.mp4" || run.EventsPath != "/video/events.json" {
		t.Fatalf("paths = %q, %q", run.VideoPath, run.EventsPath)
	}
	if run.CreatedAt.IsZero() || run.UpdatedAt.IsZero() {
		t.Fatal("timestamps not recorded")
	}
}

func TestRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "/video/match.mp4", "")
	if err != nil {
		t.Fatalf("new run: %v", err)
	}

	if err := store.UpdateStatus(ctx, run.ID, queue.StatusFusing); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := store.UpdateProgress(ctx, run.ID, "fusion", 40, "bucketing detections"); err != nil {
		t.Fatalf("update progress: %v", err)
	}

	got, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != queue.StatusFusing || got.ProgressStage != "fusion" || got.ProgressPercent != 40 {
		t.Fatalf("run = %+v", got)
	}

	edlPath := filepath.Join("out", "edl.json")
	if err := store.MarkCompleted(ctx, run.ID, 8, edlPath, ""); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	got, err = store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != queue.StatusCompleted || got.ClipCount != 8 || got.EDLPath != edlPath {
		t.Fatalf("completed run = %+v", got)
	}
	if !got.Status.IsTerminal() {
		t.Fatal("completed should be terminal")
	}
}

func TestMarkFailed(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "", "")
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	if err := store.MarkFailed(ctx, run.ID, "guided events validation failed"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	got, err := store.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != queue.StatusFailed || got.ErrorMessage == "" {
		t.Fatalf("failed run = %+v", got)
	}
}

func TestGetByRunIDPrefix(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "", "")
	if err != nil {
		t.Fatalf("new run: %v", err)
	}

	got, err := store.GetByRunID(ctx, run.RunID[:8])
	if err != nil {
		t.Fatalf("get by prefix: %v", err)
	}
	if got.ID != run.ID {
		t.Fatalf("got run %d, want %d", got.ID, run.ID)
	}

	if _, err := store.GetByRunID(ctx, "zzzzzzzz"); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListAndHealth(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.NewRun(ctx, "", "")
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	second, err := store.NewRun(ctx, "", "")
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	if err := store.MarkFailed(ctx, first.ID, "boom"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second.ID {
		t.Fatalf("list = %+v, want newest first", runs)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limited list has %d runs, want 1", len(limited))
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if health.Total != 2 || health.Pending != 1 || health.Failed != 1 {
		t.Fatalf("health = %+v", health)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	store := openStore(t)
	run, err := store.NewRun(context.Background(), "", "")
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	if err := store.UpdateStatus(context.Background(), run.ID, queue.Status("exploded")); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := queue.ParseStatus(" Completed "); !ok || status != queue.StatusCompleted {
		t.Fatalf("ParseStatus = %q ok=%v", status, ok)
	}
	if _, ok := queue.ParseStatus("nonsense"); ok {
		t.Fatal("nonsense should not parse")
	}
}
