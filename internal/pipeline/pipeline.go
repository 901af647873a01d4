// Package pipeline runs one highlights pass end to end: ingest detector
// outputs, fuse them, reconcile with the guided event list, compute the clip
// plan, and write the run artifacts. Progress is recorded in the run ledger
// as each stage completes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"sideline/internal/config"
	"sideline/internal/detect"
	"sideline/internal/edl"
	"sideline/internal/fusion"
	"sideline/internal/logging"
	"sideline/internal/manifest"
	"sideline/internal/media/clipper"
	"sideline/internal/media/ffprobe"
	"sideline/internal/queue"
	"sideline/internal/social"
)

// Options describes the inputs for one run.
type Options struct {
	VideoPath  string
	EventsPath string
	// Kickoff is the absolute video timestamp of kickoff in seconds; nil
	// leaves clock-only guided events unresolved.
	Kickoff *float64
}

// Result reports what a finished run produced.
type Result struct {
	RunID        string
	Events       []*edl.Event
	EDLPath      string
	ManifestPath string
	ClipPaths    []string
	Hashtags     []string
	Warnings     []string
}

// Runner executes highlight runs one at a time.
type Runner struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// New constructs a runner with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("pipeline requires config and store")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "sideline.lock")
	return &Runner{
		cfg:      cfg,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Run executes the pipeline for the given inputs. The run is recorded in the
// ledger whether it succeeds or fails.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	locked, err := r.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, errors.New("another sideline run is already in progress")
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	run, err := r.store.NewRun(ctx, opts.VideoPath, opts.EventsPath)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	ctx = logging.WithRunID(ctx, run.RunID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("run started",
		logging.String("video", opts.VideoPath),
		logging.String("events", opts.EventsPath),
	)

	result, err := r.execute(ctx, run, opts, logger)
	if err != nil {
		if failErr := r.store.MarkFailed(ctx, run.ID, err.Error()); failErr != nil {
			logger.Error("failed to record run failure", logging.Error(failErr))
		}
		return nil, err
	}

	if err := r.store.MarkCompleted(ctx, run.ID, len(result.Events), result.EDLPath, result.ManifestPath); err != nil {
		logger.Error("failed to record run completion", logging.Error(err))
	}
	logger.Info("run completed",
		logging.Int("clips", len(result.Events)),
		logging.String("edl", result.EDLPath),
	)
	return result, nil
}

func (r *Runner) execute(ctx context.Context, run *queue.Run, opts Options, logger *slog.Logger) (*Result, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	var videoDuration float64
	if opts.VideoPath != "" {
		r.progress(ctx, run.ID, queue.StatusDetecting, "inspect", 5, "probing match video")
		probe, err := ffprobe.Inspect(ctx, "ffprobe", opts.VideoPath)
		if err != nil {
			return nil, fmt.Errorf("inspect video: %w", err)
		}
		if !probe.HasVideoStream() {
			return nil, fmt.Errorf("no video stream in %s", opts.VideoPath)
		}
		videoDuration = probe.DurationSeconds()
	}

	r.progress(ctx, run.ID, queue.StatusDetecting, "detect", 15, "loading detector outputs")
	signals, err := detect.NewLoader(r.cfg, logger).Load()
	if err != nil {
		return nil, err
	}

	r.progress(ctx, run.ID, queue.StatusFusing, "fusion", 35, "fusing detection signals")
	engine := fusion.NewEngine(r.cfg.Detection, logger)
	fused := engine.Fuse(signals)
	merged := fusion.MergeNearby(fused, r.cfg.Detection.MergeWindow)
	auto := fusion.Export(merged)

	r.progress(ctx, run.ID, queue.StatusPlanning, "plan", 55, "reconciling events")
	planner := edl.NewPlanner(r.cfg, logger)
	if opts.EventsPath != "" {
		if err := planner.LoadGuidedEvents(opts.EventsPath); err != nil {
			return nil, err
		}
	}
	if opts.Kickoff != nil {
		planner.SetKickoffTime(*opts.Kickoff)
	}
	planner.AddAutoDetected(auto)

	events := planner.MergeAndDedupe()
	planner.ComputeAdaptivePadding()
	planner.ApplyFeatureFlags()
	planner.ValidateClipDurations()

	var warnings []string
	if videoDuration > 0 {
		warnings = edl.TimingWarnings(events, videoDuration)
		for _, warning := range warnings {
			logger.Warn("timing check", logging.String("detail", warning))
		}
	}

	r.progress(ctx, run.ID, queue.StatusPlanning, "write", 75, "writing run artifacts")
	runDir := filepath.Join(r.cfg.Paths.OutputDir, run.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}

	edlPath := filepath.Join(runDir, "edl.json")
	if err := edl.WriteDocument(edlPath, events); err != nil {
		return nil, err
	}

	hashtags := social.Hashtags(r.cfg, events)

	result := &Result{
		RunID:    run.RunID,
		Events:   events,
		EDLPath:  edlPath,
		Hashtags: hashtags,
		Warnings: warnings,
	}

	if r.cfg.Render.Enabled && opts.VideoPath != "" {
		r.progress(ctx, run.ID, queue.StatusRendering, "render", 85, "extracting clips")
		clips, err := clipper.New(r.cfg, logger).ExtractAll(ctx, opts.VideoPath, events)
		if err != nil {
			return nil, err
		}
		result.ClipPaths = clips
	}

	manifestPath := filepath.Join(runDir, "manifest.json")
	m := manifest.Build(run.RunID, opts.VideoPath, opts.EventsPath, edlPath, events, hashtags)
	m.ClipFiles = result.ClipPaths
	if err := m.Write(manifestPath); err != nil {
		return nil, err
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// progress best-effort updates the ledger; a bookkeeping failure never stops
// the run.
func (r *Runner) progress(ctx context.Context, id int64, status queue.Status, stage string, percent float64, message string) {
	if err := r.store.UpdateStatus(ctx, id, status); err != nil {
		r.logger.Warn("failed to update run status", logging.Error(err))
	}
	if err := r.store.UpdateProgress(ctx, id, stage, percent, message); err != nil {
		r.logger.Warn("failed to update run progress", logging.Error(err))
	}
}
