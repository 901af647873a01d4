// Package testsupport provides shared helpers for package tests: temp-dir
// configs, fixture files, and ledger stores.
package testsupport

import (
	"path/filepath"
	"testing"

	"sideline/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMaxClips overrides the clip budget on the test config.
func WithMaxClips(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.EDL.MaxClips = n
	}
}

// WithRenderEnabled turns on clip extraction for tests that stub ffmpeg.
func WithRenderEnabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.Enabled = true
	}
}
