package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetection()
	c.normalizeReplay()
	c.normalizeSocial()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDetection() {
	// A user-supplied weights table overrides entries but never removes the
	// built-in ones, mirroring how partial tables behave everywhere else.
	weights := DefaultSignalWeights()
	for kind, weight := range c.Detection.Weights {
		weights[strings.ToLower(strings.TrimSpace(kind))] = weight
	}
	c.Detection.Weights = weights

	if c.Detection.BucketSize <= 0 {
		c.Detection.BucketSize = defaultBucketSize
	}
	if c.Detection.MergeWindow <= 0 {
		c.Detection.MergeWindow = defaultMergeWindow
	}

	signals := make([]string, 0, len(c.Detection.Signals))
	for _, name := range c.Detection.Signals {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			signals = append(signals, name)
		}
	}
	c.Detection.Signals = signals
}

func (c *Config) normalizeReplay() {
	types := make([]string, 0, len(c.Replay.EnableFor))
	for _, name := range c.Replay.EnableFor {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			types = append(types, name)
		}
	}
	c.Replay.EnableFor = types
}

func (c *Config) normalizeSocial() {
	c.Social.ClubTag = strings.TrimSpace(c.Social.ClubTag)
	c.Social.Competition = strings.TrimSpace(c.Social.Competition)
	if c.Social.MaxHashtags <= 0 {
		c.Social.MaxHashtags = defaultMaxHashtags
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
