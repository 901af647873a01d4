package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir  string `toml:"output_dir"`
	StagingDir string `toml:"staging_dir"`
	LogDir     string `toml:"log_dir"`
}

// Detection contains configuration for the signal fusion engine.
type Detection struct {
	// Weights maps signal kind to its fusion weight. Keys not listed here
	// keep their built-in defaults; unknown kinds weigh 1.0.
	Weights       map[string]float64 `toml:"weights"`
	BucketSize    float64            `toml:"bucket_size"`
	MinConfidence float64            `toml:"min_confidence"`
	MergeWindow   float64            `toml:"merge_window"`
	// Signals lists the detector outputs to ingest from the signals directory.
	Signals []string `toml:"signals"`
}

// EDL contains configuration for guided/auto event reconciliation.
type EDL struct {
	DedupeWindow float64 `toml:"dedupe_window"`
	MaxClips     int     `toml:"max_clips"`
	// PromotionMargin is how much higher an auto-detected event's confidence
	// must be before it replaces a conflicting guided event.
	PromotionMargin float64 `toml:"promotion_margin"`
}

// PaddingWindow is a pre/post lead-in and lead-out pair in seconds.
type PaddingWindow struct {
	Pre  float64 `toml:"pre"`
	Post float64 `toml:"post"`
}

// GoalPadding contains the signal-driven padding bonuses applied to goals.
type GoalPadding struct {
	PreBonusOnAttack       float64 `toml:"pre_bonus_on_attack"`
	PostBonusOnCelebration float64 `toml:"post_bonus_on_celebration"`
}

// Padding contains per-type clip padding configuration.
type Padding struct {
	Default    PaddingWindow `toml:"default"`
	Save       PaddingWindow `toml:"save"`
	Chance     PaddingWindow `toml:"chance"`
	FoulOrCard PaddingWindow `toml:"foul_or_card"`
	Goal       GoalPadding   `toml:"goal"`
	MaxPre     float64       `toml:"max_pre"`
	MaxPost    float64       `toml:"max_post"`
}

// Limits contains clip count and duration bounds.
type Limits struct {
	MinClipLen float64 `toml:"min_clip_len"`
	MaxClipLen float64 `toml:"max_clip_len"`
}

// Zoom contains the zoom effect feature flag.
type Zoom struct {
	Enable bool `toml:"enable"`
}

// Replay contains the replay effect feature flag configuration.
type Replay struct {
	EnableFor []string `toml:"enable_for"`
}

// Match contains match clock arithmetic settings.
type Match struct {
	FirstHalfMinutes int `toml:"first_half_minutes"`
	HalfTimeMinutes  int `toml:"half_time_minutes"`
}

// Render contains configuration for clip extraction via ffmpeg.
type Render struct {
	Enabled        bool `toml:"enabled"`
	TimeoutSeconds int  `toml:"timeout_seconds"`
}

// Social contains hashtag generation settings.
type Social struct {
	ClubTag     string `toml:"club_tag"`
	Competition string `toml:"competition"`
	MaxHashtags int    `toml:"max_hashtags"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sideline.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Detection Detection `toml:"detection"`
	EDL       EDL       `toml:"edl"`
	Padding   Padding   `toml:"padding"`
	Limits    Limits    `toml:"limits"`
	Zoom      Zoom      `toml:"zoom"`
	Replay    Replay    `toml:"replay"`
	Match     Match     `toml:"match"`
	Render    Render    `toml:"render"`
	Social    Social    `toml:"social"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sideline/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. A missing file yields defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sideline.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.StagingDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SignalsDir returns the directory detector outputs are read from.
func (c *Config) SignalsDir() string {
	return filepath.Join(c.Paths.StagingDir, "signals")
}

// FFmpegBinary returns the ffmpeg executable name used for clip extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
