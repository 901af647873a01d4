package config

const (
	defaultOutputDir  = "~/.local/share/sideline/out"
	defaultStagingDir = "~/.local/share/sideline/staging"
	defaultLogDir     = "~/.local/share/sideline/logs"

	defaultBucketSize    = 1.0
	defaultMinConfidence = 0.3
	defaultMergeWindow   = 3.0

	defaultDedupeWindow    = 4.0
	defaultMaxClips        = 10
	defaultPromotionMargin = 0.15

	defaultMaxPrePadding  = 15
	defaultMaxPostPadding = 25
	defaultMinClipLen     = 6
	defaultMaxClipLen     = 30

	defaultFirstHalfMinutes = 49
	defaultHalfTimeMinutes  = 15

	defaultRenderTimeoutSeconds = 120
	defaultMaxHashtags          = 15

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// DefaultSignalWeights returns the built-in fusion weight table. Guided
// ground truth dominates; vision outweighs audio; production scene cuts
// barely count.
func DefaultSignalWeights() map[string]float64 {
	return map[string]float64{
		"guided":     5.0,
		"vision":     2.0,
		"audio":      1.5,
		"commentary": 1.2,
		"whistle":    1.0,
		"flow":       1.0,
		"scene_cut":  0.5,
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Detection: Detection{
			Weights:       DefaultSignalWeights(),
			BucketSize:    defaultBucketSize,
			MinConfidence: defaultMinConfidence,
			MergeWindow:   defaultMergeWindow,
			Signals:       []string{"vision", "audio", "whistle", "flow"},
		},
		EDL: EDL{
			DedupeWindow:    defaultDedupeWindow,
			MaxClips:        defaultMaxClips,
			PromotionMargin: defaultPromotionMargin,
		},
		Padding: Padding{
			Default:    PaddingWindow{Pre: 7, Post: 10},
			Save:       PaddingWindow{Pre: 6, Post: 8},
			Chance:     PaddingWindow{Pre: 8, Post: 6},
			FoulOrCard: PaddingWindow{Pre: 4, Post: 6},
			Goal: GoalPadding{
				PreBonusOnAttack:       5,
				PostBonusOnCelebration: 8,
			},
			MaxPre:  defaultMaxPrePadding,
			MaxPost: defaultMaxPostPadding,
		},
		Limits: Limits{
			MinClipLen: defaultMinClipLen,
			MaxClipLen: defaultMaxClipLen,
		},
		Zoom: Zoom{
			Enable: true,
		},
		Replay: Replay{
			EnableFor: []string{"goal", "big_save"},
		},
		Match: Match{
			FirstHalfMinutes: defaultFirstHalfMinutes,
			HalfTimeMinutes:  defaultHalfTimeMinutes,
		},
		Render: Render{
			Enabled:        false,
			TimeoutSeconds: defaultRenderTimeoutSeconds,
		},
		Social: Social{
			MaxHashtags: defaultMaxHashtags,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
