package detect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"sideline/internal/config"
	"sideline/internal/fusion"
	"sideline/internal/logging"
)

// Loader reads per-kind detector output files.
type Loader struct {
	dir    string
	kinds  []string
	logger *slog.Logger
}

// NewLoader builds a loader for the configured signal kinds. A nil logger is
// replaced with a no-op one.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{
		dir:    cfg.SignalsDir(),
		kinds:  append([]string(nil), cfg.Detection.Signals...),
		logger: logging.NewComponentLogger(logger, "detect"),
	}
}

// Load gathers candidates for every configured signal kind. A kind whose file
// does not exist contributes zero candidates; a file that exists but cannot
// be parsed fails the load, since silently ignoring a corrupt detector run
// would bias the fusion toward whatever did parse.
func (l *Loader) Load() (map[string][]fusion.Candidate, error) {
	signals := make(map[string][]fusion.Candidate, len(l.kinds))
	for _, kind := range l.kinds {
		path := filepath.Join(l.dir, kind+".json")
		candidates, err := loadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.logger.Debug("no detector output",
					logging.String(logging.FieldSignal, kind),
					logging.String("path", path),
				)
				continue
			}
			return nil, fmt.Errorf("load %s detections: %w", kind, err)
		}
		l.logger.Info("loaded detector output",
			logging.String(logging.FieldSignal, kind),
			logging.Int("candidates", len(candidates)),
		)
		signals[kind] = candidates
	}
	return signals, nil
}

// loadFile parses one detector output file, which is either a bare candidate
// list or an object with a "candidates" array.
func loadFile(path string) ([]fusion.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []fusion.Candidate
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapper struct {
		Candidates []fusion.Candidate `json:"candidates"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return wrapper.Candidates, nil
}
