// Package manifest writes the run manifest that accompanies a finished
// highlights run: where the inputs came from, what was produced, and the
// social metadata a publisher needs.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sideline/internal/edl"
	"sideline/internal/timecode"
)

// Manifest summarizes one highlights run.
type Manifest struct {
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`

	VideoPath  string `json:"video_path,omitempty"`
	EventsPath string `json:"events_path,omitempty"`
	EDLPath    string `json:"edl_path"`

	ClipCount     int     `json:"clip_count"`
	TotalDuration float64 `json:"total_duration"`
	// Highlight is the formatted timestamp of the highest-priority clip.
	Highlight string `json:"highlight,omitempty"`

	Hashtags []string `json:"hashtags,omitempty"`

	ClipFiles []string `json:"clip_files,omitempty"`
}

// Build assembles a manifest from the planned events and run details.
func Build(runID, videoPath, eventsPath, edlPath string, events []*edl.Event, hashtags []string) Manifest {
	m := Manifest{
		RunID:       runID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		VideoPath:   videoPath,
		EventsPath:  eventsPath,
		EDLPath:     edlPath,
		ClipCount:   len(events),
		Hashtags:    hashtags,
	}
	for _, event := range events {
		m.TotalDuration += event.Duration()
	}
	if ranked := edl.RankByPriority(events); len(ranked) > 0 {
		m.Highlight = timecode.FormatTimestamp(ranked[0].AbsTS)
	}
	return m
}

// Write stores the manifest as indented JSON at path.
func (m Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
