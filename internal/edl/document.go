package edl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sideline/internal/timecode"
)

// Entry is the serialized form of one planned clip.
type Entry struct {
	Type       string  `json:"type"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	EventTime  string  `json:"event_time"`
	DurationS  float64 `json:"duration"`
	Team       string  `json:"team,omitempty"`
	Player     string  `json:"player,omitempty"`
	Assist     string  `json:"assist,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	Score      *Score  `json:"score,omitempty"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
	Zoom       bool    `json:"zoom"`
	Replay     bool    `json:"replay"`
}

// Document is the on-disk edit decision list for one run.
type Document struct {
	GeneratedAt string  `json:"generated_at"`
	ClipCount   int     `json:"clip_count"`
	Clips       []Entry `json:"clips"`
}

// BuildEntries converts planned events into serializable clip entries. Clip
// start is clamped to the beginning of the video.
func BuildEntries(events []*Event) []Entry {
	entries := make([]Entry, 0, len(events))
	for _, event := range events {
		start := event.AbsTS - event.PrePadding
		if start < 0 {
			start = 0
		}
		end := event.AbsTS + event.PostPadding
		entries = append(entries, Entry{
			Type:       event.Type,
			Start:      timecode.FormatTimestamp(start),
			End:        timecode.FormatTimestamp(end),
			EventTime:  timecode.FormatTimestamp(event.AbsTS),
			DurationS:  end - start,
			Team:       event.Team,
			Player:     event.Player,
			Assist:     event.Assist,
			Notes:      event.Notes,
			Score:      event.Score,
			Confidence: event.Confidence,
			Source:     event.Source,
			Zoom:       event.ZoomEnabled,
			Replay:     event.ReplayEnabled,
		})
	}
	return entries
}

// WriteDocument writes the edit decision list to path as indented JSON.
func WriteDocument(path string, events []*Event) error {
	doc := Document{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ClipCount:   len(events),
		Clips:       BuildEntries(events),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal edl: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create edl directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write edl: %w", err)
	}
	return nil
}
