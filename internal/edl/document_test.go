package edl_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"sideline/internal/edl"
)

func TestBuildEntries(t *testing.T) {
	events := []*edl.Event{
		{
			Type:        edl.TypeGoal,
			AbsTS:       1425.5,
			Team:        "Syston",
			Player:      "Smith",
			Score:       &edl.Score{Home: 1},
			Confidence:  1.0,
			Source:      edl.SourceGuided,
			PrePadding:  12,
			PostPadding: 18,
			ZoomEnabled: true,
		},
		{
			Type:        edl.TypeHighlight,
			AbsTS:       3,
			Confidence:  0.6,
			Source:      edl.SourceAuto,
			PrePadding:  7,
			PostPadding: 10,
		},
	}

	entries := edl.BuildEntries(events)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	goal := entries[0]
	if goal.Start != "00:23:33.500" || goal.End != "00:23:53.500" || goal.EventTime != "00:23:45.500" {
		t.Fatalf("goal window = %s..%s at %s", goal.Start, goal.End, goal.EventTime)
	}
	if goal.DurationS != 30 || !goal.Zoom || goal.Replay {
		t.Fatalf("goal entry = %+v", goal)
	}
	if goal.Score == nil || goal.Score.Home != 1 {
		t.Fatalf("goal score = %+v", goal.Score)
	}

	// Pre padding would start before zero; the clip clamps.
	clamped := entries[1]
	if clamped.Start != "00:00:00.000" {
		t.Fatalf("clamped start = %s", clamped.Start)
	}
	if clamped.DurationS != 13 {
		t.Fatalf("clamped duration = %v, want 13", clamped.DurationS)
	}
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "edl.json")
	events := []*edl.Event{
		{Type: edl.TypeGoal, AbsTS: 100, Confidence: 1.0, Source: edl.SourceGuided, PrePadding: 7, PostPadding: 10},
	}

	if err := edl.WriteDocument(path, events); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc edl.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.ClipCount != 1 || len(doc.Clips) != 1 || doc.GeneratedAt == "" {
		t.Fatalf("document = %+v", doc)
	}
	if doc.Clips[0].Type != edl.TypeGoal {
		t.Fatalf("clip = %+v", doc.Clips[0])
	}
}
