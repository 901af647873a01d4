package edl_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"sideline/internal/config"
	"sideline/internal/edl"
)

func newTestPlanner(t *testing.T, mutate func(*config.Config)) *edl.Planner {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	return edl.NewPlanner(&cfg, nil)
}

func writeEvents(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write events file: %v", err)
	}
	return path
}

func conf(v float64) *float64 { return &v }

func autoCandidate(eventType string, ts, confidence float64) edl.Candidate {
	return edl.Candidate{
		Type:       eventType,
		AbsTS:      json.RawMessage(fmt.Sprintf("%v", ts)),
		Confidence: conf(confidence),
	}
}

func TestLoadGuidedEventsRoundTrip(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `{"events": [
		{"type": "goal", "abs_ts": 1425.5, "team": "Syston", "player": "Smith",
		 "assist": "Jones", "score": "1-0", "notes": "header from corner"}
	]}`)

	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	events := planner.Events()
	if len(events) != 1 {
		t.Fatalf("loaded %d events, want 1", len(events))
	}
	got := events[0]
	if got.Type != edl.TypeGoal || got.AbsTS != 1425.5 || !got.Resolved() {
		t.Fatalf("event = %+v", got)
	}
	if got.Team != "Syston" || got.Player != "Smith" || got.Assist != "Jones" || got.Notes != "header from corner" {
		t.Fatalf("metadata lost: %+v", got)
	}
	if got.Score == nil || got.Score.Home != 1 || got.Score.Away != 0 {
		t.Fatalf("score = %+v", got.Score)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("guided confidence = %v, want 1.0", got.Confidence)
	}
	if got.Source != edl.SourceGuided {
		t.Fatalf("source = %q", got.Source)
	}
}

func TestLoadGuidedEventsValidationAbortsLoad(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `[
		{"type": "goal", "abs_ts": 100},
		{"type": "card", "half": 5, "clock": "10:00"}
	]`)

	err := planner.LoadGuidedEvents(path)
	if !errors.Is(err, edl.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(planner.Events()) != 0 {
		t.Fatalf("partial load: %d events kept", len(planner.Events()))
	}
}

func TestLoadGuidedEventsMissingFile(t *testing.T) {
	planner := newTestPlanner(t, nil)
	if err := planner.LoadGuidedEvents(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadGuidedEventsTracksMatchMarks(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `[
		{"type": "highlight", "abs_ts": 2940, "status": "HT"},
		{"type": "highlight", "abs_ts": 6000, "status": "FT"}
	]`)
	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if ht, ok := planner.HalfTimeMark(); !ok || ht != 2940 {
		t.Fatalf("half time mark = %v ok=%v", ht, ok)
	}
	if ft, ok := planner.FullTimeMark(); !ok || ft != 6000 {
		t.Fatalf("full time mark = %v ok=%v", ft, ok)
	}
}

func TestDeferredKickoffResolution(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `[
		{"type": "goal", "half": 1, "clock": "23:45"},
		{"type": "card", "half": 2, "clock": "67:30"}
	]`)
	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, event := range planner.Events() {
		if event.Resolved() {
			t.Fatalf("event resolved before kickoff: %+v", event)
		}
	}

	planner.SetKickoffTime(120)

	events := planner.Events()
	if !events[0].Resolved() || events[0].AbsTS != 120+1425 {
		t.Fatalf("first half event = %+v, want abs_ts %v", events[0], 120+1425)
	}
	// Second half clock counts from zero after kickoff + first half + break.
	want := 120.0 + 49*60 + 15*60 + (67*60 + 30)
	if !events[1].Resolved() || events[1].AbsTS != want {
		t.Fatalf("second half event = %+v, want abs_ts %v", events[1], want)
	}
}

func TestMergeAndDedupeDropsUnresolved(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `[
		{"type": "goal", "half": 1, "clock": "23:45"},
		{"type": "save", "abs_ts": 500}
	]`)
	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	final := planner.MergeAndDedupe()
	if len(final) != 1 || final[0].Type != edl.TypeSave {
		t.Fatalf("final = %+v, want only the resolved save", final)
	}
}

func TestMergeAndDedupeGuidedWinsByDefault(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `[{"type": "goal", "abs_ts": 300.0, "confidence": 1.0}]`)
	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	planner.AddAutoDetected([]edl.Candidate{autoCandidate(edl.TypeGoalLike, 301.0, 0.9)})

	final := planner.MergeAndDedupe()
	if len(final) != 1 {
		t.Fatalf("final has %d events, want 1", len(final))
	}
	if final[0].Source != edl.SourceGuided || final[0].Type != edl.TypeGoal {
		t.Fatalf("guided event lost: %+v", final[0])
	}
}

func TestMergeAndDedupePromotionMargin(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `[{"type": "chance", "abs_ts": 300.0, "confidence": 0.5}]`)
	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	planner.AddAutoDetected([]edl.Candidate{autoCandidate(edl.TypeGoalLike, 301.0, 0.9)})

	final := planner.MergeAndDedupe()
	if len(final) != 1 {
		t.Fatalf("final has %d events, want 1", len(final))
	}
	if final[0].Source != edl.SourceAuto || final[0].Type != edl.TypeGoalLike {
		t.Fatalf("auto event should replace low-confidence guided: %+v", final[0])
	}
}

func TestMergeAndDedupeWindowBoundaryExclusive(t *testing.T) {
	planner := newTestPlanner(t, func(cfg *config.Config) { cfg.EDL.DedupeWindow = 4.0 })
	path := writeEvents(t, `[{"type": "goal", "abs_ts": 300.0}]`)
	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	// Exactly at the window edge: no conflict, both survive.
	planner.AddAutoDetected([]edl.Candidate{autoCandidate(edl.TypeGoalLike, 304.0, 0.9)})

	final := planner.MergeAndDedupe()
	if len(final) != 2 {
		t.Fatalf("final has %d events, want 2 at exact window boundary", len(final))
	}
}

func TestMergeAndDedupeUnrelatedTypesCoexist(t *testing.T) {
	planner := newTestPlanner(t, nil)
	path := writeEvents(t, `[{"type": "goal", "abs_ts": 300.0}]`)
	if err := planner.LoadGuidedEvents(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	planner.AddAutoDetected([]edl.Candidate{autoCandidate(edl.TypeFoul, 301.0, 0.95)})

	final := planner.MergeAndDedupe()
	if len(final) != 2 {
		t.Fatalf("final has %d events, want 2 for unrelated types", len(final))
	}
}

func TestMergeAndDedupeSortsByTimestamp(t *testing.T) {
	planner := newTestPlanner(t, nil)
	planner.AddAutoDetected([]edl.Candidate{
		autoCandidate(edl.TypeHighlight, 900, 0.6),
		autoCandidate(edl.TypeHighlight, 100, 0.6),
		autoCandidate(edl.TypeHighlight, 500, 0.6),
	})
	final := planner.MergeAndDedupe()
	for i := 1; i < len(final); i++ {
		if final[i-1].AbsTS > final[i].AbsTS {
			t.Fatalf("events out of order: %v after %v", final[i].AbsTS, final[i-1].AbsTS)
		}
	}
}

func TestMergeAndDedupeClipBudget(t *testing.T) {
	planner := newTestPlanner(t, func(cfg *config.Config) { cfg.EDL.MaxClips = 10 })

	var candidates []edl.Candidate
	for i := 0; i < 45; i++ {
		candidates = append(candidates, autoCandidate(edl.TypeHighlight, float64(100+i*60), 0.5))
	}
	for i := 0; i < 5; i++ {
		candidates = append(candidates, autoCandidate(edl.TypeGoal, float64(150+i*600), 0.9))
	}
	planner.AddAutoDetected(candidates)

	final := planner.MergeAndDedupe()
	if len(final) != 10 {
		t.Fatalf("final has %d events, want 10", len(final))
	}
	goals := 0
	for _, event := range final {
		if event.Type == edl.TypeGoal {
			goals++
		}
	}
	// Every goal outranks every generic highlight for the budget.
	if goals != 5 {
		t.Fatalf("kept %d goals, want all 5", goals)
	}
}

func TestRankByPriority(t *testing.T) {
	events := []*edl.Event{
		{Type: edl.TypeHighlight, AbsTS: 10, Confidence: 0.9},
		{Type: edl.TypeGoal, AbsTS: 500, Confidence: 0.7},
		{Type: edl.TypeGoal, AbsTS: 100, Confidence: 0.7},
		{Type: edl.TypeSave, AbsTS: 50, Confidence: 0.8},
	}
	ranked := edl.RankByPriority(events)

	wantOrder := []float64{100, 500, 50, 10}
	for i, want := range wantOrder {
		if ranked[i].AbsTS != want {
			t.Fatalf("rank %d = %+v, want abs_ts %v", i, ranked[i], want)
		}
	}
	if events[0].Type != edl.TypeHighlight {
		t.Fatal("input slice reordered")
	}
}

func TestAddAutoDetectedSkipsBadRecords(t *testing.T) {
	planner := newTestPlanner(t, nil)
	planner.AddAutoDetected([]edl.Candidate{
		{Type: edl.TypeHighlight, AbsTS: json.RawMessage("-5")},
		{Type: edl.TypeHighlight},
		autoCandidate(edl.TypeHighlight, 60, 0.5),
	})
	if len(planner.Events()) != 1 {
		t.Fatalf("kept %d events, want 1", len(planner.Events()))
	}
}

func TestTimingWarnings(t *testing.T) {
	events := []*edl.Event{
		{Type: edl.TypeGoal, AbsTS: 100, PrePadding: 7, PostPadding: 10},
		{Type: edl.TypeSave, AbsTS: 5, PrePadding: 7, PostPadding: 10},
		{Type: edl.TypeCard, AbsTS: 7000, PrePadding: 4, PostPadding: 6},
	}
	warnings := edl.TimingWarnings(events, 6000)
	if len(warnings) != 3 {
		t.Fatalf("warnings = %v, want 3", warnings)
	}
}
