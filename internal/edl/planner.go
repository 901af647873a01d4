package edl

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"sideline/internal/config"
	"sideline/internal/logging"
	"sideline/internal/timecode"
)

// ErrValidation marks a guided events file that failed schema validation.
var ErrValidation = errors.New("guided events validation failed")

// Planner owns the event list for one highlights run and reconciles guided
// and auto-detected events into the final Edit Decision List.
type Planner struct {
	cfg    *config.Config
	logger *slog.Logger

	events  []*Event
	kickoff *float64

	halfTimeMark *float64
	fullTimeMark *float64
}

// NewPlanner builds a planner bound to the run configuration. A nil logger is
// replaced with a no-op one.
func NewPlanner(cfg *config.Config, logger *slog.Logger) *Planner {
	return &Planner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "edl"),
	}
}

// Events returns the current event list.
func (p *Planner) Events() []*Event { return p.events }

// HalfTimeMark returns the half-time reference timestamp, if a guided "HT"
// status marker was loaded.
func (p *Planner) HalfTimeMark() (float64, bool) {
	if p.halfTimeMark == nil {
		return 0, false
	}
	return *p.halfTimeMark, true
}

// FullTimeMark returns the full-time reference timestamp, if a guided "FT"
// status marker was loaded.
func (p *Planner) FullTimeMark() (float64, bool) {
	if p.fullTimeMark == nil {
		return 0, false
	}
	return *p.fullTimeMark, true
}

// LoadGuidedEvents reads and validates a guided events file. Schema validation
// failure aborts the load and nothing is added; records that merely cannot
// resolve a timestamp yet are kept unresolved or skipped individually.
func (p *Planner) LoadGuidedEvents(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read guided events: %w", err)
	}

	candidates, err := DecodeCandidates(data)
	if err != nil {
		return err
	}

	if errs := ValidateCandidates(candidates); len(errs) > 0 {
		for _, validationErr := range errs {
			p.logger.Error("event validation error", logging.Error(validationErr))
		}
		return fmt.Errorf("%w: %d problem(s) in %s", ErrValidation, len(errs), path)
	}

	loaded := 0
	for _, candidate := range candidates {
		event := p.buildEvent(candidate, SourceGuided)
		if event == nil {
			continue
		}
		p.events = append(p.events, event)
		loaded++

		switch candidate.Status {
		case StatusHalfTime:
			if event.resolved {
				ts := event.AbsTS
				p.halfTimeMark = &ts
			}
		case StatusFullTime:
			if event.resolved {
				ts := event.AbsTS
				p.fullTimeMark = &ts
			}
		}
	}

	p.logger.Info("loaded guided events",
		logging.Int("loaded", loaded),
		logging.Int("records", len(candidates)),
	)
	return nil
}

// SetKickoffTime stores the kickoff reference and retroactively resolves every
// guided event that was loaded with only a half and clock. Guided events may
// arrive before kickoff time is known.
func (p *Planner) SetKickoffTime(ts float64) {
	p.kickoff = &ts

	resolved := 0
	for _, event := range p.events {
		if event.Source != SourceGuided || event.resolved {
			continue
		}
		if event.Half == 0 || event.Clock == "" {
			continue
		}
		abs, err := p.absoluteFromClock(event.Half, event.Clock)
		if err != nil {
			p.logger.Warn("cannot resolve event clock",
				logging.String(logging.FieldEventType, event.Type),
				logging.Error(err),
			)
			continue
		}
		event.AbsTS = abs
		event.resolved = true
		resolved++
	}
	if resolved > 0 {
		p.logger.Info("resolved deferred event timestamps",
			logging.Int("resolved", resolved),
			logging.Float64("kickoff", ts),
		)
	}
}

// AddAutoDetected converts fusion candidates into auto events. A candidate
// that cannot produce an event is skipped, never aborting the batch.
func (p *Planner) AddAutoDetected(candidates []Candidate) {
	added := 0
	for _, candidate := range candidates {
		event := p.buildEvent(candidate, SourceAuto)
		if event == nil {
			continue
		}
		p.events = append(p.events, event)
		added++
	}
	p.logger.Info("added auto-detected candidates", logging.Int("added", added))
}

// buildEvent constructs an Event from a raw record, resolving its absolute
// timestamp when possible. Returns nil when the record can never resolve.
func (p *Planner) buildEvent(candidate Candidate, source Source) *Event {
	event := &Event{
		Type:       candidate.Type,
		Half:       candidate.Half,
		Clock:      candidate.Clock,
		Team:       candidate.Team,
		Player:     candidate.Player,
		Assist:     candidate.Assist,
		Score:      candidate.ParsedScore(),
		Notes:      candidate.Notes,
		Status:     candidate.Status,
		Confidence: 1.0,
		Signals:    append([]string(nil), candidate.Signals...),
		Source:     source,
	}
	if candidate.Confidence != nil {
		event.Confidence = *candidate.Confidence
	}

	abs, ok, err := candidate.AbsoluteSeconds()
	switch {
	case err != nil:
		p.logger.Warn("skipping event with bad timestamp",
			logging.String(logging.FieldEventType, candidate.Type),
			logging.Error(err),
		)
		return nil
	case ok:
		if abs < 0 {
			p.logger.Warn("skipping event with negative timestamp",
				logging.String(logging.FieldEventType, candidate.Type),
				logging.Float64("abs_ts", abs),
			)
			return nil
		}
		event.AbsTS = abs
		event.resolved = true
		return event
	}

	if candidate.Half != 0 && candidate.Clock != "" {
		if p.kickoff != nil {
			abs, err := p.absoluteFromClock(candidate.Half, candidate.Clock)
			if err != nil {
				p.logger.Warn("skipping event with bad clock",
					logging.String(logging.FieldEventType, candidate.Type),
					logging.Error(err),
				)
				return nil
			}
			event.AbsTS = abs
			event.resolved = true
		}
		// No kickoff yet: keep the event unresolved for SetKickoffTime.
		return event
	}

	p.logger.Warn("cannot compute absolute timestamp for event",
		logging.String(logging.FieldEventType, candidate.Type),
	)
	return nil
}

func (p *Planner) absoluteFromClock(half int, clock string) (float64, error) {
	firstHalf := time.Duration(p.cfg.Match.FirstHalfMinutes) * time.Minute
	halfTime := time.Duration(p.cfg.Match.HalfTimeMinutes) * time.Minute
	return timecode.AbsoluteTime(half, clock, *p.kickoff, firstHalf, halfTime)
}

// MergeAndDedupe reconciles guided and auto events. Auto events within the
// dedupe window of a same or related-type guided event replace it only when
// their confidence clears the promotion margin; otherwise the guided event
// silently wins. The survivors are sorted by timestamp and, when over the
// clip budget, ranked by priority and truncated. Events still lacking a
// resolved timestamp are dropped here with a warning.
func (p *Planner) MergeAndDedupe() []*Event {
	dedupeWindow := p.cfg.EDL.DedupeWindow
	margin := p.cfg.EDL.PromotionMargin

	var guided, auto []*Event
	for _, event := range p.events {
		if !event.resolved {
			p.logger.Warn("dropping event with unresolved timestamp",
				logging.String(logging.FieldEventType, event.Type),
				logging.String("clock", event.Clock),
			)
			continue
		}
		if event.Source == SourceGuided {
			guided = append(guided, event)
		} else {
			auto = append(auto, event)
		}
	}

	final := make([]*Event, len(guided))
	copy(final, guided)
	replaced := make(map[*Event]bool)

	for _, autoEvent := range auto {
		conflict := false
		for _, guidedEvent := range guided {
			timeDiff := math.Abs(autoEvent.AbsTS - guidedEvent.AbsTS)
			if !RelatedTypes(autoEvent.Type, guidedEvent.Type) || timeDiff >= dedupeWindow {
				continue
			}
			conflict = true
			if !replaced[guidedEvent] && autoEvent.Confidence >= guidedEvent.Confidence+margin {
				p.logger.Info("auto event replaces guided",
					logging.String(logging.FieldEventType, autoEvent.Type),
					logging.String("at", timecode.FormatTimestamp(autoEvent.AbsTS)),
					logging.Float64("auto_confidence", autoEvent.Confidence),
					logging.Float64("guided_confidence", guidedEvent.Confidence),
				)
				replaced[guidedEvent] = true
				final = removeEvent(final, guidedEvent)
				final = append(final, autoEvent)
			}
			break
		}
		if !conflict {
			final = append(final, autoEvent)
			p.logger.Info("auto event added",
				logging.String(logging.FieldEventType, autoEvent.Type),
				logging.String("at", timecode.FormatTimestamp(autoEvent.AbsTS)),
			)
		}
	}

	sort.SliceStable(final, func(i, j int) bool {
		return final[i].AbsTS < final[j].AbsTS
	})

	if maxClips := p.cfg.EDL.MaxClips; len(final) > maxClips {
		final = RankByPriority(final)[:maxClips]
		p.logger.Info("limited to clip budget", logging.Int("max_clips", maxClips))
	}

	p.events = final
	return final
}

// RankByPriority sorts events by type importance, then confidence, then
// earliest timestamp.
func RankByPriority(events []*Event) []*Event {
	ranked := make([]*Event, len(events))
	copy(ranked, events)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := PriorityScore(ranked[i].Type), PriorityScore(ranked[j].Type)
		if pi != pj {
			return pi > pj
		}
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].AbsTS < ranked[j].AbsTS
	})
	return ranked
}

func removeEvent(events []*Event, target *Event) []*Event {
	for i, event := range events {
		if event == target {
			return append(events[:i:i], events[i+1:]...)
		}
	}
	return events
}

// TimingWarnings reports events or clip windows that fall outside the video.
func TimingWarnings(events []*Event, videoDuration float64) []string {
	var warnings []string
	for _, event := range events {
		if event.AbsTS < 0 {
			warnings = append(warnings, fmt.Sprintf("event %s has negative timestamp: %.3f", event.Type, event.AbsTS))
		}
		if event.AbsTS > videoDuration {
			warnings = append(warnings, fmt.Sprintf("event %s exceeds video duration: %.3f > %.3f", event.Type, event.AbsTS, videoDuration))
		}
		if start := event.AbsTS - event.PrePadding; start < 0 {
			warnings = append(warnings, fmt.Sprintf("event %s clip starts before video: %.3f", event.Type, start))
		}
		if end := event.AbsTS + event.PostPadding; end > videoDuration {
			warnings = append(warnings, fmt.Sprintf("event %s clip ends after video: %.3f > %.3f", event.Type, end, videoDuration))
		}
	}
	return warnings
}
