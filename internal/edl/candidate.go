package edl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sideline/internal/timecode"
)

// Candidate is a raw event record before it becomes an Event: one entry of a
// guided events file, or one auto-detected candidate from fusion export.
type Candidate struct {
	Type   string `json:"type"`
	Half   int    `json:"half,omitempty"`
	Clock  string `json:"clock,omitempty"`
	Team   string `json:"team,omitempty"`
	Player string `json:"player,omitempty"`
	Assist string `json:"assist,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Status string `json:"status,omitempty"`
	// AbsTS accepts either a number of seconds or an "HH:MM:SS.sss" string.
	AbsTS json.RawMessage `json:"abs_ts,omitempty"`
	// Score accepts either {"home": H, "away": A} or an "H-A" string. A
	// malformed value drops the score, never the record.
	Score      json.RawMessage `json:"score,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
	Signals    []string        `json:"signals,omitempty"`
	// Minute is informational, carried by fusion exports.
	Minute int `json:"minute,omitempty"`
}

// AbsoluteSeconds resolves the abs_ts field. ok is false when the field is
// absent; err is set when it is present but unparseable.
func (c Candidate) AbsoluteSeconds() (seconds float64, ok bool, err error) {
	raw := strings.TrimSpace(string(c.AbsTS))
	if raw == "" || raw == "null" {
		return 0, false, nil
	}
	if value, numErr := strconv.ParseFloat(raw, 64); numErr == nil {
		return value, true, nil
	}
	var text string
	if err := json.Unmarshal(c.AbsTS, &text); err != nil {
		return 0, false, fmt.Errorf("abs_ts: %w", err)
	}
	value, err := timecode.ParseTimestamp(text)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// ParsedScore resolves the score field. A malformed score yields nil, matching
// the contract that a bad score drops silently rather than failing the event.
func (c Candidate) ParsedScore() *Score {
	raw := strings.TrimSpace(string(c.Score))
	if raw == "" || raw == "null" {
		return nil
	}

	var object Score
	if err := json.Unmarshal(c.Score, &object); err == nil {
		return &object
	}

	var text string
	if err := json.Unmarshal(c.Score, &text); err != nil {
		return nil
	}
	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		return nil
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	return &Score{Home: home, Away: away}
}

// ValidateCandidates checks the structural schema of a guided events list. It
// returns every violation found; a non-empty result aborts the whole load.
func ValidateCandidates(candidates []Candidate) []error {
	var errs []error
	for i, candidate := range candidates {
		if strings.TrimSpace(candidate.Type) == "" {
			errs = append(errs, fmt.Errorf("event %d: missing required field: type", i))
		}
		hasAbs := strings.TrimSpace(string(candidate.AbsTS)) != ""
		hasClock := strings.TrimSpace(candidate.Clock) != ""
		if !hasAbs && !hasClock && candidate.Half == 0 {
			errs = append(errs, fmt.Errorf("event %d: needs abs_ts or half+clock", i))
			continue
		}
		if !hasAbs {
			if candidate.Half != 1 && candidate.Half != 2 {
				errs = append(errs, fmt.Errorf("event %d: invalid half: %d", i, candidate.Half))
			}
			if !hasClock {
				errs = append(errs, fmt.Errorf("event %d: missing required field: clock", i))
			} else if _, err := timecode.ParseClock(candidate.Clock); err != nil {
				errs = append(errs, fmt.Errorf("event %d: invalid clock format: %q", i, candidate.Clock))
			}
		}
		if candidate.Confidence != nil && (*candidate.Confidence < 0 || *candidate.Confidence > 1) {
			errs = append(errs, fmt.Errorf("event %d: confidence %v outside [0,1]", i, *candidate.Confidence))
		}
	}
	return errs
}

// DecodeCandidates parses a guided events document, which is either a bare
// list or an object with an "events" array.
func DecodeCandidates(data []byte) ([]Candidate, error) {
	var list []Candidate
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapper struct {
		Events []Candidate `json:"events"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return wrapper.Events, nil
}
