package fusion

import (
	"encoding/json"
	"strconv"
	"strings"

	"sideline/internal/edl"
)

// Export converts fused events into auto-detected EDL candidates. The
// synthetic event type is chosen by priority from the contributing tags:
// anything goal-flavored wins, then saves, then whistles become fouls, then a
// strong lone audio spike becomes goal-like, and everything else is a generic
// highlight. Confidence carries the fused score.
func Export(events []Event) []edl.Candidate {
	candidates := make([]edl.Candidate, 0, len(events))
	for _, event := range events {
		candidates = append(candidates, edl.Candidate{
			Type:       exportType(event),
			AbsTS:      json.RawMessage(strconv.FormatFloat(event.Timestamp, 'f', -1, 64)),
			Minute:     int(event.Timestamp / 60),
			Confidence: exportConfidence(event.Score),
			Signals:    signalKinds(event.Signals),
		})
	}
	return candidates
}

func exportType(event Event) string {
	joined := strings.Join(event.Types, " ")
	switch {
	case strings.Contains(joined, "goal"):
		return edl.TypeGoal
	case strings.Contains(joined, "save"):
		return edl.TypeSave
	case containsTag(event.Types, "whistle"):
		return edl.TypeFoul
	case containsTag(event.Types, "audio_spike") && event.Score > strongAudioSpikeScore:
		return edl.TypeGoalLike
	default:
		return edl.TypeHighlight
	}
}

// exportConfidence clips the fused score into the [0,1] confidence range the
// EDL expects.
func exportConfidence(score float64) *float64 {
	clipped := clip01(score)
	return &clipped
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func signalKinds(signals []Signal) []string {
	kinds := make([]string, 0, len(signals))
	for _, signal := range signals {
		kinds = append(kinds, signal.Kind)
	}
	return kinds
}
