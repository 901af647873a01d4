package fusion

import "sort"

// MergeNearby folds events that fall within timeWindow seconds of a cluster's
// first event into that event, preventing several clips for the same moment.
// Signals and types are unioned and raw scores summed, but the merged score is
// the maximum of the pair: many weak signals near a moment must not inflate
// its confidence without bound. The sweep is strictly left to right, so a long
// chain of events merges into successive clusters rather than all into the
// first.
func MergeNearby(events []Event, timeWindow float64) []Event {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	merged := make([]Event, 0, len(sorted))
	current := cloneEvent(sorted[0])

	for _, event := range sorted[1:] {
		if event.Timestamp-current.Timestamp < timeWindow {
			current.Signals = append(current.Signals, event.Signals...)
			current.Types = unionTypes(current.Types, event.Types)
			current.RawScore += event.RawScore
			if event.Score > current.Score {
				current.Score = event.Score
			}
			current.NumSignals += event.NumSignals
			continue
		}
		merged = append(merged, current)
		current = cloneEvent(event)
	}

	return append(merged, current)
}

func cloneEvent(event Event) Event {
	clone := event
	clone.Signals = append([]Signal(nil), event.Signals...)
	clone.Types = append([]string(nil), event.Types...)
	return clone
}

func unionTypes(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		set[t] = struct{}{}
	}
	return sortedKeys(set)
}
