package fusion

import (
	"fmt"
	"sort"
	"strings"
)

// Summary renders a fused event as a one-line human-readable description,
// e.g. "10.5s [score 2.1] audio, whistle (2 signals)".
func Summary(event Event) string {
	kinds := make(map[string]struct{}, len(event.Signals))
	for _, signal := range event.Signals {
		kinds[signal.Kind] = struct{}{}
	}
	names := make([]string, 0, len(kinds))
	for kind := range kinds {
		names = append(names, kind)
	}
	sort.Strings(names)
	return fmt.Sprintf("%.1fs [score %.1f] %s (%d signals)",
		event.Timestamp, event.Score, strings.Join(names, ", "), event.NumSignals)
}
