package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a highlights run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDetecting Status = "detecting"
	StatusFusing    Status = "fusing"
	StatusPlanning  Status = "planning"
	StatusRendering Status = "rendering"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusDetecting,
	StatusFusing,
	StatusPlanning,
	StatusRendering,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ParseStatus validates a status string from the CLI or database.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := statusSet[status]
	return status, ok
}

// IsTerminal reports whether the status ends a run.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Run represents one highlights run persisted in SQLite.
type Run struct {
	ID    int64
	RunID string

	VideoPath  string
	EventsPath string

	Status       Status
	ErrorMessage string

	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string

	ClipCount    int
	EDLPath      string
	ManifestPath string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HealthSummary describes aggregated run counts per key lifecycle state.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Failed     int
}
