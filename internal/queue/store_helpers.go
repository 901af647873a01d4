package queue

import (
	"database/sql"
	"errors"
	"time"
)

const runColumns = "id, run_id, video_path, events_path, status, error_message, " +
	"progress_stage, progress_percent, progress_message, clip_count, edl_path, " +
	"manifest_path, created_at, updated_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id              int64
		runID           string
		videoPath       sql.NullString
		eventsPath      sql.NullString
		statusStr       string
		errorMessage    sql.NullString
		progressStage   sql.NullString
		progressPercent sql.NullFloat64
		progressMessage sql.NullString
		clipCount       sql.NullInt64
		edlPath         sql.NullString
		manifestPath    sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&runID,
		&videoPath,
		&eventsPath,
		&statusStr,
		&errorMessage,
		&progressStage,
		&progressPercent,
		&progressMessage,
		&clipCount,
		&edlPath,
		&manifestPath,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:              id,
		RunID:           runID,
		VideoPath:       videoPath.String,
		EventsPath:      eventsPath.String,
		Status:          Status(statusStr),
		ErrorMessage:    errorMessage.String,
		ProgressStage:   progressStage.String,
		ProgressPercent: progressPercent.Float64,
		ProgressMessage: progressMessage.String,
		ClipCount:       int(clipCount.Int64),
		EDLPath:         edlPath.String,
		ManifestPath:    manifestPath.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		run.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		run.UpdatedAt = updated
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
