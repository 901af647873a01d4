package ffprobe_test

import (
	"encoding/json"
	"testing"

	"sideline/internal/media/ffprobe"
)

func TestResultHelpers(t *testing.T) {
	payload := `{
		"streams": [
			{"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
			{"index": 1, "codec_name": "aac", "codec_type": "audio"}
		],
		"format": {"filename": "match.mp4", "duration": "5400.250000"}
	}`

	var result ffprobe.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !result.HasVideoStream() {
		t.Fatal("video stream not detected")
	}
	if got := result.DurationSeconds(); got != 5400.25 {
		t.Fatalf("duration = %v, want 5400.25", got)
	}
}

func TestDurationSecondsUnavailable(t *testing.T) {
	var result ffprobe.Result
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("duration = %v, want 0", got)
	}
	result.Format.Duration = "N/A"
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("duration = %v, want 0", got)
	}
}
