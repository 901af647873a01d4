package edl_test

import (
	"encoding/json"
	"testing"

	"sideline/internal/edl"
)

func TestAbsoluteSeconds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantOK  bool
		wantErr bool
	}{
		{"absent", "", 0, false, false},
		{"null", "null", 0, false, false},
		{"number", "125.5", 125.5, true, false},
		{"integer", "90", 90, true, false},
		{"timestamp string", `"00:23:45.500"`, 1425.5, true, false},
		{"garbage string", `"kickoff"`, 0, false, true},
		{"wrong json type", "[1]", 0, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := edl.Candidate{AbsTS: json.RawMessage(tc.raw)}
			got, ok, err := c.AbsoluteSeconds()
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("got %v ok=%v, want %v ok=%v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestParsedScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *edl.Score
	}{
		{"absent", "", nil},
		{"object", `{"home": 2, "away": 1}`, &edl.Score{Home: 2, Away: 1}},
		{"dash string", `"2-1"`, &edl.Score{Home: 2, Away: 1}},
		{"spaced dash string", `"2 - 1"`, &edl.Score{Home: 2, Away: 1}},
		{"malformed string drops silently", `"two one"`, nil},
		{"malformed json drops silently", "[2,1]", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := edl.Candidate{Score: json.RawMessage(tc.raw)}
			got := c.ParsedScore()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("score = %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("score = %+v, want %+v", *got, *tc.want)
			}
		})
	}
}

func TestValidateCandidates(t *testing.T) {
	conf := func(v float64) *float64 { return &v }

	tests := []struct {
		name       string
		candidates []edl.Candidate
		wantErrs   int
	}{
		{
			name: "valid abs_ts",
			candidates: []edl.Candidate{
				{Type: "goal", AbsTS: json.RawMessage("100")},
			},
		},
		{
			name: "valid half and clock",
			candidates: []edl.Candidate{
				{Type: "goal", Half: 1, Clock: "23:45"},
			},
		},
		{
			name:       "missing type",
			candidates: []edl.Candidate{{AbsTS: json.RawMessage("100")}},
			wantErrs:   1,
		},
		{
			name:       "no timestamp source",
			candidates: []edl.Candidate{{Type: "goal"}},
			wantErrs:   1,
		},
		{
			name:       "bad half",
			candidates: []edl.Candidate{{Type: "goal", Half: 3, Clock: "10:00"}},
			wantErrs:   1,
		},
		{
			name:       "bad clock",
			candidates: []edl.Candidate{{Type: "goal", Half: 1, Clock: "ten past"}},
			wantErrs:   1,
		},
		{
			name:       "confidence out of range",
			candidates: []edl.Candidate{{Type: "goal", AbsTS: json.RawMessage("5"), Confidence: conf(1.5)}},
			wantErrs:   1,
		},
		{
			name: "multiple problems reported together",
			candidates: []edl.Candidate{
				{},
				{Type: "goal", Half: 5, Clock: "bad"},
			},
			wantErrs: 4,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := edl.ValidateCandidates(tc.candidates)
			if len(errs) != tc.wantErrs {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, tc.wantErrs)
			}
		})
	}
}

func TestDecodeCandidates(t *testing.T) {
	bare := []byte(`[{"type": "goal", "abs_ts": 100}]`)
	wrapped := []byte(`{"events": [{"type": "goal", "abs_ts": 100}, {"type": "card", "half": 2, "clock": "67:30"}]}`)

	list, err := edl.DecodeCandidates(bare)
	if err != nil || len(list) != 1 || list[0].Type != "goal" {
		t.Fatalf("bare list decode: %v, err %v", list, err)
	}

	list, err = edl.DecodeCandidates(wrapped)
	if err != nil || len(list) != 2 || list[1].Clock != "67:30" {
		t.Fatalf("wrapped decode: %v, err %v", list, err)
	}

	if _, err := edl.DecodeCandidates([]byte(`"nope"`)); err == nil {
		t.Fatal("expected error for non-event document")
	}
}
