package edl

import "encoding/json"

// SampleGuidedEvents returns a small guided events list useful for tests and
// documentation.
func SampleGuidedEvents() []Candidate {
	confidence := func(v float64) *float64 { return &v }
	return []Candidate{
		{
			Type:   TypeGoal,
			Half:   1,
			Clock:  "23:45",
			Team:   "Syston",
			Player: "John Doe",
			Assist: "Jane Smith",
			Score:  json.RawMessage(`{"home": 1, "away": 0}`),
			Notes:  "Great strike from outside the box",
		},
		{
			Type:   TypeBigSave,
			Half:   1,
			Clock:  "34:12",
			Team:   "Syston",
			Player: "Keeper Name",
			Notes:  "Point blank save from corner",
		},
		{
			Type:       TypeCard,
			Half:       2,
			Clock:      "67:30",
			Team:       "Opposition",
			Player:     "Opposition Player",
			Notes:      "Yellow card for dissent",
			Confidence: confidence(1.0),
		},
	}
}
