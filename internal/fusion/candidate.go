package fusion

// Signal kinds understood by the fusion engine. Unknown kinds are still
// fused; they fall back to the explicit confidence field and a weight of 1.0.
const (
	KindGuided     = "guided"
	KindVision     = "vision"
	KindAudio      = "audio"
	KindWhistle    = "whistle"
	KindFlow       = "flow"
	KindSceneCut   = "scene_cut"
	KindCommentary = "commentary"
)

// Expected strength ranges used to normalize raw detector measures into [0,1].
const (
	audioEnergyRange      = 3.0
	flowMagnitudeRange    = 10.0
	sceneCutRange         = 100.0
	defaultAudioEnergy    = 1.0
	defaultFlowMagnitude  = 2.5
	defaultSceneCutDiff   = 30.0
	defaultConfidence     = 0.5
	defaultKindWeight     = 1.0
	strongAudioSpikeScore = 3.0
)

// Candidate is one timestamped observation from a single detector. Only the
// strength field matching the detector's kind is populated; absent fields
// default during normalization rather than failing.
type Candidate struct {
	Timestamp float64 `json:"timestamp"`
	// Tag is the detector's own event-type label (e.g. "audio_spike",
	// "whistle", "goal"). When empty, the signal kind stands in for it.
	Tag        string   `json:"type,omitempty"`
	Energy     *float64 `json:"energy,omitempty"`
	Magnitude  *float64 `json:"magnitude,omitempty"`
	Difference *float64 `json:"difference,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// normalizedConfidence maps a candidate's signal-specific strength onto [0,1].
// Guided ground truth is always fully trusted. Energy, magnitude, and
// difference measures divide by their expected range and clip at 1.0. Every
// other kind reads the explicit confidence field.
func normalizedConfidence(kind string, c Candidate) float64 {
	switch kind {
	case KindGuided:
		return 1.0
	case KindAudio:
		energy := defaultAudioEnergy
		if c.Energy != nil {
			energy = *c.Energy
		}
		return clip01(energy / audioEnergyRange)
	case KindFlow:
		magnitude := defaultFlowMagnitude
		if c.Magnitude != nil {
			magnitude = *c.Magnitude
		}
		return clip01(magnitude / flowMagnitudeRange)
	case KindSceneCut:
		difference := defaultSceneCutDiff
		if c.Difference != nil {
			difference = *c.Difference
		}
		return clip01(difference / sceneCutRange)
	default:
		if c.Confidence != nil {
			return *c.Confidence
		}
		return defaultConfidence
	}
}

func clip01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0 {
		return 0
	}
	return v
}
