// Package edl owns the Edit Decision List for a highlights run.
//
// The Planner holds the authoritative event list: guided events loaded from a
// curated file, auto-detected candidates from signal fusion, or both. Driving
// the planner through its pipeline (LoadGuidedEvents, SetKickoffTime,
// AddAutoDetected, MergeAndDedupe, ComputeAdaptivePadding, ApplyFeatureFlags,
// ValidateClipDurations) yields the final ordered, deduplicated, padded,
// budget-capped list of clips. Guided events win conflicts with auto events
// unless the auto confidence clears a configurable promotion margin.
//
// Per-record problems (bad timestamps, unparseable scores) are logged and
// skipped; only whole-file schema validation aborts a load.
package edl
