// Package fusion combines detection signals from independent sources into a
// single confidence-scored timeline.
//
// Each detector produces timestamped candidates with a signal-specific
// strength measure (audio energy, flow magnitude, scene-cut difference, or an
// explicit confidence). The engine normalizes those measures into [0,1],
// buckets candidates in time, and scores each bucket with a weighted sum so
// that moments confirmed by several signals outrank moments seen by one.
// Fused events can be ranked, merged across neighboring buckets, and exported
// as auto-detected candidates for the EDL planner.
package fusion
