// Package config loads, validates, and normalizes sideline configuration.
//
// Configuration lives in a single TOML file. Every tunable has a hardcoded
// default, so a missing file or a partially filled one never fails; Load
// layers the file over Default, expands filesystem paths, and validates the
// result. Sections map one-to-one onto the subsystems that consume them:
// detection (signal fusion), edl (event reconciliation), padding and limits
// (clip timing), zoom/replay (feature flags), match (clock arithmetic),
// render (clip extraction), social (hashtags), and logging.
package config
