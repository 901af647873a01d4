// Package detect ingests detector outputs from the staging signals
// directory. Detectors run out of process and leave one JSON file per signal
// kind; this package only reads what they wrote and never re-runs them.
package detect
