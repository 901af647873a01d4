// Package logging wraps log/slog with the handlers and attribute helpers used
// across sideline.
//
// Loggers are built from config (format, level, log directory) and write to
// stdout plus the run log file. The console handler prints a compact header
// with component and run/stage subject; the json handler emits one object per
// line for machine consumption. Field name constants keep structured keys
// consistent between packages.
package logging
