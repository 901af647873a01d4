// Package ffprobe wraps the ffprobe binary for match video inspection.
package ffprobe
