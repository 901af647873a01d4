// Package timecode converts between the clock representations used around a
// match recording: match clocks ("mm:ss"), absolute recording timestamps
// ("HH:MM:SS.sss"), and plain seconds.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts a match clock string to total seconds. Both "mm:ss" and
// "hh:mm:ss" are accepted; a bare number is treated as seconds.
func ParseClock(clock string) (float64, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0, fmt.Errorf("parse clock: empty value")
	}

	parts := strings.Split(clock, ":")
	switch len(parts) {
	case 1:
		seconds, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("parse clock %q: %w", clock, err)
		}
		return seconds, nil
	case 2:
		minutes, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("parse clock %q: %w", clock, err)
		}
		seconds, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("parse clock %q: %w", clock, err)
		}
		return float64(minutes*60 + seconds), nil
	case 3:
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("parse clock %q: %w", clock, err)
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("parse clock %q: %w", clock, err)
		}
		seconds, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("parse clock %q: %w", clock, err)
		}
		return float64(hours*3600 + minutes*60 + seconds), nil
	default:
		return 0, fmt.Errorf("parse clock %q: unrecognized format", clock)
	}
}

// ParseTimestamp converts an absolute timestamp string ("HH:MM:SS" or
// "HH:MM:SS.sss") to total seconds.
func ParseTimestamp(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, fmt.Errorf("parse timestamp: empty value")
	}

	base := ts
	var fraction float64
	if idx := strings.IndexByte(ts, '.'); idx >= 0 {
		base = ts[:idx]
		frac, err := strconv.ParseFloat("0"+ts[idx:], 64)
		if err != nil {
			return 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		fraction = frac
	}

	parts := strings.Split(base, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("parse timestamp %q: expected HH:MM:SS", ts)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	seconds, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	return float64(hours*3600+minutes*60+seconds) + fraction, nil
}

// FormatTimestamp renders seconds as "HH:MM:SS.sss".
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := math.Mod(seconds, 60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}

// FormatClock renders seconds as a "mm:ss" match clock.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// AbsoluteTime computes the absolute recording timestamp for a match clock
// reading. First-half events offset from kickoff directly; second-half events
// additionally skip the first half and the half-time break. An unknown half
// falls back to the first-half computation.
func AbsoluteTime(half int, clock string, kickoff float64, firstHalf, halfTime time.Duration) (float64, error) {
	clockSeconds, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	if half == 2 {
		return kickoff + firstHalf.Seconds() + halfTime.Seconds() + clockSeconds, nil
	}
	return kickoff + clockSeconds, nil
}
