// Package timeutil provides minute-precision clock arithmetic over "HH:MM"
// strings. Parsing is deliberately lenient: timesheet data is hand-entered and
// migrated from older formats, so malformed values degrade to zero instead of
// failing the whole timeline.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in one calendar day.
const MinutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" clock string to minutes since midnight.
// Empty or malformed input yields 0.
func ParseClock(s string) int {
	if s == "" || !strings.Contains(s, ":") {
		return 0
	}
	parts := strings.SplitN(s, ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

// FormatClock converts minutes since midnight to a zero-padded "HH:MM" string.
// Negative input clamps to "00:00".
func FormatClock(minutes int) string {
	if minutes < 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// HoursBetween returns the duration in hours between two clock strings.
// It returns 0 if either value is missing or if end precedes start; a
// timeline never yields negative durations.
func HoursBetween(start, end string) float64 {
	if start == "" || end == "" {
		return 0
	}
	startMinutes := ParseClock(start)
	endMinutes := ParseClock(end)
	if endMinutes < startMinutes {
		return 0
	}
	return float64(endMinutes-startMinutes) / 60
}

// Round2 rounds an hour total to two decimal places. Aggregate fields are
// stored rounded; intermediate minute arithmetic stays integral.
func Round2(hours float64) float64 {
	return math.Round(hours*100) / 100
}
