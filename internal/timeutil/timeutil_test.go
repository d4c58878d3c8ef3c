package timeutil

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"midnight", "00:00", 0},
		{"morning", "07:30", 450},
		{"afternoon", "15:45", 945},
		{"last minute", "23:59", 1439},
		{"single digit hour", "7:05", 425},
		{"empty", "", 0},
		{"no colon", "0730", 0},
		{"garbage hour", "ab:30", 0},
		{"garbage minute", "07:xx", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseClock(tt.input)
			if result != tt.expected {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected string
	}{
		{"midnight", 0, "00:00"},
		{"morning", 450, "07:30"},
		{"zero padded", 65, "01:05"},
		{"last minute", 1439, "23:59"},
		{"negative clamps", -15, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatClock(tt.minutes)
			if result != tt.expected {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, result, tt.expected)
			}
		})
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "06:15", "12:00", "23:59"} {
		if got := FormatClock(ParseClock(clock)); got != clock {
			t.Errorf("round trip of %q = %q", clock, got)
		}
	}
}

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected float64
	}{
		{"full day shift", "07:00", "15:30", 8.5},
		{"quarter hour", "09:00", "09:15", 0.25},
		{"zero length", "10:00", "10:00", 0},
		{"end before start", "10:00", "09:00", 0},
		{"missing start", "", "09:00", 0},
		{"missing end", "09:00", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HoursBetween(tt.start, tt.end)
			if result != tt.expected {
				t.Errorf("HoursBetween(%q, %q) = %f, want %f", tt.start, tt.end, result, tt.expected)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{8.333333333, 8.33},
		{0.005, 0.01},
		{7.5, 7.5},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.expected {
			t.Errorf("Round2(%f) = %f, want %f", tt.input, got, tt.expected)
		}
	}
}
