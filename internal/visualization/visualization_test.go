package visualization

import (
	"strings"
	"testing"
	"time"

	"github.com/vykaz/internal/holiday"
)

func TestGenerateMonthSVGBasics(t *testing.T) {
	v := New()
	view := &MonthView{
		Year:  2024,
		Month: time.June,
		DayHours: map[string]float64{
			"2024-06-03": 8.0,
			"2024-06-04": 9.5,
			"2024-06-05": 4.0,
		},
		TotalHours: 21.5,
		FundHours:  160,
		Calendar:   holiday.ForYear(2024),
	}

	svg := v.GenerateMonthSVG(view)

	assertContains(t, svg, "<?xml")
	assertContains(t, svg, "Měsíční přehled")
	assertContains(t, svg, "2024-06 | Vykázáno: 21.5h | Fond: 160.0h")
	assertContains(t, svg, "stroke-dasharray=\"5,5\"")

	// Background rect, one shading rect per weekend day (June 2024 has 10)
	// and one bar per worked day.
	rectCount := strings.Count(svg, "<rect")
	if rectCount != 1+10+3 {
		t.Fatalf("expected 14 rects, got %d", rectCount)
	}
}

func TestGenerateMonthSVGShadesHolidays(t *testing.T) {
	v := New()
	view := &MonthView{
		Year:     2024,
		Month:    time.July,
		DayHours: map[string]float64{"2024-07-05": 4.0},
		Calendar: holiday.ForYear(2024),
	}

	svg := v.GenerateMonthSVG(view)

	// July 5 and 6 are public holidays; the 5th also carries a red work bar.
	assertContains(t, svg, "#FFF3E0")
	assertContains(t, svg, "#F44336")
}

func TestGenerateMonthSVGOvertimeColor(t *testing.T) {
	v := New()
	view := &MonthView{
		Year:     2024,
		Month:    time.June,
		DayHours: map[string]float64{"2024-06-03": 10.5},
		Calendar: holiday.ForYear(2024),
	}

	svg := v.GenerateMonthSVG(view)
	assertContains(t, svg, "#FF9800")
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q", needle)
	}
}
