package timesheet

import (
	"github.com/vykaz/internal/fund"
	"github.com/vykaz/internal/timeutil"
)

// Day is one calendar day of an employee's timesheet, keyed by its ISO date
// string. Days are created lazily on first edit and always written back
// whole; there are no partial-field updates.
type Day struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

// Empty reports whether the day carries no recorded activity.
func (d Day) Empty() bool {
	return len(d.Activities) == 0
}

// Open reports whether the day's timeline is still unresolved, i.e. some
// activity has no end time yet.
func Open(activities []Activity) bool {
	for _, a := range activities {
		if a.End == nil {
			return true
		}
	}
	return false
}

// Totals is a day's canonical worked/regular/overtime split. It is recomputed
// from the timeline on every change, never edited directly.
type Totals struct {
	Worked   float64 `json:"worked"`
	Regular  float64 `json:"regular"`
	Overtime float64 `json:"overtime"`
}

// ComputeTotals sums the durations of all work activities and splits them
// into regular hours and overtime. Unresolved activities contribute nothing,
// so a day consisting only of an open entry reports zero.
func ComputeTotals(activities []Activity) Totals {
	var worked float64
	for _, a := range activities {
		if a.Kind == KindWork {
			worked += a.Duration()
		}
	}

	regular := worked
	if regular > fund.StandardDailyHours {
		regular = fund.StandardDailyHours
	}
	overtime := worked - fund.StandardDailyHours
	if overtime < 0 {
		overtime = 0
	}

	return Totals{
		Worked:   timeutil.Round2(worked),
		Regular:  timeutil.Round2(regular),
		Overtime: timeutil.Round2(overtime),
	}
}

// RemoveActivity deletes the activity with the given id and re-normalizes the
// remainder. The new last activity's end time is reused as the implicit final
// end only when every remaining activity is already resolved; otherwise the
// day stays open.
func RemoveActivity(activities []Activity, id string) []Activity {
	remaining := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}

	var finalEnd *string
	if len(remaining) > 0 && !Open(remaining) {
		sorted := make([]Activity, len(remaining))
		copy(sorted, remaining)
		sortByStart(sorted)
		finalEnd = sorted[len(sorted)-1].End
	}

	return NormalizeTimeline(remaining, finalEnd)
}

// CopyActivities duplicates a day's activities for pasting onto another date.
// Every copy gets a fresh id so the two days stay independently editable.
func CopyActivities(activities []Activity) []Activity {
	copied := make([]Activity, len(activities))
	for i, a := range activities {
		dup := a
		dup.ID = newID()
		if a.End != nil {
			end := *a.End
			dup.End = &end
		}
		copied[i] = dup
	}
	return copied
}
