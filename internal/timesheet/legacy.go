package timesheet

import (
	"bytes"
	"encoding/json"

	"github.com/vykaz/internal/timeutil"
)

// LegacyWorkDay is the historical single-interval day shape: one start/end
// pair, one project, one absence with a full/half-day amount, and manually
// stored hour totals. Imports convert it to the activity timeline at the
// storage boundary so the core never branches on schema version.
type LegacyWorkDay struct {
	Date          string  `json:"date"`
	StartTime     *string `json:"startTime"`
	EndTime       *string `json:"endTime"`
	Hours         float64 `json:"hours"`
	Overtime      float64 `json:"overtime"`
	ProjectID     *string `json:"projectId"`
	AbsenceID     *string `json:"absenceId"`
	AbsenceAmount float64 `json:"absenceAmount"`
	Notes         string  `json:"notes"`
}

// Activities converts the legacy day to the canonical timeline. The old
// editor subtracted a 30-minute lunch from any span over 4.5 hours; running
// the converted entries through NormalizeTimeline reproduces that as an
// explicit auto-break.
func (l LegacyWorkDay) Activities() []Activity {
	var entries []Activity

	if l.AbsenceID != nil && l.AbsenceAmount > 0 {
		// Full-day absences span the standard working day, half-day
		// absences its first half.
		span := 8 * 60
		if l.AbsenceAmount < 1 {
			span = 4 * 60
		}
		start := timeutil.ParseClock("08:00")
		a := NewAbsence(timeutil.FormatClock(start), l.AbsenceID)
		a.End = clockPtr(start + span)
		a.Notes = l.Notes
		entries = append(entries, a)
	}

	if l.StartTime != nil && l.EndTime != nil && *l.StartTime != "" && *l.EndTime != "" {
		w := NewWork(*l.StartTime, l.ProjectID)
		end := *l.EndTime
		w.End = &end
		w.Notes = l.Notes
		entries = append(entries, w)
	}

	if len(entries) == 0 {
		return nil
	}
	return NormalizeTimeline(entries, nil)
}

// DayActivities unmarshals a stored day that may either be a current-format
// activity array or a legacy WorkDay object. Legacy days are migrated on
// read.
type DayActivities []Activity

func (d *DayActivities) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var legacy LegacyWorkDay
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return err
		}
		*d = legacy.Activities()
		return nil
	}
	var activities []Activity
	if err := json.Unmarshal(trimmed, &activities); err != nil {
		return err
	}
	*d = activities
	return nil
}
