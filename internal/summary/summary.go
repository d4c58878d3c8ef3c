// Package summary folds a month of normalized days into per-project and
// per-absence totals and reconciles them against the work-time fund.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vykaz/internal/fund"
	"github.com/vykaz/internal/holiday"
	"github.com/vykaz/internal/timesheet"
	"github.com/vykaz/internal/timeutil"
)

// ProjectTotals is one row of the per-project breakdown. The overtime column
// is a best-effort estimate: a day's overtime is attributed to its work
// entries in timeline order until used up, so the per-project split is
// informational, not payroll-authoritative.
type ProjectTotals struct {
	Name     string
	Color    string
	Hours    float64
	Overtime float64
}

// AbsenceTotals is one row of the per-absence breakdown.
type AbsenceTotals struct {
	Name  string
	Hours float64
}

// MonthSummary is the aggregate view of one employee month.
type MonthSummary struct {
	Year  int
	Month time.Month

	RegularHours     float64
	OvertimeHours    float64
	HolidayWorkHours float64
	AbsenceHours     float64

	// Fund is the month's work-time fund, Reported the hours accounted for
	// against it (regular + overtime + absences; holiday work is tracked
	// separately and does not reconcile).
	Fund       float64
	Reported   float64
	Difference float64

	Projects []ProjectTotals
	Absences []AbsenceTotals
}

const (
	unassignedKey   = "other"
	unassignedName  = "Bez projektu"
	unassignedColor = "#8884d8"
)

// ForMonth aggregates the given day map for one month. Days outside the
// month are ignored; days are processed in date order so that the overtime
// attribution heuristic is deterministic. Work on a public holiday is routed
// into HolidayWorkHours instead of the regular/overtime buckets. The holiday
// marker absence type counts toward AbsenceHours but is excluded from the
// named absence breakdown.
func ForMonth(
	days map[string][]timesheet.Activity,
	year int, month time.Month,
	projects []timesheet.Project,
	absences []timesheet.AbsenceType,
	cal *holiday.Calendar,
	holidayAbsenceID string,
) *MonthSummary {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	dates := make([]string, 0, len(days))
	for date := range days {
		if strings.HasPrefix(date, prefix) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	absenceNames := make(map[string]string, len(absences))
	for _, a := range absences {
		absenceNames[a.ID] = a.Name
	}

	s := &MonthSummary{Year: year, Month: month}

	type bucket struct {
		hours    float64
		overtime float64
	}
	projectBuckets := make(map[string]*bucket)
	absenceBuckets := make(map[string]*AbsenceTotals)
	var assignedOvertime float64

	for _, date := range dates {
		entries := days[date]
		isHoliday := cal.Contains(date)

		var dailyWork float64
		for _, e := range entries {
			if e.Kind == timesheet.KindWork {
				dailyWork += e.Duration()
			}
		}
		dailyOvertime := dailyWork - fund.StandardDailyHours
		if dailyOvertime < 0 {
			dailyOvertime = 0
		}
		dailyRegular := dailyWork - dailyOvertime

		if isHoliday {
			s.HolidayWorkHours += dailyWork
		} else {
			s.RegularHours += dailyRegular
			s.OvertimeHours += dailyOvertime
		}

		for _, e := range entries {
			duration := e.Duration()
			switch e.Kind {
			case timesheet.KindWork:
				key := unassignedKey
				if e.ProjectID != nil && *e.ProjectID != "" {
					key = *e.ProjectID
				}
				b := projectBuckets[key]
				if b == nil {
					b = &bucket{}
					projectBuckets[key] = b
				}

				// Fill each entry with overtime until the month's running
				// overtime total is used up.
				entryOvertime := s.OvertimeHours - assignedOvertime
				if entryOvertime < 0 {
					entryOvertime = 0
				}
				if entryOvertime > duration {
					entryOvertime = duration
				}
				b.hours += duration - entryOvertime
				b.overtime += entryOvertime
				assignedOvertime += entryOvertime

			case timesheet.KindAbsence:
				if e.AbsenceID == nil {
					continue
				}
				if *e.AbsenceID == holidayAbsenceID {
					s.AbsenceHours += duration
					continue
				}
				name, known := absenceNames[*e.AbsenceID]
				if !known {
					// Absence type was deleted; nothing to attribute.
					continue
				}
				s.AbsenceHours += duration
				row := absenceBuckets[*e.AbsenceID]
				if row == nil {
					row = &AbsenceTotals{Name: name}
					absenceBuckets[*e.AbsenceID] = row
				}
				row.Hours += duration
			}
		}
	}

	projectNames := make(map[string]timesheet.Project, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p
	}
	for key, b := range projectBuckets {
		row := ProjectTotals{
			Name:     unassignedName,
			Color:    unassignedColor,
			Hours:    timeutil.Round2(b.hours),
			Overtime: timeutil.Round2(b.overtime),
		}
		if p, ok := projectNames[key]; ok {
			row.Name = p.Name
			row.Color = p.Color
		}
		s.Projects = append(s.Projects, row)
	}
	sort.Slice(s.Projects, func(i, j int) bool {
		ti := s.Projects[i].Hours + s.Projects[i].Overtime
		tj := s.Projects[j].Hours + s.Projects[j].Overtime
		if ti != tj {
			return ti > tj
		}
		return s.Projects[i].Name < s.Projects[j].Name
	})

	for _, row := range absenceBuckets {
		s.Absences = append(s.Absences, AbsenceTotals{Name: row.Name, Hours: timeutil.Round2(row.Hours)})
	}
	sort.Slice(s.Absences, func(i, j int) bool {
		if s.Absences[i].Hours != s.Absences[j].Hours {
			return s.Absences[i].Hours > s.Absences[j].Hours
		}
		return s.Absences[i].Name < s.Absences[j].Name
	})

	s.RegularHours = timeutil.Round2(s.RegularHours)
	s.OvertimeHours = timeutil.Round2(s.OvertimeHours)
	s.HolidayWorkHours = timeutil.Round2(s.HolidayWorkHours)
	s.AbsenceHours = timeutil.Round2(s.AbsenceHours)
	s.Fund = fund.MonthFund(year, month, cal)
	s.Reported = timeutil.Round2(s.RegularHours + s.OvertimeHours + s.AbsenceHours)
	s.Difference = timeutil.Round2(s.Reported - s.Fund)

	return s
}
