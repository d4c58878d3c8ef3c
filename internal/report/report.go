// Package report renders a month of timesheet data to files: a Markdown
// report for humans and a CSV export for payroll spreadsheets.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vykaz/internal/holiday"
	"github.com/vykaz/internal/storage"
	"github.com/vykaz/internal/summary"
	"github.com/vykaz/internal/timesheet"
)

type Reporter struct {
	db        *storage.Database
	reportDir string
}

func New(db *storage.Database, reportDir string) *Reporter {
	return &Reporter{
		db:        db,
		reportDir: reportDir,
	}
}

// monthData is everything one report needs, loaded in one pass.
type monthData struct {
	employee *timesheet.Employee
	dates    []string
	days     map[string][]timesheet.Activity
	projects map[string]timesheet.Project
	absences map[string]timesheet.AbsenceType
	summary  *summary.MonthSummary
	calendar *holiday.Calendar
}

func (r *Reporter) loadMonth(employeeID string, year int, month time.Month) (*monthData, error) {
	employee, err := r.db.GetEmployee(employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if employee == nil {
		return nil, fmt.Errorf("employee %s not found", employeeID)
	}

	days, err := r.db.LoadMonth(employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month: %w", err)
	}

	projects, err := r.db.Projects()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	absences, err := r.db.AbsenceTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to load absence types: %w", err)
	}

	cal := holiday.ForYear(year)
	holidayID := timesheet.HolidayAbsenceID(absences)

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	projectIndex := make(map[string]timesheet.Project, len(projects))
	for _, p := range projects {
		projectIndex[p.ID] = p
	}
	absenceIndex := make(map[string]timesheet.AbsenceType, len(absences))
	for _, a := range absences {
		absenceIndex[a.ID] = a
	}

	return &monthData{
		employee: employee,
		dates:    dates,
		days:     days,
		projects: projectIndex,
		absences: absenceIndex,
		summary:  summary.ForMonth(days, year, month, projects, absences, cal, holidayID),
		calendar: cal,
	}, nil
}

// WriteMarkdown renders the month report and writes it into the report
// directory as <employee>-YYYY-MM.md. It returns the file path.
func (r *Reporter) WriteMarkdown(employeeID string, year int, month time.Month) (string, error) {
	data, err := r.loadMonth(employeeID, year, month)
	if err != nil {
		return "", err
	}

	markdown := r.generateMarkdown(data)

	filename := fmt.Sprintf("%s-%04d-%02d.md", employeeSlug(data.employee.Name), year, int(month))
	return r.writeFile(filename, markdown)
}

// WriteCSV renders one row per activity and writes it into the report
// directory as <employee>-YYYY-MM.csv. It returns the file path.
func (r *Reporter) WriteCSV(employeeID string, year int, month time.Month) (string, error) {
	data, err := r.loadMonth(employeeID, year, month)
	if err != nil {
		return "", err
	}

	csv := r.generateCSV(data)

	filename := fmt.Sprintf("%s-%04d-%02d.csv", employeeSlug(data.employee.Name), year, int(month))
	return r.writeFile(filename, csv)
}

func (r *Reporter) generateMarkdown(data *monthData) string {
	var sb strings.Builder
	s := data.summary

	sb.WriteString(fmt.Sprintf("# Výkaz práce: %s — %04d-%02d\n\n", data.employee.Name, s.Year, int(s.Month)))

	sb.WriteString("## Souhrn\n\n")
	sb.WriteString("| Položka | Hodiny |\n")
	sb.WriteString("|---------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Odpracováno | %.2f |\n", s.RegularHours))
	sb.WriteString(fmt.Sprintf("| Přesčasy | %.2f |\n", s.OvertimeHours))
	sb.WriteString(fmt.Sprintf("| Práce ve svátek | %.2f |\n", s.HolidayWorkHours))
	sb.WriteString(fmt.Sprintf("| Absence | %.2f |\n", s.AbsenceHours))
	sb.WriteString(fmt.Sprintf("| Fond pracovní doby | %.2f |\n", s.Fund))
	sb.WriteString(fmt.Sprintf("| Vykázáno | %.2f |\n", s.Reported))
	sb.WriteString(fmt.Sprintf("| Rozdíl | %+.2f |\n", s.Difference))
	sb.WriteString("\n")

	if len(s.Projects) > 0 {
		sb.WriteString("## Projekty\n\n")
		sb.WriteString("| Projekt | Hodiny | Z toho přesčas |\n")
		sb.WriteString("|---------|--------|----------------|\n")
		for _, p := range s.Projects {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f |\n", p.Name, p.Hours, p.Overtime))
		}
		sb.WriteString("\n")
	}

	if len(s.Absences) > 0 {
		sb.WriteString("## Absence\n\n")
		sb.WriteString("| Typ | Hodiny |\n")
		sb.WriteString("|-----|--------|\n")
		for _, a := range s.Absences {
			sb.WriteString(fmt.Sprintf("| %s | %.2f |\n", a.Name, a.Hours))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Dny\n\n")
	sb.WriteString("| Datum | Od | Do | Typ | Projekt / Absence | Poznámka |\n")
	sb.WriteString("|-------|----|----|-----|-------------------|----------|\n")
	for _, date := range data.dates {
		dateLabel := date
		if data.calendar.Contains(date) {
			dateLabel += " (svátek)"
		}
		for _, a := range data.days[date] {
			end := ""
			if a.End != nil {
				end = *a.End
			}
			note := a.Notes
			// Czech notes carry multi-byte runes; never cut one in half.
			if runes := []rune(note); len(runes) > 30 {
				note = string(runes[:27]) + "..."
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				dateLabel, a.Start, end, kindLabel(a.Kind), r.bookingLabel(data, a), note))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("---\n*Vygenerováno: %s*\n", time.Now().Format("2006-01-02 15:04")))

	return sb.String()
}

func (r *Reporter) generateCSV(data *monthData) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	writer.Comma = ';'

	writer.Write([]string{"datum", "od", "do", "typ", "projekt_absence", "poznamka", "hodiny"})
	for _, date := range data.dates {
		for _, a := range data.days[date] {
			end := ""
			if a.End != nil {
				end = *a.End
			}
			writer.Write([]string{
				date,
				a.Start,
				end,
				kindLabel(a.Kind),
				r.bookingLabel(data, a),
				a.Notes,
				fmt.Sprintf("%.2f", a.Duration()),
			})
		}
	}
	writer.Flush()

	return sb.String()
}

// bookingLabel resolves what an activity was booked against: a project name,
// an absence type name, or nothing for breaks.
func (r *Reporter) bookingLabel(data *monthData, a timesheet.Activity) string {
	switch a.Kind {
	case timesheet.KindWork:
		if a.ProjectID != nil {
			if p, ok := data.projects[*a.ProjectID]; ok {
				return p.Name
			}
		}
		return "Bez projektu"
	case timesheet.KindAbsence:
		if a.AbsenceID != nil {
			if t, ok := data.absences[*a.AbsenceID]; ok {
				return t.Name
			}
		}
	}
	return ""
}

func kindLabel(kind timesheet.ActivityKind) string {
	switch kind {
	case timesheet.KindWork:
		return "práce"
	case timesheet.KindAbsence:
		return "absence"
	case timesheet.KindBreak:
		return "pauza"
	}
	return string(kind)
}

func employeeSlug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

func (r *Reporter) writeFile(filename, content string) (string, error) {
	if err := os.MkdirAll(r.reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(r.reportDir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
