package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vykaz/internal/storage"
	"github.com/vykaz/internal/timesheet"
)

// Backup file discriminators. Import dispatches on the "type" field.
const (
	TypeFull     = "full_backup"
	TypeEmployee = "employee_data"
)

// FullBackup carries the whole database: every catalog plus every
// employee's day map. Importing one replaces all existing data.
type FullBackup struct {
	Type        string                                        `json:"type"`
	Employees   []timesheet.Employee                          `json:"employees"`
	Projects    []timesheet.Project                           `json:"projects"`
	Absences    []timesheet.AbsenceType                       `json:"absences"`
	AllWorkData map[string]map[string]timesheet.DayActivities `json:"allWorkData"`
}

// EmployeeBackup carries one employee and their days. Importing one merges:
// an existing employee gets its days added or overwritten, a new one is
// created first.
type EmployeeBackup struct {
	Type     string                             `json:"type"`
	Employee timesheet.Employee                 `json:"employee"`
	WorkData map[string]timesheet.DayActivities `json:"workData"`
}

// Manager reads and writes backup files against the database.
type Manager struct {
	db *storage.Database
}

func New(db *storage.Database) *Manager {
	return &Manager{db: db}
}

// ExportFull writes a complete backup to dir and returns the file path and
// its size in bytes.
func (m *Manager) ExportFull(dir string) (string, int64, error) {
	employees, err := m.db.Employees()
	if err != nil {
		return "", 0, fmt.Errorf("failed to load employees: %w", err)
	}
	projects, err := m.db.Projects()
	if err != nil {
		return "", 0, fmt.Errorf("failed to load projects: %w", err)
	}
	absences, err := m.db.AbsenceTypes()
	if err != nil {
		return "", 0, fmt.Errorf("failed to load absence types: %w", err)
	}

	all := make(map[string]map[string]timesheet.DayActivities)
	for _, e := range employees {
		days, err := m.db.LoadAllDays(e.ID)
		if err != nil {
			return "", 0, fmt.Errorf("failed to load days for %s: %w", e.Name, err)
		}
		all[e.ID] = wrapDays(days)
	}

	data := FullBackup{
		Type:        TypeFull,
		Employees:   employees,
		Projects:    projects,
		Absences:    absences,
		AllWorkData: all,
	}

	filename := fmt.Sprintf("zaloha_vykazu_%s.json", time.Now().Format("2006-01-02"))
	return writeBackup(dir, filename, data)
}

// ExportEmployee writes a single employee's backup to dir and returns the
// file path and its size in bytes.
func (m *Manager) ExportEmployee(dir, employeeID string) (string, int64, error) {
	employee, err := m.db.GetEmployee(employeeID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to load employee: %w", err)
	}
	if employee == nil {
		return "", 0, fmt.Errorf("employee %s not found", employeeID)
	}

	days, err := m.db.LoadAllDays(employeeID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to load days: %w", err)
	}

	data := EmployeeBackup{
		Type:     TypeEmployee,
		Employee: *employee,
		WorkData: wrapDays(days),
	}

	slug := strings.ToLower(strings.Join(strings.Fields(employee.Name), "-"))
	filename := fmt.Sprintf("vykaz_%s_%s.json", slug, time.Now().Format("2006-01-02"))
	return writeBackup(dir, filename, data)
}

// Import reads a backup file, dispatches on its type tag and applies it.
// It returns a short human-readable description of what was done.
func (m *Manager) Import(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}

	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return "", fmt.Errorf("not a backup file: %w", err)
	}

	switch header.Type {
	case TypeFull:
		var data FullBackup
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("corrupt full backup: %w", err)
		}
		return m.importFull(data)
	case TypeEmployee:
		var data EmployeeBackup
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", fmt.Errorf("corrupt employee backup: %w", err)
		}
		return m.importEmployee(data)
	default:
		return "", fmt.Errorf("unknown backup type %q", header.Type)
	}
}

// importFull replaces everything: catalogs first so day references resolve,
// then every employee's days.
func (m *Manager) importFull(data FullBackup) (string, error) {
	existing, err := m.db.Employees()
	if err != nil {
		return "", err
	}
	for _, e := range existing {
		if err := m.db.DeleteEmployee(e.ID); err != nil {
			return "", fmt.Errorf("failed to clear employee %s: %w", e.Name, err)
		}
	}
	projects, err := m.db.Projects()
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if err := m.db.DeleteProject(p.ID); err != nil {
			return "", fmt.Errorf("failed to clear project %s: %w", p.Name, err)
		}
	}
	absences, err := m.db.AbsenceTypes()
	if err != nil {
		return "", err
	}
	for _, a := range absences {
		if err := m.db.DeleteAbsenceType(a.ID); err != nil {
			return "", fmt.Errorf("failed to clear absence type %s: %w", a.Name, err)
		}
	}

	for _, p := range data.Projects {
		if err := m.db.InsertProject(p); err != nil {
			return "", fmt.Errorf("failed to import project %s: %w", p.Name, err)
		}
	}
	for _, a := range data.Absences {
		if err := m.db.InsertAbsenceType(a); err != nil {
			return "", fmt.Errorf("failed to import absence type %s: %w", a.Name, err)
		}
	}
	days := 0
	for _, e := range data.Employees {
		if err := m.db.InsertEmployee(e); err != nil {
			return "", fmt.Errorf("failed to import employee %s: %w", e.Name, err)
		}
		for date, activities := range data.AllWorkData[e.ID] {
			if err := m.db.SaveDay(e.ID, date, activities); err != nil {
				return "", fmt.Errorf("failed to import day %s: %w", date, err)
			}
			days++
		}
	}

	return fmt.Sprintf("restored %d employees, %d projects, %d absence types, %d days",
		len(data.Employees), len(data.Projects), len(data.Absences), days), nil
}

// importEmployee merges one employee: update or create the record, then add
// or overwrite the backed-up days. Days not present in the backup are kept.
func (m *Manager) importEmployee(data EmployeeBackup) (string, error) {
	existing, err := m.db.GetEmployee(data.Employee.ID)
	if err != nil {
		return "", err
	}
	verb := "merged into existing"
	if existing == nil {
		if err := m.db.InsertEmployee(data.Employee); err != nil {
			return "", fmt.Errorf("failed to create employee %s: %w", data.Employee.Name, err)
		}
		verb = "created new"
	} else {
		if err := m.db.UpdateEmployee(data.Employee); err != nil {
			return "", fmt.Errorf("failed to update employee %s: %w", data.Employee.Name, err)
		}
	}

	for date, activities := range data.WorkData {
		if err := m.db.SaveDay(data.Employee.ID, date, activities); err != nil {
			return "", fmt.Errorf("failed to import day %s: %w", date, err)
		}
	}

	return fmt.Sprintf("%s employee %s, %d days", verb, data.Employee.Name, len(data.WorkData)), nil
}

func wrapDays(days map[string][]timesheet.Activity) map[string]timesheet.DayActivities {
	wrapped := make(map[string]timesheet.DayActivities, len(days))
	for date, activities := range days {
		wrapped[date] = activities
	}
	return wrapped
}

func writeBackup(dir, filename string, data interface{}) (string, int64, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create backup directory: %w", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode backup: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write backup: %w", err)
	}

	return path, int64(len(encoded)), nil
}
