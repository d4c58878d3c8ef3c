package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vykaz/internal/timesheet"
)

// Database persists the reference catalogs (employees, projects, absence
// types) and one activity-list row per employee day. Days are written back
// whole, mirroring how the editor works: there are no partial updates.
type Database struct {
	db *sql.DB
}

func New(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	database := &Database{db: db}
	if err := database.createTables(); err != nil {
		return nil, err
	}
	if err := database.seedCatalogs(); err != nil {
		return nil, err
	}

	return database, nil
}

func (d *Database) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS absence_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS work_days (
			employee_id TEXT NOT NULL,
			date TEXT NOT NULL,
			activities TEXT NOT NULL,
			PRIMARY KEY (employee_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_work_days_date ON work_days(date)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// seedCatalogs fills an empty database with a starter catalog so the first
// run has something to book against.
func (d *Database) seedCatalogs() error {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM absence_types`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seedProjects := []timesheet.Project{
		{ID: "proj-1", Name: "Interní systém", Color: "#0088FE"},
		{ID: "proj-2", Name: "Web pro klienta A", Color: "#00C49F"},
		{ID: "proj-3", Name: "Mobilní aplikace", Color: "#FFBB28"},
	}
	seedAbsences := []timesheet.AbsenceType{
		{ID: "absence-1", Name: "Dovolená"},
		{ID: "absence-2", Name: "Nemoc"},
		{ID: "absence-3", Name: "Lékař"},
		{ID: "absence-4", Name: "Státní svátek"},
		{ID: "absence-5", Name: "Náhradní volno"},
		{ID: "absence-6", Name: "Neplacené volno"},
		{ID: "absence-7", Name: "OČR (Ošetřování člena rodiny)"},
		{ID: "absence-9", Name: "60% (překážka v práci)"},
		{ID: "absence-8", Name: "Jiné"},
	}

	for _, p := range seedProjects {
		if err := d.InsertProject(p); err != nil {
			return err
		}
	}
	for _, a := range seedAbsences {
		if err := d.InsertAbsenceType(a); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// --- Employees ---

func (d *Database) InsertEmployee(e timesheet.Employee) error {
	_, err := d.db.Exec(
		`INSERT INTO employees (id, name, archived) VALUES (?, ?, ?)`,
		e.ID, e.Name, e.Archived,
	)
	return err
}

func (d *Database) UpdateEmployee(e timesheet.Employee) error {
	_, err := d.db.Exec(
		`UPDATE employees SET name = ?, archived = ? WHERE id = ?`,
		e.Name, e.Archived, e.ID,
	)
	return err
}

// DeleteEmployee removes the employee and, in the same transaction, every
// day it owns.
func (d *Database) DeleteEmployee(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM work_days WHERE employee_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM employees WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *Database) Employees() ([]timesheet.Employee, error) {
	rows, err := d.db.Query(`SELECT id, name, archived FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []timesheet.Employee
	for rows.Next() {
		var e timesheet.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Archived); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (d *Database) GetEmployee(id string) (*timesheet.Employee, error) {
	var e timesheet.Employee
	err := d.db.QueryRow(`SELECT id, name, archived FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Archived)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// --- Projects ---

func (d *Database) InsertProject(p timesheet.Project) error {
	_, err := d.db.Exec(
		`INSERT INTO projects (id, name, color, archived) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Color, p.Archived,
	)
	return err
}

func (d *Database) UpdateProject(p timesheet.Project) error {
	_, err := d.db.Exec(
		`UPDATE projects SET name = ?, color = ?, archived = ? WHERE id = ?`,
		p.Name, p.Color, p.Archived, p.ID,
	)
	return err
}

// DeleteProject removes the project and clears its references from every
// stored day, so historical activities fall back to the unassigned bucket.
func (d *Database) DeleteProject(id string) error {
	if err := d.clearActivityRefs(func(a *timesheet.Activity) bool {
		if a.ProjectID != nil && *a.ProjectID == id {
			a.ProjectID = nil
			return true
		}
		return false
	}); err != nil {
		return err
	}
	_, err := d.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}

func (d *Database) Projects() ([]timesheet.Project, error) {
	rows, err := d.db.Query(`SELECT id, name, color, archived FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []timesheet.Project
	for rows.Next() {
		var p timesheet.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.Archived); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// --- Absence types ---

func (d *Database) InsertAbsenceType(a timesheet.AbsenceType) error {
	_, err := d.db.Exec(`INSERT INTO absence_types (id, name) VALUES (?, ?)`, a.ID, a.Name)
	return err
}

// DeleteAbsenceType removes the type and clears its references from every
// stored day.
func (d *Database) DeleteAbsenceType(id string) error {
	if err := d.clearActivityRefs(func(a *timesheet.Activity) bool {
		if a.AbsenceID != nil && *a.AbsenceID == id {
			a.AbsenceID = nil
			return true
		}
		return false
	}); err != nil {
		return err
	}
	_, err := d.db.Exec(`DELETE FROM absence_types WHERE id = ?`, id)
	return err
}

func (d *Database) AbsenceTypes() ([]timesheet.AbsenceType, error) {
	rows, err := d.db.Query(`SELECT id, name FROM absence_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []timesheet.AbsenceType
	for rows.Next() {
		var a timesheet.AbsenceType
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		types = append(types, a)
	}
	return types, rows.Err()
}

// --- Days ---

// SaveDay replaces the whole day. An empty activity list is stored as-is:
// an explicitly cleared day keeps its row, it just holds nothing.
func (d *Database) SaveDay(employeeID, date string, activities []timesheet.Activity) error {
	if activities == nil {
		activities = []timesheet.Activity{}
	}
	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("failed to encode day %s: %w", date, err)
	}
	_, err = d.db.Exec(
		`INSERT OR REPLACE INTO work_days (employee_id, date, activities) VALUES (?, ?, ?)`,
		employeeID, date, string(data),
	)
	return err
}

// LoadDay returns the activities of one day; a day never written yet comes
// back empty. Legacy-format rows are migrated on read.
func (d *Database) LoadDay(employeeID, date string) ([]timesheet.Activity, error) {
	var data string
	err := d.db.QueryRow(
		`SELECT activities FROM work_days WHERE employee_id = ? AND date = ?`,
		employeeID, date,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDay(date, data)
}

// LoadMonth returns all stored days of one employee month keyed by ISO date.
func (d *Database) LoadMonth(employeeID string, year int, month time.Month) (map[string][]timesheet.Activity, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	rows, err := d.db.Query(
		`SELECT date, activities FROM work_days WHERE employee_id = ? AND date LIKE ?`,
		employeeID, prefix+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDays(rows)
}

// LoadAllDays returns every stored day of one employee, for backups.
func (d *Database) LoadAllDays(employeeID string) (map[string][]timesheet.Activity, error) {
	rows, err := d.db.Query(
		`SELECT date, activities FROM work_days WHERE employee_id = ?`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDays(rows)
}

func scanDays(rows *sql.Rows) (map[string][]timesheet.Activity, error) {
	days := make(map[string][]timesheet.Activity)
	for rows.Next() {
		var date, data string
		if err := rows.Scan(&date, &data); err != nil {
			return nil, err
		}
		activities, err := decodeDay(date, data)
		if err != nil {
			return nil, err
		}
		days[date] = activities
	}
	return days, rows.Err()
}

func decodeDay(date, data string) ([]timesheet.Activity, error) {
	var day timesheet.DayActivities
	if err := json.Unmarshal([]byte(data), &day); err != nil {
		return nil, fmt.Errorf("corrupt day %s: %w", date, err)
	}
	return day, nil
}

// clearActivityRefs rewrites every stored day whose activities the given
// function mutates. Used when a project or absence type is deleted.
func (d *Database) clearActivityRefs(clear func(*timesheet.Activity) bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT employee_id, date, activities FROM work_days`)
	if err != nil {
		return err
	}

	type update struct {
		employeeID string
		date       string
		data       string
	}
	var updates []update

	for rows.Next() {
		var employeeID, date, data string
		if err := rows.Scan(&employeeID, &date, &data); err != nil {
			rows.Close()
			return err
		}
		activities, err := decodeDay(date, data)
		if err != nil {
			rows.Close()
			return err
		}
		changed := false
		for i := range activities {
			if clear(&activities[i]) {
				changed = true
			}
		}
		if !changed {
			continue
		}
		encoded, err := json.Marshal(activities)
		if err != nil {
			rows.Close()
			return err
		}
		updates = append(updates, update{employeeID, date, string(encoded)})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, u := range updates {
		if _, err := tx.Exec(
			`UPDATE work_days SET activities = ? WHERE employee_id = ? AND date = ?`,
			u.data, u.employeeID, u.date,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
