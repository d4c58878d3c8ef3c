package timesheet

import "strings"

// Project is a bookable project or activity. Archived projects stay
// referenceable from historical days but are excluded from pick lists.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Archived bool   `json:"archived"`
}

// AbsenceType is a user-managed absence category (vacation, sickness, ...).
type AbsenceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Employee owns one day map. Deleting an employee deletes all of its days.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

// holidayAbsenceName is the name fragment identifying the system-managed
// public holiday absence type. It is the only absence the system assigns on
// its own.
const holidayAbsenceName = "státní svátek"

// HolidayAbsenceID finds the public holiday absence type by name,
// case-insensitively. It returns "" when no such type exists.
func HolidayAbsenceID(types []AbsenceType) string {
	for _, t := range types {
		if strings.Contains(strings.ToLower(t.Name), holidayAbsenceName) {
			return t.ID
		}
	}
	return ""
}

// PickableProjects returns the projects offered for a new work entry: all
// active ones, preceded by the currently selected project even when it is
// archived, so historical selections keep rendering.
func PickableProjects(projects []Project, selectedID string) []Project {
	var selected *Project
	active := make([]Project, 0, len(projects))
	for i, p := range projects {
		if p.ID == selectedID {
			selected = &projects[i]
		}
		if !p.Archived {
			active = append(active, p)
		}
	}
	if selected != nil && selected.Archived {
		return append([]Project{*selected}, active...)
	}
	return active
}

// NewHolidayMarker builds the full-day activity list the system assigns to an
// empty public holiday: a single absence spanning the standard working day.
func NewHolidayMarker(absenceID string) []Activity {
	end := "16:00"
	return []Activity{{
		ID:        newID(),
		Kind:      KindAbsence,
		Start:     "08:00",
		End:       &end,
		AbsenceID: &absenceID,
		Notes:     "Státní svátek",
	}}
}
