package timesheet

import (
	"sort"

	"github.com/google/uuid"

	"github.com/vykaz/internal/timeutil"
)

// ActivityKind discriminates the three timeline entry variants.
type ActivityKind string

const (
	KindWork    ActivityKind = "work"
	KindAbsence ActivityKind = "absence"
	KindBreak   ActivityKind = "break"
)

// Activity is one atomic interval within a day. A nil End marks the open
// activity (work in progress); a day holds at most one of those.
type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"type"`
	Start     string       `json:"startTime"`
	End       *string      `json:"endTime"`
	ProjectID *string      `json:"projectId"`
	AbsenceID *string      `json:"absenceId"`
	Notes     string       `json:"notes"`
	Auto      bool         `json:"isAuto"`
}

func newID() string {
	return uuid.NewString()
}

// NewWork creates an open work activity starting at the given clock time.
func NewWork(start string, projectID *string) Activity {
	return Activity{
		ID:        newID(),
		Kind:      KindWork,
		Start:     start,
		ProjectID: projectID,
	}
}

// NewAbsence creates an open absence activity starting at the given clock time.
func NewAbsence(start string, absenceID *string) Activity {
	return Activity{
		ID:        newID(),
		Kind:      KindAbsence,
		Start:     start,
		AbsenceID: absenceID,
	}
}

// Duration returns the activity's length in hours, 0 while it is still open.
func (a Activity) Duration() float64 {
	if a.End == nil {
		return 0
	}
	return timeutil.HoursBetween(a.Start, *a.End)
}

// Resolved reports whether the activity has an end time.
func (a Activity) Resolved() bool {
	return a.End != nil
}

// sortByStart orders activities by start time ascending. The sort is stable:
// equal start times keep their insertion order.
func sortByStart(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return timeutil.ParseClock(activities[i].Start) < timeutil.ParseClock(activities[j].Start)
	})
}

func clockPtr(minutes int) *string {
	s := timeutil.FormatClock(minutes)
	return &s
}
