package timesheet

import (
	"encoding/json"
	"testing"
)

func TestLegacyWorkDayConversion(t *testing.T) {
	project := "proj-1"

	t.Run("plain work interval", func(t *testing.T) {
		legacy := LegacyWorkDay{
			Date:      "2024-02-05",
			StartTime: strPtr("08:00"),
			EndTime:   strPtr("12:00"),
			ProjectID: &project,
			Notes:     "short day",
		}
		result := legacy.Activities()

		assertShapes(t, result, []shape{
			{KindWork, "08:00", "12:00", false},
		})
		if result[0].ProjectID == nil || *result[0].ProjectID != project {
			t.Errorf("lost project: %+v", result[0])
		}
	})

	t.Run("long interval gets the legacy lunch deduction as a break", func(t *testing.T) {
		legacy := LegacyWorkDay{
			Date:      "2024-02-05",
			StartTime: strPtr("07:00"),
			EndTime:   strPtr("16:00"),
			ProjectID: &project,
		}
		result := legacy.Activities()

		assertShapes(t, result, []shape{
			{KindWork, "07:00", "11:30", false},
			{KindBreak, "11:30", "12:00", true},
			{KindWork, "12:00", "16:00", false},
		})

		// The old editor stored 8.5h for this interval (9h minus 30min
		// lunch); the timeline reproduces that.
		totals := ComputeTotals(result)
		if totals.Worked != 8.5 {
			t.Errorf("worked = %v, want 8.5", totals.Worked)
		}
	})

	t.Run("full day absence", func(t *testing.T) {
		absence := "absence-1"
		legacy := LegacyWorkDay{
			Date:          "2024-02-05",
			AbsenceID:     &absence,
			AbsenceAmount: 1,
		}
		result := legacy.Activities()

		assertShapes(t, result, []shape{
			{KindAbsence, "08:00", "16:00", false},
		})
		if ComputeTotals(result).Worked != 0 {
			t.Error("absence day must report zero worked hours")
		}
	})

	t.Run("half day absence", func(t *testing.T) {
		absence := "absence-2"
		legacy := LegacyWorkDay{
			Date:          "2024-02-05",
			AbsenceID:     &absence,
			AbsenceAmount: 0.5,
		}
		result := legacy.Activities()

		assertShapes(t, result, []shape{
			{KindAbsence, "08:00", "12:00", false},
		})
	})

	t.Run("empty day", func(t *testing.T) {
		if result := (LegacyWorkDay{Date: "2024-02-05"}).Activities(); result != nil {
			t.Errorf("expected nil, got %+v", result)
		}
	})
}

func TestDayActivitiesUnmarshalCurrentFormat(t *testing.T) {
	data := `[{"id":"a1","type":"work","startTime":"08:00","endTime":"12:00","projectId":"proj-1","absenceId":null,"notes":"","isAuto":false}]`

	var day DayActivities
	if err := json.Unmarshal([]byte(data), &day); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(day) != 1 || day[0].Kind != KindWork || day[0].Start != "08:00" {
		t.Errorf("unexpected result: %+v", day)
	}
}

func TestDayActivitiesUnmarshalLegacyFormat(t *testing.T) {
	data := `{"date":"2024-02-05","startTime":"07:00","endTime":"16:00","hours":8,"overtime":0.5,"projectId":"proj-1","absenceId":null,"absenceAmount":0,"notes":""}`

	var day DayActivities
	if err := json.Unmarshal([]byte(data), &day); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Legacy days come out as normalized timelines, auto-break included.
	assertShapes(t, []Activity(day), []shape{
		{KindWork, "07:00", "11:30", false},
		{KindBreak, "11:30", "12:00", true},
		{KindWork, "12:00", "16:00", false},
	})
}

func TestDayActivitiesUnmarshalMigrationIdempotent(t *testing.T) {
	legacyJSON := `{"date":"2024-02-05","startTime":"07:00","endTime":"16:00","hours":8,"overtime":0.5,"projectId":null,"absenceId":null,"absenceAmount":0,"notes":""}`

	var migrated DayActivities
	if err := json.Unmarshal([]byte(legacyJSON), &migrated); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Re-serializing and re-reading a migrated day must not change it.
	reserialized, err := json.Marshal([]Activity(migrated))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var roundTripped DayActivities
	if err := json.Unmarshal(reserialized, &roundTripped); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}

	first := shapesOf(NormalizeTimeline(migrated, nil))
	second := shapesOf(NormalizeTimeline(roundTripped, nil))
	if len(first) != len(second) {
		t.Fatalf("normalization count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
