package timesheet

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func resolvedWork(start, end string) Activity {
	a := NewWork(start, nil)
	a.End = strPtr(end)
	return a
}

func resolvedAbsence(start, end, absenceID string) Activity {
	a := NewAbsence(start, &absenceID)
	a.End = strPtr(end)
	return a
}

// shape is an id-free view of an activity used for comparisons: normalization
// mints fresh ids for inserted breaks and split remainders.
type shape struct {
	kind  ActivityKind
	start string
	end   string
	auto  bool
}

func shapesOf(activities []Activity) []shape {
	out := make([]shape, len(activities))
	for i, a := range activities {
		s := shape{kind: a.Kind, start: a.Start, auto: a.Auto}
		if a.End != nil {
			s.end = *a.End
		}
		out[i] = s
	}
	return out
}

func assertShapes(t *testing.T, got []Activity, want []shape) {
	t.Helper()
	gotShapes := shapesOf(got)
	if len(gotShapes) != len(want) {
		t.Fatalf("got %d activities, want %d: %+v", len(gotShapes), len(want), gotShapes)
	}
	for i := range want {
		if gotShapes[i] != want[i] {
			t.Errorf("activity %d = %+v, want %+v", i, gotShapes[i], want[i])
		}
	}
}

func TestNormalizeSplitsLongBlock(t *testing.T) {
	// 9 continuous hours cross the lunch threshold at 11:30.
	result := NormalizeTimeline([]Activity{resolvedWork("07:00", "16:00")}, nil)

	assertShapes(t, result, []shape{
		{KindWork, "07:00", "11:30", false},
		{KindBreak, "11:30", "12:00", true},
		{KindWork, "12:00", "16:00", false},
	})

	totals := ComputeTotals(result)
	if totals.Worked != 8.5 || totals.Regular != 8 || totals.Overtime != 0.5 {
		t.Errorf("totals = %+v, want worked 8.5, regular 8, overtime 0.5", totals)
	}
}

func TestNormalizeSplitPreservesProjectAndNotes(t *testing.T) {
	a := resolvedWork("07:00", "16:00")
	a.ProjectID = strPtr("proj-1")
	a.Notes = "release day"

	result := NormalizeTimeline([]Activity{a}, nil)

	if len(result) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(result))
	}
	head, tail := result[0], result[2]
	if head.ID != a.ID {
		t.Errorf("head should keep the original id, got %s", head.ID)
	}
	if tail.ID == a.ID {
		t.Error("tail must get a fresh id")
	}
	for _, part := range []Activity{head, tail} {
		if part.ProjectID == nil || *part.ProjectID != "proj-1" {
			t.Errorf("split part lost its project: %+v", part)
		}
		if part.Notes != "release day" {
			t.Errorf("split part lost its notes: %+v", part)
		}
	}
}

func TestNormalizeKeepsShortBlock(t *testing.T) {
	result := NormalizeTimeline([]Activity{resolvedWork("09:00", "13:00")}, nil)

	assertShapes(t, result, []shape{
		{KindWork, "09:00", "13:00", false},
	})

	totals := ComputeTotals(result)
	if totals.Regular != 4 || totals.Overtime != 0 {
		t.Errorf("totals = %+v, want regular 4, overtime 0", totals)
	}
}

func TestNormalizeGapResetsContinuity(t *testing.T) {
	// Two separate blocks of 3h and 4h: combined duration exceeds the
	// threshold but no continuous block does, so no break is inserted.
	result := NormalizeTimeline([]Activity{
		resolvedWork("07:00", "10:00"),
		resolvedWork("13:00", "17:00"),
	}, nil)

	assertShapes(t, result, []shape{
		{KindWork, "07:00", "10:00", false},
		{KindWork, "13:00", "17:00", false},
	})
}

func TestNormalizeExactThresholdGetsNoBreak(t *testing.T) {
	// The comparison is strict: exactly 4.5 hours of continuous work does
	// not trigger the split.
	result := NormalizeTimeline([]Activity{resolvedWork("07:00", "11:30")}, nil)

	assertShapes(t, result, []shape{
		{KindWork, "07:00", "11:30", false},
	})
}

func TestNormalizeResolvesEndTimesFromSuccessors(t *testing.T) {
	// Two open entries plus an explicit day end: the first closes at the
	// second's start, the second at the day end. The resulting 8.5h block
	// crosses the threshold inside the second entry.
	result := NormalizeTimeline([]Activity{
		NewWork("07:00", nil),
		NewWork("09:00", nil),
	}, strPtr("15:30"))

	assertShapes(t, result, []shape{
		{KindWork, "07:00", "09:00", false},
		{KindWork, "09:00", "11:30", false},
		{KindBreak, "11:30", "12:00", true},
		{KindWork, "12:00", "15:30", false},
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := [][]Activity{
		{resolvedWork("07:00", "16:00")},
		{resolvedWork("07:00", "17:01")},
		{resolvedWork("07:00", "10:00"), resolvedWork("13:00", "17:00")},
		{resolvedWork("08:00", "12:30"), resolvedAbsence("12:30", "13:30", "absence-2"), resolvedWork("13:30", "17:00")},
		{},
	}

	for _, input := range inputs {
		once := NormalizeTimeline(input, nil)
		twice := NormalizeTimeline(once, nil)

		onceShapes := shapesOf(once)
		twiceShapes := shapesOf(twice)
		if len(onceShapes) != len(twiceShapes) {
			t.Fatalf("second normalization changed length: %d vs %d", len(onceShapes), len(twiceShapes))
		}
		for i := range onceShapes {
			if onceShapes[i] != twiceShapes[i] {
				t.Errorf("second normalization changed activity %d: %+v vs %+v", i, onceShapes[i], twiceShapes[i])
			}
		}
	}
}

func TestNormalizeRederivesCarriedBreak(t *testing.T) {
	// Feeding a split day back in must reproduce the same timeline: the two
	// work halves around the carried auto-break merge back and the break is
	// derived again at the same spot, not treated as a counter-resetting gap.
	long := resolvedWork("07:00", "16:00")
	long.ProjectID = strPtr("proj-1")
	long.Notes = "release day"
	first := NormalizeTimeline([]Activity{long}, nil)

	second := NormalizeTimeline(first, nil)

	assertShapes(t, second, []shape{
		{KindWork, "07:00", "11:30", false},
		{KindBreak, "11:30", "12:00", true},
		{KindWork, "12:00", "16:00", false},
	})
	if second[0].ID != long.ID {
		t.Errorf("head half lost its identity: %s", second[0].ID)
	}
	tail := second[2]
	if tail.ProjectID == nil || *tail.ProjectID != "proj-1" || tail.Notes != "release day" {
		t.Errorf("tail half lost project or notes: %+v", tail)
	}
}

func TestNormalizeDropsBreakWhenHalvesEdited(t *testing.T) {
	// Changing the project of the afternoon half breaks the pairing: the old
	// auto-break is discarded and the halves stay separate blocks too short
	// to warrant a new one.
	head := resolvedWork("07:00", "11:30")
	head.ProjectID = strPtr("proj-1")
	carried := Activity{
		ID:    "old-break",
		Kind:  KindBreak,
		Start: "11:30",
		End:   strPtr("12:00"),
		Auto:  true,
	}
	tail := resolvedWork("12:00", "16:00")
	tail.ProjectID = strPtr("proj-2")

	result := NormalizeTimeline([]Activity{head, carried, tail}, nil)

	assertShapes(t, result, []shape{
		{KindWork, "07:00", "11:30", false},
		{KindWork, "12:00", "16:00", false},
	})
}

func TestNormalizeStripsStaleAutoBreaks(t *testing.T) {
	// A stale auto-break from an earlier edit must not survive: the shrunk
	// work block no longer warrants one.
	stale := Activity{
		ID:    "old-break",
		Kind:  KindBreak,
		Start: "11:30",
		End:   strPtr("12:00"),
		Auto:  true,
	}
	result := NormalizeTimeline([]Activity{resolvedWork("09:00", "11:30"), stale}, strPtr("11:30"))

	assertShapes(t, result, []shape{
		{KindWork, "09:00", "11:30", false},
	})
}

func TestNormalizeOpenDayStaysOpen(t *testing.T) {
	result := NormalizeTimeline([]Activity{NewWork("07:00", nil)}, nil)

	if len(result) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(result))
	}
	if result[0].End != nil {
		t.Errorf("open last activity must keep a nil end, got %v", *result[0].End)
	}

	totals := ComputeTotals(result)
	if totals.Worked != 0 || totals.Regular != 0 || totals.Overtime != 0 {
		t.Errorf("open day totals = %+v, want all zero", totals)
	}
}

func TestNormalizeMixedDayScenario(t *testing.T) {
	// Work 08:00-12:30 (4.5h, exactly at the threshold), absence 12:30-13:30,
	// work 13:30-17:00. No break is inserted and the day sums to 8h flat.
	projectA, projectB := strPtr("proj-a"), strPtr("proj-b")

	first := resolvedWork("08:00", "12:30")
	first.ProjectID = projectA
	second := resolvedAbsence("12:30", "13:30", "absence-2")
	third := resolvedWork("13:30", "17:00")
	third.ProjectID = projectB

	result := NormalizeTimeline([]Activity{first, second, third}, nil)

	assertShapes(t, result, []shape{
		{KindWork, "08:00", "12:30", false},
		{KindAbsence, "12:30", "13:30", false},
		{KindWork, "13:30", "17:00", false},
	})

	totals := ComputeTotals(result)
	if totals.Worked != 8 || totals.Regular != 8 || totals.Overtime != 0 {
		t.Errorf("totals = %+v, want worked 8, regular 8, overtime 0", totals)
	}
}

func TestNormalizeAbsenceResetsContinuity(t *testing.T) {
	// 4h work, 1h absence, 4h work: 8h of work but never 4.5h continuously.
	result := NormalizeTimeline([]Activity{
		resolvedWork("07:00", "11:00"),
		resolvedAbsence("11:00", "12:00", "absence-3"),
		resolvedWork("12:00", "16:00"),
	}, nil)

	for _, a := range result {
		if a.Kind == KindBreak {
			t.Fatalf("no break expected, got %+v", a)
		}
	}
}

func TestNormalizeSortsByStartTime(t *testing.T) {
	result := NormalizeTimeline([]Activity{
		resolvedWork("13:00", "15:00"),
		resolvedWork("07:00", "09:00"),
		resolvedWork("10:00", "12:00"),
	}, nil)

	// Resolved end times before a gap are preserved, not bridged.
	assertShapes(t, result, []shape{
		{KindWork, "07:00", "09:00", false},
		{KindWork, "10:00", "12:00", false},
		{KindWork, "13:00", "15:00", false},
	})
}

func TestNormalizeClampsOverlappingEnd(t *testing.T) {
	// An entry reaching past its successor's start clamps to it; the two
	// then form one continuous block that crosses the threshold at 11:30.
	overlapping := resolvedWork("07:00", "15:00")
	result := NormalizeTimeline([]Activity{
		overlapping,
		NewWork("10:00", nil),
	}, strPtr("12:00"))

	assertShapes(t, result, []shape{
		{KindWork, "07:00", "10:00", false},
		{KindWork, "10:00", "11:30", false},
		{KindBreak, "11:30", "12:00", true},
	})
}
