package timesheet

import (
	"github.com/vykaz/internal/timeutil"
)

const (
	// LunchThresholdMinutes is the amount of continuous work after which a
	// lunch break is mandatory. The comparison is strict: a block of exactly
	// 4.5 hours gets no break, only a block exceeding it does.
	LunchThresholdMinutes = 270

	// LunchBreakMinutes is the length of the auto-inserted lunch break.
	LunchBreakMinutes = 30

	lunchBreakNotes = "Oběd (automaticky)"
)

// NormalizeTimeline turns a day's raw activities into a fully resolved
// timeline. It sorts by start time, fills each missing end time from the
// successor's start, discards stale auto-generated breaks and re-derives
// them: whenever a run of back-to-back work crosses the lunch threshold, the
// crossing activity is split and a lunch break inserted at the crossing
// point.
//
// finalEnd closes the last activity when given. With finalEnd nil the last
// activity keeps whatever end it already had; if it had none the day stays
// open.
func NormalizeTimeline(activities []Activity, finalEnd *string) []Activity {
	resolved := make([]Activity, len(activities))
	copy(resolved, activities)
	sortByStart(resolved)

	for i := range resolved {
		if resolved[i].Kind == KindBreak && resolved[i].Auto {
			continue
		}
		if i+1 < len(resolved) {
			next := resolved[i+1].Start
			// Fill a missing end from the successor's start and clamp an
			// overlapping one to it. An end before the successor's start is
			// a genuine gap and stays; gaps separate work blocks.
			if resolved[i].End == nil || timeutil.ParseClock(*resolved[i].End) > timeutil.ParseClock(next) {
				resolved[i].End = &next
			}
		} else if finalEnd != nil {
			end := *finalEnd
			resolved[i].End = &end
		}
	}

	// Auto-breaks are always derived fresh, never carried over from a
	// previous edit. A break that still sits exactly between the two halves
	// of an earlier split is removed by merging the halves back into one
	// activity, so the walk below re-derives the break at the same spot
	// instead of seeing a gap. A break whose surroundings were edited is
	// simply dropped.
	entries := resolved[:0]
	for i := 0; i < len(resolved); i++ {
		act := resolved[i]
		if act.Kind == KindBreak && act.Auto {
			if n := len(entries); n > 0 && i+1 < len(resolved) && joinsSplitHalves(entries[n-1], act, resolved[i+1]) {
				entries[n-1].End = resolved[i+1].End
				i++ // the tail half is consumed by the merge
			}
			continue
		}
		entries = append(entries, act)
	}

	out := make([]Activity, 0, len(entries)+2)
	continuousWork := 0 // minutes of back-to-back work accumulated so far
	blockStart := -1    // clock minutes where the current work block began
	lastEnd := -1       // end of the previously emitted activity

	for _, act := range entries {
		start := timeutil.ParseClock(act.Start)

		// A gap between activities ends the continuous block.
		if lastEnd > 0 && start > lastEnd {
			continuousWork = 0
			blockStart = -1
		}

		if act.Kind == KindWork && act.End != nil {
			if blockStart < 0 {
				blockStart = start
			}

			duration := clockSpan(start, *act.End)
			total := continuousWork + duration

			if total > LunchThresholdMinutes && continuousWork < LunchThresholdMinutes {
				// This activity carries the block across the threshold:
				// split it at the crossing point.
				intoActivity := LunchThresholdMinutes - continuousWork
				breakStart := start + intoActivity
				breakEnd := breakStart + LunchBreakMinutes
				originalEnd := timeutil.ParseClock(*act.End)

				if breakStart > start {
					head := act
					head.End = clockPtr(breakStart)
					out = append(out, head)
				}

				out = append(out, Activity{
					ID:    newID(),
					Kind:  KindBreak,
					Start: timeutil.FormatClock(breakStart),
					End:   clockPtr(breakEnd),
					Notes: lunchBreakNotes,
					Auto:  true,
				})

				if originalEnd > breakEnd {
					tail := act
					tail.ID = newID()
					tail.Start = timeutil.FormatClock(breakEnd)
					tail.End = clockPtr(originalEnd)
					out = append(out, tail)
				}

				if originalEnd > breakEnd {
					continuousWork = originalEnd - breakEnd
				} else {
					continuousWork = 0
				}
				blockStart = breakEnd
			} else {
				out = append(out, act)
				continuousWork += duration
			}
		} else {
			// Absences, manual breaks and open work don't extend the block.
			out = append(out, act)
			continuousWork = 0
			blockStart = -1
		}

		if act.End != nil {
			lastEnd = timeutil.ParseClock(*act.End)
		}
	}

	// The split may have appended pieces out of slice order.
	sortByStart(out)
	return out
}

// joinsSplitHalves reports whether an auto-break sits exactly between two
// closed work activities carrying the same project and notes, i.e. the pieces
// a previous lunch insertion produced.
func joinsSplitHalves(head, br, tail Activity) bool {
	if head.Kind != KindWork || tail.Kind != KindWork {
		return false
	}
	if head.End == nil || br.End == nil || tail.End == nil {
		return false
	}
	if *head.End != br.Start || tail.Start != *br.End {
		return false
	}
	if head.Notes != tail.Notes {
		return false
	}
	return sameRef(head.ProjectID, tail.ProjectID)
}

// sameRef compares two optional strings by value.
func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// clockSpan returns end minus start in minutes, never negative.
func clockSpan(start int, end string) int {
	endMinutes := timeutil.ParseClock(end)
	if endMinutes < start {
		return 0
	}
	return endMinutes - start
}
