// Package fund computes the monthly work-time fund.
//
// =============================================================================
// WORK RULES CONFIGURATION
// =============================================================================
// Edit these values to match your local work regulations.
// Current defaults: Czech work rules.
//
// To customize for your country/company:
// 1. Change StandardDailyHours to your standard working day
// 2. The public holiday calendar lives in internal/holiday
// =============================================================================
package fund

import (
	"time"

	"github.com/vykaz/internal/holiday"
)

const (
	// StandardDailyHours - length of a standard working day.
	// Czechia: 8 | Austria: 7.7 | France: 7
	StandardDailyHours = 8
)

// IsWorkday reports whether the given date is a business day: not a Saturday,
// not a Sunday and not a public holiday.
func IsWorkday(date time.Time, cal *holiday.Calendar) bool {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !cal.Contains(holiday.ISODate(date))
}

// WorkdaysInMonth counts the business days of a month.
func WorkdaysInMonth(year int, month time.Month, cal *holiday.Calendar) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	count := 0
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if IsWorkday(d, cal) {
			count++
		}
	}
	return count
}

// MonthFund returns the expected paid hours for a month: business days times
// the standard working day. Partial-month employment is deliberately not
// adjusted for; the fund is only the denominator of the reconciliation
// status.
func MonthFund(year int, month time.Month, cal *holiday.Calendar) float64 {
	return float64(WorkdaysInMonth(year, month, cal)) * StandardDailyHours
}
