// Package holiday computes Czech public holidays for a given year. Results
// are pure functions of the year and are memoized, so repeated month renders
// don't reallocate the same calendar.
package holiday

import (
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Calendar holds one year's public holidays: the dates in ascending order
// plus a lookup set of their ISO date strings.
type Calendar struct {
	Year  int
	Dates []time.Time

	iso map[string]struct{}
}

// Contains reports whether the given ISO date string (YYYY-MM-DD) is a
// public holiday.
func (c *Calendar) Contains(date string) bool {
	_, ok := c.iso[date]
	return ok
}

// Strings returns the holidays as ISO date strings in ascending order.
func (c *Calendar) Strings() []string {
	out := make([]string, len(c.Dates))
	for i, d := range c.Dates {
		out[i] = ISODate(d)
	}
	return out
}

// ISODate formats a date as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Calendars are immutable once computed, so the cache never needs
// invalidation.
var cache, _ = lru.New[int, *Calendar](8)

// ForYear returns the public holiday calendar for the given year. Every year
// produces a valid calendar; there is no invalid input.
func ForYear(year int) *Calendar {
	if cal, ok := cache.Get(year); ok {
		return cal
	}
	cal := compute(year)
	cache.Add(year, cal)
	return cal
}

// EasterSunday computes Easter Sunday for the given year with the Gregorian
// Meeus/Jones/Butcher algorithm. The date is constructed in UTC so that local
// timezones cannot shift it across a day boundary.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// fixedDates are the non-moveable Czech public holidays.
var fixedDates = []struct {
	month time.Month
	day   int
}{
	{time.January, 1},   // New Year's Day
	{time.May, 1},       // Labour Day
	{time.May, 8},       // Liberation Day
	{time.July, 5},      // Saints Cyril and Methodius Day
	{time.July, 6},      // Jan Hus Day
	{time.September, 28}, // Czech Statehood Day
	{time.October, 28},  // Independent Czechoslovak State Day
	{time.November, 17}, // Struggle for Freedom and Democracy Day
	{time.December, 24}, // Christmas Eve
	{time.December, 25}, // Christmas Day
	{time.December, 26}, // St. Stephen's Day
}

func compute(year int) *Calendar {
	easter := EasterSunday(year)
	goodFriday := easter.AddDate(0, 0, -2)
	easterMonday := easter.AddDate(0, 0, 1)

	dates := make([]time.Time, 0, len(fixedDates)+2)
	for _, fd := range fixedDates {
		dates = append(dates, time.Date(year, fd.month, fd.day, 0, 0, 0, 0, time.UTC))
	}
	dates = append(dates, goodFriday, easterMonday)

	// Deduplicate by exact date; Easter-relative days could in principle
	// collide with a fixed holiday.
	seen := make(map[string]struct{}, len(dates))
	unique := dates[:0]
	for _, d := range dates {
		key := ISODate(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, d)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].Before(unique[j]) })

	return &Calendar{Year: year, Dates: unique, iso: seen}
}
