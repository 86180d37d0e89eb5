// Package streak implements the day-granularity completion rule for habits.
//
// Day differences are computed the way the first release of the app did it:
// the delta between two local midnights divided by 24h and rounded half up.
// Across a DST change the delta is 23h or 25h and still rounds to one day,
// but the calculation is not a count of calendar boundaries and is kept that
// way for compatibility with existing data.
package streak

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Midnight returns 00:00 of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayDiff returns the rounded number of days between last's and now's
// calendar days, evaluated in now's location. Positive when last is before
// now.
func DayDiff(last, now time.Time) int {
	today := Midnight(now)
	prev := Midnight(last.In(now.Location()))
	days := float64(today.Sub(prev)) / float64(day)
	return int(math.Floor(days + 0.5))
}

// Next returns the streak after a completion at now, given the current
// streak and the previous completion (nil if there was none).
func Next(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}

	switch diff := DayDiff(*last, now); {
	case diff == 1:
		return current + 1
	case diff > 1:
		return 1
	default:
		// Already completed today, or the clock went backwards.
		return current
	}
}

// CompletedOn reports whether last falls on the same calendar day as now.
func CompletedOn(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	l := last.In(now.Location())
	ly, lm, ld := l.Date()
	ny, nm, nd := now.Date()
	return ly == ny && lm == nm && ld == nd
}
