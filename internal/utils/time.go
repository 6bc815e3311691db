package utils

import "time"

// StartOfDay returns local midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// CalendarDays returns [start, end) covering the n calendar days that end
// with today, so n=1 is today only. Days follow loc's DST shifts.
func CalendarDays(now time.Time, n int, loc *time.Location) (time.Time, time.Time) {
	if n < 1 {
		n = 1
	}
	today := StartOfDay(now, loc)
	return today.AddDate(0, 0, -(n - 1)), today.AddDate(0, 0, 1)
}
