package services

import "time"

// Quick date-range helpers used by the report commands. Each returns an
// inclusive [start, end] pair in the local time zone.

// RangeToday covers the calendar day containing now.
func RangeToday(now time.Time) (time.Time, time.Time) {
	start := startOfDay(now)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// RangeThisWeek covers the Sunday-starting week containing now.
func RangeThisWeek(now time.Time) (time.Time, time.Time) {
	start := startOfWeek(now)
	return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// RangeThisMonth covers the calendar month containing now.
func RangeThisMonth(now time.Time) (time.Time, time.Time) {
	start := startOfMonth(now)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// RangeLastNDays covers the n calendar days ending today.
func RangeLastNDays(now time.Time, n int) (time.Time, time.Time) {
	end := startOfDay(now).AddDate(0, 0, 1).Add(-time.Nanosecond)
	start := startOfDay(now).AddDate(0, 0, -(n - 1))
	return start, end
}
