package utils

import "time"

// DateLayout is the calendar-day format used throughout the API.
const DateLayout = "2006-01-02"

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// FormatDate renders a time as a calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
