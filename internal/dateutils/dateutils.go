// Package dateutils provides the date formats and calendar-day helpers used
// throughout the application.
package dateutils

import "time"

// Common date format constants used throughout the application.
const (
	DayLayout       = "02/01/2006"   // day-bucket labels and report headers
	ShortDayLayout  = "02/01/06"     // report table rows
	MonthLayout     = "January 2006" // monthly report grouping labels
	TimestampLayout = "02/01/2006 15:04"
)

// LabelToday and LabelYesterday are the special day-bucket labels for the
// two most recent calendar days.
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
)

// FromMillis converts an epoch-milliseconds instant to a local time.Time.
func FromMillis(millis int64) time.Time {
	return time.UnixMilli(millis)
}

// SameCalendarDay reports whether two instants fall on the same calendar
// day in the local timezone.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayLabel returns the day-bucket label for an instant relative to now:
// "Today", "Yesterday", or the date formatted as dd/MM/yyyy.
func DayLabel(t, now time.Time) string {
	switch {
	case SameCalendarDay(t, now):
		return LabelToday
	case SameCalendarDay(t, now.AddDate(0, 0, -1)):
		return LabelYesterday
	default:
		return t.Format(DayLayout)
	}
}

// MonthLabel formats an instant as its monthly grouping label, e.g.
// "January 2006".
func MonthLabel(t time.Time) string {
	return t.Format(MonthLayout)
}
