package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// ParseDate parses a YYYY-MM-DD date string as a UTC calendar day.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatUTCDate formats the UTC calendar day containing t.
func FormatUTCDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// CalendarDay truncates t to midnight of its UTC calendar day.
func CalendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar day by n whole days.
func AddDays(t time.Time, n int) time.Time {
	return CalendarDay(t).AddDate(0, 0, n)
}

// DayOffset returns how many UTC calendar days separate from and to.
func DayOffset(from, to time.Time) int {
	return int(CalendarDay(to).Sub(CalendarDay(from)) / day)
}

// ISO formats t as an RFC 3339 UTC timestamp with millisecond precision.
func ISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
