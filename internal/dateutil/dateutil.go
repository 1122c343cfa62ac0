package dateutil

import (
	"time"

	"github.com/mresendiz/racha/internal/constants"
)

// Format renders a time as a zero-padded local calendar day key
// (YYYY-MM-DD). Any time-of-day component is discarded.
func Format(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Midnight truncates a time to local midnight of the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseKey parses a day key (YYYY-MM-DD) at local midnight. Free-form
// RFC3339 timestamps are also accepted for legacy created_at values.
// Unparseable input falls back to today's local midnight rather than
// failing: losing a user's whole history over one corrupted field is
// worse than a slightly wrong anchor date.
func ParseKey(value string) time.Time {
	if t, err := time.ParseInLocation(constants.DateFormat, value, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Midnight(t.Local())
	}
	return Midnight(time.Now())
}

// AddDays shifts a day by n calendar days, staying at local midnight.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t.AddDate(0, 0, n))
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// ClampDay clamps a creation day-of-month to the length of the month
// containing ref, so a habit created on the 31st resolves to the
// 28th/29th/30th in shorter months.
func ClampDay(day int, ref time.Time) int {
	if max := DaysInMonth(ref); day > max {
		return max
	}
	return day
}
