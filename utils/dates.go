package utils

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseTimestamp accepts RFC3339 or a bare date. Used for consumed_at input.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return ParseDate(s)
}

// DayStart truncates a timestamp to midnight of its calendar date. All
// bucket boundaries go through this so grouping is done on dates, never on
// raw timestamps.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	return DayStart(t).AddDate(0, 0, -(wd - 1))
}

// MonthRange returns the first and last calendar day of a month. The last
// day is derived with AddDate so month lengths are never hardcoded.
func MonthRange(year, month int) (start, end time.Time, err error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, errors.New("month must be between 1 and 12")
	}
	if year < 1 {
		return time.Time{}, time.Time{}, errors.New("invalid year")
	}
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

// DaysBetween counts calendar days from a through b, inclusive of both
// endpoints. Returns 0 when b is before a.
func DaysBetween(a, b time.Time) int {
	a, b = DayStart(a), DayStart(b)
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a).Hours()/24) + 1
}

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// SuggestMealType picks a meal type from the hour of day, used as a default
// when a log entry does not name one.
func SuggestMealType(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return "breakfast"
	case h >= 11 && h < 15:
		return "lunch"
	case h >= 15 && h < 18:
		return "snack"
	case h >= 18 && h <= 23:
		return "dinner"
	default:
		return "snack"
	}
}
