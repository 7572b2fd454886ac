package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// DateLayout is the layout used for calendar dates in schedule files and reports.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// DayRound truncates t to its calendar date, expressed at midnight UTC.
// The calendar date is taken in t's own location.
func DayRound(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DayRound(b).Sub(DayRound(a)) / day)
}

// AddDays returns the calendar date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return DayRound(t).AddDate(0, 0, n)
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, zerr.With(zerr.Wrap(err, "invalid date"), "date", s)
	}
	return t, nil
}
