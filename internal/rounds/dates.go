package rounds

import (
	"strings"
	"time"
)

const DateLayout = time.DateOnly

// zoneless layouts are read as wall clock in the calculator's location
var zonelessLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.DateTime,
}

// ParseDate reads an ISO datetime or a date-only string. Malformed input yields the
// zero time with ok=false; the zero time is the invalid-date value every boundary
// function treats as outside any round.
func (c *Calculator) ParseDate(value string) (_ time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(c.loc), true
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, value, c.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// MustParseDate is ParseDate for trusted literals, it panics on malformed input.
func (c *Calculator) MustParseDate(value string) time.Time {
	t, ok := c.ParseDate(value)
	if !ok {
		panic("rounds: malformed date " + value)
	}
	return t
}

// FormatDate renders t as a date-only string in the calculator's location, or "" for the zero time.
func (c *Calculator) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(c.loc).Format(DateLayout)
}

// CalendarDate re-reads a calendar date, e.g. a DATE column scanned as UTC midnight,
// as midnight of the same day in the calculator's location.
func (c *Calculator) CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}
