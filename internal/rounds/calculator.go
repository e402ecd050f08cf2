package rounds

import (
	"time"
)

const (
	WeeksPerRound = 12
	DaysPerWeek   = 7
	DaysPerRound  = WeeksPerRound * DaysPerWeek

	// Tick is the smallest step between two adjacent spans: a span ends one tick
	// before the next one starts (23:59:59.999 -> 00:00:00.000).
	Tick = time.Millisecond
)

const weekNumberRangeMsg = "Week number must be between 1 and 12"

// InvalidArgumentError signals a call site passing arguments outside the allowed domain.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// Span is an inclusive calendar range: StartDate at local midnight, EndDate at local 23:59:59.999.
type Span struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (s Span) IsZero() bool {
	return s.StartDate.IsZero() && s.EndDate.IsZero()
}

// Contains reports whether t falls within the span, both ends included.
func (s Span) Contains(t time.Time) bool {
	if s.IsZero() || t.IsZero() {
		return false
	}
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}

type Week struct {
	Week int `json:"week"`
	Span
}

// Calculator maps round start dates and week numbers to calendar ranges.
// All day boundaries are computed in its location.
type Calculator struct {
	loc *time.Location
}

// NewCalculator returns a calculator normalizing dates to local midnight in loc.
// A nil loc means the system timezone.
func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{
		loc: loc,
	}
}

func (c *Calculator) Location() *time.Location {
	return c.loc
}

// StartOfDay returns local midnight of t's calendar date. The zero time stays zero.
func (c *Calculator) StartOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// EndOfDay returns 23:59:59.999 of t's calendar date. The zero time stays zero.
func (c *Calculator) EndOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, c.loc).Add(-Tick)
}

// addDays moves t by n calendar days, keeping the wall clock (DST safe).
func (c *Calculator) addDays(t time.Time, n int) time.Time {
	y, m, d := t.In(c.loc).Date()
	hh, mm, ss := t.In(c.loc).Clock()
	return time.Date(y, m, d+n, hh, mm, ss, t.Nanosecond(), c.loc)
}

// WeekBoundaries returns the 7-day span of the given round week (1..12).
func (c *Calculator) WeekBoundaries(roundStart time.Time, week int) (Span, error) {
	if week < 1 || week > WeeksPerRound {
		return Span{}, &InvalidArgumentError{
			Argument: "week",
			Message:  weekNumberRangeMsg,
		}
	}
	if roundStart.IsZero() {
		return Span{}, nil
	}

	start := c.addDays(c.StartOfDay(roundStart), (week-1)*DaysPerWeek)
	return Span{
		StartDate: start,
		EndDate:   c.EndOfDay(c.addDays(start, DaysPerWeek-1)),
	}, nil
}

// RoundDateRange returns the full 84-day span of a round starting at roundStart.
// A zero roundStart yields a zero span, which contains nothing.
func (c *Calculator) RoundDateRange(roundStart time.Time) Span {
	if roundStart.IsZero() {
		return Span{}
	}
	start := c.StartOfDay(roundStart)
	return Span{
		StartDate: start,
		EndDate:   c.EndOfDay(c.addDays(start, DaysPerRound-1)),
	}
}

// EffectiveRange is the round range with an explicit end date overriding the default upper bound.
func (c *Calculator) EffectiveRange(roundStart, roundEnd time.Time) Span {
	span := c.RoundDateRange(roundStart)
	if span.IsZero() || roundEnd.IsZero() {
		return span
	}
	span.EndDate = c.EndOfDay(roundEnd)
	return span
}

// DaysBetween counts calendar days from a to b in the calculator's location.
func (c *Calculator) DaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	// noon UTC avoids DST hours leaking into the day count
	from := time.Date(ay, am, ad, 12, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 12, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// WeekNumberForDate returns the round week containing date, or false when the date
// lies before the round start or past its 84th day.
func (c *Calculator) WeekNumberForDate(roundStart, date time.Time) (int, bool) {
	if roundStart.IsZero() || date.IsZero() {
		return 0, false
	}
	days := c.DaysBetween(roundStart, date)
	if days < 0 || days >= DaysPerRound {
		return 0, false
	}
	return days/DaysPerWeek + 1, true
}

// IsDateInRound checks date against the round window; a zero roundEnd means the
// default 84-day upper bound.
func (c *Calculator) IsDateInRound(date, roundStart, roundEnd time.Time) bool {
	if date.IsZero() || roundStart.IsZero() {
		return false
	}
	return c.EffectiveRange(roundStart, roundEnd).Contains(c.StartOfDay(date))
}

// AllWeeks lists the 12 contiguous weeks of a round.
func (c *Calculator) AllWeeks(roundStart time.Time) []Week {
	weeks := make([]Week, 0, WeeksPerRound)
	for w := 1; w <= WeeksPerRound; w++ {
		// cannot fail, w is always in range
		span, _ := c.WeekBoundaries(roundStart, w)
		weeks = append(weeks, Week{
			Week: w,
			Span: span,
		})
	}
	return weeks
}

// DaysElapsed is the number of calendar days passed since the round start (start day = 0).
func (c *Calculator) DaysElapsed(roundStart, now time.Time) int {
	if roundStart.IsZero() {
		return 0
	}
	return c.DaysBetween(roundStart, now)
}

// CurrentWeek clamps the week of now into 1..12, used for labeling an active round.
func (c *Calculator) CurrentWeek(roundStart, now time.Time) int {
	if roundStart.IsZero() {
		return 0
	}
	days := c.DaysElapsed(roundStart, now)
	switch {
	case days < 0:
		return 1
	case days >= DaysPerRound:
		return WeeksPerRound
	default:
		return days/DaysPerWeek + 1
	}
}
