package rounds

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrRoundAlreadyStarted = errors.New("round already started")
	ErrRoundNotStarted     = errors.New("round not started")
	ErrRoundEnded          = errors.New("round already ended")
	ErrEndBeforeStart      = errors.New("round end date before start date")
	ErrEndAfterRoundEnd    = errors.New("round end date after the last day of the round")
)

// Status of a round: NotStarted -> Active -> Completed, then superseded by the next round.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusActive     Status = "active"
	StatusCompleted  Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

// Round is one 12-week program run. EndDate stays zero while the round is active and
// only gets set on early termination or completion.
type Round struct {
	Number    int       `json:"round"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
}

// Status derives the lifecycle state at now. An active round whose 84 days have
// elapsed counts as completed even before it is persisted as such.
func (r Round) Status(calc *Calculator, now time.Time) Status {
	switch {
	case r.StartDate.IsZero():
		return StatusNotStarted
	case !r.IsActive:
		return StatusCompleted
	case calc.DaysElapsed(r.StartDate, now) >= DaysPerRound:
		return StatusCompleted
	default:
		return StatusActive
	}
}

// Start moves a not-started round to active.
func (r *Round) Start(date time.Time) error {
	if !r.StartDate.IsZero() {
		return ErrRoundAlreadyStarted
	}
	if date.IsZero() {
		return ErrMissingStartDate
	}
	r.StartDate = date
	r.EndDate = time.Time{}
	r.IsActive = true
	return nil
}

// EditStartDate moves the start of an active round. Boundaries of all records have to
// be recomputed afterwards, see Transitions.HandleRoundStartDateChange.
func (r *Round) EditStartDate(date time.Time) error {
	if r.StartDate.IsZero() {
		return ErrRoundNotStarted
	}
	if !r.IsActive {
		return ErrRoundEnded
	}
	if date.IsZero() {
		return ErrMissingStartDate
	}
	r.StartDate = date
	return nil
}

// End terminates an active round at the given date, which can not lie past the last
// regular day of the round.
func (r *Round) End(calc *Calculator, date time.Time) error {
	if r.StartDate.IsZero() {
		return ErrRoundNotStarted
	}
	if !r.IsActive {
		return ErrRoundEnded
	}
	if date.Before(r.StartDate) {
		return ErrEndBeforeStart
	}
	if date.After(calc.RoundDateRange(r.StartDate).EndDate) {
		return ErrEndAfterRoundEnd
	}
	r.EndDate = date
	r.IsActive = false
	return nil
}

// Complete ends the round on its last regular day (start + 83 days).
func (r *Round) Complete(calc *Calculator) error {
	if r.StartDate.IsZero() {
		return ErrRoundNotStarted
	}
	return r.End(calc, calc.StartOfDay(calc.RoundDateRange(r.StartDate).EndDate))
}

// Restart resets the round to not started. The number is kept, and so is any history
// logged under it.
func (r *Round) Restart() {
	r.StartDate = time.Time{}
	r.EndDate = time.Time{}
	r.IsActive = false
}

// Next is the not-started round superseding r.
func (r Round) Next() Round {
	return Round{
		Number: r.Number + 1,
	}
}

// Context is the round state consumers render against at now.
func (r Round) Context(calc *Calculator, now time.Time) RoundContext {
	return RoundContext{
		CurrentRound:   r.Number,
		CurrentWeek:    calc.CurrentWeek(r.StartDate, now),
		RoundStartDate: r.StartDate,
		RoundEndDate:   r.EndDate,
		IsActive:       r.IsActive,
	}
}

type roundJSON struct {
	Number    int        `json:"round"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsActive  bool       `json:"isActive"`
}

// MarshalJSON renders unset dates as null.
func (r Round) MarshalJSON() ([]byte, error) {
	return json.Marshal(roundJSON{
		Number:    r.Number,
		StartDate: timePtr(r.StartDate),
		EndDate:   timePtr(r.EndDate),
		IsActive:  r.IsActive,
	})
}

func (r *Round) UnmarshalJSON(data []byte) error {
	var rj roundJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return err
	}
	r.Number = rj.Number
	r.IsActive = rj.IsActive
	r.StartDate = time.Time{}
	r.EndDate = time.Time{}
	if rj.StartDate != nil {
		r.StartDate = *rj.StartDate
	}
	if rj.EndDate != nil {
		r.EndDate = *rj.EndDate
	}
	return nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
