package workouts

import (
	"strconv"
	"time"
)

// Session is one logged set. Round and Week are stamped at creation from the
// active round and never rewritten, even if the round start moves later.
type Session struct {
	ID        int       `json:"id"`
	UserKey   string    `json:"-"`
	Exercise  string    `json:"exercise"`
	Kilos     float64   `json:"kilos"`
	Reps      int       `json:"reps"`
	Date      string    `json:"date"`
	Round     int       `json:"round"`
	Week      int       `json:"week"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Session) RecordID() string {
	return strconv.Itoa(s.ID)
}

func (s Session) RecordDate() string {
	return s.Date
}

func (s Session) StoredRound() int {
	return s.Round
}

func (s Session) StoredWeek() int {
	return s.Week
}

func (s Session) Volume() float64 {
	return s.Kilos * float64(s.Reps)
}

type NewSession struct {
	Exercise string  `json:"exercise"`
	Kilos    float64 `json:"kilos"`
	Reps     int     `json:"reps"`
	// Date defaults to today when empty
	Date string `json:"date"`
}
