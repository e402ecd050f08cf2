package workouts

import (
	"errors"
	"fmt"
	"math"
)

// double progression: add reps inside the range, add weight once every working set tops it
const (
	RepRangeLow   = 8
	RepRangeHigh  = 12
	KiloIncrement = 2.5
)

var ErrNoHistory = errors.New("no history for exercise")

type Suggestion struct {
	Exercise  string  `json:"exercise"`
	BasedOn   string  `json:"basedOn"`
	Sets      int     `json:"sets"`
	LastKilos float64 `json:"lastKilos"`
	LastReps  int     `json:"lastReps"`
	Kilos     float64 `json:"kilos"`
	Reps      int     `json:"reps"`
	Reason    string  `json:"reason"`
}

// SuggestNext derives the next target from the sets of the last day an exercise was trained.
// Only the sets at the day's top weight count as working sets.
func SuggestNext(exercise string, lastDay []Session) (*Suggestion, error) {
	if len(lastDay) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHistory, exercise)
	}

	topKilos := lastDay[0].Kilos
	for _, s := range lastDay[1:] {
		topKilos = math.Max(topKilos, s.Kilos)
	}

	sets := 0
	minReps := math.MaxInt
	for _, s := range lastDay {
		if s.Kilos != topKilos {
			continue
		}
		sets++
		minReps = min(minReps, s.Reps)
	}

	suggestion := &Suggestion{
		Exercise:  exercise,
		BasedOn:   lastDay[0].Date,
		Sets:      sets,
		LastKilos: topKilos,
		LastReps:  minReps,
		Kilos:     topKilos,
	}

	switch {
	case topKilos == 0:
		suggestion.Reps = minReps + 1
		suggestion.Reason = "bodyweight exercise, add a rep"
	case minReps >= RepRangeHigh:
		suggestion.Kilos = topKilos + KiloIncrement
		suggestion.Reps = RepRangeLow
		suggestion.Reason = fmt.Sprintf("all %d sets reached %d reps, add weight", sets, RepRangeHigh)
	case minReps < RepRangeLow:
		suggestion.Reps = RepRangeLow
		suggestion.Reason = fmt.Sprintf("keep the weight until every set reaches %d reps", RepRangeLow)
	default:
		suggestion.Reps = minReps + 1
		suggestion.Reason = "keep the weight, add a rep"
	}

	return suggestion, nil
}
