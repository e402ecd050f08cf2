package rounds

import "fmt"

type FallbackKind string

const (
	FallbackHealth  FallbackKind = "health"
	FallbackWorkout FallbackKind = "workout"
	FallbackStats   FallbackKind = "stats"
	FallbackRound   FallbackKind = "round"
)

func (k FallbackKind) IsValid() bool {
	switch k {
	case FallbackHealth, FallbackWorkout, FallbackStats, FallbackRound:
		return true
	default:
		return false
	}
}

type HealthPlaceholder struct {
	Steps  int     `json:"steps"`
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
}

type WorkoutPlaceholder struct {
	Sessions []string `json:"sessions"`
	Volume   float64  `json:"volume"`
	Week     int      `json:"week"`
}

type StatsPlaceholder struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	AverageSteps  float64 `json:"averageSteps"`
	Rating        float64 `json:"rating"`
	Weeks         []Week  `json:"weeks"`
}

type RoundPlaceholder struct {
	Round       int  `json:"round"`
	CurrentWeek int  `json:"currentWeek"`
	IsActive    bool `json:"isActive"`
}

// Fallback is the placeholder rendered when no round context is available.
// Exactly one of the payload fields is set, matching Kind.
type Fallback struct {
	Kind    FallbackKind        `json:"kind"`
	Message string              `json:"message"`
	Health  *HealthPlaceholder  `json:"health,omitempty"`
	Workout *WorkoutPlaceholder `json:"workout,omitempty"`
	Stats   *StatsPlaceholder   `json:"stats,omitempty"`
	Round   *RoundPlaceholder   `json:"round,omitempty"`
}

// CreateFallbackData returns zeroed placeholder data for kind. Unknown kinds get an
// empty payload and a generic message.
func CreateFallbackData(kind FallbackKind) Fallback {
	fb := Fallback{Kind: kind}
	switch kind {
	case FallbackHealth:
		fb.Health = &HealthPlaceholder{}
		fb.Message = "No health data available for the current round."
	case FallbackWorkout:
		fb.Workout = &WorkoutPlaceholder{Sessions: []string{}}
		fb.Message = "No workouts logged in the current round yet."
	case FallbackStats:
		fb.Stats = &StatsPlaceholder{Weeks: []Week{}}
		fb.Message = "Statistics will appear once a round is started."
	case FallbackRound:
		fb.Round = &RoundPlaceholder{}
		fb.Message = "No active round. Start a round to begin tracking."
	default:
		fb.Message = fmt.Sprintf("No %s data available.", kind)
	}
	return fb
}
