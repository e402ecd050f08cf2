package stats

import (
	"math"
	"time"

	"github.com/2beens/roundtracker/internal/health"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/workouts"
)

const (
	workoutsWeight = 0.6
	stepsWeight    = 0.4
	maxRating      = 10.0
)

// Goals are the per-user targets the round rating is measured against.
type Goals struct {
	PlannedSessionsPerWeek int `json:"plannedSessionsPerWeek"`
	DailyStepsGoal         int `json:"dailyStepsGoal"`
}

// WeekStats aggregates one round week. Sessions counts distinct training days,
// Sets counts logged sets.
type WeekStats struct {
	rounds.Week
	Sessions      int     `json:"sessions"`
	Sets          int     `json:"sets"`
	Volume        float64 `json:"volume"`
	HealthDays    int     `json:"healthDays"`
	AverageSteps  float64 `json:"averageSteps"`
	AverageWeight float64 `json:"averageWeight"`
}

type RoundStats struct {
	Round            int           `json:"round"`
	Status           rounds.Status `json:"status"`
	CurrentWeek      int           `json:"currentWeek"`
	WeeksCounted     int           `json:"weeksCounted"`
	Weeks            []WeekStats   `json:"weeks"`
	TotalSessions    int           `json:"totalSessions"`
	TotalVolume      float64       `json:"totalVolume"`
	AverageSteps     float64       `json:"averageSteps"`
	WorkoutAdherence float64       `json:"workoutAdherence"`
	StepAdherence    float64       `json:"stepAdherence"`
	Rating           float64       `json:"rating"`
	Goals            Goals         `json:"goals"`

	// records outside the round window that were left out
	ExcludedWorkouts int `json:"excludedWorkouts"`
	ExcludedHealth   int `json:"excludedHealth"`
}

type weekAcc struct {
	days        map[string]struct{}
	sets        int
	volume      float64
	steps       int
	weights     float64
	weightDays  int
	healthDays  int
	stepsScores float64
}

// Compute builds the weekly breakdown and rating of a started round at now.
// Records outside the round's effective range are not counted.
func Compute(calc *rounds.Calculator, round rounds.Round, now time.Time, ws []workouts.Session, hs []health.Entry, goals Goals) RoundStats {
	st := RoundStats{
		Round:       round.Number,
		Status:      round.Status(calc, now),
		CurrentWeek: calc.CurrentWeek(round.StartDate, now),
		Goals:       goals,
	}

	filteredWorkouts := rounds.FilterByRound(calc, ws, round.StartDate, round.EndDate)
	filteredHealth := rounds.FilterByRound(calc, hs, round.StartDate, round.EndDate)
	st.ExcludedWorkouts = len(filteredWorkouts.Excluded)
	st.ExcludedHealth = len(filteredHealth.Excluded)

	accs := make([]weekAcc, rounds.WeeksPerRound)
	for i := range accs {
		accs[i].days = make(map[string]struct{})
	}

	for _, s := range filteredWorkouts.Filtered {
		date, _ := calc.ParseDate(s.Date)
		week, ok := calc.WeekNumberForDate(round.StartDate, date)
		if !ok {
			continue
		}
		acc := &accs[week-1]
		acc.days[calc.FormatDate(date)] = struct{}{}
		acc.sets++
		acc.volume += s.Volume()
	}

	for _, e := range filteredHealth.Filtered {
		date, _ := calc.ParseDate(e.Date)
		week, ok := calc.WeekNumberForDate(round.StartDate, date)
		if !ok {
			continue
		}
		acc := &accs[week-1]
		acc.healthDays++
		acc.steps += e.Steps
		if e.Weight > 0 {
			acc.weights += e.Weight
			acc.weightDays++
		}
		if goals.DailyStepsGoal > 0 {
			acc.stepsScores += math.Min(1, float64(e.Steps)/float64(goals.DailyStepsGoal))
		}
	}

	st.WeeksCounted = weeksCounted(calc, round, st.Status, now)

	var (
		totalSteps      int
		totalHealthDays int
		workoutScore    float64
		stepsScore      float64
	)
	for i, week := range calc.AllWeeks(round.StartDate) {
		acc := accs[i]
		weekStats := WeekStats{
			Week:       week,
			Sessions:   len(acc.days),
			Sets:       acc.sets,
			Volume:     acc.volume,
			HealthDays: acc.healthDays,
		}
		if acc.healthDays > 0 {
			weekStats.AverageSteps = round1(float64(acc.steps) / float64(acc.healthDays))
		}
		if acc.weightDays > 0 {
			weekStats.AverageWeight = round1(acc.weights / float64(acc.weightDays))
		}
		st.Weeks = append(st.Weeks, weekStats)

		st.TotalSessions += weekStats.Sessions
		st.TotalVolume += weekStats.Volume
		totalSteps += acc.steps
		totalHealthDays += acc.healthDays

		if week.Week > st.WeeksCounted {
			continue
		}
		if goals.PlannedSessionsPerWeek > 0 {
			workoutScore += math.Min(1, float64(weekStats.Sessions)/float64(goals.PlannedSessionsPerWeek))
		}
		stepsScore += acc.stepsScores
	}

	if totalHealthDays > 0 {
		st.AverageSteps = round1(float64(totalSteps) / float64(totalHealthDays))
	}
	if st.WeeksCounted > 0 {
		st.WorkoutAdherence = round2(workoutScore / float64(st.WeeksCounted))
		// missing health days count as zero steps
		st.StepAdherence = round2(stepsScore / float64(st.WeeksCounted*rounds.DaysPerWeek))
	}
	st.Rating = Rating(st.WorkoutAdherence, st.StepAdherence)

	return st
}

// Rating weighs workout adherence over step adherence, both in 0..1, into a 0..10 score.
func Rating(workoutAdherence, stepAdherence float64) float64 {
	score := workoutsWeight*clamp01(workoutAdherence) + stepsWeight*clamp01(stepAdherence)
	return round1(score * maxRating)
}

// weeksCounted is the number of round weeks the adherence is averaged over: the weeks
// reached so far, or the weeks up to the end date of an ended round.
func weeksCounted(calc *rounds.Calculator, round rounds.Round, status rounds.Status, now time.Time) int {
	switch {
	case status == rounds.StatusNotStarted:
		return 0
	case !round.EndDate.IsZero():
		if week, ok := calc.WeekNumberForDate(round.StartDate, round.EndDate); ok {
			return week
		}
		return rounds.WeeksPerRound
	case status == rounds.StatusCompleted:
		return rounds.WeeksPerRound
	default:
		return calc.CurrentWeek(round.StartDate, now)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
