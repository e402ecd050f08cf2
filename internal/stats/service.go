package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/roundtracker/internal/health"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/internal/workouts"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=stats_test

var ErrNoRound = errors.New("no round started")

type roundProvider interface {
	Current(ctx context.Context, userKey string, now time.Time) (*rounds.Round, error)
}

type workoutsLister interface {
	List(ctx context.Context, params workouts.ListParams) ([]workouts.Session, error)
}

type healthLister interface {
	List(ctx context.Context, userKey, from, to string) ([]health.Entry, error)
}

type Analyzer struct {
	rounds   roundProvider
	workouts workoutsLister
	health   healthLister
	calc     *rounds.Calculator
	goals    Goals
	now      func() time.Time
}

func NewAnalyzer(
	roundProvider roundProvider,
	workoutsLister workoutsLister,
	healthLister healthLister,
	calc *rounds.Calculator,
	goals Goals,
) *Analyzer {
	return &Analyzer{
		rounds:   roundProvider,
		workouts: workoutsLister,
		health:   healthLister,
		calc:     calc,
		goals:    goals,
		now:      time.Now,
	}
}

// CurrentRound computes the statistics of the user's current round.
func (a *Analyzer) CurrentRound(ctx context.Context, userKey string) (_ *RoundStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.current-round")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.now()
	round, err := a.rounds.Current(ctx, userKey, now)
	if err != nil {
		return nil, fmt.Errorf("get current round: %w", err)
	}
	if round == nil || round.StartDate.IsZero() {
		return nil, ErrNoRound
	}
	span.SetAttributes(attribute.Int("round", round.Number))

	ws, err := a.workouts.List(ctx, workouts.ListParams{UserKey: userKey, Round: round.Number})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	window := a.calc.EffectiveRange(round.StartDate, round.EndDate)
	hs, err := a.health.List(ctx, userKey, a.calc.FormatDate(window.StartDate), a.calc.FormatDate(window.EndDate))
	if err != nil {
		return nil, fmt.Errorf("list health entries: %w", err)
	}

	st := Compute(a.calc, *round, now, ws, hs, a.goals)
	return &st, nil
}
