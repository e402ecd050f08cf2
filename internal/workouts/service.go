package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

var (
	ErrInvalidSession = errors.New("invalid workout session")
	ErrNoActiveRound  = errors.New("no active round")
	ErrOutsideRound   = errors.New("session date outside the current round")
)

type sessionsRepo interface {
	Add(ctx context.Context, session Session) (*Session, error)
	Delete(ctx context.Context, userKey string, id int) error
	List(ctx context.Context, params ListParams) ([]Session, error)
	LastSessionDay(ctx context.Context, userKey, exercise string) ([]Session, error)
}

// roundProvider returns the user's latest round, or nil when none was ever created.
type roundProvider interface {
	Current(ctx context.Context, userKey string, now time.Time) (*rounds.Round, error)
}

type Service struct {
	repo   sessionsRepo
	rounds roundProvider
	calc   *rounds.Calculator
	now    func() time.Time
}

func NewService(repo sessionsRepo, roundProvider roundProvider, calc *rounds.Calculator) *Service {
	return &Service{
		repo:   repo,
		rounds: roundProvider,
		calc:   calc,
		now:    time.Now,
	}
}

// Log stores a set in the active round, stamping the round number and the week
// its date falls in.
func (s *Service) Log(ctx context.Context, userKey string, ns NewSession) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise := strings.TrimSpace(ns.Exercise)
	if exercise == "" {
		return nil, fmt.Errorf("%w: exercise empty", ErrInvalidSession)
	}
	if ns.Reps <= 0 || ns.Kilos < 0 {
		return nil, fmt.Errorf("%w: reps must be positive and kilos not negative", ErrInvalidSession)
	}

	now := s.now()
	date := s.calc.StartOfDay(now)
	if ns.Date != "" {
		parsed, ok := s.calc.ParseDate(ns.Date)
		if !ok {
			return nil, fmt.Errorf("%w: malformed date %q", ErrInvalidSession, ns.Date)
		}
		date = s.calc.StartOfDay(parsed)
	}
	if date.After(now) {
		return nil, fmt.Errorf("%w: date %s is in the future", ErrInvalidSession, s.calc.FormatDate(date))
	}

	round, err := s.rounds.Current(ctx, userKey, now)
	if err != nil {
		return nil, fmt.Errorf("get current round: %w", err)
	}
	if round == nil || round.Status(s.calc, now) != rounds.StatusActive {
		return nil, ErrNoActiveRound
	}
	if !s.calc.IsDateInRound(date, round.StartDate, round.EndDate) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRound, s.calc.FormatDate(date))
	}
	week, _ := s.calc.WeekNumberForDate(round.StartDate, date)
	span.SetAttributes(attribute.Int("round", round.Number), attribute.Int("week", week))

	session, err := s.repo.Add(ctx, Session{
		UserKey:  userKey,
		Exercise: exercise,
		Kilos:    ns.Kilos,
		Reps:     ns.Reps,
		Date:     s.calc.FormatDate(date),
		Round:    round.Number,
		Week:     week,
	})
	if err != nil {
		return nil, fmt.Errorf("add session: %w", err)
	}
	return session, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	for _, d := range []string{params.From, params.To} {
		if d == "" {
			continue
		}
		if _, ok := s.calc.ParseDate(d); !ok {
			return nil, fmt.Errorf("%w: malformed date %q", ErrInvalidSession, d)
		}
	}

	sessions, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *Service) Delete(ctx context.Context, userKey string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.Delete(ctx, userKey, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}

func (s *Service) Suggest(ctx context.Context, userKey, exercise string) (_ *Suggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.suggest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exercise))

	lastDay, err := s.repo.LastSessionDay(ctx, userKey, exercise)
	if err != nil {
		return nil, fmt.Errorf("last session day: %w", err)
	}
	return SuggestNext(exercise, lastDay)
}
