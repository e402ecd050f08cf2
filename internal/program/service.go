package program

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/roundtracker/internal/events"
	"github.com/2beens/roundtracker/internal/health"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/metrics"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=program_test

var (
	ErrNoRound     = errors.New("no round started")
	ErrMissingDate = errors.New("missing date")
)

// ConflictError rejects a lifecycle change that would make a round reach into the previous one.
type ConflictError struct {
	Isolation rounds.IsolationReport
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("round data conflicts with the previous round: %d conflicts", len(e.Isolation.Conflicts))
}

type roundsRepo interface {
	Latest(ctx context.Context, userKey string) (*rounds.Round, error)
	List(ctx context.Context, userKey string) ([]rounds.Round, error)
	Create(ctx context.Context, userKey string, round rounds.Round) error
	Update(ctx context.Context, userKey string, round rounds.Round) error
	SaveArchive(ctx context.Context, userKey string, archive *rounds.RoundArchive) error
	GetArchive(ctx context.Context, userKey string, number int) (*rounds.RoundArchive, error)
}

type workoutsLister interface {
	List(ctx context.Context, params workouts.ListParams) ([]workouts.Session, error)
}

type healthLister interface {
	List(ctx context.Context, userKey, from, to string) ([]health.Entry, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, evs ...events.Event) error
}

type Service struct {
	repo           roundsRepo
	workouts       workoutsLister
	health         healthLister
	cache          *RoundCache
	validator      *rounds.Validator
	transitions    *rounds.Transitions
	publisher      eventPublisher
	metricsManager *metrics.Manager
	now            func() time.Time
}

type ServiceParams struct {
	Repo           roundsRepo
	Workouts       workoutsLister
	Health         healthLister
	Cache          *RoundCache
	Validator      *rounds.Validator
	Publisher      eventPublisher
	MetricsManager *metrics.Manager
}

func NewService(params ServiceParams) *Service {
	return &Service{
		repo:           params.Repo,
		workouts:       params.Workouts,
		health:         params.Health,
		cache:          params.Cache,
		validator:      params.Validator,
		transitions:    rounds.NewTransitions(params.Validator),
		publisher:      params.Publisher,
		metricsManager: params.MetricsManager,
		now:            time.Now,
	}
}

func (s *Service) Calculator() *rounds.Calculator {
	return s.validator.Calculator()
}

// Current returns the latest round of the user, or nil if none was ever created.
// An active round whose 84 days have passed is completed and archived on the way.
func (s *Service) Current(ctx context.Context, userKey string, now time.Time) (_ *rounds.Round, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.current")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	round, ok := s.cache.Get(userKey)
	span.SetAttributes(attribute.Bool("from-cache", ok))
	if !ok {
		round, err = s.repo.Latest(ctx, userKey)
		if errors.Is(err, ErrRoundNotFound) {
			return nil, nil
		} else if err != nil {
			return nil, fmt.Errorf("get latest round: %w", err)
		}
	}

	if round.IsActive && round.Status(s.Calculator(), now) == rounds.StatusCompleted {
		if err := s.complete(ctx, userKey, round); err != nil {
			return nil, err
		}
	}

	s.cache.Set(userKey, round)
	return round, nil
}

func (s *Service) complete(ctx context.Context, userKey string, round *rounds.Round) error {
	completed := *round
	if err := completed.Complete(s.Calculator()); err != nil {
		return fmt.Errorf("complete round %d: %w", round.Number, err)
	}
	if _, err := s.archive(ctx, userKey, &completed); err != nil {
		return err
	}

	*round = completed
	s.transitioned(ctx, userKey, events.TypeRoundCompleted, round.Number, map[string]any{
		"endDate": s.Calculator().FormatDate(round.EndDate),
	})
	return nil
}

// archive persists the ended round together with its archive record.
func (s *Service) archive(ctx context.Context, userKey string, ended *rounds.Round) (*rounds.RoundArchive, error) {
	ws, hs, err := s.records(ctx, userKey, workouts.ListParams{UserKey: userKey, Round: ended.Number})
	if err != nil {
		return nil, err
	}

	archive, err := s.transitions.ArchiveRoundData(ended, rounds.WorkoutRecords(ws), rounds.Records(hs))
	if err != nil {
		return nil, fmt.Errorf("archive round %d: %w", ended.Number, err)
	}
	if err := s.repo.Update(ctx, userKey, *ended); err != nil {
		return nil, fmt.Errorf("update round %d: %w", ended.Number, err)
	}
	if err := s.repo.SaveArchive(ctx, userKey, archive); err != nil {
		return nil, fmt.Errorf("save archive of round %d: %w", ended.Number, err)
	}
	s.metricsManager.ObserveValidation("archive_workouts", archive.Workouts.Validation)
	s.metricsManager.ObserveValidation("archive_health", archive.HealthData.Validation)
	return archive, nil
}

func (s *Service) records(ctx context.Context, userKey string, params workouts.ListParams) ([]workouts.Session, []health.Entry, error) {
	ws, err := s.workouts.List(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("list workouts: %w", err)
	}
	hs, err := s.health.List(ctx, userKey, "", "")
	if err != nil {
		return nil, nil, fmt.Errorf("list health entries: %w", err)
	}
	return ws, hs, nil
}

// transitioned drops the cached round, counts the transition and publishes its event.
// A failed publish is logged only, the transition itself is already persisted.
func (s *Service) transitioned(ctx context.Context, userKey string, eventType events.Type, round int, payload map[string]any) {
	s.cache.Invalidate(userKey)
	s.metricsManager.CounterRoundTransitions.WithLabelValues(string(eventType)).Inc()
	if err := s.publisher.Publish(ctx, events.New(eventType, userKey, round, payload)); err != nil {
		log.Errorf("failed to publish [%s] for round %d: %s", eventType, round, err)
	}
}

func (s *Service) startedRound(ctx context.Context, userKey string, now time.Time) (*rounds.Round, error) {
	round, err := s.Current(ctx, userKey, now)
	if err != nil {
		return nil, err
	}
	if round == nil || round.StartDate.IsZero() {
		return nil, ErrNoRound
	}
	return round, nil
}

// Start begins a round at startDate. A fresh user gets round 1, a restarted round is
// started again under its number, and a completed round is superseded by the next one.
func (s *Service) Start(ctx context.Context, userKey string, startDate time.Time) (_ *rounds.Round, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if startDate.IsZero() {
		return nil, ErrMissingDate
	}
	calc := s.Calculator()
	startDate = calc.StartOfDay(startDate)

	latest, err := s.Current(ctx, userKey, s.now())
	if err != nil {
		return nil, err
	}

	var (
		round  rounds.Round
		create bool
	)
	switch {
	case latest == nil:
		round = rounds.Round{Number: 1}
		create = true
	case latest.StartDate.IsZero():
		round = *latest
		if err := s.checkPreviousIsolation(ctx, userKey, rounds.Round{Number: round.Number, StartDate: startDate, IsActive: true}); err != nil {
			return nil, err
		}
	case latest.IsActive:
		return nil, rounds.ErrRoundAlreadyStarted
	default:
		round = latest.Next()
		create = true
		if err := s.checkIsolation(ctx, userKey, *latest, rounds.Round{Number: round.Number, StartDate: startDate, IsActive: true}); err != nil {
			return nil, err
		}
	}

	if err := round.Start(startDate); err != nil {
		return nil, err
	}
	if create {
		err = s.repo.Create(ctx, userKey, round)
	} else {
		err = s.repo.Update(ctx, userKey, round)
	}
	if err != nil {
		return nil, fmt.Errorf("store round %d: %w", round.Number, err)
	}

	span.SetAttributes(attribute.Int("round", round.Number))
	s.validator.Journal().Info("round started", map[string]any{
		"round":     round.Number,
		"startDate": calc.FormatDate(startDate),
	})
	s.transitioned(ctx, userKey, events.TypeRoundStarted, round.Number, map[string]any{
		"startDate": calc.FormatDate(startDate),
	})
	return &round, nil
}

func (s *Service) checkIsolation(ctx context.Context, userKey string, historical, next rounds.Round) error {
	ws, hs, err := s.records(ctx, userKey, workouts.ListParams{UserKey: userKey})
	if err != nil {
		return err
	}
	isolation := s.transitions.ValidateRoundDataIsolation(historical, next, rounds.WorkoutRecords(ws), rounds.Records(hs))
	if !isolation.IsValid {
		return &ConflictError{Isolation: isolation}
	}
	return nil
}

// checkPreviousIsolation checks next against the round numbered right before it, if
// there is one.
func (s *Service) checkPreviousIsolation(ctx context.Context, userKey string, next rounds.Round) error {
	if next.Number <= 1 {
		return nil
	}
	rs, err := s.repo.List(ctx, userKey)
	if err != nil {
		return fmt.Errorf("list rounds: %w", err)
	}
	for _, previous := range rs {
		if previous.Number == next.Number-1 {
			return s.checkIsolation(ctx, userKey, previous, next)
		}
	}
	return nil
}

type StartDateChange struct {
	Round  *rounds.Round                 `json:"round"`
	Report *rounds.StartDateChangeReport `json:"report"`
}

// ChangeStartDate moves the start of the active round. Stored week tags of workouts are
// left as they are; the report lists the records whose week or membership changed.
func (s *Service) ChangeStartDate(ctx context.Context, userKey string, newStart time.Time) (_ *StartDateChange, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.changestartdate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if newStart.IsZero() {
		return nil, ErrMissingDate
	}
	calc := s.Calculator()
	newStart = calc.StartOfDay(newStart)

	round, err := s.startedRound(ctx, userKey, s.now())
	if err != nil {
		return nil, err
	}
	oldStart := round.StartDate
	edited := *round
	if err := edited.EditStartDate(newStart); err != nil {
		return nil, err
	}

	ws, hs, err := s.records(ctx, userKey, workouts.ListParams{UserKey: userKey, Round: round.Number})
	if err != nil {
		return nil, err
	}
	report, err := s.transitions.HandleRoundStartDateChange(oldStart, newStart, rounds.WorkoutRecords(ws), rounds.Records(hs))
	if err != nil {
		return nil, fmt.Errorf("recalculate round %d: %w", round.Number, err)
	}

	if err := s.checkPreviousIsolation(ctx, userKey, edited); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, userKey, edited); err != nil {
		return nil, fmt.Errorf("update round %d: %w", edited.Number, err)
	}
	s.metricsManager.ObserveValidation("start_date_change", report.Workouts)

	s.transitioned(ctx, userKey, events.TypeRoundStartDateChanged, edited.Number, map[string]any{
		"oldStartDate": calc.FormatDate(oldStart),
		"newStartDate": calc.FormatDate(newStart),
		"shiftDays":    report.ShiftDays,
	})
	return &StartDateChange{
		Round:  &edited,
		Report: report,
	}, nil
}

// End terminates the active round at endDate and archives its data.
func (s *Service) End(ctx context.Context, userKey string, endDate time.Time) (_ *rounds.RoundArchive, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.end")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if endDate.IsZero() {
		return nil, ErrMissingDate
	}
	calc := s.Calculator()

	round, err := s.startedRound(ctx, userKey, s.now())
	if err != nil {
		return nil, err
	}
	ended := *round
	if err := ended.End(calc, calc.StartOfDay(endDate)); err != nil {
		return nil, err
	}

	archive, err := s.archive(ctx, userKey, &ended)
	if err != nil {
		return nil, err
	}

	s.transitioned(ctx, userKey, events.TypeRoundEnded, ended.Number, map[string]any{
		"endDate": calc.FormatDate(ended.EndDate),
	})
	return archive, nil
}

// Restart resets the active round to not started, keeping its number and logged data.
func (s *Service) Restart(ctx context.Context, userKey string) (_ *rounds.Round, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.restart")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	round, err := s.startedRound(ctx, userKey, s.now())
	if err != nil {
		return nil, err
	}
	if !round.IsActive {
		return nil, rounds.ErrRoundEnded
	}

	restarted := *round
	restarted.Restart()
	if err := s.repo.Update(ctx, userKey, restarted); err != nil {
		return nil, fmt.Errorf("update round %d: %w", restarted.Number, err)
	}

	s.validator.Journal().Warn("round restarted", map[string]any{"round": restarted.Number})
	s.transitioned(ctx, userKey, events.TypeRoundRestarted, restarted.Number, nil)
	return &restarted, nil
}

func (s *Service) List(ctx context.Context, userKey string) (_ []rounds.Round, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// completes an elapsed round first, so the list reflects it
	if _, err := s.Current(ctx, userKey, s.now()); err != nil {
		return nil, err
	}
	rs, err := s.repo.List(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return rs, nil
}

type RoundWeeks struct {
	Round       *rounds.Round `json:"round"`
	Status      rounds.Status `json:"status"`
	CurrentWeek int           `json:"currentWeek"`
	DaysElapsed int           `json:"daysElapsed"`
	Range       rounds.Span   `json:"range"`
	Weeks       []rounds.Week `json:"weeks"`
}

func (s *Service) Weeks(ctx context.Context, userKey string) (*RoundWeeks, error) {
	now := s.now()
	round, err := s.startedRound(ctx, userKey, now)
	if err != nil {
		return nil, err
	}

	calc := s.Calculator()
	return &RoundWeeks{
		Round:       round,
		Status:      round.Status(calc, now),
		CurrentWeek: calc.CurrentWeek(round.StartDate, now),
		DaysElapsed: calc.DaysElapsed(round.StartDate, now),
		Range:       calc.EffectiveRange(round.StartDate, round.EndDate),
		Weeks:       calc.AllWeeks(round.StartDate),
	}, nil
}

type Consistency struct {
	Report   rounds.ConsistencyReport `json:"report"`
	Message  string                   `json:"message,omitempty"`
	Fallback *rounds.Fallback         `json:"fallback,omitempty"`
}

// Consistency validates the round context and the current round's data. Without a
// usable round context the caller gets round fallback data instead of classifications.
func (s *Service) Consistency(ctx context.Context, userKey string) (_ *Consistency, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.consistency")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.now()
	round, err := s.Current(ctx, userKey, now)
	if err != nil {
		return nil, err
	}

	in := rounds.ConsistencyInput{}
	if round != nil && !round.StartDate.IsZero() {
		rc := round.Context(s.Calculator(), now)
		in.RoundContext = &rc

		ws, err := s.workouts.List(ctx, workouts.ListParams{UserKey: userKey, Round: round.Number})
		if err != nil {
			return nil, fmt.Errorf("list workouts: %w", err)
		}
		hs, err := s.health.List(ctx, userKey, s.Calculator().FormatDate(round.StartDate), "")
		if err != nil {
			return nil, fmt.Errorf("list health entries: %w", err)
		}
		in.Workouts = rounds.WorkoutRecords(ws)
		in.HealthData = rounds.Records(hs)
	}

	report := s.validator.ValidateDataConsistency(in)
	s.metricsManager.ObserveValidation("consistency", report.Overall)

	result := &Consistency{
		Report:  report,
		Message: rounds.FriendlyErrorMessage(report.Overall, "round data"),
	}
	if !report.RoundContext.IsValid {
		fallback := rounds.CreateFallbackData(rounds.FallbackRound)
		result.Fallback = &fallback
	}
	return result, nil
}

// Integrity checks all rounds of the user against all logged data.
func (s *Service) Integrity(ctx context.Context, userKey string) (_ *rounds.IntegrityReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.rounds.integrity")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rs, err := s.repo.List(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	ws, hs, err := s.records(ctx, userKey, workouts.ListParams{UserKey: userKey})
	if err != nil {
		return nil, err
	}

	report := s.transitions.ValidateDataIntegrityAcrossRounds(rs, rounds.WorkoutRecords(ws), rounds.Records(hs))
	return &report, nil
}

// Archive returns the stored archive of an ended round.
func (s *Service) Archive(ctx context.Context, userKey string, number int) (*rounds.RoundArchive, error) {
	archive, err := s.repo.GetArchive(ctx, userKey, number)
	if err != nil {
		return nil, fmt.Errorf("get archive of round %d: %w", number, err)
	}
	return archive, nil
}

// Journal returns the consistency journal, optionally filtered by level.
func (s *Service) Journal(level rounds.Level) []rounds.JournalEntry {
	if level == "" {
		return s.validator.Journal().Entries()
	}
	return s.validator.Journal().ByLevel(level)
}
