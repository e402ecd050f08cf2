package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/roundtracker/internal/events"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/metrics"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=health_test

var (
	ErrNoRound     = errors.New("no started round")
	ErrInvalidDate = errors.New("invalid date")
)

type entriesRepo interface {
	Upsert(ctx context.Context, userKey string, entries []Entry) error
	List(ctx context.Context, userKey, from, to string) ([]Entry, error)
}

type bridgeClient interface {
	Fetch(ctx context.Context, userKey, from, to string) ([]Entry, error)
}

// roundProvider returns the user's latest round, or nil when none was ever created.
type roundProvider interface {
	Current(ctx context.Context, userKey string, now time.Time) (*rounds.Round, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, evs ...events.Event) error
}

type SyncResult struct {
	Round      int                     `json:"round"`
	From       string                  `json:"from"`
	To         string                  `json:"to"`
	Fetched    int                     `json:"fetched"`
	Stored     int                     `json:"stored"`
	Excluded   int                     `json:"excluded"`
	Validation rounds.ValidationResult `json:"validation"`
	Message    string                  `json:"message,omitempty"`
}

type Service struct {
	repo           entriesRepo
	bridge         bridgeClient
	rounds         roundProvider
	validator      *rounds.Validator
	publisher      eventPublisher
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo entriesRepo,
	bridge bridgeClient,
	roundProvider roundProvider,
	validator *rounds.Validator,
	publisher eventPublisher,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		bridge:         bridge,
		rounds:         roundProvider,
		validator:      validator,
		publisher:      publisher,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) window(ctx context.Context, userKey string, now time.Time) (*rounds.Round, rounds.Span, error) {
	round, err := s.rounds.Current(ctx, userKey, now)
	if err != nil {
		return nil, rounds.Span{}, fmt.Errorf("get current round: %w", err)
	}
	if round == nil || round.StartDate.IsZero() {
		return nil, rounds.Span{}, ErrNoRound
	}
	return round, s.validator.Calculator().EffectiveRange(round.StartDate, round.EndDate), nil
}

// Sync pulls the current round's window from the bridge, classifies what came back
// and stores only the entries inside the round.
func (s *Service) Sync(ctx context.Context, userKey string) (_ *SyncResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.health.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		status := "ok"
		if err != nil {
			status = "failed"
		}
		s.metricsManager.CounterHealthSyncs.WithLabelValues(status).Inc()
	}()

	now := s.now()
	calc := s.validator.Calculator()
	round, window, err := s.window(ctx, userKey, now)
	if err != nil {
		return nil, err
	}

	to := window.EndDate
	if today := calc.EndOfDay(now); today.Before(to) {
		to = today
	}
	from, toStr := calc.FormatDate(window.StartDate), calc.FormatDate(to)
	span.SetAttributes(attribute.Int("round", round.Number), attribute.String("from", from), attribute.String("to", toStr))

	fetched, err := s.bridge.Fetch(ctx, userKey, from, toStr)
	if err != nil {
		s.validator.Journal().Error("health sync failed", map[string]any{"round": round.Number, "error": err.Error()})
		return nil, fmt.Errorf("fetch health data: %w", err)
	}

	validation := s.validator.ClassifyHealthRecords(rounds.Records(fetched), round.StartDate, round.EndDate)
	s.metricsManager.ObserveValidation("health", validation)
	filtered := rounds.FilterByRound(calc, fetched, round.StartDate, round.EndDate)

	if err := s.repo.Upsert(ctx, userKey, filtered.Filtered); err != nil {
		return nil, fmt.Errorf("store health data: %w", err)
	}
	s.metricsManager.HistogramSyncedEntries.Observe(float64(len(filtered.Filtered)))

	result := &SyncResult{
		Round:      round.Number,
		From:       from,
		To:         toStr,
		Fetched:    len(fetched),
		Stored:     len(filtered.Filtered),
		Excluded:   len(filtered.Excluded),
		Validation: validation,
		Message:    rounds.FriendlyErrorMessage(validation, "health data"),
	}

	s.validator.Journal().Info("health sync completed", map[string]any{
		"round":    round.Number,
		"fetched":  result.Fetched,
		"stored":   result.Stored,
		"excluded": result.Excluded,
	})

	if err := s.publisher.Publish(ctx, events.New(events.TypeHealthSynced, userKey, round.Number, map[string]any{
		"from":   from,
		"to":     toStr,
		"stored": result.Stored,
	})); err != nil {
		log.Errorf("failed to publish health sync event for round %d: %s", round.Number, err)
	}

	return result, nil
}

// List returns stored entries, defaulting to the current round's window.
func (s *Service) List(ctx context.Context, userKey, from, to string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.health.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	calc := s.validator.Calculator()
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, ok := calc.ParseDate(d); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
	}

	if from == "" && to == "" {
		_, window, err := s.window(ctx, userKey, s.now())
		if err != nil && !errors.Is(err, ErrNoRound) {
			return nil, err
		}
		if err == nil {
			from, to = calc.FormatDate(window.StartDate), calc.FormatDate(window.EndDate)
		}
	}

	entries, err := s.repo.List(ctx, userKey, from, to)
	if err != nil {
		return nil, fmt.Errorf("list health entries: %w", err)
	}
	return entries, nil
}
