package program

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/roundtracker/internal/identity"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=program_test

type roundsService interface {
	Current(ctx context.Context, userKey string, now time.Time) (*rounds.Round, error)
	List(ctx context.Context, userKey string) ([]rounds.Round, error)
	Start(ctx context.Context, userKey string, startDate time.Time) (*rounds.Round, error)
	ChangeStartDate(ctx context.Context, userKey string, newStart time.Time) (*StartDateChange, error)
	End(ctx context.Context, userKey string, endDate time.Time) (*rounds.RoundArchive, error)
	Restart(ctx context.Context, userKey string) (*rounds.Round, error)
	Weeks(ctx context.Context, userKey string) (*RoundWeeks, error)
	Consistency(ctx context.Context, userKey string) (*Consistency, error)
	Integrity(ctx context.Context, userKey string) (*rounds.IntegrityReport, error)
	Journal(level rounds.Level) []rounds.JournalEntry
}

type DateRequest struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type CurrentResponse struct {
	Round    *rounds.Round        `json:"round"`
	Status   rounds.Status        `json:"status"`
	Context  *rounds.RoundContext `json:"context,omitempty"`
	Fallback *rounds.Fallback     `json:"fallback,omitempty"`
}

type ConflictResponse struct {
	Error     string                 `json:"error"`
	Isolation rounds.IsolationReport `json:"isolation"`
}

type Handler struct {
	service roundsService
	calc    *rounds.Calculator
	now     func() time.Time
}

func NewHandler(service roundsService, calc *rounds.Calculator) *Handler {
	return &Handler{
		service: service,
		calc:    calc,
		now:     time.Now,
	}
}

func (handler *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.current")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	now := handler.now()
	round, err := handler.service.Current(ctx, userKey, now)
	if err != nil {
		handler.writeError(w, "get current round", err)
		return
	}

	resp := CurrentResponse{
		Round:  round,
		Status: rounds.StatusNotStarted,
	}
	if round != nil {
		resp.Status = round.Status(handler.calc, now)
	}
	if resp.Status == rounds.StatusNotStarted {
		fallback := rounds.CreateFallbackData(rounds.FallbackRound)
		resp.Fallback = &fallback
	} else {
		rc := round.Context(handler.calc, now)
		resp.Context = &rc
	}

	handler.writeJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.list")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	rs, err := handler.service.List(ctx, userKey)
	if err != nil {
		handler.writeError(w, "list rounds", err)
		return
	}
	if rs == nil {
		rs = []rounds.Round{}
	}

	handler.writeJSON(w, rs, http.StatusOK)
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.start")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	req, ok := handler.readDateRequest(w, r)
	if !ok {
		return
	}
	startDate, ok := handler.parseDate(w, req.StartDate, "startDate")
	if !ok {
		return
	}

	round, err := handler.service.Start(ctx, userKey, startDate)
	if err != nil {
		handler.writeError(w, "start round", err)
		return
	}

	log.Debugf("round %d started for user", round.Number)
	handler.writeJSON(w, round, http.StatusCreated)
}

func (handler *Handler) HandleChangeStartDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.changestartdate")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	req, ok := handler.readDateRequest(w, r)
	if !ok {
		return
	}
	newStart, ok := handler.parseDate(w, req.StartDate, "startDate")
	if !ok {
		return
	}

	change, err := handler.service.ChangeStartDate(ctx, userKey, newStart)
	if err != nil {
		handler.writeError(w, "change round start date", err)
		return
	}

	handler.writeJSON(w, change, http.StatusOK)
}

func (handler *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.end")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	// an empty body ends the round today
	endDate := handler.calc.StartOfDay(handler.now())
	if r.ContentLength != 0 {
		req, ok := handler.readDateRequest(w, r)
		if !ok {
			return
		}
		if req.EndDate != "" {
			if endDate, ok = handler.parseDate(w, req.EndDate, "endDate"); !ok {
				return
			}
		}
	}

	archive, err := handler.service.End(ctx, userKey, endDate)
	if err != nil {
		handler.writeError(w, "end round", err)
		return
	}

	handler.writeJSON(w, archive, http.StatusOK)
}

func (handler *Handler) HandleRestart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.restart")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	round, err := handler.service.Restart(ctx, userKey)
	if err != nil {
		handler.writeError(w, "restart round", err)
		return
	}

	handler.writeJSON(w, round, http.StatusOK)
}

func (handler *Handler) HandleWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.weeks")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	weeks, err := handler.service.Weeks(ctx, userKey)
	if err != nil {
		handler.writeError(w, "get round weeks", err)
		return
	}

	handler.writeJSON(w, weeks, http.StatusOK)
}

func (handler *Handler) HandleConsistency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.consistency")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	consistency, err := handler.service.Consistency(ctx, userKey)
	if err != nil {
		handler.writeError(w, "check round consistency", err)
		return
	}

	handler.writeJSON(w, consistency, http.StatusOK)
}

func (handler *Handler) HandleIntegrity(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.integrity")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	report, err := handler.service.Integrity(ctx, userKey)
	if err != nil {
		handler.writeError(w, "check data integrity", err)
		return
	}

	handler.writeJSON(w, report, http.StatusOK)
}

func (handler *Handler) HandleJournal(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.rounds.journal")
	defer span.End()

	level := rounds.Level(r.URL.Query().Get("level"))
	if level != "" && !level.IsValid() {
		http.Error(w, "parse form error, parameter <level>", http.StatusBadRequest)
		return
	}

	entries := handler.service.Journal(level)
	if entries == nil {
		entries = []rounds.JournalEntry{}
	}
	handler.writeJSON(w, entries, http.StatusOK)
}

func (handler *Handler) readDateRequest(w http.ResponseWriter, r *http.Request) (DateRequest, bool) {
	var req DateRequest
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("round date request, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (handler *Handler) parseDate(w http.ResponseWriter, value, field string) (time.Time, bool) {
	if value == "" {
		http.Error(w, "error, "+field+" empty", http.StatusBadRequest)
		return time.Time{}, false
	}
	date, ok := handler.calc.ParseDate(value)
	if !ok {
		http.Error(w, "error, "+field+" malformed", http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var conflictErr *ConflictError
	switch {
	case errors.As(err, &conflictErr):
		handler.writeJSON(w, ConflictResponse{
			Error:     conflictErr.Error(),
			Isolation: conflictErr.Isolation,
		}, http.StatusConflict)
	case errors.Is(err, ErrNoRound):
		http.Error(w, "no round started", http.StatusNotFound)
	case errors.Is(err, ErrMissingDate),
		errors.Is(err, rounds.ErrEndBeforeStart),
		errors.Is(err, rounds.ErrEndAfterRoundEnd):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, rounds.ErrRoundAlreadyStarted),
		errors.Is(err, rounds.ErrRoundNotStarted),
		errors.Is(err, rounds.ErrRoundEnded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("failed to %s: %s", op, err)
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}

func (handler *Handler) writeJSON(w http.ResponseWriter, v any, status int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}
