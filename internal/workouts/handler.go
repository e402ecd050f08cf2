package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/roundtracker/internal/identity"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	Log(ctx context.Context, userKey string, ns NewSession) (*Session, error)
	List(ctx context.Context, params ListParams) ([]Session, error)
	Delete(ctx context.Context, userKey string, id int) error
	Suggest(ctx context.Context, userKey, exercise string) (*Suggestion, error)
}

type DeleteSessionResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.log")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var ns NewSession
	if err := json.NewDecoder(r.Body).Decode(&ns); err != nil {
		log.Tracef("log workout, unmarshal json params: %s", err)
		http.Error(w, "log workout failed", http.StatusBadRequest)
		return
	}

	session, err := handler.service.Log(ctx, userKey, ns)
	switch {
	case errors.Is(err, ErrInvalidSession), errors.Is(err, ErrOutsideRound):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrNoActiveRound):
		http.Error(w, "start a round before logging workouts", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to log workout [%s]: %s", ns.Exercise, err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal workout session: %s", err)
		http.Error(w, "error, failed to log workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout logged: %s", sessionJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	params := ListParams{
		UserKey:  userKey,
		Exercise: query.Get("exercise"),
		From:     query.Get("from"),
		To:       query.Get("to"),
	}
	if roundStr := query.Get("round"); roundStr != "" {
		round, err := strconv.Atoi(roundStr)
		if err != nil || round < 1 {
			http.Error(w, "parse form error, parameter <round>", http.StatusBadRequest)
			return
		}
		params.Round = round
	}

	sessions, err := handler.service.List(ctx, params)
	if errors.Is(err, ErrInvalidSession) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("failed to list workouts: %s", err)
		http.Error(w, "failed to list workouts", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}

	listJson, err := json.Marshal(ListResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
	if err != nil {
		log.Errorf("failed to marshal workouts: %s", err)
		http.Error(w, "failed to marshal workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, userKey, id); errors.Is(err, ErrSessionNotFound) {
		log.Debugf("workout session %d not found", id)
		http.Error(w, "workout session not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete workout session %d: %s", id, err)
		http.Error(w, "workout session not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.suggest")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	exercise := mux.Vars(r)["exercise"]
	if exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}

	suggestion, err := handler.service.Suggest(ctx, userKey, exercise)
	if errors.Is(err, ErrNoHistory) {
		http.Error(w, "no history for exercise", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to suggest next session [%s]: %s", exercise, err)
		http.Error(w, "failed to suggest next session", http.StatusInternalServerError)
		return
	}

	suggestionJson, err := json.Marshal(suggestion)
	if err != nil {
		log.Errorf("failed to marshal suggestion: %s", err)
		http.Error(w, "failed to marshal suggestion", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, suggestionJson, http.StatusOK)
}
