package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/roundtracker/internal/identity"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=health_test

type healthService interface {
	Sync(ctx context.Context, userKey string) (*SyncResult, error)
	List(ctx context.Context, userKey, from, to string) ([]Entry, error)
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type Handler struct {
	service healthService
}

func NewHandler(service healthService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.sync")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	result, err := handler.service.Sync(ctx, userKey)
	switch {
	case errors.Is(err, ErrNoRound):
		http.Error(w, "start a round before syncing health data", http.StatusConflict)
		return
	case errors.Is(err, ErrBridgeUnavailable):
		log.Warnf("health sync, bridge unavailable: %s", err)
		http.Error(w, "health data source unavailable", http.StatusBadGateway)
		return
	case err != nil:
		log.Errorf("failed to sync health data: %s", err)
		http.Error(w, "failed to sync health data", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal sync result: %s", err)
		http.Error(w, "failed to marshal sync result", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.list")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	entries, err := handler.service.List(ctx, userKey, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if errors.Is(err, ErrInvalidDate) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("failed to list health entries: %s", err)
		http.Error(w, "failed to list health entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	listJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("failed to marshal health entries: %s", err)
		http.Error(w, "failed to marshal health entries", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listJson, http.StatusOK)
}
