package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/roundtracker/internal/identity"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsAnalyzer interface {
	CurrentRound(ctx context.Context, userKey string) (*RoundStats, error)
}

// Response carries either the round statistics or the stats fallback.
type Response struct {
	Stats    *RoundStats      `json:"stats,omitempty"`
	Fallback *rounds.Fallback `json:"fallback,omitempty"`
}

type Handler struct {
	analyzer statsAnalyzer
}

func NewHandler(analyzer statsAnalyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.current")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	var resp Response
	st, err := handler.analyzer.CurrentRound(ctx, userKey)
	switch {
	case errors.Is(err, ErrNoRound):
		fallback := rounds.CreateFallbackData(rounds.FallbackStats)
		resp.Fallback = &fallback
	case err != nil:
		log.Errorf("get round stats: %s", err)
		http.Error(w, "failed to get round stats", http.StatusInternalServerError)
		return
	default:
		resp.Stats = st
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal round stats: %s", err)
		http.Error(w, "marshal round stats error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
