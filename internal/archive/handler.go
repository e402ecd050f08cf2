package archive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/roundtracker/internal/identity"
	"github.com/2beens/roundtracker/internal/program"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=archive_test

type roundExporter interface {
	Export(ctx context.Context, userKey string, round int) ([]byte, error)
}

type Handler struct {
	exporter roundExporter
}

func NewHandler(exporter roundExporter) *Handler {
	return &Handler{
		exporter: exporter,
	}
}

func (handler *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.archive.download")
	defer span.End()

	userKey, ok := identity.FromContext(ctx)
	if !ok {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	round, err := strconv.Atoi(vars["round"])
	if err != nil || round < 1 {
		http.Error(w, "error, round NaN", http.StatusBadRequest)
		return
	}

	data, err := handler.exporter.Export(ctx, userKey, round)
	if err != nil {
		if errors.Is(err, program.ErrArchiveNotFound) {
			http.Error(w, "round archive not found", http.StatusNotFound)
			return
		}
		log.Errorf("export round %d: %s", round, err)
		http.Error(w, "failed to export round archive", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="round-%d-workouts.parquet"`, round))
	pkg.WriteResponseBytes(w, pkg.ContentType.Parquet, data, http.StatusOK)
}
