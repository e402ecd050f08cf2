package archive

import (
	"context"
	"fmt"

	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=exporter_mocks_test.go -package=archive_test

type archiveGetter interface {
	Archive(ctx context.Context, userKey string, number int) (*rounds.RoundArchive, error)
}

type workoutsLister interface {
	List(ctx context.Context, params workouts.ListParams) ([]workouts.Session, error)
}

type Exporter struct {
	archives archiveGetter
	workouts workoutsLister
}

func NewExporter(archives archiveGetter, workoutsLister workoutsLister) *Exporter {
	return &Exporter{
		archives: archives,
		workouts: workoutsLister,
	}
}

// Export returns the Parquet file with all sets logged under an ended round.
func (e *Exporter) Export(ctx context.Context, userKey string, round int) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "exporter.archive.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("round", round))

	archive, err := e.archives.Archive(ctx, userKey, round)
	if err != nil {
		return nil, err
	}
	sessions, err := e.workouts.List(ctx, workouts.ListParams{UserKey: userKey, Round: round})
	if err != nil {
		return nil, fmt.Errorf("list workouts of round %d: %w", round, err)
	}

	data, err := MarshalWorkouts(archive, sessions)
	if err != nil {
		return nil, fmt.Errorf("marshal round %d: %w", round, err)
	}
	log.Debugf("exported round %d: %d sets, %d bytes", round, len(sessions), len(data))
	return data, nil
}
