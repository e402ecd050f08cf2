package health

import (
	"context"
	"fmt"

	"github.com/2beens/roundtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultSource = "bridge"

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert stores entries keyed by user and date in a single transaction. A later sync
// of the same day overwrites steps and weight.
func (r *Repo) Upsert(ctx context.Context, userKey string, entries []Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.health.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("entries", len(entries)))

	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, e := range entries {
		source := e.Source
		if source == "" {
			source = defaultSource
		}
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO health_entry (user_key, date, steps, weight, source)
				VALUES ($1, $2::date, $3, $4, $5)
			ON CONFLICT (user_key, date)
				DO UPDATE SET steps = EXCLUDED.steps, weight = EXCLUDED.weight, source = EXCLUDED.source;`,
			userKey, e.Date, e.Steps, e.Weight, source,
		); err != nil {
			return fmt.Errorf("upsert entry %s: %w", e.Date, err)
		}
	}

	return tx.Commit(ctx)
}

// List returns entries in [from, to], both optional and inclusive, ordered by date.
func (r *Repo) List(ctx context.Context, userKey, from, to string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.health.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	rows, err := r.db.Query(
		ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), steps, weight, source
			FROM health_entry
			WHERE user_key = $1
				AND ($2::text = '' OR date >= $2::date)
				AND ($3::text = '' OR date <= $3::date)
			ORDER BY date;`,
		userKey, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Date, &e.Steps, &e.Weight, &e.Source); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
