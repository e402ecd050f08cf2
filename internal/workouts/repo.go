package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/roundtracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrSessionNotFound = errors.New("workout session not found")

const sessionColumns = `id, user_key, exercise, kilos, reps, to_char(date, 'YYYY-MM-DD'), round, week, created_at`

// ListParams filters sessions of one user. Empty dates and zero round mean no filter.
type ListParams struct {
	UserKey  string
	Exercise string
	From     string
	To       string
	Round    int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_session
				(user_key, exercise, kilos, reps, date, round, week)
				VALUES ($1, $2, $3, $4, $5::date, $6, $7)
			RETURNING id, created_at;`,
		session.UserKey, session.Exercise, session.Kilos, session.Reps, session.Date, session.Round, session.Week,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	if err := rows.Scan(&session.ID, &session.CreatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	return &session, nil
}

func (r *Repo) Delete(ctx context.Context, userKey string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_session WHERE id = $1 AND user_key = $2`,
		id, userKey,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise", params.Exercise),
		attribute.String("from", params.From),
		attribute.String("to", params.To),
		attribute.Int("round", params.Round),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+`
			FROM workout_session
			WHERE user_key = $1
				AND ($2::text = '' OR exercise = $2)
				AND ($3::text = '' OR date >= $3::date)
				AND ($4::text = '' OR date <= $4::date)
				AND ($5::int = 0 OR round = $5)
			ORDER BY date, id;`,
		params.UserKey, params.Exercise, params.From, params.To, params.Round,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2sessions(rows)
}

// LastSessionDay returns all sets of the exercise from the most recent day it was trained.
func (r *Repo) LastSessionDay(ctx context.Context, userKey, exercise string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.lastsessionday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exercise))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+`
			FROM workout_session
			WHERE user_key = $1 AND exercise = $2
				AND date = (SELECT max(date) FROM workout_session WHERE user_key = $1 AND exercise = $2)
			ORDER BY id;`,
		userKey, exercise,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2sessions(rows)
}

func rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.UserKey, &s.Exercise, &s.Kilos, &s.Reps, &s.Date, &s.Round, &s.Week, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
