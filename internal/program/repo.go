package program

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrRoundNotFound   = errors.New("round not found")
	ErrArchiveNotFound = errors.New("round archive not found")
)

const roundColumns = `number, coalesce(to_char(start_date, 'YYYY-MM-DD'), ''), coalesce(to_char(end_date, 'YYYY-MM-DD'), ''), is_active`

// Repo stores rounds as calendar dates. Dates are read back in the calculator's location.
type Repo struct {
	db   *pgxpool.Pool
	calc *rounds.Calculator
}

func NewRepo(db *pgxpool.Pool, calc *rounds.Calculator) *Repo {
	return &Repo{
		db:   db,
		calc: calc,
	}
}

// Latest returns the round with the highest number.
func (r *Repo) Latest(ctx context.Context, userKey string) (_ *rounds.Round, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rounds.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+roundColumns+` FROM round WHERE user_key = $1 ORDER BY number DESC LIMIT 1;`,
		userKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rs, err := r.rows2rounds(rows)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, ErrRoundNotFound
	}
	return &rs[0], nil
}

// List returns all rounds of the user ordered by number.
func (r *Repo) List(ctx context.Context, userKey string) (_ []rounds.Round, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rounds.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+roundColumns+` FROM round WHERE user_key = $1 ORDER BY number;`,
		userKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2rounds(rows)
}

func (r *Repo) Create(ctx context.Context, userKey string, round rounds.Round) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rounds.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("round", round.Number))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO round (user_key, number, start_date, end_date, is_active)
			VALUES ($1, $2, NULLIF($3, '')::date, NULLIF($4, '')::date, $5);`,
		userKey, round.Number, r.calc.FormatDate(round.StartDate), r.calc.FormatDate(round.EndDate), round.IsActive,
	)
	if pkg.IsUniqueViolationError(err) {
		// a concurrent start created the same round first
		return fmt.Errorf("create round %d: %w", round.Number, rounds.ErrRoundAlreadyStarted)
	}
	return err
}

func (r *Repo) Update(ctx context.Context, userKey string, round rounds.Round) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rounds.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("round", round.Number))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE round
			SET start_date = NULLIF($3, '')::date, end_date = NULLIF($4, '')::date, is_active = $5
			WHERE user_key = $1 AND number = $2;`,
		userKey, round.Number, r.calc.FormatDate(round.StartDate), r.calc.FormatDate(round.EndDate), round.IsActive,
	)
	if pkg.IsCheckViolationError(err) {
		return fmt.Errorf("update round %d: %w", round.Number, rounds.ErrEndBeforeStart)
	} else if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoundNotFound
	}
	return nil
}

// SaveArchive stores the archive as JSONB; archiving the same round again replaces it.
func (r *Repo) SaveArchive(ctx context.Context, userKey string, archive *rounds.RoundArchive) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rounds.savearchive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("round", archive.Round))

	archiveJson, err := json.Marshal(archive)
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO round_archive (user_key, round, archive, archived_at)
			VALUES ($1, $2, $3::jsonb, $4)
		ON CONFLICT (user_key, round)
			DO UPDATE SET archive = EXCLUDED.archive, archived_at = EXCLUDED.archived_at;`,
		userKey, archive.Round, string(archiveJson), archive.ArchivedAt,
	)
	if pkg.IsForeignKeyViolationError(err) {
		return fmt.Errorf("archive round %d: %w", archive.Round, ErrRoundNotFound)
	}
	return err
}

func (r *Repo) GetArchive(ctx context.Context, userKey string, number int) (_ *rounds.RoundArchive, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.rounds.getarchive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("round", number))

	var archiveJson []byte
	err = r.db.QueryRow(
		ctx,
		`SELECT archive FROM round_archive WHERE user_key = $1 AND round = $2;`,
		userKey, number,
	).Scan(&archiveJson)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArchiveNotFound
	} else if err != nil {
		return nil, err
	}

	var archive rounds.RoundArchive
	if err := json.Unmarshal(archiveJson, &archive); err != nil {
		return nil, fmt.Errorf("unmarshal archive: %w", err)
	}
	return &archive, nil
}

func (r *Repo) rows2rounds(rows pgx.Rows) ([]rounds.Round, error) {
	var rs []rounds.Round
	for rows.Next() {
		var (
			round      rounds.Round
			start, end string
		)
		if err := rows.Scan(&round.Number, &start, &end, &round.IsActive); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if start != "" {
			round.StartDate = r.calc.MustParseDate(start)
		}
		if end != "" {
			round.EndDate = r.calc.MustParseDate(end)
		}
		rs = append(rs, round)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}
