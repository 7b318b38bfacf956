// ABOUTME: PostgreSQL backend built on a pgx connection pool.
// ABOUTME: Same document layout and version CAS as the SQLite backend, with JSONB documents.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fitdiary/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id TEXT PRIMARY KEY,
	doc JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS health_samples (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	doc JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS diet_days (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	version BIGINT NOT NULL,
	doc JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, date)
);

CREATE TABLE IF NOT EXISTS exercise_days (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	version BIGINT NOT NULL,
	doc JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_health_samples_user_date ON health_samples(user_id, date DESC, created_at DESC);
`

// PGStore is a Repository backed by PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PGStore)(nil)

type docRow struct {
	Doc     []byte `db:"doc"`
	Version int64  `db:"version"`
}

// OpenPostgres connects to url and ensures the schema exists.
func OpenPostgres(ctx context.Context, url string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	// Simple protocol keeps pooled connections usable behind statement-caching proxies.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func pgQueryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return result, ErrNotFound
	}
	return result, err
}

func pgQueryMany[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func limitArg(limit int) any {
	if limit > 0 {
		return limit
	}
	return nil
}

// GetProfile retrieves a user's profile.
func (s *PGStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	row, err := pgQueryOne[docRow](ctx, s.pool,
		`SELECT doc, 0::bigint AS version FROM profiles WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	var p models.UserProfile
	if err := json.Unmarshal(row.Doc, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// PutProfile creates or replaces a user's profile.
func (s *PGStore) PutProfile(ctx context.Context, p *models.UserProfile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, doc, updated_at) VALUES (@userID, @doc::jsonb, @updatedAt)
		 ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		pgx.NamedArgs{"userID": p.ID, "doc": string(doc), "updatedAt": p.UpdatedAt})
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// ListProfiles returns every stored profile ordered by user ID.
func (s *PGStore) ListProfiles(ctx context.Context) ([]*models.UserProfile, error) {
	rows, err := pgQueryMany[docRow](ctx, s.pool,
		`SELECT doc, 0::bigint AS version FROM profiles ORDER BY user_id`, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]*models.UserProfile, 0, len(rows))
	for _, row := range rows {
		var p models.UserProfile
		if err := json.Unmarshal(row.Doc, &p); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		out = append(out, &p)
	}
	return out, nil
}

// AddHealthSample appends a health sample.
func (s *PGStore) AddHealthSample(ctx context.Context, hs *models.HealthSample) error {
	doc, err := json.Marshal(hs)
	if err != nil {
		return fmt.Errorf("marshal health sample: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO health_samples (id, user_id, date, created_at, doc)
		 VALUES (@id, @userID, @date, @createdAt, @doc::jsonb)`,
		pgx.NamedArgs{
			"id":        hs.ID.String(),
			"userID":    hs.UserID,
			"date":      hs.Date,
			"createdAt": hs.CreatedAt.UnixNano(),
			"doc":       string(doc),
		})
	if err != nil {
		return fmt.Errorf("add health sample: %w", err)
	}
	return nil
}

// LatestHealthSample returns the user's most recent sample.
func (s *PGStore) LatestHealthSample(ctx context.Context, userID string) (*models.HealthSample, error) {
	samples, err := s.ListHealthSamples(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("health sample for %s: %w", userID, ErrNotFound)
	}
	return samples[0], nil
}

// ListHealthSamples returns samples newest first.
func (s *PGStore) ListHealthSamples(ctx context.Context, userID string, limit int) ([]*models.HealthSample, error) {
	rows, err := pgQueryMany[docRow](ctx, s.pool,
		`SELECT doc, 0::bigint AS version FROM health_samples
		 WHERE (@userID = '' OR user_id = @userID)
		 ORDER BY date DESC, created_at DESC
		 LIMIT @limit`,
		pgx.NamedArgs{"userID": userID, "limit": limitArg(limit)})
	if err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}
	out := make([]*models.HealthSample, 0, len(rows))
	for _, row := range rows {
		var hs models.HealthSample
		if err := json.Unmarshal(row.Doc, &hs); err != nil {
			return nil, fmt.Errorf("unmarshal health sample: %w", err)
		}
		out = append(out, &hs)
	}
	return out, nil
}

// GetDietDay retrieves the diet record for a user and date.
func (s *PGStore) GetDietDay(ctx context.Context, userID, date string) (*models.DayDietRecord, error) {
	row, err := s.getDay(ctx, dietDaysTable, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get diet day %s/%s: %w", userID, date, err)
	}
	return decodeDay[models.DayDietRecord](dayRow(row), func(r *models.DayDietRecord, v int64) { r.Version = v })
}

// PutDietDay stores a diet record if the stored version still equals expectedVersion.
func (s *PGStore) PutDietDay(ctx context.Context, rec *models.DayDietRecord, expectedVersion int64) error {
	next := *rec
	next.Version = expectedVersion + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal diet day: %w", err)
	}
	if err := s.putDay(ctx, dietDaysTable, rec.UserID, rec.Date, doc, expectedVersion); err != nil {
		return fmt.Errorf("put diet day %s/%s: %w", rec.UserID, rec.Date, err)
	}
	rec.Version = next.Version
	return nil
}

// ListDietDays returns diet records in the range, newest first.
func (s *PGStore) ListDietDays(ctx context.Context, userID string, r DayRange) ([]*models.DayDietRecord, error) {
	rows, err := s.listDays(ctx, dietDaysTable, userID, r)
	if err != nil {
		return nil, fmt.Errorf("list diet days: %w", err)
	}
	out := make([]*models.DayDietRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeDay[models.DayDietRecord](dayRow(row), func(r *models.DayDietRecord, v int64) { r.Version = v })
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetExerciseDay retrieves the exercise record for a user and date.
func (s *PGStore) GetExerciseDay(ctx context.Context, userID, date string) (*models.DayExerciseRecord, error) {
	row, err := s.getDay(ctx, exerciseDaysTable, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get exercise day %s/%s: %w", userID, date, err)
	}
	return decodeDay[models.DayExerciseRecord](dayRow(row), func(r *models.DayExerciseRecord, v int64) { r.Version = v })
}

// PutExerciseDay stores an exercise record if the stored version still equals expectedVersion.
func (s *PGStore) PutExerciseDay(ctx context.Context, rec *models.DayExerciseRecord, expectedVersion int64) error {
	next := *rec
	next.Version = expectedVersion + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal exercise day: %w", err)
	}
	if err := s.putDay(ctx, exerciseDaysTable, rec.UserID, rec.Date, doc, expectedVersion); err != nil {
		return fmt.Errorf("put exercise day %s/%s: %w", rec.UserID, rec.Date, err)
	}
	rec.Version = next.Version
	return nil
}

// ListExerciseDays returns exercise records in the range, newest first.
func (s *PGStore) ListExerciseDays(ctx context.Context, userID string, r DayRange) ([]*models.DayExerciseRecord, error) {
	rows, err := s.listDays(ctx, exerciseDaysTable, userID, r)
	if err != nil {
		return nil, fmt.Errorf("list exercise days: %w", err)
	}
	out := make([]*models.DayExerciseRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeDay[models.DayExerciseRecord](dayRow(row), func(r *models.DayExerciseRecord, v int64) { r.Version = v })
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *PGStore) getDay(ctx context.Context, table, userID, date string) (docRow, error) {
	return pgQueryOne[docRow](ctx, s.pool,
		fmt.Sprintf(`SELECT doc, version FROM %s WHERE user_id = @userID AND date = @date`, table),
		pgx.NamedArgs{"userID": userID, "date": date})
}

func (s *PGStore) putDay(ctx context.Context, table, userID, date string, doc []byte, expected int64) error {
	args := pgx.NamedArgs{
		"userID":   userID,
		"date":     date,
		"doc":      string(doc),
		"expected": expected,
	}

	var sql string
	if expected == 0 {
		sql = fmt.Sprintf(`INSERT INTO %s (user_id, date, version, doc) VALUES (@userID, @date, 1, @doc::jsonb)
			ON CONFLICT (user_id, date) DO NOTHING`, table)
	} else {
		sql = fmt.Sprintf(`UPDATE %s SET version = version + 1, doc = @doc::jsonb, updated_at = now()
			WHERE user_id = @userID AND date = @date AND version = @expected`, table)
	}

	tag, err := s.pool.Exec(ctx, sql, args)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (s *PGStore) listDays(ctx context.Context, table, userID string, r DayRange) ([]docRow, error) {
	return pgQueryMany[docRow](ctx, s.pool,
		fmt.Sprintf(`SELECT doc, version FROM %s
			WHERE (@userID = '' OR user_id = @userID)
			  AND (@from = '' OR date >= @from)
			  AND (@to = '' OR date <= @to)
			ORDER BY date DESC, user_id
			LIMIT @limit`, table),
		pgx.NamedArgs{"userID": userID, "from": r.From, "to": r.To, "limit": limitArg(r.Limit)})
}
