// ABOUTME: Version-checked day document operations for SQLite storage.
// ABOUTME: Diet and exercise days share the same table shape and CAS logic.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fitdiary/internal/models"
)

type dayRow struct {
	Doc     []byte
	Version int64
}

// GetDietDay retrieves the diet record for a user and date.
func (d *DB) GetDietDay(ctx context.Context, userID, date string) (*models.DayDietRecord, error) {
	row, err := d.getDay(ctx, dietDaysTable, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get diet day %s/%s: %w", userID, date, err)
	}
	return decodeDay[models.DayDietRecord](row, func(r *models.DayDietRecord, v int64) { r.Version = v })
}

// PutDietDay stores a diet record if the stored version still equals expectedVersion.
func (d *DB) PutDietDay(ctx context.Context, rec *models.DayDietRecord, expectedVersion int64) error {
	next := *rec
	next.Version = expectedVersion + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal diet day: %w", err)
	}
	if err := d.putDay(ctx, dietDaysTable, rec.UserID, rec.Date, doc, expectedVersion); err != nil {
		return fmt.Errorf("put diet day %s/%s: %w", rec.UserID, rec.Date, err)
	}
	rec.Version = next.Version
	return nil
}

// ListDietDays returns diet records in the range, newest first.
func (d *DB) ListDietDays(ctx context.Context, userID string, r DayRange) ([]*models.DayDietRecord, error) {
	rows, err := d.listDays(ctx, dietDaysTable, userID, r)
	if err != nil {
		return nil, fmt.Errorf("list diet days: %w", err)
	}
	out := make([]*models.DayDietRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeDay[models.DayDietRecord](row, func(r *models.DayDietRecord, v int64) { r.Version = v })
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetExerciseDay retrieves the exercise record for a user and date.
func (d *DB) GetExerciseDay(ctx context.Context, userID, date string) (*models.DayExerciseRecord, error) {
	row, err := d.getDay(ctx, exerciseDaysTable, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get exercise day %s/%s: %w", userID, date, err)
	}
	return decodeDay[models.DayExerciseRecord](row, func(r *models.DayExerciseRecord, v int64) { r.Version = v })
}

// PutExerciseDay stores an exercise record if the stored version still equals expectedVersion.
func (d *DB) PutExerciseDay(ctx context.Context, rec *models.DayExerciseRecord, expectedVersion int64) error {
	next := *rec
	next.Version = expectedVersion + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal exercise day: %w", err)
	}
	if err := d.putDay(ctx, exerciseDaysTable, rec.UserID, rec.Date, doc, expectedVersion); err != nil {
		return fmt.Errorf("put exercise day %s/%s: %w", rec.UserID, rec.Date, err)
	}
	rec.Version = next.Version
	return nil
}

// ListExerciseDays returns exercise records in the range, newest first.
func (d *DB) ListExerciseDays(ctx context.Context, userID string, r DayRange) ([]*models.DayExerciseRecord, error) {
	rows, err := d.listDays(ctx, exerciseDaysTable, userID, r)
	if err != nil {
		return nil, fmt.Errorf("list exercise days: %w", err)
	}
	out := make([]*models.DayExerciseRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeDay[models.DayExerciseRecord](row, func(r *models.DayExerciseRecord, v int64) { r.Version = v })
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (d *DB) getDay(ctx context.Context, table, userID, date string) (dayRow, error) {
	var row dayRow
	query := fmt.Sprintf(`SELECT doc, version FROM %s WHERE user_id = ? AND date = ?`, table)
	err := d.db.QueryRowContext(ctx, query, userID, date).Scan(&row.Doc, &row.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return row, ErrNotFound
	}
	return row, err
}

// putDay inserts when expected is 0 and otherwise updates only a row still at expected.
// Zero affected rows means another writer got there first.
func (d *DB) putDay(ctx context.Context, table, userID, date string, doc []byte, expected int64) error {
	now := time.Now().Format(time.RFC3339)

	var res sql.Result
	var err error
	if expected == 0 {
		query := fmt.Sprintf(`
			INSERT INTO %s (user_id, date, version, doc, updated_at) VALUES (?, ?, 1, ?, ?)
			ON CONFLICT(user_id, date) DO NOTHING
		`, table)
		res, err = d.db.ExecContext(ctx, query, userID, date, string(doc), now)
	} else {
		query := fmt.Sprintf(`
			UPDATE %s SET version = version + 1, doc = ?, updated_at = ?
			WHERE user_id = ? AND date = ? AND version = ?
		`, table)
		res, err = d.db.ExecContext(ctx, query, string(doc), now, userID, date, expected)
	}
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (d *DB) listDays(ctx context.Context, table, userID string, r DayRange) ([]dayRow, error) {
	query := fmt.Sprintf(`
		SELECT doc, version FROM %s
		WHERE (? = '' OR user_id = ?)
		  AND (? = '' OR date >= ?)
		  AND (? = '' OR date <= ?)
		ORDER BY date DESC, user_id
	`, table)
	args := []interface{}{userID, userID, r.From, r.From, r.To, r.To}
	if r.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, r.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dayRow
	for rows.Next() {
		var row dayRow
		if err := rows.Scan(&row.Doc, &row.Version); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// decodeDay unmarshals a stored document and stamps it with the authoritative version column.
func decodeDay[T any](row dayRow, setVersion func(*T, int64)) (*T, error) {
	var rec T
	if err := json.Unmarshal(row.Doc, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal day record: %w", err)
	}
	setVersion(&rec, row.Version)
	return &rec, nil
}
