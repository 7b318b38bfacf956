// ABOUTME: Profile and health sample operations for SQLite storage.
// ABOUTME: Both are stored as JSON documents with a few indexed columns.
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

// GetProfile retrieves a user's profile.
func (d *DB) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var doc string
	err := d.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE user_id = ?`, userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// PutProfile creates or replaces a user's profile.
func (d *DB) PutProfile(ctx context.Context, p *models.UserProfile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query := `
		INSERT INTO profiles (user_id, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`
	if _, err := d.db.ExecContext(ctx, query, p.ID, string(doc), p.UpdatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

// ListProfiles returns every stored profile ordered by user ID.
func (d *DB) ListProfiles(ctx context.Context) ([]*models.UserProfile, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT doc FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		var p models.UserProfile
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// AddHealthSample appends a health sample.
func (d *DB) AddHealthSample(ctx context.Context, s *models.HealthSample) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal health sample: %w", err)
	}

	query := `
		INSERT INTO health_samples (id, user_id, date, created_at, doc)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := d.db.ExecContext(ctx, query, s.ID.String(), s.UserID, s.Date, s.CreatedAt.UnixNano(), string(doc)); err != nil {
		return fmt.Errorf("add health sample: %w", err)
	}
	return nil
}

// LatestHealthSample returns the user's most recent sample by date, then creation time.
func (d *DB) LatestHealthSample(ctx context.Context, userID string) (*models.HealthSample, error) {
	samples, err := d.ListHealthSamples(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("health sample for %s: %w", userID, ErrNotFound)
	}
	return samples[0], nil
}

// ListHealthSamples returns samples newest first.
func (d *DB) ListHealthSamples(ctx context.Context, userID string, limit int) ([]*models.HealthSample, error) {
	query := `
		SELECT doc FROM health_samples
		WHERE (? = '' OR user_id = ?)
		ORDER BY date DESC, created_at DESC
	`
	args := []interface{}{userID, userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}
	defer rows.Close()

	var samples []*models.HealthSample
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan health sample: %w", err)
		}
		var s models.HealthSample
		if err := json.Unmarshal([]byte(doc), &s); err != nil {
			return nil, fmt.Errorf("unmarshal health sample: %w", err)
		}
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}
