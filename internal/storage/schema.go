// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Day records are stored as JSON documents keyed by (user_id, date) with a version column.
package storage

import (
	"context"
	"fmt"
)

const (
	dietDaysTable     = "diet_days"
	exerciseDaysTable = "exercise_days"
)

// currentSchemaVersion is stamped into PRAGMA user_version.
const currentSchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id TEXT PRIMARY KEY,
	doc TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS health_samples (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	doc TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diet_days (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	version INTEGER NOT NULL,
	doc TEXT NOT NULL,
	updated_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, date)
);

CREATE TABLE IF NOT EXISTS exercise_days (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	version INTEGER NOT NULL,
	doc TEXT NOT NULL,
	updated_at DATETIME NOT NULL,
	PRIMARY KEY (user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_health_samples_user_date ON health_samples(user_id, date DESC, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_diet_days_date ON diet_days(date DESC);
CREATE INDEX IF NOT EXISTS idx_exercise_days_date ON exercise_days(date DESC);
`

// initSchema creates the tables and stamps the version. Files from a newer
// build are refused rather than written with an older layout.
func (d *DB) initSchema(ctx context.Context) error {
	v, err := d.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if v > currentSchemaVersion {
		return fmt.Errorf("%s has version %d, want <= %d: %w", d.dbPath, v, currentSchemaVersion, ErrSchemaTooNew)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
