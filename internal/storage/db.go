// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Opens the per-user diary file, applies pragmas and checks the schema version.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFile is the SQLite file name inside the data directory.
const DBFile = "fitdiary.db"

// ErrSchemaTooNew is returned when the file was written by a newer fitdiary.
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

// sqlitePragmas run once on the single pooled connection.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

// DB is the SQLite Repository. Day writes are compare-and-swap on the
// version column, so one connection serialises every writer in the process.
type DB struct {
	db     *sql.DB
	dbPath string
}

var _ Repository = (*DB)(nil)

// Open opens or creates the diary at dbPath, creating its directory.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	d := &DB{db: db, dbPath: dbPath}

	if err := d.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) init(ctx context.Context) error {
	// The file only exists once the first connection is made.
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect %s: %w", d.dbPath, err)
	}
	if err := os.Chmod(d.dbPath, 0600); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("set database permissions: %w", err)
	}
	for _, pragma := range sqlitePragmas {
		if _, err := d.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	if err := d.initSchema(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitdiary")
}

// DefaultDBPath returns the diary path inside the default data directory.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), DBFile)
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// SchemaVersion reports the user_version stamped on the file.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := d.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
