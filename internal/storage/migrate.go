// ABOUTME: Data migration between fitdiary storage backends.
// ABOUTME: Copies profiles, health samples and day documents from source to destination.

package storage

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Profiles      int
	HealthSamples int
	DietDays      int
	ExerciseDays  int
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function; existing
// day documents in dst cause a version conflict.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	data, err := Export(ctx, src, "")
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if err := Import(ctx, dst, data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	return &MigrateSummary{
		Profiles:      len(data.Profiles),
		HealthSamples: len(data.HealthSamples),
		DietDays:      len(data.DietDays),
		ExerciseDays:  len(data.ExerciseDays),
	}, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
