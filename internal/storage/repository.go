// ABOUTME: Repository interface for fitdiary storage backends.
// ABOUTME: Profiles, health samples and version-checked per-day diet/exercise documents.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/fitdiary/internal/models"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when a day document changed since it was read.
	ErrVersionConflict = errors.New("version conflict")
)

// DayRange selects day documents. Empty bounds are open; Limit <= 0 means no limit.
type DayRange struct {
	From  string
	To    string
	Limit int
}

// Contains reports whether date falls inside the range bounds.
func (r DayRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// Repository defines the storage interface for fitdiary data.
// An empty userID in a List call matches every user.
type Repository interface {
	// Profiles
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	PutProfile(ctx context.Context, p *models.UserProfile) error
	ListProfiles(ctx context.Context) ([]*models.UserProfile, error)

	// Health samples, newest first
	AddHealthSample(ctx context.Context, s *models.HealthSample) error
	LatestHealthSample(ctx context.Context, userID string) (*models.HealthSample, error)
	ListHealthSamples(ctx context.Context, userID string, limit int) ([]*models.HealthSample, error)

	// Day documents. Put is a compare-and-swap: expectedVersion 0 inserts,
	// anything else must match the stored version. On success the record's
	// Version is advanced; on ErrVersionConflict nothing is written.
	GetDietDay(ctx context.Context, userID, date string) (*models.DayDietRecord, error)
	PutDietDay(ctx context.Context, rec *models.DayDietRecord, expectedVersion int64) error
	ListDietDays(ctx context.Context, userID string, r DayRange) ([]*models.DayDietRecord, error)

	GetExerciseDay(ctx context.Context, userID, date string) (*models.DayExerciseRecord, error)
	PutExerciseDay(ctx context.Context, rec *models.DayExerciseRecord, expectedVersion int64) error
	ListExerciseDays(ctx context.Context, userID string, r DayRange) ([]*models.DayExerciseRecord, error)

	// Lifecycle
	Close() error
}
