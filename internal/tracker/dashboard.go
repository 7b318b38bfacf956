// ABOUTME: Dashboard view combining profile, latest sample and one day's records.
// ABOUTME: The four reads touch disjoint documents and run concurrently.
package tracker

import (
	"context"
	"errors"

	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/progress"
	"github.com/harperreed/fitdiary/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Dashboard is everything shown for one user on one day.
type Dashboard struct {
	Date     string                    `json:"date"`
	Profile  *models.UserProfile       `json:"profile,omitempty"`
	Latest   *models.HealthSample      `json:"latest,omitempty"`
	Diet     *models.DayDietRecord     `json:"diet"`
	Exercise *models.DayExerciseRecord `json:"exercise"`
	Derived  *progress.Derived         `json:"derived,omitempty"`
	Snapshot progress.Snapshot         `json:"snapshot"`
}

// Dashboard loads the user's data for date. A missing profile or sample
// leaves the field nil; missing days are empty records.
func (t *Tracker) Dashboard(ctx context.Context, userID, date string) (*Dashboard, error) {
	if date == "" {
		date = t.Today()
	}
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}

	d := &Dashboard{Date: date}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := t.repo.GetProfile(gctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return persistence("load profile", err)
		}
		d.Profile = p
		return nil
	})
	g.Go(func() error {
		s, err := t.repo.LatestHealthSample(gctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return persistence("load health sample", err)
		}
		d.Latest = s
		return nil
	})
	g.Go(func() error {
		rec, err := readDay(gctx, t.dietDays(), userID, date)
		d.Diet = rec
		return err
	})
	g.Go(func() error {
		rec, err := readDay(gctx, t.exerciseDays(), userID, date)
		d.Exercise = rec
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if d.Profile != nil {
		derived := progress.ComputeDerivedMetrics(d.Profile, d.Latest)
		d.Derived = &derived
	}
	d.Snapshot = t.progress.Snapshot(d.Profile, d.Latest, progress.DayTotals{
		Consumed: d.Diet.TotalCalories,
		Protein:  d.Diet.TotalProtein,
		Burned:   d.Exercise.TotalCaloriesBurned,
	})
	return d, nil
}
