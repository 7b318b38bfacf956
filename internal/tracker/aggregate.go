// ABOUTME: Version-checked read-modify-write of per-day records.
// ABOUTME: Loads or creates the day, applies a mutation, recomputes totals and compare-and-swaps it back.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/storage"
)

// dayStore adapts the typed Repository day methods for one record kind.
type dayStore[R models.DayRecord] struct {
	kind  string
	get   func(ctx context.Context, userID, date string) (R, error)
	put   func(ctx context.Context, rec R, expected int64) error
	fresh func(userID, date string) R
}

func (t *Tracker) dietDays() dayStore[*models.DayDietRecord] {
	return dayStore[*models.DayDietRecord]{
		kind:  "diet",
		get:   t.repo.GetDietDay,
		put:   t.repo.PutDietDay,
		fresh: models.NewDayDietRecord,
	}
}

func (t *Tracker) exerciseDays() dayStore[*models.DayExerciseRecord] {
	return dayStore[*models.DayExerciseRecord]{
		kind:  "exercise",
		get:   t.repo.GetExerciseDay,
		put:   t.repo.PutExerciseDay,
		fresh: models.NewDayExerciseRecord,
	}
}

// mutateDay applies mutate to the (userID, date) record and persists it.
// A missing record starts empty at version 0. On a version conflict the
// record is re-read and mutate re-applied, up to t.maxRetries times.
// An error from mutate aborts without writing.
func mutateDay[R models.DayRecord](ctx context.Context, t *Tracker, ds dayStore[R], userID, date string, mutate func(R) error) (R, error) {
	var zero R
	for attempt := 0; ; attempt++ {
		rec, err := ds.get(ctx, userID, date)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			rec = ds.fresh(userID, date)
		case err != nil:
			return zero, persistence("load "+ds.kind+" day", err)
		}

		expected := rec.CurrentVersion()
		if err := mutate(rec); err != nil {
			return zero, err
		}
		rec.Recompute()
		rec.Touch(t.now())

		err = ds.put(ctx, rec, expected)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) {
			return zero, persistence("save "+ds.kind+" day", err)
		}
		if attempt >= t.maxRetries {
			t.logger.Warn("day update gave up after conflicts", "kind", ds.kind, "user", userID, "date", date, "attempts", attempt+1)
			return zero, fmt.Errorf("%s day %s/%s: %w after %d attempts", ds.kind, userID, date, storage.ErrVersionConflict, attempt+1)
		}
		t.logger.Debug("day version conflict, retrying", "kind", ds.kind, "user", userID, "date", date, "attempt", attempt+1)
	}
}

// readDay returns the stored record, or an empty one when the day has none.
func readDay[R models.DayRecord](ctx context.Context, ds dayStore[R], userID, date string) (R, error) {
	rec, err := ds.get(ctx, userID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return ds.fresh(userID, date), nil
	}
	if err != nil {
		var zero R
		return zero, persistence("load "+ds.kind+" day", err)
	}
	return rec, nil
}
