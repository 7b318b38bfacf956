// ABOUTME: Exercise operations: append and remove sessions, read exercise days.
// ABOUTME: Appends estimate missing calories and award achievements from recent history.
package tracker

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitdiary/internal/calc"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/storage"
)

// ExerciseInput describes an exercise session to log. When Duration is 0
// it is taken from StartTime and EndTime. When CaloriesBurned is 0 it is
// estimated from the exercise's MET value and the user's latest weight.
type ExerciseInput struct {
	ExerciseType   string     `json:"exercise_type"`
	ExerciseName   string     `json:"exercise_name,omitempty"`
	Duration       int        `json:"duration,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Intensity      string     `json:"intensity,omitempty"`
	CaloriesBurned float64    `json:"calories_burned,omitempty"`
	Distance       *float64   `json:"distance,omitempty"`
	Steps          *int       `json:"steps,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// ExerciseResult is returned by AppendExercise.
type ExerciseResult struct {
	EntryID           uuid.UUID                 `json:"entry_id"`
	Day               *models.DayExerciseRecord `json:"day"`
	CaloriesEstimated bool                      `json:"calories_estimated"`
	Achievements      []string                  `json:"achievements"`
}

// AppendExercise adds a session to the user's exercise day and evaluates achievements.
func (t *Tracker) AppendExercise(ctx context.Context, userID, date string, in *ExerciseInput) (*ExerciseResult, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	if err := validateExerciseInput(in); err != nil {
		return nil, err
	}

	entry := buildExercise(in)
	estimated := false
	if entry.CaloriesBurned == 0 && entry.Duration > 0 {
		kg, err := t.currentWeight(ctx, userID)
		if err != nil {
			return nil, err
		}
		entry.CaloriesBurned = float64(calc.ExerciseCalories(entry.ExerciseType, entry.Duration, kg))
		estimated = true
	}

	day, err := mutateDay(ctx, t, t.exerciseDays(), userID, date, func(rec *models.DayExerciseRecord) error {
		rec.Exercises = append(rec.Exercises, *entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	history, err := t.recentExercise(ctx, userID, date)
	if err != nil {
		t.logger.Warn("streak history unavailable", "user", userID, "date", date, "err", err)
		history = []*models.DayExerciseRecord{day}
	}
	achievements := t.achievements.Evaluate(date, entry, history)

	t.logger.Info("exercise appended", "user", userID, "date", date, "type", entry.ExerciseType,
		"minutes", entry.Duration, "kcal", entry.CaloriesBurned, "achievements", len(achievements), "version", day.Version)

	return &ExerciseResult{
		EntryID:           entry.ID,
		Day:               day,
		CaloriesEstimated: estimated,
		Achievements:      achievements,
	}, nil
}

func buildExercise(in *ExerciseInput) *models.ExerciseEntry {
	duration := in.Duration
	if duration == 0 && in.StartTime != nil && in.EndTime != nil {
		duration = int(math.Round(in.EndTime.Sub(*in.StartTime).Minutes()))
	}

	e := models.NewExerciseEntry(strings.ToLower(strings.TrimSpace(in.ExerciseType)), duration).
		WithName(in.ExerciseName).
		WithCalories(in.CaloriesBurned).
		WithNotes(in.Notes)
	if in.Intensity != "" {
		e.Intensity = models.Intensity(in.Intensity)
	}
	e.StartTime, e.EndTime = in.StartTime, in.EndTime
	if in.Distance != nil {
		e.WithDistance(*in.Distance)
	}
	if in.Steps != nil {
		e.WithSteps(*in.Steps)
	}
	return e
}

// currentWeight is the latest sample's weight, else the profile's initial
// weight, else 0 so the calorie formula uses its default.
func (t *Tracker) currentWeight(ctx context.Context, userID string) (float64, error) {
	s, err := t.repo.LatestHealthSample(ctx, userID)
	if err == nil && s.WeightKg > 0 {
		return s.WeightKg, nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return 0, persistence("load health sample", err)
	}

	p, err := t.repo.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, persistence("load profile", err)
	}
	return p.InitialWeightKg, nil
}

// recentExercise returns the exercise days inside the streak window ending on date.
func (t *Tracker) recentExercise(ctx context.Context, userID, date string) ([]*models.DayExerciseRecord, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return t.repo.ListExerciseDays(ctx, userID, storage.DayRange{
		From: t.achievements.WindowStart(day),
		To:   date,
	})
}

// RemoveExercise deletes the session whose ID starts with entryID and recomputes the day.
func (t *Tracker) RemoveExercise(ctx context.Context, userID, date, entryID string) (*models.DayExerciseRecord, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(entryID) == "" {
		return nil, invalid("entry_id", "must not be empty")
	}

	day, err := mutateDay(ctx, t, t.exerciseDays(), userID, date, func(rec *models.DayExerciseRecord) error {
		i, err := matchEntry(len(rec.Exercises), func(i int) uuid.UUID { return rec.Exercises[i].ID }, entryID)
		if err != nil {
			return err
		}
		rec.Exercises = append(rec.Exercises[:i], rec.Exercises[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("exercise removed", "user", userID, "date", date, "entry", entryID, "version", day.Version)
	return day, nil
}

// ExerciseDay returns the user's exercise record for date, or an empty one.
func (t *Tracker) ExerciseDay(ctx context.Context, userID, date string) (*models.DayExerciseRecord, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	return readDay(ctx, t.exerciseDays(), userID, date)
}

// RequireExerciseDay returns the user's exercise record for date, failing with ErrNotFound when absent.
func (t *Tracker) RequireExerciseDay(ctx context.Context, userID, date string) (*models.DayExerciseRecord, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	rec, err := t.repo.GetExerciseDay(ctx, userID, date)
	if err != nil {
		return nil, persistence("load exercise day", err)
	}
	return rec, nil
}

// ListExerciseDays returns exercise records between from and to inclusive, newest first.
func (t *Tracker) ListExerciseDays(ctx context.Context, userID, from, to string, limit int) ([]*models.DayExerciseRecord, error) {
	r, err := dayRange(userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	recs, err := t.repo.ListExerciseDays(ctx, userID, r)
	if err != nil {
		return nil, persistence("list exercise days", err)
	}
	return recs, nil
}
