// ABOUTME: Exercise entries and the per-day exercise record.
// ABOUTME: Like diet records, totals are rebuilt from the entry list.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Intensity is the perceived effort of an exercise session.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// IsValidIntensity checks if a string is a valid intensity.
func IsValidIntensity(s string) bool {
	switch Intensity(s) {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// ExerciseEntry is one exercise session.
type ExerciseEntry struct {
	ID             uuid.UUID  `json:"id" yaml:"id"`
	ExerciseType   string     `json:"exercise_type" yaml:"exercise_type"`
	ExerciseName   string     `json:"exercise_name,omitempty" yaml:"exercise_name,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Duration       int        `json:"duration" yaml:"duration"`
	Intensity      Intensity  `json:"intensity" yaml:"intensity"`
	CaloriesBurned float64    `json:"calories_burned" yaml:"calories_burned"`
	Distance       *float64   `json:"distance,omitempty" yaml:"distance,omitempty"`
	Steps          *int       `json:"steps,omitempty" yaml:"steps,omitempty"`
	Notes          string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
}

// NewExerciseEntry creates an entry with a generated UUID and medium intensity.
func NewExerciseEntry(exerciseType string, durationMinutes int) *ExerciseEntry {
	return &ExerciseEntry{
		ID:           uuid.New(),
		ExerciseType: exerciseType,
		Duration:     durationMinutes,
		Intensity:    IntensityMedium,
		CreatedAt:    time.Now(),
	}
}

// WithName sets a display name.
func (e *ExerciseEntry) WithName(name string) *ExerciseEntry {
	e.ExerciseName = name
	return e
}

// WithCalories sets the burned calories.
func (e *ExerciseEntry) WithCalories(kcal float64) *ExerciseEntry {
	e.CaloriesBurned = kcal
	return e
}

// WithDistance sets the distance in km.
func (e *ExerciseEntry) WithDistance(km float64) *ExerciseEntry {
	e.Distance = &km
	return e
}

// WithSteps sets the step count.
func (e *ExerciseEntry) WithSteps(steps int) *ExerciseEntry {
	e.Steps = &steps
	return e
}

// WithNotes sets notes on the entry.
func (e *ExerciseEntry) WithNotes(notes string) *ExerciseEntry {
	e.Notes = notes
	return e
}

// DayExerciseRecord is the exercise bucket for one user on one day.
type DayExerciseRecord struct {
	UserID              string          `json:"user_id" yaml:"user_id"`
	Date                string          `json:"date" yaml:"date"`
	Exercises           []ExerciseEntry `json:"exercises" yaml:"exercises"`
	TotalDuration       int             `json:"total_duration" yaml:"total_duration"`
	TotalCaloriesBurned float64         `json:"total_calories_burned" yaml:"total_calories_burned"`
	TotalSteps          int             `json:"total_steps" yaml:"total_steps"`
	TotalDistance       float64         `json:"total_distance" yaml:"total_distance"`
	Version             int64           `json:"version" yaml:"version"`
	CreatedAt           time.Time       `json:"created_at" yaml:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" yaml:"updated_at"`
}

// NewDayExerciseRecord creates an empty, not yet persisted record.
func NewDayExerciseRecord(userID, date string) *DayExerciseRecord {
	now := time.Now()
	return &DayExerciseRecord{
		UserID:    userID,
		Date:      date,
		Exercises: []ExerciseEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Recompute rebuilds every total from the exercise list.
func (r *DayExerciseRecord) Recompute() {
	r.TotalDuration, r.TotalCaloriesBurned, r.TotalSteps, r.TotalDistance = 0, 0, 0, 0
	for _, e := range r.Exercises {
		r.TotalDuration += e.Duration
		r.TotalCaloriesBurned += e.CaloriesBurned
		if e.Steps != nil {
			r.TotalSteps += *e.Steps
		}
		if e.Distance != nil {
			r.TotalDistance += *e.Distance
		}
	}
}

// CurrentVersion returns the persisted version the record was loaded at.
func (r *DayExerciseRecord) CurrentVersion() int64 { return r.Version }

// Touch stamps the update time.
func (r *DayExerciseRecord) Touch(t time.Time) { r.UpdatedAt = t }
