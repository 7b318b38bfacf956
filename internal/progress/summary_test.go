// ABOUTME: Tests for diet and exercise period summaries.
// ABOUTME: Covers empty ranges, averages and favorite type tie-breaking.
package progress

import (
	"testing"

	"github.com/harperreed/fitdiary/internal/models"
)

func TestSummarizeDiet(t *testing.T) {
	d1 := models.NewDayDietRecord("u1", "2025-03-01")
	d1.Meals = []models.MealEntry{{Calories: 1500, Protein: 60, Carbs: 150, Fat: 50}}
	d1.Recompute()
	d2 := models.NewDayDietRecord("u1", "2025-03-02")
	d2.Meals = []models.MealEntry{
		{Calories: 1000, Protein: 40, Carbs: 100, Fat: 30},
		{Calories: 1000, Protein: 41, Carbs: 100, Fat: 30},
	}
	d2.Recompute()

	s := SummarizeDiet([]*models.DayDietRecord{d1, d2})

	if s.Days != 2 || s.Meals != 3 {
		t.Errorf("Days/Meals = %d/%d, want 2/3", s.Days, s.Meals)
	}
	if s.TotalCalories != 3500 || s.AverageCalories != 1750 {
		t.Errorf("calories total/avg = %v/%v, want 3500/1750", s.TotalCalories, s.AverageCalories)
	}
	if s.AverageProtein != 70.5 {
		t.Errorf("AverageProtein = %v, want 70.5", s.AverageProtein)
	}

	if empty := SummarizeDiet(nil); empty.Days != 0 || empty.AverageCalories != 0 {
		t.Errorf("empty summary = %+v, want zeros", empty)
	}
}

func TestSummarizeExercise(t *testing.T) {
	d1 := models.NewDayExerciseRecord("u1", "2025-03-01")
	d1.Exercises = []models.ExerciseEntry{
		*models.NewExerciseEntry("running", 30).WithCalories(300),
		*models.NewExerciseEntry("yoga", 20).WithCalories(60),
	}
	d1.Recompute()
	d2 := models.NewDayExerciseRecord("u1", "2025-03-02")
	d2.Exercises = []models.ExerciseEntry{*models.NewExerciseEntry("running", 25).WithCalories(250)}
	d2.Recompute()

	s := SummarizeExercise([]*models.DayExerciseRecord{d1, d2})

	if s.Days != 2 || s.Workouts != 3 {
		t.Errorf("Days/Workouts = %d/%d, want 2/3", s.Days, s.Workouts)
	}
	if s.TotalDuration != 75 || s.AverageDuration != 37.5 {
		t.Errorf("duration total/avg = %d/%v, want 75/37.5", s.TotalDuration, s.AverageDuration)
	}
	if s.TotalCalories != 610 || s.AverageCalories != 305 {
		t.Errorf("calories total/avg = %v/%v, want 610/305", s.TotalCalories, s.AverageCalories)
	}
	if s.FavoriteType != "running" {
		t.Errorf("FavoriteType = %q, want running", s.FavoriteType)
	}
}

func TestSummarizeExerciseTieBreak(t *testing.T) {
	d := models.NewDayExerciseRecord("u1", "2025-03-01")
	d.Exercises = []models.ExerciseEntry{
		*models.NewExerciseEntry("yoga", 20),
		*models.NewExerciseEntry("cycling", 20),
	}
	d.Recompute()

	if s := SummarizeExercise([]*models.DayExerciseRecord{d}); s.FavoriteType != "cycling" {
		t.Errorf("FavoriteType = %q, want cycling on a tie", s.FavoriteType)
	}
}
