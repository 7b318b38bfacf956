// ABOUTME: Period summaries over a range of diet or exercise day records.
// ABOUTME: Averages are per recorded day, not per calendar day.
package progress

import (
	"sort"

	"github.com/harperreed/fitdiary/internal/calc"
	"github.com/harperreed/fitdiary/internal/models"
)

// DietSummary aggregates diet records over a period.
type DietSummary struct {
	Days            int     `json:"days"`
	Meals           int     `json:"meals"`
	TotalCalories   float64 `json:"total_calories"`
	TotalProtein    float64 `json:"total_protein"`
	TotalCarbs      float64 `json:"total_carbs"`
	TotalFat        float64 `json:"total_fat"`
	AverageCalories float64 `json:"average_calories"`
	AverageProtein  float64 `json:"average_protein"`
	AverageCarbs    float64 `json:"average_carbs"`
	AverageFat      float64 `json:"average_fat"`
}

// SummarizeDiet totals and averages the records.
func SummarizeDiet(records []*models.DayDietRecord) DietSummary {
	var s DietSummary
	for _, r := range records {
		if r == nil {
			continue
		}
		s.Days++
		s.Meals += len(r.Meals)
		s.TotalCalories += r.TotalCalories
		s.TotalProtein += r.TotalProtein
		s.TotalCarbs += r.TotalCarbs
		s.TotalFat += r.TotalFat
	}
	if s.Days == 0 {
		return s
	}
	n := float64(s.Days)
	s.AverageCalories = float64(calc.Round(s.TotalCalories / n))
	s.AverageProtein = calc.RoundTo(s.TotalProtein/n, 1)
	s.AverageCarbs = calc.RoundTo(s.TotalCarbs/n, 1)
	s.AverageFat = calc.RoundTo(s.TotalFat/n, 1)
	return s
}

// ExerciseSummary aggregates exercise records over a period.
type ExerciseSummary struct {
	Days            int     `json:"days"`
	Workouts        int     `json:"workouts"`
	TotalDuration   int     `json:"total_duration"`
	TotalCalories   float64 `json:"total_calories"`
	AverageDuration float64 `json:"average_duration"`
	AverageCalories float64 `json:"average_calories"`
	FavoriteType    string  `json:"favorite_type,omitempty"`
}

// SummarizeExercise totals and averages the records and picks the most frequent exercise type.
// Ties go to the alphabetically first type.
func SummarizeExercise(records []*models.DayExerciseRecord) ExerciseSummary {
	var s ExerciseSummary
	counts := make(map[string]int)
	for _, r := range records {
		if r == nil {
			continue
		}
		s.Days++
		s.TotalDuration += r.TotalDuration
		s.TotalCalories += r.TotalCaloriesBurned
		for _, e := range r.Exercises {
			s.Workouts++
			counts[e.ExerciseType]++
		}
	}
	if s.Days == 0 {
		return s
	}
	n := float64(s.Days)
	s.AverageDuration = calc.RoundTo(float64(s.TotalDuration)/n, 1)
	s.AverageCalories = float64(calc.Round(s.TotalCalories / n))

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	best := 0
	for _, t := range types {
		if counts[t] > best {
			best = counts[t]
			s.FavoriteType = t
		}
	}
	return s
}
