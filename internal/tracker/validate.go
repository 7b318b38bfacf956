// ABOUTME: Input validation shared by tracker operations.
// ABOUTME: Every check runs before the first storage call.
package tracker

import (
	"math"
	"strings"

	"github.com/harperreed/fitdiary/internal/calc"
	"github.com/harperreed/fitdiary/internal/models"
)

func validateUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("user_id", "must not be empty")
	}
	return nil
}

func validateDay(userID, date string) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if _, err := models.ParseDate(date); err != nil {
		return invalid("date", "%v", err)
	}
	return nil
}

func validateOptionalDate(field, date string) error {
	if date == "" {
		return nil
	}
	if _, err := models.ParseDate(date); err != nil {
		return invalid(field, "%v", err)
	}
	return nil
}

type namedValue struct {
	field string
	value float64
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number, got %v", v)
	}
	if v < 0 {
		return invalid(field, "must not be negative, got %v", v)
	}
	return nil
}

func validateMealInput(in *MealInput) error {
	if in == nil {
		return invalid("meal", "payload is required")
	}
	if !models.IsValidMealType(in.MealType) {
		return invalid("meal_type", "must be one of breakfast, lunch, dinner, snack; got %q", in.MealType)
	}
	for _, f := range []namedValue{
		{"calories", in.Calories},
		{"protein", in.Protein},
		{"carbs", in.Carbs},
		{"fat", in.Fat},
		{"fiber", in.Fiber},
		{"sugar", in.Sugar},
		{"sodium", in.Sodium},
	} {
		if err := nonNegative(f.field, f.value); err != nil {
			return err
		}
	}
	for _, p := range in.Foods {
		if strings.TrimSpace(p.Name) == "" {
			return invalid("foods", "food name must not be empty")
		}
		if !(p.QuantityGrams > 0) || math.IsInf(p.QuantityGrams, 0) {
			return invalid("foods", "quantity for %q must be positive", p.Name)
		}
		for _, f := range []namedValue{
			{"calories", p.Calories},
			{"protein", p.Protein},
			{"carbs", p.Carbs},
			{"fat", p.Fat},
			{"fiber", p.Fiber},
			{"sugar", p.Sugar},
			{"sodium", p.Sodium},
		} {
			if nonNegative(f.field, f.value) != nil {
				return invalid("foods", "%s of %q must be a non-negative number, got %v", f.field, p.Name, f.value)
			}
		}
	}
	for _, ref := range in.FoodRefs {
		if strings.TrimSpace(ref.Name) == "" {
			return invalid("foods", "food name must not be empty")
		}
		if !(ref.Grams > 0) || math.IsInf(ref.Grams, 0) {
			return invalid("foods", "quantity for %q must be positive", ref.Name)
		}
	}
	return nil
}

func validateExerciseInput(in *ExerciseInput) error {
	if in == nil {
		return invalid("exercise", "payload is required")
	}
	if strings.TrimSpace(in.ExerciseType) == "" {
		return invalid("exercise_type", "must not be empty")
	}
	if in.Duration < 0 {
		return invalid("duration", "must not be negative, got %d", in.Duration)
	}
	if in.StartTime != nil && in.EndTime != nil && in.EndTime.Before(*in.StartTime) {
		return invalid("end_time", "must not be before start_time")
	}
	if in.Intensity != "" && !models.IsValidIntensity(in.Intensity) {
		return invalid("intensity", "must be one of low, medium, high; got %q", in.Intensity)
	}
	if err := nonNegative("calories_burned", in.CaloriesBurned); err != nil {
		return err
	}
	if in.Distance != nil {
		if err := nonNegative("distance", *in.Distance); err != nil {
			return err
		}
	}
	if in.Steps != nil && *in.Steps < 0 {
		return invalid("steps", "must not be negative, got %d", *in.Steps)
	}
	return nil
}

func validateProfile(p *models.UserProfile) error {
	if p.Age != 0 && !calc.ValidAge(p.Age) {
		return invalid("age", "must be between 10 and 100, got %d", p.Age)
	}
	if p.HeightCm != 0 && !calc.ValidHeight(p.HeightCm) {
		return invalid("height_cm", "must be between 100 and 250, got %v", p.HeightCm)
	}
	if p.InitialWeightKg != 0 && !calc.ValidWeight(p.InitialWeightKg) {
		return invalid("initial_weight_kg", "must be between 30 and 300, got %v", p.InitialWeightKg)
	}
	if p.ActivityLevel != "" && !models.IsValidActivityLevel(string(p.ActivityLevel)) {
		return invalid("activity_level", "unknown level %q", p.ActivityLevel)
	}
	g := p.Goals
	if g.TargetWeightKg != 0 && !calc.ValidWeight(g.TargetWeightKg) {
		return invalid("target_weight_kg", "must be between 30 and 300, got %v", g.TargetWeightKg)
	}
	for _, f := range []namedValue{
		{"weekly_goal_kg", g.WeeklyGoalKg},
		{"daily_calorie_target", g.DailyCalorieTarget},
		{"target_protein", g.TargetProtein},
		{"target_carbs", g.TargetCarbs},
		{"target_fat", g.TargetFat},
	} {
		if err := nonNegative(f.field, f.value); err != nil {
			return err
		}
	}
	return nil
}
