// ABOUTME: MET-based exercise energy estimates and food nutrition density.
// ABOUTME: Used when an exercise entry arrives without a calorie figure.
package calc

import "strings"

const (
	// DefaultMET applies to exercise types missing from the table.
	DefaultMET = 3.5
	// DefaultWeightKg is used when no body weight is known.
	DefaultWeightKg = 60
)

var metValues = map[string]float64{
	"walking":    3.5,
	"running":    8.0,
	"cycling":    6.0,
	"swimming":   7.0,
	"yoga":       2.5,
	"strength":   5.0,
	"dancing":    4.0,
	"basketball": 8.0,
	"soccer":     9.0,
	"tennis":     7.0,
	"badminton":  5.5,
	"pingpong":   4.0,
	"hiking":     6.0,
	"climbing":   8.0,
}

// MET returns the metabolic equivalent for an exercise type.
func MET(exerciseType string) float64 {
	if met, ok := metValues[strings.ToLower(strings.TrimSpace(exerciseType))]; ok {
		return met
	}
	return DefaultMET
}

// ExerciseCaloriesPerMinute is met * weight * 3.5 / 200.
func ExerciseCaloriesPerMinute(exerciseType string, weightKg float64) float64 {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	return MET(exerciseType) * weightKg * 3.5 / 200
}

// ExerciseCalories estimates the calories burned over a session, rounded.
func ExerciseCalories(exerciseType string, minutes int, weightKg float64) int {
	if minutes <= 0 {
		return 0
	}
	return Round(ExerciseCaloriesPerMinute(exerciseType, weightKg) * float64(minutes))
}

// NutritionDensity grades a food by protein energy share and fiber.
func NutritionDensity(calories, protein, fiber float64) string {
	if calories <= 0 {
		return "unknown"
	}
	score := (protein*4/calories)*100 + fiber*2
	switch {
	case score >= 20:
		return "high"
	case score >= 10:
		return "medium"
	default:
		return "low"
	}
}
