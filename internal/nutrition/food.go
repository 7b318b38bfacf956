// ABOUTME: Scaling per-100g food facts to eaten portions.
// ABOUTME: Also produces per-food advice and sums portions into meal macros.
package nutrition

import (
	"github.com/harperreed/fitdiary/internal/calc"
	"github.com/harperreed/fitdiary/internal/models"
)

// Food advice texts.
const (
	FoodRecHighCalorie = "High in calories: eat in moderation"
	FoodRecHighProtein = "Rich in protein: supports muscle synthesis"
	FoodRecHighFiber   = "Rich in dietary fiber: aids digestion"
	FoodRecHighSodium  = "High in sodium: watch your intake"
	FoodRecHighSugar   = "High in sugar: keep portions small while cutting"
)

// Scale converts a per-100g fact to a portion of grams.
// Calories and sodium round to whole numbers, the rest to 0.1 g.
func Scale(f *models.FoodNutritionFact, grams float64) models.FoodPortion {
	ratio := grams / 100
	return models.FoodPortion{
		Name:          f.Name,
		QuantityGrams: grams,
		Calories:      float64(calc.Round(f.Calories * ratio)),
		Protein:       calc.RoundTo(f.Protein*ratio, 1),
		Carbs:         calc.RoundTo(f.Carbs*ratio, 1),
		Fat:           calc.RoundTo(f.Fat*ratio, 1),
		Fiber:         calc.RoundTo(f.Fiber*ratio, 1),
		Sugar:         calc.RoundTo(f.Sugar*ratio, 1),
		Sodium:        float64(calc.Round(f.Sodium * ratio)),
		Category:      f.Category,
	}
}

// FoodRecommendations returns advice for a single portion.
func FoodRecommendations(p models.FoodPortion) []string {
	recs := []string{}
	if p.Calories > 200 {
		recs = append(recs, FoodRecHighCalorie)
	}
	if p.Protein > 10 {
		recs = append(recs, FoodRecHighProtein)
	}
	if p.Fiber > 3 {
		recs = append(recs, FoodRecHighFiber)
	}
	if p.Sodium > 200 {
		recs = append(recs, FoodRecHighSodium)
	}
	if p.Sugar > 10 {
		recs = append(recs, FoodRecHighSugar)
	}
	return recs
}

// SumPortions adds up the nutrients of a food list into a meal's macro fields.
func SumPortions(m *models.MealEntry, portions []models.FoodPortion) {
	m.Calories, m.Protein, m.Carbs, m.Fat, m.Fiber, m.Sugar, m.Sodium = 0, 0, 0, 0, 0, 0, 0
	for _, p := range portions {
		m.Calories += p.Calories
		m.Protein += p.Protein
		m.Carbs += p.Carbs
		m.Fat += p.Fat
		m.Fiber += p.Fiber
		m.Sugar += p.Sugar
		m.Sodium += p.Sodium
	}
	m.Protein = calc.RoundTo(m.Protein, 1)
	m.Carbs = calc.RoundTo(m.Carbs, 1)
	m.Fat = calc.RoundTo(m.Fat, 1)
	m.Fiber = calc.RoundTo(m.Fiber, 1)
	m.Sugar = calc.RoundTo(m.Sugar, 1)
}
