// ABOUTME: Per-meal nutrition analysis: macro split, health score and advice.
// ABOUTME: Thresholds are fixed; tips and the advice cap are configurable.
package nutrition

import (
	"github.com/harperreed/fitdiary/internal/calc"
	"github.com/harperreed/fitdiary/internal/models"
)

// DefaultMaxRecommendations caps how many recommendations an analysis surfaces.
const DefaultMaxRecommendations = 3

// Recommendation texts, in the order they are generated.
const (
	RecHighCalorie  = "High calorie meal: consider a lighter next meal"
	RecLowCalorie   = "Low calorie meal: you can add a bit more nutrition"
	RecLowProtein   = "Protein intake is low: add more protein-rich foods"
	RecHighProtein  = "Protein share is high: balance it with other nutrients"
	RecHighFat      = "Fat share is high: cut back on greasy food"
	RecLowFiber     = "Fiber is low: add vegetables and whole grains"
	RecHighSugar    = "Sugar is high: go easy on sweets"
	baseHealthScore = 80
)

// DefaultTips returns the fixed per-meal-type tips.
func DefaultTips() map[models.MealType]string {
	return map[models.MealType]string{
		models.MealBreakfast: "Breakfast tip: include enough protein and complex carbs",
		models.MealLunch:     "Lunch tip: keep it balanced with protein, carbs and vegetables",
		models.MealDinner:    "Dinner tip: keep it light and easy to digest",
		models.MealSnack:     "Snack tip: choose fruit, nuts or other healthy options",
	}
}

// Analysis is the result of scoring one meal.
type Analysis struct {
	MealType        models.MealType `json:"meal_type"`
	TotalCalories   float64         `json:"total_calories"`
	ProteinPct      int             `json:"protein_pct"`
	CarbsPct        int             `json:"carbs_pct"`
	FatPct          int             `json:"fat_pct"`
	HealthScore     int             `json:"health_score"`
	Recommendations []string        `json:"recommendations"`
}

// Scorer analyzes meals. The zero value uses the default tips and cap.
type Scorer struct {
	Tips               map[models.MealType]string
	MaxRecommendations int
}

// NewScorer creates a Scorer with default tips and cap.
func NewScorer() *Scorer {
	return &Scorer{
		Tips:               DefaultTips(),
		MaxRecommendations: DefaultMaxRecommendations,
	}
}

// Analyze scores a meal.
func (s *Scorer) Analyze(m *models.MealEntry) Analysis {
	a := Analysis{
		MealType:      m.MealType,
		TotalCalories: m.Calories,
	}
	a.ProteinPct, a.CarbsPct, a.FatPct = MacroSplit(m.Protein, m.Carbs, m.Fat)
	a.HealthScore = HealthScore(m)
	a.Recommendations = s.recommend(m, a)
	return a
}

// MacroSplit returns each macro's rounded share of the macro grams. All zero when the sum is not positive.
func MacroSplit(protein, carbs, fat float64) (proteinPct, carbsPct, fatPct int) {
	total := protein + carbs + fat
	if total <= 0 {
		return 0, 0, 0
	}
	return calc.Round(protein / total * 100), calc.Round(carbs / total * 100), calc.Round(fat / total * 100)
}

// HealthScore applies the additive scoring rules and clamps to 0..100.
func HealthScore(m *models.MealEntry) int {
	score := baseHealthScore

	switch {
	case m.Calories > 800:
		score -= 20
	case m.Calories > 600:
		score -= 10
	case m.Calories < 300:
		score += 10
	}

	switch {
	case m.Protein > 20:
		score += 10
	case m.Protein < 10:
		score -= 5
	}

	switch {
	case m.Fat > 20:
		score -= 15
	case m.Fat < 5:
		score += 5
	}

	switch {
	case m.Fiber > 5:
		score += 10
	case m.Fiber < 2:
		score -= 5
	}

	switch {
	case m.Sugar > 15:
		score -= 15
	case m.Sugar < 5:
		score += 5
	}

	return max(0, min(100, score))
}

func (s *Scorer) recommend(m *models.MealEntry, a Analysis) []string {
	var recs []string

	switch {
	case m.Calories > 800:
		recs = append(recs, RecHighCalorie)
	case m.Calories < 300:
		recs = append(recs, RecLowCalorie)
	}

	switch {
	case a.ProteinPct < 15:
		recs = append(recs, RecLowProtein)
	case a.ProteinPct > 35:
		recs = append(recs, RecHighProtein)
	}

	if a.FatPct > 35 {
		recs = append(recs, RecHighFat)
	}
	if m.Fiber < 3 {
		recs = append(recs, RecLowFiber)
	}
	if m.Sugar > 20 {
		recs = append(recs, RecHighSugar)
	}

	tips := s.Tips
	if tips == nil {
		tips = DefaultTips()
	}
	if tip, ok := tips[m.MealType]; ok && tip != "" {
		recs = append(recs, tip)
	}

	limit := s.MaxRecommendations
	if limit <= 0 {
		limit = DefaultMaxRecommendations
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	if recs == nil {
		recs = []string{}
	}
	return recs
}
