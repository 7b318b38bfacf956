// ABOUTME: Tests for meal scoring, macro split and recommendation ordering.
// ABOUTME: Includes a sweep over macro inputs for the split and score bounds.
package nutrition

import (
	"testing"

	"github.com/harperreed/fitdiary/internal/models"
)

func meal(mt models.MealType, cal, protein, carbs, fat, fiber, sugar float64) *models.MealEntry {
	m := models.NewMealEntry(mt)
	m.Calories, m.Protein, m.Carbs, m.Fat, m.Fiber, m.Sugar = cal, protein, carbs, fat, fiber, sugar
	return m
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestMacroSplitSumsToHundred(t *testing.T) {
	values := []float64{0, 0.5, 1, 3, 7.3, 10, 25, 42.2, 100, 333}
	for _, p := range values {
		for _, c := range values {
			for _, f := range values {
				pp, cp, fp := MacroSplit(p, c, f)
				if p+c+f == 0 {
					if pp != 0 || cp != 0 || fp != 0 {
						t.Fatalf("MacroSplit(0,0,0) = %d/%d/%d, want zeros", pp, cp, fp)
					}
					continue
				}
				sum := pp + cp + fp
				if sum < 99 || sum > 101 {
					t.Fatalf("MacroSplit(%v,%v,%v) sums to %d, want 100±1", p, c, f, sum)
				}
			}
		}
	}
}

func TestHealthScoreBounds(t *testing.T) {
	tests := []struct {
		name string
		m    *models.MealEntry
	}{
		{"huge calories", meal(models.MealDinner, 100000, 0, 0, 0, 0, 0)},
		{"negative fiber", meal(models.MealLunch, 500, 15, 40, 10, -5, 8)},
		{"everything bad", meal(models.MealSnack, 5000, 1, 900, 400, -5, 300)},
		{"everything good", meal(models.MealBreakfast, 250, 40, 30, 3, 12, 1)},
		{"all zero", meal(models.MealSnack, 0, 0, 0, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := HealthScore(tt.m)
			if score < 0 || score > 100 {
				t.Errorf("HealthScore = %d, want within [0,100]", score)
			}
		})
	}
}

func TestHealthScoreRules(t *testing.T) {
	tests := []struct {
		name string
		m    *models.MealEntry
		want int
	}{
		// 80 +10 (cal<300) +10 (protein>20) +5 (fat<5) +10 (fiber>5) +5 (sugar<5) = 120 -> 100
		{"clamped high", meal(models.MealBreakfast, 250, 40, 30, 3, 12, 1), 100},
		// 80 -10 (600<cal<=800) +0 +0 +0 +0 = 70
		{"moderate", meal(models.MealLunch, 700, 15, 60, 10, 3, 10), 70},
		// 80 -20 -5 -15 -5 -15 = 20
		{"poor", meal(models.MealDinner, 1200, 5, 100, 50, 1, 40), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HealthScore(tt.m); got != tt.want {
				t.Errorf("HealthScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAnalyzeHeavyMeal(t *testing.T) {
	s := NewScorer()
	a := s.Analyze(meal(models.MealDinner, 900, 10, 100, 40, 1, 20))

	if a.HealthScore > 45 {
		t.Errorf("HealthScore = %d, want <= 45", a.HealthScore)
	}
	if a.HealthScore != 25 {
		t.Errorf("HealthScore = %d, want 25", a.HealthScore)
	}
	if len(a.Recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3: %v", len(a.Recommendations), a.Recommendations)
	}
	want := []string{RecHighCalorie, RecLowProtein, RecLowFiber}
	for i, w := range want {
		if a.Recommendations[i] != w {
			t.Errorf("recommendation[%d] = %q, want %q", i, a.Recommendations[i], w)
		}
	}
	// Sugar of exactly 20 g is not above the threshold.
	if contains(a.Recommendations, RecHighSugar) {
		t.Error("sugar at 20 g should not trigger the high sugar advice")
	}
}

func TestAnalyzeHighSugarSurfacesWhenRoomLeft(t *testing.T) {
	s := NewScorer()
	// calories 500: no calorie advice; protein 25% ok; fat 25% ok; fiber 4 ok; sugar 30 high.
	a := s.Analyze(meal(models.MealSnack, 500, 20, 40, 20, 4, 30))

	if len(a.Recommendations) != 2 {
		t.Fatalf("got %v, want high sugar plus the snack tip", a.Recommendations)
	}
	if a.Recommendations[0] != RecHighSugar {
		t.Errorf("first recommendation = %q, want high sugar", a.Recommendations[0])
	}
	if a.Recommendations[1] != DefaultTips()[models.MealSnack] {
		t.Errorf("second recommendation = %q, want snack tip", a.Recommendations[1])
	}
	if a.ProteinPct != 25 || a.CarbsPct != 50 || a.FatPct != 25 {
		t.Errorf("split = %d/%d/%d, want 25/50/25", a.ProteinPct, a.CarbsPct, a.FatPct)
	}
}

func TestScorerConfigurableTipsAndCap(t *testing.T) {
	s := &Scorer{
		Tips:               map[models.MealType]string{models.MealLunch: "eat slowly"},
		MaxRecommendations: 1,
	}
	a := s.Analyze(meal(models.MealLunch, 500, 20, 40, 20, 4, 10))
	if len(a.Recommendations) != 1 || a.Recommendations[0] != "eat slowly" {
		t.Errorf("Recommendations = %v, want [eat slowly]", a.Recommendations)
	}

	a = s.Analyze(meal(models.MealLunch, 900, 5, 100, 60, 1, 30))
	if len(a.Recommendations) != 1 || a.Recommendations[0] != RecHighCalorie {
		t.Errorf("Recommendations = %v, want only the calorie advice", a.Recommendations)
	}
}

func TestZeroScorerUsesDefaults(t *testing.T) {
	var s Scorer
	a := s.Analyze(meal(models.MealBreakfast, 500, 20, 40, 20, 4, 10))
	if len(a.Recommendations) != 1 || a.Recommendations[0] != DefaultTips()[models.MealBreakfast] {
		t.Errorf("Recommendations = %v, want the breakfast tip", a.Recommendations)
	}
}
