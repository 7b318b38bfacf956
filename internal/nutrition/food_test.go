// ABOUTME: Tests for portion scaling, food advice and portion sums.
// ABOUTME: Uses the seed table values for chicken breast and banana.
package nutrition

import (
	"testing"

	"github.com/harperreed/fitdiary/internal/models"
)

var chicken = &models.FoodNutritionFact{
	Name: "chicken breast", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Sodium: 74, Category: "meat",
}

var banana = &models.FoodNutritionFact{
	Name: "banana", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6, Sugar: 12.2, Sodium: 1, Category: "fruit",
}

func TestScale(t *testing.T) {
	p := Scale(chicken, 200)

	if p.QuantityGrams != 200 {
		t.Errorf("QuantityGrams = %v, want 200", p.QuantityGrams)
	}
	if p.Calories != 330 {
		t.Errorf("Calories = %v, want 330", p.Calories)
	}
	if p.Protein != 62 {
		t.Errorf("Protein = %v, want 62", p.Protein)
	}
	if p.Fat != 7.2 {
		t.Errorf("Fat = %v, want 7.2", p.Fat)
	}
	if p.Sodium != 148 {
		t.Errorf("Sodium = %v, want 148", p.Sodium)
	}
	if p.Category != "meat" {
		t.Errorf("Category = %q, want meat", p.Category)
	}
}

func TestScaleRoundsCaloriesToWholeNumbers(t *testing.T) {
	p := Scale(banana, 120)
	// 89 * 1.2 = 106.8 -> 107
	if p.Calories != 107 {
		t.Errorf("Calories = %v, want 107", p.Calories)
	}
	// 23 * 1.2 = 27.6
	if p.Carbs != 27.6 {
		t.Errorf("Carbs = %v, want 27.6", p.Carbs)
	}
}

func TestFoodRecommendations(t *testing.T) {
	recs := FoodRecommendations(Scale(chicken, 200))
	want := []string{FoodRecHighCalorie, FoodRecHighProtein}
	if len(recs) != len(want) {
		t.Fatalf("got %v, want %v", recs, want)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("recs[%d] = %q, want %q", i, recs[i], want[i])
		}
	}

	if recs := FoodRecommendations(models.FoodPortion{Calories: 50}); len(recs) != 0 {
		t.Errorf("expected no advice for a light food, got %v", recs)
	}

	salty := models.FoodPortion{Sodium: 500, Sugar: 12, Fiber: 4}
	if recs := FoodRecommendations(salty); len(recs) != 3 {
		t.Errorf("expected fiber, sodium and sugar advice, got %v", recs)
	}
}

func TestSumPortions(t *testing.T) {
	m := models.NewMealEntry(models.MealLunch)
	SumPortions(m, []models.FoodPortion{Scale(chicken, 100), Scale(banana, 100)})

	if m.Calories != 254 {
		t.Errorf("Calories = %v, want 254", m.Calories)
	}
	if m.Protein != 32.1 {
		t.Errorf("Protein = %v, want 32.1", m.Protein)
	}
	if m.Sodium != 75 {
		t.Errorf("Sodium = %v, want 75", m.Sodium)
	}

	SumPortions(m, nil)
	if m.Calories != 0 || m.Protein != 0 {
		t.Errorf("empty food list should zero the macros, got %v kcal %v protein", m.Calories, m.Protein)
	}
}
