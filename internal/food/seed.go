// ABOUTME: Built-in per-100g facts for common foods.
// ABOUTME: Used when neither the local store nor the remote source knows a food.
package food

import (
	"sort"
	"strings"

	"github.com/harperreed/fitdiary/internal/models"
)

// SourceSeed marks facts that come from the built-in table.
const SourceSeed = "seed"

var seedFacts = []models.FoodNutritionFact{
	{Name: "apple", Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2, Fiber: 2.4, Sugar: 10.4, Sodium: 1, Category: "fruit"},
	{Name: "banana", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6, Sugar: 12.2, Sodium: 1, Category: "fruit"},
	{Name: "chicken breast", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Fiber: 0, Sugar: 0, Sodium: 74, Category: "meat"},
	{Name: "white rice", Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4, Sugar: 0.1, Sodium: 1, Category: "staple"},
	{Name: "broccoli", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6, Sugar: 1.5, Sodium: 33, Category: "vegetable"},
	{Name: "egg", Calories: 143, Protein: 12.6, Carbs: 0.7, Fat: 9.5, Fiber: 0, Sugar: 0.4, Sodium: 142, Category: "protein"},
	{Name: "oats", Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9, Fiber: 10.6, Sugar: 0, Sodium: 2, Category: "staple"},
	{Name: "salmon", Calories: 208, Protein: 20, Carbs: 0, Fat: 13, Fiber: 0, Sugar: 0, Sodium: 59, Category: "fish"},
}

// SeedFacts returns a copy of the built-in table sorted by name.
func SeedFacts() []models.FoodNutritionFact {
	out := make([]models.FoodNutritionFact, len(seedFacts))
	for i, f := range seedFacts {
		f.Source = SourceSeed
		out[i] = f
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// matchSeed finds a built-in fact whose name contains, or is contained in, name.
func matchSeed(name string) (*models.FoodNutritionFact, bool) {
	needle := normalize(name)
	if needle == "" {
		return nil, false
	}
	for _, f := range SeedFacts() {
		if strings.Contains(needle, f.Name) || strings.Contains(f.Name, needle) {
			return &f, true
		}
	}
	return nil, false
}
