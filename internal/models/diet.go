// ABOUTME: Meal entries, food portions and the per-day diet record.
// ABOUTME: Day totals are always rebuilt from the full meal list.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MealType identifies which meal of the day an entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes returns all valid meal types.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// FoodNutritionFact holds nutrients per 100 g of a food.
type FoodNutritionFact struct {
	Name     string  `json:"name" yaml:"name"`
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Fiber    float64 `json:"fiber" yaml:"fiber"`
	Sugar    float64 `json:"sugar" yaml:"sugar"`
	Sodium   float64 `json:"sodium" yaml:"sodium"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty"`
	Source   string  `json:"source,omitempty" yaml:"source,omitempty"`
}

// FoodPortion is a fact scaled to an eaten quantity.
type FoodPortion struct {
	Name          string  `json:"name" yaml:"name"`
	QuantityGrams float64 `json:"quantity_grams" yaml:"quantity_grams"`
	Calories      float64 `json:"calories" yaml:"calories"`
	Protein       float64 `json:"protein" yaml:"protein"`
	Carbs         float64 `json:"carbs" yaml:"carbs"`
	Fat           float64 `json:"fat" yaml:"fat"`
	Fiber         float64 `json:"fiber" yaml:"fiber"`
	Sugar         float64 `json:"sugar" yaml:"sugar"`
	Sodium        float64 `json:"sodium" yaml:"sodium"`
	Category      string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// MealEntry is one logged meal.
type MealEntry struct {
	ID        uuid.UUID     `json:"id" yaml:"id"`
	MealType  MealType      `json:"meal_type" yaml:"meal_type"`
	MealName  string        `json:"meal_name,omitempty" yaml:"meal_name,omitempty"`
	Foods     []FoodPortion `json:"foods,omitempty" yaml:"foods,omitempty"`
	Calories  float64       `json:"calories" yaml:"calories"`
	Protein   float64       `json:"protein" yaml:"protein"`
	Carbs     float64       `json:"carbs" yaml:"carbs"`
	Fat       float64       `json:"fat" yaml:"fat"`
	Fiber     float64       `json:"fiber" yaml:"fiber"`
	Sugar     float64       `json:"sugar" yaml:"sugar"`
	Sodium    float64       `json:"sodium" yaml:"sodium"`
	Notes     string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
}

// NewMealEntry creates a meal with a generated UUID and the current timestamp.
func NewMealEntry(mealType MealType) *MealEntry {
	return &MealEntry{
		ID:        uuid.New(),
		MealType:  mealType,
		Timestamp: time.Now(),
	}
}

// WithName sets the meal name.
func (m *MealEntry) WithName(name string) *MealEntry {
	m.MealName = name
	return m
}

// WithNotes sets notes on the meal.
func (m *MealEntry) WithNotes(notes string) *MealEntry {
	m.Notes = notes
	return m
}

// WithTimestamp sets a custom timestamp.
func (m *MealEntry) WithTimestamp(t time.Time) *MealEntry {
	m.Timestamp = t
	return m
}

// DayDietRecord is the diet bucket for one user on one day.
type DayDietRecord struct {
	UserID        string      `json:"user_id" yaml:"user_id"`
	Date          string      `json:"date" yaml:"date"`
	Meals         []MealEntry `json:"meals" yaml:"meals"`
	TotalCalories float64     `json:"total_calories" yaml:"total_calories"`
	TotalProtein  float64     `json:"total_protein" yaml:"total_protein"`
	TotalCarbs    float64     `json:"total_carbs" yaml:"total_carbs"`
	TotalFat      float64     `json:"total_fat" yaml:"total_fat"`
	TotalFiber    float64     `json:"total_fiber" yaml:"total_fiber"`
	TotalSugar    float64     `json:"total_sugar" yaml:"total_sugar"`
	TotalSodium   float64     `json:"total_sodium" yaml:"total_sodium"`
	Version       int64       `json:"version" yaml:"version"`
	CreatedAt     time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" yaml:"updated_at"`
}

// NewDayDietRecord creates an empty, not yet persisted record.
func NewDayDietRecord(userID, date string) *DayDietRecord {
	now := time.Now()
	return &DayDietRecord{
		UserID:    userID,
		Date:      date,
		Meals:     []MealEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Recompute rebuilds every total from the meal list.
func (r *DayDietRecord) Recompute() {
	r.TotalCalories, r.TotalProtein, r.TotalCarbs, r.TotalFat = 0, 0, 0, 0
	r.TotalFiber, r.TotalSugar, r.TotalSodium = 0, 0, 0
	for _, m := range r.Meals {
		r.TotalCalories += m.Calories
		r.TotalProtein += m.Protein
		r.TotalCarbs += m.Carbs
		r.TotalFat += m.Fat
		r.TotalFiber += m.Fiber
		r.TotalSugar += m.Sugar
		r.TotalSodium += m.Sodium
	}
}

// CurrentVersion returns the persisted version the record was loaded at.
func (r *DayDietRecord) CurrentVersion() int64 { return r.Version }

// Touch stamps the update time.
func (r *DayDietRecord) Touch(t time.Time) { r.UpdatedAt = t }

// DayRecord is implemented by both per-day record kinds.
type DayRecord interface {
	Recompute()
	CurrentVersion() int64
	Touch(t time.Time)
}
