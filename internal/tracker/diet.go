// ABOUTME: Diet operations: append and remove meals, read diet days.
// ABOUTME: Appends return the day totals, the meal's analysis and the day's goal badges.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitdiary/internal/food"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/nutrition"
	"github.com/harperreed/fitdiary/internal/progress"
	"github.com/harperreed/fitdiary/internal/storage"
)

// FoodRef asks the tracker to look a food up and scale it to Grams.
type FoodRef struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

// MealInput describes a meal to log. When every macro is zero and foods
// are given, the macros are the sum of the food portions.
type MealInput struct {
	MealType  string               `json:"meal_type"`
	MealName  string               `json:"meal_name,omitempty"`
	Calories  float64              `json:"calories,omitempty"`
	Protein   float64              `json:"protein,omitempty"`
	Carbs     float64              `json:"carbs,omitempty"`
	Fat       float64              `json:"fat,omitempty"`
	Fiber     float64              `json:"fiber,omitempty"`
	Sugar     float64              `json:"sugar,omitempty"`
	Sodium    float64              `json:"sodium,omitempty"`
	Foods     []models.FoodPortion `json:"foods,omitempty"`
	FoodRefs  []FoodRef            `json:"food_refs,omitempty"`
	Notes     string               `json:"notes,omitempty"`
	Timestamp time.Time            `json:"timestamp,omitempty"`
}

func (in *MealInput) hasMacros() bool {
	return in.Calories != 0 || in.Protein != 0 || in.Carbs != 0 || in.Fat != 0 ||
		in.Fiber != 0 || in.Sugar != 0 || in.Sodium != 0
}

// MealResult is returned by AppendMeal.
type MealResult struct {
	EntryID  uuid.UUID             `json:"entry_id"`
	Day      *models.DayDietRecord `json:"day"`
	Analysis nutrition.Analysis    `json:"analysis"`
	Badges   []string              `json:"badges"`
}

// AppendMeal adds a meal to the user's diet day and scores it.
func (t *Tracker) AppendMeal(ctx context.Context, userID, date string, in *MealInput) (*MealResult, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	if err := validateMealInput(in); err != nil {
		return nil, err
	}
	if len(in.FoodRefs) > 0 && t.foods == nil {
		return nil, invalid("foods", "food lookup is not configured")
	}

	entry, err := t.buildMeal(ctx, in)
	if err != nil {
		return nil, err
	}
	// Goals are read before the write so a failed read leaves the day untouched.
	goals, err := t.goals(ctx, userID)
	if err != nil {
		return nil, err
	}

	day, err := mutateDay(ctx, t, t.dietDays(), userID, date, func(rec *models.DayDietRecord) error {
		rec.Meals = append(rec.Meals, *entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("meal appended", "user", userID, "date", date, "meal", entry.MealType, "kcal", entry.Calories, "version", day.Version)

	return &MealResult{
		EntryID:  entry.ID,
		Day:      day,
		Analysis: t.scorer.Analyze(entry),
		Badges: t.progress.Badges(goals, progress.DayTotals{
			Consumed: day.TotalCalories,
			Protein:  day.TotalProtein,
		}),
	}, nil
}

func (t *Tracker) buildMeal(ctx context.Context, in *MealInput) (*models.MealEntry, error) {
	m := models.NewMealEntry(models.MealType(in.MealType)).WithName(in.MealName).WithNotes(in.Notes)
	if !in.Timestamp.IsZero() {
		m.WithTimestamp(in.Timestamp)
	}

	m.Foods = append(m.Foods, in.Foods...)
	for _, ref := range in.FoodRefs {
		fact, err := t.foods.Lookup(ctx, ref.Name)
		switch {
		case errors.Is(err, food.ErrUnknownFood):
			return nil, fmt.Errorf("food %q: %w", ref.Name, ErrNotFound)
		case errors.Is(err, food.ErrInvalidQuery):
			return nil, invalid("foods", "%v", err)
		case err != nil:
			return nil, fmt.Errorf("lookup food %q: %w", ref.Name, err)
		}
		m.Foods = append(m.Foods, nutrition.Scale(fact, ref.Grams))
	}

	if !in.hasMacros() && len(m.Foods) > 0 {
		nutrition.SumPortions(m, m.Foods)
		return m, nil
	}
	m.Calories, m.Protein, m.Carbs, m.Fat = in.Calories, in.Protein, in.Carbs, in.Fat
	m.Fiber, m.Sugar, m.Sodium = in.Fiber, in.Sugar, in.Sodium
	return m, nil
}

// RemoveMeal deletes the meal whose ID starts with entryID and recomputes the day.
func (t *Tracker) RemoveMeal(ctx context.Context, userID, date, entryID string) (*models.DayDietRecord, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(entryID) == "" {
		return nil, invalid("entry_id", "must not be empty")
	}

	day, err := mutateDay(ctx, t, t.dietDays(), userID, date, func(rec *models.DayDietRecord) error {
		i, err := matchEntry(len(rec.Meals), func(i int) uuid.UUID { return rec.Meals[i].ID }, entryID)
		if err != nil {
			return err
		}
		rec.Meals = append(rec.Meals[:i], rec.Meals[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("meal removed", "user", userID, "date", date, "entry", entryID, "version", day.Version)
	return day, nil
}

// DietDay returns the user's diet record for date, or an empty one.
func (t *Tracker) DietDay(ctx context.Context, userID, date string) (*models.DayDietRecord, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	return readDay(ctx, t.dietDays(), userID, date)
}

// RequireDietDay returns the user's diet record for date, failing with ErrNotFound when absent.
func (t *Tracker) RequireDietDay(ctx context.Context, userID, date string) (*models.DayDietRecord, error) {
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	rec, err := t.repo.GetDietDay(ctx, userID, date)
	if err != nil {
		return nil, persistence("load diet day", err)
	}
	return rec, nil
}

// ListDietDays returns diet records between from and to inclusive, newest first.
func (t *Tracker) ListDietDays(ctx context.Context, userID, from, to string, limit int) ([]*models.DayDietRecord, error) {
	r, err := dayRange(userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	recs, err := t.repo.ListDietDays(ctx, userID, r)
	if err != nil {
		return nil, persistence("list diet days", err)
	}
	return recs, nil
}

func dayRange(userID, from, to string, limit int) (storage.DayRange, error) {
	if err := validateUser(userID); err != nil {
		return storage.DayRange{}, err
	}
	if err := validateOptionalDate("from", from); err != nil {
		return storage.DayRange{}, err
	}
	if err := validateOptionalDate("to", to); err != nil {
		return storage.DayRange{}, err
	}
	if from != "" && to != "" && from > to {
		return storage.DayRange{}, invalid("from", "must not be after to")
	}
	if limit < 0 {
		return storage.DayRange{}, invalid("limit", "must not be negative")
	}
	return storage.DayRange{From: from, To: to, Limit: limit}, nil
}

// matchEntry finds the single entry whose ID string starts with prefix.
func matchEntry(n int, idAt func(int) uuid.UUID, prefix string) (int, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	found := -1
	for i := 0; i < n; i++ {
		if strings.HasPrefix(idAt(i).String(), prefix) {
			if found >= 0 {
				return -1, invalid("entry_id", "ambiguous prefix %q", prefix)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("entry %s: %w", prefix, ErrNotFound)
	}
	return found, nil
}
