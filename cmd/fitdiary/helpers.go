// ABOUTME: Shared parsing and formatting helpers for CLI commands.
// ABOUTME: Time and day parsing, food references, and day record printers.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/tracker"
)

var faint = color.New(color.Faint)

// parseTime accepts the formats users type on the command line, in local time.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// resolveDay turns "", "today", "yesterday" or a YYYY-MM-DD string into a day key.
func resolveDay(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return models.FormatDate(now), nil
	case "yesterday":
		return models.FormatDate(now.AddDate(0, 0, -1)), nil
	}
	if _, err := models.ParseDate(s); err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD, today or yesterday)", s)
	}
	return s, nil
}

// parseFoodRef parses "name:grams", e.g. "chicken breast:150".
func parseFoodRef(s string) (tracker.FoodRef, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return tracker.FoodRef{}, fmt.Errorf("invalid food %q (want name:grams)", s)
	}
	grams, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
	if err != nil || grams <= 0 {
		return tracker.FoodRef{}, fmt.Errorf("invalid grams in %q", s)
	}
	return tracker.FoodRef{Name: strings.TrimSpace(s[:i]), Grams: grams}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func shortID(id fmt.Stringer) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func printDietDay(day *models.DayDietRecord) {
	fmt.Printf("%s  %.0f kcal  P %.1f  C %.1f  F %.1f\n",
		color.New(color.Bold).Sprint(day.Date),
		day.TotalCalories, day.TotalProtein, day.TotalCarbs, day.TotalFat)
	if len(day.Meals) == 0 {
		fmt.Println("  No meals logged.")
		return
	}
	for _, m := range day.Meals {
		name := m.MealName
		if name == "" {
			name = foodNames(m.Foods)
		}
		notes := ""
		if m.Notes != "" {
			notes = faint.Sprintf(" (%s)", truncate(m.Notes, 30))
		}
		fmt.Printf("  %s %s %s %6.0f kcal  %s%s\n",
			faint.Sprint(shortID(m.ID)),
			faint.Sprint(m.Timestamp.Format("15:04")),
			padRight(string(m.MealType), 10),
			m.Calories,
			truncate(name, 40),
			notes)
	}
}

func foodNames(foods []models.FoodPortion) string {
	names := make([]string, 0, len(foods))
	for _, f := range foods {
		names = append(names, fmt.Sprintf("%s %.0fg", f.Name, f.QuantityGrams))
	}
	return strings.Join(names, ", ")
}

func printExerciseDay(day *models.DayExerciseRecord) {
	fmt.Printf("%s  %d min  %.0f kcal  %d steps  %.1f km\n",
		color.New(color.Bold).Sprint(day.Date),
		day.TotalDuration, day.TotalCaloriesBurned, day.TotalSteps, day.TotalDistance)
	if len(day.Exercises) == 0 {
		fmt.Println("  No exercise logged.")
		return
	}
	for _, e := range day.Exercises {
		name := e.ExerciseType
		if e.ExerciseName != "" {
			name = fmt.Sprintf("%s (%s)", e.ExerciseType, e.ExerciseName)
		}
		fmt.Printf("  %s %s %4d min %6.0f kcal  %s\n",
			faint.Sprint(shortID(e.ID)),
			padRight(truncate(name, 28), 28),
			e.Duration,
			e.CaloriesBurned,
			faint.Sprint(e.Intensity))
	}
}

func printBadges(badges []string) {
	for _, b := range badges {
		color.Yellow("  ★ %s", b)
	}
}
