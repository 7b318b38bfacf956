// ABOUTME: Tests for weight progress, calorie budget, badges and snapshots.
// ABOUTME: Snapshot tests pin the clock through Analyzer.Now.
package progress

import (
	"testing"
	"time"

	"github.com/harperreed/fitdiary/internal/models"
)

func TestWeightProgressPercent(t *testing.T) {
	tests := []struct {
		name                     string
		initial, current, target float64
		want                     float64
	}{
		{"no progress", 80, 80, 70, 0},
		{"goal reached", 80, 70, 70, 100},
		{"halfway", 80, 75, 70, 50},
		{"initial equals target", 70, 65, 70, 0},
		{"went the wrong way", 80, 85, 70, 0},
		{"overshot", 80, 65, 70, 100},
		{"gaining goal halfway", 60, 62.5, 65, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightProgressPercent(tt.initial, tt.current, tt.target); got != tt.want {
				t.Errorf("WeightProgressPercent(%v, %v, %v) = %v, want %v", tt.initial, tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestCalorieBudget(t *testing.T) {
	if got := RemainingCalories(1800, 1200, 300); got != 900 {
		t.Errorf("RemainingCalories = %v, want 900", got)
	}
	if got := CalorieBalance(2100, 1800, 200); got != 100 {
		t.Errorf("CalorieBalance = %v, want 100 (surplus)", got)
	}
	if got := CalorieBalance(1200, 1800, 300); got != -900 {
		t.Errorf("CalorieBalance = %v, want -900", got)
	}
	if got := RemainingCalories(1800, 1234.6, 0); got != 565 {
		t.Errorf("RemainingCalories = %v, want 565 (rounded half-up)", got)
	}
	if got := CalorieBalance(1850.5, 1800, 0); got != 51 {
		t.Errorf("CalorieBalance = %v, want 51 (rounded half-up)", got)
	}
}

func TestRemainingDays(t *testing.T) {
	today := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	target := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	past := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		weekly float64
		date   *time.Time
		want   int
	}{
		// |80-75| / 0.5 * 7 = 70
		{"weekly goal", 0.5, nil, 70},
		{"weekly goal wins over date", 0.5, &target, 70},
		{"target date", 0, &target, 30},
		{"target date in the past", 0, &past, 0},
		{"unknown", 0, nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingDays(80, 75, tt.weekly, tt.date, today); got != tt.want {
				t.Errorf("RemainingDays = %d, want %d", got, tt.want)
			}
		})
	}

	// Fractional weeks round up: 1 / 0.3 * 7 = 23.33 -> 24
	if got := RemainingDays(71, 70, 0.3, nil, today); got != 24 {
		t.Errorf("RemainingDays fractional = %d, want 24", got)
	}
}

func TestComputeDerivedMetrics(t *testing.T) {
	p := models.NewUserProfile("u1").WithBody(models.SexMale, 25, 170, 72).WithActivityLevel(models.ActivityModerate)

	d := ComputeDerivedMetrics(p, models.NewHealthSample("u1", "2025-03-01", 70))
	if d.WeightKg != 70 {
		t.Errorf("WeightKg = %v, want the sample weight 70", d.WeightKg)
	}
	if d.BMR != 1700 {
		t.Errorf("BMR = %d, want 1700", d.BMR)
	}
	// 1700 * 1.55
	if d.TDEE != 2635 {
		t.Errorf("TDEE = %d, want 2635", d.TDEE)
	}
	// 70 / 1.7² = 24.22
	if d.BMI != 24.2 || d.BMIStatus != "overweight" {
		t.Errorf("BMI = %v (%s), want 24.2 (overweight)", d.BMI, d.BMIStatus)
	}

	d = ComputeDerivedMetrics(p, nil)
	if d.WeightKg != 72 {
		t.Errorf("WeightKg without a sample = %v, want initial 72", d.WeightKg)
	}

	if d := ComputeDerivedMetrics(nil, nil); d.BMI != 0 || d.BMIStatus != "" {
		t.Errorf("nil profile should yield zero metrics, got %+v", d)
	}
}

func TestBadges(t *testing.T) {
	a := NewAnalyzer(0)
	goals := models.Goals{DailyCalorieTarget: 2000, TargetProtein: 100}

	tests := []struct {
		name        string
		totals      DayTotals
		wantCalorie bool
		wantProtein bool
	}{
		{"both", DayTotals{Consumed: 2000, Protein: 80}, true, true},
		{"over calories", DayTotals{Consumed: 2001, Protein: 100}, false, true},
		{"short on protein", DayTotals{Consumed: 1500, Protein: 79.9}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badges := a.Badges(goals, tt.totals)
			if has(badges, BadgeCalorieGoal) != tt.wantCalorie {
				t.Errorf("calorie badge = %v, want %v", has(badges, BadgeCalorieGoal), tt.wantCalorie)
			}
			if has(badges, BadgeProteinGoal) != tt.wantProtein {
				t.Errorf("protein badge = %v, want %v", has(badges, BadgeProteinGoal), tt.wantProtein)
			}
		})
	}

	strict := NewAnalyzer(1.0)
	if has(strict.Badges(goals, DayTotals{Protein: 90}), BadgeProteinGoal) {
		t.Error("a ratio of 1.0 should require the full protein target")
	}
}

func TestSnapshot(t *testing.T) {
	a := NewAnalyzer(0.8)
	a.Now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }

	p := models.NewUserProfile("u1").WithBody("female", 30, 165, 80)
	p.Goals.TargetWeightKg = 70
	p.Goals.WeeklyGoalKg = 0.5

	s := a.Snapshot(p, models.NewHealthSample("u1", "2025-03-01", 75), DayTotals{Consumed: 1500, Protein: 60, Burned: 200})

	if s.TargetCalories != 1800 {
		t.Errorf("TargetCalories = %v, want default 1800", s.TargetCalories)
	}
	if s.RemainingCalories != 500 {
		t.Errorf("RemainingCalories = %v, want 500", s.RemainingCalories)
	}
	if s.CalorieBalance != -500 {
		t.Errorf("CalorieBalance = %v, want -500", s.CalorieBalance)
	}
	if s.WeightProgressPercent != 50 {
		t.Errorf("WeightProgressPercent = %v, want 50", s.WeightProgressPercent)
	}
	if s.RemainingDays != 70 {
		t.Errorf("RemainingDays = %d, want 70", s.RemainingDays)
	}
	if !has(s.Badges, BadgeCalorieGoal) || !has(s.Badges, BadgeProteinGoal) {
		t.Errorf("Badges = %v, want both", s.Badges)
	}
}

func TestSnapshotWithoutProfile(t *testing.T) {
	s := NewAnalyzer(0).Snapshot(nil, nil, DayTotals{})

	if s.TargetCalories != 1800 || s.RemainingCalories != 1800 {
		t.Errorf("expected default 1800 budget, got %+v", s)
	}
	if s.RemainingDays != -1 || s.WeightProgressPercent != 0 {
		t.Errorf("expected unknown progress, got %+v", s)
	}
	if !has(s.Badges, BadgeCalorieGoal) || has(s.Badges, BadgeProteinGoal) {
		t.Errorf("Badges = %v, want only the calorie badge", s.Badges)
	}
}

func has(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
