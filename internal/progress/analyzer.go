// ABOUTME: Goal progress: weight progress, calorie budget, badges and time-to-goal.
// ABOUTME: Combines a profile, its latest health sample and today's totals into a snapshot.
package progress

import (
	"math"
	"time"

	"github.com/harperreed/fitdiary/internal/calc"
	"github.com/harperreed/fitdiary/internal/models"
)

// DefaultProteinGoalRatio is the share of the protein target that earns the protein badge.
const DefaultProteinGoalRatio = 0.8

// Badge labels.
const (
	BadgeCalorieGoal = "calorie goal met"
	BadgeProteinGoal = "protein goal met"
)

// WeightProgressPercent is how far current has moved from initial toward target, clamped to 0..100.
func WeightProgressPercent(initial, current, target float64) float64 {
	if initial == target {
		return 0
	}
	pct := (initial - current) / (initial - target) * 100
	return math.Max(0, math.Min(100, pct))
}

// RemainingCalories is the budget left today in whole kcal; burned calories replenish it.
func RemainingCalories(target, consumed, burned float64) int {
	return calc.Round(target - consumed + burned)
}

// CalorieBalance is in whole kcal and positive when over budget.
func CalorieBalance(consumed, target, burned float64) int {
	return calc.Round(consumed - target - burned)
}

// RemainingDays estimates the days left to reach target.
// It uses the weekly goal when set, else the target date, else returns -1.
func RemainingDays(current, target, weeklyGoalKg float64, targetDate *time.Time, today time.Time) int {
	if weeklyGoalKg > 0 {
		return int(math.Ceil(math.Abs(current-target) / weeklyGoalKg * 7))
	}
	if targetDate != nil {
		y, m, d := today.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		ty, tm, td := targetDate.Date()
		end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
		days := int(end.Sub(start).Hours() / 24)
		return max(0, days)
	}
	return -1
}

// Derived are the body metrics computed from a profile.
type Derived struct {
	WeightKg  float64 `json:"weight_kg"`
	BMI       float64 `json:"bmi"`
	BMIStatus string  `json:"bmi_status"`
	BMR       int     `json:"bmr"`
	TDEE      int     `json:"tdee"`
}

// ComputeDerivedMetrics derives BMI, BMR and TDEE. The latest sample's weight wins over the profile's initial weight.
func ComputeDerivedMetrics(profile *models.UserProfile, sample *models.HealthSample) Derived {
	if profile == nil {
		return Derived{}
	}
	weight := profile.InitialWeightKg
	if sample != nil && sample.WeightKg > 0 {
		weight = sample.WeightKg
	}
	bmi := calc.RoundTo(calc.BMI(weight, profile.HeightCm), 1)
	bmr := calc.BMR(weight, profile.HeightCm, profile.Age, profile.Sex)
	d := Derived{
		WeightKg: weight,
		BMI:      bmi,
		BMR:      bmr,
		TDEE:     calc.TDEE(bmr, profile.ActivityLevel),
	}
	if bmi > 0 {
		d.BMIStatus = calc.BMIStatus(bmi)
	}
	return d
}

// DayTotals are today's consumed and burned figures.
type DayTotals struct {
	Consumed float64 `json:"consumed"`
	Protein  float64 `json:"protein"`
	Burned   float64 `json:"burned"`
}

// Snapshot is the progress view for one day.
type Snapshot struct {
	TargetCalories        float64  `json:"target_calories"`
	RemainingCalories     int      `json:"remaining_calories"`
	CalorieBalance        int      `json:"calorie_balance"`
	WeightProgressPercent float64  `json:"weight_progress_percent"`
	RemainingDays         int      `json:"remaining_days"`
	Badges                []string `json:"badges"`
}

// Analyzer evaluates goal progress with a configurable protein ratio.
type Analyzer struct {
	ProteinGoalRatio float64
	Now              func() time.Time
}

// NewAnalyzer creates an Analyzer, falling back to the default ratio when ratio <= 0.
func NewAnalyzer(ratio float64) *Analyzer {
	if ratio <= 0 {
		ratio = DefaultProteinGoalRatio
	}
	return &Analyzer{ProteinGoalRatio: ratio, Now: time.Now}
}

// Badges returns the goal badges earned by today's totals.
func (a *Analyzer) Badges(goals models.Goals, totals DayTotals) []string {
	goals = goals.WithDefaults()
	ratio := a.ProteinGoalRatio
	if ratio <= 0 {
		ratio = DefaultProteinGoalRatio
	}

	badges := []string{}
	if totals.Consumed <= goals.DailyCalorieTarget {
		badges = append(badges, BadgeCalorieGoal)
	}
	if totals.Protein >= ratio*goals.TargetProtein {
		badges = append(badges, BadgeProteinGoal)
	}
	return badges
}

// Snapshot combines a profile, its latest sample and today's totals.
// A nil profile is treated as a new user with default goals.
func (a *Analyzer) Snapshot(profile *models.UserProfile, sample *models.HealthSample, totals DayTotals) Snapshot {
	goals := models.DefaultGoals()
	if profile != nil {
		goals = profile.Goals.WithDefaults()
	}
	target := goals.DailyCalorieTarget

	s := Snapshot{
		TargetCalories:    target,
		RemainingCalories: RemainingCalories(target, totals.Consumed, totals.Burned),
		CalorieBalance:    CalorieBalance(totals.Consumed, target, totals.Burned),
		RemainingDays:     -1,
		Badges:            a.Badges(goals, totals),
	}

	if profile == nil || goals.TargetWeightKg <= 0 {
		return s
	}

	current := profile.InitialWeightKg
	if sample != nil && sample.WeightKg > 0 {
		current = sample.WeightKg
	}
	if profile.InitialWeightKg > 0 {
		s.WeightProgressPercent = calc.RoundTo(WeightProgressPercent(profile.InitialWeightKg, current, goals.TargetWeightKg), 1)
	}
	s.RemainingDays = RemainingDays(current, goals.TargetWeightKg, goals.WeeklyGoalKg, goals.TargetDate, a.now())
	return s
}

func (a *Analyzer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
