// ABOUTME: UserProfile and Goals models.
// ABOUTME: Holds the body measurements and targets used by the derived metrics.
package models

import (
	"time"
)

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityExtra     ActivityLevel = "extra"
)

// AllActivityLevels lists the known activity levels from least to most active.
var AllActivityLevels = []ActivityLevel{
	ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityExtra,
}

// IsValidActivityLevel checks if a string is a known activity level.
func IsValidActivityLevel(s string) bool {
	for _, l := range AllActivityLevels {
		if string(l) == s {
			return true
		}
	}
	return false
}

// SexMale is the only value that selects the male BMR branch.
const SexMale = "male"

// Goals are the user's targets. Zero values mean "not set".
type Goals struct {
	TargetWeightKg     float64    `json:"target_weight_kg,omitempty" yaml:"target_weight_kg,omitempty"`
	TargetDate         *time.Time `json:"target_date,omitempty" yaml:"target_date,omitempty"`
	WeeklyGoalKg       float64    `json:"weekly_goal_kg,omitempty" yaml:"weekly_goal_kg,omitempty"`
	DailyCalorieTarget float64    `json:"daily_calorie_target,omitempty" yaml:"daily_calorie_target,omitempty"`
	TargetProtein      float64    `json:"target_protein,omitempty" yaml:"target_protein,omitempty"`
	TargetCarbs        float64    `json:"target_carbs,omitempty" yaml:"target_carbs,omitempty"`
	TargetFat          float64    `json:"target_fat,omitempty" yaml:"target_fat,omitempty"`
}

// DefaultGoals are used when a user has not set their own daily targets.
func DefaultGoals() Goals {
	return Goals{
		DailyCalorieTarget: 1800,
		TargetProtein:      70,
		TargetCarbs:        200,
		TargetFat:          60,
	}
}

// WithDefaults fills unset daily targets from DefaultGoals.
func (g Goals) WithDefaults() Goals {
	d := DefaultGoals()
	if g.DailyCalorieTarget <= 0 {
		g.DailyCalorieTarget = d.DailyCalorieTarget
	}
	if g.TargetProtein <= 0 {
		g.TargetProtein = d.TargetProtein
	}
	if g.TargetCarbs <= 0 {
		g.TargetCarbs = d.TargetCarbs
	}
	if g.TargetFat <= 0 {
		g.TargetFat = d.TargetFat
	}
	return g
}

// UserProfile is one user's body data and goals.
type UserProfile struct {
	ID              string        `json:"id" yaml:"id"`
	Nickname        string        `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Sex             string        `json:"sex,omitempty" yaml:"sex,omitempty"`
	Age             int           `json:"age,omitempty" yaml:"age,omitempty"`
	HeightCm        float64       `json:"height_cm,omitempty" yaml:"height_cm,omitempty"`
	InitialWeightKg float64       `json:"initial_weight_kg,omitempty" yaml:"initial_weight_kg,omitempty"`
	ActivityLevel   ActivityLevel `json:"activity_level,omitempty" yaml:"activity_level,omitempty"`
	Goals           Goals         `json:"goals" yaml:"goals"`
	CreatedAt       time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" yaml:"updated_at"`
}

// NewUserProfile creates a profile with default goals and a sedentary activity level.
func NewUserProfile(id string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		ID:            id,
		ActivityLevel: ActivitySedentary,
		Goals:         DefaultGoals(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// WithBody sets sex, age, height and starting weight.
func (p *UserProfile) WithBody(sex string, age int, heightCm, weightKg float64) *UserProfile {
	p.Sex = sex
	p.Age = age
	p.HeightCm = heightCm
	p.InitialWeightKg = weightKg
	return p
}

// WithActivityLevel sets the activity level.
func (p *UserProfile) WithActivityLevel(level ActivityLevel) *UserProfile {
	p.ActivityLevel = level
	return p
}

// WithGoals replaces the goals.
func (p *UserProfile) WithGoals(g Goals) *UserProfile {
	p.Goals = g
	return p
}
