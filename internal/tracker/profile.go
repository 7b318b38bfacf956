// ABOUTME: Profile and health sample operations.
// ABOUTME: Profile updates are partial; samples derive BMI from the profile height.
package tracker

import (
	"context"
	"errors"

	"github.com/harperreed/fitdiary/internal/calc"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/storage"
)

// GoalsUpdate changes the goal fields that are non-nil. TargetDate "" clears it.
type GoalsUpdate struct {
	TargetWeightKg     *float64 `json:"target_weight_kg,omitempty"`
	TargetDate         *string  `json:"target_date,omitempty"`
	WeeklyGoalKg       *float64 `json:"weekly_goal_kg,omitempty"`
	DailyCalorieTarget *float64 `json:"daily_calorie_target,omitempty"`
	TargetProtein      *float64 `json:"target_protein,omitempty"`
	TargetCarbs        *float64 `json:"target_carbs,omitempty"`
	TargetFat          *float64 `json:"target_fat,omitempty"`
}

// ProfileUpdate changes the profile fields that are non-nil.
type ProfileUpdate struct {
	Nickname        *string      `json:"nickname,omitempty"`
	Sex             *string      `json:"sex,omitempty"`
	Age             *int         `json:"age,omitempty"`
	HeightCm        *float64     `json:"height_cm,omitempty"`
	InitialWeightKg *float64     `json:"initial_weight_kg,omitempty"`
	ActivityLevel   *string      `json:"activity_level,omitempty"`
	Goals           *GoalsUpdate `json:"goals,omitempty"`
}

// HealthInput describes a body measurement.
type HealthInput struct {
	Date       string   `json:"date"`
	WeightKg   float64  `json:"weight_kg"`
	BodyFat    *float64 `json:"body_fat,omitempty"`
	MuscleMass *float64 `json:"muscle_mass,omitempty"`
}

// Profile returns the user's profile or ErrNotFound.
func (t *Tracker) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	p, err := t.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, persistence("load profile", err)
	}
	return p, nil
}

// UpdateProfile applies u to the user's profile, creating it when absent.
func (t *Tracker) UpdateProfile(ctx context.Context, userID string, u *ProfileUpdate) (*models.UserProfile, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if u == nil {
		return nil, invalid("profile", "payload is required")
	}

	p, err := t.repo.GetProfile(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		p = models.NewUserProfile(userID)
	case err != nil:
		return nil, persistence("load profile", err)
	}

	if err := applyProfileUpdate(p, u); err != nil {
		return nil, err
	}
	if err := validateProfile(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = t.now()

	if err := t.repo.PutProfile(ctx, p); err != nil {
		return nil, persistence("save profile", err)
	}
	t.logger.Info("profile updated", "user", userID)
	return p, nil
}

func applyProfileUpdate(p *models.UserProfile, u *ProfileUpdate) error {
	if u.Nickname != nil {
		p.Nickname = *u.Nickname
	}
	if u.Sex != nil {
		p.Sex = *u.Sex
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.HeightCm != nil {
		p.HeightCm = *u.HeightCm
	}
	if u.InitialWeightKg != nil {
		p.InitialWeightKg = *u.InitialWeightKg
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = models.ActivityLevel(*u.ActivityLevel)
	}

	g := u.Goals
	if g == nil {
		return nil
	}
	if g.TargetWeightKg != nil {
		p.Goals.TargetWeightKg = *g.TargetWeightKg
	}
	if g.TargetDate != nil {
		if *g.TargetDate == "" {
			p.Goals.TargetDate = nil
		} else {
			d, err := models.ParseDate(*g.TargetDate)
			if err != nil {
				return invalid("target_date", "%v", err)
			}
			p.Goals.TargetDate = &d
		}
	}
	if g.WeeklyGoalKg != nil {
		p.Goals.WeeklyGoalKg = *g.WeeklyGoalKg
	}
	if g.DailyCalorieTarget != nil {
		p.Goals.DailyCalorieTarget = *g.DailyCalorieTarget
	}
	if g.TargetProtein != nil {
		p.Goals.TargetProtein = *g.TargetProtein
	}
	if g.TargetCarbs != nil {
		p.Goals.TargetCarbs = *g.TargetCarbs
	}
	if g.TargetFat != nil {
		p.Goals.TargetFat = *g.TargetFat
	}
	return nil
}

// RecordHealthSample appends a measurement. BMI is filled in when the profile has a height.
func (t *Tracker) RecordHealthSample(ctx context.Context, userID string, in *HealthInput) (*models.HealthSample, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, invalid("sample", "payload is required")
	}
	if _, err := models.ParseDate(in.Date); err != nil {
		return nil, invalid("date", "%v", err)
	}
	if !calc.ValidWeight(in.WeightKg) {
		return nil, invalid("weight_kg", "must be between 30 and 300, got %v", in.WeightKg)
	}
	if in.BodyFat != nil && !(*in.BodyFat >= 0 && *in.BodyFat <= 100) {
		return nil, invalid("body_fat", "must be a percentage, got %v", *in.BodyFat)
	}
	if in.MuscleMass != nil && !(*in.MuscleMass >= 0 && *in.MuscleMass <= in.WeightKg) {
		return nil, invalid("muscle_mass", "must be between 0 and the body weight, got %v", *in.MuscleMass)
	}

	s := models.NewHealthSample(userID, in.Date, in.WeightKg)
	s.CreatedAt = t.now()
	if in.BodyFat != nil {
		s.WithBodyFat(*in.BodyFat)
	}
	if in.MuscleMass != nil {
		s.WithMuscleMass(*in.MuscleMass)
	}

	p, err := t.repo.GetProfile(ctx, userID)
	switch {
	case err == nil:
		s.BMI = calc.RoundTo(calc.BMI(s.WeightKg, p.HeightCm), 1)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, persistence("load profile", err)
	}

	if err := t.repo.AddHealthSample(ctx, s); err != nil {
		return nil, persistence("save health sample", err)
	}
	t.logger.Info("health sample recorded", "user", userID, "date", in.Date, "kg", in.WeightKg)
	return s, nil
}

// LatestHealthSample returns the user's most recent sample or ErrNotFound.
func (t *Tracker) LatestHealthSample(ctx context.Context, userID string) (*models.HealthSample, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	s, err := t.repo.LatestHealthSample(ctx, userID)
	if err != nil {
		return nil, persistence("load health sample", err)
	}
	return s, nil
}

// HealthHistory returns up to limit samples, newest first. limit <= 0 means all.
func (t *Tracker) HealthHistory(ctx context.Context, userID string, limit int) ([]*models.HealthSample, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	samples, err := t.repo.ListHealthSamples(ctx, userID, limit)
	if err != nil {
		return nil, persistence("list health samples", err)
	}
	return samples, nil
}

// goals returns the user's goals with defaults filled in. A user without a
// profile gets DefaultGoals.
func (t *Tracker) goals(ctx context.Context, userID string) (models.Goals, error) {
	p, err := t.repo.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.DefaultGoals(), nil
	}
	if err != nil {
		return models.Goals{}, persistence("load profile", err)
	}
	return p.Goals.WithDefaults(), nil
}

// Today returns the tracker's current calendar day.
func (t *Tracker) Today() string {
	return models.FormatDate(t.now())
}

// daysBefore returns the day key n days before date.
func daysBefore(date string, n int) string {
	d, err := models.ParseDate(date)
	if err != nil {
		return ""
	}
	return models.FormatDate(d.AddDate(0, 0, -n))
}
