// ABOUTME: HealthSample model for weight and body composition readings.
// ABOUTME: Samples are append-only; the latest one drives the derived metrics.
package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthSample is one weight reading on a given day.
type HealthSample struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	UserID     string    `json:"user_id" yaml:"user_id"`
	Date       string    `json:"date" yaml:"date"`
	WeightKg   float64   `json:"weight_kg" yaml:"weight_kg"`
	BodyFat    *float64  `json:"body_fat,omitempty" yaml:"body_fat,omitempty"`
	MuscleMass *float64  `json:"muscle_mass,omitempty" yaml:"muscle_mass,omitempty"`
	BMI        float64   `json:"bmi,omitempty" yaml:"bmi,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// NewHealthSample creates a sample with a generated UUID and the current timestamp.
func NewHealthSample(userID, date string, weightKg float64) *HealthSample {
	return &HealthSample{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		WeightKg:  weightKg,
		CreatedAt: time.Now(),
	}
}

// WithBodyFat sets the body fat percentage.
func (s *HealthSample) WithBodyFat(pct float64) *HealthSample {
	s.BodyFat = &pct
	return s
}

// WithMuscleMass sets the muscle mass in kg.
func (s *HealthSample) WithMuscleMass(kg float64) *HealthSample {
	s.MuscleMass = &kg
	return s
}

// After reports whether s is more recent than other: later date first, then later creation.
func (s *HealthSample) After(other *HealthSample) bool {
	if s.Date != other.Date {
		return s.Date > other.Date
	}
	return s.CreatedAt.After(other.CreatedAt)
}
