// ABOUTME: Export and import of all fitdiary data.
// ABOUTME: Supports JSON and YAML; works against any Repository backend.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/fitdiary/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the format version written to exports.
const ExportVersion = "1.0"

// ExportData represents the full export format for fitdiary data.
type ExportData struct {
	Version       string                      `json:"version" yaml:"version"`
	ExportedAt    time.Time                   `json:"exported_at" yaml:"exported_at"`
	Tool          string                      `json:"tool" yaml:"tool"`
	Profiles      []*models.UserProfile       `json:"profiles" yaml:"profiles"`
	HealthSamples []*models.HealthSample      `json:"health_samples" yaml:"health_samples"`
	DietDays      []*models.DayDietRecord     `json:"diet_days" yaml:"diet_days"`
	ExerciseDays  []*models.DayExerciseRecord `json:"exercise_days" yaml:"exercise_days"`
}

// Export collects every document in repo. An empty userID exports every user.
func Export(ctx context.Context, repo Repository, userID string) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "fitdiary",
	}

	profiles, err := repo.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	for _, p := range profiles {
		if userID == "" || p.ID == userID {
			data.Profiles = append(data.Profiles, p)
		}
	}

	if data.HealthSamples, err = repo.ListHealthSamples(ctx, userID, 0); err != nil {
		return nil, fmt.Errorf("list health samples: %w", err)
	}
	if data.DietDays, err = repo.ListDietDays(ctx, userID, DayRange{}); err != nil {
		return nil, fmt.Errorf("list diet days: %w", err)
	}
	if data.ExerciseDays, err = repo.ListExerciseDays(ctx, userID, DayRange{}); err != nil {
		return nil, fmt.Errorf("list exercise days: %w", err)
	}
	return data, nil
}

// Import writes every document in data to repo. Day documents are inserted
// fresh, so importing a day that already exists fails with ErrVersionConflict.
func Import(ctx context.Context, repo Repository, data *ExportData) error {
	for _, p := range data.Profiles {
		if err := repo.PutProfile(ctx, p); err != nil {
			return fmt.Errorf("import profile %s: %w", p.ID, err)
		}
	}
	for _, s := range data.HealthSamples {
		if err := repo.AddHealthSample(ctx, s); err != nil {
			return fmt.Errorf("import health sample %s: %w", s.ID, err)
		}
	}
	for _, d := range data.DietDays {
		if err := repo.PutDietDay(ctx, d, 0); err != nil {
			return fmt.Errorf("import diet day: %w", err)
		}
	}
	for _, d := range data.ExerciseDays {
		if err := repo.PutExerciseDay(ctx, d, 0); err != nil {
			return fmt.Errorf("import exercise day: %w", err)
		}
	}
	return nil
}

// ExportJSON exports data as indented JSON.
func ExportJSON(ctx context.Context, repo Repository, userID string) ([]byte, error) {
	data, err := Export(ctx, repo, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports data as YAML.
func ExportYAML(ctx context.Context, repo Repository, userID string) ([]byte, error) {
	data, err := Export(ctx, repo, userID)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ParseExport decodes an export file. format is "json" or "yaml".
func ParseExport(raw []byte, format string) (*ExportData, error) {
	var data ExportData
	switch format {
	case "json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse json export: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse yaml export: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
	return &data, nil
}
