// ABOUTME: Tracker orchestrates recording, scoring and progress for diet and exercise.
// ABOUTME: It is built with explicit collaborators and holds no per-user state.
package tracker

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitdiary/internal/achievement"
	"github.com/harperreed/fitdiary/internal/assistant"
	"github.com/harperreed/fitdiary/internal/logging"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/nutrition"
	"github.com/harperreed/fitdiary/internal/progress"
	"github.com/harperreed/fitdiary/internal/storage"
)

// DefaultMaxConflictRetries is how many times a day mutation is re-applied
// after a version conflict before the conflict is returned.
const DefaultMaxConflictRetries = 3

// FoodLookup resolves a food name to per-100g facts.
type FoodLookup interface {
	Lookup(ctx context.Context, name string) (*models.FoodNutritionFact, error)
}

// Options configures a Tracker. Zero fields fall back to defaults.
type Options struct {
	Scorer             *nutrition.Scorer
	Achievements       *achievement.Evaluator
	Progress           *progress.Analyzer
	Foods              FoodLookup
	Responder          assistant.Responder
	Logger             *log.Logger
	MaxConflictRetries int
	Now                func() time.Time
}

// Tracker is the entry point for every diet, exercise and profile operation.
type Tracker struct {
	repo         storage.Repository
	scorer       *nutrition.Scorer
	achievements *achievement.Evaluator
	progress     *progress.Analyzer
	foods        FoodLookup
	responder    assistant.Responder
	logger       *log.Logger
	maxRetries   int
	now          func() time.Time
}

// New creates a Tracker over repo.
func New(repo storage.Repository, opts Options) *Tracker {
	t := &Tracker{
		repo:         repo,
		scorer:       opts.Scorer,
		achievements: opts.Achievements,
		progress:     opts.Progress,
		foods:        opts.Foods,
		responder:    opts.Responder,
		logger:       logging.OrDiscard(opts.Logger),
		maxRetries:   opts.MaxConflictRetries,
		now:          opts.Now,
	}
	if t.scorer == nil {
		t.scorer = nutrition.NewScorer()
	}
	if t.achievements == nil {
		t.achievements = achievement.NewEvaluator(0)
	}
	if t.progress == nil {
		t.progress = progress.NewAnalyzer(0)
	}
	if t.responder == nil {
		t.responder = assistant.NewKeywordResponder()
	}
	if t.maxRetries <= 0 {
		t.maxRetries = DefaultMaxConflictRetries
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.progress.Now == nil {
		t.progress.Now = t.now
	}
	return t
}

// Repository returns the underlying storage.
func (t *Tracker) Repository() storage.Repository {
	return t.repo
}
