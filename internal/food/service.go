// ABOUTME: Food lookup service: local store, built-in table, then remote source.
// ABOUTME: Remote hits are cached back into the local store.
package food

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitdiary/internal/logging"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/nutrition"
)

// DefaultSearchLimit is used when Search is called with limit <= 0.
const DefaultSearchLimit = 10

var (
	// ErrUnknownFood is returned when no source knows the requested food.
	ErrUnknownFood = errors.New("unknown food")
	// ErrInvalidQuery is returned for empty names or non-positive quantities.
	ErrInvalidQuery = errors.New("invalid food query")
)

// Remote is a network source of food facts.
type Remote interface {
	Search(ctx context.Context, query string, limit int) ([]models.FoodNutritionFact, error)
}

// PortionResult is a scaled portion plus advice about it.
type PortionResult struct {
	Portion         models.FoodPortion `json:"portion"`
	Recommendations []string           `json:"recommendations"`
}

// Service resolves food names to nutrition facts.
type Service struct {
	store  *Store
	remote Remote
	logger *log.Logger
}

// NewService builds a Service. store and remote may be nil.
func NewService(store *Store, remote Remote, logger *log.Logger) *Service {
	return &Service{store: store, remote: remote, logger: logging.OrDiscard(logger)}
}

// Lookup returns the per-100g fact for name.
func (s *Service) Lookup(ctx context.Context, name string) (*models.FoodNutritionFact, error) {
	if normalize(name) == "" {
		return nil, fmt.Errorf("%w: empty food name", ErrInvalidQuery)
	}

	if s.store != nil {
		fact, ok, err := s.store.Get(name)
		if err != nil {
			return nil, err
		}
		if ok {
			return fact, nil
		}
	}

	if fact, ok := matchSeed(name); ok {
		return fact, nil
	}

	if s.remote == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFood, name)
	}
	facts, err := s.remote.Search(ctx, name, 1)
	if err != nil && !errors.Is(err, ErrNoProduct) {
		return nil, fmt.Errorf("remote lookup %q: %w", name, err)
	}
	if len(facts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFood, name)
	}

	fact := facts[0]
	// Cache under the requested name so the next lookup is local.
	cached := fact
	cached.Name = normalize(name)
	s.cache(&cached)
	return &fact, nil
}

// Portion looks up name and scales it to grams.
func (s *Service) Portion(ctx context.Context, name string, grams float64) (*PortionResult, error) {
	if grams <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidQuery, grams)
	}
	fact, err := s.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	p := nutrition.Scale(fact, grams)
	return &PortionResult{Portion: p, Recommendations: nutrition.FoodRecommendations(p)}, nil
}

// Search returns local matches first, then tops up from the remote source.
// Remote failures are logged and the local results returned.
func (s *Service) Search(ctx context.Context, keyword string, limit int) ([]models.FoodNutritionFact, error) {
	if normalize(keyword) == "" {
		return nil, fmt.Errorf("%w: empty search keyword", ErrInvalidQuery)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var out []models.FoodNutritionFact
	seen := map[string]bool{}
	add := func(f models.FoodNutritionFact) {
		key := normalize(f.Name)
		if seen[key] || len(out) >= limit {
			return
		}
		seen[key] = true
		out = append(out, f)
	}

	if s.store != nil {
		local, err := s.store.Search(keyword, limit)
		if err != nil {
			return nil, err
		}
		for _, f := range local {
			add(f)
		}
	}
	needle := normalize(keyword)
	for _, f := range SeedFacts() {
		if strings.Contains(f.Name, needle) {
			add(f)
		}
	}

	if len(out) < limit && s.remote != nil {
		remote, err := s.remote.Search(ctx, keyword, limit)
		if err != nil && !errors.Is(err, ErrNoProduct) {
			s.logger.Warn("remote food search failed", "keyword", keyword, "err", err)
		}
		for _, f := range remote {
			add(f)
		}
	}
	return out, nil
}

func (s *Service) cache(fact *models.FoodNutritionFact) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(fact); err != nil {
		s.logger.Warn("cache food fact", "name", fact.Name, "err", err)
	}
}
