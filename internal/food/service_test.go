// ABOUTME: Tests for the food lookup service.
// ABOUTME: Uses a fake remote to check lookup order, caching and search top-up.
package food

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/fitdiary/internal/models"
)

type fakeRemote struct {
	facts []models.FoodNutritionFact
	err   error
	calls int
}

func (f *fakeRemote) Search(_ context.Context, _ string, limit int) ([]models.FoodNutritionFact, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.facts) == 0 {
		return nil, ErrNoProduct
	}
	if limit > 0 && len(f.facts) > limit {
		return f.facts[:limit], nil
	}
	return f.facts, nil
}

func TestLookupPrefersStoreThenSeed(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Put(&models.FoodNutritionFact{Name: "apple", Calories: 60}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	remote := &fakeRemote{}
	svc := NewService(store, remote, nil)
	ctx := context.Background()

	fact, err := svc.Lookup(ctx, "Apple")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if fact.Calories != 60 {
		t.Errorf("expected the stored fact, got %+v", fact)
	}

	fact, err = svc.Lookup(ctx, "grilled chicken breast")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if fact.Name != "chicken breast" || fact.Source != SourceSeed {
		t.Errorf("expected the seed fact, got %+v", fact)
	}
	if remote.calls != 0 {
		t.Errorf("remote called %d times, want 0", remote.calls)
	}
}

func TestLookupFallsBackToRemoteAndCaches(t *testing.T) {
	store := setupTestStore(t)
	remote := &fakeRemote{facts: []models.FoodNutritionFact{{Name: "Tofu Firm", Calories: 144, Source: SourceOpenFoodFacts}}}
	svc := NewService(store, remote, nil)
	ctx := context.Background()

	fact, err := svc.Lookup(ctx, "Tofu")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if fact.Calories != 144 {
		t.Errorf("fact = %+v", fact)
	}

	if _, err := svc.Lookup(ctx, "tofu"); err != nil {
		t.Fatalf("second Lookup failed: %v", err)
	}
	if remote.calls != 1 {
		t.Errorf("remote called %d times, want 1 (second lookup should hit the cache)", remote.calls)
	}
}

func TestLookupErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewService(nil, nil, nil).Lookup(ctx, "  "); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("empty name err = %v, want ErrInvalidQuery", err)
	}
	if _, err := NewService(nil, nil, nil).Lookup(ctx, "durian"); !errors.Is(err, ErrUnknownFood) {
		t.Errorf("offline err = %v, want ErrUnknownFood", err)
	}
	if _, err := NewService(nil, &fakeRemote{}, nil).Lookup(ctx, "durian"); !errors.Is(err, ErrUnknownFood) {
		t.Errorf("no product err = %v, want ErrUnknownFood", err)
	}
	boom := errors.New("network down")
	_, err := NewService(nil, &fakeRemote{err: boom}, nil).Lookup(ctx, "durian")
	if !errors.Is(err, boom) || errors.Is(err, ErrUnknownFood) {
		t.Errorf("network err = %v, want wrapped network error", err)
	}
}

func TestPortionScalesAndAdvises(t *testing.T) {
	svc := NewService(nil, nil, nil)

	res, err := svc.Portion(context.Background(), "chicken breast", 200)
	if err != nil {
		t.Fatalf("Portion failed: %v", err)
	}
	p := res.Portion
	if p.Calories != 330 || p.Protein != 62 || p.Fat != 7.2 || p.Sodium != 148 {
		t.Errorf("portion = %+v", p)
	}
	if len(res.Recommendations) != 2 {
		t.Errorf("recommendations = %v, want high calorie and high protein", res.Recommendations)
	}

	if _, err := svc.Portion(context.Background(), "apple", 0); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("zero grams err = %v, want ErrInvalidQuery", err)
	}
}

func TestSearchTopsUpFromRemote(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Put(&models.FoodNutritionFact{Name: "rice noodles"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	remote := &fakeRemote{facts: []models.FoodNutritionFact{{Name: "White Rice"}, {Name: "Rice Pudding"}, {Name: "Rice Milk"}}}
	svc := NewService(store, remote, nil)

	got, err := svc.Search(context.Background(), "rice", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	// store first, then seed, then remote with "White Rice" deduplicated.
	want := []string{"rice noodles", "white rice", "Rice Pudding"}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestSearchSurvivesRemoteFailure(t *testing.T) {
	svc := NewService(nil, &fakeRemote{err: errors.New("timeout")}, nil)

	got, err := svc.Search(context.Background(), "banana", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "banana" {
		t.Errorf("got %+v, want the seed banana", got)
	}
}
