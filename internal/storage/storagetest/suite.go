// ABOUTME: Behavioural test suite shared by every storage.Repository backend.
// ABOUTME: Backends call RunRepositorySuite from their own tests with a fresh-repo factory.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/storage"
)

// RunRepositorySuite exercises a Repository implementation. newRepo must
// return an empty repository for every call.
func RunRepositorySuite(t *testing.T, newRepo func(t *testing.T) storage.Repository) {
	t.Run("profile round trip", func(t *testing.T) { testProfileRoundTrip(t, newRepo(t)) })
	t.Run("missing profile", func(t *testing.T) { testMissingProfile(t, newRepo(t)) })
	t.Run("latest health sample", func(t *testing.T) { testLatestHealthSample(t, newRepo(t)) })
	t.Run("diet day CAS", func(t *testing.T) { testDietDayCAS(t, newRepo(t)) })
	t.Run("exercise day CAS", func(t *testing.T) { testExerciseDayCAS(t, newRepo(t)) })
	t.Run("list day ranges", func(t *testing.T) { testListDayRanges(t, newRepo(t)) })
}

func testProfileRoundTrip(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	target := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := models.NewUserProfile("alice").WithBody("female", 31, 168, 72).WithActivityLevel(models.ActivityLight)
	p.Goals.TargetWeightKg = 65
	p.Goals.TargetDate = &target

	if err := repo.PutProfile(ctx, p); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}

	got, err := repo.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.HeightCm != 168 || got.ActivityLevel != models.ActivityLight {
		t.Errorf("profile mismatch: %+v", got)
	}
	if got.Goals.TargetDate == nil || !got.Goals.TargetDate.Equal(target) {
		t.Errorf("TargetDate = %v, want %v", got.Goals.TargetDate, target)
	}

	// Put replaces.
	p.Nickname = "al"
	if err := repo.PutProfile(ctx, p); err != nil {
		t.Fatalf("PutProfile (replace) failed: %v", err)
	}
	profiles, err := repo.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Nickname != "al" {
		t.Errorf("ListProfiles = %+v, want one replaced profile", profiles)
	}
}

func testMissingProfile(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	_, err := repo.GetProfile(ctx, "nobody")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetProfile err = %v, want storage.ErrNotFound", err)
	}
	_, err = repo.LatestHealthSample(ctx, "nobody")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LatestHealthSample err = %v, want storage.ErrNotFound", err)
	}
	_, err = repo.GetDietDay(ctx, "nobody", "2025-01-01")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetDietDay err = %v, want storage.ErrNotFound", err)
	}
	_, err = repo.GetExerciseDay(ctx, "nobody", "2025-01-01")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetExerciseDay err = %v, want storage.ErrNotFound", err)
	}
}

func testLatestHealthSample(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	older := models.NewHealthSample("bob", "2025-03-01", 80)
	older.CreatedAt = base.Add(2 * time.Hour)
	sameDayEarlier := models.NewHealthSample("bob", "2025-03-02", 79.6)
	sameDayEarlier.CreatedAt = base
	newest := models.NewHealthSample("bob", "2025-03-02", 79.4).WithBodyFat(21.5)
	newest.CreatedAt = base.Add(time.Hour)
	other := models.NewHealthSample("carol", "2025-03-05", 60)

	for _, s := range []*models.HealthSample{older, sameDayEarlier, newest, other} {
		if err := repo.AddHealthSample(ctx, s); err != nil {
			t.Fatalf("AddHealthSample failed: %v", err)
		}
	}

	latest, err := repo.LatestHealthSample(ctx, "bob")
	if err != nil {
		t.Fatalf("LatestHealthSample failed: %v", err)
	}
	if latest.ID != newest.ID {
		t.Errorf("latest = %v (%s), want %v", latest.WeightKg, latest.Date, newest.WeightKg)
	}
	if latest.BodyFat == nil || *latest.BodyFat != 21.5 {
		t.Errorf("BodyFat = %v, want 21.5", latest.BodyFat)
	}

	bobs, err := repo.ListHealthSamples(ctx, "bob", 0)
	if err != nil {
		t.Fatalf("ListHealthSamples failed: %v", err)
	}
	if len(bobs) != 3 || bobs[2].ID != older.ID {
		t.Errorf("ListHealthSamples(bob) returned %d samples in wrong order", len(bobs))
	}

	all, err := repo.ListHealthSamples(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListHealthSamples(all) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListHealthSamples(all) = %d samples, want 4", len(all))
	}
}

func testDietDayCAS(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	rec := models.NewDayDietRecord("dave", "2025-03-01")
	rec.Meals = append(rec.Meals, *models.NewMealEntry(models.MealLunch))
	rec.Meals[0].Calories = 500
	rec.Recompute()

	if err := repo.PutDietDay(ctx, rec, 0); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if rec.Version != 1 {
		t.Errorf("Version after insert = %d, want 1", rec.Version)
	}

	// A second insert at version 0 must conflict.
	dup := models.NewDayDietRecord("dave", "2025-03-01")
	if err := repo.PutDietDay(ctx, dup, 0); !errors.Is(err, storage.ErrVersionConflict) {
		t.Errorf("duplicate insert err = %v, want storage.ErrVersionConflict", err)
	}

	// Two readers load version 1; the first writer wins.
	a, err := repo.GetDietDay(ctx, "dave", "2025-03-01")
	if err != nil {
		t.Fatalf("GetDietDay failed: %v", err)
	}
	b, _ := repo.GetDietDay(ctx, "dave", "2025-03-01")

	a.Meals = append(a.Meals, models.MealEntry{Calories: 200})
	a.Recompute()
	if err := repo.PutDietDay(ctx, a, a.Version); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	b.Meals = append(b.Meals, models.MealEntry{Calories: 999})
	b.Recompute()
	if err := repo.PutDietDay(ctx, b, b.Version); !errors.Is(err, storage.ErrVersionConflict) {
		t.Errorf("stale update err = %v, want storage.ErrVersionConflict", err)
	}
	if b.Version != 1 {
		t.Errorf("failed put must not advance the record's version, got %d", b.Version)
	}

	got, err := repo.GetDietDay(ctx, "dave", "2025-03-01")
	if err != nil {
		t.Fatalf("GetDietDay failed: %v", err)
	}
	if got.Version != 2 || got.TotalCalories != 700 || len(got.Meals) != 2 {
		t.Errorf("stored = v%d %v kcal %d meals, want v2 700 kcal 2 meals", got.Version, got.TotalCalories, len(got.Meals))
	}
}

func testExerciseDayCAS(t *testing.T, repo storage.Repository) {
	ctx := context.Background()

	rec := models.NewDayExerciseRecord("erin", "2025-03-01")
	rec.Exercises = append(rec.Exercises, *models.NewExerciseEntry("running", 30).WithCalories(300).WithSteps(4000))
	rec.Recompute()

	if err := repo.PutExerciseDay(ctx, rec, 0); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.PutExerciseDay(ctx, rec, 0); !errors.Is(err, storage.ErrVersionConflict) {
		t.Errorf("re-insert err = %v, want storage.ErrVersionConflict", err)
	}
	if err := repo.PutExerciseDay(ctx, rec, 7); !errors.Is(err, storage.ErrVersionConflict) {
		t.Errorf("wrong version err = %v, want storage.ErrVersionConflict", err)
	}

	got, err := repo.GetExerciseDay(ctx, "erin", "2025-03-01")
	if err != nil {
		t.Fatalf("GetExerciseDay failed: %v", err)
	}
	if got.Version != 1 || got.TotalSteps != 4000 || got.TotalCaloriesBurned != 300 {
		t.Errorf("stored = %+v", got)
	}
	if got.Exercises[0].Steps == nil || *got.Exercises[0].Steps != 4000 {
		t.Errorf("entry steps did not round trip: %v", got.Exercises[0].Steps)
	}
}

func testListDayRanges(t *testing.T, repo storage.Repository) {
	ctx := context.Background()
	for _, d := range []string{"2025-03-01", "2025-03-02", "2025-03-04", "2025-03-07"} {
		rec := models.NewDayExerciseRecord("finn", d)
		rec.Exercises = append(rec.Exercises, *models.NewExerciseEntry("walking", 20))
		rec.Recompute()
		if err := repo.PutExerciseDay(ctx, rec, 0); err != nil {
			t.Fatalf("PutExerciseDay(%s) failed: %v", d, err)
		}
		diet := models.NewDayDietRecord("finn", d)
		if err := repo.PutDietDay(ctx, diet, 0); err != nil {
			t.Fatalf("PutDietDay(%s) failed: %v", d, err)
		}
	}
	if err := repo.PutExerciseDay(ctx, models.NewDayExerciseRecord("gus", "2025-03-03"), 0); err != nil {
		t.Fatalf("PutExerciseDay(gus) failed: %v", err)
	}

	tests := []struct {
		name  string
		user  string
		r     storage.DayRange
		dates []string
	}{
		{"all of finn", "finn", storage.DayRange{}, []string{"2025-03-07", "2025-03-04", "2025-03-02", "2025-03-01"}},
		{"bounded", "finn", storage.DayRange{From: "2025-03-02", To: "2025-03-04"}, []string{"2025-03-04", "2025-03-02"}},
		{"to with limit", "finn", storage.DayRange{To: "2025-03-05", Limit: 2}, []string{"2025-03-04", "2025-03-02"}},
		{"every user", "", storage.DayRange{From: "2025-03-03", To: "2025-03-04"}, []string{"2025-03-04", "2025-03-03"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := repo.ListExerciseDays(ctx, tt.user, tt.r)
			if err != nil {
				t.Fatalf("ListExerciseDays failed: %v", err)
			}
			if len(recs) != len(tt.dates) {
				t.Fatalf("got %d records, want %d", len(recs), len(tt.dates))
			}
			for i, d := range tt.dates {
				if recs[i].Date != d {
					t.Errorf("recs[%d].Date = %s, want %s", i, recs[i].Date, d)
				}
			}
		})
	}

	diet, err := repo.ListDietDays(ctx, "finn", storage.DayRange{From: "2025-03-04"})
	if err != nil {
		t.Fatalf("ListDietDays failed: %v", err)
	}
	if len(diet) != 2 || diet[0].Version != 1 {
		t.Errorf("ListDietDays = %d records, want 2 at version 1", len(diet))
	}
}
