// ABOUTME: Tests for the dashboard view and request dispatch.
// ABOUTME: Runs against a real SQLite database.
package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/fitdiary/internal/progress"
)

func TestDashboard(t *testing.T) {
	tr := setupTracker(t, setupTestDB(t), Options{})
	ctx := context.Background()

	_, err := tr.UpdateProfile(ctx, "wes", &ProfileUpdate{
		Sex: ptr("male"), Age: ptr(30), HeightCm: ptr(180.0), InitialWeightKg: ptr(85.0),
		ActivityLevel: ptr("moderate"),
		Goals:         &GoalsUpdate{TargetWeightKg: ptr(75.0), WeeklyGoalKg: ptr(0.5), DailyCalorieTarget: ptr(2000.0)},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if _, err := tr.RecordHealthSample(ctx, "wes", &HealthInput{Date: "2025-03-10", WeightKg: 80}); err != nil {
		t.Fatalf("RecordHealthSample failed: %v", err)
	}
	if _, err := tr.AppendMeal(ctx, "wes", "2025-03-10", &MealInput{MealType: "lunch", Calories: 1200, Protein: 50}); err != nil {
		t.Fatalf("AppendMeal failed: %v", err)
	}
	if _, err := tr.AppendExercise(ctx, "wes", "2025-03-10", &ExerciseInput{ExerciseType: "cycling", Duration: 40, CaloriesBurned: 300}); err != nil {
		t.Fatalf("AppendExercise failed: %v", err)
	}

	d, err := tr.Dashboard(ctx, "wes", "")
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if d.Date != "2025-03-10" || d.Profile == nil || d.Latest == nil {
		t.Fatalf("dashboard = %+v", d)
	}
	if d.Derived == nil || d.Derived.WeightKg != 80 || d.Derived.BMI != 24.7 || d.Derived.BMR != 1854 || d.Derived.TDEE != 2874 {
		t.Errorf("derived = %+v, want 80 kg, BMI 24.7, BMR 1854, TDEE 2874", d.Derived)
	}

	s := d.Snapshot
	if s.TargetCalories != 2000 || s.RemainingCalories != 1100 || s.CalorieBalance != -1100 {
		t.Errorf("calories = target %v remaining %v balance %v", s.TargetCalories, s.RemainingCalories, s.CalorieBalance)
	}
	if s.WeightProgressPercent != 50 || s.RemainingDays != 70 {
		t.Errorf("weight progress = %v%%, %d days left; want 50%%, 70", s.WeightProgressPercent, s.RemainingDays)
	}
	if len(s.Badges) != 1 || s.Badges[0] != progress.BadgeCalorieGoal {
		t.Errorf("badges = %v, want only the calorie badge", s.Badges)
	}
}

func TestDashboardNewUser(t *testing.T) {
	tr := setupTracker(t, setupTestDB(t), Options{})

	d, err := tr.Dashboard(context.Background(), "zed", "2025-03-01")
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if d.Profile != nil || d.Latest != nil || d.Derived != nil {
		t.Errorf("new user should have no profile data: %+v", d)
	}
	if d.Diet == nil || d.Diet.Version != 0 || len(d.Diet.Meals) != 0 {
		t.Errorf("diet = %+v, want an empty record", d.Diet)
	}
	if d.Exercise == nil || len(d.Exercise.Exercises) != 0 {
		t.Errorf("exercise = %+v, want an empty record", d.Exercise)
	}
	if d.Snapshot.TargetCalories != 1800 || d.Snapshot.RemainingCalories != 1800 || d.Snapshot.RemainingDays != -1 {
		t.Errorf("snapshot = %+v", d.Snapshot)
	}

	if _, err := tr.Dashboard(context.Background(), "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty user err = %v, want ErrValidation", err)
	}
}

func TestDispatch(t *testing.T) {
	tr := setupTracker(t, setupTestDB(t), Options{})
	ctx := context.Background()

	meal, err := tr.Dispatch(ctx, AppendMealRequest{UserID: "xia", Date: "2025-03-10", Meal: MealInput{MealType: "snack", Calories: 150}})
	if err != nil {
		t.Fatalf("Dispatch(AppendMealRequest) failed: %v", err)
	}
	entryID := meal.(*MealResult).EntryID.String()

	ex, err := tr.Dispatch(ctx, AppendExerciseRequest{UserID: "xia", Date: "2025-03-10", Exercise: ExerciseInput{ExerciseType: "yoga", Duration: 20, CaloriesBurned: 80}})
	if err != nil {
		t.Fatalf("Dispatch(AppendExerciseRequest) failed: %v", err)
	}
	exerciseID := ex.(*ExerciseResult).EntryID.String()

	requests := []Request{
		GetDietDayRequest{UserID: "xia", Date: "2025-03-10"},
		GetExerciseDayRequest{UserID: "xia", Date: "2025-03-10"},
		GetDashboardRequest{UserID: "xia"},
		UpdateProfileRequest{UserID: "xia", Update: ProfileUpdate{HeightCm: ptr(165.0)}},
		RecordHealthSampleRequest{UserID: "xia", Sample: HealthInput{Date: "2025-03-10", WeightKg: 58}},
		ChatRequest{UserID: "xia", Question: "how is my weight?"},
		RemoveMealRequest{UserID: "xia", Date: "2025-03-10", EntryID: entryID},
		RemoveExerciseRequest{UserID: "xia", Date: "2025-03-10", EntryID: exerciseID},
	}
	for _, req := range requests {
		out, err := tr.Dispatch(ctx, req)
		if err != nil {
			t.Errorf("Dispatch(%T) failed: %v", req, err)
			continue
		}
		if out == nil {
			t.Errorf("Dispatch(%T) returned nil", req)
		}
	}

	if _, err := tr.Dispatch(ctx, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("nil request err = %v, want ErrValidation", err)
	}
	if _, err := tr.Dispatch(ctx, &GetDietDayRequest{UserID: "xia", Date: "2025-03-10"}); !errors.Is(err, ErrValidation) {
		t.Errorf("pointer request err = %v, want ErrValidation", err)
	}
}
