// ABOUTME: Tests for session and streak achievements.
// ABOUTME: Streak windows are checked at their boundaries.
package achievement

import (
	"testing"

	"github.com/harperreed/fitdiary/internal/models"
)

func dayWithExercise(date string) *models.DayExerciseRecord {
	r := models.NewDayExerciseRecord("u1", date)
	r.Exercises = append(r.Exercises, *models.NewExerciseEntry("walking", 20))
	r.Recompute()
	return r
}

func has(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

func TestEvaluateSessionBadgesWithoutHistory(t *testing.T) {
	e := NewEvaluator(0)
	entry := models.NewExerciseEntry("running", 45).WithCalories(150)

	labels := e.Evaluate("2025-03-10", entry, nil)

	if !has(labels, HalfHourSession) || !has(labels, Burned100) {
		t.Errorf("labels = %v, want 30-minute session and 100 kcal burned", labels)
	}
	for _, unwanted := range []string{HourSession, Burned300, Streak3, Streak7} {
		if has(labels, unwanted) {
			t.Errorf("labels = %v, did not expect %q", labels, unwanted)
		}
	}
}

func TestEvaluateBothThresholdsFire(t *testing.T) {
	e := NewEvaluator(7)
	entry := models.NewExerciseEntry("cycling", 60).WithCalories(300)

	labels := e.Evaluate("2025-03-10", entry, nil)

	want := []string{HalfHourSession, HourSession, Burned100, Burned300}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestEvaluateNoBadges(t *testing.T) {
	labels := NewEvaluator(7).Evaluate("2025-03-10", models.NewExerciseEntry("yoga", 10), nil)
	if labels == nil || len(labels) != 0 {
		t.Errorf("labels = %v, want empty non-nil slice", labels)
	}
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name    string
		dates   []string
		want3   bool
		want7   bool
		wantCnt int
	}{
		{"two days", []string{"2025-03-10", "2025-03-09"}, false, false, 2},
		{"three days", []string{"2025-03-10", "2025-03-08", "2025-03-04"}, true, false, 3},
		{"oldest day falls outside window", []string{"2025-03-10", "2025-03-08", "2025-03-03"}, false, false, 2},
		{"future days ignored", []string{"2025-03-12", "2025-03-10", "2025-03-09"}, false, false, 2},
		{"full week", []string{
			"2025-03-10", "2025-03-09", "2025-03-08", "2025-03-07",
			"2025-03-06", "2025-03-05", "2025-03-04",
		}, true, true, 7},
		{"duplicates counted once", []string{"2025-03-10", "2025-03-10", "2025-03-09"}, false, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var history []*models.DayExerciseRecord
			for _, d := range tt.dates {
				history = append(history, dayWithExercise(d))
			}
			e := NewEvaluator(7)
			if got := e.ActiveDays("2025-03-10", history); got != tt.wantCnt {
				t.Errorf("ActiveDays = %d, want %d", got, tt.wantCnt)
			}
			labels := e.Evaluate("2025-03-10", models.NewExerciseEntry("walking", 5), history)
			if has(labels, Streak3) != tt.want3 {
				t.Errorf("3-day streak = %v, want %v (labels %v)", has(labels, Streak3), tt.want3, labels)
			}
			if has(labels, Streak7) != tt.want7 {
				t.Errorf("7-day streak = %v, want %v (labels %v)", has(labels, Streak7), tt.want7, labels)
			}
		})
	}
}

func TestEmptyDaysDoNotCount(t *testing.T) {
	history := []*models.DayExerciseRecord{
		dayWithExercise("2025-03-10"),
		models.NewDayExerciseRecord("u1", "2025-03-09"),
		dayWithExercise("2025-03-08"),
	}
	if got := NewEvaluator(7).ActiveDays("2025-03-10", history); got != 2 {
		t.Errorf("ActiveDays = %d, want 2", got)
	}
}

func TestCustomWindow(t *testing.T) {
	history := []*models.DayExerciseRecord{
		dayWithExercise("2025-03-10"),
		dayWithExercise("2025-03-09"),
		dayWithExercise("2025-03-08"),
	}
	if got := NewEvaluator(2).ActiveDays("2025-03-10", history); got != 2 {
		t.Errorf("ActiveDays with a 2 day window = %d, want 2", got)
	}
}

func TestWindowStart(t *testing.T) {
	d, _ := models.ParseDate("2025-03-10")
	if got := NewEvaluator(7).WindowStart(d); got != "2025-03-04" {
		t.Errorf("WindowStart = %q, want 2025-03-04", got)
	}
}
