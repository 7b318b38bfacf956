// ABOUTME: Stateless achievement evaluation for a freshly logged exercise.
// ABOUTME: Session badges come from the entry; streak badges come from recent day records.
package achievement

import (
	"time"

	"github.com/harperreed/fitdiary/internal/models"
)

// DefaultWindow is the streak lookback in days.
const DefaultWindow = 7

// Achievement labels.
const (
	HalfHourSession = "30-minute session"
	HourSession     = "1-hour session"
	Burned100       = "100 kcal burned"
	Burned300       = "300 kcal burned"
	Streak3         = "3-day streak"
	Streak7         = "7-day streak"
)

// Evaluator awards achievements. It keeps no record of what was awarded before.
type Evaluator struct {
	// Window is the streak lookback in days, ending on the entry's day.
	Window int
}

// NewEvaluator creates an Evaluator with the given window, or the default when window <= 0.
func NewEvaluator(window int) *Evaluator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Evaluator{Window: window}
}

// Evaluate returns the labels earned by entry logged on day.
// history is the user's recent exercise day records, most recent first, and may include day itself.
func (e *Evaluator) Evaluate(day string, entry *models.ExerciseEntry, history []*models.DayExerciseRecord) []string {
	labels := []string{}

	if entry.Duration >= 30 {
		labels = append(labels, HalfHourSession)
	}
	if entry.Duration >= 60 {
		labels = append(labels, HourSession)
	}
	if entry.CaloriesBurned >= 100 {
		labels = append(labels, Burned100)
	}
	if entry.CaloriesBurned >= 300 {
		labels = append(labels, Burned300)
	}

	active := e.ActiveDays(day, history)
	if active >= 3 {
		labels = append(labels, Streak3)
	}
	if active >= 7 {
		labels = append(labels, Streak7)
	}
	return labels
}

// ActiveDays counts distinct dates with at least one exercise in (day - Window, day].
func (e *Evaluator) ActiveDays(day string, history []*models.DayExerciseRecord) int {
	end, err := models.ParseDate(day)
	if err != nil {
		return 0
	}
	window := e.Window
	if window <= 0 {
		window = DefaultWindow
	}
	start := end.AddDate(0, 0, -window)

	seen := make(map[string]struct{})
	for _, rec := range history {
		if rec == nil || len(rec.Exercises) == 0 {
			continue
		}
		d, err := models.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		if !d.After(start) || d.After(end) {
			continue
		}
		seen[rec.Date] = struct{}{}
	}
	return len(seen)
}

// WindowStart returns the first day key inside the lookback window ending at day.
func (e *Evaluator) WindowStart(day time.Time) string {
	window := e.Window
	if window <= 0 {
		window = DefaultWindow
	}
	return models.FormatDate(day.AddDate(0, 0, -window+1))
}
