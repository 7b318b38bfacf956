// ABOUTME: Period summaries over diet and exercise days.
// ABOUTME: A period is a named lookback (week or month) ending on a given day.
package tracker

import (
	"context"

	"github.com/harperreed/fitdiary/internal/progress"
)

// Period lengths in days.
var periodDays = map[string]int{
	"week":  7,
	"month": 30,
}

// PeriodSummary aggregates a user's records over a date range.
type PeriodSummary struct {
	Period   string                   `json:"period"`
	From     string                   `json:"from"`
	To       string                   `json:"to"`
	Diet     progress.DietSummary     `json:"diet"`
	Exercise progress.ExerciseSummary `json:"exercise"`
}

// Summary aggregates the period ("week" or "month") ending on date.
// An empty date means today.
func (t *Tracker) Summary(ctx context.Context, userID, period, date string) (*PeriodSummary, error) {
	days, ok := periodDays[period]
	if !ok {
		return nil, invalid("period", "must be week or month, got %q", period)
	}
	if date == "" {
		date = t.Today()
	}
	if err := validateDay(userID, date); err != nil {
		return nil, err
	}
	from := daysBefore(date, days-1)

	diet, err := t.ListDietDays(ctx, userID, from, date, 0)
	if err != nil {
		return nil, err
	}
	exercise, err := t.ListExerciseDays(ctx, userID, from, date, 0)
	if err != nil {
		return nil, err
	}

	return &PeriodSummary{
		Period:   period,
		From:     from,
		To:       date,
		Diet:     progress.SummarizeDiet(diet),
		Exercise: progress.SummarizeExercise(exercise),
	}, nil
}
