// ABOUTME: Tagged-union requests and a single Dispatch entry point.
// ABOUTME: Transports build a Request and hand it to the tracker.
package tracker

import (
	"context"

	"github.com/harperreed/fitdiary/internal/assistant"
)

// Request is implemented only by the request types in this package.
type Request interface {
	isRequest()
}

// AppendMealRequest logs a meal.
type AppendMealRequest struct {
	UserID string    `json:"user_id"`
	Date   string    `json:"date"`
	Meal   MealInput `json:"meal"`
}

// RemoveMealRequest deletes a meal by ID prefix.
type RemoveMealRequest struct {
	UserID  string `json:"user_id"`
	Date    string `json:"date"`
	EntryID string `json:"entry_id"`
}

// AppendExerciseRequest logs an exercise session.
type AppendExerciseRequest struct {
	UserID   string        `json:"user_id"`
	Date     string        `json:"date"`
	Exercise ExerciseInput `json:"exercise"`
}

// RemoveExerciseRequest deletes an exercise session by ID prefix.
type RemoveExerciseRequest struct {
	UserID  string `json:"user_id"`
	Date    string `json:"date"`
	EntryID string `json:"entry_id"`
}

// GetDietDayRequest reads one diet day.
type GetDietDayRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

// GetExerciseDayRequest reads one exercise day.
type GetExerciseDayRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

// GetDashboardRequest reads the dashboard for one day.
type GetDashboardRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

// UpdateProfileRequest applies a partial profile update.
type UpdateProfileRequest struct {
	UserID string        `json:"user_id"`
	Update ProfileUpdate `json:"update"`
}

// RecordHealthSampleRequest appends a body measurement.
type RecordHealthSampleRequest struct {
	UserID string      `json:"user_id"`
	Sample HealthInput `json:"sample"`
}

// ChatRequest asks the assistant a question.
type ChatRequest struct {
	UserID   string              `json:"user_id"`
	Question string              `json:"question"`
	History  []assistant.Message `json:"history,omitempty"`
}

func (AppendMealRequest) isRequest()         {}
func (RemoveMealRequest) isRequest()         {}
func (AppendExerciseRequest) isRequest()     {}
func (RemoveExerciseRequest) isRequest()     {}
func (GetDietDayRequest) isRequest()         {}
func (GetExerciseDayRequest) isRequest()     {}
func (GetDashboardRequest) isRequest()       {}
func (UpdateProfileRequest) isRequest()      {}
func (RecordHealthSampleRequest) isRequest() {}
func (ChatRequest) isRequest()               {}

// Dispatch runs req and returns the operation's result.
func (t *Tracker) Dispatch(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case AppendMealRequest:
		return t.AppendMeal(ctx, r.UserID, r.Date, &r.Meal)
	case RemoveMealRequest:
		return t.RemoveMeal(ctx, r.UserID, r.Date, r.EntryID)
	case AppendExerciseRequest:
		return t.AppendExercise(ctx, r.UserID, r.Date, &r.Exercise)
	case RemoveExerciseRequest:
		return t.RemoveExercise(ctx, r.UserID, r.Date, r.EntryID)
	case GetDietDayRequest:
		return t.DietDay(ctx, r.UserID, r.Date)
	case GetExerciseDayRequest:
		return t.ExerciseDay(ctx, r.UserID, r.Date)
	case GetDashboardRequest:
		return t.Dashboard(ctx, r.UserID, r.Date)
	case UpdateProfileRequest:
		return t.UpdateProfile(ctx, r.UserID, &r.Update)
	case RecordHealthSampleRequest:
		return t.RecordHealthSample(ctx, r.UserID, &r.Sample)
	case ChatRequest:
		return t.Chat(ctx, r.UserID, r.Question, r.History)
	case nil:
		return nil, invalid("request", "must not be nil")
	default:
		return nil, invalid("request", "unsupported request type %T", req)
	}
}
