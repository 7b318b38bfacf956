// ABOUTME: MCP tool implementations for fitdiary.
// ABOUTME: Each tool builds a tracker request or calls the food service.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/fitdiary/internal/assistant"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Log a meal with its macros or a list of foods and grams; returns the day totals, a meal analysis and goal badges",
	}, s.handleLogMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_meal",
		Description: "Remove a meal from a day by entry ID or ID prefix",
	}, s.handleRemoveMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_exercise",
		Description: "Log an exercise session; calories are estimated when omitted",
	}, s.handleLogExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_exercise",
		Description: "Remove an exercise session from a day by entry ID or ID prefix",
	}, s.handleRemoveExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_diet_day",
		Description: "Get the meals and totals for one day",
	}, s.handleGetDietDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise_day",
		Description: "Get the exercise sessions and totals for one day",
	}, s.handleGetExerciseDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get profile, body metrics, calorie balance and goal progress for one day",
	}, s.handleGetDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_summary",
		Description: "Summarize diet and exercise over the last week or month",
	}, s.handleGetSummary)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_profile",
		Description: "Update profile fields and goals; omitted fields are unchanged",
	}, s.handleUpdateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_weight",
		Description: "Record a body weight measurement with optional body fat and muscle mass",
	}, s.handleRecordWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "chat",
		Description: "Ask the diet and exercise assistant a question",
	}, s.handleChat)

	if s.foods == nil {
		return
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "lookup_food",
		Description: "Get the nutrition of a food portion in grams",
	}, s.handleLookupFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_foods",
		Description: "Search foods by keyword; values are per 100 g",
	}, s.handleSearchFoods)
}

// Tool input/output types

type foodRefInput struct {
	Name  string  `json:"name" jsonschema:"Food name"`
	Grams float64 `json:"grams" jsonschema:"Quantity in grams"`
}

type logMealInput struct {
	UserID   string         `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Date     string         `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	MealType string         `json:"meal_type" jsonschema:"One of breakfast, lunch, dinner, snack"`
	MealName string         `json:"meal_name,omitempty" jsonschema:"Optional meal name"`
	Calories float64        `json:"calories,omitempty" jsonschema:"Energy in kcal"`
	Protein  float64        `json:"protein,omitempty" jsonschema:"Protein in grams"`
	Carbs    float64        `json:"carbs,omitempty" jsonschema:"Carbohydrates in grams"`
	Fat      float64        `json:"fat,omitempty" jsonschema:"Fat in grams"`
	Fiber    float64        `json:"fiber,omitempty" jsonschema:"Fiber in grams"`
	Sugar    float64        `json:"sugar,omitempty" jsonschema:"Sugar in grams"`
	Sodium   float64        `json:"sodium,omitempty" jsonschema:"Sodium in milligrams"`
	Foods    []foodRefInput `json:"foods,omitempty" jsonschema:"Foods to look up; used for the macros when all macros are omitted"`
	Notes    string         `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type removeEntryInput struct {
	UserID  string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Date    string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	EntryID string `json:"entry_id" jsonschema:"Entry ID or unique prefix"`
}

type logExerciseInput struct {
	UserID         string   `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Date           string   `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	ExerciseType   string   `json:"exercise_type" jsonschema:"Type of exercise (running, walking, cycling, swimming, yoga, etc.)"`
	ExerciseName   string   `json:"exercise_name,omitempty" jsonschema:"Optional display name"`
	Duration       int      `json:"duration,omitempty" jsonschema:"Duration in minutes"`
	StartTime      string   `json:"start_time,omitempty" jsonschema:"Start time (RFC 3339), used with end_time when duration is omitted"`
	EndTime        string   `json:"end_time,omitempty" jsonschema:"End time (RFC 3339)"`
	Intensity      string   `json:"intensity,omitempty" jsonschema:"One of low, medium, high"`
	CaloriesBurned float64  `json:"calories_burned,omitempty" jsonschema:"Calories burned, estimated when omitted"`
	Distance       *float64 `json:"distance,omitempty" jsonschema:"Distance in km"`
	Steps          *int     `json:"steps,omitempty" jsonschema:"Step count"`
	Notes          string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type dayInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Date   string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type summaryInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Period string `json:"period,omitempty" jsonschema:"week (default) or month"`
	Date   string `json:"date,omitempty" jsonschema:"Last day of the period as YYYY-MM-DD, defaults to today"`
}

type goalsInput struct {
	TargetWeightKg     *float64 `json:"target_weight_kg,omitempty" jsonschema:"Target weight in kg"`
	TargetDate         *string  `json:"target_date,omitempty" jsonschema:"Target date as YYYY-MM-DD, empty clears it"`
	WeeklyGoalKg       *float64 `json:"weekly_goal_kg,omitempty" jsonschema:"Planned weekly weight change in kg"`
	DailyCalorieTarget *float64 `json:"daily_calorie_target,omitempty" jsonschema:"Daily calorie target in kcal"`
	TargetProtein      *float64 `json:"target_protein,omitempty" jsonschema:"Daily protein target in grams"`
	TargetCarbs        *float64 `json:"target_carbs,omitempty" jsonschema:"Daily carbohydrate target in grams"`
	TargetFat          *float64 `json:"target_fat,omitempty" jsonschema:"Daily fat target in grams"`
}

type updateProfileInput struct {
	UserID          string      `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Nickname        *string     `json:"nickname,omitempty" jsonschema:"Display name"`
	Sex             *string     `json:"sex,omitempty" jsonschema:"male or female"`
	Age             *int        `json:"age,omitempty" jsonschema:"Age in years (10-100)"`
	HeightCm        *float64    `json:"height_cm,omitempty" jsonschema:"Height in cm (100-250)"`
	InitialWeightKg *float64    `json:"initial_weight_kg,omitempty" jsonschema:"Starting weight in kg (30-300)"`
	ActivityLevel   *string     `json:"activity_level,omitempty" jsonschema:"One of sedentary, light, moderate, active, extra"`
	Goals           *goalsInput `json:"goals,omitempty" jsonschema:"Goal fields to change"`
}

type recordWeightInput struct {
	UserID     string   `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Date       string   `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	WeightKg   float64  `json:"weight_kg" jsonschema:"Body weight in kg"`
	BodyFat    *float64 `json:"body_fat,omitempty" jsonschema:"Body fat percentage"`
	MuscleMass *float64 `json:"muscle_mass,omitempty" jsonschema:"Muscle mass in kg"`
}

type chatInput struct {
	UserID   string              `json:"user_id,omitempty" jsonschema:"User ID whose data gives context, defaults to the configured user"`
	Question string              `json:"question" jsonschema:"The question"`
	History  []assistant.Message `json:"history,omitempty" jsonschema:"Earlier conversation turns, oldest first"`
}

type lookupFoodInput struct {
	Name  string  `json:"name" jsonschema:"Food name"`
	Grams float64 `json:"grams,omitempty" jsonschema:"Quantity in grams (default 100)"`
}

type searchFoodsInput struct {
	Keyword string `json:"keyword" jsonschema:"Search keyword"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

// Tool handlers

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, any, error) {
	meal := tracker.MealInput{
		MealType: input.MealType,
		MealName: input.MealName,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Fiber:    input.Fiber,
		Sugar:    input.Sugar,
		Sodium:   input.Sodium,
		Notes:    input.Notes,
	}
	for _, f := range input.Foods {
		meal.FoodRefs = append(meal.FoodRefs, tracker.FoodRef{Name: f.Name, Grams: f.Grams})
	}
	return s.dispatch(ctx, tracker.AppendMealRequest{UserID: s.user(input.UserID), Date: s.day(input.Date), Meal: meal})
}

func (s *Server) handleRemoveMeal(ctx context.Context, req *mcp.CallToolRequest, input removeEntryInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, tracker.RemoveMealRequest{UserID: s.user(input.UserID), Date: s.day(input.Date), EntryID: input.EntryID})
}

func (s *Server) handleLogExercise(ctx context.Context, req *mcp.CallToolRequest, input logExerciseInput) (*mcp.CallToolResult, any, error) {
	ex := tracker.ExerciseInput{
		ExerciseType:   input.ExerciseType,
		ExerciseName:   input.ExerciseName,
		Duration:       input.Duration,
		Intensity:      input.Intensity,
		CaloriesBurned: input.CaloriesBurned,
		Distance:       input.Distance,
		Steps:          input.Steps,
		Notes:          input.Notes,
	}
	var err error
	if ex.StartTime, err = parseOptionalTime("start_time", input.StartTime); err != nil {
		return nil, nil, err
	}
	if ex.EndTime, err = parseOptionalTime("end_time", input.EndTime); err != nil {
		return nil, nil, err
	}
	return s.dispatch(ctx, tracker.AppendExerciseRequest{UserID: s.user(input.UserID), Date: s.day(input.Date), Exercise: ex})
}

func (s *Server) handleRemoveExercise(ctx context.Context, req *mcp.CallToolRequest, input removeEntryInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, tracker.RemoveExerciseRequest{UserID: s.user(input.UserID), Date: s.day(input.Date), EntryID: input.EntryID})
}

func (s *Server) handleGetDietDay(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, tracker.GetDietDayRequest{UserID: s.user(input.UserID), Date: s.day(input.Date)})
}

func (s *Server) handleGetExerciseDay(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, tracker.GetExerciseDayRequest{UserID: s.user(input.UserID), Date: s.day(input.Date)})
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, tracker.GetDashboardRequest{UserID: s.user(input.UserID), Date: input.Date})
}

func (s *Server) handleGetSummary(ctx context.Context, req *mcp.CallToolRequest, input summaryInput) (*mcp.CallToolResult, any, error) {
	period := input.Period
	if period == "" {
		period = "week"
	}
	summary, err := s.tracker.Summary(ctx, s.user(input.UserID), period, input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to summarize: %w", err)
	}
	return nil, summary, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, req *mcp.CallToolRequest, input updateProfileInput) (*mcp.CallToolResult, any, error) {
	update := tracker.ProfileUpdate{
		Nickname:        input.Nickname,
		Sex:             input.Sex,
		Age:             input.Age,
		HeightCm:        input.HeightCm,
		InitialWeightKg: input.InitialWeightKg,
		ActivityLevel:   input.ActivityLevel,
	}
	if g := input.Goals; g != nil {
		update.Goals = &tracker.GoalsUpdate{
			TargetWeightKg:     g.TargetWeightKg,
			TargetDate:         g.TargetDate,
			WeeklyGoalKg:       g.WeeklyGoalKg,
			DailyCalorieTarget: g.DailyCalorieTarget,
			TargetProtein:      g.TargetProtein,
			TargetCarbs:        g.TargetCarbs,
			TargetFat:          g.TargetFat,
		}
	}
	return s.dispatch(ctx, tracker.UpdateProfileRequest{UserID: s.user(input.UserID), Update: update})
}

func (s *Server) handleRecordWeight(ctx context.Context, req *mcp.CallToolRequest, input recordWeightInput) (*mcp.CallToolResult, any, error) {
	sample := tracker.HealthInput{
		Date:       s.day(input.Date),
		WeightKg:   input.WeightKg,
		BodyFat:    input.BodyFat,
		MuscleMass: input.MuscleMass,
	}
	return s.dispatch(ctx, tracker.RecordHealthSampleRequest{UserID: s.user(input.UserID), Sample: sample})
}

func (s *Server) handleChat(ctx context.Context, req *mcp.CallToolRequest, input chatInput) (*mcp.CallToolResult, any, error) {
	return s.dispatch(ctx, tracker.ChatRequest{UserID: s.user(input.UserID), Question: input.Question, History: input.History})
}

func (s *Server) handleLookupFood(ctx context.Context, req *mcp.CallToolRequest, input lookupFoodInput) (*mcp.CallToolResult, any, error) {
	grams := input.Grams
	if grams == 0 {
		grams = 100
	}
	portion, err := s.foods.Portion(ctx, input.Name, grams)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up food: %w", err)
	}
	return nil, portion, nil
}

func (s *Server) handleSearchFoods(ctx context.Context, req *mcp.CallToolRequest, input searchFoodsInput) (*mcp.CallToolResult, any, error) {
	facts, err := s.foods.Search(ctx, input.Keyword, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search foods: %w", err)
	}
	if len(facts) == 0 {
		return nil, map[string]any{"message": "No foods found."}, nil
	}
	return nil, map[string]any{"foods": facts}, nil
}

func (s *Server) dispatch(ctx context.Context, r tracker.Request) (*mcp.CallToolResult, any, error) {
	out, err := s.tracker.Dispatch(ctx, r)
	if err != nil {
		return nil, nil, err
	}
	return nil, out, nil
}

func (s *Server) day(date string) string {
	if date == "" {
		return s.tracker.Today()
	}
	return date
}

func parseOptionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", field, value)
	}
	return &t, nil
}
