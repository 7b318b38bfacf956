// ABOUTME: MCP resource implementations for fitdiary.
// ABOUTME: Provides fitdiary://today, fitdiary://recent, fitdiary://profile and fitdiary://foods.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fitdiary/internal/food"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resource URIs.
const (
	TodayURI   = "fitdiary://today"
	RecentURI  = "fitdiary://recent"
	ProfileURI = "fitdiary://profile"
	FoodsURI   = "fitdiary://foods"
)

// recentDays is how many days of each kind fitdiary://recent returns.
const recentDays = 7

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         TodayURI,
		Name:        "Today's Dashboard",
		Description: "Calorie balance, body metrics and goal progress for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         RecentURI,
		Name:        "Recent Days",
		Description: "The seven most recent diet and exercise days",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         ProfileURI,
		Name:        "Profile",
		Description: "Profile, goals and the latest body measurement",
		MIMEType:    "application/json",
	}, s.handleProfileResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         FoodsURI,
		Name:        "Built-in Foods",
		Description: "Nutrition per 100 g for the built-in food table",
		MIMEType:    "application/json",
	}, s.handleFoodsResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d, err := s.tracker.Dashboard(ctx, s.defaultUser, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return jsonResource(TodayURI, d)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	diet, err := s.tracker.ListDietDays(ctx, s.defaultUser, "", "", recentDays)
	if err != nil {
		return nil, fmt.Errorf("failed to list diet days: %w", err)
	}
	exercise, err := s.tracker.ListExerciseDays(ctx, s.defaultUser, "", "", recentDays)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise days: %w", err)
	}

	return jsonResource(RecentURI, map[string]any{
		"diet":     diet,
		"exercise": exercise,
		"counts": map[string]int{
			"diet_days":     len(diet),
			"exercise_days": len(exercise),
		},
	})
}

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]any{"user_id": s.defaultUser}

	p, err := s.tracker.Profile(ctx, s.defaultUser)
	switch {
	case err == nil:
		result["profile"] = p
	case !errors.Is(err, tracker.ErrNotFound):
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	latest, err := s.tracker.LatestHealthSample(ctx, s.defaultUser)
	switch {
	case err == nil:
		result["latest"] = latest
	case !errors.Is(err, tracker.ErrNotFound):
		return nil, fmt.Errorf("failed to load health sample: %w", err)
	}

	return jsonResource(ProfileURI, result)
}

func (s *Server) handleFoodsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(FoodsURI, map[string]any{"foods": food.SeedFacts()})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
