// ABOUTME: Chat assistant collaborators: prompt context, responder interface and keyword stub.
// ABOUTME: The tracker gathers user data into a PromptContext and asks a Responder for a reply.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fitdiary/internal/models"
)

const (
	// MaxHistoryMessages is how many trailing conversation messages go into a prompt.
	MaxHistoryMessages = 6
	// RecentDays is how many recent day records the tracker gathers for context.
	RecentDays = 3
	// MaxSuggestions caps the follow-up suggestion list.
	MaxSuggestions = 3
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PromptContext is everything a responder may use to answer a question.
type PromptContext struct {
	Profile        *models.UserProfile         `json:"profile,omitempty"`
	Latest         *models.HealthSample        `json:"latest,omitempty"`
	RecentDiet     []*models.DayDietRecord     `json:"recent_diet,omitempty"`
	RecentExercise []*models.DayExerciseRecord `json:"recent_exercise,omitempty"`
	History        []Message                   `json:"history,omitempty"`
	Question       string                      `json:"question"`
}

// Responder produces a reply for a question.
type Responder interface {
	Respond(ctx context.Context, pc *PromptContext) (string, error)
}

// BuildPrompt renders pc as a plain-text prompt for a language model.
func BuildPrompt(pc *PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a health and weight-loss assistant. Give practical, personalised advice based on the user's data.\n\n")

	if p := pc.Profile; p != nil {
		b.WriteString("User profile:\n")
		fmt.Fprintf(&b, "- Sex: %s\n", orUnknown(p.Sex))
		fmt.Fprintf(&b, "- Age: %s\n", numOrUnknown(float64(p.Age), "%.0f"))
		fmt.Fprintf(&b, "- Height: %s cm\n", numOrUnknown(p.HeightCm, "%.0f"))
		if p.Goals.TargetWeightKg > 0 {
			fmt.Fprintf(&b, "- Target weight: %.1f kg\n", p.Goals.TargetWeightKg)
		} else {
			b.WriteString("- Target weight: not set\n")
		}
		b.WriteString("\n")
	}

	if s := pc.Latest; s != nil {
		b.WriteString("Latest health data:\n")
		fmt.Fprintf(&b, "- Weight: %.1f kg\n", s.WeightKg)
		fmt.Fprintf(&b, "- BMI: %s\n", numOrUnknown(s.BMI, "%.1f"))
		if s.BodyFat != nil {
			fmt.Fprintf(&b, "- Body fat: %.1f%%\n", *s.BodyFat)
		} else {
			b.WriteString("- Body fat: unknown\n")
		}
		b.WriteString("\n")
	}

	if len(pc.RecentDiet) > 0 {
		b.WriteString("Recent diet:\n")
		for _, d := range pc.RecentDiet {
			fmt.Fprintf(&b, "- %s: %.0f kcal eaten\n", d.Date, d.TotalCalories)
		}
		b.WriteString("\n")
	}

	if len(pc.RecentExercise) > 0 {
		b.WriteString("Recent exercise:\n")
		for _, d := range pc.RecentExercise {
			fmt.Fprintf(&b, "- %s: %d min, %.0f kcal burned\n", d.Date, d.TotalDuration, d.TotalCaloriesBurned)
		}
		b.WriteString("\n")
	}

	if history := TrimHistory(pc.History); len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range history {
			who := "AI"
			if m.Role == RoleUser {
				who = "User"
			}
			fmt.Fprintf(&b, "%s: %s\n", who, m.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Current question: %s\n\n", pc.Question)
	b.WriteString("Answer specifically; for diet or exercise questions give concrete suggestions.")
	return b.String()
}

// TrimHistory returns the last MaxHistoryMessages messages.
func TrimHistory(history []Message) []Message {
	if len(history) <= MaxHistoryMessages {
		return history
	}
	return history[len(history)-MaxHistoryMessages:]
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func numOrUnknown(v float64, format string) string {
	if v <= 0 {
		return "unknown"
	}
	return fmt.Sprintf(format, v)
}
