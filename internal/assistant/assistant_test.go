// ABOUTME: Tests for prompt building, the keyword responder and suggestions.
// ABOUTME: Pure functions, no storage.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/harperreed/fitdiary/internal/models"
)

func TestBuildPromptIncludesUserData(t *testing.T) {
	profile := models.NewUserProfile("u1").WithBody("female", 29, 165, 70)
	profile.Goals.TargetWeightKg = 60
	sample := models.NewHealthSample("u1", "2025-03-01", 68.4).WithBodyFat(27)
	sample.BMI = 25.1

	diet := models.NewDayDietRecord("u1", "2025-03-01")
	diet.TotalCalories = 1650
	ex := models.NewDayExerciseRecord("u1", "2025-03-01")
	ex.TotalDuration, ex.TotalCaloriesBurned = 45, 320

	prompt := BuildPrompt(&PromptContext{
		Profile:        profile,
		Latest:         sample,
		RecentDiet:     []*models.DayDietRecord{diet},
		RecentExercise: []*models.DayExerciseRecord{ex},
		Question:       "How much should I eat?",
	})

	for _, want := range []string{
		"- Sex: female",
		"- Age: 29",
		"- Target weight: 60.0 kg",
		"- Weight: 68.4 kg",
		"- BMI: 25.1",
		"- Body fat: 27.0%",
		"- 2025-03-01: 1650 kcal eaten",
		"- 2025-03-01: 45 min, 320 kcal burned",
		"Current question: How much should I eat?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptKeepsLastSixMessages(t *testing.T) {
	var history []Message
	for i := 1; i <= 8; i++ {
		role := RoleUser
		if i%2 == 0 {
			role = RoleAssistant
		}
		history = append(history, Message{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}

	prompt := BuildPrompt(&PromptContext{History: history, Question: "next?"})

	for _, gone := range []string{"msg-1\n", "msg-2\n"} {
		if strings.Contains(prompt, gone) {
			t.Errorf("prompt should not contain %q", gone)
		}
	}
	if !strings.Contains(prompt, "User: msg-3") || !strings.Contains(prompt, "AI: msg-8") {
		t.Errorf("prompt missing trailing history:\n%s", prompt)
	}
	if strings.Contains(prompt, "User profile:") {
		t.Error("prompt should omit sections without data")
	}
}

func TestKeywordResponder(t *testing.T) {
	r := NewKeywordResponder()
	defaults := DefaultReplies()

	tests := []struct {
		question string
		want     string
	}{
		{"What should I EAT for dinner?", defaults[0].Reply},
		{"Is my workout enough?", defaults[1].Reply},
		{"How fast can I lose weight?", defaults[2].Reply},
		{"Make me a plan", defaults[3].Reply},
		{"hello", DefaultFallback},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, err := r.Respond(context.Background(), &PromptContext{Question: tt.question})
			if err != nil {
				t.Fatalf("Respond failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestionsCappedAtThree(t *testing.T) {
	got := Suggestions("diet and exercise to lose weight")
	if len(got) != MaxSuggestions {
		t.Fatalf("got %d suggestions, want %d", len(got), MaxSuggestions)
	}
	if got[0] != SuggestViewDiet {
		t.Errorf("first suggestion = %q, want %q", got[0], SuggestViewDiet)
	}

	got = Suggestions("my workout")
	if len(got) != 3 || got[0] != SuggestLogExercise {
		t.Errorf("workout suggestions = %v", got)
	}

	if got := Suggestions("hi"); got == nil || len(got) != 0 {
		t.Errorf("Suggestions(hi) = %#v, want empty non-nil", got)
	}
}

func TestExerciseRecommendations(t *testing.T) {
	if len(ExerciseRecommendations()) != 4 {
		t.Errorf("expected 4 exercise recommendations")
	}
}
