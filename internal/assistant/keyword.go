// ABOUTME: Keyword-matching Responder stub and follow-up suggestions.
// ABOUTME: Stands in for a real language model behind the Responder interface.
package assistant

import (
	"context"
	"strings"
)

// KeywordReply maps any of Keywords to Reply.
type KeywordReply struct {
	Keywords []string
	Reply    string
}

// DefaultFallback is the reply when no keyword matches.
const DefaultFallback = "Thanks for your question! Keep a regular eating and exercise routine. " +
	"Describe your situation in more detail and I can give more specific advice."

// DefaultReplies are checked in order; the first match wins.
func DefaultReplies() []KeywordReply {
	return []KeywordReply{
		{
			Keywords: []string{"diet", "eat", "food", "meal", "calorie"},
			Reply: "Keep your daily intake around 1800-2000 kcal. Favour protein-rich foods such as chicken breast, " +
				"fish and soy, add more vegetables, and cut back on refined carbohydrates.",
		},
		{
			Keywords: []string{"exercise", "workout", "run", "training", "cardio"},
			Reply: "Aim for 3-4 aerobic sessions a week, such as brisk walking, jogging or swimming, for 30-45 minutes each. " +
				"Add some strength training to raise your basal metabolic rate.",
		},
		{
			Keywords: []string{"weight", "lose", "fat", "bmi"},
			Reply: "Your progress is on track. Keep your current eating and exercise habits; " +
				"losing 0.5-1 kg a week is a healthy pace.",
		},
		{
			Keywords: []string{"plan", "schedule", "routine"},
			Reply: "A personalised plan:\n1. Stay within your daily calorie target\n2. Exercise 3-4 times a week\n" +
				"3. Get enough sleep\n4. Drink at least 2000 ml of water a day",
		},
	}
}

// KeywordResponder answers by matching keywords in the question.
type KeywordResponder struct {
	Replies  []KeywordReply
	Fallback string
}

// NewKeywordResponder returns a responder with the default replies.
func NewKeywordResponder() *KeywordResponder {
	return &KeywordResponder{Replies: DefaultReplies(), Fallback: DefaultFallback}
}

// Respond returns the first reply whose keyword appears in the question.
func (k *KeywordResponder) Respond(_ context.Context, pc *PromptContext) (string, error) {
	q := strings.ToLower(pc.Question)
	for _, r := range k.Replies {
		for _, kw := range r.Keywords {
			if strings.Contains(q, kw) {
				return r.Reply, nil
			}
		}
	}
	if k.Fallback == "" {
		return DefaultFallback, nil
	}
	return k.Fallback, nil
}

// Suggestion texts.
const (
	SuggestViewDiet      = "View today's diet log"
	SuggestSearchRecipes = "Search healthy recipes"
	SuggestFoodCalories  = "Calculate food calories"
	SuggestLogExercise   = "Log an exercise"
	SuggestViewPlan      = "View exercise plan"
	SuggestBurnCalories  = "Calculate calories burned"
	SuggestLogWeight     = "Log current weight"
	SuggestWeightTrend   = "View weight trend"
	SuggestAdjustGoal    = "Adjust weight goal"
)

// Suggestions returns up to MaxSuggestions follow-up actions for a question.
func Suggestions(question string) []string {
	q := strings.ToLower(question)
	out := []string{}
	if containsAny(q, "diet", "eat", "food", "meal") {
		out = append(out, SuggestViewDiet, SuggestSearchRecipes, SuggestFoodCalories)
	}
	if containsAny(q, "exercise", "workout", "training") {
		out = append(out, SuggestLogExercise, SuggestViewPlan, SuggestBurnCalories)
	}
	if containsAny(q, "weight", "lose") {
		out = append(out, SuggestLogWeight, SuggestWeightTrend, SuggestAdjustGoal)
	}
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// ExerciseRecommendations returns general exercise guidance.
func ExerciseRecommendations() []string {
	return []string{
		"Aerobic: 3-4 times a week, 30-45 minutes of brisk walking or jogging",
		"Strength: 2-3 times a week with basics such as squats and push-ups",
		"Flexibility: 10-15 minutes of stretching every day",
		"Everyday activity: take the stairs and walk whenever you can",
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
