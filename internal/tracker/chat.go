// ABOUTME: Chat with the assistant using the user's recent data as context.
// ABOUTME: Missing user data is skipped; only the question is required.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitdiary/internal/assistant"
	"github.com/harperreed/fitdiary/internal/storage"
)

// ChatReply is the assistant's answer plus follow-up suggestions.
type ChatReply struct {
	Reply       string    `json:"reply"`
	Suggestions []string  `json:"suggestions"`
	Timestamp   time.Time `json:"timestamp"`
}

// Chat answers question for userID. userID may be empty for an anonymous question.
func (t *Tracker) Chat(ctx context.Context, userID, question string, history []assistant.Message) (*ChatReply, error) {
	if strings.TrimSpace(question) == "" {
		return nil, invalid("question", "must not be empty")
	}

	pc := &assistant.PromptContext{
		History:  assistant.TrimHistory(history),
		Question: question,
	}
	if userID != "" {
		if err := t.gatherContext(ctx, userID, pc); err != nil {
			return nil, err
		}
	}

	reply, err := t.responder.Respond(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("assistant reply: %w", err)
	}

	t.logger.Debug("chat answered", "user", userID, "history", len(pc.History))
	return &ChatReply{
		Reply:       reply,
		Suggestions: assistant.Suggestions(question),
		Timestamp:   t.now(),
	}, nil
}

// PromptContext gathers the data Chat would give the responder.
func (t *Tracker) PromptContext(ctx context.Context, userID, question string) (*assistant.PromptContext, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	pc := &assistant.PromptContext{Question: question}
	if err := t.gatherContext(ctx, userID, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

func (t *Tracker) gatherContext(ctx context.Context, userID string, pc *assistant.PromptContext) error {
	p, err := t.repo.GetProfile(ctx, userID)
	switch {
	case err == nil:
		pc.Profile = p
	case !errors.Is(err, storage.ErrNotFound):
		return persistence("load profile", err)
	}

	s, err := t.repo.LatestHealthSample(ctx, userID)
	switch {
	case err == nil:
		pc.Latest = s
	case !errors.Is(err, storage.ErrNotFound):
		return persistence("load health sample", err)
	}

	recent := storage.DayRange{To: t.Today(), Limit: assistant.RecentDays}
	if pc.RecentDiet, err = t.repo.ListDietDays(ctx, userID, recent); err != nil {
		return persistence("list diet days", err)
	}
	if pc.RecentExercise, err = t.repo.ListExerciseDays(ctx, userID, recent); err != nil {
		return persistence("list exercise days", err)
	}
	return nil
}
