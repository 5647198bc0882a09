package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"social-post-bot/internal/model"
	"social-post-bot/internal/repository"
)

// ErrNoEvents is returned when the owner has nothing stored for the day.
var ErrNoEvents = errors.New("no events for the day")

// The copywriter instructions stay fixed; only the comma-joined event
// texts vary per request.
const promptTemplate = `Act as a senior copywriter. Write highly engaging posts for Twitter and LinkedIn using the provided thoughts/events throughout the day.
Write like a human, for humans. Craft engaging social media posts tailored for LinkedIn and Twitter audiences. Use simple language.
Use given time labels just to understand the order of the event; don't mention the time in the posts. Each post should creatively highlight
the following events. Ensure the tone is conversational and impactful. Focus on engaging the respective platform's audience, encouraging
interaction, and driving interest in the events:
%s`

// Generator produces a text completion for a prompt.
type Generator interface {
	Complete(ctx context.Context, promptText string) (string, error)
}

// PostService turns a day's events into social media post drafts.
type PostService struct {
	eventRepo *repository.EventRepository
	generator Generator
	loc       *time.Location
}

func NewPostService(eventRepo *repository.EventRepository, generator Generator, loc *time.Location) *PostService {
	if loc == nil {
		loc = time.Local
	}
	return &PostService{eventRepo: eventRepo, generator: generator, loc: loc}
}

// DraftPosts queries the owner's events for the calendar day containing
// now and asks the generator for post drafts. The generator is never
// invoked when the day is empty.
func (s *PostService) DraftPosts(ctx context.Context, ownerID int64, now time.Time) (string, error) {
	start, end := dayBounds(now.In(s.loc))

	events, err := s.eventRepo.FindInRange(ctx, ownerID, start, end)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "", ErrNoEvents
	}

	return s.generator.Complete(ctx, buildPrompt(events))
}

func buildPrompt(events []model.Event) string {
	texts := make([]string, 0, len(events))
	for _, event := range events {
		texts = append(texts, event.Text)
	}
	return fmt.Sprintf(promptTemplate, strings.Join(texts, ","))
}

// dayBounds returns 00:00:00.000 and 23:59:59.999 of now's calendar
// day, both inclusive window edges. Calendar arithmetic, not duration
// arithmetic: a DST-change day is not 24 hours long.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())
	return start, end
}
