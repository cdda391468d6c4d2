package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/habitloop/habit-tracking-api/internal/repository"
	"github.com/sashabaranov/go-openai"
)

// MotivationService produces the motivational messaging shown alongside
// daily progress. Selection order: AI-generated (when configured), curated
// database messages for the percentage band, static fallbacks.
type MotivationService struct {
	motivationRepo repository.MotivationRepository
	reportRepo     repository.ReportRepository
	client         *openai.Client
}

// NewMotivationService creates a new MotivationService. apiKey may be
// empty, in which case AI generation is skipped entirely.
func NewMotivationService(motivationRepo repository.MotivationRepository, reportRepo repository.ReportRepository, apiKey string) *MotivationService {
	s := &MotivationService{
		motivationRepo: motivationRepo,
		reportRepo:     reportRepo,
	}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// ProgressStats is the day's completion arithmetic.
type ProgressStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Remaining  int64 `json:"remaining"`
	Percentage int   `json:"percentage"`
}

// Motivation pairs a message with its display color hint.
type Motivation struct {
	Message   string `json:"message"`
	ColorInfo string `json:"color_info"`
}

// DailyProgressSummary is the motivation endpoint's response.
type DailyProgressSummary struct {
	Date       string        `json:"date"`
	Stats      ProgressStats `json:"stats"`
	Motivation Motivation    `json:"motivation"`
}

// GetDailyProgressSummary computes the user's completion for date and
// attaches a fitting motivational message.
func (s *MotivationService) GetDailyProgressSummary(userID, date string) (*DailyProgressSummary, error) {
	total, completed, err := s.reportRepo.DayTotals(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day totals: %w", err)
	}

	percentage := ratePercent(completed, total)
	remaining := total - completed
	if remaining < 0 {
		remaining = 0
	}

	return &DailyProgressSummary{
		Date: date,
		Stats: ProgressStats{
			Total:      total,
			Completed:  completed,
			Remaining:  remaining,
			Percentage: percentage,
		},
		Motivation: Motivation{
			Message:   s.GetMessage(percentage),
			ColorInfo: colorInfoForRate(percentage),
		},
	}, nil
}

// GetMessage picks a motivational message for the completion percentage.
func (s *MotivationService) GetMessage(percentage int) string {
	if s.client != nil {
		if msg, err := s.generateMessage(percentage); err == nil && msg != "" {
			return msg
		}
	}

	eligible, err := s.motivationRepo.ListEligible(percentage)
	if err == nil && len(eligible) > 0 {
		return eligible[rand.Intn(len(eligible))].Message
	}

	switch {
	case percentage == 100:
		return "Outstanding! Goal achieved."
	case percentage == 0:
		return "Let's take the first step!"
	default:
		return "Keep going! You're making progress."
	}
}

func (s *MotivationService) generateMessage(percentage int) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write one short motivational sentence for someone who has completed %d%% of today's habits. Plain text only, no quotes.",
		percentage,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
