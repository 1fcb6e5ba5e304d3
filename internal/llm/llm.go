// Package llm talks to an OpenAI-compatible endpoint to generate the
// free-form narrative analysis of a finished assessment.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/singleflight"

	"github.com/discfacil/discfacil/internal/model"
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]string
}

// New creates a new analysis client.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
		cache: make(map[string]string),
	}
}

// Ping verifies the endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM endpoint check: %w", err)
	}
	return nil
}

// AnalysisKey identifies an analysis request. The same participant with the
// same ranked totals always maps to the same key, so repeated or concurrent
// requests can be collapsed.
func AnalysisKey(participantName string, scores []model.Score) string {
	return participantName + "|" + ScorePairs(scores)
}

// ScorePairs serializes ranked scores as "profile: total" pairs, the wire
// form the analysis request uses.
func ScorePairs(scores []model.Score) string {
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, fmt.Sprintf("%s: %d", s.Profile, s.Total))
	}
	return strings.Join(parts, ", ")
}

// Analyze generates the narrative analysis for a participant's ranked
// scores. Concurrent calls with identical inputs collapse into a single API
// request, and a completed result is cached so a repeat request
// short-circuits instead of racing a second generation.
func (c *Client) Analyze(ctx context.Context, participantName string, scores []model.Score) (string, error) {
	key := AnalysisKey(participantName, scores)

	c.mu.Lock()
	if text, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return text, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		text, err := c.generate(ctx, participantName, scores)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[key] = text
		c.mu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) generate(ctx context.Context, participantName string, scores []model.Score) (string, error) {
	prompt := BuildAnalysisPrompt(participantName, scores)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("analysis API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("analysis generated", "participant", participantName, "chars", len(text))
	return text, nil
}
