package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakoblorz/apexcov/internal/config"
	"github.com/jakoblorz/apexcov/internal/prompt"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Client implements Generator against the OpenAI chat completion API
type Client struct {
	client      *openai.Client
	prompts     *prompt.Set
	model       string
	maxTokens   int
	temperature float32
	log         *logrus.Entry
}

var (
	// ErrAPIKeyNotFound is returned when no API key is configured
	ErrAPIKeyNotFound = fmt.Errorf("OPENAI_API_KEY not configured (set the environment variable or api.openai_key in config)")

	// ErrEmptyCompletion is returned when the service answers with no usable
	// content; per-unit callers treat it as a generation failure
	ErrEmptyCompletion = fmt.Errorf("completion service returned empty content")
)

// NewClient creates a Generator backed by the OpenAI API
func NewClient(cfg *config.Config, prompts *prompt.Set) (*Client, error) {
	if cfg.API.OpenAIKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	if prompts == nil {
		prompts = prompt.Defaults()
	}

	model := cfg.API.Model
	if prompts.Model != "" {
		model = prompts.Model
	}

	return &Client{
		client:      openai.NewClient(cfg.API.OpenAIKey),
		prompts:     prompts,
		model:       model,
		maxTokens:   cfg.API.MaxTokens,
		temperature: cfg.API.Temperature,
		log:         logrus.WithField("component", "llm"),
	}, nil
}

// GenerateTest requests an Apex test class for the given class body.
// The caller bounds the call with its context deadline; this client does no
// retries of its own.
func (c *Client) GenerateTest(ctx context.Context, className, classBody string) (string, error) {
	userPrompt, err := c.prompts.RenderUser(className, classBody)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: c.prompts.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}

	c.log.WithFields(logrus.Fields{
		"class":  className,
		"model":  c.model,
		"tokens": resp.Usage.TotalTokens,
	}).Debug("completion received")

	return content, nil
}

// stripCodeFence unwraps a ```apex ... ``` fenced block if the model
// answered with one; anything else passes through untouched
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	// Drop the opening fence (with optional language tag) and a closing fence
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
