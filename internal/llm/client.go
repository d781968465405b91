// Package llm synthesizes cited answers from crawled pages using an
// OpenAI-compatible chat-completions API (DeepSeek by default).
package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("llm api key not configured")

// ErrEmptyCompletion is returned when the API responds without choices.
var ErrEmptyCompletion = errors.New("no choices returned from llm api")

// Client calls the chat-completions API to synthesize answers.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
	configured  bool
	log         logger.Logger
}

// New creates an LLM client from configuration. A client without an API key
// is still constructed; Synthesize then returns ErrNotConfigured.
func New(cfg config.LLMConfig, log logger.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		configured:  cfg.APIKey != "",
		log:         log,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Synthesize asks the model for an answer to query grounded in the given
// pages, citing sources as [n] markers matching the page order.
func (c *Client) Synthesize(ctx context.Context, query string, pages []*domain.CrawledPage) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(query, pages)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	c.log.Info("answer synthesized",
		logger.String("model", c.model),
		logger.Int("sources", len(pages)),
		logger.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}
