// ABOUTME: Primary extractor — go-openai chat completion, same request shape as the teacher's OpenAIClient
// ABOUTME: Grounded on harperreed-memory's internal/llm/openai_client.go ExtractMetadata/ExtractFacts retry loop
package llmextract

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/memexlabs/memex/internal/util"
)

// OpenAIExtractor is the primary §4.7 extractor: a chat-completion call
// against an OpenAI-compatible endpoint.
type OpenAIExtractor struct {
	client      *openai.Client
	model       string
	maxRetries  int
	retryDelay  time.Duration
	callTimeout time.Duration
}

// OpenAIConfig configures an OpenAIExtractor.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CallTimeout time.Duration
}

// NewOpenAIExtractor builds an extractor from cfg, filling teacher-style
// defaults for anything left zero.
func NewOpenAIExtractor(cfg OpenAIConfig) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llmextract: OpenAI API key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 300 * time.Second
	}
	return &OpenAIExtractor{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		callTimeout: cfg.CallTimeout,
	}, nil
}

// Extract implements extract.Extractor.
func (e *OpenAIExtractor) Extract(ctx context.Context, systemPrompt, text string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(e.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
		resp, err := e.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
			Temperature: 0.2,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("extraction failed after %d attempts: %w", e.maxRetries+1, lastErr)
}
