// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint
// (OpenAI, Ollama's /v1 surface, Nebius, ...).
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient builds a client from the AI configuration. A nil logger
// falls back to a no-op logger.
func NewOpenAIClient(cfg types.AIConfig, logger *zap.Logger) *OpenAIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Complete sends a single-turn user prompt and returns the trimmed response
// text. Any transport or API failure degrades to ErrorSentinel.
//
// A zero temperature is sent as math.SmallestNonzeroFloat32: the request
// struct tags temperature omitempty, so a literal 0 would be dropped from
// the wire and the server would fall back to its own default.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, temperature float32) string {
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("chat completion failed", zap.String("model", c.model), zap.Error(err))
		return ErrorSentinel
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("chat completion returned no choices", zap.String("model", c.model))
		return ErrorSentinel
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
