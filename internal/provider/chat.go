package provider

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultChatBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultChatModel   = "gpt-4.1-2025-04-14"
	chatMaxTokens      = 1200
)

// ChatClientConfig holds configuration for the chat completion client.
type ChatClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ChatClient calls an OpenAI-compatible chat completion API.
type ChatClient struct {
	gateway
	apiKey  string
	baseURL string
	model   string
}

// NewChatClient creates a chat completion client.
func NewChatClient(cfg ChatClientConfig) *ChatClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultChatBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultChatModel
	}
	return &ChatClient{
		gateway: newGateway("chat", cfg.Timeout),
		apiKey:  cfg.APIKey,
		baseURL: base,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system prompt and user message and returns the model's
// reply text.
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if err := c.requireKey(c.apiKey); err != nil {
		return "", err
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxCompletionTokens: chatMaxTokens,
	}

	var resp chatResponse
	if err := c.postJSONWithAuth(ctx, c.baseURL, "Bearer "+c.apiKey, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", newError(KindRejected, c.name, fmt.Errorf("empty completion response"))
	}
	return resp.Choices[0].Message.Content, nil
}
