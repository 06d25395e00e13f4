// Package groq implements llm.Completer for OpenAI-compatible chat completion
// APIs, Groq by default.
package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/ats-screener/internal/llm"

	"github.com/sashabaranov/go-openai"
)

const (
	// Provider is the configuration name of this backend.
	Provider = "groq"
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client sends single-message chat completions.
type Client struct {
	chat     chatCompleter
	model    string
	provider string
}

// Options configure a Client. Empty values fall back to Groq defaults.
type Options struct {
	APIKey   string
	Model    string
	BaseURL  string
	Provider string
}

// New builds a Client for the given OpenAI-compatible endpoint.
func New(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	provider := strings.TrimSpace(opts.Provider)
	if provider == "" {
		provider = Provider
	}

	return &Client{
		chat:     openai.NewClientWithConfig(cfg),
		model:    model,
		provider: provider,
	}, nil
}

// Complete sends prompt as a single user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	output, err := c.complete(ctx, prompt)
	if err != nil {
		return "", &llm.InvocationError{Provider: c.provider, Model: c.model, Cause: err}
	}
	return output, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("chat completion returned empty content")
	}

	return output, nil
}

func (c *Client) Model() string {
	return c.model
}
