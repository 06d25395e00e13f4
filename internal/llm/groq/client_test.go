package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/ats-screener/internal/llm"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body any, seen *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestCompleteAgainstCompatibleServer(t *testing.T) {
	var seen openai.ChatCompletionRequest
	srv := newTestServer(t, http.StatusOK, map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "llama-3.1-8b-instant",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": " Experience Match Score: 87% "},
		}},
	}, &seen)

	client, err := New(Options{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), "screen this resume")
	require.NoError(t, err)

	assert.Equal(t, "Experience Match Score: 87%", got)
	assert.Equal(t, DefaultModel, seen.Model)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, seen.Messages[0].Role)
	assert.Equal(t, "screen this resume", seen.Messages[0].Content)
}

func TestCompleteWrapsBackendErrors(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"message": "invalid api key", "type": "invalid_request_error"},
	}, nil)

	client, err := New(Options{APIKey: "test-key", BaseURL: srv.URL, Model: "mixtral"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrInvocation))

	var invocation *llm.InvocationError
	require.True(t, errors.As(err, &invocation))
	assert.Equal(t, Provider, invocation.Provider)
	assert.Equal(t, "mixtral", invocation.Model)
}

type stubChat struct {
	resp openai.ChatCompletionResponse
}

func (s stubChat) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return s.resp, nil
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	client := &Client{chat: stubChat{}, model: "m", provider: Provider}

	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, llm.ErrInvocation)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewDefaults(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	client, err := New(Options{APIKey: "k", Provider: "openai", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.Model())
	assert.Equal(t, "openai", client.provider)
}
