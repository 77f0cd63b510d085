package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"score\": 88}"}}
  ],
  "usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
}`

func TestOpenAI_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Equal(t, "gpt-4o", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, "review this", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, chatCompletionReply)
	}))
	defer server.Close()

	o := NewOpenAI(Config{APIKey: "test-key", Model: "gpt-4o", BaseURL: server.URL, Timeout: 5 * time.Second})

	got, err := o.Generate(context.Background(), "review this")
	require.NoError(t, err)
	assert.Equal(t, `{"score": 88}`, got)
	assert.Equal(t, "openai", o.Name())
}

func TestOpenAI_AuthError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "Incorrect API key", "type": "invalid_request_error"}}`)
	}))
	defer server.Close()

	o := NewOpenAI(Config{APIKey: "bad", Model: "gpt-4o", BaseURL: server.URL, Timeout: 5 * time.Second})

	_, err := o.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestOpenAI_ServerErrorIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": {"message": "overloaded"}}`)
	}))
	defer server.Close()

	o := NewOpenAI(Config{APIKey: "k", Model: "gpt-4o", BaseURL: server.URL, Timeout: 5 * time.Second})

	_, err := o.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, IsAuthError(err))
	assert.Equal(t, 1, calls)
}

func TestOpenRouter_UsesConfiguredBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "prreview", r.Header.Get("X-Title"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, chatCompletionReply)
	}))
	defer server.Close()

	o := NewOpenRouter(Config{APIKey: "k", Model: "openai/gpt-4o", BaseURL: server.URL, Timeout: 5 * time.Second})

	got, err := o.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, `{"score": 88}`, got)
	assert.Equal(t, "openrouter", o.Name())
}
