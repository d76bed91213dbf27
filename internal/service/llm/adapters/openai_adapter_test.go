package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainllm "solace/internal/domain/services/llm"
)

func TestOpenAIAdapter_GenerateResponse(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-2024-08-06",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "That sounds hard. I'm here."}}],
			"usage": {"prompt_tokens": 42, "completion_tokens": 9, "total_tokens": 51}
		}`))
	}))
	defer srv.Close()

	adapter := NewOpenAIAdapter("test-key", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))

	temp := 0.7
	maxTokens := 100
	resp, err := adapter.GenerateResponse(context.Background(), &domainllm.GenerateRequest{
		System: "be kind",
		Messages: []domainllm.Message{
			{Role: domainllm.RoleUser, Content: "hi"},
			{Role: domainllm.RoleAssistant, Content: "hello"},
			{Role: domainllm.RoleUser, Content: "I can't sleep"},
		},
		Model:       "gpt-4o",
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	require.NoError(t, err)

	assert.Equal(t, "That sounds hard. I'm here.", resp.Text)
	assert.Equal(t, "gpt-4o-2024-08-06", resp.Model)
	assert.Equal(t, 42, resp.InputTokens)
	assert.Equal(t, 9, resp.OutputTokens)
	assert.Equal(t, "stop", resp.StopReason)

	assert.Equal(t, "gpt-4o", body["model"])
	assert.Equal(t, 0.7, body["temperature"])
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 4)
	roles := make([]string, len(messages))
	for i, m := range messages {
		roles[i] = m.(map[string]any)["role"].(string)
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
}

func TestOpenAIAdapter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	adapter := NewOpenAIAdapter("test-key", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	_, err := adapter.GenerateResponse(context.Background(), &domainllm.GenerateRequest{
		Model:    "gpt-4o",
		Messages: []domainllm.Message{{Role: domainllm.RoleUser, Content: "hi"}},
	})
	assert.Error(t, err)
}

func TestOpenAIAdapter_SupportsModel(t *testing.T) {
	adapter := NewOpenAIAdapter("k")
	assert.True(t, adapter.SupportsModel("gpt-4o"))
	assert.True(t, adapter.SupportsModel("o1-mini"))
	assert.False(t, adapter.SupportsModel("claude-haiku-4-5"))
	assert.Equal(t, "openai", adapter.Name())
}
