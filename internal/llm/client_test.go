package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  bool
		wantType any
	}{
		{
			name:    "default provider is groq",
			cfg:     Config{APIKey: "gsk-test123"},
			wantErr: false,
		},
		{
			name:    "openai provider",
			cfg:     Config{Provider: ProviderOpenAI, APIKey: "sk-test123"},
			wantErr: false,
		},
		{
			name:    "anthropic provider",
			cfg:     Config{Provider: ProviderAnthropic, APIKey: "sk-ant-test123"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "cohere", APIKey: "test"},
			wantErr: true,
		},
		{
			name:    "missing API key",
			cfg:     Config{Provider: ProviderGroq},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func newChatServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *chatClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := newChatClient(ProviderGroq, defaultGroqBaseURL, defaultGroqModel, Config{
		APIKey:    "gsk-test123",
		BaseURL:   srv.URL,
		RateLimit: 1000,
		Burst:     100,
	})
	require.NoError(t, err)
	return srv, client
}

func TestChatClientGenerate(t *testing.T) {
	var gotReq chatRequest
	_, client := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "generated text"}, "finish_reason": "stop"},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	text, err := client.Generate(context.Background(), Request{
		System: "you are an editor",
		User:   "rewrite this",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "you are an editor", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, defaultGroqModel, gotReq.Model)
}

func TestChatClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	_, client := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "eventually"}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	text, err := client.Generate(context.Background(), Request{User: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "eventually", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestChatClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	_, client := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "auth"}}`))
	})

	_, err := client.Generate(context.Background(), Request{User: "hello"})
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ProviderGroq, genErr.Provider)
	assert.Contains(t, genErr.Error(), "invalid api key")
	assert.Equal(t, int32(1), calls.Load())
}

func TestChatClientEmptyResponse(t *testing.T) {
	_, client := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"choices": []any{}}))
	})

	_, err := client.Generate(context.Background(), Request{User: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestAnthropicClientGenerate(t *testing.T) {
	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test123", r.Header.Get("X-API-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("Anthropic-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{
			"content":     []map[string]any{{"type": "text", "text": "claude says"}},
			"stop_reason": "end_turn",
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	client, err := newAnthropicClient(Config{
		APIKey:    "sk-ant-test123",
		BaseURL:   srv.URL,
		RateLimit: 1000,
		Burst:     100,
	})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), Request{
		System: "you are a critic",
		User:   "critique this",
	})
	require.NoError(t, err)
	assert.Equal(t, "claude says", text)

	// System instruction travels in the top-level field, not the messages.
	assert.Equal(t, "you are a critic", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestGenerationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &GenerationError{Provider: ProviderGroq, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "groq")
}

func TestGenerateContextCancelled(t *testing.T) {
	_, client := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, Request{User: "hello"})
	require.Error(t, err)
}
