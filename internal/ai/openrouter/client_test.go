package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-compass/internal/ai"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New("or-key", Config{}, nil)
	require.NoError(t, err)
	c.APIURL = server.URL
	return c
}

func TestReply(t *testing.T) {
	var got completionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  Keep going!  "}}]}`))
	})

	reply, err := c.Reply(context.Background(), "Any tips?", &ai.Context{Career: "nurse"})
	require.NoError(t, err)
	assert.Equal(t, "Keep going!", reply)

	assert.Equal(t, defaultModel, got.Model)
	assert.Equal(t, defaultTemperature, got.Temperature)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, message{Role: "system", Content: ai.SystemPrompt}, got.Messages[0])
	assert.Equal(t, "The user's predicted career is: nurse.\n\nUser's question: Any tips?", got.Messages[1].Content)
}

func TestReplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "bad status", status: http.StatusUnauthorized, body: `{"error": "no auth"}`, wantErr: "401"},
		{name: "no choices", status: http.StatusOK, body: `{"choices": []}`, wantErr: "no choices"},
		{name: "empty content", status: http.StatusOK, body: `{"choices": [{"message": {"content": " "}}]}`, wantErr: "empty response"},
		{name: "malformed", status: http.StatusOK, body: `{`, wantErr: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Reply(context.Background(), "hi", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReplyEmptyMessage(t *testing.T) {
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("unexpected request")
	})

	_, err := c.Reply(context.Background(), "", nil)
	assert.True(t, errors.Is(err, ai.ErrEmptyMessage))
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(" ", Config{}, nil)
	assert.Error(t, err)
}
