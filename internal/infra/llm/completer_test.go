package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm/chatgpt"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm/claude"
)

func TestChatGPTCompleter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatgpt.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o-mini", req.Model)
		require.Equal(t, "system", req.Messages[0].Role)
		require.Equal(t, "plan a trip", req.Messages[1].Content)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  ok \n"}}],"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`))
	}))
	defer srv.Close()

	client, err := chatgpt.NewClient("sk", srv.URL)
	require.NoError(t, err)

	out, err := NewChatGPTCompleter(client, "gpt-4o-mini").Complete(context.Background(), Request{System: "be helpful", Prompt: "plan a trip"})
	require.NoError(t, err)
	require.Equal(t, "ok", out.Text)
	require.Equal(t, 4, out.Usage.TotalTokens)
}

func TestChatGPTCompleterNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, err := chatgpt.NewClient("sk", srv.URL)
	require.NoError(t, err)

	_, err = NewChatGPTCompleter(client, "m").Complete(context.Background(), Request{Prompt: "x"})
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestClaudeCompleterSumsUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"fine"}],"usage":{"input_tokens":10,"output_tokens":2}}`))
	}))
	defer srv.Close()

	client, err := claude.NewClient("ak", srv.URL)
	require.NoError(t, err)

	out, err := NewClaudeCompleter(client, "claude-sonnet-4-20250514").Complete(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	require.Equal(t, "fine", out.Text)
	require.Equal(t, 12, out.Usage.TotalTokens)
}
