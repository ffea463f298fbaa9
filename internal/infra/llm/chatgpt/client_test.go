package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"destination\":\"Goa\"}"}}],"usage":{"prompt_tokens":12,"completion_tokens":5,"total_tokens":17}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "system", Content: "s"}, {Role: "user", Content: "u"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, `{"destination":"Goa"}`, resp.Choices[0].Message.Content)
	require.Equal(t, 17, resp.Usage.TotalTokens)
}

func TestCreateEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[0.1,0.2]},{"index":1,"embedding":[0.3,0.4]}],"usage":{"prompt_tokens":4,"total_tokens":4}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL)
	require.NoError(t, err)

	resp, err := client.CreateEmbedding(context.Background(), EmbeddingRequest{Model: "text-embedding-3-small", Input: []string{"a", "b"}})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	require.Equal(t, []float32{0.3, 0.4}, resp.Data[1].Embedding)
}

func TestRequestFailureCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.ErrorContains(t, err, "status=429")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "")
	require.Error(t, err)
}
