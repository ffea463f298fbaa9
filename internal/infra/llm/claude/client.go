package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 1000
)

// Message is a single turn in a Messages API conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagesRequest is the payload for POST /messages. System sits outside
// the message list.
type MessagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Temperature float32   `json:"temperature,omitempty"`
	Messages    []Message `json:"messages"`
}

// Usage reports input/output token counts.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessagesResponse holds the content blocks of a reply.
type MessagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      Usage  `json:"usage"`
}

// Text concatenates the text blocks of the reply.
func (r MessagesResponse) Text() string {
	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// Client calls the Anthropic Messages API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Claude client.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("claude api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// CreateMessage sends one request and returns the full reply.
func (c *Client) CreateMessage(ctx context.Context, req MessagesRequest) (MessagesResponse, error) {
	var out MessagesResponse
	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode claude request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("build claude request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return out, fmt.Errorf("request claude message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read claude response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return out, fmt.Errorf("claude request failed: status=%d body=%s", resp.StatusCode, truncate(body, 4<<10))
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode claude response: %w", err)
	}
	if len(out.Content) == 0 {
		return out, errors.New("claude returned no content")
	}
	return out, nil
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
