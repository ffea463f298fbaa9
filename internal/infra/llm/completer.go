// Package llm adapts provider clients to a single prompt-in, text-out call.
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm/chatgpt"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm/claude"
	"github.com/singhHarcharan/trip-planner-agent/pkg/metrics"
)

// Request is a single-turn completion with an optional system prompt.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Completion is the trimmed model reply plus token accounting.
type Completion struct {
	Text  string
	Usage metrics.TokenUsage
}

// Completer is implemented by every provider adapter.
type Completer interface {
	Complete(ctx context.Context, req Request) (Completion, error)
}

// ErrEmptyCompletion is returned when the provider answers with no choices.
var ErrEmptyCompletion = errors.New("model returned no completion")

// ChatGPTCompleter sends requests through the OpenAI chat API.
type ChatGPTCompleter struct {
	client *chatgpt.Client
	model  string
}

// NewChatGPTCompleter constructs the adapter.
func NewChatGPTCompleter(client *chatgpt.Client, model string) *ChatGPTCompleter {
	return &ChatGPTCompleter{client: client, model: model}
}

// Complete implements Completer.
func (c *ChatGPTCompleter) Complete(ctx context.Context, req Request) (Completion, error) {
	messages := make([]chatgpt.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, chatgpt.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, chatgpt.Message{Role: "user", Content: req.Prompt})

	resp, err := c.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, ErrEmptyCompletion
	}
	return Completion{
		Text: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// ClaudeCompleter sends requests through the Anthropic Messages API.
type ClaudeCompleter struct {
	client *claude.Client
	model  string
}

// NewClaudeCompleter constructs the adapter.
func NewClaudeCompleter(client *claude.Client, model string) *ClaudeCompleter {
	return &ClaudeCompleter{client: client, model: model}
}

// Complete implements Completer.
func (c *ClaudeCompleter) Complete(ctx context.Context, req Request) (Completion, error) {
	resp, err := c.client.CreateMessage(ctx, claude.MessagesRequest{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		System:      req.System,
		Temperature: req.Temperature,
		Messages:    []claude.Message{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return Completion{}, err
	}
	return Completion{
		Text: strings.TrimSpace(resp.Text()),
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// EchoCompleter returns the prompt back without external calls. It keeps
// the service usable in dev when no provider key is configured.
type EchoCompleter struct{}

// Complete implements Completer.
func (EchoCompleter) Complete(_ context.Context, req Request) (Completion, error) {
	return Completion{Text: "No language model is configured. Prompt received: " + req.Prompt}, nil
}

var (
	_ Completer = (*ChatGPTCompleter)(nil)
	_ Completer = (*ClaudeCompleter)(nil)
	_ Completer = EchoCompleter{}
)
