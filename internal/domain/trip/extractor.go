package trip

import (
	"context"
	"log/slog"
	"strings"

	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm"
	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
	"github.com/singhHarcharan/trip-planner-agent/pkg/llmjson"
)

// Completer runs a single-turn LLM call.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (llm.Completion, error)
}

// Extractor turns a free-text prompt into trip parameters.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (Extraction, error)
}

type extractor struct {
	cfg       Config
	completer Completer
	logger    *slog.Logger
}

// NewExtractor constructs an Extractor.
func NewExtractor(cfg Config, completer Completer, logger *slog.Logger) Extractor {
	return &extractor{
		cfg:       cfg,
		completer: completer,
		logger:    logger.With("component", "trip.extractor"),
	}
}

func (e *extractor) Extract(ctx context.Context, prompt string) (Extraction, error) {
	if strings.TrimSpace(prompt) == "" {
		return Extraction{}, apperrors.Wrap("invalid_input", "prompt cannot be empty", nil)
	}

	completion, err := e.completer.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserPrompt(prompt),
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.MaxTokens,
	})
	if err != nil {
		return Extraction{}, apperrors.Wrap("llm_error", "trip extraction failed", err)
	}

	decoded := llmjson.Decode[TripRequest](completion.Text)
	out := Extraction{Kind: decoded.Kind, Usage: completion.Usage}
	if decoded.Structured() {
		req := decoded.Value
		req.Source = strings.TrimSpace(req.Source)
		req.Destination = strings.TrimSpace(req.Destination)
		req.WeatherPreference = Condition(strings.TrimSpace(string(req.WeatherPreference)))
		out.Trip = &req
	} else {
		out.Message = decoded.Raw
	}
	e.logger.Info("trip extracted", "kind", out.Kind, "tokens", completion.Usage.TotalTokens)
	return out, nil
}
