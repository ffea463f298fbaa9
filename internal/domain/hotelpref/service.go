package hotelpref

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm"
	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
	"github.com/singhHarcharan/trip-planner-agent/pkg/llmjson"
)

// Service indexes the preference document and answers extraction queries
// against it.
type Service interface {
	Index(ctx context.Context) (IndexResult, error)
	Retrieve(ctx context.Context, query string, n int) ([]Match, error)
	Preferences(ctx context.Context, query string) (PreferencesResponse, error)
}

// Embedder maps texts to vectors, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex stores chunk embeddings per collection.
type VectorIndex interface {
	Upsert(ctx context.Context, collection string, chunks []IndexedChunk) error
	Query(ctx context.Context, collection string, embedding []float32, n int) ([]Match, error)
}

// DocumentSource supplies the raw preference text.
type DocumentSource interface {
	Load(ctx context.Context) (string, error)
}

// Completer runs a single-turn LLM call.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (llm.Completion, error)
}

type service struct {
	cfg       Config
	source    DocumentSource
	embedder  Embedder
	index     VectorIndex
	completer Completer
	logger    *slog.Logger
}

// NewService wires up the hotel preference domain.
func NewService(cfg Config, source DocumentSource, embedder Embedder, index VectorIndex, completer Completer, logger *slog.Logger) Service {
	if cfg.Collection == "" {
		cfg.Collection = "hotel_pref_collection"
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkStep <= 0 {
		cfg.ChunkStep = DefaultChunkStep
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if strings.TrimSpace(cfg.DefaultQuery) == "" {
		cfg.DefaultQuery = "hotel preferences"
	}
	return &service{
		cfg:       cfg,
		source:    source,
		embedder:  embedder,
		index:     index,
		completer: completer,
		logger:    logger.With("component", "hotelpref.service"),
	}
}

func (s *service) Index(ctx context.Context) (IndexResult, error) {
	text, err := s.source.Load(ctx)
	if err != nil {
		return IndexResult{}, apperrors.Wrap("document_error", "failed to load hotel preference document", err)
	}
	if strings.TrimSpace(text) == "" {
		return IndexResult{}, apperrors.Wrap("invalid_input", "hotel preference document is empty", nil)
	}

	chunks := SplitText(text, s.cfg.ChunkSize, s.cfg.ChunkStep)
	texts := make([]string, len(chunks))
	tokens := 0
	for i, chunk := range chunks {
		texts[i] = chunk.Text
		tokens += chunk.TokenCount
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return IndexResult{}, apperrors.Wrap("embedding_error", "failed to embed preference chunks", err)
	}
	if len(vectors) != len(chunks) {
		return IndexResult{}, apperrors.Wrap("embedding_error", fmt.Sprintf("expected %d embeddings, got %d", len(chunks), len(vectors)), nil)
	}

	indexed := make([]IndexedChunk, len(chunks))
	for i, chunk := range chunks {
		indexed[i] = IndexedChunk{Chunk: chunk, Embedding: vectors[i]}
	}
	if err := s.index.Upsert(ctx, s.cfg.Collection, indexed); err != nil {
		return IndexResult{}, apperrors.Wrap("index_error", "failed to store preference chunks", err)
	}
	s.logger.Info("hotel preferences indexed", "collection", s.cfg.Collection, "chunks", len(chunks), "tokens", tokens)

	return IndexResult{Collection: s.cfg.Collection, Chunks: len(chunks), Tokens: tokens}, nil
}

func (s *service) Retrieve(ctx context.Context, query string, n int) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = s.cfg.DefaultQuery
	}
	if n <= 0 {
		n = s.cfg.TopN
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, apperrors.Wrap("embedding_error", "failed to embed query", err)
	}
	if len(vectors) == 0 {
		return nil, apperrors.Wrap("embedding_error", "embedder returned no vector for query", nil)
	}
	matches, err := s.index.Query(ctx, s.cfg.Collection, vectors[0], n)
	if err != nil {
		return nil, apperrors.Wrap("index_error", "failed to query preference index", err)
	}
	s.logger.Debug("hotel preference context retrieved", "query", query, "matches", len(matches))
	return matches, nil
}

func (s *service) Preferences(ctx context.Context, query string) (PreferencesResponse, error) {
	matches, err := s.Retrieve(ctx, query, s.cfg.TopN)
	if err != nil {
		return PreferencesResponse{}, err
	}
	if len(matches) == 0 {
		s.logger.Warn("no hotel preference context indexed", "collection", s.cfg.Collection)
	}
	retrieved := joinMatches(matches)

	completion, err := s.completer.Complete(ctx, llm.Request{
		Prompt:      buildPrompt(retrieved),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return PreferencesResponse{}, apperrors.Wrap("llm_error", "hotel preference extraction failed", err)
	}

	decoded := llmjson.Decode[Preferences](completion.Text)
	resp := PreferencesResponse{
		Kind:    decoded.Kind,
		Context: retrieved,
		Usage:   completion.Usage,
	}
	if decoded.Structured() {
		prefs := decoded.Value
		resp.Preferences = &prefs
	} else {
		resp.Text = decoded.Raw
		s.logger.Warn("hotel preference reply was not JSON", "length", len(decoded.Raw))
	}
	return resp, nil
}

func joinMatches(matches []Match) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Text
	}
	return strings.Join(parts, "\n")
}
