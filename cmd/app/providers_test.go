package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/singhHarcharan/trip-planner-agent/internal/infra/config"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/docsource"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/embedder"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/vectorindex"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/weathercache"
)

func TestParseHolidaySeedSortsDates(t *testing.T) {
	seed, err := parseHolidaySeed(map[int64][]string{1001: {"2025-08-20", " 2025-08-18 "}})
	require.NoError(t, err)
	require.Equal(t, []time.Time{
		time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
	}, seed[1001])

	_, err = parseHolidaySeed(map[int64][]string{1: {"18/08/2025"}})
	require.Error(t, err)
}

func TestProvidersFallBackToMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Preferences.EmbeddingDim = 8
	cfg.Preferences.Document.Path = "hotel_preferences.txt"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.IsType(t, &weathercache.MemoryCache{}, provideWeatherCache(cfg, logger))
	index, err := provideVectorIndex(cfg, logger)
	require.NoError(t, err)
	require.IsType(t, &vectorindex.MemoryIndex{}, index)
	require.IsType(t, &embedder.DeterministicEmbedder{}, provideEmbedder(cfg, logger))

	source, err := provideDocumentSource(cfg, logger)
	require.NoError(t, err)
	require.IsType(t, &docsource.FileSource{}, source)

	repo, err := provideHolidayRepository(cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, repo)
}

func TestProvidersFailWhenConfiguredStoreIsDown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.Holidays.Seed = map[int64][]string{1001: {"2099-01-02"}}
	cfg.Holidays.Database.DSN = "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"
	cfg.Preferences.VectorStore.DSN = "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"

	repo, err := provideHolidayRepository(cfg, logger)
	require.Error(t, err)
	require.Nil(t, repo)

	index, err := provideVectorIndex(cfg, logger)
	require.Error(t, err)
	require.Nil(t, index)
}

func TestProvideCompleterSelectsProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{LLM: config.LLMConfig{Provider: "echo"}}
	completer, err := provideCompleter(cfg, logger)
	require.NoError(t, err)
	require.IsType(t, llm.EchoCompleter{}, completer)

	cfg.LLM.Provider = "claude"
	_, err = provideCompleter(cfg, logger)
	require.Error(t, err)

	cfg.LLM.Provider = "openai"
	cfg.LLM.OpenAI.APIKey = "sk-test"
	completer, err = provideCompleter(cfg, logger)
	require.NoError(t, err)
	require.IsType(t, &llm.ChatGPTCompleter{}, completer)
}
