package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/auth"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/holiday"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/config"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/docsource"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/embedder"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/holidayrepo"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm/chatgpt"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/llm/claude"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/traveldesk"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/vectorindex"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/weather/openweathermap"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/weathercache"
	"github.com/singhHarcharan/trip-planner-agent/pkg/util"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		DefaultDays: cfg.Weather.DefaultDays,
		CacheTTL:    cfg.Weather.CacheTTL,
	}
}

func provideWeatherProvider(cfg *config.Config) (*openweathermap.RateLimitedClient, error) {
	client, err := openweathermap.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.GeoBaseURL)
	if err != nil {
		return nil, err
	}
	return openweathermap.NewRateLimitedClient(client, cfg.Weather.RequestsPerSecond, cfg.Weather.Burst), nil
}

func provideWeatherCache(cfg *config.Config, logger *slog.Logger) weather.Cache {
	if cfg.Weather.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Weather.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return weathercache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return weathercache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("weather valkey cache enabled", "addr", cfg.Weather.Valkey.Addr)
			return weathercache.NewValkeyCache(client, cfg.Weather.Valkey.Prefix)
		}
	}
	return weathercache.NewMemoryCache()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideHolidayRepository(cfg *config.Config, logger *slog.Logger) (holiday.Repository, error) {
	dsn := cfg.Holidays.Database.ConnString()
	if dsn == "" {
		seed, err := parseHolidaySeed(cfg.Holidays.Seed)
		if err != nil {
			return nil, err
		}
		logger.Info("holiday database not configured, using memory repository", "employees", len(seed))
		return holidayrepo.NewMemoryRepository(seed), nil
	}
	// A configured database never falls back to the seed.
	db, err := holidayrepo.Open(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("holiday database configured but unavailable: %w", err)
	}
	logger.Info("holiday postgres repository enabled")
	return holidayrepo.NewPostgresRepository(db), nil
}

// parseHolidaySeed converts configured YYYY-MM-DD strings to UTC dates.
func parseHolidaySeed(raw map[int64][]string) (map[int64][]time.Time, error) {
	seed := make(map[int64][]time.Time, len(raw))
	for employeeID, days := range raw {
		parsed := make([]time.Time, 0, len(days))
		for _, day := range days {
			t, err := time.Parse(util.DateLayout, strings.TrimSpace(day))
			if err != nil {
				return nil, fmt.Errorf("holiday seed for %d: %w", employeeID, err)
			}
			parsed = append(parsed, t)
		}
		sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })
		seed[employeeID] = parsed
	}
	return seed, nil
}

func provideCompleter(cfg *config.Config, logger *slog.Logger) (llm.Completer, error) {
	switch cfg.LLM.Provider {
	case "claude":
		client, err := claude.NewClient(cfg.LLM.Claude.APIKey, cfg.LLM.Claude.BaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("llm provider selected", "provider", "claude", "model", cfg.LLM.Claude.Model)
		return llm.NewClaudeCompleter(client, cfg.LLM.Claude.Model), nil
	case "echo":
		logger.Warn("llm provider is echo, replies will not be structured")
		return llm.EchoCompleter{}, nil
	default:
		client, err := chatgpt.NewClient(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.BaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("llm provider selected", "provider", "openai", "model", cfg.LLM.OpenAI.Model)
		return llm.NewChatGPTCompleter(client, cfg.LLM.OpenAI.Model), nil
	}
}

func provideTripCompleter(c llm.Completer) trip.Completer {
	return c
}

func provideHotelPrefCompleter(c llm.Completer) hotelpref.Completer {
	return c
}

func provideEmbedder(cfg *config.Config, logger *slog.Logger) hotelpref.Embedder {
	if strings.TrimSpace(cfg.LLM.OpenAI.APIKey) == "" {
		logger.Info("openai api key not set, using deterministic embedder", "dim", cfg.Preferences.EmbeddingDim)
		return embedder.NewDeterministicEmbedder(cfg.Preferences.EmbeddingDim)
	}
	client, err := chatgpt.NewClient(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.BaseURL)
	if err != nil {
		logger.Error("failed to create embedding client, using deterministic embedder", "error", err)
		return embedder.NewDeterministicEmbedder(cfg.Preferences.EmbeddingDim)
	}
	return embedder.NewChatGPTEmbedder(client, cfg.LLM.OpenAI.EmbeddingModel, logger)
}

func provideDocumentSource(cfg *config.Config, logger *slog.Logger) (hotelpref.DocumentSource, error) {
	obj := cfg.Preferences.Document.Object
	if !obj.Enabled {
		return docsource.NewFileSource(cfg.Preferences.Document.Path), nil
	}
	logger.Info("preference document read from object storage", "bucket", obj.Bucket, "key", obj.Key)
	source, err := docsource.NewObjectSource(docsource.ObjectConfig{
		Endpoint:  obj.Endpoint,
		AccessKey: obj.AccessKey,
		SecretKey: obj.SecretKey,
		Bucket:    obj.Bucket,
		Region:    obj.Region,
		Key:       obj.Key,
	}, logger)
	if err != nil {
		return nil, err
	}
	return source, nil
}

func provideVectorIndex(cfg *config.Config, logger *slog.Logger) (hotelpref.VectorIndex, error) {
	store := cfg.Preferences.VectorStore
	dsn := strings.TrimSpace(store.DSN)
	if dsn == "" {
		logger.Info("vector store dsn not set, using memory index")
		return vectorindex.NewMemoryIndex(), nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid vector store dsn: %w", err)
	}
	if store.MaxConns > 0 {
		poolConfig.MaxConns = store.MaxConns
	}
	if store.MinConns > 0 {
		poolConfig.MinConns = store.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("init vector store pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("vector store configured but unavailable: %w", err)
	}
	logger.Info("pgvector index enabled")
	return vectorindex.NewPostgresIndex(pool), nil
}

func provideHotelPrefConfig(cfg *config.Config) hotelpref.Config {
	p := cfg.Preferences
	return hotelpref.Config{
		Collection:     p.Collection,
		ChunkSize:      p.ChunkSize,
		ChunkStep:      p.ChunkStep,
		TopN:           p.TopN,
		DefaultQuery:   p.Query,
		Temperature:    p.Temperature,
		MaxTokens:      p.MaxTokens,
		IndexOnStartup: p.IndexOnStartup,
	}
}

func provideTravelDesk(logger *slog.Logger) trip.TravelDesk {
	return traveldesk.NewStub(logger)
}

func provideTripConfig(cfg *config.Config) trip.Config {
	return trip.Config{
		DefaultEmployeeID: cfg.Holidays.DefaultEmployeeID,
		DefaultDays:       cfg.Weather.DefaultDays,
		MinHotelRating:    cfg.Planner.MinHotelRating,
		PreferenceQuery:   cfg.Preferences.Query,
		Temperature:       cfg.LLM.Temperature,
		MaxTokens:         cfg.LLM.MaxTokens,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideDefaultEmployeeID(cfg *config.Config) int64 {
	return cfg.Holidays.DefaultEmployeeID
}
