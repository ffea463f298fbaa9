package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Auth        AuthConfig        `yaml:"auth"`
	LLM         LLMConfig         `yaml:"llm"`
	Weather     WeatherConfig     `yaml:"weather"`
	Holidays    HolidayConfig     `yaml:"holidays"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Planner     PlannerConfig     `yaml:"planner"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// AuthConfig enables bearer-token auth. When disabled every route is open
// and the employee id comes from the request.
type AuthConfig struct {
	Enabled   bool          `yaml:"enabled"`
	JWTSecret string        `yaml:"jwtSecret"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"tokenTtl"`
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider    string       `yaml:"provider"`
	Temperature float32      `yaml:"temperature"`
	MaxTokens   int          `yaml:"maxTokens"`
	OpenAI      OpenAIConfig `yaml:"openai"`
	Claude      ClaudeConfig `yaml:"claude"`
}

// OpenAIConfig contains ChatGPT/OpenAI settings.
type OpenAIConfig struct {
	APIKey         string `yaml:"apiKey"`
	BaseURL        string `yaml:"baseUrl"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embeddingModel"`
}

// ClaudeConfig contains Anthropic settings.
type ClaudeConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
}

// WeatherConfig controls the OpenWeatherMap client and its cache.
type WeatherConfig struct {
	APIKey            string        `yaml:"apiKey"`
	BaseURL           string        `yaml:"baseUrl"`
	GeoBaseURL        string        `yaml:"geoBaseUrl"`
	DefaultDays       int           `yaml:"defaultDays"`
	CacheTTL          time.Duration `yaml:"cacheTtl"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst"`
	Valkey            ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// HolidayConfig locates the holiday calendar.
type HolidayConfig struct {
	DefaultEmployeeID int64              `yaml:"defaultEmployeeId"`
	Database          DatabaseConfig     `yaml:"database"`
	Seed              map[int64][]string `yaml:"seed"`
}

// DatabaseConfig is either a full DSN or its libpq parts.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslMode"`
}

// PreferencesConfig controls the hotel preference pipeline.
type PreferencesConfig struct {
	Collection     string         `yaml:"collection"`
	ChunkSize      int            `yaml:"chunkSize"`
	ChunkStep      int            `yaml:"chunkStep"`
	TopN           int            `yaml:"topN"`
	Query          string         `yaml:"query"`
	Temperature    float32        `yaml:"temperature"`
	MaxTokens      int            `yaml:"maxTokens"`
	IndexOnStartup bool           `yaml:"indexOnStartup"`
	EmbeddingDim   int            `yaml:"embeddingDim"`
	Document       DocumentConfig `yaml:"document"`
	VectorStore    PostgresConfig `yaml:"vectorStore"`
}

// DocumentConfig points at the preference text, on disk or in a bucket.
type DocumentConfig struct {
	Path   string       `yaml:"path"`
	Object ObjectConfig `yaml:"object"`
}

// ObjectConfig locates an object in S3-compatible storage.
type ObjectConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// PlannerConfig holds trip planner defaults.
type PlannerConfig struct {
	MinHotelRating float64 `yaml:"minHotelRating"`
}

// Load reads .env, then a YAML file, then environment variables.
func Load() (*Config, error) {
	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv populates unset variables from path (".env" when empty). A
// missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}

	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		cfg.Auth.Enabled = parseBool(v)
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := firstEnv("OPENAI_API_KEY", "LLM_API_KEY"); v != "" {
		cfg.LLM.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.LLM.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.OpenAI.EmbeddingModel = v
	}
	if v := firstEnv("ANTHROPIC_API_KEY", "CLAUDE_API_KEY"); v != "" {
		cfg.LLM.Claude.APIKey = v
	}
	if v := os.Getenv("CLAUDE_BASE_URL"); v != "" {
		cfg.LLM.Claude.BaseURL = v
	}
	if v := os.Getenv("CLAUDE_MODEL"); v != "" {
		cfg.LLM.Claude.Model = v
	}

	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_DEFAULT_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.DefaultDays = parsed
		}
	}
	if v := os.Getenv("WEATHER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.CacheTTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Weather.RequestsPerSecond = parsed
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Weather.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Weather.Valkey.Addr = v
	}

	db := &cfg.Holidays.Database
	if v := os.Getenv("HOLIDAY_DB_DSN"); v != "" {
		db.DSN = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		db.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			db.Port = parsed
		}
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		db.Name = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		db.User = v
	}
	if v := os.Getenv("DB_PASS"); v != "" {
		db.Password = v
	}
	if v := os.Getenv("EMPLOYEE_ID"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Holidays.DefaultEmployeeID = parsed
		}
	}

	if v := os.Getenv("PREFERENCES_PATH"); v != "" {
		cfg.Preferences.Document.Path = v
	}
	if v := os.Getenv("PREFERENCES_INDEX_ON_STARTUP"); v != "" {
		cfg.Preferences.IndexOnStartup = parseBool(v)
	}
	if v := os.Getenv("PREFERENCES_BUCKET"); v != "" {
		cfg.Preferences.Document.Object.Enabled = true
		cfg.Preferences.Document.Object.Bucket = v
	}
	if v := os.Getenv("PREFERENCES_OBJECT_KEY"); v != "" {
		cfg.Preferences.Document.Object.Key = v
	}
	if v := os.Getenv("R2_ENDPOINT"); v != "" {
		cfg.Preferences.Document.Object.Endpoint = v
	}
	if v := os.Getenv("R2_ACCESS_KEY"); v != "" {
		cfg.Preferences.Document.Object.AccessKey = v
	}
	if v := os.Getenv("R2_SECRET_KEY"); v != "" {
		cfg.Preferences.Document.Object.SecretKey = v
	}
	if v := os.Getenv("VECTOR_DB_DSN"); v != "" {
		cfg.Preferences.VectorStore.DSN = v
	}

	if v := os.Getenv("PLANNER_MIN_HOTEL_RATING"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Planner.MinHotelRating = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 90 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/trips/plan",
				},
			},
		},
		Auth: AuthConfig{
			Issuer:   "trip-planner",
			TokenTTL: 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Temperature: 0.5,
			MaxTokens:   1000,
			OpenAI: OpenAIConfig{
				Model:          "gpt-4o-mini",
				EmbeddingModel: "text-embedding-3-small",
			},
			Claude: ClaudeConfig{
				Model: "claude-sonnet-4-20250514",
			},
		},
		Weather: WeatherConfig{
			DefaultDays:       30,
			CacheTTL:          30 * time.Minute,
			RequestsPerSecond: 1,
			Burst:             5,
			Valkey: ValkeyConfig{
				Prefix: "weather",
			},
		},
		Holidays: HolidayConfig{
			DefaultEmployeeID: 1001,
			Database: DatabaseConfig{
				Port:    5432,
				SSLMode: "disable",
			},
		},
		Preferences: PreferencesConfig{
			Collection:   "hotel_pref_collection",
			ChunkSize:    500,
			ChunkStep:    480,
			TopN:         3,
			Query:        "hotel preferences",
			Temperature:  0.4,
			MaxTokens:    800,
			EmbeddingDim: 64,
			Document: DocumentConfig{
				Path: "hotel_preferences.txt",
			},
			VectorStore: PostgresConfig{
				MaxConns: 4,
			},
		},
		Planner: PlannerConfig{
			MinHotelRating: 4.0,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.Auth.Enabled && strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwtSecret cannot be empty when auth is enabled")
	}
	switch c.LLM.Provider {
	case "openai", "claude", "echo":
	default:
		return fmt.Errorf("llm.provider %q must be one of openai, claude, echo", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.OpenAI.EmbeddingModel) == "" {
		return errors.New("llm.openai.embeddingModel cannot be empty")
	}
	if c.Weather.DefaultDays <= 0 || c.Weather.DefaultDays > 30 {
		return errors.New("weather.defaultDays must be between 1 and 30")
	}
	if c.Weather.CacheTTL < 0 {
		return errors.New("weather.cacheTtl cannot be negative")
	}
	if c.Weather.Valkey.Enabled && strings.TrimSpace(c.Weather.Valkey.Addr) == "" {
		return errors.New("weather.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if c.Holidays.DefaultEmployeeID <= 0 {
		return errors.New("holidays.defaultEmployeeId must be positive")
	}
	for id, days := range c.Holidays.Seed {
		for _, day := range days {
			if _, err := time.Parse("2006-01-02", day); err != nil {
				return fmt.Errorf("holidays.seed[%d]: %q is not a YYYY-MM-DD date", id, day)
			}
		}
	}
	if c.Preferences.ChunkSize <= 0 {
		return errors.New("preferences.chunkSize must be positive")
	}
	if c.Preferences.ChunkStep <= 0 || c.Preferences.ChunkStep > c.Preferences.ChunkSize {
		return errors.New("preferences.chunkStep must be between 1 and chunkSize")
	}
	if c.Preferences.TopN <= 0 {
		return errors.New("preferences.topN must be positive")
	}
	obj := c.Preferences.Document.Object
	if obj.Enabled && (strings.TrimSpace(obj.Bucket) == "" || strings.TrimSpace(obj.Key) == "") {
		return errors.New("preferences.document.object requires bucket and key when enabled")
	}
	if c.Planner.MinHotelRating < 0 || c.Planner.MinHotelRating > 5 {
		return errors.New("planner.minHotelRating must be between 0 and 5")
	}
	return nil
}

// ConnString returns the DSN, building a libpq URL from the parts when no
// DSN was given. It is empty when neither is configured.
func (d DatabaseConfig) ConnString() string {
	if strings.TrimSpace(d.DSN) != "" {
		return d.DSN
	}
	if strings.TrimSpace(d.Host) == "" || strings.TrimSpace(d.Name) == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}
	return u.String()
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
