package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// OperatorConfig holds the single operator account allowed to sign in.
type OperatorConfig struct {
	Email        string
	PasswordHash string
}

// EnrichmentConfig tunes the scraping pipeline.
type EnrichmentConfig struct {
	SearchBaseURL  string
	SearchInterval time.Duration
	FetchTimeout   time.Duration
	VerifyTimeout  time.Duration
	PageCacheTTL   time.Duration
	PhoneRegion    string
	Concurrency    int
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	DBMaxConns      int
	RedisURL        string
	JWTSecret       string
	Port            string
	RateLimitScrape RateLimitConfig
	TokenTTL        time.Duration
	LogLevel        string
	LogFormat       string
	GeminiAPIKey    string
	GeminiModel     string
	Operator        OperatorConfig
	Enrichment      EnrichmentConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DBMaxConns:   parsePositiveInt(getEnv("DB_MAX_CONNS", "10"), 10),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		Port:         getEnv("PORT", "8080"),
		TokenTTL:     parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		Operator: OperatorConfig{
			Email:        strings.ToLower(strings.TrimSpace(os.Getenv("OPERATOR_EMAIL"))),
			PasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		},
		Enrichment: EnrichmentConfig{
			SearchBaseURL:  getEnv("SEARCH_BASE_URL", "https://www.google.com/search"),
			SearchInterval: parseDuration(getEnv("SEARCH_INTERVAL", "1.5s"), 1500*time.Millisecond),
			FetchTimeout:   parseDuration(getEnv("FETCH_TIMEOUT", "10s"), 10*time.Second),
			VerifyTimeout:  parseDuration(getEnv("VERIFY_TIMEOUT", "5s"), 5*time.Second),
			PageCacheTTL:   parseDuration(getEnv("PAGE_CACHE_TTL", "6h"), 6*time.Hour),
			PhoneRegion:    strings.ToUpper(getEnv("PHONE_REGION", "US")),
			Concurrency:    parsePositiveInt(getEnv("ENRICH_CONCURRENCY", "4"), 4),
		},
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SCRAPE", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SCRAPE value: %w", err)
	}
	cfg.RateLimitScrape = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	requests, unit, ok := strings.Cut(value, "/")
	if !ok {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	count, err := strconv.Atoi(strings.TrimSpace(requests))
	if err != nil || count <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", requests)
	}

	var interval time.Duration
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: count, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parsePositiveInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
