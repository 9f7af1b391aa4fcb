package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Completion CompletionConfig
	Recommend  RecommendConfig
	Importer   ImporterConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

// CompletionConfig covers both completion backends: the remote
// OpenAI-compatible endpoint and the optional local Ollama-style one.
type CompletionConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	Timeout      time.Duration
	LocalBaseURL string
	LocalModel   string
	PrimaryModel string
}

type RecommendConfig struct {
	Strategy  string
	Threshold float64
}

type ImporterConfig struct {
	ListingURL string
	Pages      int
	Workers    int
	Headless   bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optInt := func(key string, def int) int {
		v := opt(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}
	optSeconds := func(key string, def time.Duration) time.Duration {
		n := optInt(key, -1)
		if n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}
	optBool := func(key string) bool {
		v := strings.ToLower(opt(key))
		return v == "1" || v == "true" || v == "yes"
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optSeconds("REDIS_TTL", 600*time.Second),
	}

	cfg.Completion = CompletionConfig{
		BaseURL:      opt("COMPLETION_BASE_URL"),
		APIKey:       opt("COMPLETION_API_KEY"),
		Model:        firstNonEmpty(opt("COMPLETION_MODEL"), "gpt-3.5-turbo"),
		Timeout:      optSeconds("COMPLETION_TIMEOUT", 30*time.Second),
		LocalBaseURL: opt("LOCAL_LLM_BASE_URL"),
		LocalModel:   firstNonEmpty(opt("LOCAL_LLM_MODEL"), "llama3"),
		PrimaryModel: firstNonEmpty(opt("COMPLETION_PRIMARY"), "remote"),
	}

	cfg.Recommend = RecommendConfig{
		Strategy:  firstNonEmpty(opt("RECOMMEND_STRATEGY"), "local"),
		Threshold: float64(optInt("RECOMMEND_THRESHOLD", 30)),
	}

	cfg.Importer = ImporterConfig{
		ListingURL: opt("IMPORTER_LISTING_URL"),
		Pages:      optInt("IMPORTER_PAGES", 1),
		Workers:    optInt("IMPORTER_WORKERS", 4),
		Headless:   optBool("IMPORTER_HEADLESS"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	switch cfg.Recommend.Strategy {
	case "local", "remote":
	default:
		return Config{}, fmt.Errorf("invalid RECOMMEND_STRATEGY %q", cfg.Recommend.Strategy)
	}

	return cfg, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
