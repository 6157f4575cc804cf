package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Config is the environment-driven configuration of the content cache
// service and its jobs.
type Config struct {
	// ContentAPIURL is the origin GraphQL endpoint.
	ContentAPIURL string `validate:"required,url"`
	// ContentAPIToken is an optional bearer token for the origin API.
	ContentAPIToken string
	// RevalidationSecret authorizes invalidation requests.
	RevalidationSecret string `validate:"required"`
	// PublicBaseURL is where the serving layer is reachable, used by the
	// cache warmer.
	PublicBaseURL string `validate:"required,url"`
	// SnapshotFile is the whole-dataset snapshot path.
	SnapshotFile string `validate:"required"`
	// FreshnessRulesFile optionally overrides the built-in freshness rules.
	FreshnessRulesFile string
	// RedisURL enables the shared cache level when non-empty.
	RedisURL string
	// ListenAddr is the HTTP listen address.
	ListenAddr string `validate:"required"`
	// MemoryCacheMB sizes the in-process cache level.
	MemoryCacheMB int `validate:"min=1"`
}

// Load reads the configuration from the environment, applying defaults for
// everything but the revalidation secret.
func Load(logger *zap.Logger) (*Config, error) {
	cfg := &Config{
		ContentAPIURL:      getEnv("CONTENT_API_URL", "https://blog.thnkandgrow.com/graphql"),
		ContentAPIToken:    os.Getenv("CONTENT_API_TOKEN"),
		RevalidationSecret: os.Getenv("REVALIDATION_SECRET"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		SnapshotFile:       getEnv("SNAPSHOT_FILE", ".cache/graphql-data.json"),
		FreshnessRulesFile: os.Getenv("CACHE_RULES_FILE"),
		ListenAddr:         getEnv("LISTEN_ADDR", ":3000"),
	}

	sizeMB, err := strconv.Atoi(getEnv("MEMORY_CACHE_MB", "64"))
	if err != nil {
		return nil, fmt.Errorf("invalid MEMORY_CACHE_MB: %w", err)
	}
	cfg.MemoryCacheMB = sizeMB

	redisURL, err := resolveRedisURL()
	if err != nil {
		return nil, err
	}
	cfg.RedisURL = redisURL

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Configuration loaded",
		zap.String("content_api_url", cfg.ContentAPIURL),
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("snapshot_file", cfg.SnapshotFile),
		zap.Bool("redis_enabled", cfg.RedisURL != ""),
		zap.Int("memory_cache_mb", cfg.MemoryCacheMB))
	return cfg, nil
}

// resolveRedisURL reads the Redis URL from REDIS_URL, then from the file
// named by REDIS_URL_FILE. An empty result disables the shared cache level.
func resolveRedisURL() (string, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url, nil
	}
	path := os.Getenv("REDIS_URL_FILE")
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read REDIS_URL_FILE: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
