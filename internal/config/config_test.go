package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONTENT_API_URL", "CONTENT_API_TOKEN", "REVALIDATION_SECRET",
		"PUBLIC_BASE_URL", "SNAPSHOT_FILE", "CACHE_RULES_FILE",
		"REDIS_URL", "REDIS_URL_FILE", "LISTEN_ADDR", "MEMORY_CACHE_MB",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVALIDATION_SECRET", "s3cret")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "https://blog.thnkandgrow.com/graphql", cfg.ContentAPIURL)
	assert.Equal(t, "http://localhost:3000", cfg.PublicBaseURL)
	assert.Equal(t, ".cache/graphql-data.json", cfg.SnapshotFile)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, 64, cfg.MemoryCacheMB)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_RequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load(zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RevalidationSecret")
}

func TestLoad_RedisURLFromEnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVALIDATION_SECRET", "s3cret")

	path := filepath.Join(t.TempDir(), "redis-url")
	require.NoError(t, os.WriteFile(path, []byte("redis://from-file:6379\n"), 0o600))
	t.Setenv("REDIS_URL_FILE", path)
	t.Setenv("REDIS_URL", "redis://from-env:6379")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "redis://from-env:6379", cfg.RedisURL)
}

func TestLoad_RedisURLFromFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVALIDATION_SECRET", "s3cret")

	path := filepath.Join(t.TempDir(), "redis-url")
	require.NoError(t, os.WriteFile(path, []byte("redis://from-file:6379\n"), 0o600))
	t.Setenv("REDIS_URL_FILE", path)

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "redis://from-file:6379", cfg.RedisURL, "file contents must be trimmed")
}

func TestLoad_MissingRedisURLFileFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVALIDATION_SECRET", "s3cret")
	t.Setenv("REDIS_URL_FILE", filepath.Join(t.TempDir(), "absent"))

	_, err := Load(zap.NewNop())
	assert.Error(t, err)
}

func TestLoad_InvalidMemoryCacheSizeFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVALIDATION_SECRET", "s3cret")
	t.Setenv("MEMORY_CACHE_MB", "lots")

	_, err := Load(zap.NewNop())
	assert.Error(t, err)
}

func TestLoad_InvalidAPIURLFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVALIDATION_SECRET", "s3cret")
	t.Setenv("CONTENT_API_URL", "not a url")

	_, err := Load(zap.NewNop())
	assert.Error(t, err)
}
