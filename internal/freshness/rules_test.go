package freshness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-content-cache/internal/models"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		pageType models.PageType
		fresh    time.Duration
	}{
		{models.PageTypeHome, 60 * time.Second},
		{models.PageTypePost, 604800 * time.Second},
		{models.PageTypeCategory, 3600 * time.Second},
		{models.PageTypeTag, 3600 * time.Second},
		{models.PageTypeAuthor, 604800 * time.Second},
		{models.PageTypePortfolio, 86400 * time.Second},
	}
	for _, tt := range tests {
		t.Run(string(tt.pageType), func(t *testing.T) {
			ttl := rules.TTLFor(tt.pageType)
			assert.Equal(t, tt.fresh, ttl.Fresh)
			assert.Equal(t, DefaultStaleWindow, ttl.Stale)
			assert.False(t, rules.Bypass(tt.pageType))
		})
	}
}

func TestDefaultRules_SearchBypasses(t *testing.T) {
	rules := DefaultRules()
	assert.True(t, rules.Bypass(models.PageTypeSearch))
}

func TestRules_UnknownTypeGetsShortWindow(t *testing.T) {
	rules := DefaultRules()
	ttl := rules.TTLFor(models.PageType("mystery"))
	assert.Equal(t, 60*time.Second, ttl.Fresh)
}

func TestLoadRules_EmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, rules.TTLFor(models.PageTypeHome).Fresh)
}

func TestLoadRules_OverridesMergeOverDefaults(t *testing.T) {
	path := writeRules(t, `
pages:
  post:
    max_age_seconds: 3600
    stale_seconds: 7200
`)

	rules, err := LoadRules(path, zap.NewNop())
	require.NoError(t, err)

	post := rules.TTLFor(models.PageTypePost)
	assert.Equal(t, 3600*time.Second, post.Fresh)
	assert.Equal(t, 7200*time.Second, post.Stale)

	// Untouched types keep their defaults.
	assert.Equal(t, 60*time.Second, rules.TTLFor(models.PageTypeHome).Fresh)
}

func TestLoadRules_UnknownPageTypeFails(t *testing.T) {
	path := writeRules(t, `
pages:
  newsletter:
    max_age_seconds: 60
`)

	_, err := LoadRules(path, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newsletter")
}

func TestLoadRules_NegativeValueFails(t *testing.T) {
	path := writeRules(t, `
pages:
  home:
    max_age_seconds: -5
`)

	_, err := LoadRules(path, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadRules_MissingFileFails(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"), zap.NewNop())
	assert.Error(t, err)
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
