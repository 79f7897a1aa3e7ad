package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5, cfg.TitleMinLength)
	assert.Equal(t, 100, cfg.DescriptionMinLength)
	assert.Equal(t, 2, cfg.FetchRetries)
	assert.Equal(t, 3000, cfg.SelectorTimeoutMillis)
	assert.NotEmpty(t, cfg.UserAgents)
	assert.Contains(t, cfg.ProtectedSites, "linkedin.com")
	assert.Contains(t, cfg.ProtectedSites, "seek.com")
}

func TestLoadFrom_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
title_min_length: 10
protected_sites:
  - example-jobs.com
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg := LoadFrom(path)

	assert.Equal(t, 10, cfg.TitleMinLength)
	assert.Equal(t, []string{"example-jobs.com"}, cfg.ProtectedSites)
	// untouched fields still get defaults
	assert.Equal(t, 100, cfg.DescriptionMinLength)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "test-key", cfg.GroqAPIKey)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}
