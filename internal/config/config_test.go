package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"PORT", "DB_PATH", "FAQ_PATH", "FAQ_CACHE_ENABLED", "NATS_ENABLED", "MAX_MESSAGE_LENGTH", "RATE_LIMIT_WINDOW", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "storage/chatbot.db", cfg.DBPath)
	assert.Equal(t, "storage/app/faq.json", cfg.FAQPath)
	assert.True(t, cfg.FAQCacheEnabled)
	assert.False(t, cfg.NATSEnabled)
	assert.Equal(t, 4000, cfg.MaxMessageLength)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Nil(t, cfg.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("FAQ_CACHE_ENABLED", "false")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("MAX_MESSAGE_LENGTH", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.False(t, cfg.FAQCacheEnabled)
	assert.True(t, cfg.NATSEnabled)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 4000, cfg.MaxMessageLength)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FAQ_PATH=/srv/faq.json\nLOG_LEVEL=debug\n"), 0o600))
	chdir(t, dir)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("FAQ_PATH", "")
	require.NoError(t, os.Unsetenv("FAQ_PATH"))

	cfg := Load()

	assert.Equal(t, "/srv/faq.json", cfg.FAQPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := Load()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-numeric port", func(c *Config) { c.ServerPort = "http" }},
		{"empty faq path", func(c *Config) { c.FAQPath = "" }},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "abc" }},
		{"nats enabled without url", func(c *Config) { c.NATSEnabled = true; c.NATSURL = "" }},
		{"rate limit without window", func(c *Config) { c.RateLimitRequests = 10; c.RateLimitWindow = 0 }},
		{"zero message length", func(c *Config) { c.MaxMessageLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *cfg
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the duration of the test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
