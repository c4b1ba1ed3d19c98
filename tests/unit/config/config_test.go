package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beanvault/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)

	// No password hash by default means the admin login is disabled.
	assert.Equal(t, "admin", cfg.Auth.AdminUser)
	assert.Empty(t, cfg.Auth.AdminPasswordHash)

	assert.Equal(t, "deepseek", cfg.Parser.Provider)
	assert.Empty(t, cfg.Parser.APIKey)
	assert.Equal(t, "deepseek-chat", cfg.Parser.DefaultModel)
	assert.Equal(t, 600, cfg.Parser.TimeoutSecs)
	assert.False(t, cfg.Parser.Streaming)
	assert.Equal(t, 100000, cfg.Parser.MaxInputChars)

	assert.Equal(t, 100, cfg.Agent.MaxRows)
	assert.Equal(t, int64(50), cfg.S3.MaxFileSizeMB)

	assert.Equal(t, 10, cfg.Queue.PollIntervalSecs)
	assert.Equal(t, 5, cfg.Queue.MaxRetries)
	assert.Equal(t, 2, cfg.Queue.Concurrency)

	assert.Equal(t, "noop", cfg.Email.Provider)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BEANVAULT_SERVER_PORT", ":9999")
	t.Setenv("BEANVAULT_PARSER_PROVIDER", "deepseek")
	t.Setenv("BEANVAULT_PARSER_API_KEY", "from-env")
	t.Setenv("BEANVAULT_QUEUE_MAX_RETRIES", "3")
	t.Setenv("BEANVAULT_CORS_ALLOWED_ORIGINS", "https://beans.example.com, https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Parser.APIKey)
	assert.Equal(t, 3, cfg.Queue.MaxRetries)
	assert.Equal(t, []string{"https://beans.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7777")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Port)
}
