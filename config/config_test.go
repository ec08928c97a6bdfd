package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AIBaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AIModel)
	assert.Equal(t, 8192, cfg.AIMaxTokens)
	assert.Equal(t, time.Duration(0), cfg.AITimeout)
	assert.Equal(t, 0, cfg.AICacheSize)
	assert.Equal(t, 10*time.Minute, cfg.AICacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.PersistState)
	assert.Equal(t, 16, cfg.SandboxMax)
	assert.Equal(t, 30*time.Minute, cfg.SandboxTTL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("AI_BASE_URL", "http://localhost:1234/v1/")
	t.Setenv("AI_MAX_TOKENS", "-3")
	t.Setenv("AI_TIMEOUT_SECONDS", "30")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://rhinoback.dev")
	t.Setenv("PERSIST_STATE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "gsk_test", cfg.AIAPIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.AIBaseURL)
	assert.Equal(t, 8192, cfg.AIMaxTokens, "invalid max tokens falls back to default")
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://rhinoback.dev"}, cfg.CORSOrigins)
	assert.True(t, cfg.PersistState)
}
