package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rhinoback/rhinoback/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	ServerPort string

	// LLM provider (OpenAI-compatible chat completions, Groq by default)
	AIAPIKey        string
	AIBaseURL       string
	AIModel         string
	AITemperature   float64
	AIMaxTokens     int
	AITopP          float64
	AITimeout       time.Duration // 0 means no client-side timeout
	AIRatePerSecond float64       // 0 disables outbound throttling
	AIRateBurst     int
	AICacheSize     int // 0 disables the response cache
	AICacheTTL      time.Duration

	// HTTP surface
	RateLimitPerMinute int // 0 disables inbound rate limiting
	CORSOrigins        []string

	// Local state snapshot (single tenant, the server-side analogue of browser storage)
	PersistState bool
	StateDbDir   string
	StateDbFile  string

	// Sandboxes: in-memory SQLite copies of a project's schema for trying its endpoints
	SandboxMax int
	SandboxTTL time.Duration
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		ServerPort:         strings.TrimPrefix(v.GetString("SERVER_PORT"), ":"),
		AIAPIKey:           v.GetString("GROQ_API_KEY"),
		AIBaseURL:          strings.TrimRight(v.GetString("AI_BASE_URL"), "/"),
		AIModel:            v.GetString("AI_MODEL"),
		AITemperature:      v.GetFloat64("AI_TEMPERATURE"),
		AIMaxTokens:        v.GetInt("AI_MAX_TOKENS"),
		AITopP:             v.GetFloat64("AI_TOP_P"),
		AITimeout:          time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,
		AIRatePerSecond:    v.GetFloat64("AI_RATE_PER_SECOND"),
		AIRateBurst:        v.GetInt("AI_RATE_BURST"),
		AICacheSize:        v.GetInt("AI_CACHE_SIZE"),
		AICacheTTL:         time.Duration(v.GetInt("AI_CACHE_TTL_MINUTES")) * time.Minute,
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		CORSOrigins:        splitList(v.GetString("CORS_ORIGINS")),
		PersistState:       v.GetBool("PERSIST_STATE"),
		StateDbDir:         v.GetString("STATE_DB_DIR"),
		StateDbFile:        v.GetString("STATE_DB_FILE"),
		SandboxMax:         v.GetInt("SANDBOX_MAX"),
		SandboxTTL:         time.Duration(v.GetInt("SANDBOX_TTL_MINUTES")) * time.Minute,
	}

	if cfg.AIAPIKey == "" {
		customLog.Warnln("WARNING: GROQ_API_KEY is not set, every AI endpoint will return fallback results!")
	}
	if cfg.AIMaxTokens <= 0 {
		customLog.Warnf("Invalid AI_MAX_TOKENS '%d'. Using default 8192.", cfg.AIMaxTokens)
		cfg.AIMaxTokens = 8192
	}
	if cfg.AIRateBurst <= 0 {
		cfg.AIRateBurst = 1
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, Model: %s, Persist state: %v",
		cfg.ServerPort, cfg.AIModel, cfg.PersistState)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("AI_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("AI_MODEL", "llama-3.3-70b-versatile")
	v.SetDefault("AI_TEMPERATURE", 1.0)
	v.SetDefault("AI_MAX_TOKENS", 8192)
	v.SetDefault("AI_TOP_P", 1.0)
	v.SetDefault("AI_TIMEOUT_SECONDS", 0)
	v.SetDefault("AI_RATE_PER_SECOND", 0)
	v.SetDefault("AI_RATE_BURST", 5)
	v.SetDefault("AI_CACHE_SIZE", 0)
	v.SetDefault("AI_CACHE_TTL_MINUTES", 10)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 0)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("PERSIST_STATE", false)
	v.SetDefault("STATE_DB_DIR", "data")
	v.SetDefault("STATE_DB_FILE", "state.db")
	v.SetDefault("SANDBOX_MAX", 16)
	v.SetDefault("SANDBOX_TTL_MINUTES", 30)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
