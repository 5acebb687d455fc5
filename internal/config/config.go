package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	Environment string `validate:"required,oneof=development production"`
	LogLevel    slog.Level

	LLMProvider     string `validate:"required,oneof=anthropic venice"`
	ModelName       string `validate:"required"`
	AnthropicAPIKey string
	VeniceAPIKey    string

	RedisURL string `validate:"required"`
	Trope    string `validate:"required"`
}

// Load reads configuration from the environment, after loading a .env
// file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     getEnv("LLM_PROVIDER", "anthropic"),
		ModelName:       getEnv("MODEL_NAME", "claude-sonnet-4-5"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		VeniceAPIKey:    os.Getenv("VENICE_API_KEY"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		Trope:           getEnv("TROPE", "enemies_to_lovers"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
