package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Directory DirectoryConfig
	Assistant AssistantConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// DirectoryConfig controls member directory behavior.
type DirectoryConfig struct {
	SeedOnEmpty   bool
	ImportDelayMS int
}

// AssistantConfig controls the canned-response assistant.
type AssistantConfig struct {
	ReplyDelayMS int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "benefit-card-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Directory: DirectoryConfig{
			SeedOnEmpty:   getEnvAsBool("DIRECTORY_SEED_ON_EMPTY", true),
			ImportDelayMS: getEnvAsInt("DIRECTORY_IMPORT_DELAY_MS", 1500),
		},
		Assistant: AssistantConfig{
			ReplyDelayMS: getEnvAsInt("ASSISTANT_REPLY_DELAY_MS", 800),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ImportDelay returns the cosmetic bulk-import latency.
func (d DirectoryConfig) ImportDelay() time.Duration {
	if d.ImportDelayMS <= 0 {
		return 0
	}
	return time.Duration(d.ImportDelayMS) * time.Millisecond
}

// ReplyDelay returns the cosmetic assistant reply latency.
func (a AssistantConfig) ReplyDelay() time.Duration {
	if a.ReplyDelayMS <= 0 {
		return 0
	}
	return time.Duration(a.ReplyDelayMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
