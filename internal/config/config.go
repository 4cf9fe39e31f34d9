// Package config loads service configuration from the environment, with a
// .env file as an optional local-development convenience.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full service configuration.
type Config struct {
	Port     string
	LogFile  string
	JSONLogs bool

	ElasticsearchURL string
	RedisURL         string
	CacheTTL         time.Duration

	InferenceURL     string
	InferenceToken   string
	InferenceTimeout time.Duration
	InferenceRetries int

	DefaultModel  string
	TextMaxLength int
	MaxBatchSize  int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogFile:  getEnv("LOG_FILE", ""),
		JSONLogs: getEnvBool("JSON_LOGS", false),

		ElasticsearchURL: getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		RedisURL:         getEnv("REDIS_URL", ""),
		CacheTTL:         getEnvDuration("CACHE_TTL", time.Hour),

		InferenceURL:     getEnv("INFERENCE_URL", "http://localhost:8090"),
		InferenceToken:   getEnv("INFERENCE_TOKEN", ""),
		InferenceTimeout: getEnvDuration("INFERENCE_TIMEOUT", 30*time.Second),
		InferenceRetries: getEnvInt("INFERENCE_RETRIES", 2),

		DefaultModel:  getEnv("DEFAULT_MODEL", "distilbert-base-uncased-finetuned-sst-2-english"),
		TextMaxLength: getEnvInt("TEXT_MAX_LENGTH", 512),
		MaxBatchSize:  getEnvInt("MAX_BATCH_SIZE", 25),

		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
