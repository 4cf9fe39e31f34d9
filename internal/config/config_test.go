package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:9200", cfg.ElasticsearchURL)
	assert.Equal(t, "distilbert-base-uncased-finetuned-sst-2-english", cfg.DefaultModel)
	assert.Equal(t, 512, cfg.TextMaxLength)
	assert.Equal(t, 25, cfg.MaxBatchSize)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TEXT_MAX_LENGTH", "256")
	t.Setenv("JSON_LOGS", "true")
	t.Setenv("CACHE_TTL", "15m")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 256, cfg.TextMaxLength)
	assert.True(t, cfg.JSONLogs)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TEXT_MAX_LENGTH", "not-a-number")
	t.Setenv("JSON_LOGS", "maybe")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 512, cfg.TextMaxLength)
	assert.False(t, cfg.JSONLogs)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}
