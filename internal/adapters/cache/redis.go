// Package cache implements the optional classification result cache on
// Redis. Entries are keyed by model and a digest of the preprocessed text,
// so identical inputs skip the inference round-trip.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
)

// DefaultExpiration for cached results.
const DefaultExpiration = time.Hour

// RedisCache implements ports.ResultCache on a Redis instance.
type RedisCache struct {
	client     *redis.Client
	expiration time.Duration
	logger     ports.Logger
}

// New connects to Redis at the given URL (redis://...) and verifies the
// connection.
func New(ctx context.Context, redisURL string, expiration time.Duration, logger ports.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	return &RedisCache{
		client:     client,
		expiration: expiration,
		logger:     logger,
	}, nil
}

// Get looks up cached scores for the model/text pair. A miss is reported
// as (nil, false, nil).
func (rc *RedisCache) Get(ctx context.Context, model, text string) ([]domain.Score, bool, error) {
	payload, err := rc.client.Get(ctx, cacheKey(model, text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var scores []domain.Score
	if err := json.Unmarshal(payload, &scores); err != nil {
		// A corrupt entry reads as a miss; it will be overwritten.
		rc.logger.Warn("Discarding corrupt cache entry", "model", model, "error", err)
		return nil, false, nil
	}
	return scores, true, nil
}

// Set stores scores for the model/text pair with the configured TTL.
func (rc *RedisCache) Set(ctx context.Context, model, text string, scores []domain.Score) error {
	payload, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, cacheKey(model, text), payload, rc.expiration).Err()
}

// Close releases the underlying connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

func cacheKey(model, text string) string {
	digest := sha1.Sum([]byte(text))
	return "sentiment:" + model + ":" + hex.EncodeToString(digest[:])
}
