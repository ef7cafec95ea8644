package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stretford-end/fpl-optimizer/internal/engine"
)

// RecommendationCacheService handles caching for transfer recommendation results
type RecommendationCacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRecommendationCacheService creates a new recommendation cache service
func NewRecommendationCacheService(client *redis.Client, logger *logrus.Logger) *RecommendationCacheService {
	return &RecommendationCacheService{
		client: client,
		logger: logger,
	}
}

// Key builds the cache key for an entry's recommendation. Results depend on
// the free-transfer count, so it is part of the key.
func Key(entryID, freeTransfers int) string {
	return fmt.Sprintf("%d:ft%d", entryID, freeTransfers)
}

// SetRecommendation stores a recommendation result in cache
func (c *RecommendationCacheService) SetRecommendation(ctx context.Context, key string, result *engine.RecommendationResult, expiration time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation result: %w", err)
	}

	fullKey := fmt.Sprintf("recommendation:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set recommendation result in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":     fullKey,
		"expiration":    expiration,
		"transfer_sets": len(result.TransferSets),
	}).Debug("Cached recommendation result")

	return nil
}

// GetRecommendation retrieves a recommendation result from cache
func (c *RecommendationCacheService) GetRecommendation(ctx context.Context, key string) (*engine.RecommendationResult, error) {
	fullKey := fmt.Sprintf("recommendation:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("recommendation result not found in cache")
		}
		return nil, fmt.Errorf("failed to get recommendation result from cache: %w", err)
	}

	var result engine.RecommendationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation result: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":     fullKey,
		"transfer_sets": len(result.TransferSets),
	}).Debug("Retrieved recommendation result from cache")

	return &result, nil
}

// DeleteRecommendation removes a recommendation result from cache
func (c *RecommendationCacheService) DeleteRecommendation(ctx context.Context, key string) error {
	fullKey := fmt.Sprintf("recommendation:%s", key)
	if err := c.client.Del(ctx, fullKey).Err(); err != nil {
		return fmt.Errorf("failed to delete recommendation result from cache: %w", err)
	}

	c.logger.WithField("cache_key", fullKey).Debug("Deleted recommendation result from cache")
	return nil
}

// GetStatus returns cache statistics
func (c *RecommendationCacheService) GetStatus(ctx context.Context) map[string]interface{} {
	dbSize := c.client.DBSize(ctx)

	status := map[string]interface{}{
		"service":   "recommendation-cache",
		"timestamp": time.Now(),
		"connected": true,
	}

	if dbSize.Err() == nil {
		status["db_size"] = dbSize.Val()
	}

	recommendationKeys, err := c.client.Keys(ctx, "recommendation:*").Result()
	if err == nil {
		status["recommendation_keys"] = len(recommendationKeys)
	}

	return status
}

// FlushRecommendationCache clears all recommendation results from cache.
// Called after a data sync so stale scores are never served.
func (c *RecommendationCacheService) FlushRecommendationCache(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, "recommendation:*").Result()
	if err != nil {
		return fmt.Errorf("failed to get recommendation keys: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete recommendation keys: %w", err)
		}
	}

	c.logger.WithField("deleted_keys", len(keys)).Info("Flushed recommendation cache")
	return nil
}
